// Package tracker はIssueトラッカー（GitHub / GitLab）への操作を抽象化する
package tracker

import (
	"context"
	"time"
)

// Issue はトラッカー上のIssueのスナップショット
type Issue struct {
	// Number はトラッカーが割り当てたIssue番号（作成順）
	Number    int
	Title     string
	Labels    []string
	State     string
	CreatedAt time.Time
}

// Tracker はIssueトラッカーの最小限の操作。リポジトリはバックエンド生成時に束縛される
type Tracker interface {
	// ListIssues は状態を問わず全Issueを返す（ページングは実装側で吸収する）
	ListIssues(ctx context.Context) ([]Issue, error)
	// GetIssue は単一のIssueを取得する
	GetIssue(ctx context.Context, number int) (*Issue, error)
	// AddLabel はIssueにラベルを付与する
	AddLabel(ctx context.Context, number int, label string) error
	// RemoveLabel はIssueからラベルを外す。付いていないラベルの削除は成功扱い
	RemoveLabel(ctx context.Context, number int, label string) error
	// UpdateTitle はIssueのタイトルを更新する
	UpdateTitle(ctx context.Context, number int, title string) error
}

// LabelDefinition はリポジトリに作成するラベルの定義
type LabelDefinition struct {
	Name        string
	Color       string
	Description string
}

// LabelEnsurer はリポジトリにラベル定義を作成できるバックエンドが実装する
type LabelEnsurer interface {
	// EnsureLabels は存在しないラベルを作成し、作成したラベル名を返す
	EnsureLabels(ctx context.Context, defs []LabelDefinition) ([]string, error)
}
