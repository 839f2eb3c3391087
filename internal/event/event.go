// Package event はGitHub Actionsの issues イベントのペイロードを読み込む
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/douhashi/issuenum/internal/processor"
	"github.com/google/go-github/v50/github"
)

// Name は対象とするワークフローイベント名
const Name = "issues"

// 採番に影響しうるアクション。
// unlabeled はカテゴリラベルの付け替え途中で既定ラベルを付与してしまうため対象外
var supportedActions = map[string]bool{
	"opened":   true,
	"edited":   true,
	"labeled":  true,
	"reopened": true,
}

// ErrNoIssue はペイロードにIssueが含まれていない
var ErrNoIssue = errors.New("event payload does not contain an issue")

// Event は issues イベントから取り出した情報
type Event struct {
	Action string
	// Repository は owner/repo 形式（ペイロードに含まれていれば）
	Repository string
	Trigger    processor.Trigger
}

// Supported は再採番を行うアクションかを返す
func Supported(action string) bool {
	return supportedActions[action]
}

// Load はイベントペイロードのファイルを読み込む
func Load(path string) (*Event, error) {
	if path == "" {
		return nil, errors.New("event path is empty (set GITHUB_EVENT_PATH or --event)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	ev, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ev, nil
}

// Parse はイベントペイロードを解析する
func Parse(data []byte) (*Event, error) {
	var payload github.IssuesEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}
	if payload.Issue == nil || payload.Issue.GetNumber() == 0 {
		return nil, ErrNoIssue
	}

	issue := payload.Issue
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		if name := l.GetName(); name != "" {
			labels = append(labels, name)
		}
	}

	return &Event{
		Action:     payload.GetAction(),
		Repository: payload.GetRepo().GetFullName(),
		Trigger: processor.Trigger{
			Number:        issue.GetNumber(),
			Title:         issue.GetTitle(),
			PreviousTitle: payload.GetChanges().GetTitle().GetFrom(),
			Labels:        labels,
		},
	}, nil
}
