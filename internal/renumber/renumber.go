package renumber

import (
	"context"
	"fmt"

	"github.com/douhashi/issuenum/internal/category"
	"github.com/douhashi/issuenum/internal/logger"
	"github.com/douhashi/issuenum/internal/title"
	"github.com/douhashi/issuenum/internal/tracker"
)

// Result は1カテゴリ分の再採番の結果
type Result struct {
	Category string   `json:"category" yaml:"category"`
	Prefix   string   `json:"prefix" yaml:"prefix"`
	Total    int      `json:"total" yaml:"total"`
	Changes  []Change `json:"changes" yaml:"changes"`
	Applied  int      `json:"applied" yaml:"applied"`
	DryRun   bool     `json:"dry_run" yaml:"dry_run"`
}

// Renumberer はトラッカーから最新のIssueを読み、カテゴリの連番を揃える
type Renumberer struct {
	tracker         tracker.Tracker
	logger          logger.Logger
	width           int
	defaultCategory category.Category
	dryRun          bool
}

// Option はRenumbererの設定オプション
type Option func(*Renumberer)

// WithLogger はロガーを設定する
func WithLogger(l logger.Logger) Option {
	return func(r *Renumberer) {
		r.logger = l
	}
}

// WithWidth はゼロ埋めの最小桁数を設定する
func WithWidth(width int) Option {
	return func(r *Renumberer) {
		r.width = width
	}
}

// WithDefaultCategory は既知ラベルを持たないIssueの分類先を設定する
func WithDefaultCategory(c category.Category) Option {
	return func(r *Renumberer) {
		r.defaultCategory = c
	}
}

// WithDryRun は更新を行わず計画だけを返すモードにする
func WithDryRun(dryRun bool) Option {
	return func(r *Renumberer) {
		r.dryRun = dryRun
	}
}

// New は新しいRenumbererを作成する
func New(t tracker.Tracker, opts ...Option) *Renumberer {
	r := &Renumberer{
		tracker:         t,
		logger:          logger.Nop(),
		width:           title.DefaultWidth,
		defaultCategory: category.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reorder はカテゴリのIssueを 1..K に採番し直す。
// タイトルが変わるIssueだけを更新し、最初の失敗で中断する。適用済みの更新は戻さない。
func (r *Renumberer) Reorder(ctx context.Context, cat category.Category) (*Result, error) {
	log := r.logger.WithFields("category", cat.Prefix)

	issues, err := r.tracker.ListIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues for %s: %w", cat.Prefix, err)
	}

	members := Members(cat, issues, r.defaultCategory)
	plan := Plan(cat.Prefix, members, r.width)

	result := &Result{
		Category: cat.Label,
		Prefix:   cat.Prefix,
		Total:    len(members),
		Changes:  Pending(plan),
		DryRun:   r.dryRun,
	}

	log.Debug("Reorder planned", "total", result.Total, "pending", len(result.Changes))

	if r.dryRun {
		for _, c := range result.Changes {
			log.Info("Would update title", "issue", c.Number, "from", c.From, "to", c.To)
		}
		return result, nil
	}

	for _, c := range result.Changes {
		if err := r.tracker.UpdateTitle(ctx, c.Number, c.To); err != nil {
			log.Error("Failed to update title", "issue", c.Number, "applied", result.Applied, "error", err)
			return result, fmt.Errorf("failed to update title of #%d in %s: %w", c.Number, cat.Prefix, err)
		}
		result.Applied++
		log.Info("Title updated", "issue", c.Number, "from", c.From, "to", c.To)
	}

	log.Info("Reorder completed", "total", result.Total, "applied", result.Applied)
	return result, nil
}
