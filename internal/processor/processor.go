// Package processor は1件のIssueイベントを受けて、ラベルの補完とカテゴリの再採番を行う
package processor

import (
	"context"
	"fmt"

	"github.com/douhashi/issuenum/internal/category"
	"github.com/douhashi/issuenum/internal/logger"
	"github.com/douhashi/issuenum/internal/renumber"
	"github.com/douhashi/issuenum/internal/title"
	"github.com/douhashi/issuenum/internal/tracker"
)

// Trigger は処理対象のIssueのイベント時点の状態
type Trigger struct {
	Number int
	Title  string
	// PreviousTitle はタイトル編集イベントでの変更前タイトル（なければ空）
	PreviousTitle string
	Labels        []string
}

// Outcome は1回の処理結果
type Outcome struct {
	Issue         int                `json:"issue" yaml:"issue"`
	Category      string             `json:"category" yaml:"category"`
	Previous      []string           `json:"previous,omitempty" yaml:"previous,omitempty"`
	LabelAdded    string             `json:"label_added,omitempty" yaml:"label_added,omitempty"`
	LabelsRemoved []string           `json:"labels_removed,omitempty" yaml:"labels_removed,omitempty"`
	Results       []*renumber.Result `json:"results" yaml:"results"`
}

// Processor はトリガーごとの処理を組み立てる
type Processor struct {
	tracker         tracker.Tracker
	logger          logger.Logger
	defaultCategory category.Category
	width           int
	exclusiveLabels bool
	dryRun          bool
}

// Option はProcessorの設定オプション
type Option func(*Processor)

// WithLogger はロガーを設定する
func WithLogger(l logger.Logger) Option {
	return func(p *Processor) {
		p.logger = l
	}
}

// WithDefaultCategory はラベルのないIssueに付与するカテゴリを設定する
func WithDefaultCategory(c category.Category) Option {
	return func(p *Processor) {
		p.defaultCategory = c
	}
}

// WithWidth はゼロ埋めの最小桁数を設定する
func WithWidth(width int) Option {
	return func(p *Processor) {
		p.width = width
	}
}

// WithExclusiveLabels は採用しなかったカテゴリラベルを外すかを設定する
func WithExclusiveLabels(enabled bool) Option {
	return func(p *Processor) {
		p.exclusiveLabels = enabled
	}
}

// WithDryRun はトラッカーを変更しないモードにする
func WithDryRun(dryRun bool) Option {
	return func(p *Processor) {
		p.dryRun = dryRun
	}
}

// New は新しいProcessorを作成する
func New(t tracker.Tracker, opts ...Option) *Processor {
	p := &Processor{
		tracker:         t,
		logger:          logger.Nop(),
		defaultCategory: category.Default(),
		width:           title.DefaultWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process はトリガーのIssueを処理する。
// ラベルがなければ既定ラベルを付与してから分類し、新しいカテゴリ、続いて旧カテゴリの順に再採番する。
func (p *Processor) Process(ctx context.Context, trg Trigger) (*Outcome, error) {
	log := p.logger.WithFields("issue", trg.Number)
	outcome := &Outcome{Issue: trg.Number}

	labels := trg.Labels
	if len(labels) == 0 {
		label := p.defaultCategory.Label
		if !p.dryRun {
			if err := p.tracker.AddLabel(ctx, trg.Number, label); err != nil {
				return outcome, fmt.Errorf("failed to add label %s to #%d: %w", label, trg.Number, err)
			}
		}
		log.Info("Default label added", "label", label, "dry_run", p.dryRun)
		labels = []string{label}
		outcome.LabelAdded = label
	}

	newCat := category.ClassifyWithDefault(labels, p.defaultCategory)
	outcome.Category = newCat.Label

	oldCats := previousCategories(newCat, trg.PreviousTitle, trg.Title)
	for _, c := range oldCats {
		outcome.Previous = append(outcome.Previous, c.Label)
	}
	log.Debug("Issue classified", "category", newCat.Prefix, "previous", outcome.Previous)

	if p.exclusiveLabels {
		removed, err := p.removeOtherCategoryLabels(ctx, trg.Number, labels, newCat)
		outcome.LabelsRemoved = removed
		if err != nil {
			return outcome, err
		}
	}

	r := renumber.New(p.tracker,
		renumber.WithLogger(p.logger),
		renumber.WithWidth(p.width),
		renumber.WithDefaultCategory(p.defaultCategory),
		renumber.WithDryRun(p.dryRun),
	)

	// 新しいカテゴリを先に確定させる
	for _, cat := range append([]category.Category{newCat}, oldCats...) {
		result, err := r.Reorder(ctx, cat)
		if result != nil {
			outcome.Results = append(outcome.Results, result)
		}
		if err != nil {
			return outcome, fmt.Errorf("failed to reorder %s: %w", cat.Prefix, err)
		}
	}

	return outcome, nil
}

// previousCategories はタイトルに埋め込まれたプレフィックスのうち、新しいカテゴリと異なるものを返す
func previousCategories(newCat category.Category, titles ...string) []category.Category {
	seen := map[string]bool{newCat.Prefix: true}
	var out []category.Category
	for _, s := range titles {
		n := title.Parse(s)
		if !n.HasNumber {
			continue
		}
		c, ok := category.FromPrefix(n.Prefix)
		if !ok || seen[c.Prefix] {
			continue
		}
		seen[c.Prefix] = true
		out = append(out, c)
	}
	return out
}

// removeOtherCategoryLabels は採用したカテゴリ以外のカテゴリラベルを外す
func (p *Processor) removeOtherCategoryLabels(ctx context.Context, number int, labels []string, keep category.Category) ([]string, error) {
	if len(category.Matching(labels)) < 2 {
		return nil, nil
	}

	var removed []string
	for _, l := range labels {
		c, ok := category.Lookup(l)
		if !ok || c.Prefix == keep.Prefix {
			continue
		}
		if !p.dryRun {
			if err := p.tracker.RemoveLabel(ctx, number, l); err != nil {
				return removed, fmt.Errorf("failed to remove label %s from #%d: %w", l, number, err)
			}
		}
		p.logger.Info("Category label removed", "issue", number, "label", l, "dry_run", p.dryRun)
		removed = append(removed, l)
	}
	return removed, nil
}
