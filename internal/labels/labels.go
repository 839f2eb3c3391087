// Package labels はカテゴリラベルの定義をリポジトリに用意する
package labels

import (
	"context"
	"errors"
	"fmt"

	"github.com/douhashi/issuenum/internal/category"
	"github.com/douhashi/issuenum/internal/logger"
	"github.com/douhashi/issuenum/internal/tracker"
)

// ErrUnsupported はバックエンドがラベル作成に対応していない
var ErrUnsupported = errors.New("tracker does not support creating labels")

// Definitions はカテゴリ表から作成するラベル定義を返す
func Definitions() []tracker.LabelDefinition {
	cats := category.All()
	defs := make([]tracker.LabelDefinition, 0, len(cats))
	for _, c := range cats {
		defs = append(defs, tracker.LabelDefinition{
			Name:        c.Label,
			Color:       c.Color,
			Description: c.Description,
		})
	}
	return defs
}

// Ensure は存在しないカテゴリラベルを作成し、作成したラベル名を返す
func Ensure(ctx context.Context, t tracker.Tracker, log logger.Logger) ([]string, error) {
	if log == nil {
		log = logger.Nop()
	}

	ensurer, ok := t.(tracker.LabelEnsurer)
	if !ok {
		return nil, ErrUnsupported
	}

	created, err := ensurer.EnsureLabels(ctx, Definitions())
	if err != nil {
		return created, fmt.Errorf("failed to ensure labels: %w", err)
	}

	for _, name := range created {
		log.Info("Label created", "label", name)
	}
	log.Debug("Labels ensured", "created", len(created))
	return created, nil
}
