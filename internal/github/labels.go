package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/douhashi/issuenum/internal/tracker"
	"github.com/google/go-github/v50/github"
)

// EnsureLabels は必要なラベルがリポジトリに存在することを保証し、新規作成したラベル名を返す
func (c *Client) EnsureLabels(ctx context.Context, defs []tracker.LabelDefinition) ([]string, error) {
	existing, err := c.listLabelNames(ctx)
	if err != nil {
		return nil, err
	}

	var created []string
	for _, def := range defs {
		// GitHubのラベル名は大文字小文字を区別しない
		if existing[strings.ToLower(def.Name)] {
			continue
		}

		newLabel := &github.Label{
			Name:        github.String(def.Name),
			Color:       github.String(def.Color),
			Description: github.String(def.Description),
		}
		if _, _, err := c.github.Issues.CreateLabel(ctx, c.owner, c.repo, newLabel); err != nil {
			return created, fmt.Errorf("failed to create label %s: %w", def.Name, classifyError("create label", err))
		}
		c.logger.Info("Label created", "label", def.Name)
		created = append(created, def.Name)
	}

	return created, nil
}

// listLabelNames はリポジトリの全ラベル名（小文字）を取得する
func (c *Client) listLabelNames(ctx context.Context) (map[string]bool, error) {
	names := make(map[string]bool)
	opts := &github.ListOptions{PerPage: perPage}
	for {
		labels, resp, err := c.github.Issues.ListLabels(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repository labels: %w", classifyError("list labels", err))
		}
		for _, l := range labels {
			names[strings.ToLower(l.GetName())] = true
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}
