// Package gitlab はGitLabのプロジェクトIssueを tracker.Tracker として扱う
package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/douhashi/issuenum/internal/logger"
	"github.com/douhashi/issuenum/internal/tracker"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	// DefaultBaseURL はgitlab.comのURL
	DefaultBaseURL = "https://gitlab.com"
	perPage        = 100
)

// Client はGitLab APIクライアントのラッパー。1つのプロジェクトに束縛される
type Client struct {
	gl      *gitlab.Client
	project string
	logger  logger.Logger
}

type options struct {
	baseURL string
	logger  logger.Logger
}

// Option はクライアントの設定オプション
type Option func(*options)

// WithBaseURL はGitLabインスタンスのURLを設定する（/api/v4 は不要）
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithLogger はロガーを設定する
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewClient はプロジェクトパス（group/project）に束縛したクライアントを作成する
func NewClient(token, project string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New("GitLab token is required")
	}
	if project == "" {
		return nil, errors.New("project is required")
	}

	o := &options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Nop()
	}

	httpClient := &http.Client{Transport: tracker.NewLoggingTransport(http.DefaultTransport, o.logger)}
	gl, err := gitlab.NewClient(token,
		gitlab.WithBaseURL(strings.TrimSuffix(o.baseURL, "/")+"/api/v4"),
		gitlab.WithHTTPClient(httpClient),
		gitlab.WithoutRetries(),
	)
	if err != nil {
		return nil, fmt.Errorf("gitlab client: %w", err)
	}

	return &Client{
		gl:      gl,
		project: project,
		logger:  o.logger.WithFields("project", project),
	}, nil
}

// Repository は束縛しているプロジェクトパスを返す
func (c *Client) Repository() string {
	return c.project
}

// ListIssues は状態を問わずプロジェクトの全Issueを取得する
func (c *Client) ListIssues(ctx context.Context) ([]tracker.Issue, error) {
	opts := &gitlab.ListProjectIssuesOptions{
		State:   gitlab.Ptr("all"),
		OrderBy: gitlab.Ptr("created_at"),
		Sort:    gitlab.Ptr("asc"),
	}
	opts.PerPage = perPage

	var allIssues []tracker.Issue
	for {
		issues, resp, err := c.gl.Issues.ListProjectIssues(c.project, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, classifyError("list issues", err)
		}
		for _, issue := range issues {
			allIssues = append(allIssues, toIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug("Issues listed", "count", len(allIssues))
	return allIssues, nil
}

// GetIssue はプロジェクト内番号（IID）でIssueを取得する
func (c *Client) GetIssue(ctx context.Context, number int) (*tracker.Issue, error) {
	issue, _, err := c.gl.Issues.GetIssue(c.project, int64(number), gitlab.WithContext(ctx))
	if err != nil {
		return nil, classifyError("get issue", err)
	}
	result := toIssue(issue)
	return &result, nil
}

// AddLabel はIssueにラベルを付与する
func (c *Client) AddLabel(ctx context.Context, number int, label string) error {
	opts := &gitlab.UpdateIssueOptions{
		AddLabels: (*gitlab.LabelOptions)(&[]string{label}),
	}
	if _, _, err := c.gl.Issues.UpdateIssue(c.project, int64(number), opts, gitlab.WithContext(ctx)); err != nil {
		return classifyError("add label", err)
	}
	c.logger.Info("Label added", "issue", number, "label", label)
	return nil
}

// RemoveLabel はIssueからラベルを外す。GitLabは付いていないラベルの削除も成功を返す
func (c *Client) RemoveLabel(ctx context.Context, number int, label string) error {
	opts := &gitlab.UpdateIssueOptions{
		RemoveLabels: (*gitlab.LabelOptions)(&[]string{label}),
	}
	if _, _, err := c.gl.Issues.UpdateIssue(c.project, int64(number), opts, gitlab.WithContext(ctx)); err != nil {
		classified := classifyError("remove label", err)
		if tracker.IsNotFound(classified) {
			return nil
		}
		return classified
	}
	c.logger.Info("Label removed", "issue", number, "label", label)
	return nil
}

// UpdateTitle はIssueのタイトルを更新する
func (c *Client) UpdateTitle(ctx context.Context, number int, title string) error {
	opts := &gitlab.UpdateIssueOptions{
		Title: gitlab.Ptr(title),
	}
	if _, _, err := c.gl.Issues.UpdateIssue(c.project, int64(number), opts, gitlab.WithContext(ctx)); err != nil {
		return classifyError("update title", err)
	}
	return nil
}

// EnsureLabels は存在しないプロジェクトラベルを作成する
func (c *Client) EnsureLabels(ctx context.Context, defs []tracker.LabelDefinition) ([]string, error) {
	existing := make(map[string]bool)
	opts := &gitlab.ListLabelsOptions{}
	opts.PerPage = perPage
	for {
		labels, resp, err := c.gl.Labels.ListLabels(c.project, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list project labels: %w", classifyError("list labels", err))
		}
		for _, l := range labels {
			existing[strings.ToLower(l.Name)] = true
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	var created []string
	for _, def := range defs {
		if existing[strings.ToLower(def.Name)] {
			continue
		}
		createOpts := &gitlab.CreateLabelOptions{
			Name:        gitlab.Ptr(def.Name),
			Color:       gitlab.Ptr("#" + strings.TrimPrefix(def.Color, "#")),
			Description: gitlab.Ptr(def.Description),
		}
		if _, _, err := c.gl.Labels.CreateLabel(c.project, createOpts, gitlab.WithContext(ctx)); err != nil {
			return created, fmt.Errorf("failed to create label %s: %w", def.Name, classifyError("create label", err))
		}
		c.logger.Info("Label created", "label", def.Name)
		created = append(created, def.Name)
	}

	return created, nil
}

// toIssue はIIDをIssue番号として変換する
func toIssue(issue *gitlab.Issue) tracker.Issue {
	result := tracker.Issue{
		Number: int(issue.IID),
		Title:  issue.Title,
		Labels: append([]string{}, issue.Labels...),
		State:  issue.State,
	}
	if issue.CreatedAt != nil {
		result.CreatedAt = *issue.CreatedAt
	}
	return result
}

// classifyError はclient-goのエラーを tracker.Error に分類する
func classifyError(op string, err error) error {
	// client-goは404をErrorResponseではなく番兵エラーで返す
	if errors.Is(err, gitlab.ErrNotFound) {
		return tracker.NewError(op, http.StatusNotFound, "not found", err)
	}

	var respErr *gitlab.ErrorResponse
	if errors.As(err, &respErr) {
		status := 0
		if respErr.Response != nil {
			status = respErr.Response.StatusCode
		}
		return tracker.NewError(op, status, respErr.Message, err)
	}
	return tracker.WrapTransport(op, err)
}

var (
	_ tracker.Tracker      = (*Client)(nil)
	_ tracker.LabelEnsurer = (*Client)(nil)
)
