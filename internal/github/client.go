package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/douhashi/issuenum/internal/logger"
	"github.com/douhashi/issuenum/internal/tracker"
	"github.com/google/go-github/v50/github"
	"golang.org/x/oauth2"
)

const perPage = 100

// Client はGitHub APIクライアントのラッパー。1つのリポジトリに束縛される
type Client struct {
	github *github.Client
	owner  string
	repo   string
	logger logger.Logger
}

type options struct {
	baseURL string
	logger  logger.Logger
}

// Option はクライアントの設定オプション
type Option func(*options)

// WithBaseURL はAPIのベースURLを設定する（GitHub Enterprise Server 用）
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithLogger はロガーを設定する。HTTPリクエストもdebugレベルで記録される
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewClient は新しいGitHub APIクライアントを作成する
func NewClient(token, owner, repo string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}
	if owner == "" {
		return nil, errors.New("owner is required")
	}
	if repo == "" {
		return nil, errors.New("repo is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Nop()
	}

	// oauth2のトランスポートの下にログ出力を差し込む
	base := &http.Client{Transport: tracker.NewLoggingTransport(http.DefaultTransport, o.logger)}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	gh := github.NewClient(oauth2.NewClient(ctx, ts))

	if o.baseURL != "" {
		u, err := parseBaseURL(o.baseURL)
		if err != nil {
			return nil, err
		}
		gh.BaseURL = u
	}

	return &Client{
		github: gh,
		owner:  owner,
		repo:   repo,
		logger: o.logger.WithFields("owner", owner, "repo", repo),
	}, nil
}

// parseBaseURL はベースURLを末尾スラッシュ付きで解析する
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API URL %q: scheme and host are required", raw)
	}
	return u, nil
}

// Repository は束縛しているリポジトリを owner/repo 形式で返す
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// ListIssues は状態を問わずリポジトリの全Issueを取得する。プルリクエストは除外する
func (c *Client) ListIssues(ctx context.Context) ([]tracker.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:     "all",
		Sort:      "created",
		Direction: "asc",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var allIssues []tracker.Issue
	pages := 0
	for {
		issues, resp, err := c.github.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, classifyError("list issues", err)
		}
		pages++
		for _, issue := range issues {
			// issues APIはプルリクエストも返す
			if issue.IsPullRequest() {
				continue
			}
			allIssues = append(allIssues, toIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug("Issues listed", "count", len(allIssues), "pages", pages)
	return allIssues, nil
}

// GetIssue は単一のIssueを取得する
func (c *Client) GetIssue(ctx context.Context, number int) (*tracker.Issue, error) {
	issue, _, err := c.github.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, classifyError("get issue", err)
	}
	if issue.IsPullRequest() {
		return nil, &tracker.Error{
			Op:      "get issue",
			Type:    tracker.ErrorTypeNotFound,
			Message: fmt.Sprintf("#%d is a pull request", number),
		}
	}

	result := toIssue(issue)
	return &result, nil
}

// AddLabel はIssueにラベルを付与する
func (c *Client) AddLabel(ctx context.Context, number int, label string) error {
	if _, _, err := c.github.Issues.AddLabelsToIssue(ctx, c.owner, c.repo, number, []string{label}); err != nil {
		return classifyError("add label", err)
	}
	c.logger.Info("Label added", "issue", number, "label", label)
	return nil
}

// RemoveLabel はIssueからラベルを外す。付いていないラベル（404）は成功扱い
func (c *Client) RemoveLabel(ctx context.Context, number int, label string) error {
	_, err := c.github.Issues.RemoveLabelForIssue(ctx, c.owner, c.repo, number, label)
	if err != nil {
		classified := classifyError("remove label", err)
		if tracker.IsNotFound(classified) {
			c.logger.Debug("Label already absent", "issue", number, "label", label)
			return nil
		}
		return classified
	}
	c.logger.Info("Label removed", "issue", number, "label", label)
	return nil
}

// UpdateTitle はIssueのタイトルを更新する
func (c *Client) UpdateTitle(ctx context.Context, number int, title string) error {
	req := &github.IssueRequest{
		Title: github.String(title),
	}
	if _, _, err := c.github.Issues.Edit(ctx, c.owner, c.repo, number, req); err != nil {
		return classifyError("update title", err)
	}
	return nil
}

// toIssue はgo-githubのIssueを変換する
func toIssue(issue *github.Issue) tracker.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		if name := l.GetName(); name != "" {
			labels = append(labels, name)
		}
	}

	return tracker.Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Labels:    labels,
		State:     issue.GetState(),
		CreatedAt: issue.GetCreatedAt().Time,
	}
}

// classifyError はgo-githubのエラーを tracker.Error に分類する
func classifyError(op string, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &tracker.Error{
			Op:         op,
			Type:       tracker.ErrorTypeRateLimit,
			StatusCode: statusCode(rateErr.Response),
			Message:    rateErr.Message,
			Err:        err,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &tracker.Error{
			Op:         op,
			Type:       tracker.ErrorTypeRateLimit,
			StatusCode: statusCode(abuseErr.Response),
			Message:    abuseErr.Message,
			Err:        err,
		}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		return tracker.NewError(op, statusCode(respErr.Response), respErr.Message, err)
	}

	return tracker.WrapTransport(op, err)
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

var (
	_ tracker.Tracker      = (*Client)(nil)
	_ tracker.LabelEnsurer = (*Client)(nil)
)
