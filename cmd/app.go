package cmd

import (
	"fmt"

	"github.com/douhashi/issuenum/internal/config"
	"github.com/douhashi/issuenum/internal/github"
	"github.com/douhashi/issuenum/internal/gitlab"
	"github.com/douhashi/issuenum/internal/logger"
	"github.com/douhashi/issuenum/internal/repoinfo"
	"github.com/douhashi/issuenum/internal/tracker"
)

// モック用の関数変数
var (
	newTrackerFunc = newTracker
	workDir        = "."
)

// loadConfig は --config または既定の場所の設定ファイルと環境変数から設定を読み込み、検証する
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.FindConfigFile(config.DefaultSearchPaths())
	}

	cfg := config.NewConfig()
	if err := cfg.Load(path); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	appLog.Debug("Config loaded", logger.SanitizeArgs(
		"path", path,
		"provider", cfg.Tracker.Provider,
		"github_token", cfg.GitHub.Token,
		"gitlab_token", cfg.GitLab.Token,
		"default_label", cfg.Numbering.DefaultLabel,
		"width", cfg.Numbering.Width,
		"exclusive_labels", cfg.Numbering.ExclusiveLabels,
	)...)
	return cfg, nil
}

// newTracker は設定に応じたトラッカーのバックエンドを作成する。
// リポジトリは --repo、hint（イベントのペイロードなど）、設定、gitのoriginの順に決める
func newTracker(cfg *config.Config, hint string, log logger.Logger) (tracker.Tracker, error) {
	repo, err := repoinfo.Resolve(workDir, repoFlag, hint, cfg.Repository())
	if err != nil {
		return nil, err
	}
	log = log.WithFields("provider", cfg.Tracker.Provider, "repository", repo.String())
	log.Debug("Repository resolved")

	switch cfg.Tracker.Provider {
	case config.ProviderGitLab:
		client, err := gitlab.NewClient(cfg.GitLab.Token, repo.Path,
			gitlab.WithBaseURL(cfg.GitLab.BaseURL),
			gitlab.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitLab client: %w", err)
		}
		return client, nil
	default:
		client, err := github.NewClient(cfg.GitHub.Token, repo.Owner(), repo.Name(),
			github.WithBaseURL(cfg.GitHub.APIURL),
			github.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub client: %w", err)
		}
		return client, nil
	}
}
