// Package config はissuenumの設定（設定ファイル・環境変数）を読み込む
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/douhashi/issuenum/internal/category"
	"github.com/douhashi/issuenum/internal/title"
	"github.com/spf13/viper"
)

const (
	// ProviderGitHub はGitHubをトラッカーとして使う
	ProviderGitHub = "github"
	// ProviderGitLab はGitLabをトラッカーとして使う
	ProviderGitLab = "gitlab"

	envPrefix = "ISSUENUM"
)

// Config はアプリケーション全体の設定
type Config struct {
	Tracker   TrackerConfig   `mapstructure:"tracker"`
	GitHub    GitHubConfig    `mapstructure:"github"`
	GitLab    GitLabConfig    `mapstructure:"gitlab"`
	Numbering NumberingConfig `mapstructure:"numbering"`
}

// TrackerConfig は使用するトラッカーの設定
type TrackerConfig struct {
	Provider string `mapstructure:"provider"`
}

// GitHubConfig はGitHub関連の設定
type GitHubConfig struct {
	Token      string `mapstructure:"token"`
	Repository string `mapstructure:"repository"`
	APIURL     string `mapstructure:"api_url"`
}

// GitLabConfig はGitLab関連の設定
type GitLabConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
	Project string `mapstructure:"project"`
}

// NumberingConfig は採番の設定
type NumberingConfig struct {
	// DefaultLabel は既知のラベルがないIssueに付与するラベル
	DefaultLabel string `mapstructure:"default_label"`
	// Width はゼロ埋めの最小桁数
	Width int `mapstructure:"width"`
	// ExclusiveLabels が true なら採用しなかったカテゴリラベルを外す
	ExclusiveLabels bool `mapstructure:"exclusive_labels"`
}

// NewConfig はデフォルト値で新しいConfigを作成する
func NewConfig() *Config {
	return &Config{
		Tracker: TrackerConfig{
			Provider: ProviderGitHub,
		},
		GitHub: GitHubConfig{
			APIURL: "https://api.github.com/",
		},
		GitLab: GitLabConfig{
			BaseURL: "https://gitlab.com",
		},
		Numbering: NumberingConfig{
			DefaultLabel: category.DefaultLabel,
			Width:        title.DefaultWidth,
		},
	}
}

// DefaultSearchPaths は --config が指定されない場合に探す設定ファイル
func DefaultSearchPaths() []string {
	paths := []string{
		filepath.Join(".github", "issuenum.yml"),
		filepath.Join(".github", "issuenum.yaml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "issuenum", "issuenum.yml"))
	}
	return paths
}

// FindConfigFile は存在する最初の設定ファイルのパスを返す。見つからなければ空文字
func FindConfigFile(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load は設定ファイルと環境変数から設定を読み込む。configPath が空なら環境変数とデフォルト値のみ
func (c *Config) Load(configPath string) error {
	v := viper.New()

	// 環境変数の設定（ISSUENUM_GITHUB_TOKEN など）
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// GitHub Actions / GitLab CI の標準の環境変数もサポート
	v.BindEnv("github.token", envPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN", "GH_TOKEN")
	v.BindEnv("github.repository", envPrefix+"_GITHUB_REPOSITORY", "GITHUB_REPOSITORY")
	v.BindEnv("github.api_url", envPrefix+"_GITHUB_API_URL", "GITHUB_API_URL")
	v.BindEnv("gitlab.token", envPrefix+"_GITLAB_TOKEN", "GITLAB_TOKEN")
	v.BindEnv("gitlab.base_url", envPrefix+"_GITLAB_BASE_URL", "GITLAB_BASE_URL", "CI_SERVER_URL")
	v.BindEnv("gitlab.project", envPrefix+"_GITLAB_PROJECT", "GITLAB_PROJECT", "CI_PROJECT_PATH")

	// デフォルト値の設定
	defaults := NewConfig()
	v.SetDefault("tracker.provider", defaults.Tracker.Provider)
	v.SetDefault("github.api_url", defaults.GitHub.APIURL)
	v.SetDefault("gitlab.base_url", defaults.GitLab.BaseURL)
	v.SetDefault("numbering.default_label", defaults.Numbering.DefaultLabel)
	v.SetDefault("numbering.width", defaults.Numbering.Width)
	v.SetDefault("numbering.exclusive_labels", defaults.Numbering.ExclusiveLabels)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	c.Tracker.Provider = strings.ToLower(strings.TrimSpace(c.Tracker.Provider))
	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	switch c.Tracker.Provider {
	case ProviderGitHub:
		if c.GitHub.Token == "" {
			return errors.New("GitHub token is required (set GITHUB_TOKEN)")
		}
	case ProviderGitLab:
		if c.GitLab.Token == "" {
			return errors.New("GitLab token is required (set GITLAB_TOKEN)")
		}
	default:
		return fmt.Errorf("unknown tracker provider %q (expected %s or %s)", c.Tracker.Provider, ProviderGitHub, ProviderGitLab)
	}

	if _, ok := category.Lookup(c.Numbering.DefaultLabel); !ok {
		return fmt.Errorf("numbering.default_label %q is not a known category label", c.Numbering.DefaultLabel)
	}

	if c.Numbering.Width < 1 {
		return errors.New("numbering.width must be at least 1")
	}

	return nil
}

// DefaultCategory は numbering.default_label のカテゴリを返す。未知のラベルなら bug
func (c *Config) DefaultCategory() category.Category {
	if cat, ok := category.Lookup(c.Numbering.DefaultLabel); ok {
		return cat
	}
	return category.Default()
}

// Repository は設定されたリポジトリ（GitHubは owner/repo、GitLabはプロジェクトパス）を返す
func (c *Config) Repository() string {
	if c.Tracker.Provider == ProviderGitLab {
		return c.GitLab.Project
	}
	return c.GitHub.Repository
}
