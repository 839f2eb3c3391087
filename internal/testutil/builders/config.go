package builders

import (
	"github.com/douhashi/issuenum/internal/config"
)

// ConfigBuilder builds config.Config instances for testing
type ConfigBuilder struct {
	cfg *config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with a valid GitHub configuration
func NewConfigBuilder() *ConfigBuilder {
	cfg := config.NewConfig()
	cfg.GitHub.Token = "test-token"
	cfg.GitHub.Repository = "douhashi/issuenum"
	return &ConfigBuilder{cfg: cfg}
}

// WithGitHub sets the GitHub token and repository and selects GitHub as the tracker
func (b *ConfigBuilder) WithGitHub(token, repository string) *ConfigBuilder {
	b.cfg.Tracker.Provider = config.ProviderGitHub
	b.cfg.GitHub.Token = token
	b.cfg.GitHub.Repository = repository
	return b
}

// WithGitHubAPIURL sets the GitHub API base URL
func (b *ConfigBuilder) WithGitHubAPIURL(url string) *ConfigBuilder {
	b.cfg.GitHub.APIURL = url
	return b
}

// WithGitLab sets the GitLab token and project and selects GitLab as the tracker
func (b *ConfigBuilder) WithGitLab(token, project string) *ConfigBuilder {
	b.cfg.Tracker.Provider = config.ProviderGitLab
	b.cfg.GitLab.Token = token
	b.cfg.GitLab.Project = project
	return b
}

// WithGitLabBaseURL sets the GitLab instance URL
func (b *ConfigBuilder) WithGitLabBaseURL(url string) *ConfigBuilder {
	b.cfg.GitLab.BaseURL = url
	return b
}

// WithDefaultLabel sets the label given to issues without any label
func (b *ConfigBuilder) WithDefaultLabel(label string) *ConfigBuilder {
	b.cfg.Numbering.DefaultLabel = label
	return b
}

// WithWidth sets the minimum zero-padding width
func (b *ConfigBuilder) WithWidth(width int) *ConfigBuilder {
	b.cfg.Numbering.Width = width
	return b
}

// WithExclusiveLabels enables removal of non-winning category labels
func (b *ConfigBuilder) WithExclusiveLabels(enabled bool) *ConfigBuilder {
	b.cfg.Numbering.ExclusiveLabels = enabled
	return b
}

// Build returns a copy of the built config
func (b *ConfigBuilder) Build() *config.Config {
	cfg := *b.cfg
	return &cfg
}
