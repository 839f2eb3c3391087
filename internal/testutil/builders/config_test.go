package builders

import (
	"testing"

	"github.com/douhashi/issuenum/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder(t *testing.T) {
	t.Run("デフォルト設定は検証を通る", func(t *testing.T) {
		cfg := NewConfigBuilder().Build()

		require.NoError(t, cfg.Validate())
		assert.Equal(t, config.ProviderGitHub, cfg.Tracker.Provider)
		assert.Equal(t, "douhashi/issuenum", cfg.Repository())
		assert.Equal(t, 3, cfg.Numbering.Width)
	})

	t.Run("GitLab設定", func(t *testing.T) {
		cfg := NewConfigBuilder().
			WithGitLab("glpat", "group/sub/project").
			WithGitLabBaseURL("https://gitlab.example.com").
			WithDefaultLabel("ops").
			WithWidth(2).
			WithExclusiveLabels(true).
			Build()

		require.NoError(t, cfg.Validate())
		assert.Equal(t, config.ProviderGitLab, cfg.Tracker.Provider)
		assert.Equal(t, "group/sub/project", cfg.Repository())
		assert.Equal(t, "https://gitlab.example.com", cfg.GitLab.BaseURL)
		assert.Equal(t, "OPS", cfg.DefaultCategory().Prefix)
		assert.Equal(t, 2, cfg.Numbering.Width)
		assert.True(t, cfg.Numbering.ExclusiveLabels)
	})

	t.Run("Buildはコピーを返す", func(t *testing.T) {
		b := NewConfigBuilder()
		first := b.Build()
		b.WithWidth(5)

		assert.Equal(t, 3, first.Numbering.Width)
		assert.Equal(t, 5, b.Build().Numbering.Width)
	})
}
