package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectStructure(t *testing.T) {
	t.Run("必要なファイルとディレクトリが存在する", func(t *testing.T) {
		for _, path := range []string{"go.mod", "main.go", ".gitignore", "cmd", "internal", "README.md"} {
			_, err := os.Stat(path)
			assert.NoError(t, err, "%s does not exist", path)
		}
	})

	t.Run("go.modにモジュール名が含まれている", func(t *testing.T) {
		content, err := os.ReadFile("go.mod")
		require.NoError(t, err)
		assert.Contains(t, string(content), "module github.com/douhashi/issuenum")
	})
}
