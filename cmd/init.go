package cmd

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/douhashi/issuenum/internal/labels"
	"github.com/spf13/cobra"
)

//go:embed templates/*
var templateFS embed.FS

// モック用の関数変数
var (
	writeFileFunc = os.WriteFile
	mkdirAllFunc  = os.MkdirAll
	statFunc      = os.Stat
)

// scaffold は init が配置するファイル
type scaffold struct {
	src string
	dst string
}

var scaffolds = []scaffold{
	{src: "templates/issuenum.yml", dst: filepath.Join(".github", "issuenum.yml")},
	{src: "templates/workflow.yml", dst: filepath.Join(".github", "workflows", "issuenum.yml")},
}

func newInitCmd() *cobra.Command {
	var (
		force      bool
		skipLabels bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "リポジトリを初期化",
		Long: `設定ファイルとGitHub Actionsのワークフローを配置し、カテゴリラベルを作成します。
ラベルの作成に失敗しても初期化は続行します。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			steps := len(scaffolds) + 1

			for i, s := range scaffolds {
				fmt.Fprintf(out, "[%d/%d] %-36s ", i+1, steps, s.dst)
				if err := writeScaffold(out, s, force); err != nil {
					fmt.Fprintln(out, "❌")
					return err
				}
			}

			fmt.Fprintf(out, "[%d/%d] %-36s ", steps, steps, "カテゴリラベルの作成")
			if skipLabels {
				fmt.Fprintln(out, "⏭️  (スキップ)")
				return nil
			}
			setupLabels(cmd, out, errOut)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "既存のファイルを上書きする")
	cmd.Flags().BoolVar(&skipLabels, "skip-labels", false, "カテゴリラベルを作成しない")

	return cmd
}

func writeScaffold(out io.Writer, s scaffold, force bool) error {
	if _, err := statFunc(s.dst); err == nil && !force {
		fmt.Fprintln(out, "✅ (既存)")
		return nil
	}

	data, err := templateFS.ReadFile(s.src)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", s.src, err)
	}
	if err := mkdirAllFunc(filepath.Dir(s.dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.dst, err)
	}
	if err := writeFileFunc(s.dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.dst, err)
	}

	fmt.Fprintln(out, "✅")
	return nil
}

// setupLabels はラベルを作成する。失敗は警告に留める
func setupLabels(cmd *cobra.Command, out, errOut io.Writer) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(out, "⚠️")
		fmt.Fprintf(errOut, "   ラベルを作成できませんでした: %v\n", err)
		fmt.Fprintln(errOut, "   後で issuenum labels を実行してください")
		return
	}

	t, err := newTrackerFunc(cfg, "", appLog)
	if err == nil {
		var created []string
		created, err = labels.Ensure(cmd.Context(), t, appLog)
		if err == nil {
			fmt.Fprintf(out, "✅ (%d件作成)\n", len(created))
			return
		}
	}

	fmt.Fprintln(out, "⚠️")
	fmt.Fprintf(errOut, "   ラベルを作成できませんでした: %v\n", err)
	fmt.Fprintln(errOut, "   後で issuenum labels を実行してください")
}
