package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/douhashi/issuenum/internal/logger"
	"github.com/douhashi/issuenum/internal/tracker"
	"github.com/douhashi/issuenum/internal/version"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	verbose  bool
	repoFlag string
	rootCmd  *cobra.Command
	appLog   logger.Logger = logger.Nop()
)

func init() {
	rootCmd = NewRootCmd()
}

// NewRootCmd creates a new root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	addCommands(cmd)
	return cmd
}

func addCommands(cmd *cobra.Command) {
	cmd.AddCommand(newProcessCmd())
	cmd.AddCommand(newReorderCmd())
	cmd.AddCommand(newLabelsCmd())
	cmd.AddCommand(newInitCmd())
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issuenum",
		Short: "Issueタイトルにカテゴリ別の連番を振るツール",
		Long: `issuenumは、Issueのラベルからカテゴリを判定し、
タイトルを BUG-001: や FEAT-002: のような連番付きの形式に揃えるCLIツールです。
GitHub Actionsの issues イベントから実行することを想定しています。`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// ロガーの初期化（標準出力はコマンドの結果表示に使う）
			opts := []logger.Option{logger.WithOutput(cmd.ErrOrStderr())}
			if verbose {
				opts = append(opts, logger.WithLevel("debug"))
			}
			l, err := logger.NewFromEnv(opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			appLog = l.WithFields("run_id", uuid.NewString())
			return nil
		},
	}

	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "設定ファイルのパス")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細出力")
	cmd.PersistentFlags().StringVarP(&repoFlag, "repo", "R", "", "対象リポジトリ（owner/repo またはGitLabのプロジェクトパス）")

	return cmd
}

// Execute はルートコマンドを実行する。SIGINT / SIGTERM で実行中のAPI呼び出しを中断する
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		stop()
		os.Exit(1)
	}
}

// errorHint はトラッカーのエラー種別に応じた対処方法を返す
func errorHint(err error) string {
	switch {
	case tracker.IsRateLimit(err):
		return "APIのレート制限に達しました。しばらく待ってから再実行してください"
	case tracker.IsAuthentication(err):
		return "トークンにIssueへの書き込み権限があるか確認してください"
	default:
		return ""
	}
}
