package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/douhashi/issuenum/internal/event"
	"github.com/douhashi/issuenum/internal/processor"
	"github.com/spf13/cobra"
)

// モック用の関数変数
var getEnvFunc = os.Getenv

func newProcessCmd() *cobra.Command {
	var (
		eventPath string
		issue     int
		dryRun    bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "イベントのIssueを処理する",
		Long: `issues イベントのIssueにラベルを補完し、関係するカテゴリの連番を振り直します。

既定では GITHUB_EVENT_PATH のペイロードを読み込みます。
--issue を指定するとトラッカーから取得したIssueを処理します。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			ctx := cmd.Context()
			log := appLog

			var (
				trg  processor.Trigger
				hint string
			)
			if issue == 0 {
				if name := getEnvFunc("GITHUB_EVENT_NAME"); name != "" && name != event.Name {
					log.Info("Skipping unsupported event", "event", name)
					return nil
				}
				if eventPath == "" {
					eventPath = getEnvFunc("GITHUB_EVENT_PATH")
				}
				ev, err := event.Load(eventPath)
				if err != nil {
					return err
				}
				if !event.Supported(ev.Action) {
					log.Info("Skipping unsupported action", "action", ev.Action, "issue", ev.Trigger.Number)
					return nil
				}
				trg = ev.Trigger
				hint = ev.Repository
				log = log.WithFields("action", ev.Action)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			t, err := newTrackerFunc(cfg, hint, log)
			if err != nil {
				return err
			}

			if issue != 0 {
				fetched, err := t.GetIssue(ctx, issue)
				if err != nil {
					return fmt.Errorf("failed to get issue #%d: %w", issue, err)
				}
				trg = processor.Trigger{Number: fetched.Number, Title: fetched.Title, Labels: fetched.Labels}
			}

			p := processor.New(t,
				processor.WithLogger(log),
				processor.WithDefaultCategory(cfg.DefaultCategory()),
				processor.WithWidth(cfg.Numbering.Width),
				processor.WithExclusiveLabels(cfg.Numbering.ExclusiveLabels),
				processor.WithDryRun(dryRun),
			)
			outcome, procErr := p.Process(ctx, trg)
			if outcome != nil && (procErr == nil || len(outcome.Results) > 0) {
				if err := printOutcome(cmd.OutOrStdout(), output, outcome); err != nil {
					return errors.Join(procErr, err)
				}
			}
			if procErr != nil {
				return fmt.Errorf("failed to process issue #%d: %w", trg.Number, procErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventPath, "event", "e", "", "イベントペイロードのパス（既定: $GITHUB_EVENT_PATH）")
	cmd.Flags().IntVarP(&issue, "issue", "i", 0, "イベントの代わりに処理するIssue番号")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "トラッカーを変更せずに結果だけを表示する")
	cmd.Flags().StringVarP(&output, "output", "o", formatText, "出力形式（text / json / yaml）")
	cmd.MarkFlagsMutuallyExclusive("event", "issue")

	return cmd
}
