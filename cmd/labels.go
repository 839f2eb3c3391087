package cmd

import (
	"errors"
	"fmt"

	"github.com/douhashi/issuenum/internal/labels"
	"github.com/spf13/cobra"
)

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "カテゴリラベルを作成する",
		Long:  `リポジトリに存在しないカテゴリラベル（bug, test, feature, documentation, ops, duplicate）を作成します。`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			t, err := newTrackerFunc(cfg, "", appLog)
			if err != nil {
				return err
			}

			created, err := labels.Ensure(cmd.Context(), t, appLog)
			if errors.Is(err, labels.ErrUnsupported) {
				return fmt.Errorf("%s: %w", cfg.Tracker.Provider, err)
			}

			out := cmd.OutOrStdout()
			for _, name := range created {
				fmt.Fprintf(out, "%s %s\n", toColor.Sprint("created"), name)
			}
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Fprintln(out, noteColor.Sprint("all category labels already exist"))
			}
			return nil
		},
	}
	return cmd
}
