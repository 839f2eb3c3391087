package cmd

import (
	"errors"
	"fmt"

	"github.com/douhashi/issuenum/internal/category"
	"github.com/douhashi/issuenum/internal/renumber"
	"github.com/spf13/cobra"
)

func newReorderCmd() *cobra.Command {
	var (
		all    bool
		dryRun bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "reorder [CATEGORY...]",
		Short: "カテゴリの連番を振り直す",
		Long: `指定したカテゴリ（ラベル名またはプレフィックス）のIssueを 1 から連番で振り直します。
--all を指定すると全カテゴリを対象にします。`,
		Example: `  issuenum reorder bug FEAT
  issuenum reorder --all --dry-run --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			cats, err := selectCategories(args, all)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			t, err := newTrackerFunc(cfg, "", appLog)
			if err != nil {
				return err
			}

			r := renumber.New(t,
				renumber.WithLogger(appLog),
				renumber.WithWidth(cfg.Numbering.Width),
				renumber.WithDefaultCategory(cfg.DefaultCategory()),
				renumber.WithDryRun(dryRun),
			)

			var (
				results    []*renumber.Result
				reorderErr error
			)
			for _, cat := range cats {
				result, err := r.Reorder(cmd.Context(), cat)
				if result != nil {
					results = append(results, result)
				}
				if err != nil {
					reorderErr = err
					break
				}
			}

			if err := printResults(cmd.OutOrStdout(), output, results); err != nil {
				return errors.Join(reorderErr, err)
			}
			return reorderErr
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "全カテゴリを対象にする")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "トラッカーを変更せずに結果だけを表示する")
	cmd.Flags().StringVarP(&output, "output", "o", formatText, "出力形式（text / json / yaml）")

	return cmd
}

// selectCategories は引数からカテゴリを解決する。重複は除き、指定順を保つ
func selectCategories(args []string, all bool) ([]category.Category, error) {
	if all {
		if len(args) > 0 {
			return nil, errors.New("--all cannot be combined with category arguments")
		}
		return category.All(), nil
	}
	if len(args) == 0 {
		return nil, errors.New("specify at least one category or --all")
	}

	seen := make(map[string]bool)
	var cats []category.Category
	for _, a := range args {
		c, ok := category.Parse(a)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", a)
		}
		if seen[c.Prefix] {
			continue
		}
		seen[c.Prefix] = true
		cats = append(cats, c)
	}
	return cats, nil
}
