package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vyay-app/vyay/internal/aggregate"
	"github.com/vyay-app/vyay/internal/cli"
	"github.com/vyay-app/vyay/internal/common"
	"github.com/vyay-app/vyay/internal/ingest"
	"github.com/vyay-app/vyay/internal/session"
)

func addCmd() *cobra.Command {
	var (
		dateFlag string
		listFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add an expense from a free-text description",
		Long: `Describe an expense in plain words and let the language model extract the
amount, category and item. The expense lands on the active list and date
unless overridden with --list and --date.

Examples:
  vyay add "coffee at the station 4.50"
  vyay add --list Work --date 2024-06-01 "team lunch 62"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := strings.Join(args, " ")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sel, err := session.NewSelection(ctx, store)
			if err != nil {
				return err
			}

			var listName string
			if listFlag != "" {
				listName, err = resolveListName(ctx, store, listFlag)
				if err != nil {
					return err
				}
			} else if active := sel.ActiveList(); active != nil {
				listName = active.Name
			}

			date := sel.ActiveDate()
			if dateFlag != "" {
				parsed, err := parseDateFlag(dateFlag)
				if err != nil {
					return err
				}
				sel.SetActiveDate(parsed)
				date = sel.ActiveDate()
			}

			client, err := newLLMClient()
			if err != nil {
				return fmt.Errorf("failed to initialize LLM client: %w", err)
			}

			pipeline := ingest.NewPipeline(store, client, nil)
			expense, err := pipeline.Ingest(ctx, input, listName, date)
			if err != nil {
				fmt.Println(cli.FormatError(common.UserMessage(err)))
				var userErr *common.UserError
				if errors.As(err, &userErr) && userErr.Err != nil {
					return userErr.Err
				}
				return err
			}

			// Keep the cached totals fresh for the next list overview.
			agg := aggregate.NewAggregator(store)
			if _, err := agg.RefreshListTotal(ctx, expense.List); err != nil {
				return err
			}
			dailyTotal, err := agg.TotalForList(ctx, expense.List, &date)
			if err != nil {
				return err
			}
			overallTotal, err := agg.TotalForList(ctx, expense.List, nil)
			if err != nil {
				return err
			}

			symbol := currencySymbol(ctx, store)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %q %s to %s on %s",
				expense.Details,
				cli.FormatAmount(symbol, expense.Amount),
				expense.List,
				cli.FormatDate(expense.Date))))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  %s today / %s overall",
				cli.FormatAmount(symbol, dailyTotal),
				cli.FormatAmount(symbol, overallTotal))))

			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "attribute the expense to this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&listFlag, "list", "", "attribute the expense to this list instead of the active one")

	return cmd
}
