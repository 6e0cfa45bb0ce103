package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vyay-app/vyay/internal/aggregate"
	"github.com/vyay-app/vyay/internal/cli"
	"github.com/vyay-app/vyay/internal/model"
	"github.com/vyay-app/vyay/internal/session"
)

func totalCmd() *cobra.Command {
	var (
		dateFlag string
		listFlag string
	)

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Show the total spent on a list",
		Long: `Sum the expenses on a list, either overall or for a single day.

Examples:
  vyay total
  vyay total --list Groceries
  vyay total --list Work --date 2024-06-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var listName string
			if listFlag != "" {
				listName, err = resolveListName(ctx, store, listFlag)
				if err != nil {
					return err
				}
			} else {
				sel, err := session.NewSelection(ctx, store)
				if err != nil {
					return err
				}
				if err := sel.Validate(ctx); err != nil {
					return err
				}
				if active := sel.ActiveList(); active != nil {
					listName = active.Name
				} else {
					listName = model.AllExpensesList
				}
			}

			agg := aggregate.NewAggregator(store)
			symbol := currencySymbol(ctx, store)

			if dateFlag != "" {
				parsed, err := parseDateFlag(dateFlag)
				if err != nil {
					return err
				}
				day := model.StartOfDay(parsed)
				amount, err := agg.TotalForList(ctx, listName, &day)
				if err != nil {
					return err
				}
				fmt.Println(cli.FormatTitle(fmt.Sprintf("%s on %s: %s",
					listName, cli.FormatDate(day), cli.AmountStyle.Render(cli.FormatAmount(symbol, amount)))))
				return nil
			}

			amount, err := agg.TotalForList(ctx, listName, nil)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s: %s",
				listName, cli.AmountStyle.Render(cli.FormatAmount(symbol, amount)))))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "total for this date only (YYYY-MM-DD)")
	cmd.Flags().StringVar(&listFlag, "list", "", "total for this list instead of the active one")

	return cmd
}
