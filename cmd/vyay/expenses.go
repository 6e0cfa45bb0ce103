package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vyay-app/vyay/internal/cli"
	"github.com/vyay-app/vyay/internal/model"
	"github.com/vyay-app/vyay/internal/service"
	"github.com/vyay-app/vyay/internal/session"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Browse and manage expenses",
		Long:  `List, search, edit and delete recorded expenses.`,
	}

	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(editExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())
	cmd.AddCommand(pruneExpensesCmd())

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var (
		dateFlag   string
		listFlag   string
		searchFlag string
		allDates   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses for the active list and date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sel, err := session.NewSelection(ctx, store)
			if err != nil {
				return err
			}
			if err := sel.Validate(ctx); err != nil {
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

			filter := service.ExpenseFilter{List: listName, Details: searchFlag}
			if !allDates {
				date := sel.ActiveDate()
				if dateFlag != "" {
					parsed, err := parseDateFlag(dateFlag)
					if err != nil {
						return err
					}
					date = model.StartOfDay(parsed)
				}
				filter.OnDate = &date
			}

			expenses, err := store.GetExpenses(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found. Use 'vyay add' to record one."))
				return nil
			}

			// Resolve category names once for labelling
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			catNames := make(map[string]string, len(categories))
			for _, cat := range categories {
				catNames[cat.ID] = cat.Name
			}

			symbol := currencySymbol(ctx, store)
			total := decimal.Zero

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "ID\tDate\tDetails\tCategory\tAmount\n")
			for _, expense := range expenses {
				label := catNames[expense.CatID]
				if label == "" {
					label = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(expense.ID),
					expense.Date.Format("2006-01-02"),
					expense.Details,
					label,
					cli.FormatAmount(symbol, expense.Amount))
				total = total.Add(expense.Amount)
			}
			fmt.Fprintf(w, "\t\t\t\t%s\n", cli.AmountStyle.Render(cli.FormatAmount(symbol, total)))

			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "show expenses for this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&listFlag, "list", "", "show expenses for this list instead of the active one")
	cmd.Flags().StringVar(&searchFlag, "search", "", "only show expenses whose details contain this text")
	cmd.Flags().BoolVar(&allDates, "all-dates", false, "ignore the date filter and show every matching expense")

	return cmd
}

func editExpenseCmd() *cobra.Command {
	var (
		detailsFlag  string
		amountFlag   string
		dateFlag     string
		categoryFlag string
		listFlag     string
	)

	cmd := &cobra.Command{
		Use:   "edit <expense-id>",
		Short: "Edit an existing expense",
		Long:  `Update any of an expense's details, amount, date, category or list.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expense, err := findExpense(ctx, store, args[0])
			if err != nil {
				return err
			}

			if detailsFlag != "" {
				expense.Details = detailsFlag
			}
			if amountFlag != "" {
				amount, err := decimal.NewFromString(amountFlag)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amountFlag, err)
				}
				expense.Amount = amount
			}
			if dateFlag != "" {
				date, err := parseDateFlag(dateFlag)
				if err != nil {
					return err
				}
				expense.Date = model.StartOfDay(date)
			}
			if categoryFlag != "" {
				category, err := store.GetCategoryByName(ctx, categoryFlag)
				if err != nil {
					return fmt.Errorf("failed to look up category: %w", err)
				}
				if category == nil {
					return fmt.Errorf("category %q does not exist", categoryFlag)
				}
				expense.CatID = category.ID
			}
			if listFlag != "" {
				list, err := store.GetListByName(ctx, listFlag)
				if err != nil {
					return fmt.Errorf("failed to look up list: %w", err)
				}
				if list == nil {
					return fmt.Errorf("list %q does not exist", listFlag)
				}
				expense.List = list.Name
			}

			if err := store.UpdateExpense(ctx, expense); err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated expense %s", shortID(expense.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&detailsFlag, "details", "", "new description")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "new amount")
	cmd.Flags().StringVar(&dateFlag, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "new category name")
	cmd.Flags().StringVar(&listFlag, "list", "", "new list name")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <expense-id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expense, err := findExpense(ctx, store, args[0])
			if err != nil {
				return err
			}

			if err := store.DeleteExpense(ctx, expense.ID); err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted expense %q", expense.Details)))
			return nil
		},
	}
}

func pruneExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove orphaned expenses that lost their list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			pruned, err := store.PruneOrphanedExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to prune expenses: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Pruned %d orphaned expense(s)", pruned)))
			return nil
		},
	}
}

// findExpense looks an expense up by full id or unambiguous prefix.
func findExpense(ctx context.Context, store service.Storage, id string) (*model.Expense, error) {
	expense, err := store.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up expense: %w", err)
	}
	if expense != nil {
		return expense, nil
	}

	// Fall back to prefix matching over all expenses so users can paste
	// the short ids the listing shows.
	expenses, err := store.GetExpenses(ctx, service.ExpenseFilter{List: model.AllExpensesList})
	if err != nil {
		return nil, fmt.Errorf("failed to search expenses: %w", err)
	}

	var match *model.Expense
	for i := range expenses {
		if len(id) >= 4 && len(expenses[i].ID) >= len(id) && expenses[i].ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("expense id %q is ambiguous", id)
			}
			match = &expenses[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("expense %q not found", id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
