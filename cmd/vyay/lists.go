package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vyay-app/vyay/internal/aggregate"
	"github.com/vyay-app/vyay/internal/cli"
	"github.com/vyay-app/vyay/internal/common"
	"github.com/vyay-app/vyay/internal/model"
	"github.com/vyay-app/vyay/internal/session"
)

func listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage expense lists",
		Long:  `List, add, delete and switch between expense lists.`,
	}

	cmd.AddCommand(listListsCmd())
	cmd.AddCommand(addListCmd())
	cmd.AddCommand(deleteListCmd())
	cmd.AddCommand(useListCmd())

	return cmd
}

func listListsCmd() *cobra.Command {
	var searchFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show all lists with their totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			// Totals on list rows are a stale display cache; recompute
			// before showing them.
			agg := aggregate.NewAggregator(store)
			if err := agg.RefreshAllListTotals(ctx); err != nil {
				return err
			}

			var lists []model.List
			if searchFlag != "" {
				lists, err = store.SearchLists(ctx, searchFlag)
			} else {
				lists, err = store.GetLists(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to get lists: %w", err)
			}

			sel, err := session.NewSelection(ctx, store)
			if err != nil {
				return err
			}
			activeName := ""
			if active := sel.ActiveList(); active != nil {
				activeName = active.Name
			}

			symbol := currencySymbol(ctx, store)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "Name\tCreated\tTotal\t\n")
			for _, list := range lists {
				marker := ""
				if list.Name == activeName {
					marker = cli.SuccessStyle.Render("(active)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					list.Name,
					cli.FormatDate(list.Created),
					cli.FormatAmount(symbol, list.Total),
					marker)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&searchFlag, "search", "", "only show lists whose name contains this text")

	return cmd
}

func addListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			list, err := store.CreateList(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to create list: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created list %q", list.Name)))
			return nil
		},
	}
}

func deleteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a list and all of its expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			name, err := resolveListName(ctx, store, args[0])
			if err != nil {
				return err
			}

			if err := store.DeleteList(ctx, name); err != nil {
				if errors.Is(err, common.ErrProtectedList) {
					fmt.Println(cli.FormatError("The 'All Expenses' list cannot be deleted."))
					return nil
				}
				return fmt.Errorf("failed to delete list: %w", err)
			}

			// The deleted list may have been active; re-validating the
			// selection moves it to the fallback list.
			sel, err := session.NewSelection(ctx, store)
			if err != nil {
				return err
			}
			if err := sel.Validate(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted list %q and its expenses", name)))
			return nil
		},
	}
}

func useListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make a list the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			list, err := store.GetListByName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to look up list: %w", err)
			}
			if list == nil {
				return fmt.Errorf("list %q does not exist", args[0])
			}

			sel, err := session.NewSelection(ctx, store)
			if err != nil {
				return err
			}
			if err := sel.SetActiveList(ctx, list); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Now tracking %q", list.Name)))
			return nil
		},
	}
}
