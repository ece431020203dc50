package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kukkaro/internal/client"
	"kukkaro/internal/entryflow"
	"kukkaro/internal/summary"
)

// transactionsCmd builds the "expenses" or "incomes" command group.
func transactionsCmd(kind client.Kind) *cobra.Command {
	plural := string(kind) + "s"

	cmd := &cobra.Command{
		Use:   plural,
		Short: fmt.Sprintf("Manage %s", plural),
	}

	cmd.AddCommand(listTransactionsCmd(kind))
	cmd.AddCommand(addTransactionCmd(kind))
	cmd.AddCommand(editTransactionCmd(kind))
	cmd.AddCommand(deleteTransactionCmd(kind))

	return cmd
}

func listTransactionsCmd(kind client.Kind) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss, newest first", kind),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month != "" {
				if _, err := parseMonth(month); err != nil {
					return err
				}
			}

			rows, err := newAPIClient().ListTransactions(cmd.Context(), kind, month)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), SubtleStyle.Render(fmt.Sprintf("No %ss found.", kind)))
				return nil
			}
			printTransactions(cmd.OutOrStdout(), kind, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only this month, YYYY-MM")
	return cmd
}

func addTransactionCmd(kind client.Kind) *cobra.Command {
	var (
		categoryID uint
		date       string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: fmt.Sprintf("Add an %s", kind),
		Long:  fmt.Sprintf(`Add an %s. The amount accepts a decimal point or comma ("12.50" or "12,50").`, kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			api := newAPIClient()

			day, err := parseDate(date)
			if err != nil {
				return err
			}

			// The budget check needs the month's total before the write.
			var watch *summary.BudgetWatch
			var settings *client.Settings
			if kind == client.KindExpense {
				watch, settings = budgetWatch(ctx, api, day)
			}

			state, err := entryflow.State{}.OpenCreate(kind, day)
			if err != nil {
				return err
			}
			state, err = state.Update(entryflow.Draft{Name: args[0], Amount: args[1], CategoryID: categoryID, Date: day})
			if err != nil {
				return err
			}

			saved, err := save(ctx, state, api, "add "+string(kind))
			if err != nil {
				return err
			}

			fmt.Fprintln(out, SuccessStyle.Render(fmt.Sprintf("✓ Added %s #%d: %s %s", kind, saved.ID, saved.Name, formatAmount(saved.Amount))))
			if watch != nil && watch.Add(saved.Amount, *settings) {
				fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("⚠ Budget just exceeded: %s spent of %s", formatAmount(watch.Total()), formatAmount(settings.BudgetAmount))))
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&categoryID, "category", 0, "category ID (required)")
	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func editTransactionCmd(kind client.Kind) *cobra.Command {
	var (
		name       string
		amount     string
		categoryID uint
		date       string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: fmt.Sprintf("Change fields of an %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api := newAPIClient()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("amount") && !flags.Changed("category") && !flags.Changed("date") {
				return errors.New("nothing to change: pass at least one of --name, --amount, --category, --date")
			}

			current, err := api.GetTransaction(ctx, kind, id)
			if err != nil {
				return err
			}

			state, err := entryflow.State{}.OpenEdit(kind, *current)
			if err != nil {
				return err
			}

			draft := state.Draft()
			if flags.Changed("name") {
				draft.Name = name
			}
			if flags.Changed("amount") {
				draft.Amount = amount
			}
			if flags.Changed("category") {
				draft.CategoryID = categoryID
			}
			if flags.Changed("date") {
				if draft.Date, err = parseDate(date); err != nil {
					return err
				}
			}
			if state, err = state.Update(draft); err != nil {
				return err
			}

			saved, err := save(ctx, state, api, "update "+string(kind))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ Updated %s #%d", kind, saved.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().UintVar(&categoryID, "category", 0, "new category ID")
	cmd.Flags().StringVar(&date, "date", "", "new date, YYYY-MM-DD")

	return cmd
}

func deleteTransactionCmd(kind client.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete an %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := newAPIClient().DeleteTransaction(cmd.Context(), kind, id); err != nil {
				return fmt.Errorf("failed to delete %s: %w", kind, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ Deleted %s #%d", kind, id)))
			return nil
		},
	}
}

// save drives an open form through the API and names the action on failure.
func save(ctx context.Context, state entryflow.State, api entryflow.Saver, action string) (*client.Transaction, error) {
	next, saved, err := entryflow.Save(ctx, state, api)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}
	if saved == nil {
		return nil, fmt.Errorf("failed to %s: %s", action, next.Message())
	}
	log.Debugw("saved", "action", action, "id", saved.ID)
	return saved, nil
}

// budgetWatch loads the budget settings and the current expense total of the
// month containing day. It returns nil when no budget applies or the data
// cannot be loaded; the warning is best effort.
func budgetWatch(ctx context.Context, api *client.Client, day time.Time) (*summary.BudgetWatch, *client.Settings) {
	settings, err := api.GetSettings(ctx)
	if err != nil {
		log.Warnw("budget check skipped", "error", err)
		return nil, nil
	}
	if !summary.BudgetStatus(nil, *settings).Active {
		return nil, nil
	}

	rows, err := api.ListTransactions(ctx, client.KindExpense, day.Format(summary.MonthFormat))
	if err != nil {
		log.Warnw("budget check skipped", "error", err)
		return nil, nil
	}
	return summary.NewBudgetWatch(summary.Totals(rows, nil).Expenses), settings
}
