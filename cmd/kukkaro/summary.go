package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kukkaro/internal/client"
	"kukkaro/internal/summary"
)

func summaryCmd() *cobra.Command {
	var (
		month string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the totals, budget and latest transactions of a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			date, err := parseMonth(month)
			if err != nil {
				return err
			}

			api := newAPIClient()
			snap, err := summary.NewLoader(api, log).LoadMonth(ctx, date)
			if err != nil {
				return err
			}
			settings, err := api.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("%w: %w", summary.ErrLoadFailed, err)
			}

			totals := summary.Totals(snap.Expenses, snap.Incomes)
			balance := formatAmount(totals.Balance())
			if totals.Balance() < 0 {
				balance = ErrorStyle.Render(balance)
			} else {
				balance = SuccessStyle.Render(balance)
			}

			var box strings.Builder
			fmt.Fprintln(&box, TitleStyle.Render("Summary for "+snap.Month))
			fmt.Fprintf(&box, "Incomes:  %s\n", SuccessStyle.Render(formatAmount(totals.Incomes)))
			fmt.Fprintf(&box, "Expenses: %s\n", ErrorStyle.Render(formatAmount(totals.Expenses)))
			fmt.Fprintf(&box, "Balance:  %s", balance)

			budget := summary.BudgetStatus(snap.Expenses, *settings)
			if budget.Active {
				fmt.Fprintf(&box, "\n\nBudget:   %s %s / %s (%.0f%%)",
					progressBar(budget.Percentage, 20, budget.IsOverBudget),
					formatAmount(budget.Spent), formatAmount(budget.Amount), budget.Percentage)
				if budget.IsOverBudget {
					fmt.Fprintf(&box, "\n%s", WarningStyle.Render(
						fmt.Sprintf("⚠ Over budget by %s", formatAmount(-budget.Remaining()))))
				}
			}
			fmt.Fprintln(out, BoxStyle.Render(box.String()))

			merged := summary.Merge(snap.Expenses, snap.Incomes)
			window := summary.NewWindow(merged)
			for len(window.Visible()) < limit && window.HasMore() {
				window.LoadMore()
			}
			visible := window.Visible()
			if len(visible) > limit {
				visible = visible[:limit]
			}

			if len(visible) == 0 {
				fmt.Fprintln(out, SubtleStyle.Render("No transactions this month."))
				return nil
			}

			fmt.Fprintln(out, TitleStyle.Render("Latest transactions"))
			printEntries(out, visible)
			if len(visible) < len(merged) {
				fmt.Fprintln(out, SubtleStyle.Render(fmt.Sprintf("Showing %d transactions, use --limit to see more.", len(visible))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to summarize, YYYY-MM (default: current month)")
	cmd.Flags().IntVar(&limit, "limit", summary.PageSize, "number of transactions to list")

	return cmd
}

func breakdownCmd() *cobra.Command {
	var (
		month    string
		kindFlag string
	)

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show how a month's expenses or incomes split across categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			kind := client.Kind(kindFlag)
			if kind != client.KindExpense && kind != client.KindIncome {
				return fmt.Errorf("invalid type %q: must be expense or income", kindFlag)
			}
			date, err := parseMonth(month)
			if err != nil {
				return err
			}

			snap, err := summary.NewLoader(newAPIClient(), log).LoadMonth(ctx, date)
			if err != nil {
				return err
			}

			rows := snap.Expenses
			if kind == client.KindIncome {
				rows = snap.Incomes
			}
			breakdown := summary.CategoryBreakdown(rows)

			fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("%ss by category, %s", kindTitle(kind), snap.Month)))
			if len(breakdown.Slices) == 0 {
				fmt.Fprintln(out, SubtleStyle.Render("No data."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, s := range breakdown.Slices {
				fmt.Fprintf(w, "%s %s\t%s\t%s\t%5.1f%%\n",
					swatch(s.Color), s.Name, formatAmount(s.Sum), progressBar(s.Percentage, 20, false), s.Percentage)
			}
			fmt.Fprintf(w, "%s\t%s\t\t\n", HeaderStyle.Render("Total"), formatAmount(breakdown.Total))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to break down, YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&kindFlag, "type", string(client.KindExpense), "expense or income")

	return cmd
}
