package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"kukkaro/internal/client"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the monthly budget",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the budget settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := newAPIClient().GetSettings(cmd.Context())
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}
}

func setSettingsCmd() *cobra.Command {
	var (
		enabled bool
		amount  string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the budget settings",
		Long:  "Change the budget settings, e.g. `kukkaro settings set --enabled --amount 1500`.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch client.SettingsPatch
			if cmd.Flags().Changed("enabled") {
				patch.BudgetEnabled = &enabled
			}
			if cmd.Flags().Changed("amount") {
				patch.BudgetAmount = &amount
			}
			if patch.BudgetEnabled == nil && patch.BudgetAmount == nil {
				return errors.New("nothing to change: pass --enabled and/or --amount")
			}

			settings, err := newAPIClient().UpdateSettings(cmd.Context(), patch)
			if err != nil {
				return fmt.Errorf("failed to update settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ Settings saved"))
			printSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", false, "turn budget tracking on or off")
	cmd.Flags().StringVar(&amount, "amount", "", "monthly budget amount")

	return cmd
}

func printSettings(out io.Writer, settings *client.Settings) {
	state := SubtleStyle.Render("disabled")
	if settings.BudgetEnabled {
		state = SuccessStyle.Render("enabled")
	}
	fmt.Fprintf(out, "Budget:        %s\n", state)
	fmt.Fprintf(out, "Budget amount: %s\n", formatAmount(settings.BudgetAmount))
}
