package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"kukkaro/internal/client"
	"kukkaro/internal/logger"
)

// log is replaced by initConfig once the level is known.
var log = zap.NewNop().Sugar()

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "kukkaro",
		Short: "💰 Personal budget tracker",
		Long: `kukkaro talks to the kukkaro API to record expenses and incomes,
manage categories and keep an eye on the monthly budget.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	// Global flags
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/kukkaro/config.yaml)")
	root.PersistentFlags().String("api-url", client.DefaultBaseURL, "base URL of the kukkaro API")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().Duration("timeout", 10*time.Second, "timeout for each API request")

	// Bind flags to viper
	_ = viper.BindPFlag("api_url", root.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))

	// Add commands
	root.AddCommand(summaryCmd())
	root.AddCommand(breakdownCmd())
	root.AddCommand(transactionsCmd(client.KindExpense))
	root.AddCommand(transactionsCmd(client.KindIncome))
	root.AddCommand(categoriesCmd())
	root.AddCommand(settingsCmd())

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	_ = log.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func initConfig(cfgFile string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kukkaro"))
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("KUKKARO")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, flags and env cover everything
	}

	// Set up logging
	l, err := logger.NewConsole(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	log = l

	return nil
}
