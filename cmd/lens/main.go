package main

import (
	"fmt"
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"EquityLens/internal/config"
)

var (
	version    = "0.1.0"
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lens",
		Short: "Equity fundamentals and technical analysis",
		Long: `lens fetches price history, valuation ratios, insider and institutional
activity for a list of tickers and prints a report comparing each one
against its peers.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (defaults to CONFIG_PATH or "+config.DefaultPath+")")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lens version %s\n", version)
		},
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			masked := *cfg
			masked.Fundamentals.APIKey = mask(masked.Fundamentals.APIKey)
			masked.Telegram.BotToken = mask(masked.Telegram.BotToken)
			out, err := yaml.Marshal(&masked)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// loadConfig loads, validates and applies the logging settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(configPath))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	setupLogging(cfg.Log.Level, cfg.Color())
	return cfg, nil
}

// setupLogging sends console logs to stderr so stdout carries only the report.
func setupLogging(level string, color bool) {
	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:         os.Stderr,
			ColorOutput:    color,
			QuoteString:    true,
			EndWithMessage: true,
		},
	}
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
