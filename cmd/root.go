package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ahmed-3del/portfolio/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Serve or export the portfolio site",
	Long: `portfolio serves a single-page portfolio with a live scroll tracker and a
typed hero heading, stores contact messages and keeps privacy-friendly
visit counts for the admin dashboard.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "site.yaml", "site config file path")
}

// loadConfig reads and validates the site config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
