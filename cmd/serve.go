package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ahmed-3del/portfolio/internal/logging"
	"github.com/Ahmed-3del/portfolio/internal/server"
	"github.com/Ahmed-3del/portfolio/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := logging.New()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		if cfg.Server.Mode != "" {
			gin.SetMode(cfg.Server.Mode)
		}

		db, err := store.Open(cfg.Server.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("database ready", zap.String("path", db.Path()))

		srv, err := server.New(cfg, db, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
