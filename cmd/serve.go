package cmd

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"costreports/config"
	"costreports/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the report web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional local-dev convenience; env vars win anyway.
		_ = godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		setupLogging(cfg.LogLevel, cfg.LogFormat)

		if cfg.AdminPasswordHash == "" {
			logrus.Warn("admin_password_hash is not set; logins will be rejected")
		}

		srv := &http.Server{
			Addr:         cfg.ListenAddr,
			Handler:      handlers.NewRouter(cfg),
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 120 * time.Second,
		}

		logrus.WithField("addr", cfg.ListenAddr).Info("server listening")
		return srv.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
