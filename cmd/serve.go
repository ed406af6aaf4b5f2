package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-cms/internal/config"
	"github.com/Zachkp/portfolio-cms/internal/server"
	"github.com/Zachkp/portfolio-cms/internal/store"
)

var appPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio, the content API and the admin area",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(appConfig)
		if err != nil {
			return err
		}
		defer st.Close()

		srv, err := server.New(cmd.Context(), appConfig, st)
		if err != nil {
			return err
		}
		return srv.Run()
	},
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		st, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return st, nil
	default:
		return store.NewFileStore(cfg.DataFile), nil
	}
}

func init() {
	serveCmd.Flags().StringVarP(&appPort, "port", "p", "", "port to listen on (overrides config)")
	serveCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if appPort != "" {
			appConfig.Port = appPort
		}
	}
	rootCmd.AddCommand(serveCmd)
}
