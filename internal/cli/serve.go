package cli

import (
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/server"
	"github.com/Makepad-fr/skycount/internal/store"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the store over HTTP",
		Long: `Starts an HTTP API over a fresh store:

  GET  /state      current state as JSON
  POST /dispatch   apply {"type": "...", "payload": ...}
  GET  /healthz    liveness
  GET  /metrics    Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			st := store.New(model.Initial(), store.WithLogger(a.log))
			srv := server.New(st, a.log)
			defer srv.Close()
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")
	return cmd
}
