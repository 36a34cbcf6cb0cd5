package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/arborfw/arbor/app/routes"
	"github.com/arborfw/arbor/cmd/arbor/internal/config"
	"github.com/arborfw/arbor/pkg/server"
	"github.com/arborfw/arbor/pkg/vango/vdom"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo app over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(projectPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", ".", "project directory containing arbor.yaml")
	return cmd
}

// staticPage adapts a plain render function (no request context needed)
// into the server package's HandlerFunc shape.
func staticPage(render func() *vdom.VNode) server.HandlerFunc {
	return func(ctx server.Ctx) (*vdom.VNode, error) {
		return render(), nil
	}
}

func buildRouter() *server.Router {
	router := server.NewRouter()
	router.AddRoute("/", staticPage(routes.IndexPage))
	router.AddRoute("/about", staticPage(routes.AboutPage))
	router.AddRoute("/counter", staticPage(routes.CounterPage))
	return router
}

func runServe(cfg *config.Config) error {
	router := buildRouter()
	addr := cfg.Addr()

	slog.Info("arbor serve listening", "addr", addr)
	return http.ListenAndServe(addr, router)
}
