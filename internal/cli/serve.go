package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/internal/server"
	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
)

func (a *app) newServeCommand() *cobra.Command {
	var (
		addr       string
		schemaFile string
		title      string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard, table and form pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			themeCfg, err := render.ResolveTheme(
				render.NewStaticSelector(render.DefaultManifest()),
				a.cfg.Theme, a.cfg.Variant, html.DefaultPartials(),
			)
			if err != nil {
				return err
			}
			renderer, err := html.New(
				html.WithLogger(a.logger),
				html.WithTemplatesDir(a.cfg.TemplatesDir),
			)
			if err != nil {
				return err
			}

			opts := []server.Option{
				server.WithAddr(firstNonEmpty(addr, a.cfg.Addr)),
				server.WithRenderer(renderer),
				server.WithTheme(themeCfg),
				server.WithPageSize(a.cfg.PageSize),
				server.WithShutdownGrace(a.cfg.ShutdownGrace()),
				server.WithVersion(version),
				server.WithLogger(a.logger),
			}
			s, custom, err := a.loadSchema(schemaFile)
			if err != nil {
				return err
			}
			if custom {
				opts = append(opts, server.WithSchema(s, firstNonEmpty(title, "Form"), ""))
			} else if title != "" {
				opts = append(opts, server.WithSchema(s, title, page.CreateItemDescription))
			}

			srv, err := server.New(opts...)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			start := time.Now()
			err = srv.Run(ctx)
			a.logger.Info("server stopped", "uptime", time.Since(start).Round(time.Second))
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; defaults to config")
	cmd.Flags().StringVar(&schemaFile, "schema", "", "Schema document for /items/new")
	cmd.Flags().StringVar(&title, "title", "", "Form page title")
	return cmd
}
