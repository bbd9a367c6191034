package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/showcase/internal/config"
	"github.com/arcanaland/showcase/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [catalog]",
	Short: "Serve rendered galleries for local preview",
	Long: `Serve starts an HTTP server that renders catalogs on request:
  /                  the given catalog, or the default catalog
  /catalogs/{name}   any catalog from the library or the built-ins
  /assets/...        files from the thumbnail directory
  /healthz           liveness check

With --watch, edits to catalog files are picked up without a restart.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := server.Options{
			Addr:           cfg.Server.Addr,
			LibraryPath:    config.GetCatalogLibraryPath(),
			DefaultCatalog: cfg.DefaultCatalog,
			AssetsDir:      assetsDir(cmd),
			Assets:         cfg.Assets,
		}
		if len(args) > 0 {
			opts.DefaultCatalog = args[0]
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			opts.Addr = addr
		}
		opts.Watch, _ = cmd.Flags().GetBool("watch")

		if opts.Watch {
			if err := os.MkdirAll(opts.LibraryPath, 0755); err != nil {
				logger.Warn("Catalog library not created", zap.String("path", opts.LibraryPath), zap.Error(err))
			}
		}

		srv, err := server.New(logger, opts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().String("assets", "", "Directory served under /assets/")
	serveCmd.Flags().Bool("watch", false, "Reload catalogs when their files change")
}
