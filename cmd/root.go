package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arcanaland/showcase/internal/catalog"
	"github.com/arcanaland/showcase/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger
	cfg    config.Config
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Tool for rendering and managing filterable example galleries",
	Long: `Showcase renders catalogs of examples into filterable gallery pages.
Each catalog lists example identifiers of the form <category>_<name> with a
short description; the category prefix drives the filter buttons and the
dispatch table decides where each card links to.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		logger.Debug("Config loaded", zap.String("path", cfg.Path()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/showcase/config.toml)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// openCatalog loads the catalog named by the first argument, or the default
// catalog from the config when there is none
func openCatalog(args []string) (*catalog.Catalog, error) {
	name := cfg.DefaultCatalog
	if len(args) > 0 && args[0] != "" {
		name = args[0]
	}
	if name == "" {
		return nil, fmt.Errorf("no catalog given and no default catalog configured")
	}

	c, err := catalog.Open(config.GetCatalogLibraryPath(), name)
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalog opened", zap.String("catalog", name), zap.String("path", c.Path), zap.Int("items", c.Len()))
	return c, nil
}

// assetsDir returns the thumbnail directory from the flag or the config
func assetsDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("assets"); dir != "" {
		return dir
	}
	return cfg.Assets.ThumbnailDir
}
