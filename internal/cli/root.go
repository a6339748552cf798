// Package cli implements the clipmeta command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipmeta/internal/config"
	"clipmeta/internal/logger"
)

var (
	configPath            string
	debugMode             bool
	quietMode             bool
	version, commit, date = "dev", "none", "unknown"

	// cfg is loaded before any subcommand runs.
	cfg = config.DefaultConfig()
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "clipmeta",
	Short: "Report format and dimensions of images on the clipboard",
	Long: `clipmeta inspects the items on the system clipboard and, for every item that
holds image data, reports its format (png, jpeg, gif, bmp, webp, tiff, heic),
pixel dimensions and size without decoding the image.

Configuration is read from ~/.clipmeta/config.yaml (see "clipmeta config").`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.clipmeta/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Only log errors")
}

func newLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	return config.NewLoader()
}

// setup loads the configuration and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}
	if skipsConfigLoad(cmd) {
		cfg = config.DefaultConfig()
	} else {
		loaded, err := loader.Load()
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("config log.level: %w", err)
	}
	logger.SetLevel(level)
	switch {
	case quietMode:
		logger.SetLevel(logger.LevelError)
	case debugMode || config.GetEnvBool(config.EnvDebug):
		logger.SetDebug(true)
	}

	if err := logger.Init(cfg.Log.File); err != nil {
		return err
	}
	logger.Component("cli").Debug("cli: configured", "command", cmd.Name(), "config", loader.ConfigPath())
	return nil
}

// skipsConfigLoad reports whether cmd must work with a missing or broken
// config file.
func skipsConfigLoad(cmd *cobra.Command) bool {
	return cmd == configInitCmd || cmd == configPathCmd
}

// Execute runs the root command
func Execute() error {
	defer logger.Close()
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("clipmeta %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("clipmeta %s\n", version)
}
