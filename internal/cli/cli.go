// Package cli implements the ftmixer command-line interface.
//
// The CLI drives the mixer registry the way an interactive front end would:
// it uploads images into slots, applies weights, component choices, mode and
// region, triggers a mix and writes the result.
//
// # Commands
//
//   - mix: combine up to four images into an output image
//   - preview: write normalized component previews of images
//   - adjust: apply brightness and contrast to an image
//   - config: write a default configuration file
//
// All commands accept --config to read defaults from a YAML file and
// --verbose (-v) for debug logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"ftmixer/pkg/config"
)

const appName = "ftmixer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the --config flag
	configPath string

	// version is reported by --version
	version string
}

// New creates a CLI logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		version: "dev",
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetVersion sets the version reported by --version.
func (c *CLI) SetVersion(v string) {
	c.version = v
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "ftmixer mixes the Fourier components of grayscale images",
		Long:         `ftmixer decomposes up to four grayscale images into their 2D frequency spectra and recombines selected magnitude/phase or real/imaginary components, optionally restricted to low or high frequencies, into a new image.`,
		Version:      c.version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML configuration file")

	root.AddCommand(c.mixCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.adjustCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig reads the configuration named by --config, or the defaults.
// A config file asking for verbose logging raises the log level.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Logging.Verbose {
		c.SetLogLevel(LogDebug)
	}
	return cfg, nil
}
