package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/sourceplane/chasm/internal/logging"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	dataInput  string
	layerPaths []string
	modPaths   []string
	outputFile string
	seed       int64
	lenient    bool
	viewData   bool
	chartName  string
	logLevel   string
	logFormat  string
	longFormat bool

	// replaced in PersistentPreRunE once the log flags are parsed
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

var rootCmd = &cobra.Command{
	Use:           "chasm",
	Short:         "Chart assembler: data + mods + layers → chart bundle",
	Long:          "chasm assembles chart-ready datasets and render configurations from raw records, mod programs and layered config overlays",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.Setup(logLevel, logFormat, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text/json)")

	registerBarCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerDebugCommand(rootCmd)
	registerInstructionsCommand(rootCmd)
	registerInfoCommand(rootCmd)
}

// addInputFlags registers the data, layer and mod flags shared by several commands
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&dataInput, "data", "d", "", "Raw data: inline JSON array of records or a path to a JSON file")
	cmd.Flags().StringArrayVarP(&layerPaths, "layer", "l", nil, "Layer file path or inline YAML, applied in order (repeatable)")
	cmd.Flags().StringArrayVarP(&modPaths, "mod", "m", nil, "Mod file path, applied in order (repeatable)")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Treat unknown mod instructions as noop instead of failing")
}
