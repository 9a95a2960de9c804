// Package cmd implements the videooverlay CLI commands.
//
// The root command loads videooverlay.yaml (optional) and configures logging
// before dispatching to preview, config or version.
package cmd

import (
	"io"
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/config"
	"github.com/go-drift/videooverlay/pkg/log"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var flags struct {
	config   string
	logLevel string
	logFile  string
}

// State loaded by the root command before any subcommand runs.
var (
	loaded config.Config
	vp     *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "videooverlay",
	Short: "Video overlay player controller and terminal preview",
	Long: `videooverlay drives the overlay of a video player: loader, controls,
seek bar, mute, fullscreen and retry, against a simulated device and decoder.

Settings are read from videooverlay.yaml in the current directory or
$HOME/.config/videooverlay, and may be overridden with VIDEOOVERLAY_*
environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, v, err := config.Load(flags.config)
		if err != nil {
			return err
		}
		if err := cfg.CheckVersion(Version); err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = flags.logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.Log.File = flags.logFile
		}
		configureLog(cfg.Log, nil)
		loaded, vp = cfg, v
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&flags.config, "config", "c", "", "config file (default ./videooverlay.yaml)")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.StringVar(&flags.logFile, "log-file", "", "write logs to a rotated file instead of stderr")

	rootCmd.AddCommand(previewCmd, configCmd, versionCmd)
}

func configureLog(c config.LogConfig, output io.Writer) {
	log.Configure(log.Config{
		Level:      c.Level,
		File:       c.File,
		Output:     output,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	})
}

// Execute runs the CLI with os.Args.
func Execute() error {
	if os.Getenv("NO_COLOR") == "" {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}
	return rootCmd.Execute()
}
