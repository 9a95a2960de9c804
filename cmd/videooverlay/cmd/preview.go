package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/config"
	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/sim"
	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/tui"
	"github.com/go-drift/videooverlay/pkg/log"
	"github.com/go-drift/videooverlay/pkg/platform"
)

var previewFlags struct {
	duration  time.Duration
	failAfter time.Duration
	notch     bool
	platform  string
	noWatch   bool
}

var previewCmd = &cobra.Command{
	Use:   "preview [source]",
	Short: "Play a source in the terminal against a simulated device",
	Long: `Preview mounts the player against a simulated decoder and device and
renders the overlay in the terminal. Keys stand in for touches: press ? for
the full list.

Sources starting with fail:// cannot be opened, which shows the retry prompt.
The config file is watched and the player is remounted when it changes.`,
	Example: `  videooverlay preview
  videooverlay preview https://example.com/clip.mp4 --notch --platform ios
  videooverlay preview --duration 20s --fail-after 8s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.DurationVar(&previewFlags.duration, "duration", 0, "simulated media duration")
	f.DurationVar(&previewFlags.failAfter, "fail-after", 0, "fail playback after this much playing time")
	f.BoolVar(&previewFlags.notch, "notch", false, "simulate a display cutout")
	f.StringVar(&previewFlags.platform, "platform", "", "simulated platform: android, ios or other")
	f.BoolVar(&previewFlags.noWatch, "no-watch", false, "do not reload when the config file changes")
}

// previewOverrides applies the command line on top of a loaded config.
func previewOverrides(cmd *cobra.Command, args []string, cfg config.Config) config.Config {
	if len(args) == 1 {
		cfg.Player.Source.URI = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("duration") {
		cfg.Preview.Duration = previewFlags.duration
	}
	if flags.Changed("fail-after") {
		cfg.Preview.FailAfter = previewFlags.failAfter
	}
	if flags.Changed("notch") {
		cfg.Preview.Notch = previewFlags.notch
	}
	if flags.Changed("platform") {
		cfg.Preview.Platform = platform.Family(previewFlags.platform)
	}
	// Log lines would tear the terminal UI.
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(os.TempDir(), "videooverlay.log")
	}
	return cfg
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg := previewOverrides(cmd, args, loaded)
	if err := cfg.Validate(); err != nil {
		return err
	}
	configureLog(cfg.Log, nil)
	logger := log.WithComponent("cli")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reloads chan config.Config
	if !previewFlags.noWatch && vp != nil && vp.ConfigFileUsed() != "" {
		reloads = make(chan config.Config, 1)
		vp.OnConfigChange(func(e fsnotify.Event) {
			next, err := config.Decode(vp)
			if err != nil {
				logger.Warn().Err(err).Str("file", e.Name).Msg("ignoring invalid config change")
				return
			}
			next = previewOverrides(cmd, args, next)
			configureLog(next.Log, nil)
			logger.Info().Str("file", e.Name).Msg("config reloaded")
			select {
			case <-reloads:
			default:
			}
			reloads <- next
		})
		vp.WatchConfig()
	}

	logger.Info().Str(log.FieldSource, cfg.Player.Source.URI).Msg("preview started")
	return tui.Run(ctx, tui.Options{
		Config: cfg,
		World:  sim.NewWorld(cfg.Preview),
		Engine: sim.NewEngine(cfg.Preview),
	}, reloads)
}
