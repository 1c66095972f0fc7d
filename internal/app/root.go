package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gamedock/internal/config"
	"github.com/blackwell-systems/gamedock/internal/logger"
	"github.com/blackwell-systems/gamedock/internal/platform"
	"github.com/blackwell-systems/gamedock/internal/tui"
	"github.com/blackwell-systems/gamedock/internal/util"
)

var (
	cfg       *config.Config
	log       = slog.New(slog.DiscardHandler)
	logCloser io.Closer

	// runner starts games and clients; tests replace it.
	runner platform.Runner = platform.ExecRunner{}

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gamedock [query]",
		Short: "Launch games from every installed store in one place",
		Long: `gamedock collects the games owned through Steam, Epic (legendary),
GOG (Heroic), itch and a custom games folder into one library, and
launches them by name.

Run 'gamedock' with no arguments to open the interactive launcher, or
'gamedock <query>' to launch the best match straight away.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return quickLaunch(strings.Join(args, " "))
			}
			if tui.ShouldUseTUI(cmd) {
				return runLauncher(cmd.Context())
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			util.InitColor(flagNoColor)

			var err error
			if flagConfig != "" {
				cfg, err = config.LoadFile(flagConfig)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			openLog()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLog()
		},
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable the interactive launcher")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/gamedock/config.yml)")

	root.AddCommand(
		newInitCmd(),
		newScanCmd(),
		newListCmd(),
		newPlatformsCmd(),
		newSearchCmd(),
		newRunCmd(),
		newFaveCmd(),
		newHideCmd(),
		newRateCmd(),
		newAliasCmd(),
		newTagsCmd(),
		newInfoCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newSortCmd(),
		newSeenCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		closeLog()
		stop()
		os.Exit(1)
	}
}

// openLog points log at the configured log file. Failing to open it is
// not fatal; records are then discarded.
func openLog() {
	f, err := logger.OpenFile(cfg.LogPath())
	if err != nil {
		warn("logging disabled: %v", err)
		return
	}
	logCloser = f
	log = logger.New(logger.Config{
		Writer: f,
		Format: cfg.Log.Format,
		Level:  logger.ParseLevel(cfg.Log.Level),
	})
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	log = slog.New(slog.DiscardHandler)
}

// configPath is where `sort` persists the chosen method.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(label, value string) {
	fmt.Printf("  %-12s %s\n", color.CyanString(label+":"), value)
}
