// Package cli provides the sorter command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	serrors "github.com/idilsaglam/sorter/internal/errors"
	"github.com/idilsaglam/sorter/internal/ui"
)

// Version information, set via ldflags in main.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCmd builds the command tree. With no subcommand it starts the board.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "sorter",
		Short: "Sort groceries into fruits and vegetables",
		Long: `sorter is a terminal board with three lists. Items start in Main; selecting
one moves it into Fruits or Vegetables. Sorted items return to Main on their
own after a few seconds, and undo sends back the most recently sorted item.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBoard(cmd)
		},
	}
	root.SetVersionTemplate("sorter {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default .sorter/config.yaml)")
	pf.String("seed", "", "seed file (.json, .yaml); empty uses the built-in list")
	pf.Int("ttl", 3, "ticks before a sorted item returns to main")
	pf.Duration("tick", 0, "tick interval (default 1s)")
	pf.String("theme", "classic", "color theme: classic, neon, mono")
	pf.Bool("no-enrich", false, "skip the user statistics fetch")
	pf.BoolP("verbose", "v", false, "mirror logs to stderr")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newRunCmd(a),
		newPlayCmd(a),
		newSeedCmd(a),
		newStatsCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprint(os.Stderr, ui.Current().Error.Render(serrors.FormatError(err)))
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// version needs no config or logger
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sorter %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}
