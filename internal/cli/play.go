package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	serrors "github.com/idilsaglam/sorter/internal/errors"
	"github.com/idilsaglam/sorter/internal/store"
	"github.com/idilsaglam/sorter/internal/ui"
)

type playOptions struct {
	quiet  bool
	asJSON bool
}

func newPlayCmd(a *app) *cobra.Command {
	var opt playOptions
	cmd := &cobra.Command{
		Use:   "play <intent>...",
		Short: "Apply intents headlessly and print each snapshot",
		Long: `Apply a scripted sequence of intents to a fresh board and print the lists
after each one. Ticks are driven by the script, not by a timer.

Intents:
  add:<name>     sort an item from Main into its bucket
  rm:<name>      return a sorted item to Main
  undo           return the most recently sorted item
  tick[:n]       advance the countdown n times (default 1)`,
		Example: `  sorter play add:Apple add:Carrot undo
  sorter play add:Apple tick:3 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.newStore()
			if err != nil {
				return err
			}
			return play(cmd.OutOrStdout(), st, args, opt, a.log)
		},
	}
	cmd.Flags().BoolVarP(&opt.quiet, "quiet", "q", false, "print only the final snapshot")
	cmd.Flags().BoolVar(&opt.asJSON, "json", false, "print the final snapshot as JSON")
	return cmd
}

// step is one parsed intent.
type step struct {
	verb  string
	name  string
	count int
}

func parseStep(arg string) (step, error) {
	verb, rest, _ := strings.Cut(arg, ":")
	verb = strings.ToLower(strings.TrimSpace(verb))
	rest = strings.TrimSpace(rest)
	switch verb {
	case "add", "rm", "remove":
		if rest == "" {
			return step{}, fmt.Errorf("%s needs an item name, e.g. %s:Apple", verb, verb)
		}
		if verb == "remove" {
			verb = "rm"
		}
		return step{verb: verb, name: rest}, nil
	case "undo":
		return step{verb: verb}, nil
	case "tick":
		n := 1
		if rest != "" {
			v, err := strconv.Atoi(rest)
			if err != nil || v < 1 {
				return step{}, fmt.Errorf("tick count must be a positive number, got %q", rest)
			}
			n = v
		}
		return step{verb: verb, count: n}, nil
	}
	return step{}, fmt.Errorf("unknown intent %q", arg)
}

func play(w io.Writer, st *store.Store, args []string, opt playOptions, log *zap.Logger) error {
	steps := make([]step, 0, len(args))
	for _, arg := range args {
		s, err := parseStep(arg)
		if err != nil {
			return err
		}
		steps = append(steps, s)
	}

	snap := st.Snapshot()
	for i, s := range steps {
		var err error
		switch s.verb {
		case "add":
			it, _, ok := snap.Find(s.name)
			if !ok {
				return serrors.NotInMain(s.name)
			}
			snap, err = st.Add(it)
		case "rm":
			it, where, ok := snap.Find(s.name)
			if !ok || where == "main" {
				log.Debug("remove skipped, item not sorted", zap.String("item", s.name))
				continue
			}
			snap, err = st.Remove(it)
		case "undo":
			snap = st.UndoLast()
		case "tick":
			for n := 0; n < s.count; n++ {
				snap = st.Tick()
			}
		}
		if err != nil {
			return err
		}
		if !opt.quiet && !opt.asJSON {
			fmt.Fprintf(w, "%s %s\n", ui.Current().Accent.Render(fmt.Sprintf("[%d]", i+1)), args[i])
			fmt.Fprintln(w, ui.Board(snap))
		}
	}

	if opt.asJSON {
		b, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(b))
		return nil
	}
	if opt.quiet {
		fmt.Fprintln(w, ui.Board(snap))
	}
	ui.OK(w, fmt.Sprintf("%d sorted, %d in main, history: %s",
		snap.Bucketed(), len(snap.Main), strings.Join(st.History(), ", ")))
	return nil
}
