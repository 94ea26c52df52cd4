package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/idilsaglam/sorter/internal/tui"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive board (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBoard(cmd)
		},
	}
}

// runBoard starts the board, its tick scheduler and the one-shot
// enrichment fetch. Quitting the board cancels the fetch.
func (a *app) runBoard(cmd *cobra.Command) error {
	st, err := a.newStore()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if a.cfg.Enrich.Enabled {
		client := a.enrichClient()
		g.Go(func() error {
			client.Run(gctx, a.log)
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx, st, a.cfg.Store.Tick, a.log)
	})

	a.log.Info("board started", zap.String("log", a.logPath))
	err = g.Wait()
	a.log.Info("board closed", zap.Strings("history", st.History()), zap.Error(err))
	return err
}
