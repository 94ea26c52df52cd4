package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/sorter/internal/model"
	"github.com/idilsaglam/sorter/internal/store"
)

// Board is what Run needs from the store: the intents plus Tick.
type Board interface {
	Intents
	store.Ticker
}

// forwarder ticks the store and hands the result to the program. Ticks
// come from the scheduler goroutine, never from Update, so Send cannot
// block the event loop.
type forwarder struct {
	board Board
	send  func(tea.Msg)
}

func (f forwarder) Tick() model.Snapshot {
	snap := f.board.Tick()
	f.send(SnapshotMsg{Snapshot: snap})
	return snap
}

// Run starts the interactive board and the tick scheduler. It returns when
// the user quits or ctx is cancelled; the scheduler is stopped either way.
func Run(ctx context.Context, b Board, tick time.Duration, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	m := New(b, log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	sched := store.NewScheduler(forwarder{board: b, send: p.Send}, tick, log)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
