package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/sorter/internal/config"
	"github.com/idilsaglam/sorter/internal/enrich"
	"github.com/idilsaglam/sorter/internal/logging"
	"github.com/idilsaglam/sorter/internal/model"
	"github.com/idilsaglam/sorter/internal/seed"
	"github.com/idilsaglam/sorter/internal/store"
	"github.com/idilsaglam/sorter/internal/ui"
)

// app is the state shared by every subcommand: resolved config and logger.
type app struct {
	configPath string

	cfg     *config.Config
	log     *zap.Logger
	logPath string
}

// setup resolves config (file, env, flags) and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	l := config.NewLoader()
	if err := l.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := l.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	ui.SetTheme(cfg.UI.Theme)

	log, path, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Dir:      cfg.Log.Dir,
		Console:  cfg.Log.Console,
		JSON:     cfg.Log.JSON,
		MaxFiles: cfg.Log.MaxFiles,
	})
	if err != nil {
		return err
	}
	a.log = log.With(zap.String("command", cmd.Name()))
	a.logPath = path
	a.log.Debug("config loaded",
		zap.Int("ttl", cfg.Store.TTL),
		zap.Duration("tick", cfg.Store.Tick),
		zap.String("seed", cfg.Seed.Path),
		zap.Bool("enrich", cfg.Enrich.Enabled),
	)
	return nil
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// seedItems loads the configured seed list.
func (a *app) seedItems() ([]model.Item, error) {
	return seed.Load(a.cfg.Seed.Path)
}

// newStore builds a store from the configured seed, logging every snapshot
// at debug level.
func (a *app) newStore(extra ...store.Option) (*store.Store, error) {
	items, err := a.seedItems()
	if err != nil {
		return nil, err
	}
	opts := []store.Option{
		store.WithTTL(a.cfg.Store.TTL),
		store.WithLogger(a.log),
		store.WithListener(func(s model.Snapshot) {
			a.log.Debug("snapshot",
				zap.Uint64("seq", s.Seq),
				zap.Strings("main", model.Names(s.Main)),
				zap.Strings("fruits", model.Names(s.Fruits)),
				zap.Strings("vegetables", model.Names(s.Vegetables)),
			)
		}),
	}
	return store.New(items, append(opts, extra...)...)
}

func (a *app) enrichClient() *enrich.Client {
	e := a.cfg.Enrich
	return enrich.NewClient(enrich.Options{
		URL:        e.URL,
		GroupBy:    e.GroupBy,
		ColorField: e.ColorField,
		Timeout:    e.Timeout,
		Token:      e.Token,
	})
}
