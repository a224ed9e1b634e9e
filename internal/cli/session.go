package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/controller"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/render"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/sqlitekv"
	"github.com/idilsaglam/tada/internal/ui"
)

// Options are the persistent root flags.
type Options struct {
	ConfigPath string
	Storage    string
	DataDir    string
	Verbose    bool
}

// session is everything one command needs: config, logger and a loaded store.
type session struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	renderer *render.Renderer
	close    func()
}

func openSession(opt *Options) (*session, error) {
	path := opt.ConfigPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opt.Storage != "" {
		cfg.Storage = opt.Storage
	}
	if opt.DataDir != "" {
		cfg.DataDir = opt.DataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ui.SetTheme(cfg.Theme)

	log, err := logging.New(cfg.LogPath(), cfg.LogLevel, opt.Verbose)
	if err != nil {
		return nil, err
	}

	var kv store.KV
	closeKV := func() error { return nil }
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := sqlitekv.Open(cfg.DBPath())
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		kv, closeKV = db, db.Close
	default:
		kv = jsonstore.New(cfg.DataDir)
	}

	s := store.New(kv, cfg.Namespace, store.WithLogger(log))
	if err := s.Load(); err != nil {
		closer(log, closeKV)()
		return nil, fmt.Errorf("load: %w", err)
	}
	log.Debug("session opened",
		zap.String("storage", cfg.Storage),
		zap.String("data_dir", cfg.DataDir),
		zap.Int("items", s.Len()))

	return &session{
		cfg:      cfg,
		log:      log,
		store:    s,
		renderer: render.New(),
		close:    closer(log, closeKV),
	}, nil
}

// closer releases the backend and flushes log. A close failure is logged;
// the command's own result stands.
func closer(log *zap.Logger, closeKV func() error) func() {
	return func() {
		if err := closeKV(); err != nil {
			log.Warn("close storage", zap.Error(err))
		}
		_ = log.Sync()
	}
}

func (s *session) controller(v controller.View, d controller.Dialogs) *controller.Controller {
	return controller.New(s.store, s.renderer, v, d,
		controller.WithCategories(s.cfg.Categories),
		controller.WithLogger(s.log))
}
