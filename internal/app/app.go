// Package app runs one settings session: load every document, hand the
// tables to a command, then persist and release them.
package app

import (
	"github.com/kobzarvs/nppcfg/internal/config"
	"github.com/kobzarvs/nppcfg/internal/logger"
	"github.com/kobzarvs/nppcfg/internal/store"
)

// App is the top-level runtime for nppcfg.
type App struct {
	cfg  config.Config
	opts []store.Option
}

// New builds an app; opts are passed to every store it loads.
func New(cfg config.Config, opts ...store.Option) *App {
	return &App{cfg: cfg, opts: opts}
}

// Config returns the engine configuration the app was built with.
func (a *App) Config() config.Config {
	return a.cfg
}

// Run loads the store and calls fn with it. Documents that failed to load are
// logged and left for fn to inspect through Status; only a failure that stops
// the load altogether is returned before fn runs. A dirty session is saved
// after fn returns.
func (a *App) Run(fn func(*store.Store) error) error {
	s := store.New(a.cfg, a.opts...)
	loadErr := s.Load()
	if !s.Loaded() {
		return loadErr
	}
	defer s.Shutdown()
	if loadErr != nil {
		logger.Warn("settings loaded with errors", "err", loadErr)
	}

	err := fn(s)
	if serr := s.SaveSession(); serr != nil {
		logger.Error("session not saved", "err", serr)
		if err == nil {
			err = serr
		}
	}
	return err
}
