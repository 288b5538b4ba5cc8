package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kobzarvs/nppcfg/internal/logger"
	"github.com/kobzarvs/nppcfg/internal/store"
	"github.com/kobzarvs/nppcfg/internal/watch"
)

// Reload is called after each reload with the document that changed and
// the load result.
type Reload func(doc string, err error)

// Watch reloads s whenever an XML document in the settings directory, the
// theme directory or a plugin lexer directory changes. It returns when ctx
// is done. Reloads run on the calling goroutine.
func Watch(ctx context.Context, s *store.Store, onReload Reload) error {
	cfg := s.Config()
	w, err := watch.New(cfg.Paths.SettingsDir)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, dir := range watchDirs(s) {
		if err := w.Add(dir); err != nil {
			logger.Debug("directory not watched", "dir", dir, "err", err)
		}
	}
	logger.Info("watching settings", "dir", cfg.Paths.SettingsDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case doc, ok := <-w.Events():
			if !ok {
				return nil
			}
			err := s.Load()
			logger.Info("settings reloaded", "doc", doc, "err", err)
			if onReload != nil {
				onReload(doc, err)
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// watchDirs lists existing directories other than the settings directory
// that hold documents the store reads.
func watchDirs(s *store.Store) []string {
	cfg := s.Config()
	seen := map[string]bool{filepath.Clean(cfg.Paths.SettingsDir): true}
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if seen[dir] {
			return
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if p := s.ThemePath(); p != "" {
		add(filepath.Dir(p))
	}
	for _, pattern := range cfg.Paths.PluginLexers {
		if !filepath.IsAbs(pattern) {
			pattern = cfg.SettingsPath(pattern)
		}
		add(filepath.Dir(pattern))
	}
	return dirs
}
