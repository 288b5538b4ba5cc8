package store

import (
	"go.uber.org/multierr"

	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/keys"
	"github.com/kobzarvs/nppcfg/internal/logger"
	"github.com/kobzarvs/nppcfg/internal/style"
	"github.com/kobzarvs/nppcfg/internal/udl"
)

// SaveShortcuts writes the shortcut tables into shortcuts.xml. Sections the
// engine does not own are kept.
func (s *Store) SaveShortcuts() error {
	if s.shortcutsDoc == nil {
		s.shortcutsDoc = docstore.New(s.path(DocShortcuts), docstore.RootName)
	}
	s.shortcuts.Write(s.shortcutsDoc.EnsureRoot(docstore.RootName))
	if err := s.shortcutsDoc.Save(); err != nil {
		return &DocumentError{Doc: DocShortcuts, Err: err}
	}
	return nil
}

// Remap binds menu command id to combo and saves shortcuts.xml.
func (s *Store) Remap(id int, combo keys.KeyCombo) error {
	if err := s.shortcuts.SetShortcut(id, keys.Shortcut{KeyCombo: combo}); err != nil {
		return err
	}
	return s.SaveShortcuts()
}

// SaveStyles writes changed styles into the stylers document in use and
// into every plugin lexer document. Font name changes are mirrored into the
// reference arrays when given.
func (s *Store) SaveStyles(refLexers *style.LexerStylerArray, refGlobals *style.StyleArray) error {
	if s.stylersDoc == nil {
		return &DocumentError{Doc: DocStylers, Err: ErrNotLoaded}
	}
	err := s.stylers.WriteStyles(refLexers, refGlobals, s.stylersDoc.Root(docstore.RootName))
	err = multierr.Append(err, s.stylersDoc.Save())
	if err != nil {
		return &DocumentError{Doc: DocStylers, Err: err}
	}
	return nil
}

// SaveUserLangs rewrites userDefineLang.xml from the user language table.
func (s *Store) SaveUserLangs() error {
	d := docstore.New(s.path(DocUserLangs), docstore.RootName)
	s.userLangs.Write(d.Root(docstore.RootName))
	if err := d.Save(); err != nil {
		return &DocumentError{Doc: DocUserLangs, Err: err}
	}
	return nil
}

// SaveSession writes the session if it has unsaved changes.
func (s *Store) SaveSession() error {
	if s.session == nil {
		return nil
	}
	if err := s.session.Save(); err != nil {
		return &DocumentError{Doc: DocSession, Err: err}
	}
	return nil
}

// SetTabSettings records tab settings for a built-in language in langs.xml.
func (s *Store) SetTabSettings(lang string, v int) error {
	if s.langsDoc == nil {
		return &DocumentError{Doc: DocLangs, Err: ErrNotLoaded}
	}
	if err := s.langs.SetTabSettings(s.langsDoc.Root(docstore.RootName), lang, v); err != nil {
		return err
	}
	return s.langsDoc.Save()
}

// ImportUDL adds the languages of a user-defined language file.
func (s *Store) ImportUDL(path string) (int, error) {
	n, err := s.userLangs.ImportFile(path)
	if err != nil {
		logger.Warn("user language import incomplete", "path", path, "added", n, "err", err)
	}
	return n, err
}

// ExportUDL writes the user language named name to path.
func (s *Store) ExportUDL(name, path string) error {
	_, i := s.userLangs.ByName(name)
	if i < 0 {
		return udl.ErrNoSuchLang
	}
	return s.userLangs.ExportFile(i, path)
}

// ReloadStylers switches to the stylers document at path. Plugin lexer
// documents already merged are merged again into the fresh tables, and the
// choice is recorded in config.xml when it is loaded.
func (s *Store) ReloadStylers(path string) error {
	d, root, err := openRoot(path)
	if err != nil {
		return &DocumentError{Doc: DocStylers, Err: err}
	}
	fresh := style.NewStylers(s.cfg.Limits.LexerStylers, s.cfg.Limits.StylesPerArray)
	if err := fresh.LoadBuiltin(root); err != nil {
		return &DocumentError{Doc: DocStylers, Err: err}
	}
	mergeErr := fresh.MergeExternal(s.stylers.External())

	s.stylers = fresh
	s.stylersDoc = d
	s.themePath = path
	logger.Info("stylers reloaded", "path", path)

	if s.configDoc != nil {
		s.setStylerTheme(path)
		mergeErr = multierr.Append(mergeErr, s.configDoc.Save())
	}
	return mergeErr
}

func (s *Store) setStylerTheme(path string) {
	root := s.configDoc.EnsureRoot(docstore.RootName)
	guis := docstore.FirstChild(root, "GUIConfigs")
	if guis == nil {
		guis = docstore.AppendChild(root, "GUIConfigs")
	}
	for _, gc := range docstore.Children(guis, "GUIConfig") {
		if name, _ := docstore.Attr(gc, "name"); name == "stylerTheme" {
			docstore.SetAttr(gc, "path", path)
			return
		}
	}
	gc := docstore.AppendChild(guis, "GUIConfig")
	docstore.SetAttr(gc, "name", "stylerTheme")
	docstore.SetAttr(gc, "path", path)
}
