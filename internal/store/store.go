// Package store owns every settings table and the documents they came from.
// Load reads the documents in a fixed order; each failure is recorded and
// loading moves on to the next document.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"go.uber.org/multierr"

	"github.com/kobzarvs/nppcfg/internal/config"
	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/langs"
	"github.com/kobzarvs/nppcfg/internal/logger"
	"github.com/kobzarvs/nppcfg/internal/session"
	"github.com/kobzarvs/nppcfg/internal/shortcut"
	"github.com/kobzarvs/nppcfg/internal/style"
	"github.com/kobzarvs/nppcfg/internal/udl"
)

// Document names, relative to the settings directory.
const (
	DocLangs        = "langs.xml"
	DocConfig       = "config.xml"
	DocStylers      = "stylers.xml"
	DocPluginLexers = "plugin lexers"
	DocUserLangs    = "userDefineLang.xml"
	DocShortcuts    = "shortcuts.xml"
	DocSession      = "session.xml"
	DocBlacklist    = "blacklist.xml"
)

// Model documents in the install directory.
const (
	modelLangs     = "langs.model.xml"
	modelConfig    = "config.model.xml"
	modelStylers   = "stylers.model.xml"
	modelShortcuts = "shortcuts.xml"
)

var (
	// ErrEmptyDocument indicates a zero-length document file.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrNotLoaded indicates an operation on a document that never loaded.
	ErrNotLoaded = errors.New("document not loaded")
)

// DocumentError reports a document that failed to load or save.
type DocumentError struct {
	Doc string
	Err error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Doc, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// DocStatus is the outcome of loading one document.
type DocStatus struct {
	Doc     string
	Path    string
	Loaded  bool
	Skipped bool
	// Missing marks an optional document that does not exist yet.
	Missing bool
	Err     error
}

// Prompter is asked about failures of documents a user may want to repair.
// Returning true recovers the document from its install-directory model.
type Prompter interface {
	Prompt(doc string, err error) bool
}

type logPrompter struct{}

func (logPrompter) Prompt(doc string, err error) bool {
	logger.Warn("settings document failed to load", "doc", doc, "err", err)
	return false
}

// Option configures a Store.
type Option func(*Store)

// WithPrompter sets who decides whether a damaged document is restored.
func WithPrompter(p Prompter) Option {
	return func(s *Store) { s.prompter = p }
}

// WithMenuKeys replaces the built-in menu shortcut table.
func WithMenuKeys(defs []shortcut.MenuKeyDef) Option {
	return func(s *Store) { s.menuDefs = defs }
}

// WithScintillaKeys replaces the built-in editor-command table.
func WithScintillaKeys(defs []shortcut.ScintillaKeyDef) Option {
	return func(s *Store) { s.scintDefs = defs }
}

// WithPluginCommands registers plugin-exported commands on every Load, ahead
// of the user's shortcut overrides.
func WithPluginCommands(defs []shortcut.PluginCommandDef) Option {
	return func(s *Store) { s.pluginDefs = defs }
}

// Store is the configuration store. It is not safe for concurrent use; one
// goroutine owns it for its whole life.
type Store struct {
	cfg        config.Config
	prompter   Prompter
	menuDefs   []shortcut.MenuKeyDef
	scintDefs  []shortcut.ScintillaKeyDef
	pluginDefs []shortcut.PluginCommandDef

	langsDoc     *docstore.Document
	configDoc    *docstore.Document
	stylersDoc   *docstore.Document
	shortcutsDoc *docstore.Document

	themePath       string
	rememberSession bool

	langs     *langs.Table
	stylers   *style.Stylers
	userLangs *udl.Table
	shortcuts *shortcut.Engine
	session   *session.Manager
	blacklist []string

	status []DocStatus
	loaded bool
}

// New returns an unloaded store. Call Load before reading any table.
func New(cfg config.Config, opts ...Option) *Store {
	s := &Store{cfg: cfg, prompter: logPrompter{}}
	for _, o := range opts {
		o(s)
	}
	s.reset()
	return s
}

func (s *Store) reset() {
	lim := s.cfg.Limits
	s.langs = langs.NewTable(langs.DefaultMax)
	s.stylers = style.NewStylers(lim.LexerStylers, lim.StylesPerArray)
	s.userLangs = udl.NewTable(lim.UserLangs, lim.ImportedUDL)
	s.shortcuts = shortcut.NewEngine(s.menuDefs, s.scintDefs, shortcut.Limits{
		Macros:         lim.Macros,
		UserCommands:   lim.UserCommands,
		PluginCommands: lim.PluginCommands,
	})
	s.langsDoc, s.configDoc, s.stylersDoc, s.shortcutsDoc = nil, nil, nil, nil
	s.themePath = ""
	s.session = nil
	s.blacklist = nil
	s.status = nil
	s.loaded = false
	s.rememberSession = s.cfg.Load.RememberSession
}

func (s *Store) path(doc string) string {
	return s.cfg.SettingsPath(doc)
}

// Load reads every settings document. A grouping error in the editor-command
// table is returned at once; document failures are collected, each as a
// *DocumentError, and the remaining documents still load. A dirty session
// from the previous Load is saved first.
func (s *Store) Load() error {
	if s.session != nil && s.session.Dirty() {
		if err := s.SaveSession(); err != nil {
			logger.Warn("unsaved session dropped on reload", "err", err)
		}
	}
	s.reset()
	if err := s.shortcuts.InitializeDefaults(); err != nil {
		return err
	}
	for _, d := range s.pluginDefs {
		if _, err := s.shortcuts.RegisterPluginCommand(d.Module, d.InternalID, d.Shortcut); err != nil {
			logger.Warn("plugin command not registered", "module", d.Module, "internalID", d.InternalID, "err", err)
		}
	}
	if err := os.MkdirAll(s.cfg.Paths.SettingsDir, 0o755); err != nil {
		return &DocumentError{Doc: s.cfg.Paths.SettingsDir, Err: err}
	}

	steps := []struct {
		doc  string
		load func() (string, error)
	}{
		{DocLangs, s.loadLangs},
		{DocConfig, s.loadConfig},
		{DocStylers, s.loadStylers},
		{DocPluginLexers, s.loadPluginLexers},
		{DocUserLangs, s.loadUserLangs},
		{DocShortcuts, s.loadShortcuts},
		{DocSession, s.loadSession},
		{DocBlacklist, s.loadBlacklist},
	}

	var errs error
	for _, step := range steps {
		path, err := step.load()
		st := DocStatus{Doc: step.doc, Path: path, Loaded: err == nil}
		switch {
		case errors.Is(err, errSkipped):
			st.Loaded, st.Skipped = false, true
		case errors.Is(err, errOptionalMissing):
			st.Missing, st.Err = true, docstore.ErrNotExist
		case err != nil:
			st.Err = err
			errs = multierr.Append(errs, &DocumentError{Doc: step.doc, Err: err})
		}
		s.status = append(s.status, st)
		logger.Debug("settings document", "doc", step.doc, "path", path, "loaded", st.Loaded, "err", st.Err)
	}
	s.loaded = true
	return errs
}

var (
	errSkipped         = errors.New("skipped")
	errOptionalMissing = errors.New("optional document missing")
)

// Status returns the outcome of each document of the last Load.
func (s *Store) Status() []DocStatus {
	return append([]DocStatus(nil), s.status...)
}

// Loaded reports whether the last Load got past the fatal documents.
func (s *Store) Loaded() bool {
	return s.loaded
}

// Config returns the engine configuration.
func (s *Store) Config() config.Config {
	return s.cfg
}

// Langs returns the language table.
func (s *Store) Langs() *langs.Table {
	return s.langs
}

// Stylers returns the active style tables.
func (s *Store) Stylers() *style.Stylers {
	return s.stylers
}

// UserLangs returns the user-defined language table.
func (s *Store) UserLangs() *udl.Table {
	return s.userLangs
}

// Shortcuts returns the shortcut engine.
func (s *Store) Shortcuts() *shortcut.Engine {
	return s.shortcuts
}

// Session returns the session manager, or nil when sessions are not kept.
func (s *Store) Session() *session.Manager {
	return s.session
}

// Blacklist returns the names of plugins that must not load.
func (s *Store) Blacklist() []string {
	return append([]string(nil), s.blacklist...)
}

// ThemePath returns the stylers document in use.
func (s *Store) ThemePath() string {
	return s.themePath
}

func (s *Store) seed(doc, model string) {
	src := s.cfg.InstallPath(model)
	if src == "" {
		return
	}
	if err := docstore.CopyIfMissing(s.path(doc), src); err != nil {
		logger.Warn("seeding settings document failed", "doc", doc, "model", src, "err", err)
	}
}

func (s *Store) recover(doc, model string) error {
	src := s.cfg.InstallPath(model)
	if src == "" {
		return ErrNotLoaded
	}
	return docstore.CopyFile(s.path(doc), src)
}

func openRoot(path string) (*docstore.Document, *etree.Element, error) {
	d, err := docstore.Open(path)
	if err != nil {
		return nil, nil, err
	}
	root := d.Root(docstore.RootName)
	if root == nil {
		return nil, nil, docstore.ErrNoRoot
	}
	return d, root, nil
}

func (s *Store) loadLangs() (string, error) {
	path := s.path(DocLangs)
	info, err := os.Stat(path)
	switch {
	case err != nil:
		if rerr := s.recover(DocLangs, modelLangs); rerr != nil {
			logger.Warn("langs model copy failed", "err", rerr)
		}
	case info.Size() == 0:
		if s.prompter.Prompt(DocLangs, ErrEmptyDocument) {
			if rerr := s.recover(DocLangs, modelLangs); rerr != nil {
				logger.Warn("langs model copy failed", "err", rerr)
			}
		}
	}

	d, root, err := openRoot(path)
	if err != nil {
		s.prompter.Prompt(DocLangs, err)
		return path, err
	}
	n := s.langs.Feed(root)
	s.langsDoc = d
	logger.Info("languages loaded", "count", n)
	return path, nil
}

func (s *Store) loadConfig() (string, error) {
	path := s.path(DocConfig)
	s.seed(DocConfig, modelConfig)

	d, root, err := openRoot(path)
	if err != nil {
		if !s.prompter.Prompt(DocConfig, err) {
			return path, err
		}
		if rerr := s.recover(DocConfig, modelConfig); rerr != nil {
			return path, multierr.Append(err, rerr)
		}
		if d, root, err = openRoot(path); err != nil {
			return path, err
		}
	}
	s.configDoc = d
	s.readGUIConfig(root)
	return path, nil
}

func (s *Store) readGUIConfig(root *etree.Element) {
	for _, gc := range docstore.Children(docstore.FirstChild(root, "GUIConfigs"), "GUIConfig") {
		name, _ := docstore.Attr(gc, "name")
		switch name {
		case "stylerTheme":
			if p, _ := docstore.Attr(gc, "path"); p != "" {
				s.themePath = p
			}
		case "RememberLastSession":
			switch docstore.Text(gc) {
			case "yes":
				s.rememberSession = s.cfg.Load.RememberSession
			case "no":
				s.rememberSession = false
			}
		}
	}
}

// resolveTheme picks the stylers document: the configured theme, then the
// theme named in config.xml, then stylers.xml. A theme file that does not
// exist falls back to stylers.xml.
func (s *Store) resolveTheme() string {
	candidates := []string{s.cfg.Paths.Theme, s.themePath}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = s.path(p)
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return s.path(DocStylers)
}

func (s *Store) loadStylers() (string, error) {
	s.seed(DocStylers, modelStylers)
	path := s.resolveTheme()
	s.themePath = path

	d, root, err := openRoot(path)
	if err != nil {
		s.prompter.Prompt(DocStylers, err)
		return path, err
	}
	s.stylersDoc = d
	if err := s.stylers.LoadBuiltin(root); err != nil {
		s.prompter.Prompt(DocStylers, err)
		return path, err
	}
	return path, nil
}

// loadPluginLexers merges plugin lexer documents into the style namespace
// and the language table.
func (s *Store) loadPluginLexers() (string, error) {
	files, err := s.cfg.PluginLexerFiles()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", errSkipped
	}
	var docs []*docstore.Document
	var errs error
	for _, f := range files {
		d, root, err := openRoot(f)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		s.langs.Feed(root)
		docs = append(docs, d)
	}
	errs = multierr.Append(errs, s.stylers.MergeExternal(docs))
	return filepath.Dir(files[0]), errs
}

func (s *Store) loadUserLangs() (string, error) {
	path := s.path(DocUserLangs)
	_, root, err := openRoot(path)
	if errors.Is(err, docstore.ErrNotExist) {
		return path, errOptionalMissing
	}
	if err != nil {
		return path, err
	}
	n, err := s.userLangs.Import(root)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			logger.Warn("user language skipped", "err", e)
		}
	}
	logger.Info("user languages loaded", "count", n)
	return path, nil
}

func (s *Store) loadShortcuts() (string, error) {
	path := s.path(DocShortcuts)
	s.seed(DocShortcuts, modelShortcuts)
	d, root, err := openRoot(path)
	if errors.Is(err, docstore.ErrNotExist) {
		return path, errOptionalMissing
	}
	if err != nil {
		return path, err
	}
	s.shortcutsDoc = d
	s.shortcuts.ApplyUserOverrides(root)
	if err := s.shortcuts.LoadMacros(root); err != nil {
		logger.Warn("macros truncated", "err", err)
	}
	if err := s.shortcuts.LoadUserCommands(root); err != nil {
		logger.Warn("user commands truncated", "err", err)
	}
	return path, nil
}

func (s *Store) loadSession() (string, error) {
	path := s.path(DocSession)
	if !s.rememberSession {
		return path, errSkipped
	}
	m, err := session.NewManager(path)
	s.session = m
	if errors.Is(err, docstore.ErrNotExist) {
		return path, errOptionalMissing
	}
	return path, err
}

func (s *Store) loadBlacklist() (string, error) {
	path := s.path(DocBlacklist)
	_, root, err := openRoot(path)
	if errors.Is(err, docstore.ErrNotExist) {
		return path, errOptionalMissing
	}
	if err != nil {
		return path, err
	}
	for _, p := range docstore.Children(docstore.FirstChild(root, "PluginBlackList"), "Plugin") {
		if name, ok := docstore.Attr(p, "name"); ok && name != "" {
			s.blacklist = append(s.blacklist, name)
		}
	}
	return path, nil
}

// Shutdown releases tables and documents in reverse load order.
func (s *Store) Shutdown() {
	s.blacklist = nil
	s.session = nil
	s.shortcutsDoc = nil
	s.shortcuts = nil
	s.userLangs = nil
	s.stylers = nil
	s.stylersDoc = nil
	s.configDoc = nil
	s.langsDoc = nil
	s.langs = nil
	s.loaded = false
	logger.Debug("store shut down")
}
