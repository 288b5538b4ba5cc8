// Package session reads and writes session.xml: the files open in each view
// with their scroll, selection, bookmark and fold state.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beevik/etree"

	"github.com/kobzarvs/nppcfg/internal/docstore"
)

// Views.
const (
	MainView = 0
	SubView  = 1
)

// ErrNoSession indicates the document has no Session element.
var ErrNoSession = errors.New("session element missing")

// FileState stores the state of a single file
type FileState struct {
	Filename             string `yaml:"filename"`
	Lang                 string `yaml:"lang,omitempty"`
	Encoding             int    `yaml:"encoding"` // -1 when unknown
	BackupFilePath       string `yaml:"backup_file_path,omitempty"`
	OriginalModTimestamp int    `yaml:"original_mod_timestamp,omitempty"`

	FirstVisibleLine int `yaml:"first_visible_line"`
	XOffset          int `yaml:"x_offset"`
	ScrollWidth      int `yaml:"scroll_width"`
	StartPos         int `yaml:"start_pos"`
	EndPos           int `yaml:"end_pos"`
	SelMode          int `yaml:"sel_mode"`

	Marks []int `yaml:"marks,omitempty"`
	Folds []int `yaml:"folds,omitempty"`
}

// View is one editor view.
type View struct {
	ActiveIndex int         `yaml:"active_index"`
	Files       []FileState `yaml:"files"`
}

// Session stores the complete editor session state
type Session struct {
	ActiveView int  `yaml:"active_view"`
	Main       View `yaml:"main"`
	Sub        View `yaml:"sub"`
}

func (s *Session) view(v int) *View {
	if v == SubView {
		return &s.Sub
	}
	return &s.Main
}

// Load reads the session stored at path.
func Load(path string) (Session, error) {
	doc, err := docstore.Open(path)
	if err != nil {
		return Session{}, err
	}
	return Decode(doc.Root(docstore.RootName))
}

// Decode reads the Session element under root. Files without a filename
// are skipped.
func Decode(root *etree.Element) (Session, error) {
	var s Session
	node := docstore.FirstChild(root, "Session")
	if node == nil {
		return s, ErrNoSession
	}
	if v, ok := docstore.AttrInt(node, "activeView"); ok {
		s.ActiveView = v
	}
	decodeView(docstore.FirstChild(node, "mainView"), &s.Main)
	decodeView(docstore.FirstChild(node, "subView"), &s.Sub)
	return s, nil
}

func decodeView(node *etree.Element, v *View) {
	if node == nil {
		return
	}
	if i, ok := docstore.AttrInt(node, "activeIndex"); ok {
		v.ActiveIndex = i
	}
	for _, f := range docstore.Children(node, "File") {
		name, ok := docstore.Attr(f, "filename")
		if !ok {
			continue
		}
		fs := FileState{Filename: name, Encoding: -1}
		fs.Lang, _ = docstore.Attr(f, "lang")
		fs.BackupFilePath, _ = docstore.Attr(f, "backupFilePath")
		ints := []struct {
			attr string
			dst  *int
		}{
			{"encoding", &fs.Encoding},
			{"originalFileLastModifTimestamp", &fs.OriginalModTimestamp},
			{"firstVisibleLine", &fs.FirstVisibleLine},
			{"xOffset", &fs.XOffset},
			{"scrollWidth", &fs.ScrollWidth},
			{"startPos", &fs.StartPos},
			{"endPos", &fs.EndPos},
			{"selMode", &fs.SelMode},
		}
		for _, a := range ints {
			if n, ok := docstore.AttrInt(f, a.attr); ok {
				*a.dst = n
			}
		}
		fs.Marks = lines(f, "Mark")
		fs.Folds = lines(f, "Fold")
		v.Files = append(v.Files, fs)
	}
}

func lines(node *etree.Element, tag string) []int {
	var out []int
	for _, m := range docstore.Children(node, tag) {
		if n, ok := docstore.AttrInt(m, "line"); ok {
			out = append(out, n)
		}
	}
	return out
}

// Save writes s to path as a fresh document.
func Save(path string, s Session) error {
	doc := docstore.New(path, docstore.RootName)
	Encode(doc.Root(docstore.RootName), s)
	return doc.Save()
}

// Encode replaces the Session element under root with s.
func Encode(root *etree.Element, s Session) {
	node := docstore.ReplaceSection(root, "Session")
	docstore.SetAttrInt(node, "activeView", s.ActiveView)
	encodeView(docstore.AppendChild(node, "mainView"), s.Main)
	encodeView(docstore.AppendChild(node, "subView"), s.Sub)
}

func encodeView(node *etree.Element, v View) {
	docstore.SetAttrInt(node, "activeIndex", v.ActiveIndex)
	for _, fs := range v.Files {
		f := docstore.AppendChild(node, "File")
		docstore.SetAttrInt(f, "firstVisibleLine", fs.FirstVisibleLine)
		docstore.SetAttrInt(f, "xOffset", fs.XOffset)
		docstore.SetAttrInt(f, "scrollWidth", fs.ScrollWidth)
		docstore.SetAttrInt(f, "startPos", fs.StartPos)
		docstore.SetAttrInt(f, "endPos", fs.EndPos)
		docstore.SetAttrInt(f, "selMode", fs.SelMode)
		docstore.SetAttr(f, "lang", fs.Lang)
		docstore.SetAttrInt(f, "encoding", fs.Encoding)
		docstore.SetAttr(f, "filename", fs.Filename)
		docstore.SetAttr(f, "backupFilePath", fs.BackupFilePath)
		docstore.SetAttrInt(f, "originalFileLastModifTimestamp", fs.OriginalModTimestamp)
		for _, l := range fs.Marks {
			docstore.SetAttrInt(docstore.AppendChild(f, "Mark"), "line", l)
		}
		for _, l := range fs.Folds {
			docstore.SetAttrInt(docstore.AppendChild(f, "Fold"), "line", l)
		}
	}
}

// Manager handles session persistence
type Manager struct {
	mu      sync.RWMutex
	session Session
	path    string
	dirty   bool
}

// NewManager returns a manager for the session stored at path. A missing
// or unreadable file starts an empty session and is reported.
func NewManager(path string) (*Manager, error) {
	m := &Manager{path: path}
	s, err := Load(path)
	if err != nil {
		return m, fmt.Errorf("session %s: %w", path, err)
	}
	m.session = s
	return m, nil
}

// Session returns a copy of the current session.
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.session
	s.Main.Files = append([]FileState(nil), s.Main.Files...)
	s.Sub.Files = append([]FileState(nil), s.Sub.Files...)
	return s
}

// Replace installs s as the current session.
func (m *Manager) Replace(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.dirty = true
}

// Save persists the session to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}
	if err := Save(m.path, m.session); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

// ForceSave saves even if not dirty
func (m *Manager) ForceSave() error {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
	return m.Save()
}

// Dirty reports unsaved changes.
func (m *Manager) Dirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirty
}

// FileState returns the saved state for a file in either view.
func (m *Manager) FileState(filename string) (FileState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range []*View{&m.session.Main, &m.session.Sub} {
		for _, fs := range v.Files {
			if fs.Filename == filename {
				return fs, true
			}
		}
	}
	return FileState{}, false
}

// SetFileState updates or appends the state for a file in view and makes
// it the active file.
func (m *Manager) SetFileState(view int, state FileState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.session.view(view)
	idx := -1
	for i := range v.Files {
		if v.Files[i].Filename == state.Filename {
			idx = i
			break
		}
	}
	if idx < 0 {
		v.Files = append(v.Files, state)
		idx = len(v.Files) - 1
	} else {
		v.Files[idx] = state
	}
	v.ActiveIndex = idx
	if view == SubView {
		m.session.ActiveView = SubView
	} else {
		m.session.ActiveView = MainView
	}
	m.dirty = true
}

// ActiveFile returns the active file of the active view, or "".
func (m *Manager) ActiveFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v := m.session.view(m.session.ActiveView)
	if v.ActiveIndex < 0 || v.ActiveIndex >= len(v.Files) {
		return ""
	}
	return v.Files[v.ActiveIndex].Filename
}
