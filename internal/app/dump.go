package app

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/kobzarvs/nppcfg/internal/keys"
	"github.com/kobzarvs/nppcfg/internal/langs"
	"github.com/kobzarvs/nppcfg/internal/session"
	"github.com/kobzarvs/nppcfg/internal/store"
	"github.com/kobzarvs/nppcfg/internal/style"
)

// Dump output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownFormat = errors.New("unknown format")
)

type table struct {
	header []string
	rows   [][]string
	data   interface{}
}

var dumpers = map[string]func(*store.Store) table{
	"shortcuts": dumpShortcuts,
	"scintilla": dumpScintilla,
	"macros":    dumpMacros,
	"usercmds":  dumpUserCommands,
	"plugins":   dumpPluginCommands,
	"conflicts": dumpConflicts,
	"lexers":    dumpLexers,
	"globals":   dumpGlobals,
	"udl":       dumpUserLangs,
	"langs":     dumpLangs,
	"session":   dumpSession,
	"status":    dumpStatus,
}

// Tables lists the names Dump accepts.
func Tables() []string {
	names := make([]string, 0, len(dumpers))
	for n := range dumpers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Dump writes one table of s to w.
func Dump(w io.Writer, s *store.Store, name, format string) error {
	fn, ok := dumpers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	t := fn(s)
	switch format {
	case FormatText, "":
		return writeText(w, t)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t.data); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, t table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	for _, r := range t.rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func combos(ks []keys.KeyCombo) []string {
	out := make([]string, 0, len(ks))
	for _, k := range ks {
		out = append(out, k.String())
	}
	return out
}

func color(c style.Color) string {
	if !c.IsSet() {
		return ""
	}
	return c.Hex()
}

func optInt(v int) string {
	if v == style.NotUsed {
		return ""
	}
	return strconv.Itoa(v)
}

type shortcutRow struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	Keys string `yaml:"keys,omitempty"`
}

func dumpShortcuts(s *store.Store) table {
	t := table{header: []string{"ID", "NAME", "KEYS"}}
	var data []shortcutRow
	for _, sc := range s.Shortcuts().Shortcuts() {
		r := shortcutRow{ID: sc.ID, Name: sc.Name, Keys: sc.KeyCombo.String()}
		data = append(data, r)
		t.rows = append(t.rows, []string{strconv.Itoa(r.ID), r.Name, r.Keys})
	}
	t.data = data
	return t
}

type scintillaRow struct {
	Name      string   `yaml:"name"`
	ScintID   int      `yaml:"scint_id"`
	MenuCmdID int      `yaml:"menu_cmd_id,omitempty"`
	Keys      []string `yaml:"keys,omitempty"`
	Duplicate bool     `yaml:"duplicate,omitempty"`
}

func dumpScintilla(s *store.Store) table {
	t := table{header: []string{"NAME", "SCINT", "MENU", "KEYS", "DUP"}}
	var data []scintillaRow
	for _, m := range s.Shortcuts().ScintillaKeys() {
		r := scintillaRow{Name: m.Name, ScintID: m.ScintID, MenuCmdID: m.MenuCmdID, Keys: combos(m.Combos), Duplicate: m.Duplicate}
		data = append(data, r)
		dup := ""
		if r.Duplicate {
			dup = "yes"
		}
		t.rows = append(t.rows, []string{r.Name, strconv.Itoa(r.ScintID), strconv.Itoa(r.MenuCmdID), strings.Join(r.Keys, " "), dup})
	}
	t.data = data
	return t
}

type macroRow struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Keys  string `yaml:"keys,omitempty"`
	Steps int    `yaml:"steps"`
}

func dumpMacros(s *store.Store) table {
	t := table{header: []string{"ID", "NAME", "KEYS", "STEPS"}}
	var data []macroRow
	for _, m := range s.Shortcuts().Macros() {
		r := macroRow{ID: m.ID, Name: m.Name, Keys: m.KeyCombo.String(), Steps: len(m.Steps)}
		data = append(data, r)
		t.rows = append(t.rows, []string{strconv.Itoa(r.ID), r.Name, r.Keys, strconv.Itoa(r.Steps)})
	}
	t.data = data
	return t
}

type userCommandRow struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Keys    string `yaml:"keys,omitempty"`
	Command string `yaml:"command"`
}

func dumpUserCommands(s *store.Store) table {
	t := table{header: []string{"ID", "NAME", "KEYS", "COMMAND"}}
	var data []userCommandRow
	for _, u := range s.Shortcuts().UserCommands() {
		r := userCommandRow{ID: u.ID, Name: u.Name, Keys: u.KeyCombo.String(), Command: u.Command}
		data = append(data, r)
		t.rows = append(t.rows, []string{strconv.Itoa(r.ID), r.Name, r.Keys, r.Command})
	}
	t.data = data
	return t
}

type pluginRow struct {
	ID         int    `yaml:"id"`
	Module     string `yaml:"module"`
	InternalID int    `yaml:"internal_id"`
	Name       string `yaml:"name"`
	Keys       string `yaml:"keys,omitempty"`
}

func dumpPluginCommands(s *store.Store) table {
	t := table{header: []string{"ID", "MODULE", "INTERNAL", "NAME", "KEYS"}}
	var data []pluginRow
	for _, p := range s.Shortcuts().PluginCommands() {
		r := pluginRow{ID: p.ID, Module: p.ModuleName, InternalID: p.InternalID, Name: p.Name, Keys: p.KeyCombo.String()}
		data = append(data, r)
		t.rows = append(t.rows, []string{strconv.Itoa(r.ID), r.Module, strconv.Itoa(r.InternalID), r.Name, r.Keys})
	}
	t.data = data
	return t
}

type conflictRow struct {
	Keys     string   `yaml:"keys"`
	Commands []string `yaml:"commands"`
}

func dumpConflicts(s *store.Store) table {
	t := table{header: []string{"KEYS", "COMMANDS"}}
	var data []conflictRow
	for _, c := range s.Shortcuts().FindConflicts() {
		r := conflictRow{Keys: c.Combo.String()}
		for _, b := range c.Bindings {
			r.Commands = append(r.Commands, fmt.Sprintf("%s:%d %s", b.Table, b.ID, b.Name))
		}
		data = append(data, r)
		t.rows = append(t.rows, []string{r.Keys, strings.Join(r.Commands, ", ")})
	}
	t.data = data
	return t
}

type styleRow struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Fg       string `yaml:"fg,omitempty"`
	Bg       string `yaml:"bg,omitempty"`
	FontName string `yaml:"font_name,omitempty"`
	FontSize string `yaml:"font_size,omitempty"`
}

func styleRows(a *style.StyleArray) []styleRow {
	var rows []styleRow
	for i := 0; i < a.Len(); i++ {
		st := a.Get(i)
		if st == nil || !st.Used() {
			continue
		}
		rows = append(rows, styleRow{
			ID:       st.ID,
			Name:     st.Desc,
			Fg:       color(st.Fg),
			Bg:       color(st.Bg),
			FontName: st.FontName,
			FontSize: optInt(st.FontSize),
		})
	}
	return rows
}

type lexerRow struct {
	Name     string     `yaml:"name"`
	Desc     string     `yaml:"desc,omitempty"`
	Ext      string     `yaml:"ext,omitempty"`
	Excluded bool       `yaml:"excluded,omitempty"`
	Styles   []styleRow `yaml:"styles"`
}

func dumpLexers(s *store.Store) table {
	t := table{header: []string{"NAME", "DESC", "EXT", "STYLES"}}
	var data []lexerRow
	lexers := s.Stylers().Lexers
	for i := 0; i < lexers.Len(); i++ {
		l := lexers.Get(i)
		r := lexerRow{Name: l.Name, Desc: l.Desc, Ext: l.UserExt, Excluded: l.Excluded, Styles: styleRows(l.Styles)}
		data = append(data, r)
		t.rows = append(t.rows, []string{r.Name, r.Desc, r.Ext, strconv.Itoa(len(r.Styles))})
	}
	t.data = data
	return t
}

func dumpGlobals(s *store.Store) table {
	t := table{header: []string{"ID", "NAME", "FG", "BG", "FONT", "SIZE"}}
	data := styleRows(s.Stylers().Globals)
	for _, r := range data {
		t.rows = append(t.rows, []string{strconv.Itoa(r.ID), r.Name, r.Fg, r.Bg, r.FontName, r.FontSize})
	}
	t.data = data
	return t
}

type userLangRow struct {
	Name        string `yaml:"name"`
	Ext         string `yaml:"ext,omitempty"`
	Version     string `yaml:"version"`
	CaseIgnored bool   `yaml:"case_ignored,omitempty"`
	Styles      int    `yaml:"styles"`
}

func dumpUserLangs(s *store.Store) table {
	t := table{header: []string{"NAME", "EXT", "VERSION", "STYLES"}}
	var data []userLangRow
	ul := s.UserLangs()
	for i := 0; i < ul.Len(); i++ {
		l := ul.Get(i)
		r := userLangRow{Name: l.Name, Ext: l.Ext, Version: l.Version, CaseIgnored: l.CaseIgnored, Styles: len(styleRows(l.Styles))}
		data = append(data, r)
		t.rows = append(t.rows, []string{r.Name, r.Ext, r.Version, strconv.Itoa(r.Styles)})
	}
	t.data = data
	return t
}

type langRow struct {
	Name        string `yaml:"name"`
	Ext         string `yaml:"ext,omitempty"`
	CommentLine string `yaml:"comment_line,omitempty"`
	TabSettings string `yaml:"tab_settings,omitempty"`
	Keywords    int    `yaml:"keywords"`
}

func dumpLangs(s *store.Store) table {
	t := table{header: []string{"NAME", "EXT", "COMMENT", "TAB", "KEYWORDS"}}
	var data []langRow
	lt := s.Langs()
	for i := 0; i < lt.Len(); i++ {
		l := lt.Get(i)
		r := langRow{Name: l.Name, Ext: l.Ext, CommentLine: l.CommentLine, Keywords: len(l.Words)}
		if l.TabSettings != langs.TabUnset {
			r.TabSettings = strconv.Itoa(l.TabSettings)
		}
		data = append(data, r)
		t.rows = append(t.rows, []string{r.Name, r.Ext, r.CommentLine, r.TabSettings, strconv.Itoa(r.Keywords)})
	}
	t.data = data
	return t
}

func dumpSession(s *store.Store) table {
	t := table{header: []string{"VIEW", "ACTIVE", "FILE", "LANG"}}
	m := s.Session()
	if m == nil {
		return t
	}
	sess := m.Session()
	for _, v := range []struct {
		name string
		view session.View
	}{{"main", sess.Main}, {"sub", sess.Sub}} {
		for i, f := range v.view.Files {
			active := ""
			if i == v.view.ActiveIndex {
				active = "*"
			}
			t.rows = append(t.rows, []string{v.name, active, f.Filename, f.Lang})
		}
	}
	t.data = sess
	return t
}

type statusRow struct {
	Doc   string `yaml:"doc"`
	State string `yaml:"state"`
	Path  string `yaml:"path,omitempty"`
	Err   string `yaml:"error,omitempty"`
}

func dumpStatus(s *store.Store) table {
	t := table{header: []string{"DOCUMENT", "STATE", "PATH", "ERROR"}}
	var data []statusRow
	for _, st := range s.Status() {
		r := statusRow{Doc: st.Doc, Path: st.Path, State: "failed"}
		switch {
		case st.Loaded:
			r.State = "loaded"
		case st.Skipped:
			r.State = "skipped"
		case st.Missing:
			r.State = "missing"
		}
		if st.Err != nil {
			r.Err = st.Err.Error()
		}
		data = append(data, r)
		t.rows = append(t.rows, []string{r.Doc, r.State, r.Path, r.Err})
	}
	t.data = data
	return t
}
