// Package langs holds the built-in language table read from langs.xml and
// from plugin lexer documents: extensions, comment markers, tab settings and
// keyword sets.
package langs

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/style"
)

// DefaultMax bounds the number of languages a table keeps.
const DefaultMax = 100

// KeywordSetMax is the highest keyword set index.
const KeywordSetMax = 8

// TabUnset marks a language without tabSettings.
const TabUnset = -1

// ErrNoSuchLang indicates no Language element carries the requested name.
var ErrNoSuchLang = errors.New("no such language")

// Lang is one built-in language.
type Lang struct {
	Name         string
	Ext          string
	CommentLine  string
	CommentStart string
	CommentEnd   string
	TabSettings  int
	Words        map[int]string
}

// Table is a bounded list of languages in document order.
type Table struct {
	max   int
	langs []*Lang
}

// NewTable returns an empty table holding up to max languages.
func NewTable(max int) *Table {
	return &Table{max: max}
}

// Len returns the number of languages.
func (t *Table) Len() int {
	return len(t.langs)
}

// Get returns language i, or nil when out of range.
func (t *Table) Get(i int) *Lang {
	if i < 0 || i >= len(t.langs) {
		return nil
	}
	return t.langs[i]
}

// Feed appends every named Language under root's Languages section and
// returns how many were added. Languages past the table bound are dropped.
func (t *Table) Feed(root *etree.Element) int {
	n := 0
	for _, node := range docstore.Children(docstore.FirstChild(root, "Languages"), "Language") {
		if len(t.langs) >= t.max {
			break
		}
		name, ok := docstore.Attr(node, "name")
		if !ok {
			continue
		}
		l := &Lang{Name: name, TabSettings: TabUnset, Words: map[int]string{}}
		l.Ext, _ = docstore.Attr(node, "ext")
		l.CommentLine, _ = docstore.Attr(node, "commentLine")
		l.CommentStart, _ = docstore.Attr(node, "commentStart")
		l.CommentEnd, _ = docstore.Attr(node, "commentEnd")
		if v, ok := docstore.AttrInt(node, "tabSettings"); ok {
			l.TabSettings = v
		}
		for _, kw := range docstore.Children(node, "Keywords") {
			cls, _ := docstore.Attr(kw, "name")
			i := style.KeywordClassFromName(cls)
			if i < 0 || i > KeywordSetMax {
				continue
			}
			l.Words[i] = docstore.Text(kw)
		}
		t.langs = append(t.langs, l)
		n++
	}
	return n
}

// ByName returns the first language named name, or nil.
func (t *Table) ByName(name string) *Lang {
	for _, l := range t.langs {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// ByExt returns the first language listing ext, compared case-insensitively.
func (t *Table) ByExt(ext string) *Lang {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return nil
	}
	for _, l := range t.langs {
		for _, e := range strings.Fields(l.Ext) {
			if strings.EqualFold(e, ext) {
				return l
			}
		}
	}
	return nil
}

// SetTabSettings records v on the Language named name in root and in the
// table. The caller saves the document.
func (t *Table) SetTabSettings(root *etree.Element, name string, v int) error {
	for _, node := range docstore.Children(docstore.FirstChild(root, "Languages"), "Language") {
		if n, _ := docstore.Attr(node, "name"); n != name {
			continue
		}
		docstore.SetAttrInt(node, "tabSettings", v)
		if l := t.ByName(name); l != nil {
			l.TabSettings = v
		}
		return nil
	}
	return ErrNoSuchLang
}
