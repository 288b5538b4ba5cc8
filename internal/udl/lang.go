// Package udl reads, migrates and writes user-defined languages: keyword
// lists, syntax settings and a fixed set of style slots per language.
package udl

import (
	"github.com/beevik/etree"

	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/style"
)

// UserLang is one user-defined language.
type UserLang struct {
	Name    string
	Ext     string
	Version string

	CaseIgnored         bool
	AllowFoldOfComments bool
	FoldCompact         bool
	ForcePureLC         int
	DecimalSeparator    int

	Prefix   [KeywordGroups]bool
	Keywords [KeywordListTotal]string
	Styles   *style.StyleArray
}

// NewUserLang returns an empty language with room for every style slot.
func NewUserLang(name, ext string) *UserLang {
	st := style.NewStyleArray(StyleTotal)
	st.SetNameLookup(StyleName)
	return &UserLang{Name: name, Ext: ext, Version: CurrentVersion, Styles: st}
}

// Clone returns a deep copy.
func (l *UserLang) Clone() *UserLang {
	c := *l
	c.Styles = l.Styles.Clone()
	return &c
}

// Style returns the style in slot, or nil when the slot is empty.
func (l *UserLang) Style(slot int) *style.Style {
	s := l.Styles.Get(slot)
	if s == nil || !s.Used() {
		return nil
	}
	return s
}

func (l *UserLang) readSettings(settings *etree.Element) {
	global := docstore.FirstChild(settings, "Global")
	if global != nil {
		l.CaseIgnored, _ = docstore.AttrBool(global, "caseIgnored")
		l.AllowFoldOfComments, _ = docstore.AttrBool(global, "allowFoldOfComments")
		l.FoldCompact, _ = docstore.AttrBool(global, "foldCompact")
		if v, ok := docstore.AttrInt(global, "forcePureLC"); ok {
			l.ForcePureLC = v
		}
		if v, ok := docstore.AttrInt(global, "decimalSeparator"); ok {
			l.DecimalSeparator = v
		}
	}
	prefix := docstore.FirstChild(settings, "Prefix")
	if prefix == nil {
		return
	}
	// unversioned files name only four groups; the migration reads those
	if l.Version == "" {
		return
	}
	for i, name := range prefixNames(l.Version) {
		if v, ok := docstore.AttrBool(prefix, name); ok {
			l.Prefix[i] = v
		}
	}
}

func (l *UserLang) readKeywords(lists *etree.Element) {
	for _, kw := range docstore.Children(lists, "Keywords") {
		name, _ := docstore.Attr(kw, "name")
		text := docstore.Text(kw)
		if text == "" {
			continue
		}
		if name == "Comment" {
			l.Keywords[KwComments] = packComments(text)
			continue
		}
		if i, ok := KeywordListID(name); ok {
			l.Keywords[i] = text
		}
	}
}

func (l *UserLang) readStyles(styles *etree.Element) {
	for _, ws := range docstore.Children(styles, "WordsStyle") {
		name, ok := docstore.Attr(ws, "name")
		if !ok {
			continue
		}
		slot, ok := StyleID(name)
		if !ok {
			continue
		}
		// first definition of a slot wins
		_ = l.Styles.AddStyler(style.UserStyleID(slot), ws)
	}
}

func (l *UserLang) fillDefaultStyles() {
	for slot := 0; slot < StyleTotal; slot++ {
		if l.Style(slot) == nil {
			_ = l.Styles.AddDefault(style.UserStyleID(slot), StyleName(slot))
		}
	}
}

// insert appends the UserLang element for l under parent.
func (l *UserLang) insert(parent *etree.Element) *etree.Element {
	node := docstore.AppendChild(parent, "UserLang")
	docstore.SetAttr(node, "name", l.Name)
	docstore.SetAttr(node, "ext", l.Ext)
	docstore.SetAttr(node, "udlVersion", CurrentVersion)

	settings := docstore.AppendChild(node, "Settings")
	global := docstore.AppendChild(settings, "Global")
	docstore.SetAttrBool(global, "caseIgnored", l.CaseIgnored)
	docstore.SetAttrBool(global, "allowFoldOfComments", l.AllowFoldOfComments)
	docstore.SetAttrBool(global, "foldCompact", l.FoldCompact)
	docstore.SetAttrInt(global, "forcePureLC", l.ForcePureLC)
	docstore.SetAttrInt(global, "decimalSeparator", l.DecimalSeparator)
	prefix := docstore.AppendChild(settings, "Prefix")
	for i, name := range prefixNames(CurrentVersion) {
		docstore.SetAttrBool(prefix, name, l.Prefix[i])
	}

	lists := docstore.AppendChild(node, "KeywordLists")
	for i, name := range KeywordListNames {
		kw := docstore.AppendChild(lists, "Keywords")
		docstore.SetAttr(kw, "name", name)
		docstore.SetText(kw, l.Keywords[i])
	}

	styles := docstore.AppendChild(node, "Styles")
	for slot := 0; slot < l.Styles.Len(); slot++ {
		st := l.Style(slot)
		if st == nil {
			continue
		}
		writeStyle(docstore.AppendChild(styles, "WordsStyle"), st)
	}
	return node
}

func writeStyle(node *etree.Element, st *style.Style) {
	docstore.SetAttr(node, "name", st.Desc)
	if st.Fg.IsSet() {
		docstore.SetAttr(node, "fgColor", st.Fg.Hex())
	}
	if st.Bg.IsSet() {
		docstore.SetAttr(node, "bgColor", st.Bg.Hex())
	}
	if st.ColorStyle != style.ColorStyleAll {
		docstore.SetAttrInt(node, "colorStyle", st.ColorStyle)
	}
	if st.FontName != "" {
		docstore.SetAttr(node, "fontName", st.FontName)
	}
	if st.FontStyle == style.NotUsed {
		docstore.SetAttr(node, "fontStyle", "0")
	} else {
		docstore.SetAttrInt(node, "fontStyle", st.FontStyle)
	}
	switch {
	case st.FontSize == 0:
		docstore.SetAttr(node, "fontSize", "")
	case st.FontSize != style.NotUsed:
		docstore.SetAttrInt(node, "fontSize", st.FontSize)
	}
	docstore.SetAttrInt(node, "nesting", st.Nesting)
}
