package style

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/multierr"

	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/logger"
)

// Stylers is the authoritative style state: every lexer, built-in or
// plugin-provided, in one namespace, plus the global widget styles.
type Stylers struct {
	Lexers  *LexerStylerArray
	Globals *StyleArray

	external []*docstore.Document
}

// NewStylers returns empty lexer and global tables.
func NewStylers(maxLexers, stylesPerArray int) *Stylers {
	return &Stylers{
		Lexers:  NewLexerStylerArray(maxLexers, stylesPerArray),
		Globals: NewStyleArray(stylesPerArray),
	}
}

// External returns the plugin lexer documents merged so far.
func (s *Stylers) External() []*docstore.Document {
	return s.external
}

// LoadBuiltin reads LexerStyles and GlobalStyles under root. When an array
// fills up, loading stops with ErrAtCapacity and what was read so far stays.
func (s *Stylers) LoadBuiltin(root *etree.Element) error {
	if err := s.feedLexers(root); err != nil {
		return err
	}
	globals := docstore.FirstChild(root, "GlobalStyles")
	if globals == nil {
		return fmt.Errorf("GlobalStyles: %w", ErrMissingSection)
	}
	for _, ws := range docstore.Children(globals, "WidgetStyle") {
		if !s.Globals.HasRoom() {
			return fmt.Errorf("global styles: %w", ErrAtCapacity)
		}
		id, ok := docstore.AttrInt(ws, "styleID")
		if !ok || id == NotUsed {
			continue
		}
		if err := s.Globals.AddStyler(id, ws); err != nil {
			logger.Debug("widget style not added", "styleID", id, "err", err)
		}
	}
	return nil
}

func (s *Stylers) feedLexers(root *etree.Element) error {
	section := docstore.FirstChild(root, "LexerStyles")
	if section == nil {
		return fmt.Errorf("LexerStyles: %w", ErrMissingSection)
	}
	for _, lt := range docstore.Children(section, "LexerType") {
		name, ok := docstore.Attr(lt, "name")
		if !ok {
			continue
		}
		if s.Lexers.ByName(name) == nil && !s.Lexers.HasRoom() {
			return fmt.Errorf("lexer %q: %w", name, ErrAtCapacity)
		}
		desc, _ := docstore.Attr(lt, "desc")
		ext, _ := docstore.Attr(lt, "ext")
		if err := s.Lexers.AddLexerStyler(name, desc, ext, lt); err != nil {
			return err
		}
		if excluded, _ := docstore.AttrBool(lt, "excluded"); excluded {
			s.Lexers.ByName(name).Excluded = true
		}
	}
	return nil
}

// MergeExternal adds plugin lexer documents to the shared lexer array. A
// plugin lexer reusing an existing name extends that entry; styles already
// present keep their first definition.
func (s *Stylers) MergeExternal(docs []*docstore.Document) error {
	var errs error
	for _, d := range docs {
		root := d.Root(docstore.RootName)
		if root == nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", d.Path(), docstore.ErrNoRoot))
			continue
		}
		if err := s.feedLexers(root); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", d.Path(), err))
		}
		s.external = append(s.external, d)
	}
	return errs
}

// WriteStyles writes changed attributes into every lexer and widget style
// node that already exists under userRoot, then into each plugin lexer
// document, which is saved. Nodes with no in-memory counterpart are left
// untouched, and attributes are only ever set, never removed. Reference
// arrays, when given, receive font name changes made here. Every dirty mark
// is cleared afterwards.
func (s *Stylers) WriteStyles(refLexers *LexerStylerArray, refGlobals *StyleArray, userRoot *etree.Element) error {
	if userRoot == nil {
		return docstore.ErrNoRoot
	}
	lexers := docstore.FirstChild(userRoot, "LexerStyles")
	if lexers == nil {
		return fmt.Errorf("LexerStyles: %w", ErrMissingSection)
	}
	s.writeLexers(refLexers, lexers)

	var errs error
	for _, d := range s.external {
		section := docstore.FirstChild(d.Root(docstore.RootName), "LexerStyles")
		if section == nil {
			continue
		}
		s.writeLexers(refLexers, section)
		errs = multierr.Append(errs, d.Save())
	}

	for _, ws := range docstore.Children(docstore.FirstChild(userRoot, "GlobalStyles"), "WidgetStyle") {
		name, _ := docstore.Attr(ws, "name")
		i := s.Globals.IndexByName(name)
		if i < 0 {
			continue
		}
		var ref *Style
		if refGlobals != nil {
			ref = refGlobals.Get(i)
		}
		writeStyle(s.Globals.Get(i), ref, ws)
	}
	s.clearDirty()
	return errs
}

func (s *Stylers) clearDirty() {
	for i := 0; i < s.Lexers.Len(); i++ {
		l := s.Lexers.Get(i)
		l.extDirty = false
		for j := 0; j < l.Styles.Len(); j++ {
			l.Styles.Get(j).ClearDirty()
		}
	}
	for j := 0; j < s.Globals.Len(); j++ {
		s.Globals.Get(j).ClearDirty()
	}
}

func (s *Stylers) writeLexers(refLexers *LexerStylerArray, section *etree.Element) {
	for _, lt := range docstore.Children(section, "LexerType") {
		name, _ := docstore.Attr(lt, "name")
		l := s.Lexers.ByName(name)
		if l == nil {
			logger.Debug("stale lexer left untouched", "lexer", name)
			continue
		}
		var ref *LexerStyler
		if refLexers != nil {
			ref = refLexers.ByName(name)
		}
		if l.extDirty {
			docstore.SetAttr(lt, "ext", l.UserExt)
		}
		for _, ws := range docstore.Children(lt, "WordsStyle") {
			styleName, _ := docstore.Attr(ws, "name")
			i := l.Styles.IndexByName(styleName)
			if i < 0 {
				continue
			}
			var refStyle *Style
			if ref != nil {
				refStyle = ref.Styles.Get(i)
			}
			writeStyle(l.Styles.Get(i), refStyle, ws)
		}
	}
}

func writeStyle(st, ref *Style, node *etree.Element) {
	d := st.Dirty()
	if d.Has(AttrFg) && st.Fg.IsSet() {
		docstore.SetAttr(node, "fgColor", st.Fg.Hex())
	}
	if d.Has(AttrBg) && st.Bg.IsSet() {
		docstore.SetAttr(node, "bgColor", st.Bg.Hex())
	}
	if d.Has(AttrColorStyle) && st.ColorStyle != ColorStyleAll {
		docstore.SetAttrInt(node, "colorStyle", st.ColorStyle)
	}
	if d.Has(AttrFontName) && st.FontName != "" {
		if old, _ := docstore.Attr(node, "fontName"); old != st.FontName {
			docstore.SetAttr(node, "fontName", st.FontName)
			if ref != nil {
				ref.FontName = st.FontName
			}
		}
	}
	if d.Has(AttrFontSize) && st.FontSize != NotUsed {
		if st.FontSize == 0 {
			docstore.SetAttr(node, "fontSize", "")
		} else {
			docstore.SetAttrInt(node, "fontSize", st.FontSize)
		}
	}
	if d.Has(AttrFontStyle) && st.FontStyle != NotUsed {
		docstore.SetAttrInt(node, "fontStyle", st.FontStyle)
	}
	if d.Has(AttrNesting) {
		docstore.SetAttrInt(node, "nesting", st.Nesting)
	}
	if d.Has(AttrKeywords) && st.Keywords != nil {
		docstore.SetText(node, *st.Keywords)
	}
}
