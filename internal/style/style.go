// Package style holds syntax-highlighting styles: per-lexer style arrays, the
// global widget styles, and the merge of built-in, plugin and user style
// documents.
package style

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

var (
	// ErrAtCapacity indicates a bounded array has no room left.
	ErrAtCapacity = errors.New("style array at capacity")

	// ErrSlotTaken indicates the target slot already holds a style.
	ErrSlotTaken = errors.New("style slot already in use")

	// ErrMissingSection indicates a styles document lacks a required section.
	ErrMissingSection = errors.New("styles section missing")
)

// NotUsed marks an integer attribute with no value.
const NotUsed = -1

// Which colors of a style apply.
const (
	ColorStyleFg  = 1
	ColorStyleBg  = 2
	ColorStyleAll = ColorStyleFg | ColorStyleBg
)

// Font style bits.
const (
	FontBold      = 1
	FontItalic    = 2
	FontUnderline = 4
)

// Attr is a set of style attributes.
type Attr uint16

const (
	AttrFg Attr = 1 << iota
	AttrBg
	AttrColorStyle
	AttrFontName
	AttrFontStyle
	AttrFontSize
	AttrNesting
	AttrKeywords
)

// Has reports whether every bit of b is set.
func (a Attr) Has(b Attr) bool {
	return a&b != 0
}

// Style is one highlighting style. ID NotUsed marks an empty slot.
// Setters record the attribute as dirty; only dirty attributes are written
// back to disk.
type Style struct {
	ID           int
	Desc         string
	Fg           Color
	Bg           Color
	ColorStyle   int
	FontName     string
	FontStyle    int
	FontSize     int
	Nesting      int
	KeywordClass int
	Keywords     *string

	dirty Attr
}

// NewStyle returns an empty slot with every attribute unset.
func NewStyle() Style {
	return Style{
		ID:           NotUsed,
		Fg:           ColorUnset,
		Bg:           ColorUnset,
		ColorStyle:   ColorStyleAll,
		FontStyle:    NotUsed,
		FontSize:     NotUsed,
		KeywordClass: NotUsed,
	}
}

// Used reports whether the style carries an ID.
func (s *Style) Used() bool {
	return s.ID != NotUsed
}

// SetFg sets the foreground color and marks it dirty.
func (s *Style) SetFg(c Color) {
	s.Fg = c
	s.dirty |= AttrFg
}

// SetBg sets the background color and marks it dirty.
func (s *Style) SetBg(c Color) {
	s.Bg = c
	s.dirty |= AttrBg
}

// SetColorStyle sets which colors apply.
func (s *Style) SetColorStyle(v int) {
	s.ColorStyle = v
	s.dirty |= AttrColorStyle
}

// SetFontName sets the font face.
func (s *Style) SetFontName(name string) {
	s.FontName = name
	s.dirty |= AttrFontName
}

// SetFontStyle sets the bold/italic/underline bits.
func (s *Style) SetFontStyle(v int) {
	s.FontStyle = v
	s.dirty |= AttrFontStyle
}

// SetFontSize sets the point size.
func (s *Style) SetFontSize(v int) {
	s.FontSize = v
	s.dirty |= AttrFontSize
}

// SetNesting sets the nesting mask used by user languages.
func (s *Style) SetNesting(v int) {
	s.Nesting = v
	s.dirty |= AttrNesting
}

// SetKeywords replaces the user keyword list.
func (s *Style) SetKeywords(kw string) {
	s.Keywords = &kw
	s.dirty |= AttrKeywords
}

// Dirty returns the attributes changed since the last write.
func (s *Style) Dirty() Attr {
	return s.dirty
}

// ClearDirty forgets which fields changed, after a write.
func (s *Style) ClearDirty() {
	s.dirty = 0
}

// TcellStyle renders the style for a terminal cell.
func (s *Style) TcellStyle() tcell.Style {
	st := tcell.StyleDefault
	if s.ColorStyle&ColorStyleFg != 0 {
		st = st.Foreground(s.Fg.Tcell())
	}
	if s.ColorStyle&ColorStyleBg != 0 {
		st = st.Background(s.Bg.Tcell())
	}
	if s.FontStyle != NotUsed {
		st = st.Bold(s.FontStyle&FontBold != 0).
			Italic(s.FontStyle&FontItalic != 0).
			Underline(s.FontStyle&FontUnderline != 0)
	}
	return st
}

func (s Style) clone() Style {
	if s.Keywords != nil {
		kw := *s.Keywords
		s.Keywords = &kw
	}
	return s
}

// KeywordClassFromName maps a keywordClass attribute to a keyword-set index:
// instre1, instre2, type1..type5, or a single digit 0..8. Anything else is
// NotUsed.
func KeywordClassFromName(name string) int {
	switch name {
	case "instre1":
		return 0
	case "instre2":
		return 1
	case "type1":
		return 2
	case "type2":
		return 3
	case "type3":
		return 4
	case "type4":
		return 5
	case "type5":
		return 6
	}
	if len(name) == 1 && name[0] >= '0' && name[0] <= '8' {
		return int(name[0] - '0')
	}
	return NotUsed
}
