package style

import (
	"github.com/beevik/etree"

	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/logger"
)

// LexerStyler is the style set of one lexer.
type LexerStyler struct {
	Name     string
	Desc     string
	UserExt  string
	Excluded bool
	Styles   *StyleArray

	extDirty bool
}

// SetUserExt replaces the user extension list and marks it for writing.
func (l *LexerStyler) SetUserExt(ext string) {
	l.UserExt = ext
	l.extDirty = true
}

// LexerStylerArray is a bounded list of lexers keyed by exact name.
type LexerStylerArray struct {
	max       int
	stylesMax int
	lexers    []*LexerStyler
}

// NewLexerStylerArray returns an empty array holding up to max lexers.
func NewLexerStylerArray(max, stylesPerLexer int) *LexerStylerArray {
	return &LexerStylerArray{max: max, stylesMax: stylesPerLexer}
}

// Len returns the number of lexers.
func (a *LexerStylerArray) Len() int {
	return len(a.lexers)
}

// HasRoom reports whether another lexer fits.
func (a *LexerStylerArray) HasRoom() bool {
	return len(a.lexers) < a.max
}

// Get returns lexer i, or nil when out of range.
func (a *LexerStylerArray) Get(i int) *LexerStyler {
	if i < 0 || i >= len(a.lexers) {
		return nil
	}
	return a.lexers[i]
}

// ByName returns the lexer with exactly this name, or nil.
func (a *LexerStylerArray) ByName(name string) *LexerStyler {
	for _, l := range a.lexers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// AddLexerStyler adds the lexer described by node. A lexer already present
// under the same name keeps its entry and gains only the styles whose ids it
// does not have yet.
func (a *LexerStylerArray) AddLexerStyler(name, desc, ext string, node *etree.Element) error {
	l := a.ByName(name)
	if l == nil {
		if !a.HasRoom() {
			return ErrAtCapacity
		}
		l = &LexerStyler{Name: name, Desc: desc, UserExt: ext, Styles: NewStyleArray(a.stylesMax)}
		a.lexers = append(a.lexers, l)
	}
	for _, ws := range docstore.Children(node, "WordsStyle") {
		if !l.Styles.HasRoom() {
			logger.Debug("lexer style array full", "lexer", name)
			break
		}
		id, ok := docstore.AttrInt(ws, "styleID")
		if !ok || id == NotUsed {
			continue
		}
		if err := l.Styles.AddStyler(id, ws); err != nil {
			logger.Debug("lexer style not added", "lexer", name, "styleID", id, "err", err)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (a *LexerStylerArray) Clone() *LexerStylerArray {
	c := &LexerStylerArray{max: a.max, stylesMax: a.stylesMax, lexers: make([]*LexerStyler, len(a.lexers))}
	for i, l := range a.lexers {
		cp := *l
		cp.Styles = l.Styles.Clone()
		c.lexers[i] = &cp
	}
	return c
}

// EraseAll drops every lexer.
func (a *LexerStylerArray) EraseAll() {
	a.lexers = nil
}
