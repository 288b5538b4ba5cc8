package style

import (
	"github.com/beevik/etree"

	"github.com/kobzarvs/nppcfg/internal/docstore"
)

// UserDomain tags style ids owned by user-defined languages. Such ids carry
// the domain in the high word and a direct slot index in the low word.
const UserDomain = 15

// UserStyleID returns the tagged id of user-language style slot.
func UserStyleID(slot int) int {
	return UserDomain<<16 | slot
}

// IsUserStyleID reports whether id belongs to the user-language domain.
func IsUserStyleID(id int) bool {
	return id>>16 == UserDomain
}

// StyleArray is a bounded list of styles.
type StyleArray struct {
	max    int
	styles []Style
	names  func(slot int) string
}

// NewStyleArray returns an empty array holding up to max styles.
func NewStyleArray(max int) *StyleArray {
	return &StyleArray{max: max}
}

// SetNameLookup installs the slot->name table used for user-domain styles.
func (a *StyleArray) SetNameLookup(fn func(slot int) string) {
	a.names = fn
}

// Len returns the number of styles.
func (a *StyleArray) Len() int {
	return len(a.styles)
}

// Cap returns the most styles the array can hold.
func (a *StyleArray) Cap() int {
	return a.max
}

// HasRoom reports whether another appended style fits.
func (a *StyleArray) HasRoom() bool {
	return len(a.styles) < a.max
}

// Get returns the style at i for in-place edits, or nil.
func (a *StyleArray) Get(i int) *Style {
	if i < 0 || i >= len(a.styles) {
		return nil
	}
	return &a.styles[i]
}

// IndexByName returns the index of the style whose description is name, or -1.
func (a *StyleArray) IndexByName(name string) int {
	for i := range a.styles {
		if a.styles[i].Used() && a.styles[i].Desc == name {
			return i
		}
	}
	return -1
}

// IndexByID returns the index of the style with id, or -1.
func (a *StyleArray) IndexByID(id int) int {
	for i := range a.styles {
		if a.styles[i].ID == id {
			return i
		}
	}
	return -1
}

// AddStyler inserts a style read from node, which may be nil. A user-domain
// id goes straight to its slot; any other id is appended unless a style
// with that id already exists. Only attributes present on node are applied.
func (a *StyleArray) AddStyler(id int, node *etree.Element) error {
	user := IsUserStyleID(id)
	var idx int
	if user {
		id &= 0xFFFF
		idx = id
		if idx >= a.max {
			return ErrAtCapacity
		}
		for len(a.styles) <= idx {
			a.styles = append(a.styles, NewStyle())
		}
		if a.styles[idx].Used() {
			return ErrSlotTaken
		}
	} else {
		if a.IndexByID(id) >= 0 {
			return ErrSlotTaken
		}
		if !a.HasRoom() {
			return ErrAtCapacity
		}
		idx = len(a.styles)
		a.styles = append(a.styles, NewStyle())
	}

	s := &a.styles[idx]
	s.ID = id
	if user && a.names != nil {
		s.Desc = a.names(idx)
	}
	if node == nil {
		return nil
	}
	if name, ok := docstore.Attr(node, "name"); ok && s.Desc == "" {
		s.Desc = name
	}
	applyAttrs(s, node)
	return nil
}

func applyAttrs(s *Style, node *etree.Element) {
	if v, ok := docstore.Attr(node, "fgColor"); ok {
		s.Fg = ParseHexColor(v)
	}
	if v, ok := docstore.Attr(node, "bgColor"); ok {
		s.Bg = ParseHexColor(v)
	}
	if _, ok := docstore.Attr(node, "colorStyle"); ok {
		s.ColorStyle = decAttr(node, "colorStyle")
	}
	if v, ok := docstore.Attr(node, "fontName"); ok {
		s.FontName = v
	}
	if _, ok := docstore.Attr(node, "fontStyle"); ok {
		s.FontStyle = decAttr(node, "fontStyle")
	}
	if _, ok := docstore.Attr(node, "fontSize"); ok {
		s.FontSize = decAttr(node, "fontSize")
	}
	if _, ok := docstore.Attr(node, "nesting"); ok {
		s.Nesting = decAttr(node, "nesting")
	}
	if v, ok := docstore.Attr(node, "keywordClass"); ok {
		s.KeywordClass = KeywordClassFromName(v)
	}
	if kw := docstore.Text(node); kw != "" {
		s.Keywords = &kw
	}
}

// decAttr reads a decimal attribute; an unparsable value is NotUsed.
func decAttr(node *etree.Element, name string) int {
	v, ok := docstore.AttrInt(node, name)
	if !ok {
		return NotUsed
	}
	return v
}

// AddDefault appends or fills an unset style named name.
func (a *StyleArray) AddDefault(id int, name string) error {
	if err := a.AddStyler(id, nil); err != nil {
		return err
	}
	i := a.IndexByID(id)
	if IsUserStyleID(id) {
		i = id & 0xFFFF
	}
	if name != "" {
		a.styles[i].Desc = name
	}
	return nil
}

// Clone returns a deep copy.
func (a *StyleArray) Clone() *StyleArray {
	c := &StyleArray{max: a.max, names: a.names, styles: make([]Style, len(a.styles))}
	for i, s := range a.styles {
		c.styles[i] = s.clone()
	}
	return c
}

// PropagateFontName renames the font of every style in arr that uses
// oldName and returns how many styles changed.
func PropagateFontName(arr *StyleArray, oldName, newName string) int {
	if oldName == newName {
		return 0
	}
	n := 0
	for i := range arr.styles {
		s := &arr.styles[i]
		if s.Used() && s.FontName == oldName {
			s.SetFontName(newName)
			n++
		}
	}
	return n
}
