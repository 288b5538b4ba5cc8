package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/nppcfg/internal/keys"
	"github.com/kobzarvs/nppcfg/internal/shortcut"
	"github.com/kobzarvs/nppcfg/internal/store"
)

const defaultStyleName = "Default Style"

var quitKey = keys.KeyCombo{Key: keys.VKEscape}

// KeyView answers "what does this chord do" for every key pressed on a
// terminal screen. Escape pressed twice in a row quits.
type KeyView struct {
	store   *store.Store
	style   tcell.Style
	combo   keys.KeyCombo
	found   []shortcut.Binding
	pressed bool
	lastEsc bool
}

// NewKeyView draws with the user's global default style when it is set.
func NewKeyView(s *store.Store) *KeyView {
	v := &KeyView{store: s, style: tcell.StyleDefault}
	if st := s.Stylers(); st != nil {
		if def := st.Globals.Get(st.Globals.IndexByName(defaultStyleName)); def != nil {
			v.style = def.TcellStyle()
		}
	}
	return v
}

// Combo returns the last chord looked up and the bindings found for it.
func (v *KeyView) Combo() (keys.KeyCombo, []shortcut.Binding) {
	return v.combo, v.found
}

// HandleKey looks the key up and reports whether the view should close.
func (v *KeyView) HandleKey(ev *tcell.EventKey) bool {
	combo, ok := keys.FromEvent(ev)
	if !ok {
		return false
	}
	if quitKey.Matches(ev) {
		if v.lastEsc {
			return true
		}
		v.lastEsc = true
	} else {
		v.lastEsc = false
	}
	v.combo = combo
	v.found = v.store.Shortcuts().Bindings(combo)
	v.pressed = true
	return false
}

// Lines returns the text the view shows, top to bottom.
func (v *KeyView) Lines() []string {
	lines := []string{"press a key chord (Esc twice to quit)", ""}
	if !v.pressed {
		return lines
	}
	if len(v.found) == 0 {
		return append(lines, v.combo.String()+": not bound")
	}
	lines = append(lines, v.combo.String()+":")
	for _, b := range v.found {
		lines = append(lines, fmt.Sprintf("  %-6s %5d  %s", b.Table, b.ID, b.Name))
	}
	return lines
}

// Render clears the screen and draws the current lines.
func (v *KeyView) Render(s tcell.Screen) {
	s.SetStyle(v.style)
	s.Clear()
	w, h := s.Size()
	for y, line := range v.Lines() {
		if y >= h {
			break
		}
		x := 0
		for _, r := range line {
			if x >= w {
				break
			}
			s.SetContent(x, y, r, nil, v.style)
			x++
		}
	}
	s.Show()
}

// Keys runs the key lookup view on an initialized screen until it quits or the
// screen is finalized.
func Keys(s tcell.Screen, st *store.Store) {
	v := NewKeyView(st)
	v.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return
			}
		case *tcell.EventResize:
			s.Sync()
		}
		v.Render(s)
	}
}
