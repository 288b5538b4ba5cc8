package keys

import "github.com/gdamore/tcell/v2"

var tcellToVK = map[tcell.Key]byte{
	tcell.KeyBackspace:  VKBack,
	tcell.KeyBackspace2: VKBack,
	tcell.KeyTab:        VKTab,
	tcell.KeyBacktab:    VKTab,
	tcell.KeyEnter:      VKReturn,
	tcell.KeyEscape:     VKEscape,
	tcell.KeyPgUp:       VKPrior,
	tcell.KeyPgDn:       VKNext,
	tcell.KeyEnd:        VKEnd,
	tcell.KeyHome:       VKHome,
	tcell.KeyLeft:       VKLeft,
	tcell.KeyUp:         VKUp,
	tcell.KeyRight:      VKRight,
	tcell.KeyDown:       VKDown,
	tcell.KeyInsert:     VKInsert,
	tcell.KeyDelete:     VKDelete,
}

var vkToTcell = map[byte]tcell.Key{
	VKBack:   tcell.KeyBackspace2,
	VKTab:    tcell.KeyTab,
	VKReturn: tcell.KeyEnter,
	VKEscape: tcell.KeyEscape,
	VKPrior:  tcell.KeyPgUp,
	VKNext:   tcell.KeyPgDn,
	VKEnd:    tcell.KeyEnd,
	VKHome:   tcell.KeyHome,
	VKLeft:   tcell.KeyLeft,
	VKUp:     tcell.KeyUp,
	VKRight:  tcell.KeyRight,
	VKDown:   tcell.KeyDown,
	VKInsert: tcell.KeyInsert,
	VKDelete: tcell.KeyDelete,
}

var runeToVK = map[rune]byte{
	' ':  VKSpace,
	';':  VKOEM1,
	'=':  VKOEMPlus,
	',':  VKOEMComma,
	'-':  VKOEMMinus,
	'.':  VKOEMDot,
	'/':  VKOEM2,
	'`':  VKOEM3,
	'[':  VKOEM4,
	'\\': VKOEM5,
	']':  VKOEM6,
	'\'': VKOEM7,
}

// shifted punctuation maps to the unshifted key plus Shift.
var shiftedRunes = map[rune]rune{
	':': ';', '+': '=', '<': ',', '_': '-', '>': '.', '?': '/',
	'~': '`', '{': '[', '|': '\\', '}': ']', '"': '\'',
}

// ModMask returns the tcell modifier mask of the chord.
func (k KeyCombo) ModMask() tcell.ModMask {
	var m tcell.ModMask
	if k.Ctrl {
		m |= tcell.ModCtrl
	}
	if k.Alt {
		m |= tcell.ModAlt
	}
	if k.Shift {
		m |= tcell.ModShift
	}
	return m
}

// FromEvent converts a terminal key event into a chord. The second result is
// false for keys with no virtual-key equivalent.
func FromEvent(ev *tcell.EventKey) (KeyCombo, bool) {
	mod := ev.Modifiers()
	k := KeyCombo{
		Ctrl:  mod&tcell.ModCtrl != 0,
		Alt:   mod&tcell.ModAlt != 0,
		Shift: mod&tcell.ModShift != 0,
	}
	key := ev.Key()
	if key == tcell.KeyBacktab {
		k.Shift = true
	}
	if vk, ok := tcellToVK[key]; ok {
		k.Key = vk
		return k, true
	}
	switch {
	case key >= tcell.KeyF1 && key <= tcell.KeyF24:
		k.Key = VKF1 + byte(key-tcell.KeyF1)
		return k, true
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		k.Ctrl = true
		k.Key = VKA + byte(key-tcell.KeyCtrlA)
		return k, true
	case key != tcell.KeyRune:
		return KeyCombo{}, false
	}

	r := ev.Rune()
	if base, ok := shiftedRunes[r]; ok {
		k.Shift = true
		r = base
	}
	switch {
	case r >= 'A' && r <= 'Z':
		k.Shift = true
		k.Key = byte(r)
	case r >= 'a' && r <= 'z':
		k.Key = Letter(r)
	case r >= '0' && r <= '9':
		k.Key = byte(r)
	default:
		vk, ok := runeToVK[r]
		if !ok {
			return KeyCombo{}, false
		}
		k.Key = vk
	}
	return k, true
}

// Matches reports whether ev is this chord.
func (k KeyCombo) Matches(ev *tcell.EventKey) bool {
	if k.IsNull() {
		return false
	}
	got, ok := FromEvent(ev)
	return ok && got == k
}

// Event builds the terminal event for the chord, or nil when the key has no
// terminal equivalent.
func (k KeyCombo) Event() *tcell.EventKey {
	if k.IsNull() {
		return nil
	}
	mod := k.ModMask()
	if tk, ok := vkToTcell[k.Key]; ok {
		return tcell.NewEventKey(tk, 0, mod)
	}
	switch {
	case k.Key >= VKF1 && k.Key <= VKF1+23:
		return tcell.NewEventKey(tcell.KeyF1+tcell.Key(k.Key-VKF1), 0, mod)
	case k.Key >= VKA && k.Key <= VKZ:
		return tcell.NewEventKey(tcell.KeyRune, rune(k.Key-VKA+'a'), mod)
	case k.Key >= VK0 && k.Key <= VK9:
		return tcell.NewEventKey(tcell.KeyRune, rune(k.Key), mod)
	}
	for r, vk := range runeToVK {
		if vk == k.Key {
			return tcell.NewEventKey(tcell.KeyRune, r, mod)
		}
	}
	return nil
}
