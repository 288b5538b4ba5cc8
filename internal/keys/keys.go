// Package keys defines key chords as they are stored in settings files: a
// Windows virtual-key code plus Ctrl/Alt/Shift flags.
package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// Virtual-key codes used by the built-in tables.
const (
	VKNull     byte = 0x00
	VKBack     byte = 0x08
	VKTab      byte = 0x09
	VKReturn   byte = 0x0D
	VKEscape   byte = 0x1B
	VKSpace    byte = 0x20
	VKPrior    byte = 0x21
	VKNext     byte = 0x22
	VKEnd      byte = 0x23
	VKHome     byte = 0x24
	VKLeft     byte = 0x25
	VKUp       byte = 0x26
	VKRight    byte = 0x27
	VKDown     byte = 0x28
	VKInsert   byte = 0x2D
	VKDelete   byte = 0x2E
	VK0        byte = 0x30
	VK9        byte = 0x39
	VKA        byte = 0x41
	VKZ        byte = 0x5A
	VKNumpad0  byte = 0x60
	VKNumpad9  byte = 0x69
	VKMultiply byte = 0x6A
	VKAdd      byte = 0x6B
	VKSubtract byte = 0x6D
	VKDecimal  byte = 0x6E
	VKDivide   byte = 0x6F
	VKF1       byte = 0x70
	VKF24      byte = 0x87
	VKOEM1     byte = 0xBA // ;
	VKOEMPlus  byte = 0xBB
	VKOEMComma byte = 0xBC
	VKOEMMinus byte = 0xBD
	VKOEMDot   byte = 0xBE
	VKOEM2     byte = 0xBF // /
	VKOEM3     byte = 0xC0 // `
	VKOEM4     byte = 0xDB // [
	VKOEM5     byte = 0xDC // \
	VKOEM6     byte = 0xDD // ]
	VKOEM7     byte = 0xDE // '
)

// Letter returns the virtual-key code of an ASCII letter.
func Letter(r rune) byte {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return VKNull
	}
	return byte(r)
}

// F returns the code of function key Fn (1..24).
func F(n int) byte {
	if n < 1 || n > 24 {
		return VKNull
	}
	return VKF1 + byte(n-1)
}

var keyNames = map[byte]string{
	VKBack:     "Backspace",
	VKTab:      "Tab",
	VKReturn:   "Enter",
	VKEscape:   "Esc",
	VKSpace:    "Space",
	VKPrior:    "Page Up",
	VKNext:     "Page Down",
	VKEnd:      "End",
	VKHome:     "Home",
	VKLeft:     "Left",
	VKUp:       "Up",
	VKRight:    "Right",
	VKDown:     "Down",
	VKInsert:   "INS",
	VKDelete:   "DEL",
	VKMultiply: "Num *",
	VKAdd:      "Num +",
	VKSubtract: "Num -",
	VKDecimal:  "Num .",
	VKDivide:   "Num /",
	VKOEM1:     ";",
	VKOEMPlus:  "=",
	VKOEMComma: ",",
	VKOEMMinus: "-",
	VKOEMDot:   ".",
	VKOEM2:     "/",
	VKOEM3:     "~",
	VKOEM4:     "[",
	VKOEM5:     "\\",
	VKOEM6:     "]",
	VKOEM7:     "'",
}

// KeyName returns the display name of a virtual-key code.
func KeyName(k byte) string {
	switch {
	case k == VKNull:
		return ""
	case k >= VK0 && k <= VK9, k >= VKA && k <= VKZ:
		return string(rune(k))
	case k >= VKNumpad0 && k <= VKNumpad9:
		return "Num " + string(rune('0'+k-VKNumpad0))
	case k >= VKF1 && k <= VKF24:
		return "F" + strconv.Itoa(int(k-VKF1)+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", k)
}

func keyFromName(name string) (byte, bool) {
	if len(name) == 1 {
		r := rune(name[0])
		switch {
		case r >= '0' && r <= '9':
			return byte(r), true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			return Letter(r), true
		}
	}
	if len(name) > 1 && (name[0] == 'F' || name[0] == 'f') {
		if n, err := strconv.Atoi(name[1:]); err == nil && F(n) != VKNull {
			return F(n), true
		}
	}
	if d, ok := strings.CutPrefix(name, "Num "); ok && len(d) == 1 && d[0] >= '0' && d[0] <= '9' {
		return VKNumpad0 + d[0] - '0', true
	}
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	if strings.HasPrefix(name, "0x") {
		if v, err := strconv.ParseUint(name[2:], 16, 8); err == nil {
			return byte(v), true
		}
	}
	return VKNull, false
}

// KeyCombo is one key chord. A zero Key means no physical shortcut is
// assigned.
type KeyCombo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Key   byte
}

// IsNull reports whether no key is assigned.
func (k KeyCombo) IsNull() bool {
	return k.Key == VKNull
}

// String renders the chord as "Ctrl+Alt+Shift+Key". A null combo renders as "".
func (k KeyCombo) String() string {
	if k.IsNull() {
		return ""
	}
	var parts []string
	if k.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if k.Alt {
		parts = append(parts, "Alt")
	}
	if k.Shift {
		parts = append(parts, "Shift")
	}
	parts = append(parts, KeyName(k.Key))
	return strings.Join(parts, "+")
}

// Parse reads a chord in the String format. Modifier names are case-insensitive.
func Parse(s string) (KeyCombo, error) {
	var k KeyCombo
	s = strings.TrimSpace(s)
	if s == "" {
		return k, nil
	}
	parts := strings.Split(s, "+")
	// "Ctrl++" style: a trailing empty part means the key itself is "+".
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = append(parts[:len(parts)-2], "=")
	}
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl":
			k.Ctrl = true
		case "alt":
			k.Alt = true
		case "shift":
			k.Shift = true
		default:
			return KeyCombo{}, fmt.Errorf("unknown modifier %q in %q", p, s)
		}
	}
	key, ok := keyFromName(strings.TrimSpace(parts[len(parts)-1]))
	if !ok {
		return KeyCombo{}, fmt.Errorf("unknown key in %q", s)
	}
	k.Key = key
	return k, nil
}

// Shortcut is a key chord with an optional display name, used when no menu
// item supplies one.
type Shortcut struct {
	Name string
	KeyCombo
}

// NewShortcut builds a named shortcut from its parts.
func NewShortcut(name string, ctrl, alt, shift bool, key byte) Shortcut {
	return Shortcut{Name: name, KeyCombo: KeyCombo{Ctrl: ctrl, Alt: alt, Shift: shift, Key: key}}
}

// WithCombo returns a copy bound to a different chord.
func (s Shortcut) WithCombo(k KeyCombo) Shortcut {
	s.KeyCombo = k
	return s
}

// DisplayName returns the stored name, or fallback when it is empty.
func (s Shortcut) DisplayName(fallback string) string {
	if s.Name != "" {
		return s.Name
	}
	return fallback
}
