package shortcut

import (
	"github.com/kobzarvs/nppcfg/internal/keys"
)

// CommandShortcut binds a menu command id to a shortcut.
type CommandShortcut struct {
	keys.Shortcut
	ID int
}

// ScintillaKeyMap is an editor-engine command with an ordered list of key
// chords. Index 0 is the primary chord.
type ScintillaKeyMap struct {
	Name      string
	ScintID   int
	MenuCmdID int
	Combos    []keys.KeyCombo
	// Duplicate marks a default binding whose primary chord repeats an
	// earlier entry's primary.
	Duplicate bool
}

// ScintKey is the identity of a ScintillaKeyMap.
type ScintKey struct {
	ScintID   int
	MenuCmdID int
}

// Key returns the identity used to match override records.
func (m *ScintillaKeyMap) Key() ScintKey {
	return ScintKey{ScintID: m.ScintID, MenuCmdID: m.MenuCmdID}
}

// Primary returns the chord at index 0, or a null chord.
func (m *ScintillaKeyMap) Primary() keys.KeyCombo {
	if len(m.Combos) == 0 {
		return keys.KeyCombo{}
	}
	return m.Combos[0]
}

// SetPrimary replaces the chord at index 0.
func (m *ScintillaKeyMap) SetPrimary(k keys.KeyCombo) {
	if len(m.Combos) == 0 {
		m.Combos = []keys.KeyCombo{k}
		return
	}
	m.Combos[0] = k
}

// AddCombo appends an alternate unless the exact chord is already on the
// list. Loading from tables and documents appends without this check.
func (m *ScintillaKeyMap) AddCombo(k keys.KeyCombo) {
	for _, c := range m.Combos {
		if c == k {
			return
		}
	}
	m.Combos = append(m.Combos, k)
}

// ClearAlternates drops every chord after the primary and the duplicate mark.
func (m *ScintillaKeyMap) ClearAlternates() {
	if len(m.Combos) > 1 {
		m.Combos = m.Combos[:1]
	}
	m.Duplicate = false
}

func (m ScintillaKeyMap) clone() ScintillaKeyMap {
	m.Combos = append([]keys.KeyCombo(nil), m.Combos...)
	return m
}

// Macro step types.
const (
	MacroTypeMin = 0
	MacroTypeMax = 3
)

// MacroStep is one recorded editor message.
type MacroStep struct {
	Type    int
	Message int
	WParam  int
	LParam  int
	SParam  string
}

// Valid reports whether the step has a known type.
func (s MacroStep) Valid() bool {
	return s.Type >= MacroTypeMin && s.Type <= MacroTypeMax
}

// Macro is a recorded sequence of steps.
type Macro []MacroStep

// MacroShortcut is a recorded macro bound to a shortcut.
type MacroShortcut struct {
	keys.Shortcut
	ID    int
	Steps Macro
}

// UserCommand is a user-defined run command bound to a shortcut.
type UserCommand struct {
	keys.Shortcut
	ID      int
	Command string
}

// PluginCmdShortcut is a plugin-exported command bound to a shortcut.
type PluginCmdShortcut struct {
	keys.Shortcut
	ID         int
	ModuleName string
	InternalID int
}

// PluginCommandDef describes a command a plugin exports, with its default
// shortcut.
type PluginCommandDef struct {
	Module     string
	InternalID int
	Shortcut   keys.Shortcut
}

// PluginKey is the identity of a plugin command. Module is lowercased.
type PluginKey struct {
	Module     string
	InternalID int
}
