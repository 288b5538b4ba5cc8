// Package shortcut holds the key-binding tables: menu commands, editor-engine
// commands with alternate chords, macros, user commands and plugin commands.
// Defaults come from static tables; a user document overrides them.
package shortcut

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/kobzarvs/nppcfg/internal/keys"
	"github.com/kobzarvs/nppcfg/internal/logger"
)

// indexList records table indices in first-touched order, without repeats.
type indexList []int

func (l *indexList) add(i int) {
	for _, v := range *l {
		if v == i {
			return
		}
	}
	*l = append(*l, i)
}

func (l *indexList) remove(i int) {
	out := (*l)[:0]
	for _, v := range *l {
		switch {
		case v == i:
		case v > i:
			out = append(out, v-1)
		default:
			out = append(out, v)
		}
	}
	*l = out
}

// Engine owns every shortcut table. It is not safe for concurrent use.
type Engine struct {
	menuDefs  []MenuKeyDef
	scintDefs []ScintillaKeyDef
	limits    Limits

	shortcuts []CommandShortcut
	scintilla []ScintillaKeyMap
	macros    []MacroShortcut
	userCmds  []UserCommand
	plugins   []PluginCmdShortcut

	byID     map[int]int
	byScint  map[ScintKey]int
	byPlugin map[PluginKey]int

	modified       indexList
	scintModified  indexList
	pluginModified indexList

	// plugin override records for commands not registered yet, in
	// document order
	pendingPlugins []pendingPlugin
}

type pendingPlugin struct {
	key  PluginKey
	node *etree.Element
}

// NewEngine returns an engine over the given static tables. Nil tables select
// the built-in ones.
func NewEngine(menu []MenuKeyDef, scint []ScintillaKeyDef, limits Limits) *Engine {
	if menu == nil {
		menu = DefaultMenuKeys
	}
	if scint == nil {
		scint = DefaultScintillaKeys
	}
	return &Engine{
		menuDefs:  menu,
		scintDefs: scint,
		limits:    limits,
		byID:      map[int]int{},
		byScint:   map[ScintKey]int{},
		byPlugin:  map[PluginKey]int{},
	}
}

// ValidateScintillaDefs checks that rows sharing a command id are adjacent.
func ValidateScintillaDefs(defs []ScintillaKeyDef) error {
	start := map[int]int{}
	prev := -1
	for i, d := range defs {
		if i > 0 && d.CommandID == prev {
			continue
		}
		if first, seen := start[d.CommandID]; seen {
			return &GroupingError{Index: i, CommandID: d.CommandID, FirstRun: first}
		}
		start[d.CommandID] = i
		prev = d.CommandID
	}
	return nil
}

// InitializeDefaults resets every table and seeds the menu and editor tables
// from the static definitions, in table order. On a grouping error the tables
// stay empty.
func (e *Engine) InitializeDefaults() error {
	e.reset()
	if err := ValidateScintillaDefs(e.scintDefs); err != nil {
		return err
	}

	for _, d := range e.menuDefs {
		sc := CommandShortcut{
			Shortcut: keys.NewShortcut(d.Name, d.Ctrl, d.Alt, d.Shift, d.Key),
			ID:       d.CommandID,
		}
		if _, dup := e.byID[d.CommandID]; !dup {
			e.byID[d.CommandID] = len(e.shortcuts)
		}
		e.shortcuts = append(e.shortcuts, sc)
	}

	primaries := map[keys.KeyCombo]bool{}
	prev := -1
	for i, d := range e.scintDefs {
		combo := keys.KeyCombo{Ctrl: d.Ctrl, Alt: d.Alt, Shift: d.Shift, Key: d.Key}
		if i > 0 && d.CommandID == prev {
			last := &e.scintilla[len(e.scintilla)-1]
			last.Combos = append(last.Combos, combo)
			continue
		}
		prev = d.CommandID
		m := ScintillaKeyMap{
			Name:      d.Name,
			ScintID:   d.CommandID,
			MenuCmdID: d.RedirectID,
			Combos:    []keys.KeyCombo{combo},
		}
		if !combo.IsNull() {
			m.Duplicate = primaries[combo]
			primaries[combo] = true
		}
		e.byScint[m.Key()] = len(e.scintilla)
		e.scintilla = append(e.scintilla, m)
	}

	logger.Debug("shortcut defaults initialized", "menu", len(e.shortcuts), "editor", len(e.scintilla))
	return nil
}

func (e *Engine) reset() {
	e.shortcuts = nil
	e.scintilla = nil
	e.macros = nil
	e.userCmds = nil
	e.plugins = nil
	e.byID = map[int]int{}
	e.byScint = map[ScintKey]int{}
	e.byPlugin = map[PluginKey]int{}
	e.modified = nil
	e.scintModified = nil
	e.pluginModified = nil
	e.pendingPlugins = nil
}

func pluginKey(module string, internalID int) PluginKey {
	return PluginKey{Module: strings.ToLower(module), InternalID: internalID}
}

// RegisterPluginCommand adds a plugin-exported command and returns its index.
// Registering the same (module, internal id) again returns the existing index.
// A pending override for the command is applied at once.
func (e *Engine) RegisterPluginCommand(module string, internalID int, sc keys.Shortcut) (int, error) {
	key := pluginKey(module, internalID)
	if i, ok := e.byPlugin[key]; ok {
		return i, nil
	}
	if len(e.plugins) >= e.limits.PluginCommands {
		return -1, ErrAtCapacity
	}
	i := len(e.plugins)
	e.plugins = append(e.plugins, PluginCmdShortcut{
		Shortcut:   sc,
		ID:         PluginCommandBase + i,
		ModuleName: module,
		InternalID: internalID,
	})
	e.byPlugin[key] = i

	for j, p := range e.pendingPlugins {
		if p.key != key {
			continue
		}
		e.pendingPlugins = append(e.pendingPlugins[:j], e.pendingPlugins[j+1:]...)
		e.applyPluginRecord(i, p.node)
		break
	}
	return i, nil
}

// PendingPluginOverrides reports how many plugin override records wait for
// their command to be registered. They are written back unchanged.
func (e *Engine) PendingPluginOverrides() int {
	return len(e.pendingPlugins)
}

// SetShortcut rebinds the menu command id.
func (e *Engine) SetShortcut(id int, sc keys.Shortcut) error {
	i, ok := e.byID[id]
	if !ok {
		return fmt.Errorf("command %d: %w", id, ErrNoSuchEntry)
	}
	if sc.Name == "" {
		sc.Name = e.shortcuts[i].Name
	}
	e.shortcuts[i].Shortcut = sc
	e.modified.add(i)
	return nil
}

// SetScintillaCombos replaces every chord of editor command i. The first
// chord becomes the primary.
func (e *Engine) SetScintillaCombos(i int, combos []keys.KeyCombo) error {
	if i < 0 || i >= len(e.scintilla) {
		return fmt.Errorf("editor command index %d: %w", i, ErrNoSuchEntry)
	}
	m := &e.scintilla[i]
	m.Combos = nil
	m.Duplicate = false
	for _, c := range combos {
		m.AddCombo(c)
	}
	if len(m.Combos) == 0 {
		m.Combos = []keys.KeyCombo{{}}
	}
	e.scintModified.add(i)
	return nil
}

// SetPluginShortcut rebinds plugin command i and marks it for writing.
func (e *Engine) SetPluginShortcut(i int, sc keys.Shortcut) error {
	if i < 0 || i >= len(e.plugins) {
		return fmt.Errorf("plugin command index %d: %w", i, ErrNoSuchEntry)
	}
	e.plugins[i].Shortcut = sc
	e.pluginModified.add(i)
	return nil
}

// AddMacro appends a macro. Steps with an out-of-range type are dropped.
func (e *Engine) AddMacro(sc keys.Shortcut, steps Macro) (int, error) {
	if len(e.macros) >= e.limits.Macros {
		return -1, ErrAtCapacity
	}
	var valid Macro
	for _, s := range steps {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	i := len(e.macros)
	e.macros = append(e.macros, MacroShortcut{Shortcut: sc, ID: MacroBase + i, Steps: valid})
	return i, nil
}

// AddUserCommand appends a run command and returns its index.
func (e *Engine) AddUserCommand(sc keys.Shortcut, command string) (int, error) {
	if len(e.userCmds) >= e.limits.UserCommands {
		return -1, ErrAtCapacity
	}
	i := len(e.userCmds)
	e.userCmds = append(e.userCmds, UserCommand{Shortcut: sc, ID: UserCommandBase + i, Command: command})
	return i, nil
}

// RemoveMacro deletes macro i. Later macros move down and get new ids.
func (e *Engine) RemoveMacro(i int) error {
	if i < 0 || i >= len(e.macros) {
		return fmt.Errorf("macro index %d: %w", i, ErrNoSuchEntry)
	}
	e.macros = append(e.macros[:i], e.macros[i+1:]...)
	for j := i; j < len(e.macros); j++ {
		e.macros[j].ID = MacroBase + j
	}
	return nil
}

// RemoveUserCommand deletes run command i. Later commands move down one ID.
func (e *Engine) RemoveUserCommand(i int) error {
	if i < 0 || i >= len(e.userCmds) {
		return fmt.Errorf("user command index %d: %w", i, ErrNoSuchEntry)
	}
	e.userCmds = append(e.userCmds[:i], e.userCmds[i+1:]...)
	for j := i; j < len(e.userCmds); j++ {
		e.userCmds[j].ID = UserCommandBase + j
	}
	return nil
}

// Shortcuts returns a copy of the menu table.
func (e *Engine) Shortcuts() []CommandShortcut {
	return append([]CommandShortcut(nil), e.shortcuts...)
}

// ScintillaKeys returns a deep copy of the editor-command table.
func (e *Engine) ScintillaKeys() []ScintillaKeyMap {
	out := make([]ScintillaKeyMap, len(e.scintilla))
	for i, m := range e.scintilla {
		out[i] = m.clone()
	}
	return out
}

// Macros returns a copy of the macro table.
func (e *Engine) Macros() []MacroShortcut {
	return append([]MacroShortcut(nil), e.macros...)
}

// UserCommands returns a copy of the run command table.
func (e *Engine) UserCommands() []UserCommand {
	return append([]UserCommand(nil), e.userCmds...)
}

// PluginCommands returns a copy of the plugin commands in registration order.
func (e *Engine) PluginCommands() []PluginCmdShortcut {
	return append([]PluginCmdShortcut(nil), e.plugins...)
}

// Modified returns the indices of customized menu shortcuts.
func (e *Engine) Modified() []int {
	return append([]int(nil), e.modified...)
}

// ScintillaModified returns the indices of customized editor keys.
func (e *Engine) ScintillaModified() []int {
	return append([]int(nil), e.scintModified...)
}

// PluginModified returns the indices of customized plugin commands.
func (e *Engine) PluginModified() []int {
	return append([]int(nil), e.pluginModified...)
}

// ShortcutByID returns the menu shortcut bound to command id.
func (e *Engine) ShortcutByID(id int) (CommandShortcut, bool) {
	i, ok := e.byID[id]
	if !ok {
		return CommandShortcut{}, false
	}
	return e.shortcuts[i], true
}

// ScintillaIndex returns the table index of an editor command identity.
func (e *Engine) ScintillaIndex(k ScintKey) (int, bool) {
	i, ok := e.byScint[k]
	return i, ok
}

// PluginIndex returns the table index of a plugin command. The module name
// compares case-insensitively.
func (e *Engine) PluginIndex(module string, internalID int) (int, bool) {
	i, ok := e.byPlugin[pluginKey(module, internalID)]
	return i, ok
}
