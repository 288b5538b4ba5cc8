package shortcut

import (
	"github.com/beevik/etree"

	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/keys"
	"github.com/kobzarvs/nppcfg/internal/logger"
)

// Section and record names of the shortcuts document.
const (
	sectionInternal = "InternalCommands"
	sectionMacros   = "Macros"
	sectionUserCmds = "UserDefinedCommands"
	sectionPlugins  = "PluginCommands"
	sectionScint    = "ScintillaKeys"
)

// readShortcut reads name, modifiers and key from a record. Modifiers default
// to false; the key is required.
func readShortcut(node *etree.Element) (keys.Shortcut, bool) {
	key, ok := docstore.AttrInt(node, "Key")
	if !ok {
		return keys.Shortcut{}, false
	}
	name, _ := docstore.Attr(node, "name")
	ctrl, _ := docstore.AttrBool(node, "Ctrl")
	alt, _ := docstore.AttrBool(node, "Alt")
	shift, _ := docstore.AttrBool(node, "Shift")
	return keys.NewShortcut(name, ctrl, alt, shift, byte(key)), true
}

// readNextKey reads an alternate chord. All four attributes are required.
func readNextKey(node *etree.Element) (keys.KeyCombo, bool) {
	ctrl, ok := docstore.AttrBool(node, "Ctrl")
	if !ok {
		return keys.KeyCombo{}, false
	}
	alt, ok := docstore.AttrBool(node, "Alt")
	if !ok {
		return keys.KeyCombo{}, false
	}
	shift, ok := docstore.AttrBool(node, "Shift")
	if !ok {
		return keys.KeyCombo{}, false
	}
	key, ok := docstore.AttrInt(node, "Key")
	if !ok {
		return keys.KeyCombo{}, false
	}
	return keys.KeyCombo{Ctrl: ctrl, Alt: alt, Shift: shift, Key: byte(key)}, true
}

// ApplyUserOverrides replaces default bindings with the records found under
// root. Menu and editor records with no matching entry are dropped; plugin
// records wait for their command to be registered. Malformed records are
// skipped without affecting their siblings.
func (e *Engine) ApplyUserOverrides(root *etree.Element) {
	if root == nil {
		return
	}
	e.applyMenuOverrides(docstore.FirstChild(root, sectionInternal))
	e.applyPluginOverrides(docstore.FirstChild(root, sectionPlugins))
	e.applyScintillaOverrides(docstore.FirstChild(root, sectionScint))
}

func (e *Engine) applyMenuOverrides(section *etree.Element) {
	for _, node := range docstore.Children(section, "Shortcut") {
		id, ok := docstore.AttrInt(node, "id")
		if !ok {
			logger.Debug("shortcut override without id skipped")
			continue
		}
		i, ok := e.byID[id]
		if !ok {
			logger.Debug("shortcut override dropped", "id", id)
			continue
		}
		sc, ok := readShortcut(node)
		if !ok {
			logger.Debug("shortcut override without key skipped", "id", id)
			continue
		}
		if _, named := docstore.Attr(node, "name"); !named {
			sc.Name = e.shortcuts[i].Name
		}
		e.shortcuts[i].Shortcut = sc
		e.modified.add(i)
	}
}

func (e *Engine) applyPluginOverrides(section *etree.Element) {
	for _, node := range docstore.Children(section, "PluginCommand") {
		module, ok := docstore.Attr(node, "moduleName")
		if !ok {
			continue
		}
		internalID, ok := docstore.AttrInt(node, "internalID")
		if !ok {
			continue
		}
		if _, ok := readShortcut(node); !ok {
			continue
		}
		key := pluginKey(module, internalID)
		i, ok := e.byPlugin[key]
		if !ok {
			e.keepPending(key, node)
			continue
		}
		e.applyPluginRecord(i, node)
	}
}

// keepPending holds a record for a plugin command that is not registered.
// A later record for the same command replaces an earlier one.
func (e *Engine) keepPending(key PluginKey, node *etree.Element) {
	logger.Debug("plugin override kept for unregistered command", "module", key.Module, "internalID", key.InternalID)
	for j := range e.pendingPlugins {
		if e.pendingPlugins[j].key == key {
			e.pendingPlugins[j].node = node.Copy()
			return
		}
	}
	e.pendingPlugins = append(e.pendingPlugins, pendingPlugin{key: key, node: node.Copy()})
}

func (e *Engine) applyPluginRecord(i int, node *etree.Element) {
	sc, ok := readShortcut(node)
	if !ok {
		return
	}
	if sc.Name == "" {
		sc.Name = e.plugins[i].Name
	}
	e.plugins[i].Shortcut = sc
	e.pluginModified.add(i)
}

func (e *Engine) applyScintillaOverrides(section *etree.Element) {
	for _, node := range docstore.Children(section, "ScintKey") {
		scintID, ok := docstore.AttrInt(node, "ScintID")
		if !ok {
			continue
		}
		menuID, ok := docstore.AttrInt(node, "menuCmdID")
		if !ok {
			continue
		}
		i, ok := e.byScint[ScintKey{ScintID: scintID, MenuCmdID: menuID}]
		if !ok {
			logger.Debug("editor key override dropped", "scintID", scintID, "menuCmdID", menuID)
			continue
		}
		sc, ok := readShortcut(node)
		if !ok {
			continue
		}

		m := &e.scintilla[i]
		m.ClearAlternates()
		m.SetPrimary(sc.KeyCombo)
		for _, next := range docstore.Children(node, "NextKey") {
			combo, ok := readNextKey(next)
			if !ok {
				logger.Debug("incomplete NextKey skipped", "scintID", scintID)
				continue
			}
			m.Combos = append(m.Combos, combo)
		}
		e.scintModified.add(i)
	}
}

// LoadMacros replaces the macro table with the Macros section under root.
// Loading stops with ErrAtCapacity when the table is full.
func (e *Engine) LoadMacros(root *etree.Element) error {
	e.macros = nil
	for _, node := range docstore.Children(docstore.FirstChild(root, sectionMacros), "Macro") {
		sc, ok := readShortcut(node)
		if !ok {
			continue
		}
		if _, err := e.AddMacro(sc, readActions(node)); err != nil {
			logger.Warn("macro table full", "limit", e.limits.Macros)
			return err
		}
	}
	return nil
}

func readActions(node *etree.Element) Macro {
	var steps Macro
	for _, a := range docstore.Children(node, "Action") {
		typ, ok := docstore.AttrInt(a, "type")
		if !ok {
			continue
		}
		step := MacroStep{Type: typ}
		step.Message, _ = docstore.AttrInt(a, "message")
		step.WParam, _ = docstore.AttrInt(a, "wParam")
		step.LParam, _ = docstore.AttrInt(a, "lParam")
		step.SParam, _ = docstore.Attr(a, "sParam")
		if step.Valid() {
			steps = append(steps, step)
		}
	}
	return steps
}

// LoadUserCommands replaces the user command table with the
// UserDefinedCommands section under root. A command with no text is skipped.
func (e *Engine) LoadUserCommands(root *etree.Element) error {
	e.userCmds = nil
	for _, node := range docstore.Children(docstore.FirstChild(root, sectionUserCmds), "Command") {
		sc, ok := readShortcut(node)
		if !ok {
			continue
		}
		text := docstore.Text(node)
		if text == "" {
			continue
		}
		if _, err := e.AddUserCommand(sc, text); err != nil {
			logger.Warn("user command table full", "limit", e.limits.UserCommands)
			return err
		}
	}
	return nil
}
