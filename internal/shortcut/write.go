package shortcut

import (
	"github.com/beevik/etree"

	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/keys"
)

func setCombo(node *etree.Element, k keys.KeyCombo) {
	docstore.SetAttrBool(node, "Ctrl", k.Ctrl)
	docstore.SetAttrBool(node, "Alt", k.Alt)
	docstore.SetAttrBool(node, "Shift", k.Shift)
	docstore.SetAttrInt(node, "Key", int(k.Key))
}

// Write replaces the shortcut sections under root. Only customized menu,
// plugin and editor entries are written; macros and user commands are
// written in full. Plugin records still waiting for registration are written
// back as read.
func (e *Engine) Write(root *etree.Element) {
	cmds := docstore.ReplaceSection(root, sectionInternal)
	for _, i := range e.modified {
		sc := e.shortcuts[i]
		node := docstore.AppendChild(cmds, "Shortcut")
		docstore.SetAttrInt(node, "id", sc.ID)
		setCombo(node, sc.KeyCombo)
	}

	macros := docstore.ReplaceSection(root, sectionMacros)
	for _, m := range e.macros {
		node := docstore.AppendChild(macros, "Macro")
		docstore.SetAttr(node, "name", m.Name)
		setCombo(node, m.KeyCombo)
		for _, s := range m.Steps {
			a := docstore.AppendChild(node, "Action")
			docstore.SetAttrInt(a, "type", s.Type)
			docstore.SetAttrInt(a, "message", s.Message)
			docstore.SetAttrInt(a, "wParam", s.WParam)
			docstore.SetAttrInt(a, "lParam", s.LParam)
			docstore.SetAttr(a, "sParam", s.SParam)
		}
	}

	users := docstore.ReplaceSection(root, sectionUserCmds)
	for _, u := range e.userCmds {
		node := docstore.AppendChild(users, "Command")
		docstore.SetAttr(node, "name", u.Name)
		setCombo(node, u.KeyCombo)
		docstore.SetText(node, u.Command)
	}

	plugins := docstore.ReplaceSection(root, sectionPlugins)
	for _, i := range e.pluginModified {
		p := e.plugins[i]
		node := docstore.AppendChild(plugins, "PluginCommand")
		docstore.SetAttr(node, "moduleName", p.ModuleName)
		docstore.SetAttrInt(node, "internalID", p.InternalID)
		setCombo(node, p.KeyCombo)
	}
	for _, p := range e.pendingPlugins {
		plugins.AddChild(p.node.Copy())
	}

	scint := docstore.ReplaceSection(root, sectionScint)
	for _, i := range e.scintModified {
		m := e.scintilla[i]
		node := docstore.AppendChild(scint, "ScintKey")
		docstore.SetAttrInt(node, "ScintID", m.ScintID)
		docstore.SetAttrInt(node, "menuCmdID", m.MenuCmdID)
		setCombo(node, m.Primary())
		for _, alt := range m.Combos[1:] {
			setCombo(docstore.AppendChild(node, "NextKey"), alt)
		}
	}
}
