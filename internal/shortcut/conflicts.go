package shortcut

import (
	"sort"

	"github.com/kobzarvs/nppcfg/internal/keys"
)

// Binding names one command bound to a chord.
type Binding struct {
	Table string
	ID    int
	Name  string
}

// Conflict is a chord bound to more than one command.
type Conflict struct {
	Combo    keys.KeyCombo
	Bindings []Binding
}

// eachBinding calls fn for every non-null chord of every table, in menu,
// macro, user, plugin, editor order. Editor entries marked Duplicate are
// skipped, and an editor entry repeating its own chord is reported once.
func (e *Engine) eachBinding(fn func(keys.KeyCombo, Binding)) {
	add := func(k keys.KeyCombo, b Binding) {
		if !k.IsNull() {
			fn(k, b)
		}
	}
	for _, s := range e.shortcuts {
		add(s.KeyCombo, Binding{Table: "menu", ID: s.ID, Name: s.Name})
	}
	for _, m := range e.macros {
		add(m.KeyCombo, Binding{Table: "macro", ID: m.ID, Name: m.Name})
	}
	for _, u := range e.userCmds {
		add(u.KeyCombo, Binding{Table: "user", ID: u.ID, Name: u.Name})
	}
	for _, p := range e.plugins {
		add(p.KeyCombo, Binding{Table: "plugin", ID: p.ID, Name: p.Name})
	}
	for _, m := range e.scintilla {
		if m.Duplicate {
			continue
		}
		seen := map[keys.KeyCombo]bool{}
		for _, c := range m.Combos {
			if seen[c] {
				continue
			}
			seen[c] = true
			add(c, Binding{Table: "editor", ID: m.ScintID, Name: m.Name})
		}
	}
}

// Bindings returns every command bound to k.
func (e *Engine) Bindings(k keys.KeyCombo) []Binding {
	var out []Binding
	e.eachBinding(func(c keys.KeyCombo, b Binding) {
		if c == k {
			out = append(out, b)
		}
	})
	return out
}

// FindConflicts reports every non-null chord bound to two or more commands
// across all tables. Results are ordered by chord text.
func (e *Engine) FindConflicts() []Conflict {
	bound := map[keys.KeyCombo][]Binding{}
	e.eachBinding(func(k keys.KeyCombo, b Binding) {
		bound[k] = append(bound[k], b)
	})

	var out []Conflict
	for k, b := range bound {
		if len(b) > 1 {
			out = append(out, Conflict{Combo: k, Bindings: b})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Combo.String() < out[j].Combo.String()
	})
	return out
}
