package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobzarvs/nppcfg/internal/keys"
	"github.com/kobzarvs/nppcfg/internal/store"
)

func rowText(cells []tcell.SimCell, w, y int) string {
	var out []rune
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			out = append(out, ' ')
			continue
		}
		out = append(out, c.Runes[0])
	}
	return string(out)
}

func TestKeyViewLooksUpBindings(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Run(func(s *store.Store) error {
		v := NewKeyView(s)
		ctrlO := keys.KeyCombo{Ctrl: true, Key: 'O'}
		assert.False(t, v.HandleKey(ctrlO.Event()))

		combo, found := v.Combo()
		assert.Equal(t, ctrlO, combo)
		require.Len(t, found, 2)
		assert.Equal(t, "Save", found[0].Name)
		assert.Equal(t, "Open", found[1].Name)

		ctrlX := keys.KeyCombo{Ctrl: true, Key: 'X'}
		v.HandleKey(ctrlX.Event())
		_, found = v.Combo()
		require.Len(t, found, 1)
		assert.Equal(t, "editor", found[0].Table)
		assert.Equal(t, 2177, found[0].ID)

		v.HandleKey(keys.KeyCombo{Key: keys.VKF1}.Event())
		assert.Contains(t, v.Lines(), "F1: not bound")
		return nil
	}))
}

func TestKeyViewQuitsOnDoubleEscape(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Run(func(s *store.Store) error {
		v := NewKeyView(s)
		esc := tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
		assert.False(t, v.HandleKey(esc))
		assert.False(t, v.HandleKey(keys.KeyCombo{Ctrl: true, Key: 'O'}.Event()))
		assert.False(t, v.HandleKey(esc), "escape count restarts after another key")
		assert.True(t, v.HandleKey(esc))
		return nil
	}))
}

func TestKeyViewUsesDefaultStyle(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Run(func(s *store.Store) error {
		def := s.Stylers().Globals.Get(s.Stylers().Globals.IndexByName("Default Style"))
		require.NotNil(t, def)
		v := NewKeyView(s)
		assert.Equal(t, def.TcellStyle(), v.style)
		return nil
	}))
}

func TestKeysRendersLookups(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Run(func(s *store.Store) error {
		screen := tcell.NewSimulationScreen("UTF-8")
		if err := screen.Init(); err != nil {
			t.Fatalf("init screen: %v", err)
		}
		defer screen.Fini()
		screen.SetSize(40, 6)

		done := make(chan struct{})
		go func() {
			Keys(screen, s)
			close(done)
		}()

		screen.InjectKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)
		screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
		screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
		<-done

		cells, w, _ := screen.GetContents()
		assert.Contains(t, rowText(cells, w, 0), "press a key chord")
		assert.Contains(t, rowText(cells, w, 2), "Esc:")
		return nil
	}))
}
