package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobzarvs/nppcfg/internal/config"
	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/keys"
	"github.com/kobzarvs/nppcfg/internal/session"
	"github.com/kobzarvs/nppcfg/internal/shortcut"
	"github.com/kobzarvs/nppcfg/internal/style"
)

const langsModel = `<?xml version="1.0" encoding="UTF-8"?>
<NotepadPlus>
    <Languages>
        <Language name="c" ext="c h" commentLine="//">
            <Keywords name="instre1">if else</Keywords>
        </Language>
    </Languages>
</NotepadPlus>
`

const configModel = `<?xml version="1.0" encoding="UTF-8"?>
<NotepadPlus>
    <GUIConfigs>
        <GUIConfig name="RememberLastSession">yes</GUIConfig>
    </GUIConfigs>
</NotepadPlus>
`

const stylersModel = `<?xml version="1.0" encoding="UTF-8"?>
<NotepadPlus>
    <LexerStyles>
        <LexerType name="c" desc="C" ext="">
            <WordsStyle name="DEFAULT" styleID="11" fgColor="000000" bgColor="FFFFFF" fontName="" fontStyle="0" fontSize="" />
            <WordsStyle name="COMMENT" styleID="1" fgColor="008000" />
        </LexerType>
    </LexerStyles>
    <GlobalStyles>
        <WidgetStyle name="Global override" styleID="0" fgColor="FFFF80" />
        <WidgetStyle name="Default Style" styleID="32" fgColor="000000" fontName="Courier New" />
    </GlobalStyles>
</NotepadPlus>
`

const darkTheme = `<?xml version="1.0" encoding="UTF-8"?>
<NotepadPlus>
    <LexerStyles>
        <LexerType name="c" desc="C" ext="">
            <WordsStyle name="DEFAULT" styleID="11" fgColor="DDDDDD" bgColor="000000" />
        </LexerType>
    </LexerStyles>
    <GlobalStyles>
        <WidgetStyle name="Default Style" styleID="32" fgColor="DDDDDD" />
    </GlobalStyles>
</NotepadPlus>
`

const shortcutsModel = `<?xml version="1.0" encoding="UTF-8"?>
<NotepadPlus>
    <InternalCommands>
        <Shortcut id="100" Ctrl="no" Alt="yes" Shift="no" Key="83" />
        <Shortcut id="424242" Ctrl="yes" Alt="no" Shift="no" Key="81" />
    </InternalCommands>
    <Macros>
        <Macro name="Trim" Ctrl="no" Alt="no" Shift="no" Key="0">
            <Action type="0" message="2170" wParam="0" lParam="0" sParam="" />
        </Macro>
    </Macros>
    <UserDefinedCommands>
        <Command name="Open shell" Ctrl="no" Alt="yes" Shift="no" Key="116">sh</Command>
    </UserDefinedCommands>
    <PluginCommands />
    <ScintillaKeys />
</NotepadPlus>
`

const userLangsDoc = `<?xml version="1.0" encoding="UTF-8"?>
<NotepadPlus>
    <UserLang name="Ini+" ext="ini2" udlVersion="2.1">
        <Settings><Global caseIgnored="yes" /></Settings>
        <KeywordLists><Keywords name="Keywords1">section</Keywords></KeywordLists>
        <Styles><WordsStyle name="DEFAULT" fgColor="123456" /></Styles>
    </UserLang>
    <UserLang name="Broken" ext="brk">
        <Settings />
    </UserLang>
</NotepadPlus>
`

const pluginLexer = `<?xml version="1.0" encoding="UTF-8"?>
<NotepadPlus>
    <Languages>
        <Language name="nim" ext="nim" commentLine="#" />
    </Languages>
    <LexerStyles>
        <LexerType name="nim" desc="Nim" ext="">
            <WordsStyle name="DEFAULT" styleID="0" fgColor="111111" />
        </LexerType>
        <LexerType name="c" desc="C" ext="">
            <WordsStyle name="DEFAULT" styleID="11" fgColor="FF0000" />
            <WordsStyle name="PREPROCESSOR" styleID="9" fgColor="804000" />
        </LexerType>
    </LexerStyles>
</NotepadPlus>
`

var testMenu = []shortcut.MenuKeyDef{
	{Key: keys.Letter('S'), CommandID: 100, Ctrl: true, Name: "Save"},
	{Key: keys.Letter('O'), CommandID: 101, Ctrl: true, Name: "Open"},
}

var testScint = []shortcut.ScintillaKeyDef{
	{Name: "Cut", CommandID: 2177, Ctrl: true, Key: keys.Letter('X')},
	{Name: "Undo", CommandID: 2176, Ctrl: true, Key: keys.Letter('Z')},
}

type recordingPrompter struct {
	docs   []string
	answer bool
}

func (p *recordingPrompter) Prompt(doc string, err error) bool {
	p.docs = append(p.docs, doc)
	return p.answer
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

type fixture struct {
	cfg      config.Config
	settings string
	install  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		cfg:      config.Default(),
		settings: filepath.Join(root, "settings"),
		install:  filepath.Join(root, "install"),
	}
	f.cfg.Paths.SettingsDir = f.settings
	f.cfg.Paths.InstallDir = f.install
	writeFile(t, filepath.Join(f.install, modelLangs), langsModel)
	writeFile(t, filepath.Join(f.install, modelConfig), configModel)
	writeFile(t, filepath.Join(f.install, modelStylers), stylersModel)
	writeFile(t, filepath.Join(f.install, modelShortcuts), shortcutsModel)
	return f
}

func (f fixture) store(opts ...Option) *Store {
	opts = append([]Option{WithMenuKeys(testMenu), WithScintillaKeys(testScint)}, opts...)
	return New(f.cfg, opts...)
}

func statusOf(t *testing.T, s *Store, doc string) DocStatus {
	t.Helper()
	for _, st := range s.Status() {
		if st.Doc == doc {
			return st
		}
	}
	t.Fatalf("no status for %s", doc)
	return DocStatus{}
}

func TestLoadSeedsFromInstallDir(t *testing.T) {
	f := newFixture(t)
	s := f.store()
	require.NoError(t, s.Load())
	assert.True(t, s.Loaded())

	for _, doc := range []string{DocLangs, DocConfig, DocStylers, DocShortcuts} {
		assert.True(t, statusOf(t, s, doc).Loaded, doc)
		assert.FileExists(t, filepath.Join(f.settings, doc))
	}
	assert.True(t, statusOf(t, s, DocPluginLexers).Skipped)
	ul := statusOf(t, s, DocUserLangs)
	assert.False(t, ul.Loaded)
	assert.True(t, ul.Missing)
	assert.ErrorIs(t, ul.Err, docstore.ErrNotExist)

	require.NotNil(t, s.Langs().ByName("c"))
	assert.Equal(t, "if else", s.Langs().ByName("c").Words[0])
	require.NotNil(t, s.Stylers().Lexers.ByName("c"))

	sc, ok := s.Shortcuts().ShortcutByID(100)
	require.True(t, ok)
	assert.Equal(t, "Alt+S", sc.KeyCombo.String())
	assert.Equal(t, "Save", sc.Name)
	assert.Equal(t, []int{0}, s.Shortcuts().Modified())
	assert.Len(t, s.Shortcuts().Macros(), 1)
	assert.Len(t, s.Shortcuts().UserCommands(), 1)

	require.NotNil(t, s.Session(), "session kept by default")
	assert.Equal(t, "", s.Session().ActiveFile())
}

func TestLoadContinuesPastFailures(t *testing.T) {
	f := newFixture(t)
	f.cfg.Paths.InstallDir = ""
	writeFile(t, filepath.Join(f.settings, DocLangs), "<NotepadPlus><Languages")
	writeFile(t, filepath.Join(f.settings, DocUserLangs), userLangsDoc)
	writeFile(t, filepath.Join(f.settings, DocBlacklist),
		`<NotepadPlus><PluginBlackList><Plugin name="bad.dll" /><Plugin /></PluginBlackList></NotepadPlus>`)

	p := &recordingPrompter{}
	s := f.store(WithPrompter(p))
	err := s.Load()
	require.Error(t, err)

	var de *DocumentError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, DocLangs, de.Doc)
	assert.Equal(t, []string{DocLangs, DocConfig, DocStylers}, p.docs)

	assert.False(t, statusOf(t, s, DocLangs).Loaded)
	assert.False(t, statusOf(t, s, DocStylers).Loaded)
	assert.True(t, statusOf(t, s, DocUserLangs).Loaded)
	assert.True(t, statusOf(t, s, DocBlacklist).Loaded)

	assert.Equal(t, 1, s.UserLangs().Len(), "broken record rolled back")
	assert.Equal(t, []string{"bad.dll"}, s.Blacklist())

	// defaults stay in place when shortcuts.xml is missing
	sc, ok := s.Shortcuts().ShortcutByID(100)
	require.True(t, ok)
	assert.Equal(t, "Ctrl+S", sc.KeyCombo.String())
}

func TestLoadRecoversConfigOnPrompt(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.settings, DocConfig), "not xml <")

	p := &recordingPrompter{answer: true}
	s := f.store(WithPrompter(p))
	require.NoError(t, s.Load())
	assert.Equal(t, []string{DocConfig}, p.docs)
	assert.True(t, statusOf(t, s, DocConfig).Loaded)
}

func TestLoadRecoversEmptyLangsOnPrompt(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.settings, DocLangs), "")

	p := &recordingPrompter{answer: true}
	s := f.store(WithPrompter(p))
	require.NoError(t, s.Load())
	assert.Equal(t, []string{DocLangs}, p.docs)
	assert.NotNil(t, s.Langs().ByName("c"))
}

func TestSessionSkippedWhenNotRemembered(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.settings, DocConfig), `<NotepadPlus><GUIConfigs>
<GUIConfig name="RememberLastSession">no</GUIConfig></GUIConfigs></NotepadPlus>`)
	s := f.store()
	require.NoError(t, s.Load())
	assert.True(t, statusOf(t, s, DocSession).Skipped)
	assert.Nil(t, s.Session())
	assert.NoError(t, s.SaveSession())
}

func TestThemeFromConfig(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.settings, "themes", "Dark.xml"), darkTheme)
	writeFile(t, filepath.Join(f.settings, DocConfig), `<NotepadPlus><GUIConfigs>
<GUIConfig name="stylerTheme" path="themes/Dark.xml" /></GUIConfigs></NotepadPlus>`)

	s := f.store()
	require.NoError(t, s.Load())
	assert.Equal(t, filepath.Join(f.settings, "themes", "Dark.xml"), s.ThemePath())
	c := s.Stylers().Lexers.ByName("c")
	require.NotNil(t, c)
	assert.Equal(t, style.RGB(0xDD, 0xDD, 0xDD), c.Styles.Get(0).Fg)
}

func TestMissingThemeFallsBackToStylers(t *testing.T) {
	f := newFixture(t)
	f.cfg.Paths.Theme = "themes/Gone.xml"
	s := f.store()
	require.NoError(t, s.Load())
	assert.Equal(t, filepath.Join(f.settings, DocStylers), s.ThemePath())
}

func TestPluginLexersShareNamespace(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.settings, "plugins", "config", "nim.xml"), pluginLexer)

	s := f.store()
	require.NoError(t, s.Load())
	assert.True(t, statusOf(t, s, DocPluginLexers).Loaded)
	assert.NotNil(t, s.Langs().ByName("nim"))

	lexers := s.Stylers().Lexers
	require.NotNil(t, lexers.ByName("nim"))
	c := lexers.ByName("c")
	require.NotNil(t, c)
	i := c.Styles.IndexByID(11)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, style.RGB(0, 0, 0), c.Styles.Get(i).Fg, "built-in style keeps first definition")
	assert.GreaterOrEqual(t, c.Styles.IndexByID(9), 0, "plugin adds new style ids")
}

func TestGroupingErrorFailsFast(t *testing.T) {
	f := newFixture(t)
	bad := []shortcut.ScintillaKeyDef{
		{Name: "Cut", CommandID: 2177, Ctrl: true, Key: keys.Letter('X')},
		{Name: "Undo", CommandID: 2176, Ctrl: true, Key: keys.Letter('Z')},
		{Name: "Cut", CommandID: 2177, Shift: true, Key: keys.VKDelete},
	}
	s := New(f.cfg, WithScintillaKeys(bad))
	err := s.Load()
	var ge *shortcut.GroupingError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, 2, ge.Index)
	assert.False(t, s.Loaded())
}

func TestRemapPersists(t *testing.T) {
	f := newFixture(t)
	s := f.store()
	require.NoError(t, s.Load())

	combo, err := keys.Parse("Ctrl+Shift+O")
	require.NoError(t, err)
	require.NoError(t, s.Remap(101, combo))
	assert.ErrorIs(t, s.Remap(999, combo), shortcut.ErrNoSuchEntry)

	again := f.store()
	require.NoError(t, again.Load())
	sc, ok := again.Shortcuts().ShortcutByID(101)
	require.True(t, ok)
	assert.Equal(t, "Ctrl+Shift+O", sc.KeyCombo.String())
	assert.Equal(t, "Open", sc.Name)
	sc, _ = again.Shortcuts().ShortcutByID(100)
	assert.Equal(t, "Alt+S", sc.KeyCombo.String(), "earlier override survives rewrite")
}

func TestRemapKeepsPluginShortcuts(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.settings, DocShortcuts), `<NotepadPlus>
    <PluginCommands>
        <PluginCommand moduleName="NppExport.dll" internalID="3" Ctrl="yes" Alt="yes" Shift="no" Key="82" />
    </PluginCommands>
</NotepadPlus>`)
	s := f.store()
	require.NoError(t, s.Load())
	assert.Equal(t, 1, s.Shortcuts().PendingPluginOverrides())

	combo, err := keys.Parse("Ctrl+K")
	require.NoError(t, err)
	require.NoError(t, s.Remap(101, combo))

	d, err := docstore.Open(filepath.Join(f.settings, DocShortcuts))
	require.NoError(t, err)
	recs := docstore.Children(docstore.FirstChild(d.Root(docstore.RootName), "PluginCommands"), "PluginCommand")
	require.Len(t, recs, 1, "plugin record survives the rewrite")

	again := f.store(WithPluginCommands([]shortcut.PluginCommandDef{
		{Module: "NppExport.dll", InternalID: 3, Shortcut: keys.Shortcut{Name: "Copy RTF"}},
	}))
	require.NoError(t, again.Load())
	plugins := again.Shortcuts().PluginCommands()
	require.Len(t, plugins, 1)
	assert.Equal(t, "Ctrl+Alt+R", plugins[0].KeyCombo.String())
	assert.Equal(t, "Copy RTF", plugins[0].Name)
	assert.Zero(t, again.Shortcuts().PendingPluginOverrides())
	sc, _ := again.Shortcuts().ShortcutByID(101)
	assert.Equal(t, "Ctrl+K", sc.KeyCombo.String())
}

func TestReloadSavesDirtySession(t *testing.T) {
	f := newFixture(t)
	s := f.store()
	require.NoError(t, s.Load())
	require.NotNil(t, s.Session())
	s.Session().SetFileState(session.MainView, session.FileState{Filename: "/tmp/a.go", Encoding: 4})
	require.True(t, s.Session().Dirty())

	require.NoError(t, s.Load())
	require.NotNil(t, s.Session())
	fs, ok := s.Session().FileState("/tmp/a.go")
	require.True(t, ok, "edit survives the reload")
	assert.Equal(t, 4, fs.Encoding)
	assert.False(t, s.Session().Dirty())
}

func TestUserLangPersistence(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.settings, DocUserLangs), userLangsDoc)
	s := f.store()
	require.NoError(t, s.Load())

	out := filepath.Join(t.TempDir(), "ini.xml")
	require.NoError(t, s.ExportUDL("Ini+", out))
	assert.Error(t, s.ExportUDL("nope", out))

	_, err := s.UserLangs().Add(s.UserLangs().Get(0), "Ini copy")
	require.NoError(t, err)
	require.NoError(t, s.SaveUserLangs())

	again := f.store()
	require.NoError(t, again.Load())
	assert.Equal(t, 2, again.UserLangs().Len())

	require.NoError(t, again.UserLangs().Remove(1))
	n, err := again.ImportUDL(out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, again.UserLangs().Len())
	assert.Equal(t, 1, again.UserLangs().Imported())
}

func TestSaveStylesAndReload(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.settings, "themes", "Dark.xml"), darkTheme)
	s := f.store()
	require.NoError(t, s.Load())

	c := s.Stylers().Lexers.ByName("c")
	c.Styles.Get(0).SetFg(style.RGB(1, 2, 3))
	require.NoError(t, s.SaveStyles(nil, nil))

	again := f.store()
	require.NoError(t, again.Load())
	assert.Equal(t, style.RGB(1, 2, 3), again.Stylers().Lexers.ByName("c").Styles.Get(0).Fg)

	dark := filepath.Join(f.settings, "themes", "Dark.xml")
	require.NoError(t, again.ReloadStylers(dark))
	assert.Equal(t, dark, again.ThemePath())

	third := f.store()
	require.NoError(t, third.Load())
	assert.Equal(t, dark, third.ThemePath(), "theme choice recorded in config.xml")
}

func TestSetTabSettings(t *testing.T) {
	f := newFixture(t)
	s := f.store()
	require.NoError(t, s.Load())
	require.NoError(t, s.SetTabSettings("c", 8))

	again := f.store()
	require.NoError(t, again.Load())
	assert.Equal(t, 8, again.Langs().ByName("c").TabSettings)
}

func TestShutdown(t *testing.T) {
	f := newFixture(t)
	s := f.store()
	require.NoError(t, s.Load())
	s.Shutdown()
	assert.False(t, s.Loaded())
	assert.Nil(t, s.Shortcuts())
	assert.Nil(t, s.Langs())
}
