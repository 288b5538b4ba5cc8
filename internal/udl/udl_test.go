package udl

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/style"
)

const userLangs = `<?xml version="1.0" encoding="UTF-8"?>
<NotepadPlus>
    <UserLang name="Good" ext="gd gdx" udlVersion="2.1">
        <Settings>
            <Global caseIgnored="yes" allowFoldOfComments="no" foldCompact="yes" forcePureLC="2" decimalSeparator="1" />
            <Prefix Keywords1="yes" Keywords2="no" Keywords8="yes" />
        </Settings>
        <KeywordLists>
            <Keywords name="Keywords1">if then else</Keywords>
            <Keywords name="Operators1">+ -</Keywords>
            <Keywords name="Unknown list">ignored</Keywords>
        </KeywordLists>
        <Styles>
            <WordsStyle name="DEFAULT" fgColor="112233" bgColor="FFFFFF" fontStyle="1" nesting="0" />
            <WordsStyle name="KEYWORDS1" fgColor="0000FF" colorStyle="1" fontName="Mono" fontSize="12" nesting="3" />
            <WordsStyle name="NOT A STYLE" fgColor="000000" />
        </Styles>
    </UserLang>
    <UserLang name="NoStyles" ext="ns">
        <Settings />
        <KeywordLists />
    </UserLang>
    <UserLang ext="anon">
        <Settings />
        <KeywordLists />
        <Styles />
    </UserLang>
    <UserLang name="Legacy" ext="old">
        <Settings>
            <Prefix words1="yes" words3="yes" Keywords2="yes" />
        </Settings>
        <KeywordLists>
            <Keywords name="Delimiters">"0'"0\</Keywords>
            <Keywords name="Comment">1/* 2*/ 0//</Keywords>
            <Keywords name="Words2">alpha beta</Keywords>
            <Keywords name="Folder+">{</Keywords>
        </KeywordLists>
        <Styles>
            <WordsStyle name="KEYWORD2" fgColor="FF0000" />
            <WordsStyle name="FOLDEROPEN" fgColor="00FF00" />
            <WordsStyle name="FOLDERCLOSE" fgColor="0000FF" />
            <WordsStyle name="DELIMINER1" fgColor="ABCDEF" />
        </Styles>
    </UserLang>
</NotepadPlus>
`

func loadTable(t *testing.T, max int) (*Table, int, error) {
	t.Helper()
	d, err := docstore.ParseString("userDefineLang.xml", userLangs)
	require.NoError(t, err)
	tbl := NewTable(max, 4)
	n, err := tbl.Import(d.Root(docstore.RootName))
	return tbl, n, err
}

func TestImportRejectsIncompleteRecords(t *testing.T) {
	tbl, n, err := loadTable(t, 10)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, tbl.Len())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSection))

	var ie *ImportError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "NoStyles", ie.Lang)
	assert.Equal(t, "Styles", ie.Section)

	l, i := tbl.ByName("NoStyles")
	assert.Nil(t, l)
	assert.Equal(t, -1, i)
	_, i = tbl.ByName("Legacy")
	assert.Equal(t, 1, i)
}

func TestImportVersionedRecord(t *testing.T) {
	tbl, _, _ := loadTable(t, 10)
	l, _ := tbl.ByName("Good")
	require.NotNil(t, l)

	assert.True(t, l.CaseIgnored)
	assert.False(t, l.AllowFoldOfComments)
	assert.True(t, l.FoldCompact)
	assert.Equal(t, 2, l.ForcePureLC)
	assert.Equal(t, 1, l.DecimalSeparator)
	assert.Equal(t, [KeywordGroups]bool{true, false, false, false, false, false, false, true}, l.Prefix)

	assert.Equal(t, "if then else", l.Keywords[KwKeywords1])
	assert.Equal(t, "+ -", l.Keywords[KwOperators1])

	def := l.Style(StyleDefault)
	require.NotNil(t, def)
	assert.Equal(t, "DEFAULT", def.Desc)
	assert.Equal(t, style.RGB(0x11, 0x22, 0x33), def.Fg)

	kw := l.Style(StyleKeywords1)
	require.NotNil(t, kw)
	assert.Equal(t, "Mono", kw.FontName)
	assert.Equal(t, 12, kw.FontSize)
	assert.Equal(t, 3, kw.Nesting)
	assert.Equal(t, style.ColorStyleFg, kw.ColorStyle)

	for slot := 0; slot < StyleTotal; slot++ {
		s := l.Style(slot)
		require.NotNil(t, s, "slot %d filled", slot)
		assert.Equal(t, StyleNames[slot], s.Desc)
	}
}

func TestImportMigratesUnversionedRecord(t *testing.T) {
	tbl, _, _ := loadTable(t, 10)
	l, _ := tbl.ByName("Legacy")
	require.NotNil(t, l)

	assert.Equal(t, CurrentVersion, l.Version)
	assert.Equal(t,
		`00" 01 02" 03 04 05 06' 07 08\ 09 10 11 12 13 14 15 16 17 18 19 20 21 22 23`,
		l.Keywords[KwDelimiters])
	assert.Equal(t, "03/* 04*/ 00// 01 02", l.Keywords[KwComments])
	assert.Equal(t, "alpha beta", l.Keywords[KwKeywords1+1])
	assert.Equal(t, "{", l.Keywords[KwFoldersCode1Open])

	// words1..words4 are read, Keywords2 is not a legacy attribute
	assert.Equal(t, [KeywordGroups]bool{true, false, true, false}, l.Prefix)

	kw2 := l.Style(StyleKeywords1 + 1)
	require.NotNil(t, kw2)
	assert.Equal(t, "KEYWORDS2", kw2.Desc)
	assert.Equal(t, style.RGB(0xFF, 0, 0), kw2.Fg)

	fold := l.Style(StyleFolderInCode1)
	require.NotNil(t, fold)
	assert.Equal(t, style.RGB(0, 0xFF, 0), fold.Fg, "first legacy folder style wins")

	delim := l.Style(StyleDelimiters1)
	require.NotNil(t, delim)
	assert.Equal(t, "DELIMITERS1", delim.Desc)
}

func TestPackDelimitersShortInput(t *testing.T) {
	assert.Equal(t,
		"00( 01 02 03) 04 05 06 07 08 09 10 11 12 13 14 15 16 17 18 19 20 21 22 23",
		packDelimiters("()"))
}

func TestPackCommentsKeepsUnknownTokens(t *testing.T) {
	assert.Equal(t, "00# x 01 02", packComments("0# x"))
}

func TestImportStopsAtCapacity(t *testing.T) {
	tbl, n, err := loadTable(t, 1)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, tbl.Len())
	assert.True(t, errors.Is(err, ErrAtCapacity))
}

func TestWriteRoundTrip(t *testing.T) {
	tbl, _, _ := loadTable(t, 10)

	out := docstore.New("out.xml", docstore.RootName)
	root := out.Root(docstore.RootName)
	docstore.AppendChild(root, "UserLang")
	tbl.Write(root)
	require.Len(t, docstore.Children(root, "UserLang"), 2, "old records replaced")

	again, err := docstore.ParseString("out.xml", out.String())
	require.NoError(t, err)
	tbl2 := NewTable(10, 4)
	n, err := tbl2.Import(again.Root(docstore.RootName))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	for i := 0; i < tbl.Len(); i++ {
		a, b := tbl.Get(i), tbl2.Get(i)
		assert.Equal(t, a.Name, b.Name)
		assert.Equal(t, a.Ext, b.Ext)
		assert.Equal(t, a.Keywords, b.Keywords)
		assert.Equal(t, a.Prefix, b.Prefix)
		assert.Equal(t, a.CaseIgnored, b.CaseIgnored)
		for slot := 0; slot < StyleTotal; slot++ {
			assert.Equal(t, a.Style(slot).Fg, b.Style(slot).Fg)
			assert.Equal(t, a.Style(slot).FontName, b.Style(slot).FontName)
			assert.Equal(t, a.Style(slot).Nesting, b.Style(slot).Nesting)
		}
	}

	node := docstore.Children(root, "UserLang")[0]
	v, _ := docstore.Attr(node, "udlVersion")
	assert.Equal(t, CurrentVersion, v)
	lists := docstore.Children(docstore.FirstChild(node, "KeywordLists"), "Keywords")
	assert.Len(t, lists, KeywordListTotal)
	ws := docstore.Children(docstore.FirstChild(node, "Styles"), "WordsStyle")
	require.Len(t, ws, StyleTotal)
	_, hasBg := docstore.Attr(ws[1], "bgColor")
	assert.False(t, hasBg, "unset colors are not written")
	fs, _ := docstore.Attr(ws[1], "fontStyle")
	assert.Equal(t, "0", fs)
}

func TestExportImportFile(t *testing.T) {
	tbl, _, _ := loadTable(t, 10)
	path := filepath.Join(t.TempDir(), "good.xml")
	require.NoError(t, tbl.ExportFile(0, path))
	assert.ErrorIs(t, tbl.ExportFile(9, path), ErrNoSuchLang)

	other := NewTable(10, 1)
	n, err := other.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Good", other.Get(0).Name)
	assert.Equal(t, 1, other.Imported())

	_, err = other.ImportFile(path)
	assert.ErrorIs(t, err, ErrAtCapacity)
}

func TestAddAndRemove(t *testing.T) {
	tbl, _, _ := loadTable(t, 3)

	i, err := tbl.Add(tbl.Get(0), "Copy")
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	tbl.Get(2).Keywords[KwKeywords1] = "changed"
	assert.Equal(t, "if then else", tbl.Get(0).Keywords[KwKeywords1], "copy is deep")

	_, err = tbl.Add(nil, "Other")
	assert.ErrorIs(t, err, ErrAtCapacity)
	_, err = tbl.Add(nil, "Good")
	assert.ErrorIs(t, err, ErrDuplicateName)

	require.NoError(t, tbl.Remove(0))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Legacy", tbl.Get(0).Name)
	assert.Equal(t, "Copy", tbl.Get(1).Name)
	assert.ErrorIs(t, tbl.Remove(5), ErrNoSuchLang)
}

func TestByExt(t *testing.T) {
	tbl, _, _ := loadTable(t, 10)
	require.NotNil(t, tbl.ByExt(".GDX"))
	assert.Equal(t, "Good", tbl.ByExt("gd").Name)
	assert.Nil(t, tbl.ByExt("nope"))
	assert.Nil(t, tbl.ByExt(""))
}

func TestNameTables(t *testing.T) {
	i, ok := KeywordListID("Words4")
	assert.True(t, ok)
	assert.Equal(t, "Keywords4", KeywordListNames[i])

	i, ok = StyleID("COMMENT LINE")
	assert.True(t, ok)
	assert.Equal(t, "LINE COMMENTS", StyleName(i))

	_, ok = StyleID("nope")
	assert.False(t, ok)
	assert.Equal(t, "", StyleName(StyleTotal))
}
