package shortcut

import "github.com/kobzarvs/nppcfg/internal/keys"

// Synthetic id bases. Each category's limit stays below the gap to the next
// base so ids never collide.
const (
	MacroBase         = 20000
	UserCommandBase   = 21000
	PluginCommandBase = 22000
)

// Limits caps the growable tables.
type Limits struct {
	Macros         int
	UserCommands   int
	PluginCommands int
}

// DefaultLimits returns the table capacities the editor ships with.
func DefaultLimits() Limits {
	return Limits{Macros: 200, UserCommands: 200, PluginCommands: 500}
}

// MenuKeyDef is one row of the static menu shortcut table.
type MenuKeyDef struct {
	Key       byte
	CommandID int
	Ctrl      bool
	Alt       bool
	Shift     bool
	Name      string
}

// ScintillaKeyDef is one row of the static editor-command table. Rows for the
// same CommandID must be adjacent; the first row is the primary binding.
type ScintillaKeyDef struct {
	Name       string
	CommandID  int
	Ctrl       bool
	Alt        bool
	Shift      bool
	Key        byte
	RedirectID int
}

// Menu command ids.
const (
	IDMFileNew      = 41001
	IDMFileOpen     = 41002
	IDMFileClose    = 41003
	IDMFileCloseAll = 41004
	IDMFileSave     = 41006
	IDMFileSaveAll  = 41007
	IDMFileSaveAs   = 41008
	IDMFilePrint    = 41010

	IDMEditCut       = 42001
	IDMEditCopy      = 42002
	IDMEditUndo      = 42003
	IDMEditRedo      = 42004
	IDMEditPaste     = 42005
	IDMEditDelete    = 42006
	IDMEditSelectAll = 42007
	IDMEditInsTab    = 42008
	IDMEditRmvTab    = 42009
	IDMEditDupLine   = 42010

	IDMSearchFind     = 43001
	IDMSearchFindNext = 43002
	IDMSearchReplace  = 43003
	IDMSearchGotoLine = 43004

	IDMViewZoomIn      = 44023
	IDMViewZoomOut     = 44024
	IDMViewZoomRestore = 44033
)

// Editor engine command ids.
const (
	SCIClearAll           = 2004
	SCIRedo               = 2011
	SCISelectAll          = 2013
	SCIUndo               = 2176
	SCICut                = 2177
	SCICopy               = 2178
	SCIPaste              = 2179
	SCIClear              = 2180
	SCILinesJoin          = 2288
	SCILineDown           = 2300
	SCILineDownExtend     = 2301
	SCILineUp             = 2302
	SCILineUpExtend       = 2303
	SCICharLeft           = 2304
	SCICharLeftExtend     = 2305
	SCICharRight          = 2306
	SCICharRightExtend    = 2307
	SCIWordLeft           = 2308
	SCIWordLeftExtend     = 2309
	SCIWordRight          = 2310
	SCIHome               = 2312
	SCILineEnd            = 2314
	SCILineEndExtend      = 2315
	SCIDocumentStart      = 2316
	SCIDocumentStartExt   = 2317
	SCIDocumentEnd        = 2318
	SCIDocumentEndExt     = 2319
	SCIPageUp             = 2320
	SCIPageUpExtend       = 2321
	SCIPageDown           = 2322
	SCIPageDownExtend     = 2323
	SCIEditToggleOvertype = 2324
	SCICancel             = 2325
	SCIDeleteBack         = 2326
	SCITab                = 2327
	SCIBackTab            = 2328
	SCINewline            = 2329
	SCIFormFeed           = 2330
	SCIVCHome             = 2331
	SCIVCHomeExtend       = 2332
	SCIZoomIn             = 2333
	SCIZoomOut            = 2334
	SCIDelWordLeft        = 2335
	SCIDelWordRight       = 2336
	SCILineCut            = 2337
	SCILineDelete         = 2338
	SCILineTranspose      = 2339
	SCILineScrollDown     = 2342
	SCILineScrollUp       = 2343
	SCIDeleteBackNotLine  = 2344
	SCISetZoom            = 2373
	SCIDelLineLeft        = 2395
	SCIDelLineRight       = 2396
	SCILineDuplicate      = 2404
	SCIParaDown           = 2413
	SCIParaUp             = 2415
	SCILineCopy           = 2455
	SCISelectionDuplicate = 2469
)

// DefaultMenuKeys is the built-in menu shortcut table.
var DefaultMenuKeys = []MenuKeyDef{
	{keys.Letter('N'), IDMFileNew, true, false, false, "New"},
	{keys.Letter('O'), IDMFileOpen, true, false, false, "Open..."},
	{keys.Letter('S'), IDMFileSave, true, false, false, "Save"},
	{keys.Letter('S'), IDMFileSaveAs, true, true, false, "Save As..."},
	{keys.Letter('S'), IDMFileSaveAll, true, false, true, "Save All"},
	{keys.Letter('W'), IDMFileClose, true, false, false, "Close"},
	{keys.VKNull, IDMFileCloseAll, false, false, false, "Close All"},
	{keys.Letter('P'), IDMFilePrint, true, false, false, "Print..."},
	{keys.Letter('F'), IDMSearchFind, true, false, false, "Find..."},
	{keys.F(3), IDMSearchFindNext, false, false, false, "Find Next"},
	{keys.Letter('H'), IDMSearchReplace, true, false, false, "Replace..."},
	{keys.Letter('G'), IDMSearchGotoLine, true, false, false, "Go to..."},
}

// DefaultScintillaKeys is the built-in editor-command table.
var DefaultScintillaKeys = []ScintillaKeyDef{
	{"SCI_CUT", SCICut, true, false, false, keys.Letter('X'), IDMEditCut},
	{"", SCICut, false, false, true, keys.VKDelete, 0},
	{"SCI_COPY", SCICopy, true, false, false, keys.Letter('C'), IDMEditCopy},
	{"", SCICopy, true, false, false, keys.VKInsert, 0},
	{"SCI_PASTE", SCIPaste, true, false, false, keys.Letter('V'), IDMEditPaste},
	{"", SCIPaste, false, false, true, keys.VKInsert, 0},
	{"SCI_SELECTALL", SCISelectAll, true, false, false, keys.Letter('A'), IDMEditSelectAll},
	{"SCI_CLEAR", SCIClear, false, false, false, keys.VKDelete, IDMEditDelete},
	{"SCI_CLEARALL", SCIClearAll, false, false, false, keys.VKNull, 0},
	{"SCI_UNDO", SCIUndo, true, false, false, keys.Letter('Z'), IDMEditUndo},
	{"", SCIUndo, false, true, false, keys.VKBack, 0},
	{"SCI_REDO", SCIRedo, true, false, false, keys.Letter('Y'), IDMEditRedo},
	{"SCI_NEWLINE", SCINewline, false, false, false, keys.VKReturn, 0},
	{"", SCINewline, false, false, true, keys.VKReturn, 0},
	{"SCI_TAB", SCITab, false, false, false, keys.VKTab, IDMEditInsTab},
	{"SCI_BACKTAB", SCIBackTab, false, false, true, keys.VKTab, IDMEditRmvTab},
	{"SCI_FORMFEED", SCIFormFeed, false, false, false, keys.VKNull, 0},
	{"SCI_ZOOMIN", SCIZoomIn, true, false, false, keys.VKAdd, IDMViewZoomIn},
	{"SCI_ZOOMOUT", SCIZoomOut, true, false, false, keys.VKSubtract, IDMViewZoomOut},
	{"SCI_SETZOOM", SCISetZoom, true, false, false, keys.VKDivide, IDMViewZoomRestore},
	{"SCI_SELECTIONDUPLICATE", SCISelectionDuplicate, true, false, false, keys.Letter('D'), IDMEditDupLine},
	{"SCI_LINESJOIN", SCILinesJoin, false, false, false, keys.VKNull, 0},
	{"SCI_EDITTOGGLEOVERTYPE", SCIEditToggleOvertype, false, false, false, keys.VKInsert, 0},
	{"SCI_LINEDOWN", SCILineDown, false, false, false, keys.VKDown, 0},
	{"SCI_LINEDOWNEXTEND", SCILineDownExtend, false, false, true, keys.VKDown, 0},
	{"SCI_LINESCROLLDOWN", SCILineScrollDown, true, false, false, keys.VKDown, 0},
	{"SCI_LINEUP", SCILineUp, false, false, false, keys.VKUp, 0},
	{"SCI_LINEUPEXTEND", SCILineUpExtend, false, false, true, keys.VKUp, 0},
	{"SCI_LINESCROLLUP", SCILineScrollUp, true, false, false, keys.VKUp, 0},
	{"SCI_PARADOWN", SCIParaDown, true, false, false, keys.VKOEM6, 0},
	{"SCI_PARAUP", SCIParaUp, true, false, false, keys.VKOEM4, 0},
	{"SCI_CHARLEFT", SCICharLeft, false, false, false, keys.VKLeft, 0},
	{"SCI_CHARLEFTEXTEND", SCICharLeftExtend, false, false, true, keys.VKLeft, 0},
	{"SCI_CHARRIGHT", SCICharRight, false, false, false, keys.VKRight, 0},
	{"SCI_CHARRIGHTEXTEND", SCICharRightExtend, false, false, true, keys.VKRight, 0},
	{"SCI_WORDLEFT", SCIWordLeft, true, false, false, keys.VKLeft, 0},
	{"SCI_WORDLEFTEXTEND", SCIWordLeftExtend, true, false, true, keys.VKLeft, 0},
	{"SCI_WORDRIGHT", SCIWordRight, true, false, false, keys.VKRight, 0},
	{"SCI_HOME", SCIHome, false, false, false, keys.VKNull, 0},
	{"SCI_VCHOME", SCIVCHome, false, false, false, keys.VKHome, 0},
	{"SCI_VCHOMEEXTEND", SCIVCHomeExtend, false, false, true, keys.VKHome, 0},
	{"SCI_LINEEND", SCILineEnd, false, false, false, keys.VKEnd, 0},
	{"SCI_LINEENDEXTEND", SCILineEndExtend, false, false, true, keys.VKEnd, 0},
	{"SCI_DOCUMENTSTART", SCIDocumentStart, true, false, false, keys.VKHome, 0},
	{"SCI_DOCUMENTSTARTEXTEND", SCIDocumentStartExt, true, false, true, keys.VKHome, 0},
	{"SCI_DOCUMENTEND", SCIDocumentEnd, true, false, false, keys.VKEnd, 0},
	{"SCI_DOCUMENTENDEXTEND", SCIDocumentEndExt, true, false, true, keys.VKEnd, 0},
	{"SCI_PAGEUP", SCIPageUp, false, false, false, keys.VKPrior, 0},
	{"SCI_PAGEUPEXTEND", SCIPageUpExtend, false, false, true, keys.VKPrior, 0},
	{"SCI_PAGEDOWN", SCIPageDown, false, false, false, keys.VKNext, 0},
	{"SCI_PAGEDOWNEXTEND", SCIPageDownExtend, false, false, true, keys.VKNext, 0},
	{"SCI_CANCEL", SCICancel, false, false, false, keys.VKEscape, 0},
	{"SCI_DELETEBACK", SCIDeleteBack, false, false, false, keys.VKBack, 0},
	{"", SCIDeleteBack, false, false, true, keys.VKBack, 0},
	{"SCI_DELETEBACKNOTLINE", SCIDeleteBackNotLine, false, false, false, keys.VKNull, 0},
	{"SCI_DELWORDLEFT", SCIDelWordLeft, true, false, false, keys.VKBack, 0},
	{"SCI_DELWORDRIGHT", SCIDelWordRight, true, false, false, keys.VKDelete, 0},
	{"SCI_DELLINELEFT", SCIDelLineLeft, true, false, true, keys.VKBack, 0},
	{"SCI_DELLINERIGHT", SCIDelLineRight, true, false, true, keys.VKDelete, 0},
	{"SCI_LINEDELETE", SCILineDelete, true, false, true, keys.Letter('L'), 0},
	{"SCI_LINECUT", SCILineCut, true, false, false, keys.Letter('L'), 0},
	{"SCI_LINECOPY", SCILineCopy, true, false, true, keys.Letter('T'), 0},
	{"SCI_LINETRANSPOSE", SCILineTranspose, true, false, false, keys.Letter('T'), 0},
	{"SCI_LINEDUPLICATE", SCILineDuplicate, false, false, false, keys.VKNull, 0},
}
