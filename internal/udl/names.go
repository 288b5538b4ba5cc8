package udl

// Keyword list indices.
const (
	KwComments          = 0
	KwNumbersPrefix1    = 1
	KwOperators1        = 8
	KwFoldersCode1Open  = 10
	KwFoldersCode1Close = 12
	KwKeywords1         = 19
	KwDelimiters        = 27

	KeywordListTotal = 28
	KeywordGroups    = 8
)

// KeywordListNames is the on-disk name of each keyword list, by index.
var KeywordListNames = [KeywordListTotal]string{
	"Comments",
	"Numbers, prefix1",
	"Numbers, prefix2",
	"Numbers, extras1",
	"Numbers, extras2",
	"Numbers, suffix1",
	"Numbers, suffix2",
	"Numbers, range",
	"Operators1",
	"Operators2",
	"Folders in code1, open",
	"Folders in code1, middle",
	"Folders in code1, close",
	"Folders in code2, open",
	"Folders in code2, middle",
	"Folders in code2, close",
	"Folders in comment, open",
	"Folders in comment, middle",
	"Folders in comment, close",
	"Keywords1",
	"Keywords2",
	"Keywords3",
	"Keywords4",
	"Keywords5",
	"Keywords6",
	"Keywords7",
	"Keywords8",
	"Delimiters",
}

var keywordListID = func() map[string]int {
	m := map[string]int{
		"Folder+":   KwFoldersCode1Open,
		"Folder-":   KwFoldersCode1Close,
		"Operators": KwOperators1,
		"Comment":   KwComments,
		"Words1":    KwKeywords1,
		"Words2":    KwKeywords1 + 1,
		"Words3":    KwKeywords1 + 2,
		"Words4":    KwKeywords1 + 3,
	}
	for i, n := range KeywordListNames {
		m[n] = i
	}
	return m
}()

// KeywordListID returns the index of a keyword list name, accepting the
// names used before versioned files.
func KeywordListID(name string) (int, bool) {
	i, ok := keywordListID[name]
	return i, ok
}

// Style slots.
const (
	StyleDefault       = 0
	StyleComments      = 1
	StyleLineComments  = 2
	StyleNumbers       = 3
	StyleKeywords1     = 4
	StyleOperators     = 12
	StyleFolderInCode1 = 13
	StyleDelimiters1   = 16
	StyleTotal         = 24
)

// StyleNames is the display name of each style slot.
var StyleNames = [StyleTotal]string{
	"DEFAULT",
	"COMMENTS",
	"LINE COMMENTS",
	"NUMBERS",
	"KEYWORDS1",
	"KEYWORDS2",
	"KEYWORDS3",
	"KEYWORDS4",
	"KEYWORDS5",
	"KEYWORDS6",
	"KEYWORDS7",
	"KEYWORDS8",
	"OPERATORS",
	"FOLDER IN CODE1",
	"FOLDER IN CODE2",
	"FOLDER IN COMMENT",
	"DELIMITERS1",
	"DELIMITERS2",
	"DELIMITERS3",
	"DELIMITERS4",
	"DELIMITERS5",
	"DELIMITERS6",
	"DELIMITERS7",
	"DELIMITERS8",
}

var styleID = func() map[string]int {
	m := map[string]int{
		"FOLDEROPEN":   StyleFolderInCode1,
		"FOLDERCLOSE":  StyleFolderInCode1,
		"KEYWORD1":     StyleKeywords1,
		"KEYWORD2":     StyleKeywords1 + 1,
		"KEYWORD3":     StyleKeywords1 + 2,
		"KEYWORD4":     StyleKeywords1 + 3,
		"COMMENT":      StyleComments,
		"COMMENT LINE": StyleLineComments,
		"NUMBER":       StyleNumbers,
		"OPERATOR":     StyleOperators,
		"DELIMINER1":   StyleDelimiters1,
		"DELIMINER2":   StyleDelimiters1 + 1,
		"DELIMINER3":   StyleDelimiters1 + 2,
	}
	for i, n := range StyleNames {
		m[n] = i
	}
	return m
}()

// StyleID returns the slot of a style name, accepting legacy names.
func StyleID(name string) (int, bool) {
	i, ok := styleID[name]
	return i, ok
}

// StyleName returns the display name of slot, or "".
func StyleName(slot int) string {
	if slot < 0 || slot >= StyleTotal {
		return ""
	}
	return StyleNames[slot]
}

var legacyPrefixNames = []string{"words1", "words2", "words3", "words4"}

// prefixNames returns the Prefix attribute names for a file version.
func prefixNames(version string) []string {
	switch version {
	case "2.0", "2.1":
		return KeywordListNames[KwKeywords1 : KwKeywords1+KeywordGroups]
	}
	return legacyPrefixNames
}
