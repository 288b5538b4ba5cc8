package udl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/multierr"

	"github.com/kobzarvs/nppcfg/internal/docstore"
	"github.com/kobzarvs/nppcfg/internal/logger"
)

var (
	// ErrAtCapacity indicates the language table or the import budget is full.
	ErrAtCapacity = errors.New("user language table at capacity")

	// ErrMissingSection indicates a UserLang record lacks a required part.
	ErrMissingSection = errors.New("user language section missing")

	// ErrDuplicateName indicates a language with that name already exists.
	ErrDuplicateName = errors.New("user language name already in use")

	// ErrNoSuchLang indicates an index outside the table.
	ErrNoSuchLang = errors.New("no such user language")
)

// ImportError reports a UserLang record that was rejected.
type ImportError struct {
	Lang    string
	Section string
}

func (e *ImportError) Error() string {
	if e.Lang == "" {
		return fmt.Sprintf("user language: missing %s", e.Section)
	}
	return fmt.Sprintf("user language %q: missing %s", e.Lang, e.Section)
}

func (e *ImportError) Unwrap() error {
	return ErrMissingSection
}

// Table is the bounded list of user-defined languages.
type Table struct {
	max         int
	maxImported int
	imported    int
	langs       []*UserLang
	migrator    *Migrator
}

// NewTable returns a table holding at most maxLangs languages, of which at
// most maxImported may come from ImportFile.
func NewTable(maxLangs, maxImported int) *Table {
	return &Table{max: maxLangs, maxImported: maxImported, migrator: defaultMigrator}
}

// Len returns the number of user languages.
func (t *Table) Len() int {
	return len(t.langs)
}

// Get returns language i, or nil when out of range.
func (t *Table) Get(i int) *UserLang {
	if i < 0 || i >= len(t.langs) {
		return nil
	}
	return t.langs[i]
}

// Imported returns how many files ImportFile has consumed.
func (t *Table) Imported() int {
	return t.imported
}

// ByName returns the language with exactly this name and its index.
func (t *Table) ByName(name string) (*UserLang, int) {
	for i, l := range t.langs {
		if l.Name == name {
			return l, i
		}
	}
	return nil, -1
}

// ByExt returns the first language listing ext among its space-separated
// extensions, compared case-insensitively.
func (t *Table) ByExt(ext string) *UserLang {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return nil
	}
	for _, l := range t.langs {
		for _, e := range strings.Fields(l.Ext) {
			if strings.EqualFold(e, ext) {
				return l
			}
		}
	}
	return nil
}

// Import reads every UserLang element under root. A record missing its name,
// its ext or one of its sections is skipped whole and reported in the
// returned error; the others are kept. Reading stops once the table is full.
func (t *Table) Import(root *etree.Element) (int, error) {
	var errs error
	added := 0
	for _, node := range docstore.Children(root, "UserLang") {
		if len(t.langs) >= t.max {
			errs = multierr.Append(errs, ErrAtCapacity)
			break
		}
		l, err := t.parse(node)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		t.langs = append(t.langs, l)
		added++
	}
	return added, errs
}

func (t *Table) parse(node *etree.Element) (*UserLang, error) {
	name, ok := docstore.Attr(node, "name")
	if !ok || name == "" {
		return nil, &ImportError{Section: "name"}
	}
	ext, ok := docstore.Attr(node, "ext")
	if !ok {
		return nil, &ImportError{Lang: name, Section: "ext"}
	}
	l := NewUserLang(name, ext)
	l.Version, _ = docstore.Attr(node, "udlVersion")

	settings := docstore.FirstChild(node, "Settings")
	if settings == nil {
		return nil, &ImportError{Lang: name, Section: "Settings"}
	}
	l.readSettings(settings)

	lists := docstore.FirstChild(node, "KeywordLists")
	if lists == nil {
		return nil, &ImportError{Lang: name, Section: "KeywordLists"}
	}
	l.readKeywords(lists)

	styles := docstore.FirstChild(node, "Styles")
	if styles == nil {
		return nil, &ImportError{Lang: name, Section: "Styles"}
	}
	l.readStyles(styles)

	for _, step := range t.migrator.Migrate(l, node) {
		logger.Debug("user language migrated", "lang", name, "step", step)
	}
	l.fillDefaultStyles()
	return l, nil
}

// ImportFile imports the languages of one user-defined language file.
func (t *Table) ImportFile(path string) (int, error) {
	if t.imported >= t.maxImported {
		return 0, ErrAtCapacity
	}
	doc, err := docstore.Open(path)
	if err != nil {
		return 0, err
	}
	root := doc.Root(docstore.RootName)
	if root == nil {
		return 0, fmt.Errorf("%s: %w", path, docstore.ErrNoRoot)
	}
	t.imported++
	n, err := t.Import(root)
	logger.Info("user language file imported", "path", path, "langs", n)
	return n, err
}

// ExportFile writes language i alone to a new document at path.
func (t *Table) ExportFile(i int, path string) error {
	l := t.Get(i)
	if l == nil {
		return ErrNoSuchLang
	}
	doc := docstore.New(path, docstore.RootName)
	l.insert(doc.Root(docstore.RootName))
	return doc.Save()
}

// Write replaces every UserLang element under root with the current table.
func (t *Table) Write(root *etree.Element) {
	for _, old := range docstore.Children(root, "UserLang") {
		docstore.RemoveChild(root, old)
	}
	for _, l := range t.langs {
		l.insert(root)
	}
}

// Add appends a copy of lang under newName.
func (t *Table) Add(lang *UserLang, newName string) (int, error) {
	if newName == "" {
		return -1, &ImportError{Section: "name"}
	}
	if l, _ := t.ByName(newName); l != nil {
		return -1, fmt.Errorf("%q: %w", newName, ErrDuplicateName)
	}
	if len(t.langs) >= t.max {
		return -1, ErrAtCapacity
	}
	var c *UserLang
	if lang == nil {
		c = NewUserLang(newName, "")
		c.fillDefaultStyles()
	} else {
		c = lang.Clone()
		c.Name = newName
	}
	t.langs = append(t.langs, c)
	return len(t.langs) - 1, nil
}

// Remove drops language i; later languages move down one index.
func (t *Table) Remove(i int) error {
	if i < 0 || i >= len(t.langs) {
		return ErrNoSuchLang
	}
	t.langs = append(t.langs[:i], t.langs[i+1:]...)
	return nil
}
