// Package docstore is the XML document store the settings engine reads from
// and writes back to. Nodes are plain etree elements; the helpers here give
// typed attribute access where "absent" is distinct from a zero value.
package docstore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"
)

// RootName is the top-level element of every settings document.
const RootName = "NotepadPlus"

var (
	// ErrNotExist indicates the document file does not exist.
	ErrNotExist = errors.New("document does not exist")

	// ErrNoRoot indicates the document has no expected root element.
	ErrNoRoot = errors.New("document root missing")
)

// Document is one parsed settings file.
type Document struct {
	path string
	doc  *etree.Document
}

// New returns an empty document with a single root element.
func New(path, rootName string) *Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	if rootName != "" {
		doc.CreateElement(rootName)
	}
	return &Document{path: path, doc: doc}
}

// Open parses the document at path.
func Open(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, err
	}
	return &Document{path: path, doc: doc}, nil
}

// OpenOrCreate parses the document at path, or returns a new document with
// rootName when the file does not exist yet.
func OpenOrCreate(path, rootName string) (*Document, error) {
	d, err := Open(path)
	if errors.Is(err, ErrNotExist) {
		return New(path, rootName), nil
	}
	return d, err
}

// Parse reads a document from r. The returned document saves to path.
func Parse(path string, r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	return &Document{path: path, doc: doc}, nil
}

// ParseString is Parse for in-memory content.
func ParseString(path, s string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return nil, err
	}
	return &Document{path: path, doc: doc}, nil
}

// Path returns the file the document reads and writes.
func (d *Document) Path() string {
	return d.path
}

// Root returns the top-level element named name, or nil.
func (d *Document) Root(name string) *etree.Element {
	return d.doc.SelectElement(name)
}

// EnsureRoot returns the top-level element named name, creating it if needed.
func (d *Document) EnsureRoot(name string) *etree.Element {
	if r := d.Root(name); r != nil {
		return r
	}
	return d.doc.CreateElement(name)
}

// Save writes the document to its path, creating parent directories.
func (d *Document) Save() error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return err
	}
	d.doc.Indent(4)
	return d.doc.WriteToFile(d.path)
}

// SaveAs changes the document path and saves it.
func (d *Document) SaveAs(path string) error {
	d.path = path
	return d.Save()
}

// String serializes the document.
func (d *Document) String() string {
	s, _ := d.doc.WriteToString()
	return s
}

// FirstChild returns the first child element of node with the given tag.
func FirstChild(node *etree.Element, name string) *etree.Element {
	if node == nil {
		return nil
	}
	return node.SelectElement(name)
}

// Children returns child elements of node with the given tag in document order.
func Children(node *etree.Element, name string) []*etree.Element {
	if node == nil {
		return nil
	}
	return node.SelectElements(name)
}

// Attr returns the attribute value and whether it is present.
func Attr(node *etree.Element, name string) (string, bool) {
	if node == nil {
		return "", false
	}
	a := node.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// AttrInt returns a decimal attribute. A present but non-numeric value is
// reported as absent.
func AttrInt(node *etree.Element, name string) (int, bool) {
	s, ok := Attr(node, name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AttrBool reads a yes/no attribute. Any value other than "yes" is false.
func AttrBool(node *etree.Element, name string) (bool, bool) {
	s, ok := Attr(node, name)
	if !ok {
		return false, false
	}
	return s == "yes", true
}

// SetAttr sets or replaces an attribute.
func SetAttr(node *etree.Element, name, value string) {
	node.CreateAttr(name, value)
}

// SetAttrInt sets an attribute to the decimal value.
func SetAttrInt(node *etree.Element, name string, value int) {
	node.CreateAttr(name, strconv.Itoa(value))
}

// SetAttrBool writes the literal "yes" or "no".
func SetAttrBool(node *etree.Element, name string, value bool) {
	node.CreateAttr(name, YesNo(value))
}

// YesNo is the boolean vocabulary of every settings file.
func YesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// AppendChild adds an empty element named name.
func AppendChild(node *etree.Element, name string) *etree.Element {
	return node.CreateElement(name)
}

// RemoveChild detaches child from node.
func RemoveChild(node, child *etree.Element) {
	if node == nil || child == nil {
		return
	}
	node.RemoveChild(child)
}

// Text returns the element's leading text content.
func Text(node *etree.Element) string {
	if node == nil {
		return ""
	}
	return node.Text()
}

// SetText replaces the element text.
func SetText(node *etree.Element, s string) {
	node.SetText(s)
}

// ReplaceSection drops every child of root named name and appends a fresh,
// empty one.
func ReplaceSection(root *etree.Element, name string) *etree.Element {
	for _, old := range root.SelectElements(name) {
		root.RemoveChild(old)
	}
	return root.CreateElement(name)
}

// CopyIfMissing seeds dst from src when dst does not exist. A missing src is
// not an error.
func CopyIfMissing(dst, src string) error {
	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	err := CopyFile(dst, src)
	if errors.Is(err, ErrNotExist) {
		return nil
	}
	return err
}

// CopyFile overwrites dst with the contents of src.
func CopyFile(dst, src string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotExist
		}
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
