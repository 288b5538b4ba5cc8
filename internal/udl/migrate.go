package udl

import (
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/kobzarvs/nppcfg/internal/docstore"
)

// CurrentVersion is the udlVersion written on export.
const CurrentVersion = "2.1"

// Migration upgrades a freshly read language from one file layout to the
// next. node is the UserLang element it was read from.
type Migration struct {
	From        string
	To          string
	Description string
	Apply       func(l *UserLang, node *etree.Element)
}

// Migrator holds the upgrade chain, ordered by source version.
type Migrator struct {
	migrations []Migration
	current    string
}

// NewMigrator returns an empty chain that upgrades documents to current.
func NewMigrator(current string) *Migrator {
	return &Migrator{current: current}
}

// Register adds a migration to the chain.
func (m *Migrator) Register(mig Migration) {
	m.migrations = append(m.migrations, mig)
	sort.SliceStable(m.migrations, func(i, j int) bool {
		return m.migrations[i].From < m.migrations[j].From
	})
}

// Migrate applies every step from l.Version up to the current layout and
// returns the descriptions of the steps taken.
func (m *Migrator) Migrate(l *UserLang, node *etree.Element) []string {
	var applied []string
	for _, mig := range m.migrations {
		if l.Version == m.current {
			break
		}
		if mig.From != l.Version {
			continue
		}
		mig.Apply(l, node)
		l.Version = mig.To
		applied = append(applied, mig.Description)
	}
	return applied
}

var defaultMigrator = func() *Migrator {
	m := NewMigrator(CurrentVersion)
	m.Register(Migration{
		From:        "",
		To:          "2.0",
		Description: "unversioned keyword layout",
		Apply:       legacyKeywordLayout,
	})
	m.Register(Migration{
		From:        "2.0",
		To:          "2.1",
		Description: "no layout change",
		Apply:       func(*UserLang, *etree.Element) {},
	})
	return m
}()

func legacyKeywordLayout(l *UserLang, node *etree.Element) {
	if d := l.Keywords[KwDelimiters]; d != "" {
		l.Keywords[KwDelimiters] = packDelimiters(d)
	}
	prefix := docstore.FirstChild(docstore.FirstChild(node, "Settings"), "Prefix")
	for i, name := range legacyPrefixNames {
		if v, ok := docstore.AttrBool(prefix, name); ok {
			l.Prefix[i] = v
		}
	}
}

// packDelimiters turns the old six-character open/escape/close string into
// the numbered token list. A '0' character means no delimiter.
func packDelimiters(old string) string {
	var k [6]string
	for i := range k {
		if i < len(old) && old[i] != '0' {
			k[i] = string(old[i])
		}
	}
	return "00" + k[0] + " 01 02" + k[3] + " 03" + k[1] + " 04 05" + k[4] +
		" 06" + k[2] + " 07 08" + k[5] +
		" 09 10 11 12 13 14 15 16 17 18 19 20 21 22 23"
}

// packComments renumbers the old comment tokens: 0 is the line comment
// marker, 1 and 2 open and close block comments.
func packComments(old string) string {
	var b strings.Builder
	for _, tok := range strings.Split(old, " ") {
		if tok == "" {
			continue
		}
		switch tok[0] {
		case '0':
			b.WriteString(" 0" + tok)
		case '1':
			b.WriteString(" 03" + tok[1:])
		case '2':
			b.WriteString(" 04" + tok[1:])
		default:
			b.WriteString(" " + tok)
		}
	}
	b.WriteString(" 01 02")
	return strings.TrimPrefix(b.String(), " ")
}
