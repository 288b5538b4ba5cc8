package shortcut

import (
	"errors"
	"fmt"
)

var (
	// ErrAtCapacity indicates a bounded table has no room for another entry.
	ErrAtCapacity = errors.New("shortcut table at capacity")

	// ErrNotContiguous indicates a command id reappears after another id in
	// the static editor-command table.
	ErrNotContiguous = errors.New("editor command entries are not contiguous")

	// ErrNoSuchEntry indicates an index or id outside the table.
	ErrNoSuchEntry = errors.New("no such shortcut entry")
)

// GroupingError reports where the static editor-command table breaks the
// contiguous-run rule.
type GroupingError struct {
	// Index is the position in the static table.
	Index int
	// CommandID is the engine command id that reappeared.
	CommandID int
	// FirstRun is the position where the id's first run started.
	FirstRun int
}

func (e *GroupingError) Error() string {
	return fmt.Sprintf("editor command %d at entry %d continues a run that began at entry %d", e.CommandID, e.Index, e.FirstRun)
}

func (e *GroupingError) Unwrap() error {
	return ErrNotContiguous
}
