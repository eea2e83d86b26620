package history

import (
	"time"

	"github.com/dshills/glint/document"
)

// DefaultMaxEntries caps the undo stack when NewLog is given a
// non-positive limit.
const DefaultMaxEntries = 1000

// entry is one undo unit: a group of records that replay together.
type entry struct {
	records []Record
	batchID uint64 // document batch scope that produced the group, 0 if none
	stamp   time.Time
}

// Log keeps undo/redo stacks of recorded document operations. It
// implements document.Watcher; subscribe it to the document whose edits
// it should track.
type Log struct {
	undoStack []*entry
	redoStack []*entry

	enabled   bool
	replaying bool

	maxEntries  int
	mergeWindow time.Duration
	lastPush    time.Time

	now func() time.Time
}

// NewLog creates a log keeping at most maxEntries undo units. A
// non-positive limit selects DefaultMaxEntries.
func NewLog(maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Log{
		enabled:    true,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// SetMergeWindow groups edits recorded within d of each other into one
// undo unit, so a typing burst undoes as a chunk. Zero (the default)
// disables merging.
func (l *Log) SetMergeWindow(d time.Duration) {
	l.mergeWindow = d
}

// SetEnabled toggles collection. Disabling drops all recorded history.
func (l *Log) SetEnabled(enabled bool) {
	l.enabled = enabled
	if !enabled {
		l.Clear()
	}
}

// Enabled reports whether the log is collecting records.
func (l *Log) Enabled() bool {
	return l.enabled
}

// Clear removes all undo/redo history.
func (l *Log) Clear() {
	l.undoStack = nil
	l.redoStack = nil
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	return l.enabled && len(l.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	return l.enabled && len(l.redoStack) > 0
}

// UndoCount returns the number of undo units available.
func (l *Log) UndoCount() int {
	return len(l.undoStack)
}

// RedoCount returns the number of redo units available.
func (l *Log) RedoCount() int {
	return len(l.redoStack)
}

// PeekUndo returns a copy of the records in the next undo unit.
func (l *Log) PeekUndo() ([]Record, bool) {
	if len(l.undoStack) == 0 {
		return nil, false
	}
	top := l.undoStack[len(l.undoStack)-1]
	out := make([]Record, len(top.records))
	copy(out, top.records)
	return out, true
}

// Undo reverses the most recent undo unit by replaying record inverses,
// newest first, through the ordinary document mutation path. It returns
// false when there is nothing to undo.
func (l *Log) Undo(d *document.Document) (bool, error) {
	if !l.enabled || len(l.undoStack) == 0 {
		return false, nil
	}
	e := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]

	l.replaying = true
	defer func() { l.replaying = false }()

	for i := len(e.records) - 1; i >= 0; i-- {
		if err := e.records[i].Invert().apply(d); err != nil {
			// Restore the entry on failure.
			l.undoStack = append(l.undoStack, e)
			return false, err
		}
	}

	l.redoStack = append(l.redoStack, e)
	return true, nil
}

// Redo re-applies the most recently undone unit, oldest record first.
// It returns false when there is nothing to redo.
func (l *Log) Redo(d *document.Document) (bool, error) {
	if !l.enabled || len(l.redoStack) == 0 {
		return false, nil
	}
	e := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]

	l.replaying = true
	defer func() { l.replaying = false }()

	for _, rec := range e.records {
		if err := rec.apply(d); err != nil {
			// Restore the entry on failure.
			l.redoStack = append(l.redoStack, e)
			return false, err
		}
	}

	l.undoStack = append(l.undoStack, e)
	return true, nil
}

// BeforeChange implements document.Watcher.
func (l *Log) BeforeChange(*document.Document) {}

// AfterInsert implements document.Watcher.
func (l *Log) AfterInsert(d *document.Document, r document.Region, text string) {
	l.observe(d, Record{Kind: KindInsert, Region: r, Text: text})
}

// AfterDelete implements document.Watcher.
func (l *Log) AfterDelete(d *document.Document, r document.Region, text string) {
	l.observe(d, Record{Kind: KindDelete, Region: r, Text: text})
}

// observe files one record, grouping it with the top entry when the
// document is inside the same batch scope or the merge window is open.
func (l *Log) observe(d *document.Document, rec Record) {
	if !l.enabled || l.replaying {
		return
	}
	l.redoStack = nil

	if d.InBatchEdit() {
		id := d.BatchID()
		if top := l.top(); top != nil && top.batchID == id {
			top.records = append(top.records, rec)
			l.lastPush = l.now()
			return
		}
		l.push(&entry{records: []Record{rec}, batchID: id, stamp: l.now()})
		return
	}

	if l.mergeWindow > 0 {
		if top := l.top(); top != nil && top.batchID == 0 && l.now().Sub(l.lastPush) < l.mergeWindow {
			top.records = append(top.records, rec)
			l.lastPush = l.now()
			return
		}
	}

	l.push(&entry{records: []Record{rec}, stamp: l.now()})
}

func (l *Log) top() *entry {
	if len(l.undoStack) == 0 {
		return nil
	}
	return l.undoStack[len(l.undoStack)-1]
}

func (l *Log) push(e *entry) {
	l.undoStack = append(l.undoStack, e)
	l.lastPush = l.now()

	if len(l.undoStack) > l.maxEntries {
		excess := len(l.undoStack) - l.maxEntries
		l.undoStack = l.undoStack[excess:]
	}
}
