// Package document provides the mutable, line-oriented text buffer at the
// core of the editor.
//
// A Document stores its text as a sequence of lines without trailing
// newlines and addresses characters by 0-indexed line and UTF-16 column.
// UTF-16 addressing keeps column arithmetic exact for characters outside
// the Basic Multilingual Plane (one such character occupies two columns)
// and matches the convention used by IME and LSP integrations.
//
// # Mutations
//
// All edits go through Insert, Delete, and Replace. Each mutation reports
// the affected region and the literal text involved, and notifies
// subscribed Watchers:
//
//	doc := document.New("hello\nworld")
//	r, err := doc.Insert(0, 5, ", there")
//	// r covers (0:5)-(0:12)
//
// Positions outside the addressable range and inverted ranges are
// rejected with sentinel errors; the document never clamps silently.
//
// # Batch edits
//
// BeginBatchEdit/EndBatchEdit scope multiple mutations into a single
// undo unit. Scopes nest; only the outermost pair delimits the unit.
// CloseBatchEdit-style cleanup is deferred via BatchScope:
//
//	done := doc.BatchScope()
//	defer done()
//	// ... several edits ...
//
// # Concurrency
//
// Document is confined to one goroutine (the editing goroutine).
// Background work reads an immutable Snapshot instead of the live
// document; see Snapshot.
package document
