// Package history records inverse operations around document mutations
// and replays them for undo/redo.
//
// A Log subscribes to a document as a Watcher. Every insert or delete
// lands as a Record holding the affected region and literal text; the
// record's inverse is the exact opposite operation (insert <-> delete
// of the same text at the same position). Undo replays inverses through
// the ordinary document mutation path, so cursors, span maps, and
// analysis scheduling react to an undo exactly as they react to a
// normal edit.
//
//	log := history.NewLog(0)
//	doc.Watch(log)
//
//	doc.Insert(0, 0, "hello")
//	log.Undo(doc) // document is empty again
//	log.Redo(doc) // "hello" is back
//
// Records made while a document batch-edit scope is open coalesce into
// one undo unit. A merge window can additionally group rapid-fire edits
// (typing bursts) into single units; see SetMergeWindow.
//
// Log is confined to the editing goroutine along with the document it
// watches.
package history
