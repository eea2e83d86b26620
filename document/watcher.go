package document

// Watcher receives notifications around document mutations.
//
// BeforeChange fires before the structural edit lands, letting
// subscribers snapshot whatever pre-edit state they need. AfterInsert
// and AfterDelete fire once the edit has landed, carrying the exact
// affected region and the literal text involved (normalized to LF line
// endings). All three run synchronously on the editing goroutine, in
// subscription order.
type Watcher interface {
	BeforeChange(d *Document)
	AfterInsert(d *Document, r Region, text string)
	AfterDelete(d *Document, r Region, text string)
}

// WatcherFuncs adapts plain functions to the Watcher interface.
// Nil fields are skipped.
type WatcherFuncs struct {
	Before func(d *Document)
	Insert func(d *Document, r Region, text string)
	Delete func(d *Document, r Region, text string)
}

// BeforeChange implements Watcher.
func (w *WatcherFuncs) BeforeChange(d *Document) {
	if w.Before != nil {
		w.Before(d)
	}
}

// AfterInsert implements Watcher.
func (w *WatcherFuncs) AfterInsert(d *Document, r Region, text string) {
	if w.Insert != nil {
		w.Insert(d, r, text)
	}
}

// AfterDelete implements Watcher.
func (w *WatcherFuncs) AfterDelete(d *Document, r Region, text string) {
	if w.Delete != nil {
		w.Delete(d, r, text)
	}
}
