// Package editor ties the editing core together: one document, its
// cursor, undo history, live highlighting state, and the background
// analysis pipeline behind a single facade.
//
// An Editor is confined to one goroutine, the editing goroutine. The
// only concurrent component is the analysis coordinator, which talks
// to the editor exclusively through snapshots going out and the
// Completions channel coming back.
package editor

import (
	"time"

	"github.com/dshills/glint/analysis"
	"github.com/dshills/glint/block"
	"github.com/dshills/glint/cursor"
	"github.com/dshills/glint/document"
	"github.com/dshills/glint/glog"
	"github.com/dshills/glint/history"
	"github.com/dshills/glint/language"
	"github.com/dshills/glint/span"
)

// Editor is the embedding surface for the editing core.
type Editor struct {
	doc   *document.Document
	cur   *cursor.Cursor
	hist  *history.Log
	lang  language.Language
	coord *analysis.Coordinator
	live  *analysis.Result

	log *glog.Logger

	tabWidth       int
	autoIndent     bool
	suppressSwitch int
	undoLimit      int
	mergeWindow    time.Duration
	debounce       time.Duration

	// current indexes the cursor's enclosing block in live.Blocks(),
	// -1 when the cursor is outside every block.
	current int

	onCursor func()
	notifier func(prefix string)
}

// Option configures an Editor.
type Option func(*Editor)

// WithLanguage sets the language support. The default is
// language.Empty.
func WithLanguage(lang language.Language) Option {
	return func(e *Editor) {
		if lang != nil {
			e.lang = lang
		}
	}
}

// WithLogger sets the editor's logger.
func WithLogger(log *glog.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithUndoLimit caps the number of undo units kept. Non-positive
// selects the history default.
func WithUndoLimit(n int) Option {
	return func(e *Editor) {
		e.undoLimit = n
	}
}

// WithMergeWindow groups edits recorded within d of each other into
// one undo unit.
func WithMergeWindow(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.mergeWindow = d
		}
	}
}

// WithDebounce sets the quiet period between the last edit and the
// start of a background analysis pass.
func WithDebounce(d time.Duration) Option {
	return func(e *Editor) {
		if d >= 0 {
			e.debounce = d
		}
	}
}

// WithTabWidth sets the column width of a tab stop, used when
// measuring and rendering indentation.
func WithTabWidth(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.tabWidth = n
		}
	}
}

// WithAutoIndent turns auto-indent after a line break on or off. It
// is on by default.
func WithAutoIndent(on bool) Option {
	return func(e *Editor) {
		e.autoIndent = on
	}
}

// WithSuppressSwitch overrides the analyzer-computed cap on the
// enclosing-block scan. Zero keeps the analyzer's value.
func WithSuppressSwitch(n int) Option {
	return func(e *Editor) {
		if n >= 0 {
			e.suppressSwitch = n
		}
	}
}

// New creates an editor holding text. The first analysis pass is
// scheduled immediately; until it lands every line carries one normal
// span.
func New(text string, opts ...Option) *Editor {
	e := &Editor{
		lang:       language.Empty{},
		log:        glog.Discard,
		tabWidth:   4,
		autoIndent: true,
		debounce:   analysis.DefaultDebounce,
		current:    -1,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.doc = document.New(text)
	e.cur = cursor.New(e.doc)
	e.hist = history.NewLog(e.undoLimit)
	if e.mergeWindow > 0 {
		e.hist.SetMergeWindow(e.mergeWindow)
	}
	e.coord = analysis.NewCoordinator(e.lang.Analyzer(),
		analysis.WithDebounce(e.debounce),
		analysis.WithLogger(e.log))
	e.live = blankResult(e.doc.LineCount())

	e.wire()
	e.coord.Invalidate(e.doc.Snapshot())
	return e
}

// wire subscribes the editor's components to the document. Order
// matters: history records the edit first, the live span map is
// patched second, the cursor follows third, and the analysis
// invalidation runs last so its snapshot captures the settled state.
func (e *Editor) wire() {
	e.doc.Watch(e.hist)
	e.doc.Watch(&document.WatcherFuncs{
		Insert: func(_ *document.Document, r document.Region, _ string) { e.patchInsert(r) },
		Delete: func(_ *document.Document, r document.Region, _ string) { e.patchDelete(r) },
	})
	e.doc.Watch(e.cur)
	e.doc.Watch(&document.WatcherFuncs{
		Insert: func(d *document.Document, _ document.Region, _ string) { e.coord.Invalidate(d.Snapshot()) },
		Delete: func(d *document.Document, _ document.Region, _ string) { e.coord.Invalidate(d.Snapshot()) },
	})
	e.cur.OnChange(func(*cursor.Cursor) { e.cursorMoved() })
}

// blankResult builds highlighting state for a document nothing has
// analyzed yet: one normal span per line, no blocks.
func blankResult(lineCount int) *analysis.Result {
	res := analysis.NewResult()
	res.Finalize(lineCount)
	return res
}

// Close stops the background analysis worker.
func (e *Editor) Close() error {
	return e.coord.Close()
}

// Document returns the underlying document. Mutating it directly
// bypasses typing conveniences such as auto-indent but stays fully
// tracked. The reference goes stale after SetText.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Cursor returns the editor's cursor for movement and selection. Its
// OnChange hook is owned by the editor; use OnCursorChange instead.
// The reference goes stale after SetText.
func (e *Editor) Cursor() *cursor.Cursor {
	return e.cur
}

// Language returns the active language support.
func (e *Editor) Language() language.Language {
	return e.lang
}

// Version returns the document's mutation counter.
func (e *Editor) Version() uint64 {
	return e.doc.Version()
}

// LineCount returns the number of lines, always at least 1.
func (e *Editor) LineCount() int {
	return e.doc.LineCount()
}

// LineLength returns the length of a line in UTF-16 units.
func (e *Editor) LineLength(line int) (int, error) {
	return e.doc.LineLength(line)
}

// Line returns the text of one line, without its line break.
func (e *Editor) Line(line int) (string, error) {
	return e.doc.Line(line)
}

// CharAt returns the UTF-16 unit at a position.
func (e *Editor) CharAt(line, col int) (uint16, error) {
	return e.doc.CharAt(line, col)
}

// Text returns the whole document joined with LF line breaks.
func (e *Editor) Text() string {
	return e.doc.Text()
}

// SubContent returns the text covered by a region.
func (e *Editor) SubContent(startLine, startCol, endLine, endCol int) (string, error) {
	return e.doc.SubContent(startLine, startCol, endLine, endCol)
}

// Spans returns the live styled runs of one line. The slice is shared
// with the editor; callers must not modify it.
func (e *Editor) Spans(line int) []span.Span {
	return e.live.Spans().Line(line)
}

// StyleAt returns the span covering a column of a line.
func (e *Editor) StyleAt(line, col int) (span.Span, bool) {
	return e.live.Spans().StyleAt(line, col)
}

// Blocks returns the live block index, sorted ascending by end line.
// The index is shared with the editor; callers must not modify it.
func (e *Editor) Blocks() block.Index {
	return e.live.Blocks()
}

// SetAutoIndent turns auto-indent after a line break on or off.
func (e *Editor) SetAutoIndent(on bool) {
	e.autoIndent = on
}

// AutoIndent reports whether auto-indent is on.
func (e *Editor) AutoIndent() bool {
	return e.autoIndent
}

// OnCursorChange registers fn to run after every cursor movement,
// including edit-driven adjustments. Only one hook is kept.
func (e *Editor) OnCursorChange(fn func()) {
	e.onCursor = fn
}

// SetCompletionNotifier registers fn to receive the word prefix
// ending at the cursor whenever typed text extends one. Only one
// notifier is kept; nil disables reporting.
func (e *Editor) SetCompletionNotifier(fn func(prefix string)) {
	e.notifier = fn
}

// SetText replaces the document wholesale. The editor gets a fresh
// document identity, the cursor returns to the origin, and undo
// history and highlighting state reset. In-flight analysis of the old
// document will be discarded by the identity check in Apply.
func (e *Editor) SetText(text string) {
	e.doc = document.New(text)
	e.cur = cursor.New(e.doc)
	e.hist.Clear()
	e.live = blankResult(e.doc.LineCount())
	e.current = -1

	e.wire()
	e.coord.Invalidate(e.doc.Snapshot())
}

// SetLanguage swaps language support and restarts the analysis
// pipeline. Completions returns a new channel after this call; hosts
// selecting on it must re-fetch. Live spans stay until the first pass
// of the new language lands.
func (e *Editor) SetLanguage(lang language.Language) {
	if lang == nil {
		lang = language.Empty{}
	}
	_ = e.coord.Close()
	e.lang = lang
	e.coord = analysis.NewCoordinator(lang.Analyzer(),
		analysis.WithDebounce(e.debounce),
		analysis.WithLogger(e.log))
	e.coord.Invalidate(e.doc.Snapshot())
}
