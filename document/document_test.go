package document

import (
	"errors"
	"testing"
)

func TestNewDocumentEmpty(t *testing.T) {
	d := New("")

	if d.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", d.LineCount())
	}

	if d.Text() != "" {
		t.Errorf("expected empty text, got %q", d.Text())
	}
}

func TestNewDocumentMultiline(t *testing.T) {
	d := New("line1\nline2\nline3")

	if d.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", d.LineCount())
	}

	for i, want := range []string{"line1", "line2", "line3"} {
		got, err := d.Line(i)
		if err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestNewDocumentNormalizesLineEndings(t *testing.T) {
	d := New("a\r\nb\rc\nd")

	if d.LineCount() != 4 {
		t.Errorf("expected 4 lines, got %d", d.LineCount())
	}

	if d.Text() != "a\nb\nc\nd" {
		t.Errorf("expected normalized text, got %q", d.Text())
	}
}

func TestInsertSingleLine(t *testing.T) {
	d := New("ab")

	r, err := d.Insert(0, 1, "X")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if d.Text() != "aXb" {
		t.Errorf("expected \"aXb\", got %q", d.Text())
	}

	want := Region{Start: Pos{0, 1}, End: Pos{0, 2}}
	if r != want {
		t.Errorf("expected region %s, got %s", want, r)
	}
}

func TestInsertMultiLine(t *testing.T) {
	d := New("hello world")

	r, err := d.Insert(0, 5, "X\nYY\nZ")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if d.Text() != "helloX\nYY\nZ world" {
		t.Errorf("unexpected text %q", d.Text())
	}

	if d.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", d.LineCount())
	}

	want := Region{Start: Pos{0, 5}, End: Pos{2, 1}}
	if r != want {
		t.Errorf("expected region %s, got %s", want, r)
	}
}

func TestInsertNewlineAtLineEnd(t *testing.T) {
	d := New("ab")

	if _, err := d.Insert(0, 2, "\n"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if d.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", d.LineCount())
	}

	line1, _ := d.Line(1)
	if line1 != "" {
		t.Errorf("expected empty second line, got %q", line1)
	}
}

func TestInsertEmptyTextNoOp(t *testing.T) {
	d := New("ab")
	v := d.Version()

	r, err := d.Insert(0, 1, "")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if !r.IsEmpty() {
		t.Errorf("expected empty region, got %s", r)
	}

	if d.Version() != v {
		t.Error("empty insert should not bump the version")
	}
}

func TestInsertOutOfRange(t *testing.T) {
	d := New("ab")

	if _, err := d.Insert(1, 0, "X"); !errors.Is(err, ErrPosOutOfRange) {
		t.Errorf("expected ErrPosOutOfRange, got %v", err)
	}

	if _, err := d.Insert(0, 3, "X"); !errors.Is(err, ErrPosOutOfRange) {
		t.Errorf("expected ErrPosOutOfRange, got %v", err)
	}

	if _, err := d.Insert(-1, 0, "X"); !errors.Is(err, ErrPosOutOfRange) {
		t.Errorf("expected ErrPosOutOfRange, got %v", err)
	}
}

func TestDeleteSingleLine(t *testing.T) {
	d := New("hello world")

	deleted, err := d.Delete(0, 5, 0, 11)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if deleted != " world" {
		t.Errorf("expected deleted \" world\", got %q", deleted)
	}

	if d.Text() != "hello" {
		t.Errorf("expected \"hello\", got %q", d.Text())
	}
}

func TestDeleteMultiLineMergesLines(t *testing.T) {
	d := New("if(x){\n}")

	deleted, err := d.Delete(0, 6, 1, 0)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if deleted != "\n" {
		t.Errorf("expected deleted newline, got %q", deleted)
	}

	if d.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", d.LineCount())
	}

	if d.Text() != "if(x){}" {
		t.Errorf("expected \"if(x){}\", got %q", d.Text())
	}
}

func TestDeleteSpanningLines(t *testing.T) {
	d := New("aaa\nbbb\nccc")

	deleted, err := d.Delete(0, 1, 2, 2)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if deleted != "aa\nbbb\ncc" {
		t.Errorf("unexpected deleted text %q", deleted)
	}

	if d.Text() != "ac" {
		t.Errorf("expected \"ac\", got %q", d.Text())
	}
}

func TestDeleteEmptyRegionNoOp(t *testing.T) {
	d := New("ab")
	v := d.Version()

	deleted, err := d.Delete(0, 1, 0, 1)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if deleted != "" {
		t.Errorf("expected empty deletion, got %q", deleted)
	}

	if d.Version() != v {
		t.Error("empty delete should not bump the version")
	}
}

func TestDeleteInvalidRange(t *testing.T) {
	d := New("abc")

	if _, err := d.Delete(0, 2, 0, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestReplace(t *testing.T) {
	d := New("hello world")

	r, err := d.Replace(0, 0, 0, 5, "goodbye")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if d.Text() != "goodbye world" {
		t.Errorf("expected \"goodbye world\", got %q", d.Text())
	}

	want := Region{Start: Pos{0, 0}, End: Pos{0, 7}}
	if r != want {
		t.Errorf("expected region %s, got %s", want, r)
	}
}

func TestCharAt(t *testing.T) {
	d := New("ab\ncd")

	ch, err := d.CharAt(1, 1)
	if err != nil {
		t.Fatalf("charAt failed: %v", err)
	}
	if ch != 'd' {
		t.Errorf("expected 'd', got %q", rune(ch))
	}

	// End of line is a valid cursor position but not a readable char.
	if _, err := d.CharAt(0, 2); !errors.Is(err, ErrPosOutOfRange) {
		t.Errorf("expected ErrPosOutOfRange, got %v", err)
	}
}

func TestSubContent(t *testing.T) {
	d := New("aaa\nbbb\nccc")

	got, err := d.SubContent(0, 1, 2, 2)
	if err != nil {
		t.Fatalf("subContent failed: %v", err)
	}

	if got != "aa\nbbb\ncc" {
		t.Errorf("unexpected subContent %q", got)
	}
}

func TestLineLength(t *testing.T) {
	d := New("ab\n")

	n, err := d.LineLength(0)
	if err != nil {
		t.Fatalf("lineLength failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected length 2, got %d", n)
	}

	if _, err := d.LineLength(5); !errors.Is(err, ErrPosOutOfRange) {
		t.Errorf("expected ErrPosOutOfRange, got %v", err)
	}
}

func TestSurrogatePairColumns(t *testing.T) {
	d := New("a\U0001F600b") // emoji takes two UTF-16 columns

	n, err := d.LineLength(0)
	if err != nil {
		t.Fatalf("lineLength failed: %v", err)
	}
	if n != 4 {
		t.Errorf("expected length 4, got %d", n)
	}

	hi, _ := d.CharAt(0, 1)
	lo, _ := d.CharAt(0, 2)
	if !IsHighSurrogate(hi) || !IsLowSurrogate(lo) {
		t.Errorf("expected surrogate pair at cols 1-2, got %#x %#x", hi, lo)
	}

	if UTF16Len("a\U0001F600b") != 4 {
		t.Errorf("expected UTF16Len 4, got %d", UTF16Len("a\U0001F600b"))
	}
}

func TestWatcherNotificationOrder(t *testing.T) {
	d := New("ab")

	var events []string
	d.Watch(&WatcherFuncs{
		Before: func(doc *Document) {
			// The mutation has not landed yet.
			if doc.Text() != "ab" {
				t.Errorf("before: expected unchanged text, got %q", doc.Text())
			}
			events = append(events, "before")
		},
		Insert: func(doc *Document, r Region, text string) {
			if text != "X" {
				t.Errorf("after insert: expected text \"X\", got %q", text)
			}
			if r.Start != (Pos{0, 1}) || r.End != (Pos{0, 2}) {
				t.Errorf("after insert: unexpected region %s", r)
			}
			events = append(events, "insert")
		},
	})

	if _, err := d.Insert(0, 1, "X"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if len(events) != 2 || events[0] != "before" || events[1] != "insert" {
		t.Errorf("unexpected event order %v", events)
	}
}

func TestWatcherDeleteNotification(t *testing.T) {
	d := New("hello")

	var gotRegion Region
	var gotText string
	d.Watch(&WatcherFuncs{
		Delete: func(doc *Document, r Region, text string) {
			gotRegion = r
			gotText = text
		},
	})

	if _, err := d.Delete(0, 1, 0, 3); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if gotText != "el" {
		t.Errorf("expected deleted \"el\", got %q", gotText)
	}

	want := Region{Start: Pos{0, 1}, End: Pos{0, 3}}
	if gotRegion != want {
		t.Errorf("expected region %s, got %s", want, gotRegion)
	}
}

func TestUnwatch(t *testing.T) {
	d := New("ab")

	calls := 0
	w := &WatcherFuncs{Insert: func(*Document, Region, string) { calls++ }}
	d.Watch(w)

	if _, err := d.Insert(0, 0, "x"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	d.Unwatch(w)
	if _, err := d.Insert(0, 0, "y"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected 1 call after unwatch, got %d", calls)
	}
}

func TestBatchEditBalance(t *testing.T) {
	d := New("")

	if err := d.EndBatchEdit(); !errors.Is(err, ErrBatchUnbalanced) {
		t.Errorf("expected ErrBatchUnbalanced, got %v", err)
	}

	d.BeginBatchEdit()
	d.BeginBatchEdit()
	if !d.InBatchEdit() {
		t.Error("expected InBatchEdit true")
	}
	if err := d.EndBatchEdit(); err != nil {
		t.Errorf("inner end failed: %v", err)
	}
	if !d.InBatchEdit() {
		t.Error("expected InBatchEdit true after inner end")
	}
	if err := d.EndBatchEdit(); err != nil {
		t.Errorf("outer end failed: %v", err)
	}
	if d.InBatchEdit() {
		t.Error("expected InBatchEdit false")
	}
}

func TestBatchIDDistinguishesScopes(t *testing.T) {
	d := New("")

	d.BeginBatchEdit()
	first := d.BatchID()
	_ = d.EndBatchEdit()

	d.BeginBatchEdit()
	second := d.BatchID()
	_ = d.EndBatchEdit()

	if first == second {
		t.Errorf("expected distinct batch IDs, got %d twice", first)
	}
}

func TestVersionBumpsOnMutation(t *testing.T) {
	d := New("ab")
	v := d.Version()

	if _, err := d.Insert(0, 0, "x"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if d.Version() != v+1 {
		t.Errorf("expected version %d, got %d", v+1, d.Version())
	}

	if _, err := d.Delete(0, 0, 0, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if d.Version() != v+2 {
		t.Errorf("expected version %d, got %d", v+2, d.Version())
	}
}

func TestSnapshotIsolation(t *testing.T) {
	d := New("aaa\nbbb")
	snap := d.Snapshot()

	if _, err := d.Insert(0, 0, "X\nY"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := d.Delete(0, 0, 0, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if snap.Text() != "aaa\nbbb" {
		t.Errorf("snapshot changed after edits: %q", snap.Text())
	}

	if snap.LineCount() != 2 {
		t.Errorf("expected snapshot line count 2, got %d", snap.LineCount())
	}

	if snap.Line(1) != "bbb" {
		t.Errorf("expected snapshot line \"bbb\", got %q", snap.Line(1))
	}

	if snap.Version() == d.Version() {
		t.Error("snapshot version should lag the mutated document")
	}
}

func TestIdentityDiffersBetweenDocuments(t *testing.T) {
	a := New("x")
	b := New("x")

	if a.Identity() == b.Identity() {
		t.Error("expected distinct identities for distinct documents")
	}
}
