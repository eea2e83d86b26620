package main

import (
	"fmt"
	"os"
	"unicode/utf16"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glint/document"
	"github.com/dshills/glint/editor"
	"github.com/dshills/glint/span"
	"github.com/dshills/glint/theme"
)

// screen renders the editor to a tcell terminal and drives the event
// loop. The loop is the editing goroutine: every mutation and every
// analysis completion is applied from it.
type screen struct {
	ed   *editor.Editor
	tc   tcell.Screen
	th   *theme.Theme
	file string

	topLine int
	status  string

	// anchor is the fixed end of a shift-selection in progress.
	anchor document.Pos
	shift  bool
}

func newScreen(ed *editor.Editor, th *theme.Theme, file string) (*screen, error) {
	tc, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := tc.Init(); err != nil {
		return nil, err
	}
	s := &screen{ed: ed, tc: tc, th: th, file: file}
	ed.SetCompletionNotifier(func(prefix string) {
		s.status = "completing: " + prefix
	})
	return s, nil
}

func (s *screen) setTheme(th *theme.Theme) {
	s.th = th
}

// loop runs until the user quits. Terminal events and analysis
// completions are multiplexed through one select so highlighting
// updates land between keystrokes without extra synchronization.
func (s *screen) loop() error {
	defer s.tc.Fini()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go s.tc.ChannelEvents(events, quit)
	defer close(quit)

	s.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			done, err := s.handle(ev)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case comp := <-s.ed.Completions():
			s.ed.Apply(comp)
		}
		s.draw()
	}
}

func (s *screen) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.tc.Sync()
	case *tcell.EventKey:
		return s.handleKey(ev)
	}
	return false, nil
}

func (s *screen) handleKey(ev *tcell.EventKey) (bool, error) {
	s.status = ""
	cur := s.ed.Cursor()
	s.shift = ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return true, nil
	case tcell.KeyCtrlS:
		s.save()
	case tcell.KeyCtrlZ:
		if ok, err := s.ed.Undo(); err != nil {
			return false, err
		} else if !ok {
			s.status = "nothing to undo"
		}
	case tcell.KeyCtrlY:
		if ok, err := s.ed.Redo(); err != nil {
			return false, err
		} else if !ok {
			s.status = "nothing to redo"
		}
	case tcell.KeyUp:
		s.move(cur.MoveUp)
	case tcell.KeyDown:
		s.move(cur.MoveDown)
	case tcell.KeyLeft:
		s.move(cur.MoveLeft)
	case tcell.KeyRight:
		s.move(cur.MoveRight)
	case tcell.KeyHome:
		s.move(cur.Home)
	case tcell.KeyEnd:
		s.move(cur.End)
	case tcell.KeyEnter:
		_, err := s.ed.InsertText("\n")
		return false, err
	case tcell.KeyTab:
		_, err := s.ed.InsertText("\t")
		return false, err
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return false, s.ed.Backspace()
	case tcell.KeyRune:
		_, err := s.ed.InsertText(string(ev.Rune()))
		return false, err
	}
	return false, nil
}

// move performs one cursor movement, extending the selection instead
// when shift is held: the anchor stays put and only the active end
// steps.
func (s *screen) move(step func()) {
	cur := s.ed.Cursor()
	if !s.shift {
		step()
		return
	}
	if !cur.IsSelected() {
		s.anchor = cur.Right()
	} else {
		// Collapse to the moving end so the step leaves from it.
		active := cur.Right()
		if active == s.anchor {
			active = cur.Left()
		}
		_ = cur.Set(active.Line, active.Col)
	}
	step()
	r := document.NewRegion(s.anchor, cur.Right())
	_ = cur.SetRegion(r.Start.Line, r.Start.Col, r.End.Line, r.End.Col)
}

func (s *screen) save() {
	if s.file == "" {
		s.status = "no file name"
		return
	}
	if err := os.WriteFile(s.file, []byte(s.ed.Text()), 0o644); err != nil {
		s.status = "save failed: " + err.Error()
		return
	}
	s.status = "saved " + s.file
}

func (s *screen) draw() {
	width, height := s.tc.Size()
	if height < 2 {
		return
	}
	bodyHeight := height - 1
	s.scrollTo(bodyHeight)

	bg := cellColor(s.th.Background)
	base := tcell.StyleDefault.Background(bg).Foreground(cellColor(s.th.Foreground))
	s.tc.Fill(' ', base)

	gutter := gutterWidth(s.ed.LineCount())
	sel := s.ed.Cursor().Region()
	blk, hasBlock := s.ed.CurrentBlock()

	for row := 0; row < bodyHeight; row++ {
		line := s.topLine + row
		if line >= s.ed.LineCount() {
			s.tc.SetContent(0, row, '~', nil, base.Dim(true))
			continue
		}
		s.drawGutter(row, line, gutter, base, hasBlock && blk.ContainsLine(line))
		s.drawLine(row, line, gutter, width, sel)
	}
	s.drawStatus(height-1, width, base)
	s.showCursor(gutter, bodyHeight)
	s.tc.Show()
}

// scrollTo keeps the cursor's line inside the visible body.
func (s *screen) scrollTo(bodyHeight int) {
	line := s.ed.Cursor().Right().Line
	if line < s.topLine {
		s.topLine = line
	}
	if line >= s.topLine+bodyHeight {
		s.topLine = line - bodyHeight + 1
	}
}

// drawGutter writes the line number, with a guide mark on lines inside
// the cursor's block.
func (s *screen) drawGutter(row, line, gutter int, base tcell.Style, inBlock bool) {
	num := fmt.Sprintf("%*d ", gutter-2, line+1)
	st := base.Dim(true)
	for i, r := range num {
		s.tc.SetContent(i, row, r, nil, st)
	}
	if inBlock {
		s.tc.SetContent(gutter-1, row, '│', nil, base.Foreground(cellColor(s.th.BlockLine)))
	}
}

// drawLine renders one document line. Each rune advances the UTF-16
// column by its encoded length so span boundaries land where the
// analyzer placed them. Rendering assumes one terminal cell per rune,
// which is good enough for a demo.
func (s *screen) drawLine(row, line, gutter, width int, sel document.Region) {
	text, err := s.ed.Line(line)
	if err != nil {
		return
	}
	spans := s.ed.Spans(line)

	col, x := 0, gutter
	for _, r := range text {
		if x >= width {
			break
		}
		st := s.styleAt(spans, col)
		if selected(sel, line, col) {
			st = st.Background(cellColor(s.th.Selection))
		}
		s.tc.SetContent(x, row, r, nil, st)
		col += utf16.RuneLen(r)
		x++
	}
	// An empty selected stretch at end of line, as in a multi-line
	// selection, still gets one highlighted cell.
	if selected(sel, line, col) && x < width {
		s.tc.SetContent(x, row, ' ', nil, s.baseStyle().Background(cellColor(s.th.Selection)))
	}
}

func (s *screen) styleAt(spans []span.Span, col int) tcell.Style {
	st := s.baseStyle()
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].Col <= col {
			appearance := s.th.StyleFor(spans[i].Style)
			st = st.Foreground(cellColor(appearance.Foreground)).
				Bold(appearance.Bold).
				Italic(appearance.Italic).
				Underline(appearance.Underline || spans[i].Underline)
			break
		}
	}
	return st
}

func (s *screen) baseStyle() tcell.Style {
	return tcell.StyleDefault.
		Background(cellColor(s.th.Background)).
		Foreground(cellColor(s.th.Foreground))
}

func (s *screen) drawStatus(row, width int, base tcell.Style) {
	name := s.file
	if name == "" {
		name = "[no name]"
	}
	pos := s.ed.Cursor().Right()
	left := fmt.Sprintf(" %s  %d:%d", name, pos.Line+1, pos.Col)
	if named, ok := s.ed.Language().(interface{ Name() string }); ok {
		left += "  " + named.Name()
	}
	if s.ed.CanUndo() {
		left += "  [+]"
	}
	if s.status != "" {
		left += "  " + s.status
	}
	st := base.Reverse(true)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(left) {
			r = rune(left[x])
		}
		s.tc.SetContent(x, row, r, nil, st)
	}
}

func (s *screen) showCursor(gutter, bodyHeight int) {
	pos := s.ed.Cursor().Right()
	row := pos.Line - s.topLine
	if row < 0 || row >= bodyHeight {
		s.tc.HideCursor()
		return
	}
	// Cell position of a UTF-16 column: count runes up to it.
	text, err := s.ed.Line(pos.Line)
	if err != nil {
		s.tc.HideCursor()
		return
	}
	col, x := 0, 0
	for _, r := range text {
		if col >= pos.Col {
			break
		}
		col += utf16.RuneLen(r)
		x++
	}
	s.tc.ShowCursor(gutter+x, row)
}

func selected(sel document.Region, line, col int) bool {
	if sel.Start == sel.End {
		return false
	}
	p := document.Pos{Line: line, Col: col}
	return !p.Before(sel.Start) && p.Before(sel.End)
}

func gutterWidth(lineCount int) int {
	w := 2
	for n := lineCount; n > 0; n /= 10 {
		w++
	}
	if w < 4 {
		w = 4
	}
	return w
}

func cellColor(c theme.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
