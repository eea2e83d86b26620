// Package lualang hosts language support written as Lua scripts, so
// editors can ship highlighting for a new language without recompiling.
//
// A script defines a global analyze function and may define the
// optional hooks:
//
//	function analyze(lines)
//	  -- lines is a 1-based array of the document's lines.
//	  -- Returns a table with:
//	  --   spans  = array of { line = L, col = C, style = "keyword" }
//	  --   blocks = array of { start_line = L, start_col = C,
//	  --                       end_line = L2, end_col = C2 }
//	  --   suppress_switch = N  (optional)
//	  -- Lines and columns are 1-based; columns count UTF-16 units.
//	end
//
//	function is_autocomplete_char(c) ... end  -- optional
//	function indent_advance(line) ... end     -- optional
//	function format(text) ... end             -- optional
//	use_tab = true                            -- optional
//
// gopher-lua states are not goroutine safe. A mutex serializes every
// entry into the state, so the analysis worker and the editing thread
// never overlap inside Lua.
package lualang

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"unicode"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/glint/analysis"
	"github.com/dshills/glint/block"
	"github.com/dshills/glint/document"
	"github.com/dshills/glint/language"
	"github.com/dshills/glint/span"
)

// Errors returned by the script host.
var (
	ErrClosed    = errors.New("lua language closed")
	ErrNoAnalyze = errors.New("script does not define analyze")
)

// Language runs a user Lua script behind the language contract.
type Language struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool
}

var _ language.Language = (*Language)(nil)

// New loads a script from source and verifies it defines analyze.
func New(script string) (*Language, error) {
	return load(func(L *lua.LState) error { return L.DoString(script) })
}

// NewFile loads a script from a file and verifies it defines analyze.
func NewFile(path string) (*Language, error) {
	return load(func(L *lua.LState) error { return L.DoFile(path) })
}

func load(run func(*lua.LState) error) (*Language, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	l := &Language{state: L}
	if err := l.protect(func() error { return run(L) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	if L.GetGlobal("analyze").Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoAnalyze
	}
	return l, nil
}

// Close releases the Lua state. Further calls on the Language fail or
// fall back to defaults.
func (l *Language) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.state.Close()
	l.closed = true
	return nil
}

// Analyzer returns the analyzer that hands each snapshot to the
// script's analyze function.
func (l *Language) Analyzer() analysis.Analyzer {
	return analysis.AnalyzerFunc(l.analyze)
}

func (l *Language) analyze(ctx context.Context, src *document.Snapshot, res *analysis.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}

	lines := l.state.NewTable()
	for i := 0; i < src.LineCount(); i++ {
		lines.RawSetInt(i+1, lua.LString(src.Line(i)))
	}
	results, err := l.call("analyze", lines)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}
	tbl, ok := results[0].(*lua.LTable)
	if !ok {
		return fmt.Errorf("analyze returned %s, want table", results[0].Type())
	}
	return decodeResult(tbl, src.LineCount(), res)
}

// IsAutoCompleteChar asks the script, falling back to identifier
// characters when the hook is not defined.
func (l *Language) IsAutoCompleteChar(r rune) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	if l.state.GetGlobal("is_autocomplete_char").Type() != lua.LTFunction {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	results, err := l.call("is_autocomplete_char", lua.LString(string(r)))
	if err != nil || len(results) == 0 {
		return false
	}
	return lua.LVAsBool(results[0])
}

// IndentAdvance asks the script, falling back to zero when the hook is
// not defined.
func (l *Language) IndentAdvance(content string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0
	}
	if l.state.GetGlobal("indent_advance").Type() != lua.LTFunction {
		return 0
	}
	results, err := l.call("indent_advance", lua.LString(content))
	if err != nil || len(results) == 0 {
		return 0
	}
	n, ok := results[0].(lua.LNumber)
	if !ok || n < 0 {
		return 0
	}
	return int(n)
}

// UseTab reads the script's use_tab global.
func (l *Language) UseTab() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	return lua.LVAsBool(l.state.GetGlobal("use_tab"))
}

// Format hands text to the script's format function, returning it
// unchanged when the hook is not defined.
func (l *Language) Format(text string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return "", ErrClosed
	}
	if l.state.GetGlobal("format").Type() != lua.LTFunction {
		return text, nil
	}
	results, err := l.call("format", lua.LString(text))
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return text, nil
	}
	s, ok := results[0].(lua.LString)
	if !ok {
		return "", fmt.Errorf("format returned %s, want string", results[0].Type())
	}
	return string(s), nil
}

// call invokes a global script function. The caller holds the mutex.
func (l *Language) call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	fnVal := l.state.GetGlobal(fn)
	if fnVal.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %q not defined", fn)
	}

	top := l.state.GetTop()
	l.state.Push(fnVal)
	for _, arg := range args {
		l.state.Push(arg)
	}

	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("lua panic: %v", r)
			}
		}()
		callErr = l.state.PCall(len(args), lua.MultRet, nil)
	}()
	if callErr != nil {
		return nil, callErr
	}

	n := l.state.GetTop() - top
	if n <= 0 {
		return nil, nil
	}
	out := make([]lua.LValue, n)
	for i := 0; i < n; i++ {
		out[i] = l.state.Get(top + i + 1)
	}
	l.state.Pop(n)
	return out, nil
}

func (l *Language) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

type pendingSpan struct {
	line, col int
	style     span.Style
}

// decodeResult translates the script's result table. Spans are sorted
// before insertion because span rows require ascending columns and
// scripts are free to emit in any order.
func decodeResult(tbl *lua.LTable, lineCount int, res *analysis.Result) error {
	if spans, ok := tbl.RawGetString("spans").(*lua.LTable); ok {
		decoded, err := decodeSpans(spans, lineCount)
		if err != nil {
			return err
		}
		sort.SliceStable(decoded, func(i, j int) bool {
			if decoded[i].line != decoded[j].line {
				return decoded[i].line < decoded[j].line
			}
			return decoded[i].col < decoded[j].col
		})
		for _, s := range decoded {
			res.AddSpanAt(s.line, s.col, s.style)
		}
	}
	if blocks, ok := tbl.RawGetString("blocks").(*lua.LTable); ok {
		if err := decodeBlocks(blocks, lineCount, res); err != nil {
			return err
		}
	}
	if n, ok := intField(tbl, "suppress_switch"); ok {
		res.SetSuppressSwitch(n)
	}
	return nil
}

func decodeSpans(tbl *lua.LTable, lineCount int) ([]pendingSpan, error) {
	out := make([]pendingSpan, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("spans[%d]: not a table", i)
		}
		line, ok := intField(entry, "line")
		if !ok {
			return nil, fmt.Errorf("spans[%d]: missing line", i)
		}
		col, ok := intField(entry, "col")
		if !ok {
			return nil, fmt.Errorf("spans[%d]: missing col", i)
		}
		if line < 1 || line > lineCount || col < 1 {
			return nil, fmt.Errorf("spans[%d]: position %d:%d out of range", i, line, col)
		}
		st := span.StyleNormal
		if name, ok := stringField(entry, "style"); ok {
			st = span.ParseStyle(name)
		}
		out = append(out, pendingSpan{line: line - 1, col: col - 1, style: st})
	}
	return out, nil
}

func decodeBlocks(tbl *lua.LTable, lineCount int, res *analysis.Result) error {
	for i := 1; i <= tbl.Len(); i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return fmt.Errorf("blocks[%d]: not a table", i)
		}
		var b block.Block
		fields := []struct {
			key string
			dst *int
		}{
			{"start_line", &b.StartLine},
			{"start_col", &b.StartCol},
			{"end_line", &b.EndLine},
			{"end_col", &b.EndCol},
		}
		for _, f := range fields {
			v, ok := intField(entry, f.key)
			if !ok {
				return fmt.Errorf("blocks[%d]: missing %s", i, f.key)
			}
			if v < 1 {
				return fmt.Errorf("blocks[%d]: %s = %d out of range", i, f.key, v)
			}
			*f.dst = v - 1
		}
		if b.StartLine >= lineCount || b.EndLine >= lineCount {
			return fmt.Errorf("blocks[%d]: lines %d-%d out of range", i, b.StartLine+1, b.EndLine+1)
		}
		res.AddBlock(b)
	}
	return nil
}

func intField(t *lua.LTable, key string) (int, bool) {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return int(n), true
	}
	return 0, false
}

func stringField(t *lua.LTable, key string) (string, bool) {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s), true
	}
	return "", false
}
