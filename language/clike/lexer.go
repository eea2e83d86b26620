package clike

import (
	"strings"
	"unicode"

	"github.com/dshills/glint/span"
)

// lexState carries tokenizer state across line boundaries. Only block
// comments survive a newline in C-family syntax.
type lexState uint8

const (
	stateNormal lexState = iota
	stateBlockComment
)

// token is one classified run on a line, in UTF-16 columns. Runs the
// lexer does not classify (plain identifiers, whitespace) are absent
// and render as normal text.
type token struct {
	style      span.Style
	start, end int
}

// bracePos is one '{' or '}' seen outside comments and strings.
type bracePos struct {
	col  int
	open bool
}

// lexLine classifies one line. It returns the tokens in column order,
// the braces usable for block pairing, and the state the next line
// starts in.
func (l *Language) lexLine(text string, st lexState) ([]token, []bracePos, lexState) {
	var (
		tokens []token
		braces []bracePos
	)
	runes := []rune(text)
	i, col := 0, 0

	advance := func() {
		if runes[i] >= 0x10000 {
			col += 2
		} else {
			col++
		}
		i++
	}

	if st == stateBlockComment {
		start := col
		closed := false
		for i < len(runes) {
			if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				advance()
				advance()
				closed = true
				break
			}
			advance()
		}
		if col > start {
			tokens = append(tokens, token{span.StyleComment, start, col})
		}
		if !closed {
			return tokens, nil, stateBlockComment
		}
	}

	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '/' && i+1 < len(runes) && runes[i+1] == '/':
			start := col
			for i < len(runes) {
				advance()
			}
			tokens = append(tokens, token{span.StyleComment, start, col})

		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			start := col
			advance()
			advance()
			closed := false
			for i < len(runes) {
				if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
					advance()
					advance()
					closed = true
					break
				}
				advance()
			}
			tokens = append(tokens, token{span.StyleComment, start, col})
			if !closed {
				return tokens, braces, stateBlockComment
			}

		case r == '"' || r == '\'':
			quote := r
			start := col
			advance()
			for i < len(runes) {
				if runes[i] == '\\' && i+1 < len(runes) {
					advance()
					advance()
					continue
				}
				done := runes[i] == quote
				advance()
				if done {
					break
				}
			}
			tokens = append(tokens, token{span.StyleString, start, col})

		case unicode.IsDigit(r):
			start := col
			if r == '0' && i+1 < len(runes) && (runes[i+1] == 'x' || runes[i+1] == 'X') {
				advance()
				advance()
				for i < len(runes) && isHexDigit(runes[i]) {
					advance()
				}
			} else {
				for i < len(runes) && unicode.IsDigit(runes[i]) {
					advance()
				}
				if i+1 < len(runes) && runes[i] == '.' && unicode.IsDigit(runes[i+1]) {
					advance()
					for i < len(runes) && unicode.IsDigit(runes[i]) {
						advance()
					}
				}
				if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
					j := i + 1
					if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
						j++
					}
					if j < len(runes) && unicode.IsDigit(runes[j]) {
						for i < j {
							advance()
						}
						for i < len(runes) && unicode.IsDigit(runes[i]) {
							advance()
						}
					}
				}
			}
			for i < len(runes) && isNumberSuffix(runes[i]) {
				advance()
			}
			tokens = append(tokens, token{span.StyleNumber, start, col})

		case isIdentStart(r):
			start := col
			from := i
			for i < len(runes) && isIdentPart(runes[i]) {
				advance()
			}
			word := string(runes[from:i])
			if _, ok := l.keywords[word]; ok {
				tokens = append(tokens, token{span.StyleKeyword, start, col})
			} else if _, ok := l.literals[word]; ok {
				tokens = append(tokens, token{span.StyleLiteral, start, col})
			}

		case r == '{' || r == '}':
			braces = append(braces, bracePos{col: col, open: r == '{'})
			tokens = append(tokens, token{span.StyleOperator, col, col + 1})
			advance()

		case isOperator(r):
			tokens = append(tokens, token{span.StyleOperator, col, col + 1})
			advance()

		default:
			advance()
		}
	}
	return tokens, braces, stateNormal
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isNumberSuffix(r rune) bool {
	switch r {
	case 'f', 'F', 'l', 'L', 'u', 'U':
		return true
	}
	return false
}

func isOperator(r rune) bool {
	return strings.ContainsRune("+-*/%=!<>&|^~?:;,.()[]#", r)
}
