// Package lexer turns raw literal text into the grouped token tree the
// compiler consumes. Bracketed regions ({} [] ()) are collapsed into single
// opaque Group tokens during scanning, so downstream code never has to match
// brackets itself.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcncl/jsonlit/internal/errors"
	"github.com/mcncl/jsonlit/internal/token"
)

// Lex scans src into a token tree. String, rune, and raw-string literals are
// kept as single Literal tokens (quotes included), so separators inside them
// are inert. Unbalanced or mismatched brackets are reported as lexing errors
// with the position of the offending bracket.
func Lex(src string) ([]token.Token, error) {
	l := &lexer{src: src, line: 1}
	tokens, err := l.scan(token.None)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

type lexer struct {
	src    string
	offset int
	line   int
	col    int
}

func (l *lexer) pos() token.Pos {
	return token.Pos{Offset: l.offset, Line: l.line, Column: l.col}
}

func (l *lexer) peek() (rune, int) {
	if l.offset >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.src[l.offset:])
}

func (l *lexer) advance() rune {
	r, size := l.peek()
	l.offset += size
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col += size
	}
	return r
}

// scan consumes tokens until the closing bracket of delim (or end of input for
// token.None) and returns them. The closing bracket itself is consumed.
func (l *lexer) scan(delim token.Delim) ([]token.Token, error) {
	tokens := []token.Token{}
	for {
		l.skipSpace()
		r, _ := l.peek()
		if r == 0 {
			if delim != token.None {
				return nil, errors.NewLexingError(
					fmt.Sprintf("unclosed '%c' group at end of input", delim.Open()), nil)
			}
			return tokens, nil
		}
		if r == delim.Close() {
			l.advance()
			return tokens, nil
		}

		start := l.pos()
		switch {
		case r == '}' || r == ']' || r == ')':
			return nil, errors.NewLexingError(
				errors.At(start, fmt.Sprintf("unexpected closing '%c'", r)), nil)
		case r == '{' || r == '[' || r == '(':
			l.advance()
			var d token.Delim
			switch r {
			case '{':
				d = token.Brace
			case '[':
				d = token.Bracket
			case '(':
				d = token.Paren
			}
			inner, err := l.scan(d)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token.Token{Kind: token.Group, Delim: d, Inner: inner, Pos: start, End: l.offset})
		case r == '"' || r == '\'' || r == '`':
			text, err := l.scanString(r)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token.Token{Kind: token.Literal, Text: text, Pos: start, End: l.offset})
		case unicode.IsDigit(r):
			text := l.scanNumber()
			tokens = append(tokens, token.Token{Kind: token.Literal, Text: text, Pos: start, End: l.offset})
		case r == '_' || unicode.IsLetter(r):
			text := l.scanIdent()
			tokens = append(tokens, token.Token{Kind: token.Ident, Text: text, Pos: start, End: l.offset})
		default:
			l.advance()
			tokens = append(tokens, token.Token{Kind: token.Punct, Text: string(r), Pos: start, End: l.offset})
		}
	}
}

func (l *lexer) skipSpace() {
	for {
		r, _ := l.peek()
		if r == 0 || !unicode.IsSpace(r) {
			return
		}
		l.advance()
	}
}

// scanString consumes a quoted literal and returns it verbatim, quotes and
// escapes included. Backquoted strings have no escapes; the others treat a
// backslash as escaping the next rune, which is all the structure we need to
// keep a quote or bracket inside the literal from ending it.
func (l *lexer) scanString(quote rune) (string, error) {
	start := l.pos()
	var sb strings.Builder
	sb.WriteRune(l.advance())
	for {
		r, _ := l.peek()
		if r == 0 || (r == '\n' && quote != '`') {
			return "", errors.NewLexingError(
				errors.At(start, fmt.Sprintf("unterminated %c...%c literal", quote, quote)), nil)
		}
		sb.WriteRune(l.advance())
		if r == quote {
			return sb.String(), nil
		}
		if r == '\\' && quote != '`' {
			if next, _ := l.peek(); next != 0 {
				sb.WriteRune(l.advance())
			}
		}
	}
}

// scanNumber accepts the usual Go numeric shapes loosely: digits, radix
// prefixes, '.', exponents with an optional sign, and '_' separators. Precise
// validation is left to the expression parser downstream.
func (l *lexer) scanNumber() string {
	var sb strings.Builder
	prev := rune(0)
	for {
		r, _ := l.peek()
		ok := unicode.IsDigit(r) || r == '.' || r == '_' ||
			(r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') ||
			r == 'x' || r == 'X' || r == 'o' || r == 'O' ||
			r == 'p' || r == 'P' || r == 'i' ||
			((r == '+' || r == '-') && (prev == 'e' || prev == 'E' || prev == 'p' || prev == 'P'))
		if !ok {
			return sb.String()
		}
		sb.WriteRune(l.advance())
		prev = r
	}
}

func (l *lexer) scanIdent() string {
	var sb strings.Builder
	for {
		r, _ := l.peek()
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return sb.String()
		}
		sb.WriteRune(l.advance())
	}
}
