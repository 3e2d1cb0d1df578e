// Package token defines the grouped token tree that the literal compiler
// consumes. Bracketed regions arrive pre-grouped into a single opaque Group
// token, so a separator nested inside a group is invisible to anything
// scanning the sequence it appears in.
package token

import "strings"

// Kind distinguishes the token variants.
type Kind int

const (
	Ident   Kind = iota // identifier or keyword
	Literal             // string, rune, or numeric literal
	Punct               // single punctuation rune
	Group               // nested token sequence with a bracket kind
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "ident"
	case Literal:
		return "literal"
	case Punct:
		return "punct"
	case Group:
		return "group"
	}
	return "unknown"
}

// Delim is the bracket kind of a Group token.
type Delim int

const (
	None    Delim = iota // undelimited group
	Brace                // { }
	Bracket              // [ ]
	Paren                // ( )
)

// Open returns the opening bracket rune, or 0 for None.
func (d Delim) Open() rune {
	switch d {
	case Brace:
		return '{'
	case Bracket:
		return '['
	case Paren:
		return '('
	}
	return 0
}

// Close returns the closing bracket rune, or 0 for None.
func (d Delim) Close() rune {
	switch d {
	case Brace:
		return '}'
	case Bracket:
		return ']'
	case Paren:
		return ')'
	}
	return 0
}

// Pos locates a token in the original literal source.
// Line is 1-based, Column is a 0-based byte offset within the line.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Token is one node of the token tree. Leaf tokens carry their source text in
// Text (for Punct, the single punctuation rune). Group tokens carry their
// bracket kind in Delim and their contents in Inner; Text is unused.
// End is the byte offset just past the token's source text (past the closing
// bracket for a Group); it stays zero for tokens built without positions.
type Token struct {
	Kind  Kind
	Text  string
	Delim Delim
	Inner []Token
	Pos   Pos
	End   int
}

// IsPunct reports whether t is a leaf punctuation token for rune r.
func (t Token) IsPunct(r rune) bool {
	return t.Kind == Punct && t.Text == string(r)
}

// IsGroup reports whether t is a group with bracket kind d.
func (t Token) IsGroup(d Delim) bool {
	return t.Kind == Group && t.Delim == d
}

// Render reconstructs source text for a token sequence. Tokens that abutted
// in the source render with no space between them, so multi-rune operators
// like && and == survive; tokens separated in the source (or built without
// positions) get a single space, except around selector dots. That is
// sufficient for handing the result to the Go expression parser; exact
// original spacing is not preserved.
func Render(tokens []Token) string {
	var sb strings.Builder
	render(&sb, tokens)
	return sb.String()
}

// abut reports whether t started at the byte where prev ended. Zero-valued
// End means prev carries no position and the spacing fallback applies.
func abut(prev, t Token) bool {
	return prev.End > 0 && prev.End == t.Pos.Offset
}

func render(sb *strings.Builder, tokens []Token) {
	for i, t := range tokens {
		if i > 0 && !abut(tokens[i-1], t) && !t.IsPunct('.') && !tokens[i-1].IsPunct('.') {
			sb.WriteByte(' ')
		}
		if t.Kind == Group {
			if open := t.Delim.Open(); open != 0 {
				sb.WriteRune(open)
			}
			render(sb, t.Inner)
			if cl := t.Delim.Close(); cl != 0 {
				sb.WriteRune(cl)
			}
			continue
		}
		sb.WriteString(t.Text)
	}
}
