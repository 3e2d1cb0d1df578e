// Package splitter cuts a token sequence at top-level occurrences of a
// separator rune. Group tokens are opaque: a separator nested inside a group
// never ends a segment, which is what keeps a comma inside `[b,c]` from
// terminating the entry that contains it.
package splitter

import "github.com/mcncl/jsonlit/internal/token"

// SplitTop splits tokens at every top-level punctuation token equal to sep.
// The separator tokens themselves are discarded. An empty input yields zero
// segments, and a trailing separator yields no empty tail segment, so an
// empty literal body compiles to zero entries and `[1,2,]` has two elements.
// Interior empty segments (as in `[1,,2]`) are preserved for the caller to
// reject. Splitting is total: there are no error conditions.
func SplitTop(tokens []token.Token, sep rune) [][]token.Token {
	var segments [][]token.Token
	start := 0
	for i, t := range tokens {
		if t.IsPunct(sep) {
			segments = append(segments, tokens[start:i])
			start = i + 1
		}
	}
	if start < len(tokens) {
		segments = append(segments, tokens[start:])
	}
	return segments
}

// Cut splits tokens around the first top-level occurrence of sep, discarding
// the separator. If sep does not occur at the top level, Cut returns
// (tokens, nil, false). Used for separating an object entry's key from its
// value and for peeling the target type off a `T, literal` invocation.
func Cut(tokens []token.Token, sep rune) (before, after []token.Token, found bool) {
	for i, t := range tokens {
		if t.IsPunct(sep) {
			return tokens[:i], tokens[i+1:], true
		}
	}
	return tokens, nil, false
}
