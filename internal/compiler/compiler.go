// Package compiler turns a literal's token tree into a Go expression that
// builds the equivalent value through the target container's five builder
// operations. Classification is purely structural: a lone brace group is an
// object, a lone bracket group is an array, anything else is a scalar
// expression handed to the generic conversion.
package compiler

import (
	"fmt"
	"go/parser"
	"strings"

	"github.com/mcncl/jsonlit/internal/errors"
	"github.com/mcncl/jsonlit/internal/splitter"
	"github.com/mcncl/jsonlit/internal/token"
)

// DefaultMaxDepth bounds literal nesting so a degenerate input surfaces as a
// structural error instead of exhausting the stack.
const DefaultMaxDepth = 200

// Fragment is the result of compiling one literal: an expression of the
// target type, plus any imports the expression needs beyond the target
// type's own package (currently just "fmt" for stringified keys).
type Fragment struct {
	Code    string
	Imports map[string]struct{}
}

// Compiler compiles literal token trees using one call convention.
type Compiler struct {
	conv     Convention
	maxDepth int
}

// New creates a Compiler emitting calls in the given convention.
func New(conv Convention) *Compiler {
	return &Compiler{conv: conv, maxDepth: DefaultMaxDepth}
}

// NewWithMaxDepth creates a Compiler with a custom nesting limit.
func NewWithMaxDepth(conv Convention, maxDepth int) *Compiler {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Compiler{conv: conv, maxDepth: maxDepth}
}

// Compile compiles the literal held in tokens into an expression of type
// target. The whole expansion fails on the first structural or expression
// error; no partial fragment is ever returned.
func (c *Compiler) Compile(target string, tokens []token.Token) (Fragment, error) {
	return c.CompileAt(target, tokens, 0)
}

// CompileAt compiles like Compile but indents the emitted expression for
// embedding at the given tab depth, so a fragment spliced into a generated
// function body lines up without reindenting.
func (c *Compiler) CompileAt(target string, tokens []token.Token, indent int) (Fragment, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Fragment{}, errors.NewStructuralError("missing target type", errors.ErrMissingType)
	}
	if _, err := parser.ParseExpr(target); err != nil {
		return Fragment{}, errors.NewStructuralError(
			fmt.Sprintf("cannot parse target type %q", target), err)
	}

	st := &state{conv: c.conv, target: target, maxDepth: c.maxDepth, imports: map[string]struct{}{}}
	code, err := st.compile(tokens, indent, token.Pos{Line: 1})
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{Code: code, Imports: st.imports}, nil
}

// Expand handles the combined invocation form `TargetType, literal`: the
// target type is everything before the first top-level comma, the literal is
// the rest. This mirrors the surface a caller writes inline.
func (c *Compiler) Expand(tokens []token.Token) (Fragment, error) {
	tyTokens, lit, found := splitter.Cut(tokens, ',')
	if !found || len(tyTokens) == 0 {
		return Fragment{}, errors.NewStructuralError(
			"invocation must be `TargetType, literal`", errors.ErrMissingType)
	}
	return c.Compile(token.Render(tyTokens), lit)
}

// state carries the per-expansion accumulators through the recursion.
type state struct {
	conv     Convention
	target   string
	maxDepth int
	imports  map[string]struct{}
}

// compile classifies tokens and emits the matching construction expression.
// depth is the current emission indent level; at is the position blamed for
// errors when the segment itself is empty.
func (s *state) compile(tokens []token.Token, depth int, at token.Pos) (string, error) {
	if depth > s.maxDepth {
		return "", errors.NewStructuralError(
			errors.At(at, fmt.Sprintf("nesting deeper than %d levels", s.maxDepth)),
			errors.ErrDepthExceeded)
	}
	if len(tokens) == 1 {
		switch {
		case tokens[0].IsGroup(token.Brace):
			return s.compileObject(tokens[0], depth)
		case tokens[0].IsGroup(token.Bracket):
			return s.compileArray(tokens[0], depth)
		}
	}
	return s.compileScalar(tokens, at)
}

// compileObject emits: empty object, one insert per entry in source order,
// conversion of the finished object. Entries split on top-level ',', each
// entry cut at its first top-level ':'.
func (s *state) compileObject(group token.Token, depth int) (string, error) {
	ind := strings.Repeat("\t", depth)
	var sb strings.Builder
	fmt.Fprintf(&sb, "func() %s {\n", s.target)
	fmt.Fprintf(&sb, "%s\tobject := %s\n", ind, s.conv.EmptyObject(s.target))

	for _, entry := range splitter.SplitTop(group.Inner, ',') {
		keyTokens, valueTokens, found := splitter.Cut(entry, ':')
		if !found {
			pos := group.Pos
			if len(entry) > 0 {
				pos = entry[0].Pos
			}
			return "", errors.NewStructuralError(
				errors.At(pos, fmt.Sprintf("object entry %q has no ':'", token.Render(entry))),
				errors.ErrMissingKeySep)
		}
		key, err := s.compileKey(keyTokens, group.Pos)
		if err != nil {
			return "", err
		}
		pos := group.Pos
		if len(keyTokens) > 0 {
			pos = keyTokens[0].Pos
		}
		value, err := s.compile(valueTokens, depth+1, pos)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%s\t%s\n", ind, s.conv.Insert("object", key, value))
	}

	fmt.Fprintf(&sb, "%s\treturn %s\n", ind, s.conv.Convert(s.target, "object"))
	fmt.Fprintf(&sb, "%s}()", ind)
	return sb.String(), nil
}

// compileArray emits: empty array, one push-back per element in source order,
// conversion of the finished array.
func (s *state) compileArray(group token.Token, depth int) (string, error) {
	ind := strings.Repeat("\t", depth)
	var sb strings.Builder
	fmt.Fprintf(&sb, "func() %s {\n", s.target)
	fmt.Fprintf(&sb, "%s\tarray := %s\n", ind, s.conv.EmptyArray(s.target))

	for _, element := range splitter.SplitTop(group.Inner, ',') {
		value, err := s.compile(element, depth+1, group.Pos)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%s\t%s\n", ind, s.conv.PushBack("array", value))
	}

	fmt.Fprintf(&sb, "%s\treturn %s\n", ind, s.conv.Convert(s.target, "array"))
	fmt.Fprintf(&sb, "%s}()", ind)
	return sb.String(), nil
}

// compileKey renders an entry's key expression. Keys are arbitrary
// expressions stringified at use time; a key that is already a string
// literal passes through untouched.
func (s *state) compileKey(tokens []token.Token, at token.Pos) (string, error) {
	expr, err := s.expr(tokens, at)
	if err != nil {
		return "", err
	}
	if len(tokens) == 1 && tokens[0].Kind == token.Literal &&
		(tokens[0].Text[0] == '"' || tokens[0].Text[0] == '`') {
		return expr, nil
	}
	s.imports["fmt"] = struct{}{}
	return fmt.Sprintf("fmt.Sprint(%s)", expr), nil
}

// compileScalar emits the generic conversion of a leftover expression.
func (s *state) compileScalar(tokens []token.Token, at token.Pos) (string, error) {
	expr, err := s.expr(tokens, at)
	if err != nil {
		return "", err
	}
	return s.conv.Convert(s.target, expr), nil
}

// expr renders tokens and validates the result against the Go expression
// grammar. Validation failures are expression errors pinned to the segment's
// first token.
func (s *state) expr(tokens []token.Token, at token.Pos) (string, error) {
	if len(tokens) == 0 {
		return "", errors.NewExpressionError(
			errors.At(at, "expected an expression"), errors.ErrEmptySegment)
	}
	expr := token.Render(tokens)
	if _, err := parser.ParseExpr(expr); err != nil {
		return "", errors.NewExpressionError(
			errors.At(tokens[0].Pos, fmt.Sprintf("cannot parse %q as an expression", expr)), err)
	}
	return expr, nil
}
