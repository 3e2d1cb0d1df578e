package compiler

import (
	"go/parser"
	"go/types"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mcncl/jsonlit/internal/errors"
	"github.com/mcncl/jsonlit/internal/lexer"
	"github.com/mcncl/jsonlit/internal/token"
)

// lex tokenizes src, failing the test on lexing errors
func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, err := lexer.Lex(src)
	require.NoError(t, err, "Lex(%q)", src)
	return tokens
}

// compile expands src against jsonval.Value in the package convention
func compile(t *testing.T, src string) Fragment {
	t.Helper()
	fragment, err := New(PackageConvention{}).Compile("jsonval.Value", lex(t, src))
	require.NoError(t, err, "Compile(%q)", src)
	return fragment
}

func TestCompile_DocExample(t *testing.T) {
	fragment := compile(t, `{"name": "example", "array": ["foo", "bar"]}`)

	want := `func() jsonval.Value {
	object := jsonval.EmptyObject()
	object.Insert("name", jsonval.From("example"))
	object.Insert("array", func() jsonval.Value {
		array := jsonval.EmptyArray()
		array.PushBack(jsonval.From("foo"))
		array.PushBack(jsonval.From("bar"))
		return jsonval.From(array)
	}())
	return jsonval.From(object)
}()`

	if diff := cmp.Diff(want, fragment.Code); diff != "" {
		t.Errorf("Compile() emitted code mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, fragment.Imports)
}

func TestCompile_NestedOrderPreserved(t *testing.T) {
	fragment := compile(t, `{"a": [1, {"b": 2}]}`)

	want := `func() jsonval.Value {
	object := jsonval.EmptyObject()
	object.Insert("a", func() jsonval.Value {
		array := jsonval.EmptyArray()
		array.PushBack(jsonval.From(1))
		array.PushBack(func() jsonval.Value {
			object := jsonval.EmptyObject()
			object.Insert("b", jsonval.From(2))
			return jsonval.From(object)
		}())
		return jsonval.From(array)
	}())
	return jsonval.From(object)
}()`

	if diff := cmp.Diff(want, fragment.Code); diff != "" {
		t.Errorf("Compile() emitted code mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_EmittedFragmentIsAValidExpression(t *testing.T) {
	fragment := compile(t, `{"a": [1, {"b": null}], "c": x + 1}`)
	_, err := parser.ParseExpr(fragment.Code)
	assert.NoError(t, err, "emitted fragment must parse as a Go expression")
}

func TestCompile_ObjectInsertCountAndOrder(t *testing.T) {
	fragment := compile(t, `{"one": 1, "two": 2, "three": 3}`)

	assert.Equal(t, 3, strings.Count(fragment.Code, "object.Insert("))

	// Inserts appear in source order
	one := strings.Index(fragment.Code, `"one"`)
	two := strings.Index(fragment.Code, `"two"`)
	three := strings.Index(fragment.Code, `"three"`)
	assert.True(t, one < two && two < three,
		"inserts out of source order: %d %d %d", one, two, three)
}

func TestCompile_EmptyObject(t *testing.T) {
	fragment := compile(t, `{}`)
	assert.NotContains(t, fragment.Code, ".Insert(")
	assert.Contains(t, fragment.Code, "EmptyObject()")
}

func TestCompile_EmptyArray(t *testing.T) {
	fragment := compile(t, `[]`)
	assert.NotContains(t, fragment.Code, ".PushBack(")
	assert.Contains(t, fragment.Code, "EmptyArray()")
}

func TestCompile_BracketGroupIsNeverAnObject(t *testing.T) {
	fragment := compile(t, `[1, 2]`)
	assert.NotContains(t, fragment.Code, "EmptyObject")
	assert.NotContains(t, fragment.Code, ".Insert(")
}

func TestCompile_BraceGroupIsNeverAnArray(t *testing.T) {
	fragment := compile(t, `{"k": 1}`)
	assert.NotContains(t, fragment.Code, "EmptyArray")
	assert.NotContains(t, fragment.Code, ".PushBack(")
}

func TestCompile_ScalarFallback(t *testing.T) {
	fragment := compile(t, `1 + 2`)
	assert.Equal(t, "jsonval.From(1 + 2)", fragment.Code)
}

func TestCompile_ScalarWithLeadingParenGroup(t *testing.T) {
	// A paren group followed by more tokens is a scalar expression, not a
	// literal shape
	fragment := compile(t, `(1) + 2`)
	assert.Equal(t, "jsonval.From((1) + 2)", fragment.Code)
}

func TestCompile_ScalarSelectorExpression(t *testing.T) {
	fragment := compile(t, `user.Name`)
	assert.Equal(t, "jsonval.From(user.Name)", fragment.Code)
}

func TestCompile_ScalarMultiRuneOperators(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"equality", `{"ok": a == b}`, `object.Insert("ok", jsonval.From(a == b))`},
		{"logical and", `{"ok": p && q}`, `object.Insert("ok", jsonval.From(p && q))`},
		{"not equal", `[x != y]`, `array.PushBack(jsonval.From(x != y))`},
		{"less or equal", `[n <= 10]`, `array.PushBack(jsonval.From(n <= 10))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragment := compile(t, tt.src)
			assert.Contains(t, fragment.Code, tt.want)
		})
	}
}

// exprString parses src and returns the canonical form of the expression, so
// two spellings of the same expression compare equal
func exprString(t *testing.T, src string) string {
	t.Helper()
	expr, err := parser.ParseExpr(src)
	require.NoError(t, err, "ParseExpr(%q)", src)
	return types.ExprString(expr)
}

func TestCompile_ScalarExpressionRoundTrips(t *testing.T) {
	exprs := []string{
		"a == b",
		"p && q",
		"x!=y",
		"n<=10",
		"a * -b",
		"c | d&^e",
		"ptr != nil && *ptr > 0",
	}
	for _, src := range exprs {
		t.Run(src, func(t *testing.T) {
			fragment := compile(t, src)
			// The emitted conversion call must mean exactly what the source
			// expression meant
			assert.Equal(t,
				exprString(t, "jsonval.From("+src+")"),
				exprString(t, fragment.Code))
		})
	}
}

func TestCompile_BlankKeyTokenIsExpressionError(t *testing.T) {
	// A caller assembling tokens by hand can produce a Literal with no text;
	// the key must fail expression validation, not crash
	group := token.Token{Kind: token.Group, Delim: token.Brace, Inner: []token.Token{
		{Kind: token.Literal, Text: ""},
		{Kind: token.Punct, Text: ":"},
		{Kind: token.Ident, Text: "v"},
	}}
	_, err := New(PackageConvention{}).Compile("jsonval.Value", []token.Token{group})
	require.Error(t, err)
	assert.ErrorIs(t, err, &apperrors.AppError{Type: apperrors.ErrorTypeExpression})
}

func TestCompile_MissingKeySeparator(t *testing.T) {
	_, err := New(PackageConvention{}).Compile("jsonval.Value", lex(t, `{"k"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, &apperrors.AppError{Type: apperrors.ErrorTypeStructural})
	assert.ErrorIs(t, err, apperrors.ErrMissingKeySep)
}

func TestCompile_TrailingSeparatorIsInert(t *testing.T) {
	fragment := compile(t, `[1, 2,]`)
	assert.Equal(t, 2, strings.Count(fragment.Code, ".PushBack("))

	fragment = compile(t, `{"a": 1,}`)
	assert.Equal(t, 1, strings.Count(fragment.Code, ".Insert("))
}

func TestCompile_InteriorEmptySegment(t *testing.T) {
	_, err := New(PackageConvention{}).Compile("jsonval.Value", lex(t, `[1,,2]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, &apperrors.AppError{Type: apperrors.ErrorTypeExpression})
	assert.ErrorIs(t, err, apperrors.ErrEmptySegment)
}

func TestCompile_EmptyObjectValue(t *testing.T) {
	_, err := New(PackageConvention{}).Compile("jsonval.Value", lex(t, `{"k":}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmptySegment)
}

func TestCompile_InvalidExpressionSegment(t *testing.T) {
	_, err := New(PackageConvention{}).Compile("jsonval.Value", lex(t, `[+]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, &apperrors.AppError{Type: apperrors.ErrorTypeExpression})
}

func TestCompile_NonLiteralKeyIsStringified(t *testing.T) {
	fragment := compile(t, `{name: 1}`)
	assert.Contains(t, fragment.Code, `object.Insert(fmt.Sprint(name), jsonval.From(1))`)
	assert.Contains(t, fragment.Imports, "fmt")
}

func TestCompile_StringLiteralKeyPassesThrough(t *testing.T) {
	fragment := compile(t, `{"name": 1}`)
	assert.Contains(t, fragment.Code, `object.Insert("name", jsonval.From(1))`)
	assert.NotContains(t, fragment.Imports, "fmt")
}

func TestCompile_DepthGuard(t *testing.T) {
	_, err := NewWithMaxDepth(PackageConvention{}, 2).Compile("jsonval.Value", lex(t, `[[[1]]]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, &apperrors.AppError{Type: apperrors.ErrorTypeStructural})
	assert.ErrorIs(t, err, apperrors.ErrDepthExceeded)
}

func TestCompile_DeepNestingWithinLimit(t *testing.T) {
	src := strings.Repeat("[", 50) + "1" + strings.Repeat("]", 50)
	fragment := compile(t, src)
	assert.Equal(t, 50, strings.Count(fragment.Code, ".PushBack("))
}

func TestCompile_BuilderConvention(t *testing.T) {
	conv, err := ConventionByName("builder", "b")
	require.NoError(t, err)

	fragment, err := New(conv).Compile("T", lex(t, `["foo"]`))
	require.NoError(t, err)

	want := `func() T {
	array := b.EmptyArray()
	b.PushBack(&array, b.From("foo"))
	return b.From(array)
}()`
	if diff := cmp.Diff(want, fragment.Code); diff != "" {
		t.Errorf("Compile() emitted code mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_InvalidTargetType(t *testing.T) {
	_, err := New(PackageConvention{}).Compile("func(", lex(t, `{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, &apperrors.AppError{Type: apperrors.ErrorTypeStructural})
}

func TestCompile_EmptyTargetType(t *testing.T) {
	_, err := New(PackageConvention{}).Compile("  ", lex(t, `{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingType)
}

func TestCompileAt_IndentsForEmbedding(t *testing.T) {
	fragment, err := New(PackageConvention{}).CompileAt("jsonval.Value", lex(t, `[1]`), 1)
	require.NoError(t, err)

	want := `func() jsonval.Value {
		array := jsonval.EmptyArray()
		array.PushBack(jsonval.From(1))
		return jsonval.From(array)
	}()`
	if diff := cmp.Diff(want, fragment.Code); diff != "" {
		t.Errorf("CompileAt() emitted code mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_TypeThenLiteral(t *testing.T) {
	fragment, err := New(PackageConvention{}).Expand(lex(t, `jsonval.Value, {"a": 1}`))
	require.NoError(t, err)

	want := `func() jsonval.Value {
	object := jsonval.EmptyObject()
	object.Insert("a", jsonval.From(1))
	return jsonval.From(object)
}()`
	if diff := cmp.Diff(want, fragment.Code); diff != "" {
		t.Errorf("Expand() emitted code mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_MissingType(t *testing.T) {
	// The comma inside the brace group is invisible at the top level, so the
	// invocation has no type/literal separator at all
	_, err := New(PackageConvention{}).Expand(lex(t, `{"a": 1, "b": 2}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingType)
}
