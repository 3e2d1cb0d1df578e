package jsonval

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrom_Primitives(t *testing.T) {
	assert.Equal(t, Null, From(nil).Kind())
	assert.Equal(t, Bool, From(true).Kind())
	assert.True(t, From(true).BoolVal())
	assert.Equal(t, Number, From(42).Kind())
	assert.Equal(t, 42.0, From(42).NumberVal())
	assert.Equal(t, Number, From(3.14).Kind())
	assert.Equal(t, Number, From(uint8(7)).Kind())
	assert.Equal(t, String, From("hi").Kind())
	assert.Equal(t, "hi", From("hi").StringVal())
}

func TestFrom_ValueIsIdentity(t *testing.T) {
	obj := EmptyObject()
	obj.Insert("a", From(1))

	assert.True(t, From(obj).Equal(obj))
	assert.True(t, From(&obj).Equal(obj))
}

func TestFrom_SliceAndMap(t *testing.T) {
	v := From([]any{1, "two", true})
	require.Equal(t, Array, v.Kind())
	require.Equal(t, 3, v.Len())
	assert.Equal(t, 1.0, v.At(0).NumberVal())
	assert.Equal(t, "two", v.At(1).StringVal())

	m := From(map[string]any{"b": 2, "a": 1})
	require.Equal(t, Object, m.Kind())
	// Map conversion sorts keys for determinism
	assert.Equal(t, "a", m.Key(0))
	assert.Equal(t, "b", m.Key(1))
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.Equal(t, Null, v.Kind())
	assert.Equal(t, "null", v.String())
}

func TestInsert_PreservesOrder(t *testing.T) {
	obj := EmptyObject()
	obj.Insert("zebra", From(1))
	obj.Insert("apple", From(2))
	obj.Insert("mango", From(3))

	require.Equal(t, 3, obj.Len())
	assert.Equal(t, "zebra", obj.Key(0))
	assert.Equal(t, "apple", obj.Key(1))
	assert.Equal(t, "mango", obj.Key(2))
}

func TestInsert_DuplicateKeyLastWriteWins(t *testing.T) {
	obj := EmptyObject()
	obj.Insert("k", From(1))
	obj.Insert("k", From(2))

	require.Equal(t, 1, obj.Len())
	v, ok := obj.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2.0, v.NumberVal())
}

func TestInsert_OnNonObjectPanics(t *testing.T) {
	arr := EmptyArray()
	assert.Panics(t, func() { arr.Insert("k", From(1)) })
}

func TestPushBack_PreservesOrder(t *testing.T) {
	arr := EmptyArray()
	arr.PushBack(From("first"))
	arr.PushBack(From("second"))

	require.Equal(t, 2, arr.Len())
	assert.Equal(t, "first", arr.At(0).StringVal())
	assert.Equal(t, "second", arr.At(1).StringVal())
}

func TestPushBack_OnNonArrayPanics(t *testing.T) {
	obj := EmptyObject()
	assert.Panics(t, func() { obj.PushBack(From(1)) })
}

func TestEqual(t *testing.T) {
	a := EmptyObject()
	a.Insert("x", From(1))
	a.Insert("y", From(2))

	b := EmptyObject()
	b.Insert("x", From(1))
	b.Insert("y", From(2))

	// Same entries, different order
	c := EmptyObject()
	c.Insert("y", From(2))
	c.Insert("x", From(1))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "entry order is part of equality")
	assert.False(t, a.Equal(From(1)))

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("cmp.Diff should use Equal, got diff:\n%s", diff)
	}
}

// TestExpandedPatternMatchesDirectConstruction executes the construction
// pattern the compiler emits for {"name": "example", "array": ["foo", "bar"]}
// and checks it against directly-built expectations.
func TestExpandedPatternMatchesDirectConstruction(t *testing.T) {
	got := func() Value {
		object := EmptyObject()
		object.Insert("name", From("example"))
		object.Insert("array", func() Value {
			array := EmptyArray()
			array.PushBack(From("foo"))
			array.PushBack(From("bar"))
			return From(array)
		}())
		return From(object)
	}()

	require.Equal(t, Object, got.Kind())
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "name", got.Key(0))
	assert.Equal(t, "array", got.Key(1))

	arr, ok := got.Get("array")
	require.True(t, ok)
	require.Equal(t, Array, arr.Kind())
	assert.Equal(t, "foo", arr.At(0).StringVal())
	assert.Equal(t, "bar", arr.At(1).StringVal())

	assert.Equal(t, `{"name":"example","array":["foo","bar"]}`, got.String())
}

// Same construction through the builder convention's call shape.
func TestBuilderPatternMatchesDirectConstruction(t *testing.T) {
	var b Builder
	got := func() Value {
		object := b.EmptyObject()
		b.Insert(&object, "name", b.From("example"))
		b.Insert(&object, "array", func() Value {
			array := b.EmptyArray()
			b.PushBack(&array, b.From("foo"))
			b.PushBack(&array, b.From("bar"))
			return b.From(array)
		}())
		return b.From(object)
	}()

	want := func() Value {
		object := EmptyObject()
		object.Insert("name", From("example"))
		arr := EmptyArray()
		arr.PushBack(From("foo"))
		arr.PushBack(From("bar"))
		object.Insert("array", arr)
		return object
	}()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("builder construction mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJSON(t *testing.T) {
	obj := EmptyObject()
	obj.Insert("s", From(`quote " here`))
	obj.Insert("n", From(1.5))
	obj.Insert("list", From([]any{nil, false}))

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"s":"quote \" here","n":1.5,"list":[null,false]}`, string(data))

	// Output must be valid JSON
	var roundTrip any
	assert.NoError(t, json.Unmarshal(data, &roundTrip))
}
