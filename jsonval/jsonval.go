// Package jsonval is the stock target container for expanded literals: an
// ordered, immutable-shaped JSON value exposing exactly the five operations
// the generated code calls — EmptyObject, EmptyArray, Insert, PushBack, and
// the generic conversion From. Any other type exposing the same operations
// works as a target type; jsonval is the default and what the tests build
// expectations against.
package jsonval

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind enumerates the JSON value kinds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Object:
		return "object"
	case Array:
		return "array"
	}
	return "unknown"
}

// Value is one JSON value. Object entries keep insertion order; inserting an
// existing key overwrites the value in place without moving the key. The
// zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	num   float64
	str   string
	keys  []string
	byKey map[string]Value
	elems []Value
}

// EmptyObject returns a new object with zero entries.
func EmptyObject() Value {
	return Value{kind: Object, byKey: map[string]Value{}}
}

// EmptyArray returns a new array with zero elements.
func EmptyArray() Value {
	return Value{kind: Array}
}

// Insert adds or replaces the entry for key. The key-uniqueness policy lives
// here, not in the literal compiler: last write wins.
func (v *Value) Insert(key string, val Value) {
	if v.kind != Object {
		panic(fmt.Sprintf("jsonval: Insert on %s value", v.kind))
	}
	if _, exists := v.byKey[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.byKey[key] = val
}

// PushBack appends val to the array.
func (v *Value) PushBack(val Value) {
	if v.kind != Array {
		panic(fmt.Sprintf("jsonval: PushBack on %s value", v.kind))
	}
	v.elems = append(v.elems, val)
}

// From is the generic conversion into Value. It accepts Values themselves,
// nil, booleans, strings, the numeric kinds, and nested slices and maps;
// anything else is stringified.
func From(x any) Value {
	switch t := x.(type) {
	case Value:
		return t
	case *Value:
		if t == nil {
			return Value{}
		}
		return *t
	case nil:
		return Value{}
	case bool:
		return Value{kind: Bool, b: t}
	case string:
		return Value{kind: String, str: t}
	case int:
		return Value{kind: Number, num: float64(t)}
	case int8:
		return Value{kind: Number, num: float64(t)}
	case int16:
		return Value{kind: Number, num: float64(t)}
	case int32:
		return Value{kind: Number, num: float64(t)}
	case int64:
		return Value{kind: Number, num: float64(t)}
	case uint:
		return Value{kind: Number, num: float64(t)}
	case uint8:
		return Value{kind: Number, num: float64(t)}
	case uint16:
		return Value{kind: Number, num: float64(t)}
	case uint32:
		return Value{kind: Number, num: float64(t)}
	case uint64:
		return Value{kind: Number, num: float64(t)}
	case float32:
		return Value{kind: Number, num: float64(t)}
	case float64:
		return Value{kind: Number, num: t}
	case []any:
		arr := EmptyArray()
		for _, e := range t {
			arr.PushBack(From(e))
		}
		return arr
	case map[string]any:
		obj := EmptyObject()
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			obj.Insert(k, From(t[k]))
		}
		return obj
	default:
		return Value{kind: String, str: fmt.Sprint(x)}
	}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Len returns the number of entries of an object or elements of an array,
// and zero for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case Object:
		return len(v.keys)
	case Array:
		return len(v.elems)
	}
	return 0
}

// Key returns the i-th object key in insertion order.
func (v Value) Key(i int) string { return v.keys[i] }

// At returns the i-th element of an array, or the value of the i-th object
// entry in insertion order.
func (v Value) At(i int) Value {
	if v.kind == Object {
		return v.byKey[v.keys[i]]
	}
	return v.elems[i]
}

// Get returns the value for key and whether it is present.
func (v Value) Get(key string) (Value, bool) {
	val, ok := v.byKey[key]
	return val, ok
}

// BoolVal returns the boolean payload (false for other kinds).
func (v Value) BoolVal() bool { return v.b }

// NumberVal returns the numeric payload (0 for other kinds).
func (v Value) NumberVal() float64 { return v.num }

// StringVal returns the string payload ("" for other kinds).
func (v Value) StringVal() string { return v.str }

// Equal reports deep structural equality, including object entry order.
// go-cmp picks this up for diffs in tests.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == other.b
	case Number:
		return v.num == other.num
	case String:
		return v.str == other.str
	case Object:
		if len(v.keys) != len(other.keys) {
			return false
		}
		for i, k := range v.keys {
			if other.keys[i] != k || !v.byKey[k].Equal(other.byKey[k]) {
				return false
			}
		}
		return true
	case Array:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i, e := range v.elems {
			if !e.Equal(other.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON renders the value as JSON, objects in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	v.write(&sb)
	return []byte(sb.String()), nil
}

// String returns the JSON rendering.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(v.b))
	case Number:
		sb.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	case String:
		sb.WriteString(strconv.Quote(v.str))
	case Object:
		sb.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			v.byKey[k].write(sb)
		}
		sb.WriteByte('}')
	case Array:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	}
}

// Builder adapts jsonval to the builder call convention: every operation is
// a method on one value that can be threaded through generated code.
type Builder struct{}

// EmptyObject returns a new object with zero entries.
func (Builder) EmptyObject() Value { return EmptyObject() }

// EmptyArray returns a new array with zero elements.
func (Builder) EmptyArray() Value { return EmptyArray() }

// Insert adds or replaces an entry on the object at o.
func (Builder) Insert(o *Value, key string, val Value) { o.Insert(key, val) }

// PushBack appends to the array at a.
func (Builder) PushBack(a *Value, val Value) { a.PushBack(val) }

// From is the generic conversion into Value.
func (Builder) From(x any) Value { return From(x) }
