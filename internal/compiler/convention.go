package compiler

import (
	"fmt"
	"strings"
)

// A Convention renders the five builder operations the target container
// contract exposes: empty-object, empty-array, insert, push-back, and the
// generic conversion. The compile algorithm is written once against this
// capability set; picking a convention picks the call form of the emitted
// code without touching the algorithm.
type Convention interface {
	// Name identifies the convention in config files and CLI flags.
	Name() string
	// EmptyObject and EmptyArray render expressions creating an empty
	// container of type ty.
	EmptyObject(ty string) string
	EmptyArray(ty string) string
	// Insert and PushBack render statements adding value to the container
	// held in variable recv.
	Insert(recv, key, value string) string
	PushBack(recv, value string) string
	// Convert renders the generic conversion of expr into type ty. It is
	// used both for scalar expressions and for the finished container.
	Convert(ty, expr string) string
}

// PackageConvention resolves constructors and the conversion as functions of
// the package that declares the target type, and insert/push-back as methods
// on the built value. For target type `jsonval.Value` it emits
// `jsonval.EmptyObject()`, `jsonval.From(x)`, and `object.Insert(k, v)`.
// An unqualified target type yields unqualified calls.
type PackageConvention struct{}

func (PackageConvention) Name() string { return "package" }

func (PackageConvention) EmptyObject(ty string) string {
	return qualify(ty, "EmptyObject") + "()"
}

func (PackageConvention) EmptyArray(ty string) string {
	return qualify(ty, "EmptyArray") + "()"
}

func (PackageConvention) Insert(recv, key, value string) string {
	return fmt.Sprintf("%s.Insert(%s, %s)", recv, key, value)
}

func (PackageConvention) PushBack(recv, value string) string {
	return fmt.Sprintf("%s.PushBack(%s)", recv, value)
}

func (PackageConvention) Convert(ty, expr string) string {
	return fmt.Sprintf("%s(%s)", qualify(ty, "From"), expr)
}

// qualify derives the package qualifier from a (possibly pointer) qualified
// type expression: "*jsonval.Value" -> "jsonval.From" etc.
func qualify(ty, op string) string {
	ty = strings.TrimLeft(ty, "*")
	if i := strings.LastIndex(ty, "."); i >= 0 {
		return ty[:i+1] + op
	}
	return op
}

// BuilderConvention routes every operation through a named builder value, so
// the target type itself needs no methods at all. With Var "b" it emits
// `b.EmptyObject()`, `b.Insert(&object, k, v)`, `b.From(x)`. jsonval.Builder
// implements this shape for the stock container.
type BuilderConvention struct {
	// Var is the builder variable the emitted code calls through. The
	// generated code's compilation context must have it in scope.
	Var string
}

func (BuilderConvention) Name() string { return "builder" }

func (c BuilderConvention) EmptyObject(ty string) string {
	return c.Var + ".EmptyObject()"
}

func (c BuilderConvention) EmptyArray(ty string) string {
	return c.Var + ".EmptyArray()"
}

func (c BuilderConvention) Insert(recv, key, value string) string {
	return fmt.Sprintf("%s.Insert(&%s, %s, %s)", c.Var, recv, key, value)
}

func (c BuilderConvention) PushBack(recv, value string) string {
	return fmt.Sprintf("%s.PushBack(&%s, %s)", c.Var, recv, value)
}

func (c BuilderConvention) Convert(ty, expr string) string {
	return fmt.Sprintf("%s.From(%s)", c.Var, expr)
}

// ConventionByName returns the convention registered under name.
func ConventionByName(name, builderVar string) (Convention, error) {
	switch name {
	case "", "package":
		return PackageConvention{}, nil
	case "builder":
		if builderVar == "" {
			builderVar = "b"
		}
		return BuilderConvention{Var: builderVar}, nil
	}
	return nil, fmt.Errorf("unknown call convention %q", name)
}
