package table

import "fmt"

// Kind identifies the declared type of a column.
type Kind string

const (
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
	KindBool   Kind = "bool"
)

// ValidKinds defines the allowed column kinds.
var ValidKinds = map[Kind]bool{
	KindInt:    true,
	KindFloat:  true,
	KindString: true,
	KindBool:   true,
}

// Value is a sealed interface representing a single cell.
// Only Null, Int, Float, String, and Bool implement it.
type Value interface {
	cell() // Sealed - only these types implement it
}

// Null represents a missing cell. A Null is admissible in a column of any
// kind; variants may forbid it per column (see internal/variant).
type Null struct{}

func (Null) cell() {}

// Int is an integer cell. Always int64.
type Int int64

func (Int) cell() {}

// Float is a floating-point cell.
type Float float64

func (Float) cell() {}

// String is a string cell.
type String string

func (String) cell() {}

// Bool is a boolean cell.
type Bool bool

func (Bool) cell() {}

// KindOf returns the kind a non-null value belongs to.
// Null has no kind; ok is false.
func KindOf(v Value) (Kind, bool) {
	switch v.(type) {
	case Int:
		return KindInt, true
	case Float:
		return KindFloat, true
	case String:
		return KindString, true
	case Bool:
		return KindBool, true
	default:
		return "", false
	}
}

// ValueEqual reports cell equality. Null equals only Null.
func ValueEqual(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	default:
		return false
	}
}

// admits reports whether a cell may live in a column of kind k.
// Null is admissible everywhere.
func admits(k Kind, v Value) bool {
	if _, isNull := v.(Null); isNull {
		return true
	}
	vk, ok := KindOf(v)
	return ok && vk == k
}

// formatValue renders a cell for display output.
func formatValue(v Value) string {
	switch val := v.(type) {
	case Null:
		return "NA"
	case Int:
		return fmt.Sprintf("%d", int64(val))
	case Float:
		return fmt.Sprintf("%g", float64(val))
	case String:
		return string(val)
	case Bool:
		return fmt.Sprintf("%t", bool(val))
	default:
		return fmt.Sprintf("<?%T>", v)
	}
}
