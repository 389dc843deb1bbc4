package fragment

import (
	"fmt"

	"github.com/google/uuid"
)

// BindingKind identifies the value category a Binding carries. The kind decides
// how a dialect converts the binding into a driver-level argument.
type BindingKind string

const (
	BindingNull    BindingKind = "null"
	BindingBool    BindingKind = "boolean"
	BindingInt8    BindingKind = "int8"
	BindingInt16   BindingKind = "int16"
	BindingInt32   BindingKind = "int32"
	BindingInt64   BindingKind = "int64"
	BindingFloat32 BindingKind = "float32"
	BindingFloat64 BindingKind = "float64"
	BindingText    BindingKind = "text"
	BindingBlob    BindingKind = "blob"
	BindingUUID    BindingKind = "uuid"
	BindingArray   BindingKind = "array"
	BindingInvalid BindingKind = "invalid"
)

// Binding is one typed value destined for a single positional SQL parameter.
// A Binding of kind BindingArray additionally carries the element kind in Elem.
// A Binding of kind BindingInvalid carries the encoding failure in Err; such a
// binding poisons any fragment it is part of, and the failure surfaces when
// that fragment is flattened.
type Binding struct {
	Kind  BindingKind `json:"kind"`
	Elem  BindingKind `json:"elem,omitempty"`
	Value any         `json:"value,omitempty"`
	Err   error       `json:"-"`
}

// EncodeError reports a value that could not be converted into a Binding.
type EncodeError struct {
	Value any
	Err   error
}

func (e *EncodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot encode value of type %T: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("cannot encode value of type %T", e.Value)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Null returns a binding carrying SQL NULL.
func Null() Binding {
	return Binding{Kind: BindingNull}
}

// Bool returns a boolean binding.
func Bool(v bool) Binding {
	return Binding{Kind: BindingBool, Value: v}
}

// Int8 returns an 8-bit integer binding.
func Int8(v int8) Binding {
	return Binding{Kind: BindingInt8, Value: v}
}

// Int16 returns a 16-bit integer binding.
func Int16(v int16) Binding {
	return Binding{Kind: BindingInt16, Value: v}
}

// Int32 returns a 32-bit integer binding.
func Int32(v int32) Binding {
	return Binding{Kind: BindingInt32, Value: v}
}

// Int64 returns a 64-bit integer binding.
func Int64(v int64) Binding {
	return Binding{Kind: BindingInt64, Value: v}
}

// Float32 returns a single-precision float binding.
func Float32(v float32) Binding {
	return Binding{Kind: BindingFloat32, Value: v}
}

// Float64 returns a double-precision float binding.
func Float64(v float64) Binding {
	return Binding{Kind: BindingFloat64, Value: v}
}

// Str returns a text binding.
func Str(v string) Binding {
	return Binding{Kind: BindingText, Value: v}
}

// Blob returns a binary binding.
func Blob(v []byte) Binding {
	return Binding{Kind: BindingBlob, Value: v}
}

// UUID returns a UUID binding.
func UUID(v uuid.UUID) Binding {
	return Binding{Kind: BindingUUID, Value: v}
}

// TextArray returns an array binding over text elements.
func TextArray(v []string) Binding {
	return Binding{Kind: BindingArray, Elem: BindingText, Value: v}
}

// Int64Array returns an array binding over 64-bit integer elements.
func Int64Array(v []int64) Binding {
	return Binding{Kind: BindingArray, Elem: BindingInt64, Value: v}
}

// Float64Array returns an array binding over double-precision float elements.
func Float64Array(v []float64) Binding {
	return Binding{Kind: BindingArray, Elem: BindingFloat64, Value: v}
}

// BoolArray returns an array binding over boolean elements.
func BoolArray(v []bool) Binding {
	return Binding{Kind: BindingArray, Elem: BindingBool, Value: v}
}

// Invalid returns a binding that records an encoding failure. Flattening a
// fragment containing an invalid binding fails with the carried error.
func Invalid(value any, err error) Binding {
	return Binding{Kind: BindingInvalid, Err: &EncodeError{Value: value, Err: err}}
}

// BindValue converts an arbitrary Go value into a Binding. Unsupported types
// produce an invalid binding rather than an immediate error, so that callers
// composing fragments do not need an error return on every append; the failure
// surfaces once, at flatten time.
func BindValue(v any) Binding {
	switch val := v.(type) {
	case nil:
		return Null()
	case Binding:
		return val
	case bool:
		return Bool(val)
	case int:
		return Int64(int64(val))
	case int8:
		return Int8(val)
	case int16:
		return Int16(val)
	case int32:
		return Int32(val)
	case int64:
		return Int64(val)
	case float32:
		return Float32(val)
	case float64:
		return Float64(val)
	case string:
		return Str(val)
	case []byte:
		return Blob(val)
	case uuid.UUID:
		return UUID(val)
	case []string:
		return TextArray(val)
	case []int64:
		return Int64Array(val)
	case []float64:
		return Float64Array(val)
	case []bool:
		return BoolArray(val)
	default:
		return Invalid(v, fmt.Errorf("no binding kind for Go type %T", v))
	}
}

// IsNull reports whether the binding carries SQL NULL.
func (b Binding) IsNull() bool {
	return b.Kind == BindingNull
}

// IsInvalid reports whether the binding records an encoding failure.
func (b Binding) IsInvalid() bool {
	return b.Kind == BindingInvalid
}
