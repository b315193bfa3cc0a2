package types

import (
	"fmt"
	"strconv"
)

// Value is a tagged union over the eight scalar element types. Integers of
// any width share the int64 slot, floats share the float64 slot; the kind
// records the declared width so extraction stays exact.
type Value struct {
	kind ElementType
	b    bool
	i    int64
	f    float64
	s    string
}

// BoolValue returns a Value of kind Bool.
func BoolValue(v bool) Value { return Value{kind: Bool, b: v} }

// Int8Value returns a Value of kind Int8.
func Int8Value(v int8) Value { return Value{kind: Int8, i: int64(v)} }

// Int16Value returns a Value of kind Int16.
func Int16Value(v int16) Value { return Value{kind: Int16, i: int64(v)} }

// Int32Value returns a Value of kind Int32.
func Int32Value(v int32) Value { return Value{kind: Int32, i: int64(v)} }

// Int64Value returns a Value of kind Int64.
func Int64Value(v int64) Value { return Value{kind: Int64, i: v} }

// Float32Value returns a Value of kind Float32.
func Float32Value(v float32) Value { return Value{kind: Float32, f: float64(v)} }

// Float64Value returns a Value of kind Float64.
func Float64Value(v float64) Value { return Value{kind: Float64, f: v} }

// StringValue returns a Value of kind String.
func StringValue(v string) Value { return Value{kind: String, s: v} }

// Kind returns the element type of the value.
func (v Value) Kind() ElementType { return v.kind }

// Bool returns the bool payload.
func (v Value) Bool() bool { return v.b }

// Int64 returns the integer payload widened to int64.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the float payload widened to float64.
func (v Value) Float64() float64 { return v.f }

// Str returns the string payload.
func (v Value) Str() string { return v.s }

// String returns a printable representation, used in diagnostics.
func (v Value) String() string {
	switch v.kind {
	case Bool:
		return strconv.FormatBool(v.b)
	case Int8, Int16, Int32, Int64:
		return strconv.FormatInt(v.i, 10)
	case Float32, Float64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case String:
		return strconv.Quote(v.s)
	default:
		return "<invalid>"
	}
}

// Compare orders v against o. Both values must share the same kind; the
// result is undefined otherwise. Bool orders false before true.
func (v Value) Compare(o Value) int {
	switch v.kind {
	case Bool:
		switch {
		case v.b == o.b:
			return 0
		case !v.b:
			return -1
		default:
			return 1
		}
	case Int8, Int16, Int32, Int64:
		switch {
		case v.i < o.i:
			return -1
		case v.i > o.i:
			return 1
		default:
			return 0
		}
	case Float32, Float64:
		switch {
		case v.f < o.f:
			return -1
		case v.f > o.f:
			return 1
		default:
			return 0
		}
	case String:
		switch {
		case v.s < o.s:
			return -1
		case v.s > o.s:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// ValueOf wraps a scalar in a Value of the matching kind.
func ValueOf[T Element](v T) Value {
	switch x := any(v).(type) {
	case bool:
		return BoolValue(x)
	case int8:
		return Int8Value(x)
	case int16:
		return Int16Value(x)
	case int32:
		return Int32Value(x)
	case int64:
		return Int64Value(x)
	case float32:
		return Float32Value(x)
	case float64:
		return Float64Value(x)
	case string:
		return StringValue(x)
	default:
		panic(fmt.Sprintf("types: unreachable element %T", v))
	}
}

// ValueAs extracts the scalar of type T from v. It fails when the value's
// kind does not match T exactly; no widening or narrowing is performed.
func ValueAs[T Element](v Value) (T, bool) {
	var zero T
	if v.kind != ElementTypeOf[T]() {
		return zero, false
	}
	switch any(zero).(type) {
	case bool:
		return any(v.b).(T), true
	case int8:
		return any(int8(v.i)).(T), true
	case int16:
		return any(int16(v.i)).(T), true
	case int32:
		return any(int32(v.i)).(T), true
	case int64:
		return any(v.i).(T), true
	case float32:
		return any(float32(v.f)).(T), true
	case float64:
		return any(v.f).(T), true
	case string:
		return any(v.s).(T), true
	default:
		return zero, false
	}
}
