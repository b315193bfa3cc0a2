package types

import "testing"

func TestValueAs_ExactKind(t *testing.T) {
	v := Int32Value(42)

	got, ok := ValueAs[int32](v)
	if !ok || got != 42 {
		t.Fatalf("expected 42, got %v (ok=%v)", got, ok)
	}

	// no widening across integer widths
	if _, ok := ValueAs[int64](v); ok {
		t.Errorf("expected int64 extraction of Int32 value to fail")
	}
	if _, ok := ValueAs[float64](v); ok {
		t.Errorf("expected float64 extraction of Int32 value to fail")
	}
}

func TestValueOf_RoundTrip(t *testing.T) {
	if v, ok := ValueAs[string](ValueOf("abc")); !ok || v != "abc" {
		t.Errorf("string round trip failed")
	}
	if v, ok := ValueAs[bool](ValueOf(true)); !ok || !v {
		t.Errorf("bool round trip failed")
	}
	if v, ok := ValueAs[float32](ValueOf(float32(1.5))); !ok || v != 1.5 {
		t.Errorf("float32 round trip failed")
	}
	if ValueOf(int8(-3)).Kind() != Int8 {
		t.Errorf("expected Int8 kind")
	}
}

func TestValue_Compare(t *testing.T) {
	if Int64Value(1).Compare(Int64Value(2)) >= 0 {
		t.Errorf("expected 1 < 2")
	}
	if StringValue("b").Compare(StringValue("a")) <= 0 {
		t.Errorf("expected b > a")
	}
	if BoolValue(false).Compare(BoolValue(true)) >= 0 {
		t.Errorf("expected false < true")
	}
	if Float64Value(1.5).Compare(Float64Value(1.5)) != 0 {
		t.Errorf("expected equality")
	}
}

func TestElementTypeOf(t *testing.T) {
	if got := ElementTypeOf[int16](); got != Int16 {
		t.Errorf("expected Int16, got %s", got)
	}
	if got := ElementTypeOf[string](); got != String {
		t.Errorf("expected String, got %s", got)
	}
	if !Int64.PrimaryKeyEligible() || !String.PrimaryKeyEligible() {
		t.Errorf("expected i64 and string to be pk eligible")
	}
	if Float32.PrimaryKeyEligible() {
		t.Errorf("expected float32 to not be pk eligible")
	}
}
