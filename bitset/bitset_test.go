package bitset

import "testing"

func TestBitSet_SetTestClear(t *testing.T) {
	b := New(100)

	if b.Len() != 100 {
		t.Errorf("expected len 100, got %d", b.Len())
	}

	b.Set(10)
	if !b.Test(10) {
		t.Errorf("expected bit 10 to be set")
	}
	if b.Count() != 1 {
		t.Errorf("expected count 1, got %d", b.Count())
	}

	b.Clear(10)
	if b.Test(10) {
		t.Errorf("expected bit 10 to be clear")
	}

	b.SetTo(20, true)
	b.SetTo(20, false)
	if b.Test(20) {
		t.Errorf("expected bit 20 to be clear")
	}
}

func TestBitSet_Algebra(t *testing.T) {
	a := New(70)
	b := New(70)
	a.Set(1)
	a.Set(65)
	b.Set(1)
	b.Set(2)

	and := a.Clone()
	and.And(b)
	if and.Count() != 1 || !and.Test(1) {
		t.Errorf("and: got %s", and.String())
	}

	or := a.Clone()
	or.Or(b)
	if or.Count() != 3 {
		t.Errorf("or: got %s", or.String())
	}

	xor := a.Clone()
	xor.Xor(b)
	if xor.Count() != 2 || xor.Test(1) || !xor.Test(2) || !xor.Test(65) {
		t.Errorf("xor: got %s", xor.String())
	}

	minus := a.Clone()
	minus.AndNot(b)
	if minus.Count() != 1 || !minus.Test(65) {
		t.Errorf("minus: got %s", minus.String())
	}
}

func TestBitSet_FlipMasksTail(t *testing.T) {
	b := New(66)
	b.Set(0)
	b.Flip()

	if b.Test(0) {
		t.Errorf("expected bit 0 to be clear after flip")
	}
	if b.Count() != 65 {
		t.Errorf("expected count 65 after flip, got %d", b.Count())
	}

	b.Flip()
	if b.Count() != 1 || !b.Test(0) {
		t.Errorf("double flip should restore, got %s", b.String())
	}
}

func TestBitSet_Assemble(t *testing.T) {
	a := New(2)
	a.Set(1)
	b := New(3)
	b.Set(0)
	c := New(1)

	res := Assemble([]*BitSet{a, b, c})
	if res.Len() != 6 {
		t.Fatalf("expected len 6, got %d", res.Len())
	}
	if res.String() != "011000" {
		t.Errorf("expected 011000, got %s", res.String())
	}
}

func TestBitSet_LengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on operand length mismatch")
		}
	}()
	a := New(3)
	b := New(4)
	a.And(b)
}

func TestBitSet_Equal(t *testing.T) {
	a := New(10)
	b := New(10)
	a.Set(3)
	if a.Equal(b) {
		t.Errorf("expected inequality")
	}
	b.Set(3)
	if !a.Equal(b) {
		t.Errorf("expected equality")
	}
	if a.Equal(New(11)) {
		t.Errorf("expected length inequality")
	}
}
