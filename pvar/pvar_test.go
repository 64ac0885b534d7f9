package pvar

import "testing"

func TestFreshAssignsIncreasingHandles(t *testing.T) {
	m := NewManager()
	a := m.Fresh(4)
	b := m.Fresh(8)
	if a == VarNull || b == VarNull || b <= a {
		t.Fatalf("expected two increasing non-null handles, got %v, %v", a, b)
	}
	if m.Width(a) != 4 || m.Width(b) != 8 {
		t.Fatalf("widths not recorded correctly: %d, %d", m.Width(a), m.Width(b))
	}
}

func TestMaskAndMaxVal(t *testing.T) {
	m := NewManager()
	v := m.Fresh(4)
	if m.Mask(v) != 0xF {
		t.Fatalf("expected mask 0xF for width 4, got %#x", m.Mask(v))
	}
	if m.MaxVal(v) != m.Mask(v) {
		t.Fatal("MaxVal should equal Mask")
	}
}

func TestTwoToNWraps64(t *testing.T) {
	m := NewManager()
	v := m.Fresh(64)
	if m.TwoToN(v) != 0 {
		t.Fatalf("2^64 should report as 0 (overflow sentinel), got %d", m.TwoToN(v))
	}
	if m.Mask(v) != ^uint64(0) {
		t.Fatal("width-64 mask should be all ones")
	}
}

func TestFreshRejectsOutOfRangeWidth(t *testing.T) {
	m := NewManager()
	defer func() {
		if recover() == nil {
			t.Fatal("Fresh should panic on width 0")
		}
	}()
	m.Fresh(0)
}

func TestWidthPanicsOnUnknownVar(t *testing.T) {
	m := NewManager()
	defer func() {
		if recover() == nil {
			t.Fatal("Width should panic on VarNull")
		}
	}()
	m.Width(VarNull)
}
