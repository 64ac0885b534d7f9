package egraph

import (
	"testing"

	"github.com/go-polysat/polysat/pvar"
)

func TestGetBitvectorSuffixes(t *testing.T) {
	g := NewSimple()
	pvars := pvar.NewManager()

	wide := g.NewTerm(8)
	lo := g.NewTerm(4)
	g.AddSlice(wide, lo, 0, 4)

	pWide := pvars.Fresh(8)
	pLo := pvars.Fresh(4)
	g.SetThVar(wide, pWide)
	g.SetThVar(lo, pLo)
	nodes := map[pvar.Var]Node{pWide: wide, pLo: lo}
	a := NewAdapter(g, nodes)

	got := a.GetBitvectorSuffixes(pWide)
	if len(got) != 1 || got[0] != pLo {
		t.Fatalf("expected [%v], got %v", pLo, got)
	}
}

func TestGetBitvectorSubSlicesExcludesNonZeroForSuffixesOnly(t *testing.T) {
	g := NewSimple()
	pvars := pvar.NewManager()

	wide := g.NewTerm(8)
	hi := g.NewTerm(4)
	g.AddSlice(wide, hi, 4, 4)

	pWide := pvars.Fresh(8)
	pHi := pvars.Fresh(4)
	g.SetThVar(wide, pWide)
	g.SetThVar(hi, pHi)
	a := NewAdapter(g, map[pvar.Var]Node{pWide: wide, pHi: hi})

	if got := a.GetBitvectorSuffixes(pWide); len(got) != 0 {
		t.Fatalf("a sub-slice at offset 4 should not count as a suffix, got %v", got)
	}
	if got := a.GetBitvectorSubSlices(pWide); len(got) != 1 || got[0] != pHi {
		t.Fatalf("GetBitvectorSubSlices should see the offset-4 sub-slice, got %v", got)
	}
}

func TestGetFixedBits(t *testing.T) {
	g := NewSimple()
	pvars := pvar.NewManager()

	wide := g.NewTerm(8)
	fixed := g.NewNumeral(4, 0xA)
	g.AddSlice(wide, fixed, 0, 4)

	pWide := pvars.Fresh(8)
	a := NewAdapter(g, map[pvar.Var]Node{pWide: wide})

	ranges := a.GetFixedBits(pWide)
	if len(ranges) != 1 {
		t.Fatalf("expected one fixed range, got %d", len(ranges))
	}
	r := ranges[0]
	if r.Lo != 0 || r.Hi != 4 || r.Value != 0xA {
		t.Fatalf("unexpected fixed range %+v", r)
	}
}

func TestUnionMakesRootsEqual(t *testing.T) {
	g := NewSimple()
	a := g.NewTerm(4)
	b := g.NewTerm(4)
	if g.GetRoot(a) == g.GetRoot(b) {
		t.Fatal("a and b should start in distinct classes")
	}
	g.Union(a, b)
	if g.GetRoot(a) != g.GetRoot(b) {
		t.Fatal("Union should merge a and b's equivalence classes")
	}
}

func TestThVarFollowsRoot(t *testing.T) {
	g := NewSimple()
	pvars := pvar.NewManager()
	pv := pvars.Fresh(4)

	a := g.NewTerm(4)
	b := g.NewTerm(4)
	g.SetThVar(a, pv)
	g.Union(a, b)

	if g.ThVar(b) != pv {
		t.Fatal("ThVar should resolve through the union-find root")
	}
}
