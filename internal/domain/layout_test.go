package domain_test

import (
	"math"
	"testing"

	"github.com/istinmth/dobble-generator/internal/domain"
)

func TestPack_CuratedTables(t *testing.T) {
	// The curated placements are pinned for visual parity.
	want := map[int]domain.Layout{
		3: {
			{X: 0.5, Y: 0.25, Scale: 0.35},
			{X: 0.7, Y: 0.7, Scale: 0.35},
			{X: 0.3, Y: 0.7, Scale: 0.35},
		},
		8: {
			{X: 0.5, Y: 0.5, Scale: 0.35},
			{X: 0.5, Y: 0.22, Scale: 0.20},
			{X: 0.78, Y: 0.28, Scale: 0.20},
			{X: 0.82, Y: 0.5, Scale: 0.20},
			{X: 0.78, Y: 0.72, Scale: 0.20},
			{X: 0.5, Y: 0.78, Scale: 0.20},
			{X: 0.22, Y: 0.72, Scale: 0.20},
			{X: 0.18, Y: 0.5, Scale: 0.20},
		},
	}

	p := domain.NewPacker()
	for n, layout := range want {
		got := p.Pack(n, domain.LayoutCircle)
		if len(got) != n {
			t.Fatalf("n=%d: got %d slots, want %d", n, len(got), n)
		}
		for i := range layout {
			if got[i] != layout[i] {
				t.Errorf("n=%d slot %d: got %+v, want %+v", n, i, got[i], layout[i])
			}
		}
	}
}

func TestPack_Contract(t *testing.T) {
	p := domain.NewPacker()
	for _, mode := range []domain.LayoutMode{domain.LayoutCircle, domain.LayoutGrid} {
		for n := 1; n <= 40; n++ {
			layout := p.Pack(n, mode)
			if len(layout) != n {
				t.Fatalf("mode %s n=%d: got %d slots, want %d", mode, n, len(layout), n)
			}
			for i, s := range layout {
				if s.X < 0 || s.X > 1 || s.Y < 0 || s.Y > 1 {
					t.Errorf("mode %s n=%d slot %d: position (%v, %v) outside unit square", mode, n, i, s.X, s.Y)
				}
				if s.Scale <= 0 || s.Scale > 1 {
					t.Errorf("mode %s n=%d slot %d: scale %v out of range", mode, n, i, s.Scale)
				}
			}
		}
	}
}

func TestPack_Deterministic(t *testing.T) {
	p := domain.NewPacker()
	for _, n := range []int{9, 13, 20} {
		a := p.Pack(n, domain.LayoutCircle)
		b := p.Pack(n, domain.LayoutCircle)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("n=%d: slot %d differs between calls", n, i)
			}
		}
	}
}

func TestPack_GridCells(t *testing.T) {
	p := domain.NewPacker()
	layout := p.Pack(9, domain.LayoutGrid)

	// 9 symbols pack into a 3x3 grid with cell-centered slots.
	wantScale := 0.9 / 3
	for i, s := range layout {
		if math.Abs(s.Scale-wantScale) > 1e-9 {
			t.Errorf("slot %d scale %v, want %v", i, s.Scale, wantScale)
		}
	}
	if layout[0].X != layout[3].X || layout[0].X != layout[6].X {
		t.Errorf("first column not aligned: %v %v %v", layout[0].X, layout[3].X, layout[6].X)
	}
	if layout[4].X != 0.5 || layout[4].Y != 0.5 {
		t.Errorf("middle cell at (%v, %v), want (0.5, 0.5)", layout[4].X, layout[4].Y)
	}
}

func TestPack_GridNoOverlap(t *testing.T) {
	p := domain.NewPacker()
	for _, n := range []int{4, 9, 16, 25} {
		layout := p.Pack(n, domain.LayoutGrid)
		for i := range layout {
			for j := i + 1; j < len(layout); j++ {
				dx := layout[j].X - layout[i].X
				dy := layout[j].Y - layout[i].Y
				dist := math.Hypot(dx, dy)
				// Icons are scale-sized boxes, so centers must sit at
				// least the sum of their half sizes apart.
				if dist < (layout[i].Scale+layout[j].Scale)/2 {
					t.Errorf("n=%d: grid slots %d and %d overlap", n, i, j)
				}
			}
		}
	}
}

func TestPack_Empty(t *testing.T) {
	p := domain.NewPacker()
	if got := p.Pack(0, domain.LayoutCircle); got != nil {
		t.Errorf("Pack(0) = %v, want nil", got)
	}
}

func TestResolveLayoutMode(t *testing.T) {
	if domain.ResolveLayoutMode("grid") != domain.LayoutGrid {
		t.Error("grid not resolved")
	}
	for _, raw := range []string{"", "circle", "bogus"} {
		if domain.ResolveLayoutMode(raw) != domain.LayoutCircle {
			t.Errorf("%q: want circle fallback", raw)
		}
	}
}
