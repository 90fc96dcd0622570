package domain

import "math"

// LayoutMode selects how symbol slots are packed onto a card face.
type LayoutMode string

const (
	// LayoutCircle uses a curated table for common symbol counts and
	// falls back to force-directed packing for everything else.
	LayoutCircle LayoutMode = "circle"
	// LayoutGrid places symbols in a centered grid.
	LayoutGrid LayoutMode = "grid"
)

// ResolveLayoutMode maps a raw mode string to a LayoutMode, defaulting
// to circle.
func ResolveLayoutMode(raw string) LayoutMode {
	if raw == string(LayoutGrid) {
		return LayoutGrid
	}
	return LayoutCircle
}

// Slot places one symbol on a card face: a normalized center position
// in [0,1]² and a scale expressed as a fraction of the card's minimum
// dimension.
type Slot struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// Layout holds one Slot per symbol, in input order.
type Layout []Slot

// Packer computes symbol layouts. It owns the curated tables and tuning
// constants, so layouts stay a pure function of (count, mode) with no
// package-level state. The zero value is not usable; use NewPacker.
type Packer struct {
	curated map[int]Layout

	ringRadius    float64 // initial ring around the center slot
	relaxIters    int     // fixed relaxation budget
	expandIters   int     // bounded scale-growth budget
	overlapFactor float64 // two slots collide under overlapFactor*(si+sj)
	edgeMargin    float64 // inward force kicks in below this edge margin
	expandMargin  float64 // tighter boundary required to accept growth
	growthStep    float64 // scale multiplier per accepted growth
}

// NewPacker returns a Packer with the standard tables and tuning.
func NewPacker() *Packer {
	return &Packer{
		curated:       curatedLayouts(),
		ringRadius:    0.35,
		relaxIters:    100,
		expandIters:   10,
		overlapFactor: 0.6,
		edgeMargin:    0.05,
		expandMargin:  0.02,
		growthStep:    1.05,
	}
}

// curatedLayouts are hand-tuned placements for small symbol counts.
// Algorithmic layouts for these counts look worse than curated ones, so
// they are pinned: one symbol near the center for counts above three,
// the rest arranged around it.
func curatedLayouts() map[int]Layout {
	return map[int]Layout{
		3: {
			{0.5, 0.25, 0.35},
			{0.7, 0.7, 0.35},
			{0.3, 0.7, 0.35},
		},
		4: {
			{0.5, 0.3, 0.30},
			{0.7, 0.6, 0.30},
			{0.5, 0.75, 0.30},
			{0.3, 0.6, 0.30},
		},
		5: {
			{0.5, 0.5, 0.35},
			{0.5, 0.22, 0.25},
			{0.78, 0.5, 0.25},
			{0.65, 0.78, 0.25},
			{0.35, 0.78, 0.25},
		},
		6: {
			{0.5, 0.5, 0.30},
			{0.5, 0.22, 0.22},
			{0.78, 0.35, 0.22},
			{0.78, 0.65, 0.22},
			{0.5, 0.78, 0.22},
			{0.22, 0.5, 0.22},
		},
		7: {
			{0.5, 0.5, 0.35},
			{0.5, 0.22, 0.22},
			{0.78, 0.35, 0.22},
			{0.78, 0.65, 0.22},
			{0.5, 0.78, 0.22},
			{0.22, 0.65, 0.22},
			{0.22, 0.35, 0.22},
		},
		8: {
			{0.5, 0.5, 0.35},
			{0.5, 0.22, 0.20},
			{0.78, 0.28, 0.20},
			{0.82, 0.5, 0.20},
			{0.78, 0.72, 0.20},
			{0.5, 0.78, 0.20},
			{0.22, 0.72, 0.20},
			{0.18, 0.5, 0.20},
		},
	}
}

// Pack returns one slot per symbol for a card holding n symbols. The
// result is deterministic: display jitter belongs to the renderer, not
// the packer.
func (p *Packer) Pack(n int, mode LayoutMode) Layout {
	if n <= 0 {
		return nil
	}
	if mode == LayoutGrid {
		return p.packGrid(n)
	}
	if curated, ok := p.curated[n]; ok {
		out := make(Layout, n)
		copy(out, curated)
		return out
	}
	return p.packSmart(n)
}

// packGrid centers each symbol in a cell of a near-square grid.
func (p *Packer) packGrid(n int) Layout {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	scale := 0.9 / float64(max(cols, rows))

	out := make(Layout, n)
	for i := 0; i < n; i++ {
		row, col := i/cols, i%cols
		out[i] = Slot{
			X:     (float64(col) + 0.5) / float64(cols),
			Y:     (float64(row) + 0.5) / float64(rows),
			Scale: scale,
		}
	}
	return out
}

// packSmart seeds a ring around an optional center slot, relaxes
// overlaps with pairwise repulsion, then greedily grows slots while
// growth stays collision-free.
func (p *Packer) packSmart(n int) Layout {
	out := make(Layout, n)
	scale := p.baseScale(n)

	first := 0
	if n > 3 {
		out[0] = Slot{X: 0.5, Y: 0.5, Scale: scale}
		first = 1
	}
	ring := n - first
	step := 2 * math.Pi / float64(ring)
	for i := 0; i < ring; i++ {
		angle := float64(i) * step
		out[first+i] = Slot{
			X:     0.5 + p.ringRadius*math.Cos(angle),
			Y:     0.5 + p.ringRadius*math.Sin(angle),
			Scale: scale,
		}
	}

	p.relax(out)
	p.expand(out)
	return out
}

// baseScale steps down as cards get busier.
func (p *Packer) baseScale(n int) float64 {
	switch {
	case n <= 5:
		return 0.25
	case n <= 8:
		return 0.20
	case n <= 12:
		return 0.16
	default:
		return 0.12
	}
}

// relax runs a fixed number of iterations pushing overlapping slot
// pairs apart and nudging edge-hugging slots inward, clamping every
// slot's extent into the unit square after each iteration.
func (p *Packer) relax(slots Layout) {
	for iter := 0; iter < p.relaxIters; iter++ {
		for i := range slots {
			for j := i + 1; j < len(slots); j++ {
				dx := slots[j].X - slots[i].X
				dy := slots[j].Y - slots[i].Y
				dist := math.Hypot(dx, dy)
				minDist := p.overlapFactor * (slots[i].Scale + slots[j].Scale)
				if dist >= minDist {
					continue
				}
				if dist < 1e-9 {
					// Coincident slots: separate along x.
					dx, dy, dist = 1, 0, 1
				}
				push := (minDist - dist) / 2
				ux, uy := dx/dist, dy/dist
				slots[i].X -= ux * push
				slots[i].Y -= uy * push
				slots[j].X += ux * push
				slots[j].Y += uy * push
			}
		}
		for i := range slots {
			p.pullInside(&slots[i])
			p.clampExtent(&slots[i])
		}
	}
}

// pullInside applies an inward force on a slot whose margin to the unit
// square edge, adjusted for its own half extent, drops under edgeMargin.
func (p *Packer) pullInside(s *Slot) {
	half := p.overlapFactor * s.Scale
	if m := s.X - half; m < p.edgeMargin {
		s.X += (p.edgeMargin - m) / 2
	}
	if m := 1 - s.X - half; m < p.edgeMargin {
		s.X -= (p.edgeMargin - m) / 2
	}
	if m := s.Y - half; m < p.edgeMargin {
		s.Y += (p.edgeMargin - m) / 2
	}
	if m := 1 - s.Y - half; m < p.edgeMargin {
		s.Y -= (p.edgeMargin - m) / 2
	}
}

// clampExtent keeps the slot's full extent (center ± overlapFactor·scale)
// inside [0,1]².
func (p *Packer) clampExtent(s *Slot) {
	half := p.overlapFactor * s.Scale
	s.X = math.Max(half, math.Min(1-half, s.X))
	s.Y = math.Max(half, math.Min(1-half, s.Y))
}

// expand grows each slot by growthStep per pass, keeping the growth
// only when it introduces no pairwise overlap and the slot stays inside
// the tightened boundary. Stops when a full pass grows nothing or the
// iteration budget runs out.
func (p *Packer) expand(slots Layout) {
	maxScale := p.baseScale(len(slots)) * 1.8
	for iter := 0; iter < p.expandIters; iter++ {
		grew := false
		for i := range slots {
			if slots[i].Scale >= maxScale {
				continue
			}
			prev := slots[i].Scale
			slots[i].Scale = math.Min(prev*p.growthStep, maxScale)
			if p.collides(slots, i) || !p.insideExpandBounds(slots[i]) {
				slots[i].Scale = prev
				continue
			}
			grew = true
		}
		if !grew {
			break
		}
	}
}

func (p *Packer) collides(slots Layout, i int) bool {
	for j := range slots {
		if j == i {
			continue
		}
		dist := math.Hypot(slots[j].X-slots[i].X, slots[j].Y-slots[i].Y)
		if dist < p.overlapFactor*(slots[i].Scale+slots[j].Scale) {
			return true
		}
	}
	return false
}

func (p *Packer) insideExpandBounds(s Slot) bool {
	half := p.overlapFactor * s.Scale
	return s.X-half >= p.expandMargin && s.X+half <= 1-p.expandMargin &&
		s.Y-half >= p.expandMargin && s.Y+half <= 1-p.expandMargin
}
