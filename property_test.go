// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import (
	"math/rand/v2"
	"testing"
)

// gridSize bounds the random regions so a bitmap can serve as the oracle.
const gridSize = 32

type bitmap [gridSize][gridSize]bool

func bitmapOf(r *Region) bitmap {
	var m bitmap
	for b := range r.All() {
		for y := max(b.Y1, 0); y < min(b.Y2, gridSize); y++ {
			for x := max(b.X1, 0); x < min(b.X2, gridSize); x++ {
				m[y][x] = true
			}
		}
	}
	return m
}

func (m *bitmap) combine(o *bitmap, f func(a, b bool) bool) bitmap {
	var out bitmap
	for y := range gridSize {
		for x := range gridSize {
			out[y][x] = f(m[y][x], o[y][x])
		}
	}
	return out
}

// region converts the bitmap through the row-major coverage path, which
// shares no code with the operators.
func (m *bitmap) region(t *testing.T) *Region {
	t.Helper()
	var spans SpanList
	for y := range gridSize {
		for x := 0; x < gridSize; x++ {
			if !m[y][x] {
				continue
			}
			start := x
			for x < gridSize && m[y][x] {
				x++
			}
			spans = append(spans, Span{Y: y, X1: start, X2: x})
		}
	}
	r, err := FromCoverage(spans)
	if err != nil {
		t.Fatalf("FromCoverage() error = %v", err)
	}
	return r
}

func randomRegion(t *testing.T, rng *rand.Rand) *Region {
	t.Helper()
	n := rng.IntN(6)
	boxes := make([]Box, 0, n)
	for range n {
		x, y := rng.IntN(gridSize), rng.IntN(gridSize)
		w, h := rng.IntN(gridSize-x)+1, rng.IntN(gridSize-y)+1
		boxes = append(boxes, XYWH(x, y, w, h))
	}
	return regionOf(t, boxes...)
}

func TestProperty_OperatorsMatchBitmap(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	ops := []struct {
		name string
		op   func(r, a, b *Region) error
		bit  func(a, b bool) bool
	}{
		{"Union", (*Region).Union, func(a, b bool) bool { return a || b }},
		{"Intersect", (*Region).Intersect, func(a, b bool) bool { return a && b }},
		{"Subtract", (*Region).Subtract, func(a, b bool) bool { return a && !b }},
		{"Xor", (*Region).Xor, func(a, b bool) bool { return a != b }},
	}

	for i := range 300 {
		a, b := randomRegion(t, rng), randomRegion(t, rng)
		ma, mb := bitmapOf(a), bitmapOf(b)

		for _, op := range ops {
			var r Region
			if err := op.op(&r, a, b); err != nil {
				t.Fatalf("#%d %s() error = %v", i, op.name, err)
			}
			if err := r.SelfCheck(); err != nil {
				t.Fatalf("#%d %s(%v, %v) not canonical: %v", i, op.name, a, b, err)
			}
			want := ma.combine(&mb, op.bit)
			if bitmapOf(&r) != want {
				t.Fatalf("#%d %s(%v, %v) = %v covers the wrong points", i, op.name, a, b, &r)
			}
			// Canonical form is unique: any other construction of the same
			// point set yields the same box list.
			if canon := want.region(t); !r.Equal(canon) {
				t.Fatalf("#%d %s(%v, %v) = %v, canonical %v", i, op.name, a, b, &r, canon)
			}
		}
	}
}

func TestProperty_Algebra(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	clip := Box{0, 0, gridSize, gridSize}

	apply := func(op func(r, a, b *Region) error, a, b *Region) *Region {
		t.Helper()
		var r Region
		if err := op(&r, a, b); err != nil {
			t.Fatal(err)
		}
		return &r
	}
	union, inter, sub := (*Region).Union, (*Region).Intersect, (*Region).Subtract

	for i := range 200 {
		a, b, c := randomRegion(t, rng), randomRegion(t, rng), randomRegion(t, rng)

		// Idempotence and identities.
		if !apply(union, a, a).Equal(a) || !apply(inter, a, a).Equal(a) {
			t.Fatalf("#%d idempotence fails for %v", i, a)
		}
		if !apply(union, a, New()).Equal(a) || apply(inter, a, New()).NotEmpty() {
			t.Fatalf("#%d empty identity fails for %v", i, a)
		}
		if apply(sub, a, a).NotEmpty() {
			t.Fatalf("#%d a \\ a not empty for %v", i, a)
		}

		// Commutativity and associativity.
		if !apply(union, a, b).Equal(apply(union, b, a)) {
			t.Fatalf("#%d union not commutative: %v, %v", i, a, b)
		}
		if !apply(inter, a, b).Equal(apply(inter, b, a)) {
			t.Fatalf("#%d intersect not commutative: %v, %v", i, a, b)
		}
		if !apply(union, apply(union, a, b), c).Equal(apply(union, a, apply(union, b, c))) {
			t.Fatalf("#%d union not associative", i)
		}

		// a \ b == a ∩ inverse(b).
		var inv Region
		if err := inv.Inverse(b, clip); err != nil {
			t.Fatal(err)
		}
		if !apply(sub, a, b).Equal(apply(inter, a, &inv)) {
			t.Fatalf("#%d subtract differs from intersect with inverse", i)
		}

		// De Morgan: inverse(a ∪ b) == inverse(a) ∩ inverse(b).
		var invA, invAB Region
		if err := invA.Inverse(a, clip); err != nil {
			t.Fatal(err)
		}
		if err := invAB.Inverse(apply(union, a, b), clip); err != nil {
			t.Fatal(err)
		}
		if !invAB.Equal(apply(inter, &invA, &inv)) {
			t.Fatalf("#%d De Morgan fails for %v, %v", i, a, b)
		}

		// Area is additive over a disjoint split.
		if got, want := apply(sub, a, b).Area()+apply(inter, a, b).Area(), a.Area(); got != want {
			t.Fatalf("#%d area split = %d, want %d", i, got, want)
		}
	}
}

func TestProperty_ContainsConsistent(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))

	for i := range 100 {
		r := randomRegion(t, rng)
		m := bitmapOf(r)

		for y := range gridSize {
			for x := range gridSize {
				b, ok := r.ContainsPoint(x, y)
				if ok != m[y][x] {
					t.Fatalf("#%d ContainsPoint(%d, %d) = %v, want %v in %v", i, x, y, ok, m[y][x], r)
				}
				if ok && !b.ContainsPoint(x, y) {
					t.Fatalf("#%d ContainsPoint(%d, %d) returned box %v", i, x, y, b)
				}
			}
		}

		for range 20 {
			x, y := rng.IntN(gridSize), rng.IntN(gridSize)
			q := XYWH(x, y, rng.IntN(gridSize-x)+1, rng.IntN(gridSize-y)+1)

			in, out := 0, 0
			for py := q.Y1; py < q.Y2; py++ {
				for px := q.X1; px < q.X2; px++ {
					if m[py][px] {
						in++
					} else {
						out++
					}
				}
			}
			want := OverlapPart
			switch {
			case in == 0:
				want = OverlapOut
			case out == 0:
				want = OverlapIn
			}
			if got := r.ContainsRect(q); got != want {
				t.Fatalf("#%d ContainsRect(%v) = %v, want %v in %v", i, q, got, want, r)
			}
		}
	}
}

func TestProperty_TranslateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for i := range 100 {
		r := randomRegion(t, rng)
		orig := r.Clone()
		dx, dy := rng.IntN(2001)-1000, rng.IntN(2001)-1000

		r.Translate(dx, dy)
		mustSelfCheck(t, r)
		if r.Area() != orig.Area() || r.NumRects() != orig.NumRects() {
			t.Fatalf("#%d Translate(%d, %d) changed the shape", i, dx, dy)
		}
		r.Translate(-dx, -dy)
		if !r.Equal(orig) {
			t.Fatalf("#%d round trip = %v, want %v", i, r, orig)
		}
	}
}

func TestProperty_FromRectsMatchesUnion(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for i := range 200 {
		n := rng.IntN(12)
		var boxes []Box
		want := New()
		for range n {
			x, y := rng.IntN(gridSize), rng.IntN(gridSize)
			b := XYWH(x, y, rng.IntN(gridSize-x)+1, rng.IntN(gridSize-y)+1)
			boxes = append(boxes, b)
			if err := want.UnionRect(want, b); err != nil {
				t.Fatal(err)
			}
		}

		got, ok := FromRects(boxes)
		mustSelfCheck(t, got)
		if !got.Equal(want) {
			t.Fatalf("#%d FromRects(%v) = %v, want %v", i, boxes, got, want)
		}

		var sum uint64
		for _, b := range boxes {
			sum += b.Area()
		}
		if disjoint := sum == want.Area(); ok != disjoint {
			t.Fatalf("#%d FromRects(%v) ok = %v, want %v", i, boxes, ok, disjoint)
		}
	}
}
