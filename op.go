// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

// maxBoxes bounds the storage a single region may hold. Growing a result
// past it fails with ErrTooManyBoxes instead of exhausting memory.
// It is a variable so tests can exercise the failure path.
var maxBoxes = 1 << 26

// coordSpace is the box covering every representable coordinate.
var coordSpace = Box{X1: MinCoord, Y1: MinCoord, X2: MaxCoord, Y2: MaxCoord}

// builder accumulates the output boxes of a band sweep.
type builder struct {
	boxes []Box
	err   error
}

func newBuilder(capHint int) *builder {
	return &builder{boxes: make([]Box, 0, min(capHint, maxBoxes))}
}

// add appends one box. After the first failure further adds are ignored
// and the sweep reports the error when it finishes.
func (bld *builder) add(x1, y1, x2, y2 int) {
	if bld.err != nil {
		return
	}
	if len(bld.boxes) >= maxBoxes {
		bld.err = ErrTooManyBoxes
		return
	}
	bld.boxes = append(bld.boxes, Box{X1: x1, Y1: y1, X2: x2, Y2: y2})
}

// appendBand copies the boxes of a band, clamped vertically to [y1, y2).
func (bld *builder) appendBand(band []Box, y1, y2 int) {
	for _, b := range band {
		bld.add(b.X1, y1, b.X2, y2)
	}
}

// appendRest copies whole bands verbatim.
func (bld *builder) appendRest(boxes []Box) {
	if bld.err != nil {
		return
	}
	if len(bld.boxes)+len(boxes) > maxBoxes {
		bld.err = ErrTooManyBoxes
		return
	}
	bld.boxes = append(bld.boxes, boxes...)
}

// coalesce merges the band starting at cur into the band starting at prev
// when the two are vertically adjacent and have identical x-spans. The
// band at cur must be the last band in the builder. It returns the start
// of the band that later bands should be compared against.
func (bld *builder) coalesce(prev, cur int) int {
	n := cur - prev
	if n == 0 || len(bld.boxes)-cur != n {
		return cur
	}
	if bld.boxes[prev].Y2 != bld.boxes[cur].Y1 {
		return cur
	}
	for i := 0; i < n; i++ {
		p, c := bld.boxes[prev+i], bld.boxes[cur+i]
		if p.X1 != c.X1 || p.X2 != c.X2 {
			return cur
		}
	}
	y2 := bld.boxes[cur].Y2
	for i := prev; i < cur; i++ {
		bld.boxes[i].Y2 = y2
	}
	bld.boxes = bld.boxes[:cur]
	return prev
}

// overlapFunc emits the boxes for the y-range [y1, y2) where a band of each
// operand is active. a and b are both non-empty and sorted by X1.
type overlapFunc func(bld *builder, a, b []Box, y1, y2 int)

// regionOp is the band sweep shared by the boolean operators.
//
// It walks both box lists top to bottom. Where only one operand has a band,
// the band is copied if the operator keeps that operand's lone parts
// (keepA/keepB). Where both have bands, overlap computes the 1-D interval
// operation. Each emitted band is coalesced with the one above it, so the
// result is canonical.
func regionOp(a, b []Box, overlap overlapFunc, keepA, keepB bool) ([]Box, error) {
	bld := newBuilder(2 * (len(a) + len(b)))

	ia, ib := 0, 0
	prev := 0
	// ybot is the bottom of the last y-range handled; the unconsumed part
	// of the current band of either operand starts at max(top, ybot).
	ybot := min(a[0].Y1, b[0].Y1)

	for ia < len(a) && ib < len(b) {
		aEnd := bandEnd(a, ia)
		bEnd := bandEnd(b, ib)
		aTop, bTop := a[ia].Y1, b[ib].Y1

		var ytop int
		switch {
		case aTop < bTop:
			if keepA {
				top := max(aTop, ybot)
				bot := min(a[ia].Y2, bTop)
				if top != bot {
					cur := len(bld.boxes)
					bld.appendBand(a[ia:aEnd], top, bot)
					prev = bld.coalesce(prev, cur)
				}
			}
			ytop = bTop
		case bTop < aTop:
			if keepB {
				top := max(bTop, ybot)
				bot := min(b[ib].Y2, aTop)
				if top != bot {
					cur := len(bld.boxes)
					bld.appendBand(b[ib:bEnd], top, bot)
					prev = bld.coalesce(prev, cur)
				}
			}
			ytop = aTop
		default:
			ytop = aTop
		}

		ybot = min(a[ia].Y2, b[ib].Y2)
		if ybot > ytop {
			cur := len(bld.boxes)
			overlap(bld, a[ia:aEnd], b[ib:bEnd], ytop, ybot)
			prev = bld.coalesce(prev, cur)
		}

		if a[ia].Y2 == ybot {
			ia = aEnd
		}
		if b[ib].Y2 == ybot {
			ib = bEnd
		}
	}

	if ia < len(a) && keepA {
		aEnd := bandEnd(a, ia)
		cur := len(bld.boxes)
		bld.appendBand(a[ia:aEnd], max(a[ia].Y1, ybot), a[ia].Y2)
		bld.coalesce(prev, cur)
		bld.appendRest(a[aEnd:])
	} else if ib < len(b) && keepB {
		bEnd := bandEnd(b, ib)
		cur := len(bld.boxes)
		bld.appendBand(b[ib:bEnd], max(b[ib].Y1, ybot), b[ib].Y2)
		bld.coalesce(prev, cur)
		bld.appendRest(b[bEnd:])
	}

	if bld.err != nil {
		return nil, bld.err
	}
	return bld.boxes, nil
}

// unionBand merges two sorted x-span lists, joining spans that overlap or
// touch.
func unionBand(bld *builder, a, b []Box, y1, y2 int) {
	var x1, x2 int
	ia, ib := 0, 0

	if a[0].X1 < b[0].X1 {
		x1, x2 = a[0].X1, a[0].X2
		ia++
	} else {
		x1, x2 = b[0].X1, b[0].X2
		ib++
	}

	merge := func(s Box) {
		if s.X1 <= x2 {
			if x2 < s.X2 {
				x2 = s.X2
			}
			return
		}
		bld.add(x1, y1, x2, y2)
		x1, x2 = s.X1, s.X2
	}

	for ia < len(a) && ib < len(b) {
		if a[ia].X1 < b[ib].X1 {
			merge(a[ia])
			ia++
		} else {
			merge(b[ib])
			ib++
		}
	}
	for ; ia < len(a); ia++ {
		merge(a[ia])
	}
	for ; ib < len(b); ib++ {
		merge(b[ib])
	}
	bld.add(x1, y1, x2, y2)
}

// intersectBand emits the x-spans covered by both lists.
func intersectBand(bld *builder, a, b []Box, y1, y2 int) {
	ia, ib := 0, 0
	for ia < len(a) && ib < len(b) {
		x1 := max(a[ia].X1, b[ib].X1)
		x2 := min(a[ia].X2, b[ib].X2)
		if x1 < x2 {
			bld.add(x1, y1, x2, y2)
		}
		// Advance whichever span ends first; both when they end together.
		if a[ia].X2 == x2 {
			ia++
		}
		if b[ib].X2 == x2 {
			ib++
		}
	}
}

// subtractBand emits the x-spans of a not covered by b.
func subtractBand(bld *builder, a, b []Box, y1, y2 int) {
	ia, ib := 0, 0
	x1 := a[0].X1

	// nextMinuend moves to the next span of a.
	nextMinuend := func() {
		ia++
		if ia < len(a) {
			x1 = a[ia].X1
		}
	}

	for ia < len(a) && ib < len(b) {
		s, m := b[ib], a[ia]
		switch {
		case s.X2 <= x1:
			// Subtrahend entirely to the left.
			ib++
		case s.X1 <= x1:
			// Subtrahend covers the left edge of what remains.
			x1 = s.X2
			if x1 >= m.X2 {
				nextMinuend()
			} else {
				ib++
			}
		case s.X1 < m.X2:
			// Left part of the minuend survives.
			bld.add(x1, y1, s.X1, y2)
			x1 = s.X2
			if x1 >= m.X2 {
				nextMinuend()
			} else {
				ib++
			}
		default:
			// Subtrahend starts past the minuend.
			if m.X2 > x1 {
				bld.add(x1, y1, m.X2, y2)
			}
			nextMinuend()
		}
	}
	for ia < len(a) {
		bld.add(x1, y1, a[ia].X2, y2)
		nextMinuend()
	}
}

func checkOperands(dst, a, b *Region) error {
	if dst == nil || a == nil || b == nil {
		return ErrNilRegion
	}
	return nil
}

// Union sets r to a ∪ b. r may alias a or b.
// On error r, a and b are unchanged.
func (r *Region) Union(a, b *Region) error {
	if err := checkOperands(r, a, b); err != nil {
		return err
	}

	switch {
	case a == b || b.IsEmpty():
		r.Set(a)
		return nil
	case a.IsEmpty():
		r.Set(b)
		return nil
	case len(a.boxes) == 1 && a.extents.Contains(b.extents):
		r.Set(a)
		return nil
	case len(b.boxes) == 1 && b.extents.Contains(a.extents):
		r.Set(b)
		return nil
	}

	boxes, err := regionOp(a.boxes, b.boxes, unionBand, true, true)
	if err != nil {
		return err
	}
	r.boxes = boxes
	r.extents = a.extents.Bound(b.extents)
	return nil
}

// Intersect sets r to a ∩ b. r may alias a or b.
// On error r, a and b are unchanged.
func (r *Region) Intersect(a, b *Region) error {
	if err := checkOperands(r, a, b); err != nil {
		return err
	}

	switch {
	case a == b:
		r.Set(a)
		return nil
	case a.IsEmpty() || b.IsEmpty() || !a.extents.Overlaps(b.extents):
		r.Clear()
		return nil
	case len(a.boxes) == 1 && len(b.boxes) == 1:
		r.setBox(a.extents.Intersect(b.extents))
		return nil
	case len(b.boxes) == 1 && b.extents.Contains(a.extents):
		r.Set(a)
		return nil
	case len(a.boxes) == 1 && a.extents.Contains(b.extents):
		r.Set(b)
		return nil
	}

	boxes, err := regionOp(a.boxes, b.boxes, intersectBand, false, false)
	if err != nil {
		return err
	}
	r.setBoxes(boxes)
	return nil
}

// Subtract sets r to a \ b, the points of a not in b. r may alias a or b.
// On error r, a and b are unchanged.
func (r *Region) Subtract(a, b *Region) error {
	if err := checkOperands(r, a, b); err != nil {
		return err
	}

	switch {
	case a == b:
		r.Clear()
		return nil
	case a.IsEmpty() || b.IsEmpty() || !a.extents.Overlaps(b.extents):
		r.Set(a)
		return nil
	}

	boxes, err := regionOp(a.boxes, b.boxes, subtractBand, true, false)
	if err != nil {
		return err
	}
	r.setBoxes(boxes)
	return nil
}

// Xor sets r to the points in exactly one of a and b. r may alias a or b.
func (r *Region) Xor(a, b *Region) error {
	if err := checkOperands(r, a, b); err != nil {
		return err
	}
	var aOnly, bOnly Region
	if err := aOnly.Subtract(a, b); err != nil {
		return err
	}
	if err := bOnly.Subtract(b, a); err != nil {
		return err
	}
	return r.Union(&aOnly, &bOnly)
}

// rectOperand wraps a box argument as a temporary single-box region.
func rectOperand(b Box) (*Region, error) {
	if err := checkBox(b); err != nil {
		return nil, err
	}
	tmp := &Region{}
	if !b.Empty() {
		tmp.extents = b
		tmp.boxes = []Box{b}
	}
	return tmp, nil
}

// UnionRect sets r to a ∪ b. The result is identical to Union with a
// single-box region.
func (r *Region) UnionRect(a *Region, b Box) error {
	if r == nil || a == nil {
		return ErrNilRegion
	}
	if err := checkBox(b); err != nil {
		return err
	}
	if b.Empty() {
		r.Set(a)
		return nil
	}
	if a.IsEmpty() {
		r.setBox(b)
		return nil
	}
	tmp, _ := rectOperand(b)
	return r.Union(a, tmp)
}

// IntersectRect sets r to a ∩ b. The result is identical to Intersect with
// a single-box region.
func (r *Region) IntersectRect(a *Region, b Box) error {
	if r == nil || a == nil {
		return ErrNilRegion
	}
	tmp, err := rectOperand(b)
	if err != nil {
		return err
	}
	return r.Intersect(a, tmp)
}

// SubtractRect sets r to a \ b. The result is identical to Subtract with a
// single-box region.
func (r *Region) SubtractRect(a *Region, b Box) error {
	if r == nil || a == nil {
		return ErrNilRegion
	}
	tmp, err := rectOperand(b)
	if err != nil {
		return err
	}
	return r.Subtract(a, tmp)
}

// Inverse sets r to clip \ a: the points of clip not covered by a.
// Parts of a outside clip never appear in the result. r may alias a.
func (r *Region) Inverse(a *Region, clip Box) error {
	if r == nil || a == nil {
		return ErrNilRegion
	}
	tmp, err := rectOperand(clip)
	if err != nil {
		return err
	}
	return r.Subtract(tmp, a)
}
