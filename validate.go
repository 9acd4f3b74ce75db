// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import (
	"cmp"
	"math/bits"
	"slices"
)

// FromRects builds the canonical region covering the given boxes.
//
// Empty boxes are ignored. The returned region is always the union of the
// valid input boxes. ok reports whether the input was a legal disjoint
// decomposition: it is false when any box is invalid (and skipped), when
// two boxes overlap, or when the result would exceed the box limit (in
// which case the region is empty).
func FromRects(boxes []Box) (r *Region, ok bool) {
	r = &Region{}
	ok = true

	rects := make([]Box, 0, len(boxes))
	for _, b := range boxes {
		if checkBox(b) != nil {
			ok = false
			continue
		}
		if !b.Empty() {
			rects = append(rects, b)
		}
	}
	if len(rects) == 0 {
		return r, ok
	}
	if len(rects) == 1 {
		r.setBox(rects[0])
		return r, ok
	}
	if len(rects) > maxBoxes {
		return r, false
	}

	union, err := unionAll(rects)
	if err != nil {
		return r, false
	}
	r.setBoxes(union)

	// Disjoint inputs cover exactly the sum of their areas; any overlap
	// makes the sum exceed the area of the union.
	if ok {
		hi, lo := sumAreas(rects)
		ok = hi == 0 && lo == r.Area()
	}
	return r, ok
}

// sumAreas returns the 128-bit sum of the areas of boxes.
func sumAreas(boxes []Box) (hi, lo uint64) {
	var carry uint64
	for _, b := range boxes {
		lo, carry = bits.Add64(lo, b.Area(), 0)
		hi += carry
	}
	return hi, lo
}

// unionAll computes the canonical union of arbitrary non-empty boxes.
// rects is sorted in place.
//
// The boxes are sorted by (Y1, X1) and packed greedily into candidate
// lists that are canonical by construction: a box joins a candidate when
// it extends that candidate's last band to the right or starts a new band
// below it. The candidates are then merged pairwise with the union sweep.
// Packing is first-fit, so input that needs many candidates (such as
// nested boxes sharing Y1) costs O(n²).
func unionAll(rects []Box) ([]Box, error) {
	slices.SortFunc(rects, func(a, b Box) int {
		if c := cmp.Compare(a.Y1, b.Y1); c != 0 {
			return c
		}
		return cmp.Compare(a.X1, b.X1)
	})

	var cands []*candidate
next:
	for _, b := range rects {
		for _, c := range cands {
			if c.fit(b) {
				continue next
			}
		}
		cands = append(cands, newCandidate(b))
	}

	lists := make([][]Box, len(cands))
	for i, c := range cands {
		c.finish()
		lists[i] = c.boxes
	}

	for len(lists) > 1 {
		half := (len(lists) + 1) / 2
		for i := 0; i < len(lists)/2; i++ {
			merged, err := regionOp(lists[i], lists[i+half], unionBand, true, true)
			if err != nil {
				return nil, err
			}
			lists[i] = merged
		}
		lists = lists[:half]
	}
	return lists[0], nil
}

// candidate is a canonical box list under construction.
type candidate struct {
	boxes     []Box
	prevBand  int // start of the band above the current band
	bandStart int // start of the current (last) band
}

func newCandidate(b Box) *candidate {
	return &candidate{boxes: []Box{b}}
}

// fit appends b to the candidate if the list stays canonical, merging it
// with the last box when they overlap or touch in the same band.
func (c *candidate) fit(b Box) bool {
	last := &c.boxes[len(c.boxes)-1]
	switch {
	case b.Y1 == last.Y1 && b.Y2 == last.Y2:
		if b.X1 <= last.X2 {
			last.X2 = max(last.X2, b.X2)
		} else {
			c.boxes = append(c.boxes, b)
		}
		return true
	case b.Y1 >= last.Y2:
		c.closeBand()
		c.bandStart = len(c.boxes)
		c.boxes = append(c.boxes, b)
		return true
	default:
		return false
	}
}

// closeBand coalesces the current band into the one above it if possible.
func (c *candidate) closeBand() {
	if c.bandStart == 0 {
		return
	}
	upper := c.boxes[c.prevBand:c.bandStart]
	lower := c.boxes[c.bandStart:]
	if bandsCoalescable(upper, lower) {
		y2 := lower[0].Y2
		for i := range upper {
			upper[i].Y2 = y2
		}
		c.boxes = c.boxes[:c.bandStart]
		c.bandStart = c.prevBand
		return
	}
	c.prevBand = c.bandStart
}

func (c *candidate) finish() {
	c.closeBand()
}
