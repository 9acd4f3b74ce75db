// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import "fmt"

// SelfCheck verifies that r is in canonical form and returns an error
// wrapping ErrSelfCheck describing the first violation found.
//
// It is a diagnostic for tests and debugging; every public operation
// leaves regions in canonical form, so a failure indicates a bug in the
// region engine rather than caller misuse.
func (r *Region) SelfCheck() error {
	if r == nil {
		return ErrNilRegion
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrSelfCheck}, args...)...)
	}

	if len(r.boxes) == 0 {
		if r.extents != (Box{}) {
			return fail("empty region has extents %v", r.extents)
		}
		return nil
	}

	var bound Box
	bandStart := 0
	prevBand := -1
	for i, b := range r.boxes {
		if b.Empty() {
			return fail("box %d %v is empty", i, b)
		}
		if !inRange(b) {
			return fail("box %d %v is out of range", i, b)
		}
		bound = bound.Bound(b)
		if i == 0 {
			continue
		}

		p := r.boxes[i-1]
		switch {
		case b.Y1 == p.Y1:
			if b.Y2 != p.Y2 {
				return fail("box %d %v shares Y1 with %v but not Y2", i, b, p)
			}
			if b.X1 <= p.X2 {
				return fail("box %d %v overlaps or touches %v", i, b, p)
			}
		case b.Y1 < p.Y1:
			return fail("box %d %v is above the previous band", i, b)
		default:
			if b.Y1 < p.Y2 {
				return fail("box %d %v overlaps the previous band", i, b)
			}
			if prevBand >= 0 && bandsCoalescable(r.boxes[prevBand:bandStart], r.boxes[bandStart:i]) {
				return fail("bands at %d and %d should be coalesced", prevBand, bandStart)
			}
			prevBand, bandStart = bandStart, i
		}
	}
	if prevBand >= 0 && bandsCoalescable(r.boxes[prevBand:bandStart], r.boxes[bandStart:]) {
		return fail("bands at %d and %d should be coalesced", prevBand, bandStart)
	}

	if r.extents != bound {
		return fail("extents %v, want %v", r.extents, bound)
	}
	return nil
}

// bandsCoalescable reports whether lower directly follows upper and has the
// same x-spans.
func bandsCoalescable(upper, lower []Box) bool {
	if len(upper) != len(lower) || upper[0].Y2 != lower[0].Y1 {
		return false
	}
	for i := range upper {
		if upper[i].X1 != lower[i].X1 || upper[i].X2 != lower[i].X2 {
			return false
		}
	}
	return true
}
