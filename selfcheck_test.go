// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import (
	"errors"
	"testing"
)

func TestSelfCheck_Valid(t *testing.T) {
	for _, r := range []*Region{
		New(),
		NewRect(0, 0, 1, 1),
		regionOf(t, Box{0, 0, 10, 10}, Box{20, 0, 30, 10}, Box{5, 20, 25, 30}),
	} {
		if err := r.SelfCheck(); err != nil {
			t.Errorf("SelfCheck(%v) = %v", r, err)
		}
	}

	var nilRegion *Region
	if err := nilRegion.SelfCheck(); !errors.Is(err, ErrNilRegion) {
		t.Errorf("nil.SelfCheck() = %v, want ErrNilRegion", err)
	}
}

func TestSelfCheck_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		extents Box
		boxes   []Box
	}{
		{
			name:    "empty with extents",
			extents: Box{0, 0, 1, 1},
		},
		{
			name:    "empty box",
			extents: Box{0, 0, 5, 5},
			boxes:   []Box{{0, 0, 5, 5}, {6, 0, 6, 5}},
		},
		{
			name:    "wrong extents",
			extents: Box{0, 0, 10, 10},
			boxes:   []Box{{0, 0, 5, 5}},
		},
		{
			name:    "touching in band",
			extents: Box{0, 0, 10, 5},
			boxes:   []Box{{0, 0, 5, 5}, {5, 0, 10, 5}},
		},
		{
			name:    "unsorted in band",
			extents: Box{0, 0, 10, 5},
			boxes:   []Box{{6, 0, 10, 5}, {0, 0, 4, 5}},
		},
		{
			name:    "band height mismatch",
			extents: Box{0, 0, 10, 6},
			boxes:   []Box{{0, 0, 4, 5}, {6, 0, 10, 6}},
		},
		{
			name:    "bands out of order",
			extents: Box{0, 0, 5, 20},
			boxes:   []Box{{0, 10, 5, 20}, {0, 0, 5, 5}},
		},
		{
			name:    "overlapping bands",
			extents: Box{0, 0, 5, 10},
			boxes:   []Box{{0, 0, 5, 6}, {0, 4, 3, 10}},
		},
		{
			name:    "uncoalesced bands",
			extents: Box{0, 0, 5, 10},
			boxes:   []Box{{0, 0, 5, 5}, {0, 5, 5, 10}},
		},
		{
			name:    "uncoalesced middle bands",
			extents: Box{0, 0, 9, 15},
			boxes:   []Box{{0, 0, 9, 5}, {0, 5, 2, 10}, {4, 5, 9, 10}, {0, 10, 2, 15}, {4, 10, 9, 15}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Region{extents: tt.extents, boxes: tt.boxes}
			if err := r.SelfCheck(); !errors.Is(err, ErrSelfCheck) {
				t.Errorf("SelfCheck() = %v, want ErrSelfCheck", err)
			}
		})
	}
}
