// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package region

import "errors"

// Common errors for region operations.
var (
	// ErrNilRegion is returned when a nil *Region is passed as a source
	// or used as a destination.
	ErrNilRegion = errors.New("region: nil region")

	// ErrNilImage is returned when FromImage is given a nil image.
	ErrNilImage = errors.New("region: nil image")

	// ErrInvalidRect is returned when a box has X1 > X2 or Y1 > Y2, or a
	// rectangle has negative width or height.
	ErrInvalidRect = errors.New("region: invalid rectangle")

	// ErrNonInteger is returned when a rectangle with fractional or
	// infinite coordinates is passed where integer coordinates are required.
	ErrNonInteger = errors.New("region: non-integer rectangle")

	// ErrCoordRange is returned when a coordinate lies outside
	// [MinCoord, MaxCoord].
	ErrCoordRange = errors.New("region: coordinate out of range")

	// ErrTooManyBoxes is returned when an operation would need more box
	// storage than a region may hold. Operands are left unmodified.
	ErrTooManyBoxes = errors.New("region: too many boxes")

	// ErrSelfCheck is returned by SelfCheck when a region violates its
	// canonical-form invariants. It indicates an engine bug, not misuse.
	ErrSelfCheck = errors.New("region: self-check failed")
)
