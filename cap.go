package growlock

import "math"

// capVal is a validated buffer capacity.
//
// Invariant: raw() >= 0 and raw()*elemSize fits in int, so offsets into the
// backing allocation never overflow. For zero-sized element types the stored
// value is always zero: no memory is consumed per element, so nothing is
// allocated.
type capVal struct {
	n int
}

var capZero = capVal{}

// newCap validates a requested capacity for elements of the given size.
// Requests for zero-sized element types always succeed and collapse to the
// zero marker, regardless of the requested value.
func newCap(requested int, elemSize uintptr) (capVal, error) {
	if elemSize == 0 {
		return capZero, nil
	}
	if requested < 0 || requested > math.MaxInt/int(elemSize) {
		return capVal{}, ErrCapacityOverflow
	}
	return capVal{n: requested}, nil
}

// newCapUnchecked skips validation. Only used on the raw-parts paths, where
// the caller vouches that the value came from a real allocation.
func newCapUnchecked(requested int, elemSize uintptr) capVal {
	if elemSize == 0 {
		return capZero
	}
	return capVal{n: requested}
}

// raw returns the stored capacity: 0 for zero-sized element types no matter
// what was requested.
func (c capVal) raw() int { return c.n }

func (c capVal) isZero() bool { return c.n == 0 }
