package growlock

import (
	"cmp"
	"fmt"
	"hash/maphash"
	"slices"
)

// Equal reports whether a and b hold the same published elements in the
// same order. Capacity is not compared, matching plain-slice equality.
func Equal[T comparable](a, b *GrowLock[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is Equal with a caller-supplied element comparison.
func EqualFunc[T, U any](a *GrowLock[T], b *GrowLock[U], eq func(T, U) bool) bool {
	return slices.EqualFunc(a.Slice(), b.Slice(), eq)
}

// Compare orders two containers lexicographically over their published
// elements, exactly as slices.Compare orders the equivalent slices.
func Compare[T cmp.Ordered](a, b *GrowLock[T]) int {
	return slices.Compare(a.Slice(), b.Slice())
}

// Hash hashes the published elements with the given seed. Containers that
// are Equal hash identically, as the equivalent slices would.
func Hash[T comparable](seed maphash.Seed, v *GrowLock[T]) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, e := range v.Slice() {
		maphash.WriteComparable(&h, e)
	}
	return h.Sum64()
}

// String formats the published elements like the equivalent slice.
func (v *GrowLock[T]) String() string {
	return fmt.Sprintf("%v", v.Slice())
}
