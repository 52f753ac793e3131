package growlock

import (
	"math"
	"unsafe"
)

// rawBuf owns the backing storage of a GrowLock: one allocation, obtained
// at construction and handed back to the allocator exactly once. It knows
// nothing about how many elements are logically present.
type rawBuf[T any] struct {
	data  []T // len == cap == c.raw(); nil for the zero marker
	c     capVal
	zst   bool // element type occupies no memory
	alloc Allocator[T]
	freed bool
}

// allocRawBuf obtains the backing storage for a validated capacity. For the
// zero marker the allocator is never called and the nil slice plays the role
// of the non-dereferenced placeholder pointer.
func allocRawBuf[T any](c capVal, alloc Allocator[T]) (rawBuf[T], error) {
	b := rawBuf[T]{c: c, zst: isZeroSized[T](), alloc: alloc}
	if c.isZero() {
		return b, nil
	}
	data, err := alloc.Allocate(c.raw())
	if err != nil {
		var zero T
		return rawBuf[T]{}, &AllocError{Elems: c.raw(), ElemSize: unsafe.Sizeof(zero), Err: err}
	}
	b.data = data[:c.raw():c.raw()]
	return b, nil
}

// rawBufFromParts reassembles a buffer around an existing allocation. The
// caller vouches that ptr is valid for c.raw() elements of T obtained from
// alloc.
func rawBufFromParts[T any](ptr *T, c capVal, alloc Allocator[T]) rawBuf[T] {
	b := rawBuf[T]{c: c, zst: isZeroSized[T](), alloc: alloc}
	if !c.isZero() && ptr != nil {
		b.data = unsafe.Slice(ptr, c.raw())
	}
	return b
}

// capacity reports the effective capacity: unbounded for zero-sized element
// types, since they consume no memory per element.
func (b *rawBuf[T]) capacity() int {
	if b.zst {
		return math.MaxInt
	}
	return b.c.raw()
}

// ptr returns the address of element 0, or nil for the zero marker.
func (b *rawBuf[T]) ptr() *T { return unsafe.SliceData(b.data) }

// free hands the allocation back to the allocator. Only the first call
// reaches the allocator; a no-op for the zero marker.
func (b *rawBuf[T]) free() {
	if b.freed || b.c.isZero() {
		return
	}
	b.freed = true
	b.alloc.Deallocate(b.data)
	b.data = nil
}

// forget drops ownership of the allocation without freeing it, for the
// raw-parts decomposition paths.
func (b *rawBuf[T]) forget() {
	b.freed = true
	b.data = nil
}

func isZeroSized[T any]() bool {
	var zero T
	return unsafe.Sizeof(zero) == 0
}
