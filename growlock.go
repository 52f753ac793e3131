// Package growlock provides a fixed-capacity, append-only container that
// any number of readers can observe without blocking while writers are
// serialized through an exclusive guard.
//
// Readers call Len, Get and Slice directly at any time and see a prefix of
// the buffer that is stale-or-current, never a write in progress. A writer
// acquires a WriteGuard via Write or TryWrite and appends with Push or
// TryPush; the atomic length store that completes each push is what
// publishes the element to readers. The mutex only serializes writers
// against each other.
//
// Capacity is fixed for the lifetime of the container: there is no growth
// and no removal, and length only ever increases.
package growlock

import (
	"iter"
	"sync"
	"sync/atomic"
	"unsafe"
)

// GrowLock is a heap-allocated sequence container with an immutable
// capacity, lock-free reads of the published prefix, and guarded writes.
//
// The zero value is not usable; use one of the constructors.
type GrowLock[T any] struct {
	// Padding keeps the reader-hot length field away from writer state.
	_        [64]byte
	length   atomic.Uint64 // published element count; only ever grows
	_        [64]byte
	mu       sync.Mutex
	poisoned atomic.Bool
	buf      rawBuf[T]
	stats    lockStats
	_        [64]byte
}

// New creates a container with the given capacity using the default heap
// allocator. It panics on an invalid capacity; use TryNew for an error
// instead.
func New[T any](capacity int) *GrowLock[T] {
	return NewIn(capacity, Heap[T]())
}

// NewIn is New with an explicit allocator. It panics on an invalid
// capacity or an allocation failure.
func NewIn[T any](capacity int, alloc Allocator[T]) *GrowLock[T] {
	v, err := TryNewIn(capacity, alloc)
	if err != nil {
		panic("growlock: " + err.Error())
	}
	return v
}

// TryNew creates a container with the given capacity using the default
// heap allocator, returning ErrCapacityOverflow when capacity*sizeof(T)
// does not fit the address space.
func TryNew[T any](capacity int) (*GrowLock[T], error) {
	return TryNewIn(capacity, Heap[T]())
}

// TryNewIn is TryNew with an explicit allocator. Allocator failures are
// returned as *AllocError.
func TryNewIn[T any](capacity int, alloc Allocator[T]) (*GrowLock[T], error) {
	var zero T
	c, err := newCap(capacity, unsafe.Sizeof(zero))
	if err != nil {
		return nil, err
	}
	buf, err := allocRawBuf(c, alloc)
	if err != nil {
		return nil, err
	}
	return &GrowLock[T]{buf: buf}, nil
}

// Of builds a full container holding exactly the given values.
func Of[T any](vals ...T) *GrowLock[T] {
	v := New[T](len(vals))
	g, _ := v.Write()
	defer g.Release()
	g.Append(vals...)
	return v
}

// Collect drains seq into a fresh container of the given capacity,
// panicking if the sequence yields more elements than fit.
func Collect[T any](capacity int, seq iter.Seq[T]) *GrowLock[T] {
	v := New[T](capacity)
	g, _ := v.Write()
	defer g.Release()
	g.AppendSeq(seq)
	return v
}

// Len returns the number of published elements. The atomic load pairs with
// the store made by a completed push, so every element below the returned
// length is fully written from the caller's perspective.
func (v *GrowLock[T]) Len() int {
	return int(v.length.Load())
}

// Capacity returns the fixed element capacity. For zero-sized element
// types this is the platform maximum: such elements consume no memory.
func (v *GrowLock[T]) Capacity() int {
	return v.buf.capacity()
}

// IsEmpty reports whether no element has been published yet.
func (v *GrowLock[T]) IsEmpty() bool { return v.Len() == 0 }

// IsFull reports whether length has reached capacity.
func (v *GrowLock[T]) IsFull() bool { return v.Len() == v.Capacity() }

// Allocator returns the allocator the container was built with.
func (v *GrowLock[T]) Allocator() Allocator[T] { return v.buf.alloc }

// Slice returns a view over the published elements. The slice aliases the
// backing buffer, stays valid for the container's lifetime, and does not
// observe later pushes.
func (v *GrowLock[T]) Slice() []T {
	n := v.Len()
	if v.buf.zst {
		// zero-sized elements occupy no memory; this make does not allocate
		return make([]T, n)
	}
	return v.buf.data[:n:n]
}

// Get returns the element at index i and whether i is below Len. Indexes
// between Len and Capacity address unpublished slots and report false.
func (v *GrowLock[T]) Get(i int) (T, bool) {
	var zero T
	if i < 0 || i >= v.Len() {
		return zero, false
	}
	if v.buf.zst {
		return zero, true
	}
	return v.buf.data[i], true
}

// Write blocks until exclusive write access is available. The returned
// error is ErrPoisoned when a previous holder panicked; the guard is still
// usable, so the caller may inspect the container and recover.
func (v *GrowLock[T]) Write() (*WriteGuard[T], error) {
	v.mu.Lock()
	v.stats.writeAcquired.Add(1)
	g := &WriteGuard[T]{lock: v}
	if v.poisoned.Load() {
		return g, ErrPoisoned
	}
	return g, nil
}

// TryWrite acquires the guard without blocking. It returns ErrWouldBlock
// and no guard when the lock is held elsewhere, or a usable guard together
// with ErrPoisoned as Write does.
func (v *GrowLock[T]) TryWrite() (*WriteGuard[T], error) {
	if !v.mu.TryLock() {
		v.stats.tryWriteBlocked.Add(1)
		return nil, ErrWouldBlock
	}
	v.stats.writeAcquired.Add(1)
	g := &WriteGuard[T]{lock: v}
	if v.poisoned.Load() {
		return g, ErrPoisoned
	}
	return g, nil
}

// FromSlice wraps an existing slice without copying: len(s) published
// elements, cap(s) capacity, same backing array. The default heap
// allocator becomes responsible for the buffer.
func FromSlice[T any](s []T) *GrowLock[T] {
	return FromSliceIn(s, Heap[T]())
}

// FromSliceIn is FromSlice with an explicit allocator. The caller vouches
// that the slice's backing array was obtained from alloc.
func FromSliceIn[T any](s []T, alloc Allocator[T]) *GrowLock[T] {
	var zero T
	c := newCapUnchecked(cap(s), unsafe.Sizeof(zero))
	v := &GrowLock[T]{buf: rawBufFromParts(unsafe.SliceData(s[:cap(s)]), c, alloc)}
	v.length.Store(uint64(len(s)))
	return v
}

// IntoSlice decomposes the container into a plain slice sharing the same
// backing array, length and capacity. The container gives up ownership of
// the allocation: a later Close will not return it to the allocator.
func (v *GrowLock[T]) IntoSlice() []T {
	n := v.Len()
	if v.buf.zst {
		v.buf.forget()
		return make([]T, n)
	}
	data := v.buf.data
	v.buf.forget()
	return data[:n:cap(data)]
}

// FromRawParts reassembles a container from components produced by
// IntoRawParts or an equivalent allocation. The caller vouches that ptr is
// valid for capacity elements of T obtained from alloc, that length <=
// capacity, and that the first length elements are initialized.
func FromRawParts[T any](ptr *T, length, capacity int, alloc Allocator[T]) *GrowLock[T] {
	var zero T
	c := newCapUnchecked(capacity, unsafe.Sizeof(zero))
	v := &GrowLock[T]{buf: rawBufFromParts(ptr, c, alloc)}
	v.length.Store(uint64(length))
	return v
}

// IntoRawParts decomposes the container into its raw components: pointer
// to element 0, length, capacity, allocator. All ownership responsibility
// transfers to the caller; most often it comes back via FromRawParts.
func (v *GrowLock[T]) IntoRawParts() (ptr *T, length, capacity int, alloc Allocator[T]) {
	ptr = v.buf.ptr()
	length = v.Len()
	capacity = v.Capacity()
	alloc = v.buf.alloc
	v.buf.forget()
	return ptr, length, capacity, alloc
}

// Close returns the backing buffer to the allocator. Only the first call
// has an effect; a no-op after IntoSlice or IntoRawParts and for
// containers without an allocation. Close must not race with other use of
// the container.
func (v *GrowLock[T]) Close() {
	v.buf.free()
}
