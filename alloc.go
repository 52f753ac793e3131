package growlock

import "sync"

// Allocator provides the backing storage for a GrowLock.
//
// Allocate returns a slice with len == cap == n, or an error when the
// request cannot be served. Deallocate takes back a slice previously
// returned by Allocate; implementations may recycle it.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(buf []T)
}

// heapAllocator is the default allocator: plain make, reclamation is left
// to the garbage collector.
type heapAllocator[T any] struct{}

func (heapAllocator[T]) Allocate(n int) ([]T, error) {
	return make([]T, n), nil
}

func (heapAllocator[T]) Deallocate([]T) {} // GC handles memory

// Heap returns the default garbage-collected allocator.
func Heap[T any]() Allocator[T] { return heapAllocator[T]{} }

// PoolAllocator recycles buffers through a sync.Pool. Useful when
// containers of a common capacity are created and closed frequently.
//
// The zero value is ready to use.
type PoolAllocator[T any] struct {
	pool sync.Pool
}

// NewPool creates an empty PoolAllocator.
func NewPool[T any]() *PoolAllocator[T] { return &PoolAllocator[T]{} }

// Allocate reuses a pooled buffer when one with enough capacity is
// available, falling back to make.
func (p *PoolAllocator[T]) Allocate(n int) ([]T, error) {
	if v := p.pool.Get(); v != nil {
		if buf := v.([]T); cap(buf) >= n {
			buf = buf[:n:n]
			// drop whatever the previous owner left behind
			clear(buf)
			return buf, nil
		}
		// too small for this request, let the GC have it
	}
	return make([]T, n), nil
}

// Deallocate returns the buffer to the pool.
func (p *PoolAllocator[T]) Deallocate(buf []T) {
	if cap(buf) == 0 {
		return
	}
	p.pool.Put(buf[:cap(buf)])
}
