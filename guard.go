package growlock

import "iter"

// WriteGuard grants exclusive append access to a GrowLock. It is created
// by Write and TryWrite; at most one guard is live at a time, and readers
// are never blocked by it. A guard must be released exactly once, normally
// with defer.
type WriteGuard[T any] struct {
	lock     *GrowLock[T]
	released bool
}

// Release unlocks the write lock. When invoked as a directly deferred call
// while the goroutine is panicking, it marks the lock poisoned and resumes
// the panic; wrapping Release in another function loses that detection.
// Calling Release again is a no-op.
func (g *WriteGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	if r := recover(); r != nil {
		g.lock.poisoned.Store(true)
		g.lock.stats.poisonings.Add(1)
		g.lock.mu.Unlock()
		panic(r)
	}
	g.lock.mu.Unlock()
}

// Push appends value. It panics when the container is full: pushing past
// capacity is a contract violation, not a recoverable condition. Use
// TryPush to get an error instead.
func (g *WriteGuard[T]) Push(value T) {
	if err := g.TryPush(value); err != nil {
		panic("growlock: length overflow")
	}
}

// TryPush appends value, returning ErrFull (length unchanged) when the
// container is full. The slot is written before the new length is stored,
// so a reader that observes the new length also observes the full value.
func (g *WriteGuard[T]) TryPush(value T) error {
	v := g.lock
	n := v.length.Load() // we hold the lock, no writer can race this
	if n >= uint64(v.Capacity()) {
		v.stats.pushFull.Add(1)
		return ErrFull
	}
	if !v.buf.zst {
		v.buf.data[n] = value
	}
	// publish the element: the length store is the last step
	v.length.Store(n + 1)
	v.stats.pushes.Add(1)
	return nil
}

// Append pushes every value in order, panicking if they exceed the
// remaining capacity.
func (g *WriteGuard[T]) Append(vals ...T) {
	for _, v := range vals {
		g.Push(v)
	}
}

// AppendSeq pushes every element yielded by seq, panicking if the sequence
// yields more elements than the remaining capacity. Elements pushed before
// such a panic stay published.
func (g *WriteGuard[T]) AppendSeq(seq iter.Seq[T]) {
	for v := range seq {
		g.Push(v)
	}
}

// Len returns the number of published elements.
func (g *WriteGuard[T]) Len() int { return g.lock.Len() }

// Capacity returns the fixed element capacity.
func (g *WriteGuard[T]) Capacity() int { return g.lock.Capacity() }

// IsEmpty reports whether no element has been published yet.
func (g *WriteGuard[T]) IsEmpty() bool { return g.lock.IsEmpty() }

// IsFull reports whether length has reached capacity.
func (g *WriteGuard[T]) IsFull() bool { return g.lock.IsFull() }

// Slice returns a view over the published elements, like GrowLock.Slice.
func (g *WriteGuard[T]) Slice() []T { return g.lock.Slice() }

// Get returns the element at index i and whether i is below Len.
func (g *WriteGuard[T]) Get(i int) (T, bool) { return g.lock.Get(i) }
