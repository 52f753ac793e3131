package growlock

import "fmt"

var (
	// ErrCapacityOverflow is returned by the fallible constructors when the
	// requested capacity, multiplied by the element size, would exceed the
	// addressable range.
	ErrCapacityOverflow = fmt.Errorf("capacity exceeds maximum")

	// ErrFull is returned by TryPush when length has reached capacity.
	ErrFull = fmt.Errorf("push to a full buffer")

	// ErrWouldBlock is returned by TryWrite when the write lock is held
	// elsewhere.
	ErrWouldBlock = fmt.Errorf("write lock is held elsewhere")

	// ErrPoisoned is returned by Write and TryWrite after a previous holder
	// panicked while holding the guard. The guard returned alongside it is
	// still usable for recovery.
	ErrPoisoned = fmt.Errorf("write lock poisoned by a panicked writer")
)

// AllocError reports that the allocator declined a valid layout. It carries
// the layout that failed.
type AllocError struct {
	Elems    int     // requested element count
	ElemSize uintptr // size of one element in bytes
	Err      error   // the allocator's failure
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("allocating %d elements (%d bytes): %v",
		e.Elems, uintptr(e.Elems)*e.ElemSize, e.Err)
}

func (e *AllocError) Unwrap() error { return e.Err }
