package growlock

import "sync/atomic"

type lockStats struct {
	pushes          atomic.Uint64
	pushFull        atomic.Uint64
	writeAcquired   atomic.Uint64
	tryWriteBlocked atomic.Uint64
	poisonings      atomic.Uint64
}

// GrowLockStats is a point-in-time snapshot of a container's operation
// counters.
type GrowLockStats struct {
	Pushes             uint64 // successful pushes
	PushFailedFull     uint64 // TryPush rejections at capacity
	WriteAcquired      uint64 // guards handed out by Write and TryWrite
	TryWriteWouldBlock uint64 // TryWrite attempts that found the lock held
	Poisonings         uint64 // writers that panicked while holding the guard
}

// Stats retrieves the current statistics of the GrowLock.
func (v *GrowLock[T]) Stats() GrowLockStats {
	return GrowLockStats{
		Pushes:             v.stats.pushes.Load(),
		PushFailedFull:     v.stats.pushFull.Load(),
		WriteAcquired:      v.stats.writeAcquired.Load(),
		TryWriteWouldBlock: v.stats.tryWriteBlocked.Load(),
		Poisonings:         v.stats.poisonings.Load(),
	}
}
