package growlock

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/valyala/fastrand"
)

// Readers run against a live writer and must only ever observe published
// elements: any index below a loaded length holds the value pushed there.
func TestConcurrentReadersSeePublishedPrefix(t *testing.T) {
	const (
		capacity = 1 << 14
		readers  = 8
	)

	v := New[uint64](capacity)
	var done atomic.Bool
	var wg sync.WaitGroup

	wg.Add(readers)
	for r := 0; r < readers; r++ {
		go func() {
			defer wg.Done()
			var rng fastrand.RNG
			for !done.Load() {
				n := v.Len()
				if n == 0 {
					continue
				}
				i := int(rng.Uint32n(uint32(n)))
				got, ok := v.Get(i)
				if !ok {
					t.Errorf("index %d below len %d reported unavailable", i, n)
					return
				}
				if want := uint64(i)*3 + 1; got != want {
					t.Errorf("index %d: got %d, want %d (unpublished read)", i, got, want)
					return
				}
			}
		}()
	}

	g, _ := v.Write()
	for i := 0; i < capacity; i++ {
		g.Push(uint64(i)*3 + 1)
	}
	g.Release()
	done.Store(true)
	wg.Wait()

	for i, got := range v.Slice() {
		if want := uint64(i)*3 + 1; got != want {
			t.Fatalf("index %d: got %d, want %d", i, got, want)
		}
	}
}

// Readers loading Len and slicing concurrently with per-push locking
// writers: every observed length must be covered by initialized values.
func TestLenIsStaleOrCurrent(t *testing.T) {
	const (
		capacity = 4096
		writers  = 4
		readers  = 4
	)

	v := New[int](capacity)
	var wg sync.WaitGroup

	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func() {
			defer wg.Done()
			for {
				g, _ := v.Write()
				if err := g.TryPush(7); err != nil {
					g.Release()
					return
				}
				g.Release()
			}
		}()
	}

	wg.Add(readers)
	for r := 0; r < readers; r++ {
		go func() {
			defer wg.Done()
			prev := 0
			for prev < capacity {
				n := v.Len()
				if n < prev {
					t.Errorf("length went backwards: %d -> %d", prev, n)
					return
				}
				prev = n
				for _, x := range v.Slice() {
					if x != 7 {
						t.Errorf("observed unpublished slot: %d", x)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	if v.Len() != capacity {
		t.Fatalf("expected full container, got len %d", v.Len())
	}
}

func BenchmarkPush(b *testing.B) {
	const capacity = 1 << 16
	v := New[uint64](capacity)
	g, _ := v.Write()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if g.IsFull() {
			b.StopTimer()
			g.Release()
			v = New[uint64](capacity)
			g, _ = v.Write()
			b.StartTimer()
		}
		g.Push(uint64(i))
	}
	g.Release()
}

func BenchmarkTryPush(b *testing.B) {
	const capacity = 1 << 16
	v := New[uint64](capacity)
	g, _ := v.Write()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.TryPush(uint64(i)); err != nil {
			b.StopTimer()
			g.Release()
			v = New[uint64](capacity)
			g, _ = v.Write()
			b.StartTimer()
		}
	}
	g.Release()
}

// Parallel random reads against a filled container.
func BenchmarkGetRandom(b *testing.B) {
	const capacity = 1 << 16
	v := New[uint64](capacity)
	g, _ := v.Write()
	for i := 0; i < capacity; i++ {
		g.Push(uint64(i))
	}
	g.Release()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		var rng fastrand.RNG
		var sink uint64
		for pb.Next() {
			x, _ := v.Get(int(rng.Uint32n(capacity)))
			sink += x
		}
		_ = sink
	})
}

// Readers polling length while a writer fills the container.
func BenchmarkLenUnderWrite(b *testing.B) {
	const capacity = 1 << 20
	v := New[uint64](capacity)
	stop := make(chan struct{})
	go func() {
		g, _ := v.Write()
		defer g.Release()
		for i := 0; i < capacity; i++ {
			select {
			case <-stop:
				return
			default:
			}
			g.Push(uint64(i))
		}
		<-stop
	}()

	b.ResetTimer()
	var sink int
	for i := 0; i < b.N; i++ {
		sink += v.Len()
	}
	_ = sink
	close(stop)
}
