package mock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPool_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		pool := NewPool(1, size)
		if pool.Size() != 1 {
			t.Errorf("NewPool(1, %d).Size() = %d, want 1", size, pool.Size())
		}
		_ = pool.Close()
	}
}

func TestPool_AcquireRelease(t *testing.T) {
	pool := NewPool(1, 2)
	defer func() { _ = pool.Close() }()

	ctx := context.Background()
	r1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 1 failed: %v", err)
	}
	r2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 2 failed: %v", err)
	}
	if r1 == r2 {
		t.Error("expected distinct generators")
	}

	pool.Release(r1)
	pool.Release(r2)

	r3, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	pool.Release(r3)
}

func TestPool_Seeded(t *testing.T) {
	a := NewPool(42, 1)
	b := NewPool(42, 1)
	defer func() { _ = a.Close() }()
	defer func() { _ = b.Close() }()

	ra, _ := a.Acquire(context.Background())
	rb, _ := b.Acquire(context.Background())
	for i := 0; i < 10; i++ {
		if x, y := ra.Int63(), rb.Int63(); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestPool_AcquireTimeout(t *testing.T) {
	pool := NewPool(1, 1)
	defer func() { _ = pool.Close() }()

	rng, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer pool.Release(rng)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = pool.Acquire(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire on drained pool error = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestPool_Closed(t *testing.T) {
	pool := NewPool(1, 2)
	if err := pool.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close error = %v, want nil", err)
	}

	_, err := pool.Acquire(context.Background())
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire after Close error = %v, want %v", err, ErrPoolClosed)
	}
}

func TestPool_ReleaseAfterClose(t *testing.T) {
	pool := NewPool(1, 1)
	rng, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	_ = pool.Close()

	// must not panic on the closed channel
	pool.Release(rng)
	pool.Release(nil)
}

func TestPool_Concurrent(t *testing.T) {
	pool := NewPool(7, 3)
	defer func() { _ = pool.Close() }()

	var inUse, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng, err := pool.Acquire(context.Background())
			if err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			n := inUse.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			_ = rng.Float64()
			time.Sleep(time.Millisecond)
			inUse.Add(-1)
			pool.Release(rng)
		}()
	}
	wg.Wait()

	if p := peak.Load(); p > 3 {
		t.Errorf("peak concurrent generators = %d, want <= 3", p)
	}
}
