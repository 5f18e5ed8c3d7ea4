package mock

import (
	"context"
	"errors"
	"math/rand"
	"sync"
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("mock: pool is closed")

// Pool hands out independently seeded random generators for concurrent use.
// A *rand.Rand is not safe for concurrent use, so each caller holds one
// exclusively between Acquire and Release.
type Pool struct {
	rngs   chan *rand.Rand
	size   int
	mu     sync.Mutex
	closed bool
}

// NewPool creates a pool of size generators seeded seed, seed+1, ...
func NewPool(seed int64, size int) *Pool {
	if size <= 0 {
		size = 1
	}

	pool := &Pool{
		rngs: make(chan *rand.Rand, size),
		size: size,
	}
	for i := 0; i < size; i++ {
		pool.rngs <- rand.New(rand.NewSource(seed + int64(i)))
	}

	return pool
}

// Acquire gets a generator from the pool, blocking if none is available.
// Respects context cancellation. Returns ErrPoolClosed if the pool is closed.
func (p *Pool) Acquire(ctx context.Context) (*rand.Rand, error) {
	select {
	case rng, ok := <-p.rngs:
		if !ok {
			return nil, ErrPoolClosed
		}
		return rng, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a generator to the pool.
func (p *Pool) Release(rng *rand.Rand) {
	if rng == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.rngs <- rng:
	default:
		// Pool full; drop the extra generator.
	}
}

// Close stops the pool. Generators still checked out are dropped on Release.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.rngs)

	for range p.rngs {
	}
	return nil
}

// Size returns the pool size.
func (p *Pool) Size() int {
	return p.size
}
