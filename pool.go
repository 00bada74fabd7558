package manuscript

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	MinPoolSize = 1

	// MaxPoolSize caps browser instances, each of which costs ~200MB.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("converter pool is closed")

// ConverterPool hands out up to Size converters, each with its own browser,
// so a batch can render several manuscripts at once. Converters are built
// on demand with the pool's options and reused after Release.
type ConverterPool struct {
	opts  []Option
	slots chan struct{}   // one token per converter that exists or is being built
	idle  chan *Converter // released converters
	done  chan struct{}

	mu     sync.Mutex
	all    []*Converter
	closed bool
}

// NewConverterPool returns a pool of n converters; n below 1 means 1.
// Nothing is started until the first Acquire.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	n = max(n, 1)
	return &ConverterPool{
		opts:  opts,
		slots: make(chan struct{}, n),
		idle:  make(chan *Converter, n),
		done:  make(chan struct{}),
	}
}

// Acquire returns an idle converter, builds a new one while the pool is
// below capacity, or waits for a Release. A failed build frees its slot.
func (p *ConverterPool) Acquire() (*Converter, error) {
	select {
	case <-p.done:
		return nil, ErrPoolClosed
	case conv := <-p.idle:
		return p.live(conv)
	default:
	}

	select {
	case <-p.done:
		return nil, ErrPoolClosed
	case conv := <-p.idle:
		return p.live(conv)
	case p.slots <- struct{}{}:
		return p.build()
	}
}

// live guards against handing out a converter that lost a race with Close.
func (p *ConverterPool) live(conv *Converter) (*Converter, error) {
	select {
	case <-p.done:
		return nil, ErrPoolClosed
	default:
		return conv, nil
	}
}

func (p *ConverterPool) build() (*Converter, error) {
	conv, err := NewConverter(p.opts...)
	if err != nil {
		<-p.slots
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = conv.Close()
		return nil, ErrPoolClosed
	}
	p.all = append(p.all, conv)
	return conv, nil
}

// Release makes conv available again. Releasing nil, or releasing after
// Close, does nothing.
func (p *ConverterPool) Release(conv *Converter) {
	if conv == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// idle has room for every converter the pool can build.
	select {
	case p.idle <- conv:
	default:
	}
}

// Close shuts down every converter the pool built and joins their errors.
// Later calls return nil.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	built := p.all
	p.all = nil
	p.mu.Unlock()

	errs := make([]error, 0, len(built))
	for _, conv := range built {
		errs = append(errs, conv.Close())
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return cap(p.slots)
}

// ResolvePoolSize returns workers when positive. Otherwise it derives a size
// from GOMAXPROCS, which automaxprocs has already fitted to any container
// CPU quota, clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)
}
