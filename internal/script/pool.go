package script

import (
	"log/slog"
	"sync"

	"go.starlark.net/starlark"
)

// maxSteps bounds the work done on one thread so a looping script cannot
// stall a lint run. Step counts accumulate across reuse, so threads retire
// once they pass retireSteps; every call then has at least
// maxSteps-retireSteps steps available.
const (
	maxSteps    = 10_000_000
	retireSteps = maxSteps / 2
)

// ThreadPool reuses Starlark threads across rule evaluations.
type ThreadPool struct {
	mu      sync.Mutex
	threads []*starlark.Thread
	maxSize int
	logger  *slog.Logger
}

// NewThreadPool creates a pool holding at most maxSize idle threads.
func NewThreadPool(maxSize int, logger *slog.Logger) *ThreadPool {
	if maxSize <= 0 {
		maxSize = 8
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ThreadPool{
		threads: make([]*starlark.Thread, 0, maxSize),
		maxSize: maxSize,
		logger:  logger,
	}
}

// Get retrieves an idle thread or creates one.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.threads); n > 0 {
		thread := p.threads[n-1]
		p.threads = p.threads[:n-1]
		thread.Name = name
		return thread
	}

	logger := p.logger
	thread := &starlark.Thread{
		Name: name,
		Print: func(th *starlark.Thread, msg string) {
			logger.Debug("script print", "rule", th.Name, "msg", msg)
		},
	}
	thread.SetMaxExecutionSteps(maxSteps)
	return thread
}

// Put returns a thread to the pool. Threads past retireSteps are dropped.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	if thread.ExecutionSteps() >= retireSteps {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) < p.maxSize {
		thread.Name = ""
		p.threads = append(p.threads, thread)
	}
}

// Size returns the number of idle threads.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}
