// Package pool solves batches of independent challenges concurrently.
// The rounds of one challenge are strictly sequential, so concurrency
// only exists across challenges: each worker picks up whole challenges
// and never splits one.
package pool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/duckity/go-duckity/internal/logger"
	"github.com/duckity/go-duckity/pkg/challenge"
)

// Result holds the outcome of one solved challenge.
type Result struct {
	Index    int
	Solution *challenge.Solution
	Duration time.Duration
}

// Pool coordinates worker goroutines over a batch of challenges
type Pool struct {
	workers int
	logger  *logger.Logger
	solved  int64
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// New creates a pool with the given number of workers. A non-positive
// count defaults to the number of CPUs. The logger may be nil.
func New(workers int, log *logger.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		workers: workers,
		logger:  log,
		done:    make(chan struct{}),
	}
}

// Solve works through the batch and returns per-challenge results in
// input order. If Stop is called mid-batch, pending challenges are
// skipped and their result entries stay nil; partial work on a challenge
// is simply discarded. Solve blocks until all workers drain.
func (p *Pool) Solve(challenges []*challenge.Challenge) []Result {
	results := make([]Result, len(challenges))

	select {
	case <-p.done:
		return results
	default:
	}

	jobs := make(chan int, len(challenges))
	for i := range challenges {
		jobs <- i
	}
	close(jobs)

	for w := 0; w < p.workers; w++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for i := range jobs {
				select {
				case <-p.done:
					return
				default:
				}

				c := challenges[i]
				start := time.Now()
				sol := c.Solve()
				elapsed := time.Since(start)

				// Each index is written by exactly one worker.
				results[i] = Result{Index: i, Solution: sol, Duration: elapsed}

				n := atomic.AddInt64(&p.solved, 1)
				if p.logger != nil {
					p.logger.Debugf("Solved challenge %s (hardness %d) in %v (%d/%d)",
						c.Fingerprint(), c.T(), elapsed, n, len(challenges))
				}
			}
		}()
	}

	p.wg.Wait()
	return results
}

// Stop aborts the batch. Challenges not yet picked up are skipped;
// the challenge a worker is on finishes before the worker exits.
func (p *Pool) Stop() {
	p.once.Do(func() { close(p.done) })
}

// Solved returns the number of challenges solved so far.
func (p *Pool) Solved() int64 {
	return atomic.LoadInt64(&p.solved)
}
