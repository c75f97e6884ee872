// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package ibdcluster

import "sync"

// ParallelMap runs fn over items[i] for i in [0,n) using nWorkers
// goroutines and returns results in input order, joining before
// returning (§5 "submit-collect", "implicit join at the end of each
// parallel stage"). Workers never suspend; each runs a fixed input
// slice to completion.
func ParallelMap[T, R any](items []T, nWorkers int, fn func(T) R) []R {
	n := len(items)
	results := make([]R, n)
	if n == 0 {
		return results
	}
	if nWorkers < 1 {
		nWorkers = 1
	}
	if nWorkers > n {
		nWorkers = n
	}

	chunk := (n + nWorkers - 1) / nWorkers
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		lo := w * chunk
		hi := minInt(lo+chunk, n)
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				results[i] = fn(items[i])
			}
		}(lo, hi)
	}
	wg.Wait()
	return results
}

// EstimatorPool is the concurrent FIFO of reusable IbdEstimators
// described in §4.6/§5: one estimator per worker thread, each
// estimator itself single-threaded, polled to acquire and pushed back
// on completion so its CDF scratch buffer is never reallocated.
type EstimatorPool struct {
	ch chan *IbdEstimator
}

// NewEstimatorPool pre-populates the pool with len(estimators) ready
// instances.
func NewEstimatorPool(estimators []*IbdEstimator) *EstimatorPool {
	p := &EstimatorPool{ch: make(chan *IbdEstimator, len(estimators))}
	for _, e := range estimators {
		p.ch <- e
	}
	return p
}

// Acquire blocks until an estimator is available.
func (p *EstimatorPool) Acquire() *IbdEstimator { return <-p.ch }

// Release returns an estimator to the pool.
func (p *EstimatorPool) Release(e *IbdEstimator) { p.ch <- e }
