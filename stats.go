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

import "sync/atomic"

// Stats accumulates the run-wide counters surfaced in <out>.log
// (§6). Every field is updated atomically (add or store) from worker goroutines
// and read only after all stages have joined (§5 "Mutable shared
// state").
type Stats struct {
	nSamples        int64
	nHaplotypes     int64
	nInputRecords   int64
	nAfterMAF       int64
	nOutputPositions int64
	sumClusters     int64

	discordantCount int64
	checkedCount    int64
}

func (s *Stats) SetSamples(n int)    { atomic.StoreInt64(&s.nSamples, int64(n)) }
func (s *Stats) SetHaplotypes(n int) { atomic.StoreInt64(&s.nHaplotypes, int64(n)) }

func (s *Stats) AddInputRecords(n int64) { atomic.AddInt64(&s.nInputRecords, n) }
func (s *Stats) AddAfterMAF(n int64)     { atomic.AddInt64(&s.nAfterMAF, n) }

func (s *Stats) AddOutputPosition(nClusters int) {
	atomic.AddInt64(&s.nOutputPositions, 1)
	atomic.AddInt64(&s.sumClusters, int64(nClusters))
}

// AddAlleleDiscordance wait-free-adds the (discordant, checked) pair
// from §4.7's "Allele discordance bookkeeping".
func (s *Stats) AddAlleleDiscordance(discordant, checked int64) {
	atomic.AddInt64(&s.discordantCount, discordant)
	atomic.AddInt64(&s.checkedCount, checked)
}

// Samples, Haplotypes, InputRecords, AfterMAF, OutputPositions are
// read-only snapshot accessors for the final log summary.
func (s *Stats) Samples() int64          { return atomic.LoadInt64(&s.nSamples) }
func (s *Stats) Haplotypes() int64       { return atomic.LoadInt64(&s.nHaplotypes) }
func (s *Stats) InputRecords() int64     { return atomic.LoadInt64(&s.nInputRecords) }
func (s *Stats) AfterMAF() int64         { return atomic.LoadInt64(&s.nAfterMAF) }
func (s *Stats) OutputPositions() int64  { return atomic.LoadInt64(&s.nOutputPositions) }

// MeanClustersPerPosition returns sumClusters/nOutputPositions, or 0
// if no positions were emitted.
func (s *Stats) MeanClustersPerPosition() float64 {
	n := atomic.LoadInt64(&s.nOutputPositions)
	if n == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&s.sumClusters)) / float64(n)
}

// AlleleDiscordanceRate returns discordantCount/checkedCount, or 0 if
// nothing was checked.
func (s *Stats) AlleleDiscordanceRate() float64 {
	checked := atomic.LoadInt64(&s.checkedCount)
	if checked == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&s.discordantCount)) / float64(checked)
}
