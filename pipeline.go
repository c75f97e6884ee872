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

// Analysis is the result of running the full §2 pipeline over one
// chromosome: the surviving, trimmed IBD segments and the emitted
// per-locus cluster rows ready for WriteIbdClust.
type Analysis struct {
	Segments []HapPairSegment
	Loci     []OutputLocus
	Rows     []LocusClusters
}

// RunChromosome drives every stage of §2 end to end over one already
// loaded, MAF-filtered Chromosome: builds the forward and reverse IBS
// count tables and global IBS distributions, discovers candidate IBS
// segments via interleaved PBWT scans, refines and trims each one
// through a pool of IbdEstimators, and computes the output loci on the
// out-cm grid (§5 "driver is single-threaded and joins each stage to
// completion before starting the next"). The per-locus cluster rows
// are built afterwards by Analysis.Cluster.
func RunChromosome(c *Chromosome, gm *GeneticMap, p Params) (*Analysis, error) {
	fwdView := newForwardView(c)
	bwdView := newReverseView(c)

	var fwdCounts, bwdCounts *IbsCounts
	var fwdGlobal, bwdGlobal *GlobalIbsProbs
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); fwdCounts = BuildIbsCounts(fwdView, p.LocalSegments, p.LocalMaxCDF, p.Seed) }()
	go func() { defer wg.Done(); bwdCounts = BuildIbsCounts(bwdView, p.LocalSegments, p.LocalMaxCDF, p.Seed) }()
	go func() {
		defer wg.Done()
		fwdGlobal = BuildGlobalIbsProbs(fwdView, p.GlobalLoci, p.GlobalSegments, p.GlobalQuantile, p.GlobalMultiple, p.Seed)
	}()
	go func() {
		defer wg.Done()
		bwdGlobal = BuildGlobalIbsProbs(bwdView, p.GlobalLoci, p.GlobalSegments, p.GlobalQuantile, p.GlobalMultiple, p.Seed)
	}()
	wg.Wait()

	fwdProbs := NewIbsLengthProbs(fwdCounts, fwdGlobal, fwdView)
	bwdProbs := NewIbsLengthProbs(bwdCounts, bwdGlobal, bwdView)

	ibsSegments := BuildIbsSegments(fwdView, p.MinIBSCM, p.PBWT)

	nThreads := p.NThreads
	if nThreads < 1 {
		nThreads = 1
	}
	estimators := make([]*IbdEstimator, nThreads)
	for i := range estimators {
		fwdEst := NewQuantileEstimator(fwdView, fwdProbs, p.Ne, p.Discord, p.GCDiscord, p.GCBases, p.MinCDFRatio, p.EndMorgans)
		bwdEst := NewQuantileEstimator(bwdView, bwdProbs, p.Ne, p.Discord, p.GCDiscord, p.GCBases, p.MinCDFRatio, p.EndMorgans)
		estimators[i] = NewIbdEstimator(fwdEst, bwdEst, fwdView, bwdView, p)
	}
	pool := NewEstimatorPool(estimators)

	refined := ParallelMap(ibsSegments, nThreads, func(s HapPairSegment) HapPairSegment {
		e := pool.Acquire()
		defer pool.Release(e)
		return e.Refine(s)
	})

	survivors := make([]HapPairSegment, 0, len(refined))
	for _, s := range refined {
		if !s.IsZero() {
			survivors = append(survivors, s)
		}
	}

	loci := OutputLoci(gm, p.OutCM)
	return &Analysis{Segments: survivors, Loci: loci}, nil
}

// Cluster finishes the pipeline: sweeping survivors across the output
// loci and recording stats. Split from RunChromosome so callers can
// inspect the discovered segments before paying for emission.
func (an *Analysis) Cluster(c *Chromosome, windowSize int, stats *Stats) {
	an.Rows = ClustAnalysis(an.Segments, an.Loci, newForwardView(c), c.NHaps, windowSize, stats)
}
