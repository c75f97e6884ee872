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

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GlobalIbsProbs is the one-sided global empirical distribution of
// IBS lengths (in Morgans), sampled at global_loci random positions
// times global_segments random distinct haplotype pairs, with
// per-locus outliers removed (§3, §4.2).
type GlobalIbsProbs struct {
	sorted []float64
}

// BuildGlobalIbsProbs implements §4.2 end to end.
func BuildGlobalIbsProbs(view chromView, globalLoci, globalSegments int, globalQuantile, globalMultiple float64, seed int64) *GlobalIbsProbs {
	nMarkers := view.NMarkers()
	nHaps := view.NHaps()

	perLocusSorted := make([][]float64, globalLoci)
	perLocusStat := make([]float64, globalLoci)
	orderIdx := int(globalQuantile * float64(globalSegments))
	if orderIdx >= globalSegments {
		orderIdx = globalSegments - 1
	}

	for i := 0; i < globalLoci; i++ {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		locus := rng.Intn(nMarkers)
		forward := locus < nMarkers/2

		dists := make([]float64, globalSegments)
		for s := 0; s < globalSegments; s++ {
			h1, h2 := distinctPair(rng, nHaps)
			dists[s] = oneSidedIBSLength(view, locus, h1, h2, forward)
		}
		sort.Float64s(dists)
		perLocusSorted[i] = dists
		perLocusStat[i] = dists[orderIdx]
	}

	statsCopy := append([]float64(nil), perLocusStat...)
	sort.Float64s(statsCopy)
	median := stat.Quantile(0.5, stat.Empirical, statsCopy, nil)
	threshold := globalMultiple * median

	var all []float64
	for i := 0; i < globalLoci; i++ {
		if perLocusStat[i] <= threshold {
			all = append(all, perLocusSorted[i]...)
		}
	}
	sort.Float64s(all)

	return &GlobalIbsProbs{sorted: all}
}

func distinctPair(rng *rand.Rand, nHaps int) (int, int) {
	h1 := rng.Intn(nHaps)
	h2 := rng.Intn(nHaps - 1)
	if h2 >= h1 {
		h2++
	}
	return h1, h2
}

// oneSidedIBSLength measures, from marker `locus`, the Morgan distance
// to the first discordance between h1 and h2 in the given direction
// (or to the end of the chromosome).
func oneSidedIBSLength(view chromView, locus, h1, h2 int, forward bool) float64 {
	if forward {
		end := locus
		for end+1 < view.NMarkers() && view.Allele(end+1, h1) == view.Allele(end+1, h2) {
			end++
		}
		return (view.CMPos(end) - view.CMPos(locus)) / 100
	}
	start := locus
	for start-1 >= 0 && view.Allele(start-1, h1) == view.Allele(start-1, h2) {
		start--
	}
	return (view.CMPos(locus) - view.CMPos(start)) / 100
}

// CDF returns the one-sided global IBS-length CDF at x Morgans, per
// §4.2: max(1, min(N-1, count of entries <= x)) / N — monotone
// non-decreasing, never 0, never 1.
func (g *GlobalIbsProbs) CDF(x float64) float64 {
	n := len(g.sorted)
	if n == 0 {
		return 0.5
	}
	idx := sort.SearchFloat64s(g.sorted, nextAfterFloat(x))
	if idx < 1 {
		idx = 1
	}
	if idx > n-1 {
		idx = n - 1
	}
	return float64(idx) / float64(n)
}

// N returns the number of surviving sampled IBS lengths backing the
// global CDF.
func (g *GlobalIbsProbs) N() int { return len(g.sorted) }

// nextAfterFloat nudges x up by a relative epsilon so SearchFloat64s
// (a lower-bound search) counts entries equal to x, matching the "number
// of entries <= x" (upper bound of ties) semantics from §4.2.
func nextAfterFloat(x float64) float64 {
	return x + 1e-12*(1+absFloat(x))
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
