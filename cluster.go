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

import "sort"

// OutputLocus is one row of the primary output: an integer step on the
// out-cm grid together with its interpolated base-pair position (§4.7).
type OutputLocus struct {
	BasePos int64
	CM      float64
}

// OutputLoci enumerates every integer k such that k*outCM*0.01 (Morgans)
// falls within the chromosome's genetic-map span, in ascending order.
func OutputLoci(gm *GeneticMap, outCM float64) []OutputLocus {
	step := outCM * 0.01 // cM -> Morgans per integer step
	if step <= 0 {
		return nil
	}
	minM := gm.CM(gm.FirstBasePos()) / 100
	maxM := gm.CM(gm.LastBasePos()) / 100

	kLo := int64(ceilFloat(minM / step))
	kHi := int64(floorFloat(maxM / step))

	loci := make([]OutputLocus, 0, maxInt64(0, kHi-kLo+1))
	for k := kLo; k <= kHi; k++ {
		morgans := float64(k) * step
		cm := morgans * 100
		loci = append(loci, OutputLocus{BasePos: gm.BasePosAt(cm), CM: cm})
	}
	return loci
}

func floorFloat(x float64) float64 {
	i := int64(x)
	if x < 0 && float64(i) != x {
		i--
	}
	return float64(i)
}

// LocusClusters is one output locus together with the cluster index of
// every haplotype at that locus (§4.7/§8 "Cluster indices are
// locus-local").
type LocusClusters struct {
	Locus   OutputLocus
	Indices []int
}

// ClustAnalysis sweeps surviving IBD segments across every output
// locus, building one union-find partition per locus, and performs the
// allele-discordance bookkeeping of §4.7's final paragraph. segs need
// not be pre-sorted; ClustAnalysis sorts them by (startPos, inclEndPos,
// h1, h2) in place.
func ClustAnalysis(segs []HapPairSegment, loci []OutputLocus, view chromView, nHaps int, windowSize int, stats *Stats) []LocusClusters {
	SortByPosThenPair(segs)
	bookkeepAlleleDiscordance(segs, view, stats)

	results := make([]LocusClusters, len(loci))
	ptr := 0
	live := make([]HapPairSegment, 0)

	for wStart := 0; wStart < len(loci); wStart += windowSize {
		wEnd := minInt(wStart+windowSize, len(loci))

		for i := wStart; i < wEnd; i++ {
			locus := loci[i]
			for ptr < len(segs) && segs[ptr].StartPos <= locus.BasePos {
				live = append(live, segs[ptr])
				ptr++
			}

			p := NewPartition(0, locus.BasePos, locus.CM, nHaps)
			for _, seg := range live {
				if seg.InclEndPos >= locus.BasePos {
					p.Union(seg.H1, seg.H2)
				}
			}
			indices := p.ClusterIndices()
			results[i] = LocusClusters{Locus: locus, Indices: indices}
			stats.AddOutputPosition(p.NSets())
		}

		// Between windows, drop segments that cannot possibly cover any
		// locus in the next window (§4.7 "filtered out once between
		// windows").
		if wEnd < len(loci) {
			nextMin := loci[wEnd].BasePos
			kept := live[:0]
			for _, seg := range live {
				if seg.InclEndPos >= nextMin {
					kept = append(kept, seg)
				}
			}
			live = kept
		}
	}

	return results
}

// bookkeepAlleleDiscordance implements §4.7's final paragraph: for
// every surviving segment, count allele mismatches between h1 and h2
// at markers falling inside the segment's closed interval.
func bookkeepAlleleDiscordance(segs []HapPairSegment, view chromView, stats *Stats) {
	n := view.NMarkers()
	for _, s := range segs {
		lo := sort.Search(n, func(i int) bool { return view.BasePos(i) >= s.StartPos })
		hi := sort.Search(n, func(i int) bool { return view.BasePos(i) > s.InclEndPos })

		var discordant, checked int64
		for m := lo; m < hi; m++ {
			checked++
			if view.Allele(m, s.H1) != view.Allele(m, s.H2) {
				discordant++
			}
		}
		if checked > 0 {
			stats.AddAlleleDiscordance(discordant, checked)
		}
	}
}
