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

// QuantileEstimator computes the posterior CDF of a haplotype pair's
// segment end-point and answers quantile lookups against it (§4.5).
// One estimator is built per (view direction) and is single-threaded;
// a pool of them is shared across worker goroutines because the CDF
// scratch buffers are the estimator's only expensive allocation
// (§4.6, §5 "Memory discipline").
type QuantileEstimator struct {
	view  chromView
	probs *IbsLengthProbs
	ne    float64

	discord     float64
	gcDiscord   float64
	gcBases     int64
	minCDFRatio float64
	endMorgans  float64

	// scratch, reused across Quantile calls, sized to nMarkers+1.
	markers []int
	cdf     []float64
}

// NewQuantileEstimator builds one estimator bound to view (forward or
// reverse) and its paired IbsLengthProbs. endMorgans caps how far past
// the believed segment start the CDF walk searches for support (§9
// end_morgans); a non-positive value means no cap.
func NewQuantileEstimator(view chromView, probs *IbsLengthProbs, ne, discord, gcDiscord float64, gcBases int64, minCDFRatio, endMorgans float64) *QuantileEstimator {
	n := view.NMarkers()
	return &QuantileEstimator{
		view:        view,
		probs:       probs,
		ne:          ne,
		discord:     discord,
		gcDiscord:   gcDiscord,
		gcBases:     gcBases,
		minCDFRatio: minCDFRatio,
		endMorgans:  endMorgans,
		markers:     make([]int, 0, n+1),
		cdf:         make([]float64, 0, n+1),
	}
}

const rescaleThreshold = 1e50

// buildCDF constructs the prior CDF of the segment's right endpoint
// starting from focusMarker+1, for the pair (h1,h2) whose believed
// segment start is startMarker. The result is left in e.markers/e.cdf,
// monotone non-decreasing and equal to 1 at its last index (§8 #5).
func (e *QuantileEstimator) buildCDF(h1, h2, startMarker, focusMarker int) {
	e.markers = e.markers[:0]
	e.cdf = e.cdf[:0]

	nMarkers := e.view.NMarkers()
	startMorgans := e.view.CMPos(startMarker) / 100
	lastMorgans := e.view.CMPos(focusMarker) / 100

	factor := 1.0
	cum := 0.0
	prevDiscord := startMarker - 1

	for m := focusMarker + 1; m < nMarkers; m++ {
		mMorgans := e.view.CMPos(m) / 100
		if e.endMorgans > 0 && mMorgans-startMorgans > e.endMorgans {
			break
		}
		if e.view.Allele(m, h1) == e.view.Allele(m, h2) {
			contribution := (F(mMorgans-startMorgans, e.ne) - F(lastMorgans-startMorgans, e.ne)) *
				e.probs.IBSProb(prevDiscord+1, m) * factor
			cum += contribution
			e.markers = append(e.markers, m)
			e.cdf = append(e.cdf, cum)
			lastMorgans = mMorgans

			if cum > rescaleThreshold {
				e.rescale(cum)
				cum = 1
			}

			remainingBound := factor * (1 - F(mMorgans-startMorgans, e.ne))
			if remainingBound < e.minCDFRatio*cum {
				break
			}
		} else {
			discordProb := e.discord
			if prevDiscord >= 0 {
				gap := e.view.BasePos(m) - e.view.BasePos(prevDiscord)
				if gap < 0 {
					gap = -gap
				}
				if gap <= e.gcBases {
					discordProb = e.gcDiscord
				}
			}
			denom := e.probs.IBSProb(prevDiscord+1, m)
			if denom > 0 {
				factor *= discordProb / denom
			}
			prevDiscord = m
			lastMorgans = mMorgans
		}
	}

	if len(e.cdf) == 0 {
		// No IBS marker at all past the focus: a single degenerate
		// mass point right at the focus.
		e.markers = append(e.markers, focusMarker)
		e.cdf = append(e.cdf, 1)
		return
	}

	max := e.cdf[len(e.cdf)-1]
	if max > 0 {
		for i := range e.cdf {
			e.cdf[i] /= max
		}
	} else {
		e.cdf[len(e.cdf)-1] = 1
	}
}

func (e *QuantileEstimator) rescale(cum float64) {
	scale := 1 / cum
	for i := range e.cdf {
		e.cdf[i] *= scale
	}
}

// Quantile returns the Morgan and base-pair position at which the
// posterior CDF of the pair's right end reaches p, given the marker
// index of the believed segment start and a focus marker index (§4.5
// "Quantile lookup").
func (e *QuantileEstimator) Quantile(h1, h2, startMarker, focusMarker int, p float64) (morgans float64, basePos int64) {
	e.buildCDF(h1, h2, startMarker, focusMarker)

	startMorgans := e.view.CMPos(startMarker) / 100
	focusMorgans := e.view.CMPos(focusMarker) / 100
	focusBasePos := e.view.BasePos(focusMarker)

	idx := sort.SearchFloat64s(e.cdf, p)

	var x1Morgans, x2Morgans float64
	var bp1, bp2 int64
	var p1, p2 float64

	if idx == 0 {
		x1Morgans, bp1, p1 = focusMorgans, focusBasePos, 0
		x2Morgans, bp2, p2 = e.view.CMPos(e.markers[0])/100, e.view.BasePos(e.markers[0]), e.cdf[0]
	} else if idx >= len(e.cdf) {
		last := len(e.cdf) - 1
		x1Morgans, bp1, p1 = e.view.CMPos(e.markers[last])/100, e.view.BasePos(e.markers[last]), e.cdf[last]
		x2Morgans, bp2, p2 = x1Morgans, bp1, 1
	} else {
		x1Morgans, bp1, p1 = e.view.CMPos(e.markers[idx-1])/100, e.view.BasePos(e.markers[idx-1]), e.cdf[idx-1]
		x2Morgans, bp2, p2 = e.view.CMPos(e.markers[idx])/100, e.view.BasePos(e.markers[idx]), e.cdf[idx]
	}

	var frac float64
	if p2 > p1 {
		f1 := F(x1Morgans-startMorgans, e.ne)
		f2 := F(x2Morgans-startMorgans, e.ne)
		target := f1 + ((p-p1)/(p2-p1))*(f2-f1)
		morgans = startMorgans + InvF(target, e.ne)
		if x2Morgans > x1Morgans {
			frac = (morgans - x1Morgans) / (x2Morgans - x1Morgans)
		}
	} else {
		morgans = x1Morgans
	}

	if morgans < x1Morgans {
		morgans = x1Morgans
	}
	if morgans > x2Morgans {
		morgans = x2Morgans
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	basePos = bp1 + int64(frac*float64(bp2-bp1))
	if basePos < focusBasePos+1 {
		basePos = focusBasePos + 1
	}
	return morgans, basePos
}

// MarkerAtOrAfter returns the index of the first marker whose
// BasePos() is >= basePos, within the estimator's view.
func (e *QuantileEstimator) MarkerAtOrAfter(basePos int64) int {
	n := e.view.NMarkers()
	return sort.Search(n, func(i int) bool { return e.view.BasePos(i) >= basePos })
}
