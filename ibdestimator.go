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

import "math"

// IbdEstimator iteratively refines a candidate IBS segment's
// (start, focus, end) under the §4.5 posterior model and trims the
// result (§4.6). It holds a forward and a backward QuantileEstimator
// over the same chromosome and is itself single-threaded; callers
// pool estimators across worker goroutines (§4.6, §5).
type IbdEstimator struct {
	fwd     *QuantileEstimator
	bwd     *QuantileEstimator
	fwdView chromView
	bwdView chromView

	quantile         float64
	prefocusQuantile float64
	maxRelChange     float64
	maxIts           int
	fixFocus         bool
	trimCM           float64
	minIBDCM         float64
}

// NewIbdEstimator builds one estimator pair bound to a chromosome.
func NewIbdEstimator(fwd, bwd *QuantileEstimator, fwdView, bwdView chromView, p Params) *IbdEstimator {
	return &IbdEstimator{
		fwd: fwd, bwd: bwd, fwdView: fwdView, bwdView: bwdView,
		quantile:         p.Quantile,
		prefocusQuantile: p.PrefocusQuantile,
		maxRelChange:     p.MaxRelChange,
		maxIts:           p.MaxIts,
		fixFocus:         p.FixFocus,
		trimCM:           p.Trim,
		minIBDCM:         p.MinIBDCM,
	}
}

func (e *IbdEstimator) mirror(i int) int { return e.fwdView.NMarkers() - 1 - i }

// Refine runs §4.6's iterative endpoint refinement and trimming for
// seed segment S, returning a trimmed HapPairSegment or
// ZeroLengthSegment if it does not survive.
func (e *IbdEstimator) Refine(s HapPairSegment) HapPairSegment {
	h1, h2 := s.H1, s.H2

	leftMarker := e.fwd.MarkerAtOrAfter(s.StartPos)
	rightMarker := e.fwd.MarkerAtOrAfter(s.InclEndPos)
	focusBp := (s.StartPos + s.InclEndPos) / 2
	focusMarker := e.fwd.MarkerAtOrAfter(focusBp)

	origLeftBound := s.StartPos + 1
	origRightBound := s.InclEndPos - 1

	rejections := 0
	doRight := true
	for it := 0; it < 2*e.maxIts && rejections < 2; it++ {
		accepted := false
		if doRight {
			accepted = e.tryUpdateRight(h1, h2, &leftMarker, &focusMarker, &rightMarker, origLeftBound, origRightBound)
		} else {
			accepted = e.tryUpdateLeft(h1, h2, &leftMarker, &focusMarker, &rightMarker, origLeftBound, origRightBound)
		}
		if accepted {
			rejections = 0
		} else {
			rejections++
		}
		doRight = !doRight
	}

	rightMorgans, _ := e.fwd.Quantile(h1, h2, leftMarker, focusMarker, e.quantile)
	leftMorgansRev, _ := e.bwd.Quantile(h1, h2, e.mirror(rightMarker), e.mirror(focusMarker), e.quantile)
	leftMorgans := -leftMorgansRev

	trimM := e.trimCM / 100
	leftTrimmed := leftMorgans + trimM
	rightTrimmed := rightMorgans - trimM
	spanCM := (rightTrimmed - leftTrimmed) * 100

	if spanCM < e.minIBDCM || spanCM < 0 {
		return ZeroLengthSegment
	}

	startPos := morgansToBasePos(e.fwdView, leftTrimmed)
	endPos := morgansToBasePos(e.fwdView, rightTrimmed)
	if endPos < startPos {
		return ZeroLengthSegment
	}

	return newSegment(h1, h2, startPos, endPos)
}

func (e *IbdEstimator) tryUpdateRight(h1, h2 int, leftMarker, focusMarker, rightMarker *int, origLeft, origRight int64) bool {
	newMorgans, newBp := e.fwd.Quantile(h1, h2, *leftMarker, *focusMarker, e.prefocusQuantile)
	newRightMarker := e.fwd.MarkerAtOrAfter(newBp)

	oldDist := e.fwdView.CMPos(*rightMarker) - e.fwdView.CMPos(*focusMarker)
	newDist := newMorgans*100 - e.fwdView.CMPos(*focusMarker)
	if !significantChange(oldDist, newDist, e.maxRelChange) {
		return false
	}

	newFocusMarker := *focusMarker
	if !e.fixFocus {
		newFocusBp := (e.fwdView.BasePos(*leftMarker) + e.fwdView.BasePos(newRightMarker)) / 2
		newFocusMarker = e.fwd.MarkerAtOrAfter(newFocusBp)
		bp := e.fwdView.BasePos(newFocusMarker)
		if bp <= origLeft || bp >= origRight {
			return false
		}
	}

	leftSpan := e.fwdView.CMPos(newFocusMarker) - e.fwdView.CMPos(*leftMarker)
	rightSpan := e.fwdView.CMPos(newRightMarker) - e.fwdView.CMPos(newFocusMarker)
	if leftSpan <= 0 || rightSpan <= 0 {
		return false
	}

	*rightMarker = newRightMarker
	*focusMarker = newFocusMarker
	return true
}

func (e *IbdEstimator) tryUpdateLeft(h1, h2 int, leftMarker, focusMarker, rightMarker *int, origLeft, origRight int64) bool {
	revRight := e.mirror(*rightMarker)
	revFocus := e.mirror(*focusMarker)
	newMorgansRev, newBpRev := e.bwd.Quantile(h1, h2, revRight, revFocus, e.prefocusQuantile)
	newLeftMarkerRev := e.bwd.MarkerAtOrAfter(newBpRev)
	newLeftMarker := e.mirror(newLeftMarkerRev)

	oldDist := e.fwdView.CMPos(*focusMarker) - e.fwdView.CMPos(*leftMarker)
	newDist := e.fwdView.CMPos(*focusMarker) - (-newMorgansRev * 100)
	if !significantChange(oldDist, newDist, e.maxRelChange) {
		return false
	}

	newFocusMarker := *focusMarker
	if !e.fixFocus {
		newFocusBp := (e.fwdView.BasePos(newLeftMarker) + e.fwdView.BasePos(*rightMarker)) / 2
		newFocusMarker = e.fwd.MarkerAtOrAfter(newFocusBp)
		bp := e.fwdView.BasePos(newFocusMarker)
		if bp <= origLeft || bp >= origRight {
			return false
		}
	}

	leftSpan := e.fwdView.CMPos(newFocusMarker) - e.fwdView.CMPos(newLeftMarker)
	rightSpan := e.fwdView.CMPos(*rightMarker) - e.fwdView.CMPos(newFocusMarker)
	if leftSpan <= 0 || rightSpan <= 0 {
		return false
	}

	*leftMarker = newLeftMarker
	*focusMarker = newFocusMarker
	return true
}

func significantChange(oldDist, newDist, maxRelChange float64) bool {
	if oldDist == 0 {
		return true
	}
	rel := math.Abs(newDist-oldDist) / math.Abs(oldDist)
	return rel > maxRelChange
}
