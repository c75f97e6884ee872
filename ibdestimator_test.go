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

import "testing"

func TestIbdEstimatorRefineKeepsHaplotypePair(t *testing.T) {
	c := makeIdenticalChromosome(30, 6)
	fwd := newForwardView(c)
	bwd := newReverseView(c)
	e := newTestIbdEstimator(c, fwd, bwd)

	seed := newSegment(0, 1, c.Markers[5].BasePos, c.Markers[20].BasePos)
	refined := e.Refine(seed)
	if refined.IsZero() {
		t.Fatal("expected a long, fully concordant segment to survive trimming")
	}
	if refined.H1 != 0 || refined.H2 != 1 {
		t.Errorf("Refine changed the haplotype pair: got (%d,%d)", refined.H1, refined.H2)
	}
}

func TestIbdEstimatorRefineDropsShortSegment(t *testing.T) {
	c := makeIdenticalChromosome(10, 4)
	fwd := newForwardView(c)
	bwd := newReverseView(c)
	e := newTestIbdEstimator(c, fwd, bwd)
	e.minIBDCM = 1000 // force rejection regardless of measured span

	seed := newSegment(0, 1, c.Markers[0].BasePos, c.Markers[len(c.Markers)-1].BasePos)
	refined := e.Refine(seed)
	if !refined.IsZero() {
		t.Errorf("expected Refine to drop a segment shorter than minIBDCM, got %v", refined)
	}
}

func TestSignificantChange(t *testing.T) {
	if !significantChange(0, 5, 0.01) {
		t.Errorf("a change from a zero baseline should always be significant")
	}
	if significantChange(10, 10.0001, 0.5) {
		t.Errorf("a tiny relative change should not be significant at maxRelChange=0.5")
	}
	if !significantChange(10, 20, 0.5) {
		t.Errorf("a 100%% relative change should be significant at maxRelChange=0.5")
	}
}
