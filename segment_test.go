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

func TestNewSegmentOrdersHaplotypes(t *testing.T) {
	s := newSegment(5, 2, 100, 200)
	if s.H1 != 2 || s.H2 != 5 {
		t.Errorf("newSegment(5,2,...) = {%d,%d}, want {2,5}", s.H1, s.H2)
	}
}

func TestZeroLengthSegmentIsZero(t *testing.T) {
	if !ZeroLengthSegment.IsZero() {
		t.Errorf("ZeroLengthSegment.IsZero() = false, want true")
	}
	real := newSegment(0, 1, 10, 20)
	if real.IsZero() {
		t.Errorf("a real segment reported IsZero() = true")
	}
}

func TestCoalesceOverlapsMergesTouchingSegments(t *testing.T) {
	segs := []HapPairSegment{
		newSegment(0, 1, 100, 200),
		newSegment(0, 1, 201, 300),
		newSegment(0, 1, 500, 600),
		newSegment(2, 3, 50, 150),
	}
	SortByPairThenPos(segs)
	merged := CoalesceOverlaps(segs)

	if len(merged) != 3 {
		t.Fatalf("expected 3 merged segments, got %d: %v", len(merged), merged)
	}
	var found01 bool
	for _, s := range merged {
		if s.H1 == 0 && s.H2 == 1 && s.StartPos == 100 && s.InclEndPos == 300 {
			found01 = true
		}
	}
	if !found01 {
		t.Errorf("expected the two adjacent (0,1) segments to merge into [100,300], got %v", merged)
	}
}

func TestBuildIbsSegmentsIdenticalHaplotypesSpanWholeChromosome(t *testing.T) {
	c := makeIdenticalChromosome(20, 4)
	view := newForwardView(c)
	segs := BuildIbsSegments(view, 1.0, 2)

	if len(segs) == 0 {
		t.Fatal("expected at least one IBS segment among identical haplotypes")
	}
	for _, s := range segs {
		if s.StartPos != c.Markers[0].BasePos {
			t.Errorf("segment %v should start at the first marker (%d)", s, c.Markers[0].BasePos)
		}
		if s.InclEndPos != c.Markers[len(c.Markers)-1].BasePos {
			t.Errorf("segment %v should extend to the last marker (%d)", s, c.Markers[len(c.Markers)-1].BasePos)
		}
	}
}

func TestBuildIbsSegmentsCleanBreakAtHalf(t *testing.T) {
	nMarkers := 20
	c := &Chromosome{Name: "1", NHaps: 2}
	c.SampleIDs = []string{"s"}
	for m := 0; m < nMarkers; m++ {
		var allele0, allele1 uint16
		if m < nMarkers/2 {
			allele0, allele1 = 0, 0
		} else {
			allele0, allele1 = 0, 1
		}
		alleles := []uint16{allele0, allele1}
		counts := []int{0, 0}
		for _, a := range alleles {
			counts[a]++
		}
		mk := Marker{BasePos: int64(1000 * (m + 1)), CMPos: float64(m + 1), NAlleles: 2}
		mk.alleles = chooseAlleleStorage(2, alleles, counts)
		c.Markers = append(c.Markers, mk)
	}

	view := newForwardView(c)
	segs := BuildIbsSegments(view, 1.0, 1)

	for _, s := range segs {
		if s.InclEndPos > c.Markers[nMarkers/2-1].BasePos {
			t.Errorf("segment %v should not cross the discordance at marker %d", s, nMarkers/2)
		}
	}
}
