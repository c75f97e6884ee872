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

func TestIbsCountsRowNonIncreasing(t *testing.T) {
	c := makeTestChromosome(30, 20, 42)
	view := newForwardView(c)
	ic := BuildIbsCounts(view, 20, 0.99, 42)

	for start := 0; start < view.NMarkers(); start++ {
		row := ic.RowLen(start)
		prev := ic.NPairs()
		for k := 0; k < row; k++ {
			v := int64(ic.IBSPairs(start, start+k))
			if v > prev {
				t.Errorf("IBSPairs(%d,%d)=%d should not exceed previous count %d", start, start+k, v, prev)
			}
			prev = v
		}
	}
}

func TestIbsCountsIdenticalHaplotypesStayAtMax(t *testing.T) {
	c := makeIdenticalChromosome(15, 8)
	view := newForwardView(c)
	ic := BuildIbsCounts(view, 8, 0.99, 7)

	// all haplotypes are identical everywhere, so every class stays
	// together and the IBS pair count should equal NPairs() all the
	// way to the end of every row.
	for start := 0; start < view.NMarkers(); start++ {
		row := ic.RowLen(start)
		if row == 0 {
			continue
		}
		last := ic.IBSPairs(start, start+row-1)
		if int64(last) != ic.NPairs() {
			t.Errorf("row %d: last count %d != NPairs() %d for identical haplotypes", start, last, ic.NPairs())
		}
	}
}

func TestIbsCountsReverseSameSampleSize(t *testing.T) {
	c := makeTestChromosome(20, 10, 3)
	view := newForwardView(c)
	ic := BuildIbsCounts(view, 10, 0.99, 9)

	rev := ic.Reverse(c, 10, 0.99, 9)
	if rev.SampleSize() != ic.SampleSize() {
		t.Errorf("Reverse sample size %d != forward sample size %d", rev.SampleSize(), ic.SampleSize())
	}
	if rev.NPairs() != ic.NPairs() {
		t.Errorf("Reverse NPairs %d != forward NPairs %d", rev.NPairs(), ic.NPairs())
	}
}

func TestIbsCountsDeterministicWithFixedSeed(t *testing.T) {
	c := makeTestChromosome(25, 12, 123)
	view := newForwardView(c)
	ic1 := BuildIbsCounts(view, 12, 0.99, 55)
	ic2 := BuildIbsCounts(view, 12, 0.99, 55)

	for start := 0; start < view.NMarkers(); start++ {
		if ic1.RowLen(start) != ic2.RowLen(start) {
			t.Fatalf("row length mismatch at start=%d: %d vs %d", start, ic1.RowLen(start), ic2.RowLen(start))
		}
		for k := 0; k < ic1.RowLen(start); k++ {
			if ic1.IBSPairs(start, start+k) != ic2.IBSPairs(start, start+k) {
				t.Errorf("counts differ at start=%d,end=%d with same seed", start, start+k)
			}
		}
	}
}
