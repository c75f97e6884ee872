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

// BuildIbsSegments runs `pbwt` interleaved PBWT scans over view and
// returns the merged, coalesced list of long IBS haplotype-pair
// segments (§2 IbsSegments, §4.4).
func BuildIbsSegments(view chromView, minIBSCM float64, pbwt int) []HapPairSegment {
	var all []HapPairSegment
	for a := 0; a < pbwt; a++ {
		all = append(all, scanIBSSegments(view, minIBSCM, pbwt, a)...)
	}

	SortByPairThenPos(all)
	return CoalesceOverlaps(all)
}

// scanIBSSegments runs one interleaved analysis: markers a, a+pbwt,
// a+2*pbwt, ... (§4.4).
func scanIBSSegments(view chromView, minIBSCM float64, stride, phase int) []HapPairSegment {
	nHaps := view.NHaps()
	nMarkers := view.NMarkers()

	var markerSeq []int
	for m := phase; m < nMarkers; m += stride {
		markerSeq = append(markerSeq, m)
	}
	if len(markerSeq) == 0 {
		return nil
	}

	A := make([]int32, nHaps)
	D := make([]int32, nHaps)
	for i := range A {
		A[i] = int32(i)
	}

	var segments []HapPairSegment
	maxStartPtr := 0

	for t, m := range markerSeq {
		nAlleles := view.NAlleles(m)
		A, D = pbwtStep(A, D, m, t, view, nAlleles)

		for maxStartPtr+1 < nMarkers && view.CMPos(maxStartPtr+1)+minIBSCM <= view.CMPos(m) {
			maxStartPtr++
		}
		maxStart := -1
		if view.CMPos(maxStartPtr)+minIBSCM <= view.CMPos(m) {
			maxStart = maxStartPtr
		}

		isFinal := t == len(markerSeq)-1
		for j := 1; j < nHaps; j++ {
			divStep := int(D[j])
			if divStep > t+1 || divStep < 0 {
				continue
			}
			var startMarker int
			if divStep < len(markerSeq) {
				startMarker = markerSeq[divStep]
			} else {
				continue
			}
			if startMarker > maxStart || maxStart < 0 {
				continue
			}

			nextDiffers := true
			if m+1 < nMarkers {
				nextDiffers = view.Allele(m+1, int(A[j-1])) != view.Allele(m+1, int(A[j]))
			}
			if !nextDiffers && !isFinal {
				continue
			}

			segments = append(segments, newSegment(int(A[j-1]), int(A[j]), view.BasePos(startMarker), view.BasePos(m)))
		}
	}

	return segments
}

// pbwtStep is the stable-radix-by-allele PBWT forward step: given the
// prefix array A and divergence array D after incorporating markers
// markerSeq[0..t-1], return the arrays after also incorporating
// markerSeq[t] (whose real marker index is m). Divergence values are
// expressed as indices into markerSeq, not raw marker indices, so the
// caller must translate through markerSeq before use.
func pbwtStep(A, D []int32, m, t int, view chromView, nAlleles int) ([]int32, []int32) {
	n := len(A)
	buckets := make([][]int32, nAlleles)
	bucketsD := make([][]int32, nAlleles)
	p := make([]int32, nAlleles)
	for a := range p {
		p[a] = int32(t + 1)
	}

	for i := 0; i < n; i++ {
		hap := A[i]
		div := D[i]
		for a := 0; a < nAlleles; a++ {
			if div > p[a] {
				p[a] = div
			}
		}
		allele := int(view.Allele(m, int(hap)))
		if allele >= nAlleles {
			allele = nAlleles - 1
		}
		buckets[allele] = append(buckets[allele], hap)
		bucketsD[allele] = append(bucketsD[allele], p[allele])
		p[allele] = 0
	}

	newA := make([]int32, 0, n)
	newD := make([]int32, 0, n)
	for a := 0; a < nAlleles; a++ {
		newA = append(newA, buckets[a]...)
		newD = append(newD, bucketsD[a]...)
	}
	return newA, newD
}
