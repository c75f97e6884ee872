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

import "math/rand"

// IbsCounts is the per-start-marker empirical tail of IBS run lengths
// over a random haplotype subset (§3, §4.1).
type IbsCounts struct {
	sampleHaps []int32 // sorted subset H, indices into the view's haplotypes
	rows       [][]int32
	minIBSPairs int32
	view       chromView
}

// sampleSubset draws the deterministic shuffle-then-sort subset of
// haplotypes described in §4.1, capped at both local_segments and the
// hard 45000 ceiling from §3.
func sampleSubset(nHaps int, localSegments int, seed int64) []int32 {
	n := minInt(nHaps, minInt(localSegments, LocalSegmentsHardCap))
	perm := rand.New(rand.NewSource(seed)).Perm(nHaps)
	subset := make([]int32, n)
	for i := 0; i < n; i++ {
		subset[i] = int32(perm[i])
	}
	sortInt32s(subset)
	return subset
}

func sortInt32s(s []int32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// BuildIbsCounts runs the §4.1 algorithm over view, sampling |H| <=
// min(nHaps, local_segments, 45000) haplotypes with the given seed.
func BuildIbsCounts(view chromView, localSegments int, localMaxCDF float64, seed int64) *IbsCounts {
	nHaps := view.NHaps()
	subset := sampleSubset(nHaps, localSegments, seed)
	h := len(subset)

	total := int64(h) * int64(h-1)
	minPairs := int32(ceilFloat(float64(total) * (1 - localMaxCDF)))

	ic := &IbsCounts{
		sampleHaps:  subset,
		rows:        make([][]int32, view.NMarkers()),
		minIBSPairs: minPairs,
		view:        view,
	}

	class := make([]int32, h)
	classSize := map[int32]int32{}
	splitMap := map[int64]int32{}

	nMarkers := view.NMarkers()
	for start := 0; start < nMarkers; start++ {
		for j := range class {
			class[j] = 0
		}
		for k := range classSize {
			delete(classSize, k)
		}
		classSize[0] = int32(h)
		counter := int64(h) * int64(h-1)
		nextClass := int32(1)

		row := make([]int32, 0, 8)
		for m := start; m < nMarkers; m++ {
			nAlleles := view.NAlleles(m)
			if nAlleles > 1 {
				for k := range splitMap {
					delete(splitMap, k)
				}
				changed := false
				for j, hapIdx := range subset {
					allele := view.Allele(m, int(hapIdx))
					key := int64(class[j])*int64(nAlleles) + int64(allele)
					newClass, ok := splitMap[key]
					if !ok {
						newClass = nextClass
						nextClass++
						splitMap[key] = newClass
					}
					if newClass != class[j] {
						changed = true
					}
					class[j] = newClass
				}
				if changed {
					for k := range classSize {
						delete(classSize, k)
					}
					for _, cl := range class {
						classSize[cl]++
					}
					counter = 0
					for _, sz := range classSize {
						counter += int64(sz) * int64(sz-1)
					}
				}
			}

			if int32(counter) < minPairs {
				break
			}
			row = append(row, int32(counter))
		}
		ic.rows[start] = row
	}

	return ic
}

func ceilFloat(f float64) float64 {
	i := int64(f)
	if float64(i) < f {
		i++
	}
	return float64(i)
}

// IBSPairs returns C[start][end-start], or -1 if the row was
// truncated before reaching end.
func (ic *IbsCounts) IBSPairs(start, end int) int32 {
	if start < 0 || start >= len(ic.rows) {
		return -1
	}
	k := end - start
	row := ic.rows[start]
	if k < 0 || k >= len(row) {
		return -1
	}
	return row[k]
}

// RowLen returns how far row `start` was populated before truncation.
func (ic *IbsCounts) RowLen(start int) int {
	if start < 0 || start >= len(ic.rows) {
		return 0
	}
	return len(ic.rows[start])
}

// NPairs returns |H|*(|H|-1), the ordered-pair denominator.
func (ic *IbsCounts) NPairs() int64 {
	h := int64(len(ic.sampleHaps))
	return h * (h - 1)
}

// SampleSize returns |H|.
func (ic *IbsCounts) SampleSize() int { return len(ic.sampleHaps) }

// Reverse returns the IbsCounts table for the reversed marker order,
// built by re-running §4.1 over the chromosome's reverseView (same
// seed, so the same sampled subset by construction) rather than an
// index transform of the forward table — simpler to reason about and
// it satisfies the round-trip invariant (§8 #8) by construction, since
// reversing the reversed view's marker order reproduces the original
// view exactly.
func (ic *IbsCounts) Reverse(c *Chromosome, localSegments int, localMaxCDF float64, seed int64) *IbsCounts {
	return BuildIbsCounts(newReverseView(c), localSegments, localMaxCDF, seed)
}
