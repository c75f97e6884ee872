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

// HapPairSegment is a closed base-position interval on which two
// haplotypes are inferred IBS or (after §4.6) trimmed IBD. h1 < h2
// always holds for a well-formed segment.
type HapPairSegment struct {
	H1, H2      int
	StartPos    int64
	InclEndPos  int64
}

// ZeroLengthSegment is the distinguished "filtered out" value returned
// by the IBD estimator when a candidate segment does not survive
// trimming (§4.6, §3).
var ZeroLengthSegment = HapPairSegment{H1: -1, H2: -1, StartPos: 0, InclEndPos: -1}

// IsZero reports whether s is the distinguished zero-length value.
func (s HapPairSegment) IsZero() bool {
	return s == ZeroLengthSegment
}

func newSegment(h1, h2 int, start, end int64) HapPairSegment {
	if h1 > h2 {
		h1, h2 = h2, h1
	}
	return HapPairSegment{H1: h1, H2: h2, StartPos: start, InclEndPos: end}
}

// byPairThenPos orders segments by (h1,h2,startPos,inclEndPos), the
// canonical order used before merge-coalescing in §4.4.
type byPairThenPos []HapPairSegment

func (s byPairThenPos) Len() int      { return len(s) }
func (s byPairThenPos) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byPairThenPos) Less(i, j int) bool {
	a, b := s[i], s[j]
	if a.H1 != b.H1 {
		return a.H1 < b.H1
	}
	if a.H2 != b.H2 {
		return a.H2 < b.H2
	}
	if a.StartPos != b.StartPos {
		return a.StartPos < b.StartPos
	}
	return a.InclEndPos < b.InclEndPos
}

// byPosThenPair orders segments by (startPos,inclEndPos,h1,h2), the
// order consumed by cluster emission in §4.7.
type byPosThenPair []HapPairSegment

func (s byPosThenPair) Len() int      { return len(s) }
func (s byPosThenPair) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byPosThenPair) Less(i, j int) bool {
	a, b := s[i], s[j]
	if a.StartPos != b.StartPos {
		return a.StartPos < b.StartPos
	}
	if a.InclEndPos != b.InclEndPos {
		return a.InclEndPos < b.InclEndPos
	}
	if a.H1 != b.H1 {
		return a.H1 < b.H1
	}
	return a.H2 < b.H2
}

// SortByPairThenPos sorts segments in place by (h1,h2,startPos,inclEndPos).
func SortByPairThenPos(segs []HapPairSegment) {
	sort.Sort(byPairThenPos(segs))
}

// SortByPosThenPair sorts segments in place by (startPos,inclEndPos,h1,h2).
func SortByPosThenPair(segs []HapPairSegment) {
	sort.Sort(byPosThenPair(segs))
}

// CoalesceOverlaps merges consecutive, already (h1,h2,startPos)-sorted
// segments that share (h1,h2) and whose intervals overlap or touch
// (prior inclEndPos + 1 >= next startPos) into a single spanning segment,
// per §4.4's merge step. segs must already be sorted by
// byPairThenPos; the result is returned sorted the same way.
func CoalesceOverlaps(segs []HapPairSegment) []HapPairSegment {
	if len(segs) == 0 {
		return segs
	}
	out := make([]HapPairSegment, 0, len(segs))
	cur := segs[0]
	for _, s := range segs[1:] {
		if s.H1 == cur.H1 && s.H2 == cur.H2 && s.StartPos <= cur.InclEndPos+1 {
			if s.InclEndPos > cur.InclEndPos {
				cur.InclEndPos = s.InclEndPos
			}
			continue
		}
		out = append(out, cur)
		cur = s
	}
	out = append(out, cur)
	return out
}
