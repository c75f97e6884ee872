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
	"sort"

	"github.com/shenwei356/breader"
)

// GeneticMap is a sorted sequence of (basePos, cM) anchors for one
// chromosome, linearly interpolated between anchors. Queries outside
// the anchor range are the input adapter's signal to drop a record.
type GeneticMap struct {
	basePos []int64
	cM      []float64
}

const backOffBp = 5_000_000
const backOffCM = 0.05

// mapRow is the parsed shape of one PLINK-format genetic map line:
// CHROM, ID, cM, basePos.
type mapRow struct {
	chrom   string
	basePos int64
	cM      float64
}

func parseMapLine(line string) (mapRow, bool, error) {
	fields := splitFields(line)
	if len(fields) < 4 {
		return mapRow{}, false, nil
	}
	cm, err := parseFloat(fields[2])
	if err != nil {
		return mapRow{}, false, err
	}
	bp, err := parseInt(fields[3])
	if err != nil {
		return mapRow{}, false, err
	}
	return mapRow{chrom: fields[0], basePos: bp, cM: cm}, true, nil
}

// LoadGeneticMap reads a four-column PLINK genetic map file via the
// teacher's concurrent breader.NewBufferedReader, keeping only the
// anchors for chrom, and returns them sorted by basePos.
func LoadGeneticMap(path string, chrom string) (*GeneticMap, error) {
	fn := func(line string) (interface{}, bool, error) {
		return parseMapLine(line)
	}
	reader, err := breader.NewBufferedReader(path, 4, 100, fn)
	if err != nil {
		return nil, err
	}

	gm := &GeneticMap{}
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, chunk.Err
		}
		for _, d := range chunk.Data {
			row := d.(mapRow)
			if row.chrom != chrom {
				continue
			}
			gm.basePos = append(gm.basePos, row.basePos)
			gm.cM = append(gm.cM, row.cM)
		}
	}

	idx := make([]int, len(gm.basePos))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return gm.basePos[idx[i]] < gm.basePos[idx[j]] })
	bp := make([]int64, len(idx))
	cm := make([]float64, len(idx))
	for i, j := range idx {
		bp[i] = gm.basePos[j]
		cm[i] = gm.cM[j]
	}
	gm.basePos, gm.cM = bp, cm
	gm.separateTies()
	return gm, nil
}

// separateTies forces equal consecutive cM anchors apart by a small
// epsilon so that cMPos stays non-decreasing but never plateaus, per
// §3's Marker invariant.
func (gm *GeneticMap) separateTies() {
	const eps = 1e-7
	for i := 1; i < len(gm.cM); i++ {
		if gm.cM[i] <= gm.cM[i-1] {
			gm.cM[i] = gm.cM[i-1] + eps
		}
	}
}

// InRange reports whether basePos falls within the map's anchor span.
func (gm *GeneticMap) InRange(basePos int64) bool {
	if len(gm.basePos) == 0 {
		return false
	}
	return basePos >= gm.basePos[0] && basePos <= gm.basePos[len(gm.basePos)-1]
}

// CM interpolates the genetic position (in centiMorgans) of basePos,
// applying the 5 Mb / 0.05 cM back-off at the extreme ends described
// in §3 when the neighbouring anchors would otherwise produce a
// degenerate (zero-width) slope.
func (gm *GeneticMap) CM(basePos int64) float64 {
	n := len(gm.basePos)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return gm.cM[0]
	}

	i := sort.Search(n, func(i int) bool { return gm.basePos[i] >= basePos })
	if i == 0 {
		return gm.extrapolateLow(basePos)
	}
	if i == n {
		return gm.extrapolateHigh(basePos)
	}
	if gm.basePos[i] == basePos {
		return gm.cM[i]
	}

	lo, hi := i-1, i
	return gm.interp(basePos, lo, hi)
}

func (gm *GeneticMap) interp(basePos int64, lo, hi int) float64 {
	bpLo, bpHi := gm.basePos[lo], gm.basePos[hi]
	if bpHi == bpLo {
		return gm.cM[lo]
	}
	frac := float64(basePos-bpLo) / float64(bpHi-bpLo)
	return gm.cM[lo] + frac*(gm.cM[hi]-gm.cM[lo])
}

func (gm *GeneticMap) extrapolateLow(basePos int64) float64 {
	hi := 1
	lo := 0
	if gm.basePos[hi]-gm.basePos[lo] < backOffBp || gm.cM[hi]-gm.cM[lo] < backOffCM {
		// widen the anchor pair used for the slope to avoid a
		// degenerate (near-vertical) extrapolation
		for hi < len(gm.basePos)-1 && (gm.basePos[hi]-gm.basePos[lo] < backOffBp) {
			hi++
		}
	}
	return gm.interp(basePos, lo, hi)
}

func (gm *GeneticMap) extrapolateHigh(basePos int64) float64 {
	n := len(gm.basePos)
	hi := n - 1
	lo := n - 2
	if gm.basePos[hi]-gm.basePos[lo] < backOffBp || gm.cM[hi]-gm.cM[lo] < backOffCM {
		for lo > 0 && (gm.basePos[hi]-gm.basePos[lo] < backOffBp) {
			lo--
		}
	}
	return gm.interp(basePos, lo, hi)
}

// BasePosAt inverts CM: given a centiMorgan position within the map's
// span, it returns the interpolated base-pair position. Used by
// cluster emission (§4.7) to place output loci defined on a Morgan
// grid rather than on marker positions.
func (gm *GeneticMap) BasePosAt(cM float64) int64 {
	n := len(gm.cM)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return gm.basePos[0]
	}
	if cM <= gm.cM[0] {
		return gm.basePos[0]
	}
	if cM >= gm.cM[n-1] {
		return gm.basePos[n-1]
	}

	i := sort.Search(n, func(i int) bool { return gm.cM[i] >= cM })
	lo, hi := i-1, i
	cmLo, cmHi := gm.cM[lo], gm.cM[hi]
	if cmHi == cmLo {
		return gm.basePos[lo]
	}
	frac := (cM - cmLo) / (cmHi - cmLo)
	bpLo, bpHi := gm.basePos[lo], gm.basePos[hi]
	return bpLo + int64(frac*float64(bpHi-bpLo))
}

// FirstBasePos and LastBasePos bound the chromosome's usable span.
func (gm *GeneticMap) FirstBasePos() int64 { return gm.basePos[0] }
func (gm *GeneticMap) LastBasePos() int64  { return gm.basePos[len(gm.basePos)-1] }
