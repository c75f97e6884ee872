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

// IbsLengthProbs gives, for every (start,end), the estimated
// probability that a random pair is IBS on [start,end-1] and
// discordant at end — the per-marker IBS-survival values §4.5's prior
// CDF construction multiplies together (§3, §4.3).
type IbsLengthProbs struct {
	ic     *IbsCounts
	global *GlobalIbsProbs
	view   chromView
}

// NewIbsLengthProbs pairs a local IbsCounts table with the global CDF
// that backstops it once the local table's row has been truncated.
func NewIbsLengthProbs(ic *IbsCounts, global *GlobalIbsProbs, view chromView) *IbsLengthProbs {
	return &IbsLengthProbs{ic: ic, global: global, view: view}
}

// Prob returns P(IBS on [start,end-1] AND discordant at end), with
// the (nMarkers,nMarkers) sentinel from §3 defined as 1.
func (p *IbsLengthProbs) Prob(start, end int) float64 {
	nMarkers := p.view.NMarkers()
	if start == nMarkers && end == nMarkers {
		return 1
	}

	if end >= 1 {
		c1 := p.ic.IBSPairs(start, end-1)
		c2 := p.ic.IBSPairs(start, end)
		if c1 >= 0 && c2 >= 0 {
			return (float64(c1-c2) + 1) / (float64(p.ic.NPairs()) + 1)
		}
	}

	morgansStart := p.view.CMPos(start) / 100
	morgansEnd := p.view.CMPos(minInt(end, nMarkers-1)) / 100
	morgansEndM1 := p.view.CMPos(minInt(end-1, nMarkers-1)) / 100

	diff := p.global.CDF(morgansEnd-morgansStart) - p.global.CDF(morgansEndM1-morgansStart)
	if diff <= 0 {
		return 0.5 / float64(p.global.N())
	}
	return diff
}

// IBSProb returns P(IBS on [start,end]) via the §4.3 local table when
// available, used by §4.5/§4.6's running "factor" corrections.
func (p *IbsLengthProbs) IBSProb(start, end int) float64 {
	c := p.ic.IBSPairs(start, end)
	if c >= 0 {
		return float64(c) / float64(p.ic.NPairs())
	}
	morgansStart := p.view.CMPos(start) / 100
	morgansEnd := p.view.CMPos(minInt(end, p.view.NMarkers()-1)) / 100
	return 1 - p.global.CDF(morgansEnd-morgansStart)
}
