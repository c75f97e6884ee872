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

// chromView is the read-only forward-or-backward view over a
// Chromosome's markers that §9 calls for ("the QuantileEstimator
// needs both forward and reverse views of the same chromosome;
// represent this as two read-only views sharing immutable storage,
// not two full copies"). IbsCounts, IbsLengthProbs, and
// QuantileEstimator are all written against this interface so the
// same code drives both directions.
type chromView interface {
	NMarkers() int
	NHaps() int
	Allele(i, h int) uint16
	NAlleles(i int) int
	CMPos(i int) float64   // strictly increasing in i within a view
	BasePos(i int) int64   // strictly monotonic in i within a view
}

// forwardView walks a Chromosome's markers in their natural order.
type forwardView struct {
	c *Chromosome
}

func newForwardView(c *Chromosome) chromView { return forwardView{c: c} }

func (v forwardView) NMarkers() int            { return len(v.c.Markers) }
func (v forwardView) NHaps() int               { return v.c.NHaps }
func (v forwardView) Allele(i, h int) uint16   { return v.c.Markers[i].Allele(h) }
func (v forwardView) NAlleles(i int) int       { return v.c.Markers[i].NAlleles }
func (v forwardView) CMPos(i int) float64      { return v.c.Markers[i].CMPos }
func (v forwardView) BasePos(i int) int64      { return v.c.Markers[i].BasePos }

// reverseView walks the same markers back to front, negating genetic
// position so that cMPos stays strictly increasing in view-index (the
// "negated positions" backward machinery of §4.5), without copying
// any allele storage.
type reverseView struct {
	c *Chromosome
}

func newReverseView(c *Chromosome) chromView { return reverseView{c: c} }

func (v reverseView) mirror(i int) int { return len(v.c.Markers) - 1 - i }

func (v reverseView) NMarkers() int          { return len(v.c.Markers) }
func (v reverseView) NHaps() int             { return v.c.NHaps }
func (v reverseView) Allele(i, h int) uint16 { return v.c.Markers[v.mirror(i)].Allele(h) }
func (v reverseView) NAlleles(i int) int     { return v.c.Markers[v.mirror(i)].NAlleles }
func (v reverseView) CMPos(i int) float64    { return -v.c.Markers[v.mirror(i)].CMPos }
func (v reverseView) BasePos(i int) int64    { return -v.c.Markers[v.mirror(i)].BasePos }
