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

// Marker is one genotyped position on a chromosome. It is built once
// per chromosome by the input adapter and never mutated afterward.
type Marker struct {
	ChromIndex int
	BasePos    int64
	CMPos      float64
	NAlleles   int

	alleles alleleStorage
}

// Allele returns the allele index carried by haplotype h at this marker.
func (m *Marker) Allele(h int) uint16 {
	return m.alleles.allele(h)
}

// alleleStorage is the polymorphic per-marker allele contract from §9:
// a single "allele(hapIdx) -> u16" accessor with two concrete backing
// strategies chosen per marker by minor allele frequency.
type alleleStorage interface {
	allele(h int) uint16
}

// packedAlleles bit-packs one allele index per haplotype at width
// ceil(log2(nAlleles)), the strategy §9 prescribes "for high-MAF
// records".
type packedAlleles struct {
	bits  []uint64
	width uint
}

func newPackedAlleles(n, nAlleles int) *packedAlleles {
	width := bitWidth(nAlleles)
	nbits := n * int(width)
	words := (nbits + 63) / 64
	if words == 0 {
		words = 1
	}
	return &packedAlleles{bits: make([]uint64, words), width: width}
}

func bitWidth(nAlleles int) uint {
	w := uint(0)
	for (1 << w) < nAlleles {
		w++
	}
	if w == 0 {
		w = 1
	}
	return w
}

func (p *packedAlleles) set(h int, allele uint16) {
	bitPos := h * int(p.width)
	word := bitPos / 64
	off := uint(bitPos % 64)
	mask := uint64(1)<<p.width - 1
	p.bits[word] &^= mask << off
	p.bits[word] |= (uint64(allele) & mask) << off
	if off+p.width > 64 {
		rem := off + p.width - 64
		p.bits[word+1] &^= uint64(1)<<rem - 1
		p.bits[word+1] |= uint64(allele) >> (p.width - rem)
	}
}

func (p *packedAlleles) allele(h int) uint16 {
	bitPos := h * int(p.width)
	word := bitPos / 64
	off := uint(bitPos % 64)
	mask := uint64(1)<<p.width - 1
	v := (p.bits[word] >> off) & mask
	if off+p.width > 64 {
		rem := off + p.width - 64
		v |= (p.bits[word+1] & (uint64(1)<<rem - 1)) << (p.width - rem)
	}
	return uint16(v)
}

// sparseAlleles stores a majority allele plus a sorted list of
// haplotypes carrying a different (minor) allele, the "sparse
// minor-allele carrier lists for low-MAF records" strategy of §9.
// It is only used for biallelic markers, which is the overwhelming
// common case once the min-maf filter has run.
type sparseAlleles struct {
	major   uint16
	minor   uint16
	carrier []int32 // sorted ascending haplotype indices carrying `minor`
}

func newSparseAlleles(major, minor uint16, carrier []int32) *sparseAlleles {
	return &sparseAlleles{major: major, minor: minor, carrier: carrier}
}

func (s *sparseAlleles) allele(h int) uint16 {
	lo, hi := 0, len(s.carrier)
	for lo < hi {
		mid := (lo + hi) / 2
		if int(s.carrier[mid]) < h {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(s.carrier) && int(s.carrier[lo]) == h {
		return s.minor
	}
	return s.major
}

// sparseCarrierThreshold bounds how large the minor-allele carrier
// list may grow (as a fraction of nHaps) before a biallelic marker is
// bit-packed instead. Each carrier costs 32 bits against 1 bit per
// haplotype when packed, so at the threshold the carrier list is up to
// 8x the size of the packed form.
const sparseCarrierThreshold = 0.25

// chooseAlleleStorage picks one of the two storage strategies for one
// marker given per-allele haplotype counts: sparse carrier lists for
// biallelic markers whose minor-allele count is at most
// sparseCarrierThreshold*nHaps, bit-packing otherwise.
func chooseAlleleStorage(nHaps int, alleleOf []uint16, counts []int) alleleStorage {
	if len(counts) == 2 {
		major, minor := uint16(0), uint16(1)
		if counts[1] > counts[0] {
			major, minor = 1, 0
		}
		minorCount := counts[minor]
		if float64(minorCount) <= sparseCarrierThreshold*float64(nHaps) {
			carrier := make([]int32, 0, minorCount)
			for h, a := range alleleOf {
				if a == minor {
					carrier = append(carrier, int32(h))
				}
			}
			return newSparseAlleles(major, minor, carrier)
		}
	}

	packed := newPackedAlleles(nHaps, len(counts))
	for h, a := range alleleOf {
		packed.set(h, a)
	}
	return packed
}
