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

// Partition is a union-find over the 2*nSamples haplotypes at one
// output locus, owned by whichever worker computes that locus and
// never shared across goroutines (§5 "Mutable shared state").
type Partition struct {
	Chrom   int
	BasePos int64
	CM      float64

	parent []int32
	rank   []uint8
	nSets  int
}

// NewPartition returns a fresh partition with every haplotype its own
// singleton set.
func NewPartition(chrom int, basePos int64, cM float64, nHaps int) *Partition {
	p := &Partition{
		Chrom:   chrom,
		BasePos: basePos,
		CM:      cM,
		parent:  make([]int32, nHaps),
		rank:    make([]uint8, nHaps),
		nSets:   nHaps,
	}
	for i := range p.parent {
		p.parent[i] = int32(i)
	}
	return p
}

// Find returns the root of h's set, path-compressing along the way.
func (p *Partition) Find(h int) int {
	root := h
	for int(p.parent[root]) != root {
		root = int(p.parent[root])
	}
	for int(p.parent[h]) != root {
		next := int(p.parent[h])
		p.parent[h] = int32(root)
		h = next
	}
	return root
}

// Union merges the sets containing h1 and h2, by rank, decrementing
// nSets iff the two were previously distinct.
func (p *Partition) Union(h1, h2 int) {
	r1, r2 := p.Find(h1), p.Find(h2)
	if r1 == r2 {
		return
	}
	switch {
	case p.rank[r1] < p.rank[r2]:
		p.parent[r1] = int32(r2)
	case p.rank[r1] > p.rank[r2]:
		p.parent[r2] = int32(r1)
	default:
		p.parent[r2] = int32(r1)
		p.rank[r1]++
	}
	p.nSets--
}

// NSets returns the number of distinct equivalence classes.
func (p *Partition) NSets() int {
	return p.nSets
}

// NHaps returns the haplotype count this partition was built over.
func (p *Partition) NHaps() int {
	return len(p.parent)
}

// ClusterIndices assigns 0,1,2,... to each distinct root in
// first-occurrence order over [0, nHaps), satisfying §8 invariant 3.
func (p *Partition) ClusterIndices() []int {
	idx := make([]int, len(p.parent))
	assigned := make(map[int]int, p.nSets)
	next := 0
	for h := range p.parent {
		r := p.Find(h)
		id, ok := assigned[r]
		if !ok {
			id = next
			assigned[r] = id
			next++
		}
		idx[h] = id
	}
	return idx
}
