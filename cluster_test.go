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

func TestOutputLociOnGridAndInRange(t *testing.T) {
	gm := newTestMap() // basePos 1000..4000, cM 0..3
	loci := OutputLoci(gm, 50)

	if len(loci) == 0 {
		t.Fatal("expected at least one output locus")
	}
	for _, l := range loci {
		if l.BasePos < gm.FirstBasePos() || l.BasePos > gm.LastBasePos() {
			t.Errorf("locus %v falls outside the chromosome's span", l)
		}
	}
	for i := 1; i < len(loci); i++ {
		if loci[i].CM <= loci[i-1].CM {
			t.Errorf("loci should be strictly increasing in cM: %v then %v", loci[i-1], loci[i])
		}
	}
}

func TestOutputLociNonPositiveStep(t *testing.T) {
	gm := newTestMap()
	if loci := OutputLoci(gm, 0); loci != nil {
		t.Errorf("OutputLoci with out-cm=0 should return nil, got %v", loci)
	}
}

func TestClustAnalysisFourIdenticalHaplotypesOneCluster(t *testing.T) {
	c := makeIdenticalChromosome(20, 8)
	view := newForwardView(c)

	segs := []HapPairSegment{}
	for h1 := 0; h1 < 8; h1++ {
		for h2 := h1 + 1; h2 < 8; h2++ {
			segs = append(segs, newSegment(h1, h2, c.Markers[0].BasePos, c.Markers[len(c.Markers)-1].BasePos))
		}
	}

	loci := []OutputLocus{{BasePos: c.Markers[10].BasePos, CM: c.Markers[10].CMPos}}
	stats := &Stats{}
	rows := ClustAnalysis(segs, loci, view, 8, 500, stats)

	if len(rows) != 1 {
		t.Fatalf("expected 1 output row, got %d", len(rows))
	}
	seen := map[int]bool{}
	for _, idx := range rows[0].Indices {
		seen[idx] = true
	}
	if len(seen) != 1 {
		t.Errorf("expected all 8 haplotypes in a single cluster, got %d distinct clusters", len(seen))
	}

	sum := 0
	sizes := map[int]int{}
	for _, idx := range rows[0].Indices {
		sizes[idx]++
	}
	for _, sz := range sizes {
		sum += sz
	}
	if sum != 8 {
		t.Errorf("cluster sizes summed to %d, want nHaps=8", sum)
	}
}

func TestClustAnalysisTwoSamplesSingleSNP(t *testing.T) {
	c := &Chromosome{Name: "1", NHaps: 4}
	c.SampleIDs = []string{"s1", "s2"}
	mk := Marker{BasePos: 1000, CMPos: 1, NAlleles: 2}
	mk.alleles = chooseAlleleStorage(4, []uint16{0, 0, 0, 0}, []int{4, 0})
	c.Markers = []Marker{mk}
	view := newForwardView(c)

	var segs []HapPairSegment
	for h1 := 0; h1 < 4; h1++ {
		for h2 := h1 + 1; h2 < 4; h2++ {
			segs = append(segs, newSegment(h1, h2, 1000, 1000))
		}
	}

	loci := []OutputLocus{{BasePos: 1000, CM: 1}}
	stats := &Stats{}
	rows := ClustAnalysis(segs, loci, view, 4, 500, stats)

	if len(rows) != 1 || len(rows[0].Indices) != 4 {
		t.Fatalf("expected 1 row of 4 indices, got %v", rows)
	}
	first := rows[0].Indices[0]
	for _, idx := range rows[0].Indices {
		if idx != first {
			t.Errorf("all four haplotypes identical at the only SNP should share one cluster, got %v", rows[0].Indices)
		}
	}
}
