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

// makeTestChromosome builds a synthetic chromosome with nMarkers
// biallelic markers evenly spaced 1 cM apart (and 1000 bp apart),
// each haplotype's allele at marker m drawn from a deterministic RNG
// seeded by seed. Used by tests that need a small but realistic
// chromView without going through the VCF adapter.
func makeTestChromosome(nMarkers, nHaps int, seed int64) *Chromosome {
	rng := rand.New(rand.NewSource(seed))
	c := &Chromosome{Name: "1", NHaps: nHaps}
	c.SampleIDs = make([]string, nHaps/2)
	for i := range c.SampleIDs {
		c.SampleIDs[i] = "sample"
	}

	for m := 0; m < nMarkers; m++ {
		alleles := make([]uint16, nHaps)
		counts := []int{0, 0}
		for h := range alleles {
			a := uint16(rng.Intn(2))
			alleles[h] = a
			counts[a]++
		}
		mk := Marker{
			BasePos:  int64(1000 * (m + 1)),
			CMPos:    float64(m + 1),
			NAlleles: 2,
		}
		mk.alleles = chooseAlleleStorage(nHaps, alleles, counts)
		c.Markers = append(c.Markers, mk)
	}
	c.NRawRecords = int64(nMarkers)
	return c
}

// makeIdenticalChromosome builds a chromosome where every haplotype
// carries the same allele at every marker (a single IBS run spanning
// the whole chromosome).
func makeIdenticalChromosome(nMarkers, nHaps int) *Chromosome {
	c := &Chromosome{Name: "1", NHaps: nHaps}
	c.SampleIDs = make([]string, nHaps/2)
	for i := range c.SampleIDs {
		c.SampleIDs[i] = "sample"
	}
	for m := 0; m < nMarkers; m++ {
		alleles := make([]uint16, nHaps)
		mk := Marker{
			BasePos:  int64(1000 * (m + 1)),
			CMPos:    float64(m + 1),
			NAlleles: 2,
		}
		mk.alleles = chooseAlleleStorage(nHaps, alleles, []int{nHaps, 0})
		c.Markers = append(c.Markers, mk)
	}
	c.NRawRecords = int64(nMarkers)
	return c
}
