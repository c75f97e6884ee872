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

import "fmt"

// Chromosome holds one chromosome's markers and sample metadata, built
// once by the input adapter and consumed read-only by every
// downstream stage (§3 "Lifecycle").
type Chromosome struct {
	Name      string
	SampleIDs []string
	NHaps     int
	Markers   []Marker

	// NRawRecords is every record LoadChromosome saw for this
	// chromosome, before the genetic-map-span and MAF filters.
	NRawRecords int64
}

// NSamples returns the diploid sample count.
func (c *Chromosome) NSamples() int { return c.NHaps / 2 }

// NMarkers returns the marker count.
func (c *Chromosome) NMarkers() int { return len(c.Markers) }

// LoadChromosomeOptions configures the input adapter stage.
type LoadChromosomeOptions struct {
	Chrom          string
	StartPos       int64 // 0 means unbounded
	EndPos         int64 // 0 means unbounded
	MinMAF         float64
	ExcludeSamples map[string]struct{}
	ExcludeMarkers map[int64]struct{}
	GeneticMap     *GeneticMap
}

// LoadChromosome streams records from src, MAF-filters, clips to the
// genetic map's span, and builds the immutable per-chromosome marker
// array (§2 "Input adapter: Stream phased records, MAF-filter, clip
// to genetic-map span").
func LoadChromosome(src RecordSource, opt LoadChromosomeOptions) (*Chromosome, error) {
	allSampleIDs := src.SampleIDs()
	keep := make([]int, 0, len(allSampleIDs))
	sampleIDs := make([]string, 0, len(allSampleIDs))
	for i, id := range allSampleIDs {
		if _, excluded := opt.ExcludeSamples[id]; excluded {
			continue
		}
		keep = append(keep, i)
		sampleIDs = append(sampleIDs, id)
	}
	nHaps := len(keep) * 2

	c := &Chromosome{Name: opt.Chrom, SampleIDs: sampleIDs, NHaps: nHaps}

	var lastBasePos int64
	first := true
	nTotal, nKept := 0, 0

	for {
		chrom, basePos, alleles, nAlleles, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if chrom != opt.Chrom {
			continue
		}
		nTotal++

		if opt.GeneticMap != nil && !opt.GeneticMap.InRange(basePos) {
			continue
		}
		if opt.StartPos != 0 && basePos < opt.StartPos {
			continue
		}
		if opt.EndPos != 0 && basePos > opt.EndPos {
			continue
		}
		if _, excluded := opt.ExcludeMarkers[basePos]; excluded {
			continue
		}
		if !first && basePos <= lastBasePos {
			return nil, fmt.Errorf("%s: basePos %d is not strictly increasing after %d", opt.Chrom, basePos, lastBasePos)
		}

		filtered := filterSamples(alleles, keep)
		counts := alleleCounts(filtered, nAlleles)
		if !passesMAF(counts, nHaps, opt.MinMAF) {
			continue
		}

		m := Marker{
			ChromIndex: 0,
			BasePos:    basePos,
			NAlleles:   nAlleles,
		}
		if opt.GeneticMap != nil {
			m.CMPos = opt.GeneticMap.CM(basePos)
		}
		m.alleles = chooseAlleleStorage(nHaps, filtered, counts)

		c.Markers = append(c.Markers, m)
		lastBasePos = basePos
		first = false
		nKept++
	}

	if nTotal == 0 {
		return nil, fmt.Errorf("no records found for chromosome %q", opt.Chrom)
	}
	if nKept == 0 {
		return nil, fmt.Errorf("all %d records for chromosome %q were dropped (outside map span or MAF filter)", nTotal, opt.Chrom)
	}
	c.NRawRecords = int64(nTotal)

	c.NHaps = nHaps
	return c, nil
}

func filterSamples(alleles []uint16, keep []int) []uint16 {
	if len(keep)*2 == len(alleles) {
		allIdentity := true
		for i, k := range keep {
			if k != i {
				allIdentity = false
				break
			}
		}
		if allIdentity {
			return alleles
		}
	}
	out := make([]uint16, 0, len(keep)*2)
	for _, s := range keep {
		out = append(out, alleles[2*s], alleles[2*s+1])
	}
	return out
}

func alleleCounts(alleles []uint16, nAlleles int) []int {
	counts := make([]int, nAlleles)
	for _, a := range alleles {
		if int(a) < nAlleles {
			counts[a]++
		}
	}
	return counts
}

// passesMAF implements §3's "second-largest allele count / (2*nSamples)
// >= min-maf".
func passesMAF(counts []int, nHaps int, minMAF float64) bool {
	if nHaps == 0 {
		return false
	}
	largest, second := 0, 0
	for _, c := range counts {
		if c > largest {
			second = largest
			largest = c
		} else if c > second {
			second = c
		}
	}
	return float64(second)/float64(nHaps) >= minMAF
}
