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
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// RecordSource is the input adapter's external contract (§1 "VCF /
// compressed-VCF parsing ... treated as input/output ports", §9's
// "many shapes of phased-genotype record" collapsed to one
// polymorphic contract). Anything that can hand back phased,
// non-missing genotype lines for a single chromosome satisfies it:
// a plain/gzip/bgzip VCF reader, or a future .bref3 decoder.
type RecordSource interface {
	// Next returns the next record's chromosome, base position, and
	// one allele index per haplotype (2 per sample, sample order
	// preserved), or ok=false at end of stream.
	Next() (chrom string, basePos int64, alleles []uint16, nAlleles int, ok bool, err error)
	SampleIDs() []string
	Close() error
}

// vcfSource is the concrete adapter: a streaming, phased,
// non-missing-GT VCF 4.x reader over a plain/gzip/bgzip file, opened
// transparently through xopen (the same suffix-sniffing opener the
// teacher uses for its own binary format, unikmer/cmd/util-io.go).
type vcfSource struct {
	r             *xopen.Reader
	sampleIDs     []string
	lineNo        int
	path          string
	lastChrom     string
	seenChrom     bool
	finishedChrom map[string]struct{}
}

// OpenVCF opens path (plain, .gz, or .bgz) and reads the header line
// to recover sample order.
func OpenVCF(path string) (*vcfSource, error) {
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	v := &vcfSource{r: r, path: path}
	if err := v.readHeader(); err != nil {
		r.Close()
		return nil, err
	}
	return v, nil
}

func (v *vcfSource) readHeader() error {
	for {
		line, err := v.r.ReadString('\n')
		v.lineNo++
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, "##") {
			if err != nil {
				return v.eofOrErr(err)
			}
			continue
		}
		if strings.HasPrefix(line, "#CHROM") {
			fields := strings.Split(line, "\t")
			if len(fields) < 10 {
				return fmt.Errorf("%s:%d: malformed VCF header, no samples", v.path, v.lineNo)
			}
			v.sampleIDs = fields[9:]
			return nil
		}
		if err != nil {
			return v.eofOrErr(err)
		}
	}
}

func (v *vcfSource) eofOrErr(err error) error {
	return errors.Wrapf(err, "%s:%d", v.path, v.lineNo)
}

func (v *vcfSource) SampleIDs() []string { return v.sampleIDs }

func (v *vcfSource) Close() error { return v.r.Close() }

// Next parses the next data line. It enforces the phased/non-missing
// GT invariant (§7 "VCF record violates phased-non-missing
// invariant") and the non-contiguous-chromosome invariant (§7
// "Non-contiguous chromosomes in VCF").
func (v *vcfSource) Next() (chrom string, basePos int64, alleles []uint16, nAlleles int, ok bool, err error) {
	for {
		line, rerr := v.r.ReadString('\n')
		if line == "" && rerr != nil {
			return "", 0, nil, 0, false, nil
		}
		v.lineNo++
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if rerr != nil {
				return "", 0, nil, 0, false, nil
			}
			continue
		}

		chrom, basePos, alleles, nAlleles, perr := v.parseLine(line)
		if perr != nil {
			return "", 0, nil, 0, false, errors.Wrapf(perr, "%s:%d", v.path, v.lineNo)
		}

		if v.seenChrom && chrom != v.lastChrom {
			if v.finishedChrom == nil {
				v.finishedChrom = make(map[string]struct{})
			}
			if _, reentered := v.finishedChrom[chrom]; reentered {
				return "", 0, nil, 0, false,
					fmt.Errorf("%s:%d: non-contiguous chromosome %q re-entered after %q", v.path, v.lineNo, chrom, v.lastChrom)
			}
			v.finishedChrom[v.lastChrom] = struct{}{}
		}
		v.lastChrom = chrom
		v.seenChrom = true

		return chrom, basePos, alleles, nAlleles, true, nil
	}
}

func (v *vcfSource) parseLine(line string) (chrom string, basePos int64, alleles []uint16, nAlleles int, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 10 {
		return "", 0, nil, 0, fmt.Errorf("expected >=10 tab-separated fields, got %d", len(fields))
	}
	chrom = fields[0]
	pos, perr := strconv.ParseInt(fields[1], 10, 64)
	if perr != nil {
		return "", 0, nil, 0, fmt.Errorf("bad POS %q: %w", fields[1], perr)
	}

	format := strings.Split(fields[8], ":")
	if len(format) == 0 || format[0] != "GT" {
		return "", 0, nil, 0, fmt.Errorf("GT must be the first FORMAT field, got %q", fields[8])
	}

	altCount := 1 + strings.Count(fields[4], ",")
	if fields[4] == "." {
		altCount = 0
	}
	nAlleles = altCount + 1

	nSamples := len(fields) - 9
	alleles = make([]uint16, nSamples*2)
	for s := 0; s < nSamples; s++ {
		gtField := fields[9+s]
		colon := strings.IndexByte(gtField, ':')
		gt := gtField
		if colon >= 0 {
			gt = gtField[:colon]
		}
		a1, a2, perr := parsePhasedGT(gt)
		if perr != nil {
			return "", 0, nil, 0, fmt.Errorf("sample %d: %w", s, perr)
		}
		alleles[2*s] = a1
		alleles[2*s+1] = a2
	}
	return chrom, pos, alleles, nAlleles, nil
}

// parsePhasedGT parses a "a1|a2" genotype field, rejecting unphased
// ("/") separators and missing ("." ) alleles per §7.
func parsePhasedGT(gt string) (uint16, uint16, error) {
	sep := strings.IndexByte(gt, '|')
	if sep < 0 {
		if strings.IndexByte(gt, '/') >= 0 {
			return 0, 0, fmt.Errorf("unphased genotype %q", gt)
		}
		return 0, 0, fmt.Errorf("malformed genotype %q", gt)
	}
	left, right := gt[:sep], gt[sep+1:]
	if left == "." || right == "." {
		return 0, 0, fmt.Errorf("missing allele in genotype %q", gt)
	}
	a1, err := strconv.ParseUint(left, 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad allele %q: %w", left, err)
	}
	a2, err := strconv.ParseUint(right, 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad allele %q: %w", right, err)
	}
	return uint16(a1), uint16(a2), nil
}
