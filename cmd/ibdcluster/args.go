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

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	ibdcluster "github.com/browning-lab/ibd-cluster"
	"github.com/pkg/errors"
	"github.com/shenwei356/util/pathutil"
)

// args is the parsed shape of the "name=value" whitespace-separated
// command line (§6 "CLI"), deliberately not spf13/cobra/pflag: the
// wire format is one flat run of tokens, not POSIX flags or
// subcommands, so there is nothing in the pack's flag-parsing
// libraries to reuse here.
type args struct {
	gt             string
	mapFile        string
	out            string
	chrom          string
	startPos       int64
	endPos         int64
	excludeSamples string
	excludeMarkers string

	params ibdcluster.Params
}

// parseArgs scans tokens (os.Args[1:]) for "name=value" pairs,
// applying the documented defaults from ibdcluster.DefaultParams and
// failing fatally on anything unrecognized (§6 "Unknown arguments are
// fatal").
func parseArgs(tokens []string) (*args, error) {
	a := &args{params: ibdcluster.DefaultParams()}
	a.params.NThreads = runtime.NumCPU()

	seen := map[string]bool{}
	for _, tok := range tokens {
		eq := strings.IndexByte(tok, '=')
		if eq < 0 {
			return nil, fmt.Errorf("malformed argument %q, expected name=value", tok)
		}
		name, value := tok[:eq], tok[eq+1:]
		seen[name] = true

		var err error
		switch name {
		case "gt":
			a.gt = value
		case "map":
			a.mapFile = value
		case "out":
			a.out = value
		case "chrom":
			a.chrom, a.startPos, a.endPos, err = parseChromSpec(value)
		case "excludesamples":
			a.excludeSamples = value
		case "excludemarkers":
			a.excludeMarkers = value
		case "min-maf":
			a.params.MinMAF, err = strconv.ParseFloat(value, 64)
		case "min-ibs-cm":
			a.params.MinIBSCM, err = strconv.ParseFloat(value, 64)
		case "min-ibd-cm":
			a.params.MinIBDCM, err = strconv.ParseFloat(value, 64)
		case "pbwt":
			a.params.PBWT, err = parseIntArg(value)
		case "trim":
			a.params.Trim, err = strconv.ParseFloat(value, 64)
		case "discord":
			a.params.Discord, err = strconv.ParseFloat(value, 64)
		case "out-cm":
			a.params.OutCM, err = strconv.ParseFloat(value, 64)
		case "nthreads":
			a.params.NThreads, err = parseIntArg(value)
		case "ne":
			a.params.Ne, err = strconv.ParseFloat(value, 64)
		case "quantile":
			a.params.Quantile, err = strconv.ParseFloat(value, 64)
		case "gc-bases":
			var n int64
			n, err = strconv.ParseInt(value, 10, 64)
			a.params.GCBases = n
		case "gc-discord":
			a.params.GCDiscord, err = strconv.ParseFloat(value, 64)
		case "local-segments":
			a.params.LocalSegments, err = parseIntArg(value)
		case "local-max-cdf":
			a.params.LocalMaxCDF, err = strconv.ParseFloat(value, 64)
		case "global-loci":
			a.params.GlobalLoci, err = parseIntArg(value)
		case "global-segments":
			a.params.GlobalSegments, err = parseIntArg(value)
		case "global-quantile":
			a.params.GlobalQuantile, err = strconv.ParseFloat(value, 64)
		case "global-multiple":
			a.params.GlobalMultiple, err = strconv.ParseFloat(value, 64)
		case "min-cdf-ratio":
			a.params.MinCDFRatio, err = strconv.ParseFloat(value, 64)
		case "max-its":
			a.params.MaxIts, err = parseIntArg(value)
		case "end-morgans":
			a.params.EndMorgans, err = strconv.ParseFloat(value, 64)
		case "fix-focus":
			a.params.FixFocus, err = strconv.ParseBool(value)
		case "prefocus-quantile":
			a.params.PrefocusQuantile, err = strconv.ParseFloat(value, 64)
		case "max-rel-change":
			a.params.MaxRelChange, err = strconv.ParseFloat(value, 64)
		case "out-window-size":
			a.params.OutWindowSize, err = parseIntArg(value)
		case "seed":
			a.params.Seed, err = strconv.ParseInt(value, 10, 64)
		default:
			return nil, fmt.Errorf("unknown argument %q", name)
		}
		if err != nil {
			return nil, fmt.Errorf("%s=%s: %w", name, value, err)
		}
	}

	for _, required := range []string{"gt", "map", "out"} {
		if !seen[required] {
			return nil, fmt.Errorf("missing required argument %q", required)
		}
	}
	if err := a.checkOutputCollision(); err != nil {
		return nil, err
	}
	return a, nil
}

// checkOutputCollision fails fast when an output path this run will
// create (the cluster file or the log) resolves to the same file as
// an input path, since os.Create would silently truncate it (§7
// "Output path collides with an input path").
func (a *args) checkOutputCollision() error {
	inputs := map[string]string{"gt": a.gt, "map": a.mapFile}
	outputs := map[string]string{"out.ibdclust.gz": a.out + ".ibdclust.gz", "out.log": a.out + ".log"}

	for inName, in := range inputs {
		inAbs, err := filepath.Abs(in)
		if err != nil {
			return errors.Wrap(err, in)
		}
		for outName, out := range outputs {
			outAbs, err := filepath.Abs(out)
			if err != nil {
				return errors.Wrap(err, out)
			}
			if inAbs == outAbs {
				return fmt.Errorf("output path %s (%q) collides with input %s (%q)", outName, out, inName, in)
			}
		}
	}
	return nil
}

func parseIntArg(value string) (int, error) {
	n, err := strconv.Atoi(value)
	return n, err
}

// parseChromSpec parses "[CHROM]" or "[CHROM]:[start]-[end]" (§6).
func parseChromSpec(spec string) (chrom string, start, end int64, err error) {
	colon := strings.IndexByte(spec, ':')
	if colon < 0 {
		return spec, 0, 0, nil
	}
	chrom = spec[:colon]
	rangePart := spec[colon+1:]
	dash := strings.IndexByte(rangePart, '-')
	if dash < 0 {
		return "", 0, 0, fmt.Errorf("malformed chrom range %q, expected start-end", rangePart)
	}
	startStr, endStr := rangePart[:dash], rangePart[dash+1:]
	if startStr != "" {
		start, err = strconv.ParseInt(startStr, 10, 64)
		if err != nil {
			return "", 0, 0, fmt.Errorf("bad range start %q: %w", startStr, err)
		}
	}
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return "", 0, 0, fmt.Errorf("bad range end %q: %w", endStr, err)
		}
	}
	return chrom, start, end, nil
}

// loadIDSet reads a one-ID-per-line file into a set, matching the
// teacher's pathutil.Exists-guarded file opens (unikmer/cmd/util.go).
func loadIDSet(path string) (map[string]struct{}, error) {
	if path == "" {
		return nil, nil
	}
	ok, err := pathutil.Exists(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if !ok {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	defer f.Close()

	set := map[string]struct{}{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		set[line] = struct{}{}
	}
	return set, sc.Err()
}

// loadPosSet reads a one-base-position-per-line file into a set, used
// for excludemarkers.
func loadPosSet(path string) (map[int64]struct{}, error) {
	if path == "" {
		return nil, nil
	}
	ok, err := pathutil.Exists(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if !ok {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	defer f.Close()

	set := map[int64]struct{}{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		pos, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad position %q: %w", path, line, err)
		}
		set[pos] = struct{}{}
	}
	return set, sc.Err()
}
