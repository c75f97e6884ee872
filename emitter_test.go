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
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
)

func TestWriteIbdClustRoundTrip(t *testing.T) {
	rows := []LocusClusters{
		{Locus: OutputLocus{BasePos: 1000, CM: 1}, Indices: []int{0, 0, 1, 1}},
		{Locus: OutputLocus{BasePos: 2000, CM: 2}, Indices: []int{0, 1, 1, 0}},
		{Locus: OutputLocus{BasePos: 3000, CM: 3}, Indices: []int{0, 0, 0, 0}},
	}

	path := filepath.Join(t.TempDir(), "out.ibdclust.gz")
	if err := WriteIbdClust(path, "1", []string{"s1", "s2"}, rows, 2, 2); err != nil {
		t.Fatalf("WriteIbdClust failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	gr, err := pgzip.NewReader(f)
	if err != nil {
		t.Fatalf("failed to open gzip reader (concatenated members should still be a valid stream): %v", err)
	}
	defer gr.Close()

	scanner := bufio.NewScanner(gr)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if len(lines) != 4 {
		t.Fatalf("expected 1 header + 3 data lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "CHROM\tPOS\tCM\ts1\ts2" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1\t1000\t1") {
		t.Errorf("unexpected first data line: %q", lines[1])
	}
	if !strings.Contains(lines[1], "0|0") || !strings.Contains(lines[1], "1|1") {
		t.Errorf("first data line missing expected cluster pairs: %q", lines[1])
	}
}

func TestWriteIbdClustEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.ibdclust.gz")
	if err := WriteIbdClust(path, "1", []string{"s1"}, nil, 500, 1); err != nil {
		t.Fatalf("WriteIbdClust with no rows failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()
	gr, err := pgzip.NewReader(f)
	if err != nil {
		t.Fatalf("failed to open gzip reader: %v", err)
	}
	defer gr.Close()

	scanner := bufio.NewScanner(gr)
	if !scanner.Scan() {
		t.Fatal("expected at least a header line")
	}
	if scanner.Text() != "CHROM\tPOS\tCM\ts1" {
		t.Errorf("unexpected header: %q", scanner.Text())
	}
}
