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

func TestPartitionSingletons(t *testing.T) {
	p := NewPartition(0, 100, 1.0, 8)
	if p.NSets() != 8 {
		t.Errorf("expected 8 singleton sets, got %d", p.NSets())
	}
	for h := 0; h < 8; h++ {
		if p.Find(h) != h {
			t.Errorf("haplotype %d should be its own root, got %d", h, p.Find(h))
		}
	}
}

func TestPartitionUnionEquivalence(t *testing.T) {
	p := NewPartition(0, 100, 1.0, 6)
	p.Union(0, 1)
	p.Union(1, 2)
	p.Union(4, 5)

	if p.NSets() != 3 {
		t.Errorf("expected 3 sets after unions, got %d", p.NSets())
	}
	// reflexive/symmetric/transitive: {0,1,2} one class, {3} singleton, {4,5} one class.
	if p.Find(0) != p.Find(1) || p.Find(1) != p.Find(2) {
		t.Errorf("0,1,2 should be in the same equivalence class")
	}
	if p.Find(3) == p.Find(0) {
		t.Errorf("3 should not be unioned with 0,1,2")
	}
	if p.Find(4) != p.Find(5) {
		t.Errorf("4,5 should be in the same equivalence class")
	}
}

func TestClusterIndicesFirstOccurrenceOrder(t *testing.T) {
	p := NewPartition(0, 100, 1.0, 6)
	p.Union(3, 5)
	p.Union(1, 4)

	idx := p.ClusterIndices()
	if len(idx) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(idx))
	}

	// First occurrence order over h=0..5: h0 is its own class -> 0;
	// h1 is its own class -> 1; h2 -> 2; h3 -> 3; h4 should equal h1's
	// class (1); h5 should equal h3's class (3).
	if idx[0] != 0 || idx[1] != 1 || idx[2] != 2 || idx[3] != 3 {
		t.Errorf("unexpected leading indices: %v", idx)
	}
	if idx[4] != idx[1] {
		t.Errorf("haplotype 4 should share haplotype 1's cluster index, got idx=%v", idx)
	}
	if idx[5] != idx[3] {
		t.Errorf("haplotype 5 should share haplotype 3's cluster index, got idx=%v", idx)
	}

	// indices must be exactly {0,...,nClusters-1} with no gaps (§8 #3).
	seen := map[int]bool{}
	for _, v := range idx {
		seen[v] = true
	}
	if len(seen) != p.NSets() {
		t.Errorf("distinct cluster indices (%d) should equal NSets (%d)", len(seen), p.NSets())
	}
	for i := 0; i < len(seen); i++ {
		if !seen[i] {
			t.Errorf("cluster indices have a gap at %d: %v", i, idx)
		}
	}
}

func TestClusterSizesSumToNHaps(t *testing.T) {
	p := NewPartition(0, 100, 1.0, 10)
	p.Union(0, 2)
	p.Union(2, 4)
	p.Union(6, 7)

	idx := p.ClusterIndices()
	sizes := map[int]int{}
	for _, v := range idx {
		sizes[v]++
	}
	sum := 0
	for _, sz := range sizes {
		sum += sz
	}
	if sum != p.NHaps() {
		t.Errorf("sum of cluster sizes = %d, want %d", sum, p.NHaps())
	}
}
