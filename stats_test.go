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
	"sync"
	"testing"
)

func TestStatsMeanClustersPerPosition(t *testing.T) {
	s := &Stats{}
	if v := s.MeanClustersPerPosition(); v != 0 {
		t.Errorf("mean over zero positions = %g, want 0", v)
	}
	s.AddOutputPosition(2)
	s.AddOutputPosition(4)
	s.AddOutputPosition(6)
	if v := s.MeanClustersPerPosition(); v != 4 {
		t.Errorf("mean = %g, want 4", v)
	}
	if s.OutputPositions() != 3 {
		t.Errorf("OutputPositions() = %d, want 3", s.OutputPositions())
	}
}

func TestStatsAlleleDiscordanceRate(t *testing.T) {
	s := &Stats{}
	if v := s.AlleleDiscordanceRate(); v != 0 {
		t.Errorf("rate with nothing checked = %g, want 0", v)
	}
	s.AddAlleleDiscordance(1, 10)
	s.AddAlleleDiscordance(2, 10)
	if v := s.AlleleDiscordanceRate(); v != 0.15 {
		t.Errorf("rate = %g, want 0.15", v)
	}
}

func TestStatsConcurrentAdds(t *testing.T) {
	s := &Stats{}
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddOutputPosition(1)
			s.AddInputRecords(1)
		}()
	}
	wg.Wait()
	if s.OutputPositions() != 100 {
		t.Errorf("OutputPositions() = %d, want 100 after concurrent adds", s.OutputPositions())
	}
	if s.InputRecords() != 100 {
		t.Errorf("InputRecords() = %d, want 100 after concurrent adds", s.InputRecords())
	}
}
