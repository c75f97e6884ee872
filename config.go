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

// Params collects every parameter that affects observable output,
// including the undocumented-but-first-class ones §9's Open Questions
// calls out (ne, quantile, gc_bases, gc_discord, ...).
type Params struct {
	MinMAF    float64
	MinIBSCM  float64
	MinIBDCM  float64
	PBWT      int
	Trim      float64
	Discord   float64
	OutCM     float64
	NThreads  int

	Ne              float64
	Quantile        float64
	GCBases         int64
	GCDiscord       float64
	LocalSegments   int
	LocalMaxCDF     float64
	GlobalLoci      int
	GlobalSegments  int
	GlobalQuantile  float64
	GlobalMultiple  float64
	MinCDFRatio     float64
	MaxIts          int
	EndMorgans      float64
	FixFocus        bool
	PrefocusQuantile float64
	MaxRelChange    float64
	OutWindowSize   int
	Seed            int64
}

// DefaultParams returns the CLI's documented and undocumented
// defaults (§6, §9).
func DefaultParams() Params {
	return Params{
		MinMAF:   0.1,
		MinIBSCM: 1.0,
		MinIBDCM: 1.0,
		PBWT:     4,
		Trim:     0.5,
		Discord:  0.0005,
		OutCM:    0.02,
		NThreads: 1,

		Ne:               10000,
		Quantile:         0.5,
		GCBases:          500,
		GCDiscord:        0.1,
		LocalSegments:    10000,
		LocalMaxCDF:      0.9,
		GlobalLoci:       50,
		GlobalSegments:   1000,
		GlobalQuantile:   0.5,
		GlobalMultiple:   5.0,
		MinCDFRatio:      1e-10,
		MaxIts:           5,
		EndMorgans:       0.5,
		FixFocus:         false,
		PrefocusQuantile: 0.5,
		MaxRelChange:     0.001,
		OutWindowSize:    500,
		Seed:             42,
	}
}

// LocalSegmentsHardCap is the hard cap on |H| so that |H|*(|H|-1) fits
// in 32 bits (§3).
const LocalSegmentsHardCap = 45000
