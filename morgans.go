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

import "sort"

// morgansToBasePos linearly interpolates a base-pair position for a
// Morgan value within view, clamping to the view's first/last marker.
func morgansToBasePos(view chromView, morgans float64) int64 {
	n := view.NMarkers()
	target := morgans * 100 // back to centiMorgans, view.CMPos's unit

	idx := sort.Search(n, func(i int) bool { return view.CMPos(i) >= target })
	if idx <= 0 {
		return view.BasePos(0)
	}
	if idx >= n {
		return view.BasePos(n - 1)
	}
	cmLo, cmHi := view.CMPos(idx-1), view.CMPos(idx)
	if cmHi == cmLo {
		return view.BasePos(idx)
	}
	frac := (target - cmLo) / (cmHi - cmLo)
	bpLo, bpHi := view.BasePos(idx-1), view.BasePos(idx)
	return bpLo + int64(frac*float64(bpHi-bpLo))
}
