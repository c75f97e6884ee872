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
	"io"
	"os"
	"runtime"

	colorable "github.com/mattn/go-colorable"
	"github.com/shenwei356/go-logging"
)

var isWindows = runtime.GOOS == "windows"

// Log is the package-wide logger. cmd/ibdcluster wires its backends
// (colorable stderr plus the <out>.log file) once at startup via
// SetLogBackends; library code only ever calls through Log.
var Log = logging.MustGetLogger("ibdcluster")

var logFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{color}[%{level:.4s}]%{color:reset} %{message}`,
)

var plainLogFormat = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05} [%{level:.4s}] %{message}`,
)

// SetLogBackends attaches a colorable stderr backend and, when logFile
// is non-nil, a plain-text file backend, following the dual-backend
// setup in the teacher's unikmer/main.go.
func SetLogBackends(logFile io.Writer) {
	var stderr io.Writer = os.Stderr
	if isWindows {
		stderr = colorable.NewColorableStderr()
	}
	stderrBackend := logging.NewBackendFormatter(logging.NewLogBackend(stderr, "", 0), logFormat)

	if logFile == nil {
		logging.SetBackend(stderrBackend)
		return
	}

	fileBackend := logging.NewBackendFormatter(logging.NewLogBackend(logFile, "", 0), plainLogFormat)
	logging.SetBackend(stderrBackend, fileBackend)
}
