/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"sync"
)

// cliProgress prints one line per course to the given writer.
type cliProgress struct {
	mu     sync.Mutex
	w      io.Writer
	totals map[string]int
	counts map[string]int
}

func newCLIProgress(w io.Writer) *cliProgress {
	return &cliProgress{w: w, totals: map[string]int{}, counts: map[string]int{}}
}

func (p *cliProgress) StartCourse(name string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.totals[name] = total
	p.counts[name] = 0
}

func (p *cliProgress) Increment(name string, delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[name] += delta
}

func (p *cliProgress) FinishCourse(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "  %s: %d/%d 道题目\n", name, p.counts[name], p.totals[name])
}
