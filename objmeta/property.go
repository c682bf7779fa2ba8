/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package objmeta

import (
	"sync"

	dynval "github.com/sabouaram/meshbus/dynval"
)

// PropertyID uniquely identifies a property within an object's
// meta-description.
type PropertyID uint32

// PropertyInfo is a named, typed storage slot that also carries a
// change-notification SignalInfo: setting a new value (one that compares
// unequal to the prior one via dynval's total ordering) emits that signal
// with the new value as its sole argument.
type PropertyInfo struct {
	ID      PropertyID
	Name    string
	Type    *dynval.TypeDescriptor
	Changed SignalInfo

	mu  sync.RWMutex
	cur dynval.Value
}

// Get returns the current value, Empty if never Set.
func (p *PropertyInfo) Get() dynval.Value {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cur
}

// Set stores v, emitting Changed if v differs from the previous value.
func (p *PropertyInfo) Set(v dynval.Value) {
	p.mu.Lock()
	prev := p.cur
	changed := prev.IsEmpty() != v.IsEmpty() || !prev.Equal(v)
	p.cur = v
	p.mu.Unlock()

	if changed {
		p.Changed.Emit([]dynval.Value{v})
	}
}
