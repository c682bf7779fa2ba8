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

// Package rtsession ties the resolver, connector, transport dispatcher
// and service directory into one session peer: dial a directory, resolve
// service names to URLs, connect, and hand back a ready transport.Socket;
// or listen and serve locally-registered objects to inbound peers.
package rtsession

// Executor schedules a continuation for later execution on whatever I/O
// thread a caller's runtime uses. A Session hands the callbacks given to
// OnServiceAdded to Executor.Post. It does not route anything else through
// the Executor: Call results are returned directly to the caller of Call,
// and signal callbacks registered through objmeta run on the Socket's read
// loop, which the Session starts in a goroutine of its own for every
// dialed or accepted connection.
// The default, single-goroutine implementation lives in rtexec.
type Executor interface {
	// Post schedules fn to run on the executor. Post itself never blocks
	// waiting for fn to run.
	Post(fn func())
}

// inlineExecutor runs fn synchronously, in the caller's own goroutine.
// It is the zero-configuration default a Session falls back to when no
// Executor is supplied, trading the "never blocks" contract above for
// simplicity — acceptable since dispatcher callbacks here are already
// running on transport's own read-loop goroutine, not the caller's.
type inlineExecutor struct{}

func (inlineExecutor) Post(fn func()) { fn() }
