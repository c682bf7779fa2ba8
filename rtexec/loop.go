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

// Package rtexec provides the default rtsession.Executor: a single
// goroutine draining a channel of scheduled tasks, so every callback
// posted to one Loop runs strictly one at a time, in posting order.
// A caller wanting parallelism runs multiple Loop instances, one per
// independent I/O executor, matching the single-threaded-cooperative-
// per-executor concurrency model the rest of the runtime assumes.
package rtexec

import "context"

// Loop is a single-goroutine task queue implementing rtsession.Executor.
type Loop struct {
	tasks chan func()
}

// NewLoop creates a Loop with the given pending-task buffer size. A size
// of 0 makes Post block until Run is actively draining the queue.
func NewLoop(buffer int) *Loop {
	return &Loop{tasks: make(chan func(), buffer)}
}

// Post schedules fn to run on Run's goroutine. Post blocks if the task
// buffer is full and no Run call is currently draining it.
func (l *Loop) Post(fn func()) {
	l.tasks <- fn
}

// Run drains and executes tasks until ctx is cancelled. It is meant to be
// the body of the one goroutine a caller dedicates to this Loop.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}
