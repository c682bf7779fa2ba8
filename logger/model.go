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

package logger

import (
	"sync"

	"github.com/sirupsen/logrus"

	logfld "github.com/sabouaram/meshbus/logger/fields"
	loglvl "github.com/sabouaram/meshbus/logger/level"
)

// logger is the internal implementation of the Logger interface.
type logger struct {
	m sync.RWMutex
	f logfld.Fields
	l loglvl.Level
	o *logrus.Logger
}

func (l *logger) SetLevel(lvl loglvl.Level) {
	l.m.Lock()
	defer l.m.Unlock()

	l.l = lvl
	l.o.SetLevel(lvl.Logrus())
}

func (l *logger) GetLevel() loglvl.Level {
	l.m.RLock()
	defer l.m.RUnlock()

	return l.l
}

func (l *logger) SetFields(field logfld.Fields) {
	l.m.Lock()
	defer l.m.Unlock()

	if field == nil {
		field = logfld.New()
	}

	l.f = field
}

func (l *logger) GetFields() logfld.Fields {
	l.m.RLock()
	defer l.m.RUnlock()

	if l.f == nil {
		return logfld.New()
	}

	return l.f
}

func (l *logger) Clone() Logger {
	return NewFrom(l)
}

// Write implements io.Writer, logging each call at the logger's current level.
func (l *logger) Write(p []byte) (n int, err error) {
	l.Entry(l.GetLevel(), string(p)).Log()
	return len(p), nil
}
