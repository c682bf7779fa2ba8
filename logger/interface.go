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

// Package logger is the logging facade consumed by every component of the
// runtime: type registry, conversion engine, endpoint resolver, connector
// and transport dispatcher all log through a Logger obtained from this
// package, never directly through logrus.
package logger

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/sirupsen/logrus"

	logent "github.com/sabouaram/meshbus/logger/entry"
	logfld "github.com/sabouaram/meshbus/logger/fields"
	loglvl "github.com/sabouaram/meshbus/logger/level"
)

// FuncLog returns a Logger instance, used for lazy dependency injection.
type FuncLog func() Logger

// Logger is the main interface for structured logging operations. It
// extends io.Writer so it can be handed to anything that expects a plain
// writer (an hclog standard-logger bridge, a connector's debug sink, ...).
type Logger interface {
	io.Writer

	// SetLevel changes the minimal level of log message.
	SetLevel(lvl loglvl.Level)

	// GetLevel returns the minimal level of log message.
	GetLevel() loglvl.Level

	// SetFields sets or updates the default fields attached to every entry.
	SetFields(field logfld.Fields)

	// GetFields returns the default fields attached to every entry.
	GetFields() logfld.Fields

	// Clone duplicates the logger, copying its level and fields.
	Clone() Logger

	// GetStdLogger returns a standard library *log.Logger bridged to this logger.
	GetStdLogger(lvl loglvl.Level, logFlags int) *log.Logger

	// HCLog returns an hclog.Logger adapter backed by this logger, letting
	// third-party libraries that expect hclog log through the same sinks.
	HCLog() hclog.Logger

	// Debug adds an entry at DebugLevel.
	Debug(message string, data interface{}, args ...interface{})

	// Info adds an entry at InfoLevel.
	Info(message string, data interface{}, args ...interface{})

	// Warning adds an entry at WarnLevel.
	Warning(message string, data interface{}, args ...interface{})

	// Error adds an entry at ErrorLevel.
	Error(message string, data interface{}, args ...interface{})

	// Fatal adds an entry at FatalLevel then terminates the process.
	Fatal(message string, data interface{}, args ...interface{})

	// Panic adds an entry at PanicLevel then terminates the process.
	Panic(message string, data interface{}, args ...interface{})

	// LogDetails adds a fully specified entry to the logger.
	LogDetails(lvl loglvl.Level, message string, data interface{}, err []error, fields logfld.Fields, args ...interface{})

	// CheckError logs at lvlKO if a non-nil error is given, otherwise at
	// lvlOK (when lvlOK is not NilLevel). Returns true if an error was found.
	CheckError(lvlKO, lvlOK loglvl.Level, message string, err ...error) bool

	// Entry returns a fresh Entry pre-bound to this logger, ready for
	// further configuration before Log or Check flushes it.
	Entry(lvl loglvl.Level, message string, args ...interface{}) logent.Entry

	// Access returns an Entry pre-filled for an access-log style record.
	Access(remoteAddr, remoteUser string, localtime time.Time, latency time.Duration, method, request, proto string, status int, size int64) logent.Entry
}

// New returns a new Logger with InfoLevel and an empty field set.
func New() Logger {
	l := &logger{
		m: sync.RWMutex{},
		f: logfld.New(),
		l: loglvl.InfoLevel,
		o: logrus.New(),
	}

	l.o.SetOutput(io.Discard)

	return l
}

// NewFrom clones an existing logger, copying its level and fields.
func NewFrom(other Logger) Logger {
	n := &logger{
		m: sync.RWMutex{},
		f: logfld.New(),
		l: loglvl.InfoLevel,
		o: logrus.New(),
	}

	n.o.SetOutput(io.Discard)

	if other != nil {
		n.SetLevel(other.GetLevel())
		n.SetFields(other.GetFields().Clone())
	}

	return n
}
