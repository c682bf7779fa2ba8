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
	"io"
	"log"

	"github.com/hashicorp/go-hclog"

	loglvl "github.com/sabouaram/meshbus/logger/level"
)

const (
	hclogArgs = "hclog.args"
	hclogName = "hclog.name"
)

// hclogAdapter lets any dependency that expects an hclog.Logger (connectors,
// resolvers, third-party transport libraries) log through this package's
// Logger instead of opening its own output.
type hclogAdapter struct {
	l Logger
}

func (l *logger) HCLog() hclog.Logger {
	return &hclogAdapter{l: l}
}

func (h *hclogAdapter) Log(level hclog.Level, msg string, args ...interface{}) {
	switch level {
	case hclog.Off, hclog.NoLevel:
		return
	case hclog.Trace, hclog.Debug:
		h.l.Debug(msg, nil, args...)
	case hclog.Info:
		h.l.Info(msg, nil, args...)
	case hclog.Warn:
		h.l.Warning(msg, nil, args...)
	case hclog.Error:
		h.l.Error(msg, nil, args...)
	}
}

func (h *hclogAdapter) Trace(msg string, args ...interface{}) {
	h.l.Debug(msg, nil, args...)
}

func (h *hclogAdapter) Debug(msg string, args ...interface{}) {
	h.l.Debug(msg, nil, args...)
}

func (h *hclogAdapter) Info(msg string, args ...interface{}) {
	h.l.Info(msg, nil, args...)
}

func (h *hclogAdapter) Warn(msg string, args ...interface{}) {
	h.l.Warning(msg, nil, args...)
}

func (h *hclogAdapter) Error(msg string, args ...interface{}) {
	h.l.Error(msg, nil, args...)
}

func (h *hclogAdapter) IsTrace() bool {
	return h.l.GetLevel() >= loglvl.DebugLevel
}

func (h *hclogAdapter) IsDebug() bool {
	return h.l.GetLevel() >= loglvl.DebugLevel
}

func (h *hclogAdapter) IsInfo() bool {
	return h.l.GetLevel() >= loglvl.InfoLevel
}

func (h *hclogAdapter) IsWarn() bool {
	return h.l.GetLevel() >= loglvl.WarnLevel
}

func (h *hclogAdapter) IsError() bool {
	return h.l.GetLevel() >= loglvl.ErrorLevel
}

func (h *hclogAdapter) ImpliedArgs() []interface{} {
	fields := h.l.GetFields()

	if a, ok := fields.Get(hclogArgs); !ok {
		return make([]interface{}, 0)
	} else if s, ok := a.([]interface{}); ok {
		return s
	}

	return make([]interface{}, 0)
}

func (h *hclogAdapter) With(args ...interface{}) hclog.Logger {
	h.l.GetFields().Add(hclogArgs, args)
	return h
}

func (h *hclogAdapter) Name() string {
	fields := h.l.GetFields()

	if a, ok := fields.Get(hclogName); !ok {
		return ""
	} else if s, ok := a.(string); ok {
		return s
	}

	return ""
}

func (h *hclogAdapter) Named(name string) hclog.Logger {
	h.l.GetFields().Add(hclogName, name)
	return h
}

func (h *hclogAdapter) ResetNamed(name string) hclog.Logger {
	h.l.GetFields().Add(hclogName, name)
	return h
}

func (h *hclogAdapter) SetLevel(level hclog.Level) {
	switch level {
	case hclog.Off, hclog.NoLevel:
		h.l.SetLevel(loglvl.NilLevel)
	case hclog.Trace, hclog.Debug:
		h.l.SetLevel(loglvl.DebugLevel)
	case hclog.Info:
		h.l.SetLevel(loglvl.InfoLevel)
	case hclog.Warn:
		h.l.SetLevel(loglvl.WarnLevel)
	case hclog.Error:
		h.l.SetLevel(loglvl.ErrorLevel)
	}
}

func (h *hclogAdapter) GetLevel() hclog.Level {
	switch h.l.GetLevel() {
	case loglvl.NilLevel:
		return hclog.Off
	case loglvl.DebugLevel:
		return hclog.Debug
	case loglvl.InfoLevel:
		return hclog.Info
	case loglvl.WarnLevel:
		return hclog.Warn
	case loglvl.ErrorLevel, loglvl.FatalLevel, loglvl.PanicLevel:
		return hclog.Error
	default:
		return hclog.NoLevel
	}
}

func (h *hclogAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	lvl := loglvl.InfoLevel

	if opts != nil {
		switch opts.ForceLevel {
		case hclog.Off, hclog.NoLevel:
			lvl = loglvl.NilLevel
		case hclog.Trace, hclog.Debug:
			lvl = loglvl.DebugLevel
		case hclog.Info:
			lvl = loglvl.InfoLevel
		case hclog.Warn:
			lvl = loglvl.WarnLevel
		case hclog.Error:
			lvl = loglvl.ErrorLevel
		}
	}

	return h.l.GetStdLogger(lvl, 0)
}

func (h *hclogAdapter) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	return h.l
}
