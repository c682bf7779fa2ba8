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
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	logent "github.com/sabouaram/meshbus/logger/entry"
	logfld "github.com/sabouaram/meshbus/logger/fields"
	loglvl "github.com/sabouaram/meshbus/logger/level"
)

func (l *logger) caller(skip int) (caller, file string, line uint64) {
	pc, f, ln, ok := runtime.Caller(skip)
	if !ok {
		return "", "", 0
	}

	file = f
	line = uint64(ln)

	if fn := runtime.FuncForPC(pc); fn != nil {
		caller = fn.Name()
	}

	return caller, file, line
}

func (l *logger) newEntry(lvl loglvl.Level, message string, args ...interface{}) logent.Entry {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	caller, file, line := l.caller(3)

	e := logent.New(lvl).
		SetLogger(func() *logrus.Logger { return l.o }).
		SetEntryContext(time.Now(), 0, caller, file, line, message).
		FieldSet(logfld.New()).
		FieldMerge(l.GetFields())

	return e
}

func (l *logger) LogDetails(lvl loglvl.Level, message string, data interface{}, err []error, fields logfld.Fields, args ...interface{}) {
	e := l.newEntry(lvl, message, args...).DataSet(data)

	if fields != nil {
		e = e.FieldMerge(fields)
	}

	if len(err) > 0 {
		e = e.ErrorSet(err)
	}

	e.Log()
}

func (l *logger) Debug(message string, data interface{}, args ...interface{}) {
	l.newEntry(loglvl.DebugLevel, message, args...).DataSet(data).Log()
}

func (l *logger) Info(message string, data interface{}, args ...interface{}) {
	l.newEntry(loglvl.InfoLevel, message, args...).DataSet(data).Log()
}

func (l *logger) Warning(message string, data interface{}, args ...interface{}) {
	l.newEntry(loglvl.WarnLevel, message, args...).DataSet(data).Log()
}

func (l *logger) Error(message string, data interface{}, args ...interface{}) {
	l.newEntry(loglvl.ErrorLevel, message, args...).DataSet(data).Log()
}

func (l *logger) Fatal(message string, data interface{}, args ...interface{}) {
	l.newEntry(loglvl.FatalLevel, message, args...).DataSet(data).Log()
}

func (l *logger) Panic(message string, data interface{}, args ...interface{}) {
	l.newEntry(loglvl.PanicLevel, message, args...).DataSet(data).Log()
}

func (l *logger) CheckError(lvlKO, lvlOK loglvl.Level, message string, err ...error) bool {
	e := l.newEntry(lvlKO, message).ErrorAdd(true, err...)
	return e.Check(lvlOK)
}

func (l *logger) Entry(lvl loglvl.Level, message string, args ...interface{}) logent.Entry {
	return l.newEntry(lvl, message, args...)
}

func (l *logger) Access(remoteAddr, remoteUser string, localtime time.Time, latency time.Duration, method, request, proto string, status int, size int64) logent.Entry {
	msg := fmt.Sprintf("%s - %s [%s] %q %d %d %s", remoteAddr, remoteUser, localtime.Format(time.RFC3339), fmt.Sprintf("%s %s %s", method, request, proto), status, size, latency)

	return l.newEntry(loglvl.InfoLevel, msg).
		FieldAdd("remote_addr", remoteAddr).
		FieldAdd("remote_user", remoteUser).
		FieldAdd("method", method).
		FieldAdd("request", request).
		FieldAdd("proto", proto).
		FieldAdd("status", status).
		FieldAdd("size", size).
		FieldAdd("latency", latency.String())
}

func (l *logger) GetStdLogger(lvl loglvl.Level, logFlags int) *log.Logger {
	w := NewFrom(l)
	w.SetLevel(lvl)

	return log.New(w, "", logFlags)
}
