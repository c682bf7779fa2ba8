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

package entry

import (
	"os"
	"strings"
	"time"

	logfld "github.com/sabouaram/meshbus/logger/fields"
	loglvl "github.com/sabouaram/meshbus/logger/level"
	"github.com/sirupsen/logrus"
)

const (
	fieldTime    = "time"
	fieldLevel   = "level"
	fieldStack   = "stack"
	fieldCaller  = "caller"
	fieldFile    = "file"
	fieldLine    = "line"
	fieldMessage = "message"
	fieldError   = "error"
	fieldData    = "data"
)

// entry is the internal implementation of the Entry interface.
type entry struct {
	log func() *logrus.Logger

	clean bool

	Time    time.Time    `json:"time"`
	Level   loglvl.Level `json:"level"`
	Stack   uint64       `json:"stack"`
	Caller  string       `json:"caller"`
	File    string       `json:"file"`
	Line    uint64       `json:"line"`
	Message string       `json:"message"`
	Error   []error      `json:"error"`
	Data    interface{}  `json:"data"`
	Fields  logfld.Fields `json:"fields"`
}

func (e *entry) SetEntryContext(etime time.Time, stack uint64, caller, file string, line uint64, msg string) Entry {
	if e == nil {
		return nil
	}

	e.Time = etime
	e.Stack = stack
	e.Caller = caller
	e.File = file
	e.Line = line
	e.Message = msg

	return e
}

func (e *entry) SetMessageOnly(flag bool) Entry {
	if e == nil {
		return nil
	}

	e.clean = flag
	return e
}

func (e *entry) SetLevel(lvl loglvl.Level) Entry {
	if e == nil {
		return nil
	}

	e.Level = lvl
	return e
}

func (e *entry) SetLogger(fct func() *logrus.Logger) Entry {
	if e == nil {
		return nil
	}

	e.log = fct
	return e
}

func (e *entry) DataSet(data interface{}) Entry {
	if e == nil {
		return nil
	}

	e.Data = data
	return e
}

func (e *entry) Check(lvlNoErr loglvl.Level) bool {
	if e == nil {
		return false
	}

	found := false
	for _, er := range e.Error {
		if er != nil {
			found = true
			break
		}
	}

	if !found {
		e.Level = lvlNoErr
	}

	e.Log()
	return found
}

func (e *entry) Log() {
	if e == nil || e.log == nil {
		return
	}

	if e.Fields == nil {
		return
	}

	if e.clean {
		e.logClean()
		return
	}

	if e.Level == loglvl.NilLevel {
		return
	}

	tag := logfld.New().Add(fieldLevel, e.Level.String())

	if !e.Time.IsZero() {
		tag = tag.Add(fieldTime, e.Time.Format(time.RFC3339Nano))
	}

	if e.Stack > 0 {
		tag = tag.Add(fieldStack, e.Stack)
	}

	if e.Caller != "" {
		tag = tag.Add(fieldCaller, e.Caller)
	} else if e.File != "" {
		tag = tag.Add(fieldFile, e.File)
	}

	if e.Line > 0 {
		tag = tag.Add(fieldLine, e.Line)
	}

	if e.Message != "" {
		tag = tag.Add(fieldMessage, e.Message)
	}

	if len(e.Error) > 0 {
		msg := make([]string, 0, len(e.Error))

		for _, er := range e.Error {
			if er == nil {
				continue
			}
			msg = append(msg, er.Error())
		}

		if len(msg) > 0 {
			tag = tag.Add(fieldError, strings.Join(msg, ", "))
		}
	}

	if e.Data != nil {
		tag = tag.Add(fieldData, e.Data)
	}

	if e.Fields != nil {
		tag = tag.Merge(e.Fields)
	}

	log := e.log()
	if log == nil {
		return
	}

	log.WithFields(tag.Logrus()).Log(e.Level.Logrus())

	if e.Level <= loglvl.FatalLevel {
		os.Exit(1)
	}
}

func (e *entry) logClean() {
	log := e.log()
	if log == nil {
		return
	}

	log.Info(e.Message)
}
