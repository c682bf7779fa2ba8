/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package entry

import (
	"time"

	logfld "github.com/sabouaram/meshbus/logger/fields"
	loglvl "github.com/sabouaram/meshbus/logger/level"
	"github.com/sirupsen/logrus"
)

// Entry is a single structured log event under construction: level, message,
// context fields and errors accumulate on it until Log or Check flushes it.
type Entry interface {
	// SetLogger sets the function that returns the underlying logrus.Logger.
	SetLogger(fct func() *logrus.Logger) Entry
	// SetLevel changes the level of the entry.
	SetLevel(lvl loglvl.Level) Entry
	// SetMessageOnly toggles message-only mode, skipping structured fields.
	SetMessageOnly(flag bool) Entry
	// SetEntryContext sets time, stack, caller, file, line and message at once.
	SetEntryContext(etime time.Time, stack uint64, caller, file string, line uint64, msg string) Entry

	// DataSet attaches arbitrary data to the entry.
	DataSet(data interface{}) Entry
	// Check logs at lvlNoErr if the entry carries no non-nil error, otherwise at its own level.
	// Returns true if a non-nil error was found.
	Check(lvlNoErr loglvl.Level) bool
	// Log flushes the entry to the underlying logger.
	Log()

	// FieldAdd adds a single key-value pair to the entry's fields.
	FieldAdd(key string, val interface{}) Entry
	// FieldMerge merges fields into the entry's fields.
	FieldMerge(fields logfld.Fields) Entry
	// FieldSet replaces the entry's fields.
	FieldSet(fields logfld.Fields) Entry
	// FieldClean removes the given keys from the entry's fields.
	FieldClean(keys ...string) Entry

	// ErrorClean empties the entry's error slice.
	ErrorClean() Entry
	// ErrorSet replaces the entry's error slice.
	ErrorSet(err []error) Entry
	// ErrorAdd appends errors to the entry, optionally dropping nils.
	ErrorAdd(cleanNil bool, err ...error) Entry
}

// New returns a new Entry at the given level, stamped with the current time.
func New(lvl loglvl.Level) Entry {
	return &entry{
		log:   nil,
		clean: false,
		Level: lvl,
		Time:  time.Now(),
		Error: make([]error, 0),
		Data:  nil,
	}
}
