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

// Package fields provides a thread-safe structured logging fields container,
// backed by the module's own atomic.Map so every component can attach
// arbitrary key/value context to a log entry without a global mutex.
package fields

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Fields is a thread-safe set of key/value pairs attached to a log entry.
type Fields interface {
	json.Marshaler
	json.Unmarshaler

	// Clone creates an independent copy of the Fields instance; the stored
	// values themselves are not copied.
	Clone() Fields

	// Clean removes all key-value pairs from the Fields instance.
	Clean()

	// Add inserts or updates a key-value pair, returning the receiver for chaining.
	Add(key string, val interface{}) Fields

	// Delete removes the key-value pair for key, returning the receiver for chaining.
	Delete(key string) Fields

	// Merge copies every pair of f into the receiver, overwriting duplicate keys.
	Merge(f Fields) Fields

	// Walk calls fct for every key/value pair until fct returns false.
	Walk(fct func(key string, val interface{}) bool) Fields

	// WalkLimit calls fct only for the keys present in validKeys.
	WalkLimit(fct func(key string, val interface{}) bool, validKeys ...string) Fields

	// Get retrieves the value stored for key.
	Get(key string) (val interface{}, ok bool)

	// Store inserts or updates a key-value pair without chaining.
	Store(key string, val interface{})

	// LoadOrStore atomically loads the existing value for key, or stores val.
	LoadOrStore(key string, val interface{}) (actual interface{}, loaded bool)

	// LoadAndDelete atomically loads and removes the value for key.
	LoadAndDelete(key string) (val interface{}, loaded bool)

	// Logrus renders the Fields instance as logrus.Fields.
	Logrus() logrus.Fields

	// Map replaces every value with the result of fct.
	Map(fct func(key string, val interface{}) interface{}) Fields
}

// New returns an empty Fields instance.
func New() Fields {
	return newFields()
}
