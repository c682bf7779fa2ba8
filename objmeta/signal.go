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
	logfld "github.com/sabouaram/meshbus/logger/fields"
	loglvl "github.com/sabouaram/meshbus/logger/level"
)

// SignalID uniquely identifies a signal within an object's meta-description.
type SignalID uint32

// SubscriberID identifies one subscription to a signal, returned by
// SignalInfo.Connect and consumed by SignalInfo.Disconnect.
type SubscriberID uint64

// SignalInfo describes one signal: its id, name, payload signature and the
// live set of subscriber callbacks. A zero SignalInfo is usable directly.
type SignalInfo struct {
	ID         SignalID
	Name       string
	ParamTypes []*dynval.TypeDescriptor

	mu     sync.Mutex
	nextID SubscriberID
	subs   map[SubscriberID]func(args []dynval.Value)

	// Log receives a line whenever a subscriber callback panics during
	// Emit; nil disables logging (tests leave it unset).
	Log func(lvl loglvl.Level, message string, fields logfld.Fields)
}

// Connect registers callback and returns a SubscriberID usable with
// Disconnect. Safe for concurrent use with Emit and Disconnect.
func (s *SignalInfo) Connect(callback func(args []dynval.Value)) SubscriberID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[SubscriberID]func(args []dynval.Value))
	}

	s.nextID++
	id := s.nextID
	s.subs[id] = callback
	return id
}

// Disconnect removes a subscription. Once Disconnect returns, no Emit call
// that starts afterward will invoke that subscriber; an Emit already in
// flight when Disconnect is called may still deliver to it once, since the
// subscriber list is snapshotted under the lock before callbacks run.
func (s *SignalInfo) Disconnect(id SubscriberID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// Emit delivers args to every currently-connected subscriber, synchronously,
// in ascending SubscriberID order (i.e. subscription order). The subscriber
// list is copied out under the lock and callbacks run outside it, so a
// subscriber that calls Connect/Disconnect from within its own callback
// never deadlocks and never observes a partial snapshot. A subscriber panic
// is recovered and logged; it never aborts delivery to the remaining
// subscribers and never propagates to the emitter.
func (s *SignalInfo) Emit(args []dynval.Value) {
	s.mu.Lock()
	ids := make([]SubscriberID, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	snapshot := make(map[SubscriberID]func(args []dynval.Value), len(s.subs))
	for id, cb := range s.subs {
		snapshot[id] = cb
	}
	s.mu.Unlock()

	sortSubscriberIDs(ids)

	for _, id := range ids {
		cb := snapshot[id]
		s.invoke(cb, args)
	}
}

func (s *SignalInfo) invoke(cb func(args []dynval.Value), args []dynval.Value) {
	defer func() {
		if r := recover(); r != nil && s.Log != nil {
			s.Log(loglvl.ErrorLevel, "signal subscriber panicked", logfld.New().Add("signal", s.Name).Add("recover", r))
		}
	}()
	cb(args)
}

func sortSubscriberIDs(ids []SubscriberID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
