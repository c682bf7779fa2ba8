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

package dynval

import (
	"fmt"
	"reflect"

	liberr "github.com/sabouaram/meshbus/errors"
	"github.com/sabouaram/meshbus/rterr"
)

// Value is a pair (descriptor, storage) with explicit ownership. A borrowing
// Value references storage owned elsewhere and must never be destroyed; an
// owning Value was produced by Clone or by the conversion engine and must
// eventually be passed to Destroy. A null descriptor implies a null storage,
// the sentinel for "no value".
type Value struct {
	desc      *TypeDescriptor
	storage   interface{}
	owning    bool
	destroyed bool
}

// Empty returns the sentinel "no value".
func Empty() Value {
	return Value{desc: VoidType()}
}

// NewBorrowing wraps storage in a Value that does not own it: dropping it
// never tears storage down.
func NewBorrowing(desc *TypeDescriptor, storage interface{}) Value {
	return Value{desc: desc, storage: storage}
}

// NewOwning wraps storage in a Value that owns it and must be Destroy()-ed.
func NewOwning(desc *TypeDescriptor, storage interface{}) Value {
	return Value{desc: desc, storage: storage, owning: true}
}

// IsEmpty reports whether the Value carries the sentinel "no value".
func (v Value) IsEmpty() bool {
	return v.desc == nil || v.desc.Kind() == Void
}

// Descriptor returns the Value's TypeDescriptor.
func (v Value) Descriptor() *TypeDescriptor {
	return v.desc
}

// Kind returns the Value's Kind, Void if empty.
func (v Value) Kind() Kind {
	return v.desc.Kind()
}

// Storage returns the raw Go storage backing the Value. Used by the
// conversion engine and the wire codec; ordinary callers should prefer the
// typed To*/Set* accessors below.
func (v Value) Storage() interface{} {
	return v.storage
}

// IsOwning reports whether dropping this Value must call Destroy.
func (v Value) IsOwning() bool {
	return v.owning
}

// Clone always produces an owning deep copy.
func (v Value) Clone() Value {
	return Value{desc: v.desc, storage: deepCopy(v.storage), owning: true}
}

// Destroy tears down owning storage; it is a no-op on borrowing and null
// Values. Double-destroying an owning Value is rejected.
func (v *Value) Destroy() error {
	if v == nil || !v.owning {
		return nil
	}

	if v.destroyed {
		return rterr.New(rterr.ProtocolError, fmt.Errorf("double destroy of owning value"))
	}

	v.storage = nil
	v.destroyed = true

	return nil
}

// Size returns the element count for List/Map/Tuple kinds, 0 otherwise.
func (v Value) Size() int {
	switch v.Kind() {
	case List:
		if s, ok := v.storage.([]Value); ok {
			return len(s)
		}
	case Map:
		if m, ok := v.storage.(map[Value]Value); ok {
			return len(m)
		}
	case Tuple:
		if s, ok := v.storage.([]Value); ok {
			return len(s)
		}
	}
	return 0
}

// Elements returns the ordered element Values for List and Tuple kinds.
func (v Value) Elements() []Value {
	if s, ok := v.storage.([]Value); ok {
		return s
	}
	return nil
}

// Entries returns the key-value pairs for a Map kind.
func (v Value) Entries() map[Value]Value {
	if m, ok := v.storage.(map[Value]Value); ok {
		return m
	}
	return nil
}

// SetInt stores a signed integer, failing on narrowing overflow against the
// descriptor's declared width.
func (v *Value) SetInt(i int64) liberr.Error {
	if v.Kind() != Int {
		return rterr.New(rterr.ConversionFailed, fmt.Errorf("SetInt on non-Int value"))
	}

	if err := checkIntOverflow(i, v.desc.IntWidth(), v.desc.IntSigned()); err != nil {
		return err
	}

	v.storage = i
	return nil
}

// SetUInt stores an unsigned integer, failing on narrowing overflow.
func (v *Value) SetUInt(u uint64) liberr.Error {
	if v.Kind() != Int {
		return rterr.New(rterr.ConversionFailed, fmt.Errorf("SetUInt on non-Int value"))
	}

	if v.desc.IntSigned() {
		if u > uint64(maxIntForWidth(v.desc.IntWidth())) {
			return rterr.New(rterr.Overflow)
		}
		v.storage = int64(u)
		return nil
	}

	if err := checkUintOverflow(u, v.desc.IntWidth()); err != nil {
		return err
	}

	v.storage = u
	return nil
}

// SetDouble stores a float64, converting from it for Int targets with an
// overflow check.
func (v *Value) SetDouble(f float64) liberr.Error {
	switch v.Kind() {
	case Float:
		v.storage = f
		return nil
	case Int:
		i := int64(f)
		if float64(i) != f {
			return rterr.New(rterr.Overflow)
		}
		return v.SetInt(i)
	}
	return rterr.New(rterr.ConversionFailed, fmt.Errorf("SetDouble on incompatible value"))
}

// SetString stores a string value.
func (v *Value) SetString(s string) liberr.Error {
	if v.Kind() != String {
		return rterr.New(rterr.ConversionFailed, fmt.Errorf("SetString on non-String value"))
	}
	v.storage = s
	return nil
}

// ToInt converts the Value to an int64, failing for non-numeric kinds.
func (v Value) ToInt() (int64, liberr.Error) {
	switch v.Kind() {
	case Int:
		switch s := v.storage.(type) {
		case int64:
			return s, nil
		case uint64:
			return int64(s), nil
		}
	case Float:
		if f, ok := v.storage.(float64); ok {
			return int64(f), nil
		}
	}
	return 0, rterr.New(rterr.ConversionFailed, fmt.Errorf("ToInt on %s value", v.Kind()))
}

// ToDouble converts the Value to a float64.
func (v Value) ToDouble() (float64, liberr.Error) {
	switch v.Kind() {
	case Float:
		if f, ok := v.storage.(float64); ok {
			return f, nil
		}
	case Int:
		i, e := v.ToInt()
		if e != nil {
			return 0, e
		}
		return float64(i), nil
	}
	return 0, rterr.New(rterr.ConversionFailed, fmt.Errorf("ToDouble on %s value", v.Kind()))
}

// ToString converts the Value to a string; only valid for the String kind.
func (v Value) ToString() (string, liberr.Error) {
	if v.Kind() != String {
		return "", rterr.New(rterr.ConversionFailed, fmt.Errorf("ToString on %s value", v.Kind()))
	}
	if s, ok := v.storage.(string); ok {
		return s, nil
	}
	return "", rterr.New(rterr.ConversionFailed, fmt.Errorf("corrupt string storage"))
}

// ToTuple returns the ordered member Values of a Tuple kind.
func (v Value) ToTuple() ([]Value, liberr.Error) {
	if v.Kind() != Tuple {
		return nil, rterr.New(rterr.ConversionFailed, fmt.Errorf("ToTuple on %s value", v.Kind()))
	}
	if s, ok := v.storage.([]Value); ok {
		return s, nil
	}
	return nil, rterr.New(rterr.ConversionFailed, fmt.Errorf("corrupt tuple storage"))
}

// ToObject returns the raw Go struct backing an Object kind Value.
func (v Value) ToObject() (interface{}, liberr.Error) {
	if v.Kind() != Object {
		return nil, rterr.New(rterr.ConversionFailed, fmt.Errorf("ToObject on %s value", v.Kind()))
	}
	return v.storage, nil
}

// Equal implements a == b ≡ !(a<b) && !(b<a), except Iterator Values which
// use descriptor-defined structural equality.
func (v Value) Equal(o Value) bool {
	if v.Kind() == Iterator || o.Kind() == Iterator {
		return v.desc.Equal(o.desc) && reflect.DeepEqual(v.storage, o.storage)
	}
	return !v.Less(o) && !o.Less(v)
}

func deepCopy(storage interface{}) interface{} {
	switch s := storage.(type) {
	case []Value:
		out := make([]Value, len(s))
		for i, e := range s {
			out[i] = e.Clone()
		}
		return out
	case map[Value]Value:
		out := make(map[Value]Value, len(s))
		for k, e := range s {
			out[k] = e.Clone()
		}
		return out
	default:
		return storage
	}
}

func maxIntForWidth(width uint8) int64 {
	switch width {
	case 8:
		return 1<<7 - 1
	case 16:
		return 1<<15 - 1
	case 32:
		return 1<<31 - 1
	default:
		return 1<<63 - 1
	}
}

func minIntForWidth(width uint8) int64 {
	switch width {
	case 8:
		return -1 << 7
	case 16:
		return -1 << 15
	case 32:
		return -1 << 31
	default:
		return -1 << 63
	}
}

func maxUintForWidth(width uint8) uint64 {
	switch width {
	case 8:
		return 1<<8 - 1
	case 16:
		return 1<<16 - 1
	case 32:
		return 1<<32 - 1
	default:
		return ^uint64(0)
	}
}

func checkIntOverflow(i int64, width uint8, signed bool) liberr.Error {
	if !signed {
		if i < 0 || uint64(i) > maxUintForWidth(width) {
			return rterr.New(rterr.Overflow)
		}
		return nil
	}

	if width == 0 || width == 64 {
		return nil
	}

	if i > maxIntForWidth(width) || i < minIntForWidth(width) {
		return rterr.New(rterr.Overflow)
	}

	return nil
}

func checkUintOverflow(u uint64, width uint8) liberr.Error {
	if width == 0 || width == 64 {
		return nil
	}
	if u > maxUintForWidth(width) {
		return rterr.New(rterr.Overflow)
	}
	return nil
}
