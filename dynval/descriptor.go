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

import "reflect"

// TypeInfo is a stable fingerprint of a descriptor. Two descriptors with
// equal TypeInfo are interchangeable for conversion purposes, even if they
// were constructed by independent registry lookups.
type TypeInfo string

// Inheritance records that a TypeDescriptor for an Object kind inherits from
// Parent at a byte-offset-equivalent accessor: Extract returns the parent's
// storage view of a given instance of this type's storage.
type Inheritance struct {
	Parent  *TypeDescriptor
	Extract func(storage interface{}) interface{}
}

// ObjectMeta is the opaque per-object meta-description attached to an Object
// kind descriptor. dynval never looks inside it; objmeta populates and reads
// it through ObjectMetaOf/SetObjectMeta so the two packages do not form an
// import cycle.
type ObjectMeta interface{}

// TypeDescriptor identifies a runtime type: its Kind, a stable TypeInfo
// fingerprint, and kind-specific sub-descriptors. Kind is immutable once
// constructed; all kind-specific accessors below are total (they return a
// well-defined zero value rather than panicking for a foreign Kind).
type TypeDescriptor struct {
	kind Kind
	info TypeInfo
	name string

	// List / Pointer
	elem *TypeDescriptor

	// Map
	key *TypeDescriptor

	// Tuple
	members []*TypeDescriptor

	// Int
	intWidth  uint8
	intSigned bool

	// Object
	inherits []Inheritance
	meta     ObjectMeta

	goType reflect.Type
}

func (d *TypeDescriptor) Kind() Kind {
	if d == nil {
		return Void
	}
	return d.kind
}

func (d *TypeDescriptor) TypeInfo() TypeInfo {
	if d == nil {
		return ""
	}
	return d.info
}

func (d *TypeDescriptor) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// Elem returns the element descriptor for List and Pointer kinds.
func (d *TypeDescriptor) Elem() *TypeDescriptor {
	if d == nil {
		return nil
	}
	return d.elem
}

// Key returns the key descriptor for Map kind.
func (d *TypeDescriptor) Key() *TypeDescriptor {
	if d == nil {
		return nil
	}
	return d.key
}

// Members returns the ordered member descriptors for Tuple kind.
func (d *TypeDescriptor) Members() []*TypeDescriptor {
	if d == nil {
		return nil
	}
	return d.members
}

// IntWidth returns the bit width of an Int kind descriptor (8/16/32/64).
func (d *TypeDescriptor) IntWidth() uint8 {
	if d == nil {
		return 0
	}
	return d.intWidth
}

// IntSigned reports whether an Int kind descriptor is signed.
func (d *TypeDescriptor) IntSigned() bool {
	if d == nil {
		return false
	}
	return d.intSigned
}

// Inherits returns the inheritance chain recorded for an Object kind.
func (d *TypeDescriptor) Inherits() []Inheritance {
	if d == nil {
		return nil
	}
	return d.inherits
}

// InheritsFrom reports whether this descriptor's Object kind declares
// target as an ancestor, returning the Inheritance record if so.
func (d *TypeDescriptor) InheritsFrom(target *TypeDescriptor) (Inheritance, bool) {
	if d == nil || target == nil {
		return Inheritance{}, false
	}

	for _, in := range d.inherits {
		if in.Parent != nil && in.Parent.info == target.info {
			return in, true
		}
	}

	return Inheritance{}, false
}

// Meta returns the opaque ObjectMeta attached by objmeta, or nil.
func (d *TypeDescriptor) Meta() ObjectMeta {
	if d == nil {
		return nil
	}
	return d.meta
}

// SetMeta attaches an ObjectMeta to an Object kind descriptor. Called once
// by objmeta when it registers a service implementation's descriptor.
func (d *TypeDescriptor) SetMeta(m ObjectMeta) {
	if d == nil {
		return
	}
	d.meta = m
}

// Equal reports whether two descriptors are interchangeable: same TypeInfo.
func (d *TypeDescriptor) Equal(o *TypeDescriptor) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.info == o.info
}
