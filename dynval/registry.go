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

	libatm "github.com/sabouaram/meshbus/atomic"
)

// registry is, with the proxy generator map in convert.go, the
// process-wide mutable state of the runtime: a lazily-populated mapping from a Go reflect.Type identity to the
// TypeDescriptor registered for it. Registration is idempotent and
// thread-safe; descriptors are never destroyed (first touch wins).
var registry = libatm.NewMapAny[reflect.Type]()

// builtin holds the handful of descriptors that are not keyed by a Go
// reflect.Type: the shared string, raw and void descriptors.
var builtin = struct {
	stringDesc *TypeDescriptor
	rawDesc    *TypeDescriptor
	voidDesc   *TypeDescriptor
}{}

func init() {
	builtin.stringDesc = &TypeDescriptor{kind: String, info: "builtin.string", name: "string"}
	builtin.rawDesc = &TypeDescriptor{kind: Raw, info: "builtin.raw", name: "raw"}
	builtin.voidDesc = &TypeDescriptor{kind: Void, info: "builtin.void", name: "void"}
}

// TypeOf returns the descriptor registered for T, constructing and caching
// one on first call. Go has no native int-width/signedness reflection for
// interface{} the way the source runtime does for a static T, so callers
// that need Int descriptors with a specific width should use IntType
// instead; TypeOf handles the remaining kinds generically via reflection.
func TypeOf[T any]() *TypeDescriptor {
	var zero T
	return TypeOfValue(zero)
}

// TypeOfValue returns the descriptor for the runtime type of v, constructing
// and caching one on first call.
func TypeOfValue(v interface{}) *TypeDescriptor {
	if v == nil {
		return builtin.voidDesc
	}

	t := reflect.TypeOf(v)

	if d, ok := registry.Load(t); ok {
		return d.(*TypeDescriptor)
	}

	d := buildDescriptor(t)
	actual, _ := registry.LoadOrStore(t, d)

	return actual.(*TypeDescriptor)
}

// IntType returns (and caches) the descriptor for a signed or unsigned
// integer of the given bit width (8, 16, 32 or 64).
func IntType(width uint8, signed bool) *TypeDescriptor {
	key := reflect.TypeOf(intTypeKey{width, signed})

	if d, ok := registry.Load(key); ok {
		return d.(*TypeDescriptor)
	}

	d := &TypeDescriptor{
		kind:      Int,
		info:      TypeInfo(fmt.Sprintf("builtin.int%d.signed=%v", width, signed)),
		name:      fmt.Sprintf("int%d", width),
		intWidth:  width,
		intSigned: signed,
	}

	actual, _ := registry.LoadOrStore(key, d)

	return actual.(*TypeDescriptor)
}

type intTypeKey struct {
	width  uint8
	signed bool
}

// FloatType returns the shared Float descriptor; Go's dynval does not
// distinguish float widths for conversion purposes (float64 carries both).
func FloatType() *TypeDescriptor {
	return TypeOf[float64]()
}

// StringType returns the shared String descriptor.
func StringType() *TypeDescriptor {
	return builtin.stringDesc
}

// RawType returns the shared Raw (opaque byte buffer) descriptor.
func RawType() *TypeDescriptor {
	return builtin.rawDesc
}

// VoidType returns the sentinel descriptor for "no value".
func VoidType() *TypeDescriptor {
	return builtin.voidDesc
}

// ListType builds the descriptor for a list of elem. It is not cached; each
// call returns a new descriptor with the same TypeInfo.
func ListType(elem *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{
		kind: List,
		info: TypeInfo("list<" + string(elem.TypeInfo()) + ">"),
		name: "list<" + elem.Name() + ">",
		elem: elem,
	}
}

// MapType builds the descriptor for a map of key to elem. It is not cached;
// each call returns a new descriptor with the same TypeInfo.
func MapType(key, elem *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{
		kind: Map,
		info: TypeInfo("map<" + string(key.TypeInfo()) + "," + string(elem.TypeInfo()) + ">"),
		name: "map<" + key.Name() + "," + elem.Name() + ">",
		key:  key,
		elem: elem,
	}
}

// TupleType builds the descriptor for an ordered tuple of members. It is not
// cached; each call returns a new descriptor with the same TypeInfo.
func TupleType(members ...*TypeDescriptor) *TypeDescriptor {
	info := "tuple<"
	name := "tuple<"

	for i, m := range members {
		if i > 0 {
			info += ","
			name += ","
		}
		info += string(m.TypeInfo())
		name += m.Name()
	}

	info += ">"
	name += ">"

	return &TypeDescriptor{kind: Tuple, info: TypeInfo(info), name: name, members: members}
}

// PointerType builds the descriptor for a pointer to elem. It is not cached;
// each call returns a new descriptor with the same TypeInfo.
func PointerType(elem *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{
		kind: Pointer,
		info: TypeInfo("ptr<" + string(elem.TypeInfo()) + ">"),
		name: "*" + elem.Name(),
		elem: elem,
	}
}

// DynamicType builds the Dynamic (boxed-any) descriptor; every call returns
// a new descriptor with the same TypeInfo.
func DynamicType() *TypeDescriptor {
	return &TypeDescriptor{kind: Dynamic, info: "builtin.dynamic", name: "dynamic"}
}

// IteratorType returns the descriptor for an Iterator over elem values.
func IteratorType(elem *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{
		kind: Iterator,
		info: TypeInfo("iter<" + string(elem.TypeInfo()) + ">"),
		name: "iterator<" + elem.Name() + ">",
		elem: elem,
	}
}

// ObjectType registers (or returns the already-registered) descriptor for
// a Go struct type T used as an Object kind, via its reflect.Type identity.
func ObjectType[T any]() *TypeDescriptor {
	var zero T
	t := reflect.TypeOf(zero)

	if d, ok := registry.Load(t); ok {
		return d.(*TypeDescriptor)
	}

	d := &TypeDescriptor{
		kind:   Object,
		info:   TypeInfo("object." + t.String()),
		name:   t.String(),
		goType: t,
	}

	actual, _ := registry.LoadOrStore(t, d)

	return actual.(*TypeDescriptor)
}

func buildDescriptor(t reflect.Type) *TypeDescriptor {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntType(uint8(t.Bits()), true)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return IntType(uint8(t.Bits()), false)
	case reflect.Float32, reflect.Float64:
		return &TypeDescriptor{kind: Float, info: TypeInfo("builtin." + t.String()), name: t.String()}
	case reflect.String:
		return builtin.stringDesc
	case reflect.Slice, reflect.Array:
		return ListType(TypeOfValue(reflect.Zero(t.Elem()).Interface()))
	case reflect.Map:
		return MapType(
			TypeOfValue(reflect.Zero(t.Key()).Interface()),
			TypeOfValue(reflect.Zero(t.Elem()).Interface()),
		)
	case reflect.Ptr:
		return PointerType(TypeOfValue(reflect.Zero(t.Elem()).Interface()))
	case reflect.Struct:
		return &TypeDescriptor{kind: Object, info: TypeInfo("object." + t.String()), name: t.String(), goType: t}
	default:
		return &TypeDescriptor{kind: Unknown, info: TypeInfo("unknown." + t.String()), name: t.String()}
	}
}
