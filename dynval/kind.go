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

// Package dynval implements the runtime type registry, the dynamic value
// carrier and the conversion engine that rewrites values between
// structurally-compatible shapes. Every other component of the runtime
// (meta-description, function adapter, transport codec) carries payloads
// as dynval.Value rather than raw Go interfaces, so wire encoding and
// cross-type conversion stay centralized here.
package dynval

// Kind is the closed set of runtime type categories a TypeDescriptor can
// describe. Kind never changes once a descriptor is constructed.
type Kind uint8

const (
	Void Kind = iota
	Int
	Float
	String
	List
	Map
	Tuple
	Pointer
	Object
	Dynamic
	Raw
	Iterator
	Unknown
)

var kindNames = [...]string{
	Void:     "void",
	Int:      "int",
	Float:    "float",
	String:   "string",
	List:     "list",
	Map:      "map",
	Tuple:    "tuple",
	Pointer:  "pointer",
	Object:   "object",
	Dynamic:  "dynamic",
	Raw:      "raw",
	Iterator: "iterator",
	Unknown:  "unknown",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}
