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
	libatm "github.com/sabouaram/meshbus/atomic"
	liberr "github.com/sabouaram/meshbus/errors"
)

// ProxyGenerator builds a typed proxy Value for an Object referenced through
// a Pointer-to-Object conversion (rule 7). Registered per pointed-to
// TypeInfo through RegisterProxyGenerator.
type ProxyGenerator func(source Value, target *TypeDescriptor) (Value, bool)

var proxyGenerators = libatm.NewMapAny[TypeInfo]()

// RegisterProxyGenerator installs the proxy generator used by rule 7 for
// objects whose pointed-to type has the given TypeInfo. The process-wide
// map is the "proxy generator map" of the design notes: id-indexed,
// initialized lazily, never torn down.
func RegisterProxyGenerator(target TypeInfo, gen ProxyGenerator) {
	proxyGenerators.Store(target, gen)
}

// Convert computes, for (source, targetDescriptor), a new Value whose
// observable contents match source under target's shape. The returned bool
// reports whether the caller now owns result.Storage and must Destroy it.
// A result with an empty/Void descriptor means the conversion failed.
func Convert(source Value, target *TypeDescriptor) (Value, bool) {
	// 1. Identity short-circuit.
	if source.desc != nil && target != nil && source.desc.Equal(target) {
		return source, false
	}

	// 2. Null-guard.
	if source.desc == nil || target == nil {
		return Empty(), false
	}

	sk, tk := source.Kind(), target.Kind()

	// 3. Same-kind dispatch.
	if sk == tk {
		if v, ok, handled := convertSameKind(source, target); handled {
			return v, ok
		}
	}

	// 4. Cross-kind numeric.
	if sk == Float && tk == Int {
		return convertFloatToInt(source, target)
	}
	if sk == Int && tk == Float {
		return convertIntToFloat(source, target)
	}

	// 5. String <-> Raw.
	if sk == String && tk == Raw {
		s, _ := source.ToString()
		return NewOwning(target, []byte(s)), true
	}
	if sk == Raw && tk == String {
		return Empty(), false
	}

	// 6. Dynamic wrapping.
	if tk == Dynamic {
		return NewOwning(target, source.Clone()), true
	}

	// 7. ObjectPtr -> Pointer-to-Object via proxy generator map.
	if sk == Object && tk == Pointer && target.Elem().Kind() == Object {
		if gen, ok := proxyGenerators.Load(target.Elem().TypeInfo()); ok {
			if g, ok := gen.(ProxyGenerator); ok {
				if v, handled := g(source, target); handled {
					return v, true
				}
			}
		}
	}

	// 8. Dynamic unwrapping.
	if sk == Dynamic {
		if inner, ok := source.storage.(Value); ok {
			return Convert(inner, target)
		}
	}

	// 9. Object -> Pointer: recurse with the pointed-to type, re-pointerize.
	if sk == Object && tk == Pointer {
		inner, must := Convert(source, target.Elem())
		if inner.IsEmpty() {
			return Empty(), false
		}
		return NewOwning(target, inner), must
	}

	// 10. Object inheritance offset.
	if sk == Object && tk == Object {
		if in, ok := source.desc.InheritsFrom(target); ok && in.Extract != nil {
			return NewBorrowing(target, in.Extract(source.storage)), false
		}
	}

	// 11. TypeInfo match fallback.
	if source.desc.Equal(target) {
		return NewBorrowing(target, source.storage), false
	}

	// 12. Otherwise fail.
	return Empty(), false
}

func convertSameKind(source Value, target *TypeDescriptor) (Value, bool, bool) {
	switch source.Kind() {
	case Float, Raw, Dynamic:
		return NewOwning(target, source.storage), true, true

	case Int:
		i, e := source.ToInt()
		if e != nil {
			return Empty(), false, true
		}

		n := NewOwning(target, nil)

		var err liberr.Error
		if target.IntSigned() {
			err = n.SetInt(i)
		} else {
			err = n.SetUInt(uint64(i))
		}

		if err != nil {
			return Empty(), false, true
		}

		return n, true, true

	case String:
		if source.desc.Equal(target) {
			return NewBorrowing(target, source.storage), false, true
		}
		s, _ := source.ToString()
		n := NewOwning(target, nil)
		_ = n.SetString(s)
		return n, true, true

	case List:
		out := make([]Value, 0, source.Size())
		for _, e := range source.Elements() {
			if e.Descriptor().Equal(target.Elem()) {
				out = append(out, e)
				continue
			}
			cv, _ := Convert(e, target.Elem())
			if cv.IsEmpty() {
				return Empty(), false, true
			}
			out = append(out, cv)
		}
		return NewOwning(target, out), true, true

	case Map:
		sameKey := source.desc.Key().Equal(target.Key())
		sameElem := source.desc.Elem().Equal(target.Elem())
		out := make(map[Value]Value, source.Size())

		for k, e := range source.Entries() {
			nk := k
			if !sameKey {
				cv, _ := Convert(k, target.Key())
				if cv.IsEmpty() {
					return Empty(), false, true
				}
				nk = cv
			}

			ne := e
			if !sameElem {
				cv, _ := Convert(e, target.Elem())
				if cv.IsEmpty() {
					return Empty(), false, true
				}
				ne = cv
			}

			out[nk] = ne
		}

		return NewOwning(target, out), true, true

	case Tuple:
		sm := source.Elements()
		tm := target.Members()
		if len(sm) != len(tm) {
			return Empty(), false, true
		}

		out := make([]Value, len(sm))
		for i := range sm {
			if sm[i].Descriptor().Equal(tm[i]) {
				out[i] = sm[i]
				continue
			}
			cv, _ := Convert(sm[i], tm[i])
			if cv.IsEmpty() {
				return Empty(), false, true
			}
			out[i] = cv
		}

		return NewOwning(target, out), true, true

	case Pointer:
		se, te := source.desc.Elem(), target.Elem()
		if se.Kind() == Object && te.Kind() == Object {
			pointee, ok := source.storage.(Value)
			if !ok {
				return Empty(), false, true
			}
			cv, must := Convert(pointee, te)
			if cv.IsEmpty() {
				return Empty(), false, true
			}
			return NewOwning(target, cv), must, true
		}
		if source.desc.Equal(target) {
			return NewBorrowing(target, source.storage), false, true
		}
		return Empty(), false, true
	}

	return Empty(), false, false
}

func convertFloatToInt(source Value, target *TypeDescriptor) (Value, bool) {
	f, err := source.ToDouble()
	if err != nil {
		return Empty(), false
	}
	n := NewOwning(target, nil)
	if e := n.SetDouble(f); e != nil {
		return Empty(), false
	}
	return n, true
}

func convertIntToFloat(source Value, target *TypeDescriptor) (Value, bool) {
	i, err := source.ToInt()
	if err != nil {
		return Empty(), false
	}
	n := NewOwning(target, nil)
	_ = n.SetDouble(float64(i))
	return n, true
}
