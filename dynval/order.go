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
	"sort"
	"strings"
)

// Less implements the total ordering used by value-keyed containers:
// null-first; then by kind as a tie-breaker when source/target differ;
// within a kind, numeric compare on Int/Float, byte compare on String
// (shorter is less on tie), lexicographic for List/Map (length-first then
// elementwise), and an opaque-but-total pointer-level compare for
// Object/Pointer/Tuple/Dynamic/Raw. Int-Float cross-kind compare is
// numeric.
func (v Value) Less(o Value) bool {
	if v.IsEmpty() != o.IsEmpty() {
		return v.IsEmpty()
	}
	if v.IsEmpty() {
		return false
	}

	vk, ok := v.Kind(), o.Kind()
	if isNumeric(vk) && isNumeric(ok) && vk != ok {
		a, _ := v.ToDouble()
		b, _ := o.ToDouble()
		return a < b
	}

	if vk != ok {
		return vk < ok
	}

	switch vk {
	case Int:
		a, _ := v.ToInt()
		b, _ := o.ToInt()
		return a < b
	case Float:
		a, _ := v.ToDouble()
		b, _ := o.ToDouble()
		return a < b
	case String:
		a, _ := v.ToString()
		b, _ := o.ToString()
		return strings.Compare(a, b) < 0
	case List:
		return lessContainer(v, o)
	case Map:
		return lessMap(v, o)
	default:
		return fmt.Sprintf("%p", v.storage) < fmt.Sprintf("%p", o.storage)
	}
}

func isNumeric(k Kind) bool {
	return k == Int || k == Float
}

func lessContainer(v, o Value) bool {
	sv, so := v.Size(), o.Size()
	if sv != so {
		return sv < so
	}

	av := v.Elements()
	bo := o.Elements()

	for i := range av {
		if i >= len(bo) {
			return false
		}
		if av[i].Less(bo[i]) {
			return true
		}
		if bo[i].Less(av[i]) {
			return false
		}
	}

	return false
}

// lessMap orders Maps by size first, then by their entries in sorted-key
// order: the same length-first-then-elementwise scheme lessContainer uses
// for List, with the key used both to establish a deterministic iteration
// order over the otherwise-unordered map[Value]Value storage and, on a key
// tie, as the elementwise comparator alongside the paired value.
func lessMap(v, o Value) bool {
	sv, so := v.Size(), o.Size()
	if sv != so {
		return sv < so
	}

	ak := sortedKeys(v.Entries())
	bk := sortedKeys(o.Entries())

	ae := v.Entries()
	be := o.Entries()

	for i := range ak {
		if ak[i].Less(bk[i]) {
			return true
		}
		if bk[i].Less(ak[i]) {
			return false
		}
		av, bv := ae[ak[i]], be[bk[i]]
		if av.Less(bv) {
			return true
		}
		if bv.Less(av) {
			return false
		}
	}

	return false
}

func sortedKeys(entries map[Value]Value) []Value {
	keys := make([]Value, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
