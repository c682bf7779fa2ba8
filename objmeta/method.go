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
	dynval "github.com/sabouaram/meshbus/dynval"
)

// MethodID uniquely identifies a method within an object's meta-description.
type MethodID uint32

// MethodInfo describes one callable method: its id, name, parameter and
// return type signature, and the bound Go function invoked on dispatch.
// ParamTypes/ReturnType are dynval descriptors so the dispatcher can convert
// wire arguments before calling Call.
type MethodInfo struct {
	ID         MethodID
	Name       string
	ParamTypes []*dynval.TypeDescriptor
	ReturnType *dynval.TypeDescriptor

	// Call invokes the bound method with already-converted arguments and
	// returns its result plus any call-level error (panics are recovered
	// by the caller, not here: see transport's invokeRecovered).
	Call func(args []dynval.Value) (dynval.Value, error)
}

// Signature renders the method's name and declared types into the
// colon-delimited signature string used for secondary lookup: the name,
// ":(", each parameter's TypeInfo concatenated with no separator, ")",
// then the return type's TypeInfo.
func (m MethodInfo) Signature() string {
	sig := m.Name + ":("
	for _, p := range m.ParamTypes {
		sig += string(p.TypeInfo())
	}
	sig += ")" + string(m.ReturnType.TypeInfo())
	return sig
}
