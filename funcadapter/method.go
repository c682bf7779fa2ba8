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

package funcadapter

import (
	dynval "github.com/sabouaram/meshbus/dynval"
	objmeta "github.com/sabouaram/meshbus/objmeta"
)

// AsMethod wraps a into an objmeta.MethodInfo under id/name, so a plain Go
// function registered through Wrap (or BindInstance) can be published on a
// MetaObject without the caller hand-writing a dynval.Value-shaped Call
// closure. A Call re-cast failure surfaces as a plain error; the dispatcher
// recovers any panic from a.Call's reflect invocation itself.
func (a *Adapter) AsMethod(id objmeta.MethodID, name string) objmeta.MethodInfo {
	return objmeta.MethodInfo{
		ID:         id,
		Name:       name,
		ParamTypes: a.ArgTypes(),
		ReturnType: a.ReturnType(),
		Call: func(args []dynval.Value) (dynval.Value, error) {
			v, err := a.Call(args)
			if err != nil {
				return dynval.Value{}, err
			}
			return v, nil
		},
	}
}
