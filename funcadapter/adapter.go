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

// Package funcadapter wraps a statically-typed Go function into the
// erased-argument call shape the dispatcher needs: a slice of dynval.Value
// in, a single dynval.Value out. It never converts argument shapes itself —
// callers route through dynval.Convert first when shapes differ.
package funcadapter

import (
	"fmt"
	"reflect"

	dynval "github.com/sabouaram/meshbus/dynval"
	rterr "github.com/sabouaram/meshbus/rterr"
)

// Adapter is a wrapped callable: Call re-casts each element of storages
// into the recorded argument type, invokes the bound function, and returns
// an owning Value for its result.
type Adapter struct {
	fn      reflect.Value
	argType []*dynval.TypeDescriptor
	retType *dynval.TypeDescriptor
	bound   reflect.Value // zero Value when not a bound-instance adapter
}

// Wrap records fn's argument and return descriptors and returns an Adapter
// ready to Call. fn must be a non-variadic func value; it panics otherwise,
// matching the reference tree's posture that a malformed registration is a
// programming error caught at startup, not a runtime condition to recover
// from.
func Wrap(fn interface{}) *Adapter {
	rv := reflect.ValueOf(fn)
	rt := rv.Type()

	if rt.Kind() != reflect.Func {
		panic(fmt.Sprintf("funcadapter: Wrap expects a func, got %s", rt.Kind()))
	}
	if rt.IsVariadic() {
		panic("funcadapter: variadic functions are not supported")
	}

	a := &Adapter{fn: rv}
	for i := 0; i < rt.NumIn(); i++ {
		a.argType = append(a.argType, dynval.TypeOfValue(reflect.New(rt.In(i)).Elem().Interface()))
	}

	switch rt.NumOut() {
	case 0:
		a.retType = dynval.VoidType()
	case 1:
		a.retType = dynval.TypeOfValue(reflect.New(rt.Out(0)).Elem().Interface())
	default:
		panic("funcadapter: at most one return value is supported")
	}

	return a
}

// BindInstance returns a copy of a pre-bound to this as the call's receiver:
// fn's first declared parameter is treated as the instance and removed from
// the exposed ArgTypes; Call prepends this to the argument list before
// invocation instead of requiring the caller to pass it explicitly.
func (a *Adapter) BindInstance(this interface{}) *Adapter {
	b := *a
	b.bound = reflect.ValueOf(this)
	if len(b.argType) > 0 {
		b.argType = b.argType[1:]
	}
	return &b
}

// ArgTypes returns the recorded parameter descriptors, excluding a bound
// instance if any.
func (a *Adapter) ArgTypes() []*dynval.TypeDescriptor {
	return a.argType
}

// ReturnType returns the recorded return descriptor (VoidType for a
// func with no return value).
func (a *Adapter) ReturnType() *dynval.TypeDescriptor {
	return a.retType
}

// Call re-casts each storages[i] into the i-th recorded argument type and
// invokes the wrapped function. It does not convert: a storage whose Go
// dynamic type does not match the recorded argument type fails with
// ConversionFailed, signaling the caller skipped the §4.C conversion step.
func (a *Adapter) Call(storages []dynval.Value) (dynval.Value, rterr.Error) {
	if len(storages) != len(a.argType) {
		return dynval.Empty(), rterr.New(rterr.ProtocolError, fmt.Errorf("funcadapter: expected %d arguments, got %d", len(a.argType), len(storages)))
	}

	ft := a.fn.Type()
	offset := 0
	args := make([]reflect.Value, 0, len(storages)+1)

	if a.bound.IsValid() {
		args = append(args, a.bound)
		offset = 1
	}

	for i, s := range storages {
		want := ft.In(i + offset)
		got := reflect.ValueOf(s.Storage())

		if !got.IsValid() || !got.Type().AssignableTo(want) {
			return dynval.Empty(), rterr.New(rterr.ConversionFailed, fmt.Errorf("funcadapter: argument %d is not assignable to %s", i, want))
		}

		args = append(args, got)
	}

	out := a.fn.Call(args)

	if a.retType.Kind() == dynval.Void {
		return dynval.Empty(), nil
	}

	return dynval.NewOwning(a.retType, out[0].Interface()), nil
}
