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

package objmeta_test

import (
	"sync"
	"sync/atomic"

	dynval "github.com/sabouaram/meshbus/dynval"
	objmeta "github.com/sabouaram/meshbus/objmeta"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MetaObject", func() {
	It("looks up methods by id, name and signature", func() {
		o := objmeta.NewMetaObject("calculator")
		o.AddMethod(objmeta.MethodInfo{
			ID:         1,
			Name:       "add",
			ParamTypes: []*dynval.TypeDescriptor{dynval.IntType(32, true), dynval.IntType(32, true)},
			ReturnType: dynval.IntType(32, true),
			Call: func(args []dynval.Value) (dynval.Value, error) {
				a, _ := args[0].ToInt()
				b, _ := args[1].ToInt()
				v := dynval.NewOwning(dynval.IntType(32, true), nil)
				_ = v.SetInt(a + b)
				return v, nil
			},
		})

		byID, err := o.Method(1)
		Expect(err).To(BeNil())
		Expect(byID.Name).To(Equal("add"))

		byName, err := o.MethodByName("add")
		Expect(err).To(BeNil())
		Expect(byName.ID).To(Equal(objmeta.MethodID(1)))

		bySig, err := o.MethodBySignature(byID.Signature())
		Expect(err).To(BeNil())
		Expect(bySig.ID).To(Equal(objmeta.MethodID(1)))

		_, err = o.MethodByName("missing")
		Expect(err).ToNot(BeNil())
	})

	It("invokes a bound method call", func() {
		o := objmeta.NewMetaObject("calculator")
		o.AddMethod(objmeta.MethodInfo{
			ID:   1,
			Name: "add",
			Call: func(args []dynval.Value) (dynval.Value, error) {
				a, _ := args[0].ToInt()
				b, _ := args[1].ToInt()
				v := dynval.NewOwning(dynval.IntType(32, true), nil)
				_ = v.SetInt(a + b)
				return v, nil
			},
		})

		m, err := o.Method(1)
		Expect(err).To(BeNil())

		x := dynval.NewOwning(dynval.IntType(32, true), nil)
		Expect(x.SetInt(2)).To(BeNil())
		y := dynval.NewOwning(dynval.IntType(32, true), nil)
		Expect(y.SetInt(3)).To(BeNil())

		res, callErr := m.Call([]dynval.Value{x, y})
		Expect(callErr).ToNot(HaveOccurred())
		got, _ := res.ToInt()
		Expect(got).To(Equal(int64(5)))
	})

	It("binds and retrieves a MetaObject from a TypeDescriptor", func() {
		desc := dynval.ObjectType[struct{}]()
		o := objmeta.NewMetaObject("thing")
		objmeta.Bind(desc, o)

		Expect(objmeta.Of(desc)).To(BeIdenticalTo(o))
	})
})

var _ = Describe("SignalInfo", func() {
	It("delivers Emit to subscribers in subscription order", func() {
		s := &objmeta.SignalInfo{ID: 1, Name: "changed"}

		var mu sync.Mutex
		var order []int

		s.Connect(func(args []dynval.Value) {
			mu.Lock()
			order = append(order, 1)
			mu.Unlock()
		})
		s.Connect(func(args []dynval.Value) {
			mu.Lock()
			order = append(order, 2)
			mu.Unlock()
		})

		s.Emit(nil)

		mu.Lock()
		defer mu.Unlock()
		Expect(order).To(Equal([]int{1, 2}))
	})

	It("does not invoke a disconnected subscriber", func() {
		s := &objmeta.SignalInfo{ID: 1, Name: "changed"}

		var calls int32
		id := s.Connect(func(args []dynval.Value) {
			atomic.AddInt32(&calls, 1)
		})
		s.Disconnect(id)
		s.Emit(nil)

		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(0)))
	})

	It("recovers a panicking subscriber without aborting delivery", func() {
		s := &objmeta.SignalInfo{ID: 1, Name: "changed"}

		var secondCalled bool
		s.Connect(func(args []dynval.Value) {
			panic("boom")
		})
		s.Connect(func(args []dynval.Value) {
			secondCalled = true
		})

		Expect(func() { s.Emit(nil) }).ToNot(Panic())
		Expect(secondCalled).To(BeTrue())
	})
})

var _ = Describe("PropertyInfo", func() {
	It("emits Changed only when the value actually differs", func() {
		p := &objmeta.PropertyInfo{ID: 1, Name: "count", Type: dynval.IntType(32, true)}

		var emits int32
		p.Changed.Connect(func(args []dynval.Value) {
			atomic.AddInt32(&emits, 1)
		})

		v1 := dynval.NewOwning(dynval.IntType(32, true), nil)
		Expect(v1.SetInt(1)).To(BeNil())
		p.Set(v1)
		Expect(atomic.LoadInt32(&emits)).To(Equal(int32(1)))

		v2 := dynval.NewOwning(dynval.IntType(32, true), nil)
		Expect(v2.SetInt(1)).To(BeNil())
		p.Set(v2)
		Expect(atomic.LoadInt32(&emits)).To(Equal(int32(1)))

		v3 := dynval.NewOwning(dynval.IntType(32, true), nil)
		Expect(v3.SetInt(2)).To(BeNil())
		p.Set(v3)
		Expect(atomic.LoadInt32(&emits)).To(Equal(int32(2)))
	})
})
