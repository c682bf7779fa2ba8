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

package fields

import (
	"encoding/json"

	libatm "github.com/sabouaram/meshbus/atomic"
	"github.com/sirupsen/logrus"
)

type fldModel struct {
	c libatm.Map[string]
}

func newFields() *fldModel {
	return &fldModel{
		c: libatm.NewMapAny[string](),
	}
}

func (o *fldModel) Add(key string, val interface{}) Fields {
	o.c.Store(key, val)
	return o
}

func (o *fldModel) Clean() {
	o.Walk(func(key string, _ interface{}) bool {
		o.c.Delete(key)
		return true
	})
}

func (o *fldModel) Delete(key string) Fields {
	o.c.Delete(key)
	return o
}

func (o *fldModel) Get(key string) (val interface{}, ok bool) {
	return o.c.Load(key)
}

func (o *fldModel) Store(key string, val interface{}) {
	o.c.Store(key, val)
}

func (o *fldModel) LoadOrStore(key string, val interface{}) (actual interface{}, loaded bool) {
	return o.c.LoadOrStore(key, val)
}

func (o *fldModel) LoadAndDelete(key string) (val interface{}, loaded bool) {
	return o.c.LoadAndDelete(key)
}

// Logrus converts the Fields instance to logrus.Fields. A new map is created
// on each call so the result can be handed to logrus without aliasing the
// internal store.
func (o *fldModel) Logrus() logrus.Fields {
	res := make(logrus.Fields)

	if o == nil || o.c == nil {
		return res
	}

	o.c.Range(func(key string, val interface{}) bool {
		res[key] = val
		return true
	})

	return res
}

func (o *fldModel) Map(fct func(key string, val interface{}) interface{}) Fields {
	o.c.Range(func(key string, val interface{}) bool {
		o.c.Store(key, fct(key, val))
		return true
	})

	return o
}

func (o *fldModel) Merge(f Fields) Fields {
	if f == nil {
		return o
	}

	f.Walk(func(key string, val interface{}) bool {
		o.c.Store(key, val)
		return true
	})

	return o
}

func (o *fldModel) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Logrus())
}

func (o *fldModel) UnmarshalJSON(bytes []byte) error {
	l := make(logrus.Fields)

	if e := json.Unmarshal(bytes, &l); e != nil {
		return e
	}

	for k, v := range l {
		o.c.Store(k, v)
	}

	return nil
}

func (o *fldModel) Clone() Fields {
	n := newFields()
	o.c.Range(func(key string, val interface{}) bool {
		n.c.Store(key, val)
		return true
	})
	return n
}
