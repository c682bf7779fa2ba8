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

// Package objmeta holds the per-object meta-description: the method, signal
// and property tables a service implementation publishes, looked up by
// numeric id on the fast dispatch path and by name/signature for discovery
// and dynamic binding.
package objmeta

import (
	"fmt"

	dynval "github.com/sabouaram/meshbus/dynval"
	rterr "github.com/sabouaram/meshbus/rterr"
)

// MetaObject is the ObjectMeta payload attached to an Object kind
// TypeDescriptor via SetMeta. It is built once at registration time and is
// safe for concurrent read access afterward; Connect/Disconnect/Emit/Set on
// the contained signals and properties remain individually synchronized.
type MetaObject struct {
	TypeName string

	methods    map[MethodID]*MethodInfo
	methodByNm map[string]*MethodInfo

	signals    map[SignalID]*SignalInfo
	signalByNm map[string]*SignalInfo

	properties map[PropertyID]*PropertyInfo
	propByNm   map[string]*PropertyInfo
}

// NewMetaObject creates an empty meta-description for a service type named
// typeName, ready to receive AddMethod/AddSignal/AddProperty calls.
func NewMetaObject(typeName string) *MetaObject {
	return &MetaObject{
		TypeName:   typeName,
		methods:    make(map[MethodID]*MethodInfo),
		methodByNm: make(map[string]*MethodInfo),
		signals:    make(map[SignalID]*SignalInfo),
		signalByNm: make(map[string]*SignalInfo),
		properties: make(map[PropertyID]*PropertyInfo),
		propByNm:   make(map[string]*PropertyInfo),
	}
}

// AddMethod registers m under its ID and Name. A duplicate ID is a
// programming error in the service implementation and panics, matching the
// teacher's fail-fast posture for irrecoverable registration mistakes. A
// duplicate Name does not panic: the later method replaces the earlier one
// in the by-name index, and both stay reachable by ID and signature.
func (o *MetaObject) AddMethod(m MethodInfo) *MetaObject {
	if _, dup := o.methods[m.ID]; dup {
		panic(fmt.Sprintf("objmeta: duplicate method id %d on %s", m.ID, o.TypeName))
	}
	mm := m
	o.methods[m.ID] = &mm
	o.methodByNm[m.Name] = &mm
	return o
}

// AddSignal registers s under its ID and Name.
func (o *MetaObject) AddSignal(s *SignalInfo) *MetaObject {
	if _, dup := o.signals[s.ID]; dup {
		panic(fmt.Sprintf("objmeta: duplicate signal id %d on %s", s.ID, o.TypeName))
	}
	o.signals[s.ID] = s
	o.signalByNm[s.Name] = s
	return o
}

// AddProperty registers p under its ID and Name.
func (o *MetaObject) AddProperty(p *PropertyInfo) *MetaObject {
	if _, dup := o.properties[p.ID]; dup {
		panic(fmt.Sprintf("objmeta: duplicate property id %d on %s", p.ID, o.TypeName))
	}
	o.properties[p.ID] = p
	o.propByNm[p.Name] = p
	return o
}

// Method looks up a method by id, the fast path used by the dispatcher once
// a call frame has resolved a numeric method id.
func (o *MetaObject) Method(id MethodID) (*MethodInfo, rterr.Error) {
	if o == nil {
		return nil, rterr.New(rterr.NotFound)
	}
	if m, ok := o.methods[id]; ok {
		return m, nil
	}
	return nil, rterr.New(rterr.NotFound)
}

// MethodByName looks up a method by name, used during discovery and by
// clients binding a proxy before they know numeric ids.
func (o *MetaObject) MethodByName(name string) (*MethodInfo, rterr.Error) {
	if o == nil {
		return nil, rterr.New(rterr.NotFound)
	}
	if m, ok := o.methodByNm[name]; ok {
		return m, nil
	}
	return nil, rterr.New(rterr.NotFound)
}

// MethodBySignature looks up a method by its exact Signature() string, used
// when a caller has an overload-qualified reference.
func (o *MetaObject) MethodBySignature(sig string) (*MethodInfo, rterr.Error) {
	if o == nil {
		return nil, rterr.New(rterr.NotFound)
	}
	for _, m := range o.methods {
		if m.Signature() == sig {
			return m, nil
		}
	}
	return nil, rterr.New(rterr.NotFound)
}

// Signal looks up a signal by id.
func (o *MetaObject) Signal(id SignalID) (*SignalInfo, rterr.Error) {
	if o == nil {
		return nil, rterr.New(rterr.NotFound)
	}
	if s, ok := o.signals[id]; ok {
		return s, nil
	}
	return nil, rterr.New(rterr.NotFound)
}

// SignalByName looks up a signal by name.
func (o *MetaObject) SignalByName(name string) (*SignalInfo, rterr.Error) {
	if o == nil {
		return nil, rterr.New(rterr.NotFound)
	}
	if s, ok := o.signalByNm[name]; ok {
		return s, nil
	}
	return nil, rterr.New(rterr.NotFound)
}

// Property looks up a property by id.
func (o *MetaObject) Property(id PropertyID) (*PropertyInfo, rterr.Error) {
	if o == nil {
		return nil, rterr.New(rterr.NotFound)
	}
	if p, ok := o.properties[id]; ok {
		return p, nil
	}
	return nil, rterr.New(rterr.NotFound)
}

// PropertyByName looks up a property by name.
func (o *MetaObject) PropertyByName(name string) (*PropertyInfo, rterr.Error) {
	if o == nil {
		return nil, rterr.New(rterr.NotFound)
	}
	if p, ok := o.propByNm[name]; ok {
		return p, nil
	}
	return nil, rterr.New(rterr.NotFound)
}

// Methods, Signals and Properties return snapshots of the registered tables
// for introspection (service directory listings, generated documentation).
func (o *MetaObject) Methods() []*MethodInfo {
	out := make([]*MethodInfo, 0, len(o.methods))
	for _, m := range o.methods {
		out = append(out, m)
	}
	return out
}

func (o *MetaObject) Signals() []*SignalInfo {
	out := make([]*SignalInfo, 0, len(o.signals))
	for _, s := range o.signals {
		out = append(out, s)
	}
	return out
}

func (o *MetaObject) Properties() []*PropertyInfo {
	out := make([]*PropertyInfo, 0, len(o.properties))
	for _, p := range o.properties {
		out = append(out, p)
	}
	return out
}

// Bind attaches o to desc's opaque meta slot and returns desc for chaining.
// Call once, at service registration time.
func Bind(desc *dynval.TypeDescriptor, o *MetaObject) *dynval.TypeDescriptor {
	desc.SetMeta(o)
	return desc
}

// Of retrieves the MetaObject previously attached to desc via Bind, or nil
// if desc carries no meta-description or isn't an Object kind.
func Of(desc *dynval.TypeDescriptor) *MetaObject {
	if desc == nil || desc.Kind() != dynval.Object {
		return nil
	}
	if m, ok := desc.Meta().(*MetaObject); ok {
		return m
	}
	return nil
}
