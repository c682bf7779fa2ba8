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

// Package directory implements the well-known service directory: a single
// object exposing one method, resolve(name) -> url, and one signal,
// serviceAdded(name), that every session peer binds to before resolving
// any other service by name.
package directory

import (
	"context"
	"sync"

	dynval "github.com/sabouaram/meshbus/dynval"
	objmeta "github.com/sabouaram/meshbus/objmeta"
	rterr "github.com/sabouaram/meshbus/rterr"
	transport "github.com/sabouaram/meshbus/transport"
)

// ServiceID and ObjectID are the well-known routing ids every session
// peer uses to reach the directory object, before any other service has
// been resolved by name.
const (
	ServiceID uint32 = 1
	ObjectID  uint32 = 1
)

// Well-known action ids on the directory object.
const (
	actionResolve      uint32 = 1
	actionServiceAdded uint32 = 1 // signal id namespace, distinct from method ids
)

// Registry is the directory service's implementation: an in-memory
// name-to-address table, guarded by a mutex the way the reference tree
// guards its own small shared maps, with one signal fired on every new
// registration.
type Registry struct {
	mu       sync.RWMutex
	services map[string]string
	peers    []*transport.Socket

	meta  *objmeta.MetaObject
	added *objmeta.SignalInfo
}

// NewRegistry builds an empty Registry and its backing MetaObject, ready
// to Attach to one or more transport.Socket instances.
func NewRegistry() *Registry {
	r := &Registry{
		services: make(map[string]string),
		added:    &objmeta.SignalInfo{ID: objmeta.SignalID(actionServiceAdded), Name: "serviceAdded"},
	}

	r.meta = objmeta.NewMetaObject("Directory")
	r.meta.AddMethod(objmeta.MethodInfo{
		ID:         objmeta.MethodID(actionResolve),
		Name:       "resolve",
		ParamTypes: []*dynval.TypeDescriptor{dynval.StringType()},
		ReturnType: dynval.StringType(),
		Call: func(args []dynval.Value) (dynval.Value, error) {
			if len(args) == 0 {
				return dynval.Value{}, rterr.New(rterr.ProtocolError)
			}
			name, err := args[0].ToString()
			if err != nil {
				return dynval.Value{}, err
			}
			url, rerr := r.Resolve(name)
			if rerr != nil {
				return dynval.Value{}, rerr
			}
			return dynval.NewOwning(dynval.StringType(), url), nil
		},
	})
	r.meta.AddSignal(r.added)

	return r
}

// Announce registers name at url, replacing any prior registration, and
// fires serviceAdded(name) to every locally connected in-process
// subscriber and pushes an Event frame to every Socket this Registry has
// been Attach'd to, so a remote directory.Client's OnServiceAdded
// subscribers observe it too.
func (r *Registry) Announce(name, url string) {
	r.mu.Lock()
	r.services[name] = url
	peers := append([]*transport.Socket(nil), r.peers...)
	r.mu.Unlock()

	args := []dynval.Value{dynval.NewOwning(dynval.StringType(), name)}
	r.added.Emit(args)

	for _, p := range peers {
		_ = p.Emit(context.Background(), ServiceID, ObjectID, actionServiceAdded, args)
	}
}

// Resolve looks up name's registered address.
func (r *Registry) Resolve(name string) (string, rterr.Error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	url, ok := r.services[name]
	if !ok {
		return "", rterr.New(rterr.NotFound)
	}
	return url, nil
}

// Attach binds this Registry's MetaObject to the directory's well-known
// (ServiceID, ObjectID) route on sock, so incoming Call frames reach
// resolve(), and records sock so future Announce calls also push
// serviceAdded over the wire to whatever directory.Client sits on the
// other end.
func (r *Registry) Attach(sock *transport.Socket) {
	sock.Register(ServiceID, ObjectID, r.meta)

	r.mu.Lock()
	r.peers = append(r.peers, sock)
	r.mu.Unlock()
}

// Meta exposes the backing MetaObject for local, same-process binding
// (objmeta.Bind against a service descriptor) without going through the
// wire at all.
func (r *Registry) Meta() *objmeta.MetaObject {
	return r.meta
}
