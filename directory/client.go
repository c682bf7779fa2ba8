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

package directory

import (
	"context"

	dynval "github.com/sabouaram/meshbus/dynval"
	objmeta "github.com/sabouaram/meshbus/objmeta"
	rterr "github.com/sabouaram/meshbus/rterr"
	transport "github.com/sabouaram/meshbus/transport"
)

// Client is a typed proxy for a remote Registry reached over sock: a
// thin wrapper that turns resolve's raw Call/Reply exchange into a plain
// (string, error) return, the object-pointer-to-object conversion path
// collapsed to the one operation this service exposes. Subscribing to
// serviceAdded registers a local shadow MetaObject on sock under the
// directory's well-known route, so the remote Registry's Event frames
// land in an ordinary objmeta.SignalInfo like any other signal.
type Client struct {
	sock  *transport.Socket
	meta  *objmeta.MetaObject
	added *objmeta.SignalInfo
}

// NewClient wraps sock with the directory's well-known routing ids. sock
// must already have its Serve loop running for Resolve/serviceAdded
// delivery to work.
func NewClient(sock *transport.Socket) *Client {
	added := &objmeta.SignalInfo{ID: objmeta.SignalID(actionServiceAdded), Name: "serviceAdded"}
	meta := objmeta.NewMetaObject("DirectoryClient")
	meta.AddSignal(added)

	sock.Register(ServiceID, ObjectID, meta)

	return &Client{sock: sock, meta: meta, added: added}
}

// Resolve asks the remote Registry for name's registered address.
func (c *Client) Resolve(ctx context.Context, name string) (string, rterr.Error) {
	result, err := c.sock.Call(ctx, ServiceID, ObjectID, actionResolve, []dynval.Value{
		dynval.NewOwning(dynval.StringType(), name),
	})
	if err != nil {
		return "", err
	}
	url, serr := result.ToString()
	if serr != nil {
		return "", serr
	}
	return url, nil
}

// OnServiceAdded subscribes callback to every serviceAdded notification
// the remote Registry emits, returning a SubscriberID usable with
// StopServiceAdded.
func (c *Client) OnServiceAdded(callback func(name string)) objmeta.SubscriberID {
	return c.added.Connect(func(args []dynval.Value) {
		if len(args) == 0 {
			return
		}
		name, err := args[0].ToString()
		if err != nil {
			return
		}
		callback(name)
	})
}

// StopServiceAdded cancels a subscription returned by OnServiceAdded.
func (c *Client) StopServiceAdded(id objmeta.SubscriberID) {
	c.added.Disconnect(id)
}
