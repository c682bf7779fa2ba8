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

package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	loglvl "github.com/sabouaram/meshbus/logger/level"
	logfld "github.com/sabouaram/meshbus/logger/fields"

	dynval "github.com/sabouaram/meshbus/dynval"
	objmeta "github.com/sabouaram/meshbus/objmeta"
	rterr "github.com/sabouaram/meshbus/rterr"
)

// routeKey identifies one registered object on this socket.
type routeKey struct {
	service uint32
	object  uint32
}

// pendingCall is the state a Call left behind while awaiting its
// correlated Reply or Error frame; out-of-order replies are supported
// because lookup is by MessageID, not arrival order.
type pendingCall struct {
	body []byte
	err  rterr.Error
	done chan struct{}
}

// Log receives one dispatcher-level event; nil is a valid, silent Log.
type Log func(lvl loglvl.Level, message string, fields logfld.Fields)

// Socket frames and dispatches messages over one net.Conn. A single
// Socket is safe for concurrent Call/Post/Emit from multiple goroutines;
// reads are served by one internal loop goroutine started by Serve.
type Socket struct {
	conn net.Conn
	r    *bufio.Reader

	wmu sync.Mutex

	nextID  uint32
	pending sync.Map // uint32 messageID -> *pendingCall
	routes  sync.Map // routeKey -> *objmeta.MetaObject

	log Log

	closeOnce sync.Once
	closed    chan struct{}
}

// NewSocket wraps an established connector.Connect connection. Serve must
// be called to start the read loop before Call can observe a reply.
func NewSocket(conn net.Conn, log Log) *Socket {
	return &Socket{
		conn:   conn,
		r:      bufio.NewReader(conn),
		log:    log,
		closed: make(chan struct{}),
	}
}

// Register binds a locally-implemented object's MetaObject to
// (serviceID, objectID) so incoming Call/Post/Event frames addressed to
// it are dispatched into its method or signal table.
func (s *Socket) Register(serviceID, objectID uint32, meta *objmeta.MetaObject) {
	s.routes.Store(routeKey{serviceID, objectID}, meta)
}

// Unregister removes a previously Register'd object.
func (s *Socket) Unregister(serviceID, objectID uint32) {
	s.routes.Delete(routeKey{serviceID, objectID})
}

// Close shuts down the underlying connection and releases any Call still
// waiting on a reply with Disconnected.
func (s *Socket) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		err = s.conn.Close()
		s.pending.Range(func(key, value interface{}) bool {
			pc := value.(*pendingCall)
			pc.err = rterr.New(rterr.Disconnected)
			close(pc.done)
			s.pending.Delete(key)
			return true
		})
	})
	return err
}

// Serve runs the read loop until the connection closes or a framing error
// desynchronizes the stream. It returns the terminal error, or nil on a
// clean peer-initiated close. Call it from its own goroutine.
func (s *Socket) Serve(ctx context.Context) error {
	for {
		h, body, err := ReadFrame(s.r)
		if err != nil {
			s.Close()
			if err == io.EOF {
				return nil
			}
			s.logf(loglvl.ErrorLevel, "transport: frame read failed", logfld.Fields{"error": err.Error()})
			return err
		}

		select {
		case <-ctx.Done():
			s.Close()
			return ctx.Err()
		default:
		}

		s.dispatchIncoming(h, body)
	}
}

func (s *Socket) dispatchIncoming(h Header, body []byte) {
	switch h.Type {
	case Reply, Error:
		s.resolvePending(h, body)
	case Call, Post:
		s.serveCall(h, body)
	case Event:
		s.serveEvent(h, body)
	case Capability, Cancel:
		s.logf(loglvl.DebugLevel, "transport: unhandled control frame", logfld.Fields{"type": h.Type.String()})
	default:
		s.replyError(h, rterr.New(rterr.ProtocolError))
	}
}

func (s *Socket) resolvePending(h Header, body []byte) {
	v, ok := s.pending.LoadAndDelete(h.MessageID)
	if !ok {
		return
	}
	pc := v.(*pendingCall)
	if h.Type == Error {
		pc.err = decodeErrorPayload(body)
	} else {
		pc.body = body
	}
	close(pc.done)
}

func (s *Socket) serveCall(h Header, body []byte) {
	meta, ok := s.routes.Load(routeKey{h.ServiceID, h.ObjectID})
	if !ok {
		if h.Type == Call {
			s.replyError(h, rterr.New(rterr.NotFound))
		}
		return
	}

	mo := meta.(*objmeta.MetaObject)
	m, merr := mo.Method(objmeta.MethodID(h.ActionID))
	if merr != nil {
		if h.Type == Call {
			s.replyError(h, merr)
		}
		return
	}

	args, derr := DecodePayload(body)
	if derr != nil {
		if h.Type == Call {
			s.replyError(h, derr)
		}
		return
	}

	result, cerr := invokeRecovered(m, args)

	if h.Type == Post {
		if cerr != nil {
			s.logf(loglvl.WarnLevel, "transport: post method returned an error", logfld.Fields{"method": m.Name, "error": cerr.Error()})
		}
		return
	}

	if cerr != nil {
		s.replyError(h, toRtErr(cerr))
		return
	}

	payload, perr := EncodePayload([]dynval.Value{result})
	if perr != nil {
		s.replyError(h, perr)
		return
	}
	s.writeFrame(Header{MessageID: h.MessageID, ServiceID: h.ServiceID, ObjectID: h.ObjectID, ActionID: h.ActionID, Type: Reply}, payload)
}

func (s *Socket) serveEvent(h Header, body []byte) {
	meta, ok := s.routes.Load(routeKey{h.ServiceID, h.ObjectID})
	if !ok {
		return
	}
	mo := meta.(*objmeta.MetaObject)
	sig, serr := mo.Signal(objmeta.SignalID(h.ActionID))
	if serr != nil {
		return
	}
	args, derr := DecodePayload(body)
	if derr != nil {
		s.logf(loglvl.WarnLevel, "transport: malformed event payload", logfld.Fields{"signal": sig.Name})
		return
	}
	sig.Emit(args)
}

func (s *Socket) replyError(h Header, e rterr.Error) {
	s.writeFrame(Header{MessageID: h.MessageID, ServiceID: h.ServiceID, ObjectID: h.ObjectID, ActionID: h.ActionID, Type: Error},
		encodeErrorPayload(e))
}

func (s *Socket) writeFrame(h Header, payload []byte) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if err := WriteFrame(s.conn, h, payload); err != nil {
		s.logf(loglvl.ErrorLevel, "transport: frame write failed", logfld.Fields{"error": err.Error()})
	}
}

// Call sends a Call frame and blocks until its correlated Reply/Error
// arrives, ctx is cancelled, or the socket closes.
func (s *Socket) Call(ctx context.Context, serviceID, objectID, actionID uint32, args []dynval.Value) (dynval.Value, rterr.Error) {
	return s.send(ctx, Call, serviceID, objectID, actionID, args, true)
}

// Post sends a Post frame: same routing as Call, but fire-and-forget —
// it returns as soon as the frame is written, never waiting on a reply.
func (s *Socket) Post(ctx context.Context, serviceID, objectID, actionID uint32, args []dynval.Value) rterr.Error {
	_, err := s.send(ctx, Post, serviceID, objectID, actionID, args, false)
	return err
}

// Emit sends an Event frame carrying a signal's current arguments to the
// peer; it is the wire counterpart of a local objmeta.SignalInfo.Emit.
func (s *Socket) Emit(ctx context.Context, serviceID, objectID, signalID uint32, args []dynval.Value) rterr.Error {
	_, err := s.send(ctx, Event, serviceID, objectID, signalID, args, false)
	return err
}

func (s *Socket) send(ctx context.Context, typ MessageType, serviceID, objectID, actionID uint32, args []dynval.Value, wantReply bool) (dynval.Value, rterr.Error) {
	payload, perr := EncodePayload(args)
	if perr != nil {
		return dynval.Value{}, perr
	}

	id := atomic.AddUint32(&s.nextID, 1)
	h := Header{MessageID: id, ServiceID: serviceID, ObjectID: objectID, ActionID: actionID, Type: typ}

	if !wantReply {
		s.writeFrame(h, payload)
		return dynval.Value{}, nil
	}

	pc := &pendingCall{done: make(chan struct{})}
	s.pending.Store(id, pc)

	s.writeFrame(h, payload)

	select {
	case <-pc.done:
	case <-ctx.Done():
		s.pending.Delete(id)
		return dynval.Value{}, rterr.New(rterr.Cancelled, ctx.Err())
	case <-s.closed:
		return dynval.Value{}, rterr.New(rterr.Disconnected)
	}

	if pc.err != nil {
		return dynval.Value{}, pc.err
	}

	result, derr := DecodePayload(pc.body)
	if derr != nil {
		return dynval.Value{}, derr
	}
	if len(result) == 0 {
		return dynval.Empty(), nil
	}
	return result[0], nil
}

func (s *Socket) logf(lvl loglvl.Level, msg string, f logfld.Fields) {
	if s.log != nil {
		s.log(lvl, msg, f)
	}
}

// invokeRecovered calls m.Call, turning a panic inside the bound Go
// function into a regular error instead of crashing the read loop —
// mirroring objmeta.SignalInfo's own panic-recovery posture for
// subscriber callbacks.
func invokeRecovered(m *objmeta.MethodInfo, args []dynval.Value) (result dynval.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("method %s panicked: %v", m.Name, r)
		}
	}()
	return m.Call(args)
}

func toRtErr(err error) rterr.Error {
	if e, ok := err.(rterr.Error); ok {
		return e
	}
	return rterr.New(rterr.ProtocolError, err)
}
