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

package rtsession

import (
	"context"
	"net"
	"sync"
	"time"

	connector "github.com/sabouaram/meshbus/connector"
	directory "github.com/sabouaram/meshbus/directory"
	endpoint "github.com/sabouaram/meshbus/endpoint"
	objmeta "github.com/sabouaram/meshbus/objmeta"
	rterr "github.com/sabouaram/meshbus/rterr"
	tlsconf "github.com/sabouaram/meshbus/tlsconf"
	transport "github.com/sabouaram/meshbus/transport"
)

// ObjectId addresses one locally-registered object in a Session's arena.
// It is opaque to callers beyond equality: construct one with NewObjectId
// and route through Session.RegisterService rather than inspecting its
// fields.
type ObjectId struct {
	Service uint32
	Object  uint32
}

// NewObjectId packs a (serviceID, objectID) pair into the opaque id
// transport's routes are keyed by.
func NewObjectId(serviceID, objectID uint32) ObjectId {
	return ObjectId{Service: serviceID, Object: objectID}
}

// Options configures a Session. The zero value is valid: no TLS, no
// dial timeout, system resolver, and an inlineExecutor running callbacks
// synchronously on whatever goroutine delivers them.
type Options struct {
	// DirectoryURL addresses the service directory's Registry this
	// Session resolves names against. Empty means this Session never
	// calls Resolve/Connect-by-name — it may still Listen and serve.
	DirectoryURL string
	// TLS supplies the handshake configuration when SSLPolicy allows or
	// requires an encrypted connection.
	TLS *tlsconf.Context
	// IPv6Policy governs address-family preference during resolution.
	IPv6Policy endpoint.IPv6Policy
	// SSLPolicy reconciles a process-wide TLS preference against each
	// URL's own declared scheme.
	SSLPolicy endpoint.SSLPolicy
	// Resolver overrides DNS lookup; nil uses endpoint's default.
	Resolver endpoint.Resolver
	// DialTimeout bounds each outbound connect.
	DialTimeout time.Duration
	// Executor runs the callbacks passed to OnServiceAdded.
	// Nil falls back to a synchronous inlineExecutor.
	Executor Executor
	// Log receives dispatcher-level events from every Socket this
	// Session creates; nil is silent.
	Log transport.Log
}

// Session ties a directory client, the connector and transport dispatcher
// into one peer: it resolves names to URLs, dials them, and hands back a
// ready transport.Socket, while Listen hosts an arena of locally-registered
// objects for inbound peers to call.
type Session struct {
	opts     Options
	executor Executor

	dirSock *transport.Socket
	dir     *directory.Client

	mu      sync.Mutex
	arena   map[ObjectId]*objmeta.MetaObject
	sockets []*transport.Socket
}

// NewSession dials opts.DirectoryURL (if non-empty) and returns a Session
// ready to Resolve/Connect/Listen.
func NewSession(ctx context.Context, opts Options) (*Session, rterr.Error) {
	exec := opts.Executor
	if exec == nil {
		exec = inlineExecutor{}
	}

	s := &Session{
		opts:     opts,
		executor: exec,
		arena:    make(map[ObjectId]*objmeta.MetaObject),
	}

	if opts.DirectoryURL != "" {
		sock, err := s.dial(ctx, opts.DirectoryURL)
		if err != nil {
			return nil, err
		}
		s.dirSock = sock
		s.dir = directory.NewClient(sock)
	}

	return s, nil
}

// Resolve looks up name against the configured directory, returning the
// URL a service with that name is reachable at.
func (s *Session) Resolve(ctx context.Context, name string) (string, rterr.Error) {
	if s.dir == nil {
		return "", rterr.New(rterr.Disconnected)
	}
	return s.dir.Resolve(ctx, name)
}

// OnServiceAdded subscribes to the directory's serviceAdded notifications;
// the callback runs on the Session's Executor.
func (s *Session) OnServiceAdded(callback func(name string)) (objmeta.SubscriberID, rterr.Error) {
	if s.dir == nil {
		return 0, rterr.New(rterr.Disconnected)
	}
	return s.dir.OnServiceAdded(func(name string) {
		s.executor.Post(func() { callback(name) })
	}), nil
}

// Connect resolves name to a URL and dials it, returning a ready,
// already-serving transport.Socket.
func (s *Session) Connect(ctx context.Context, name string) (*transport.Socket, rterr.Error) {
	url, err := s.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.dial(ctx, url)
}

// RegisterService publishes meta at (serviceID, objectID) in this
// Session's object arena: every Socket this Session has already created,
// and every one Listen accepts from here on, routes inbound Call/Post/
// Event frames for that id into meta.
func (s *Session) RegisterService(serviceID, objectID uint32, meta *objmeta.MetaObject) ObjectId {
	id := NewObjectId(serviceID, objectID)

	s.mu.Lock()
	s.arena[id] = meta
	sockets := append([]*transport.Socket(nil), s.sockets...)
	s.mu.Unlock()

	for _, sock := range sockets {
		sock.Register(serviceID, objectID, meta)
	}
	return id
}

// UnregisterService removes id from the arena and every tracked Socket.
func (s *Session) UnregisterService(id ObjectId) {
	s.mu.Lock()
	delete(s.arena, id)
	sockets := append([]*transport.Socket(nil), s.sockets...)
	s.mu.Unlock()

	for _, sock := range sockets {
		sock.Unregister(id.Service, id.Object)
	}
}

// Listen accepts inbound connections on addr, dispatching each through a
// fresh transport.Socket pre-loaded with every service this Session has
// registered. It runs until ctx is cancelled or the listener fails.
func (s *Session) Listen(ctx context.Context, addr string) (net.Listener, rterr.Error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, rterr.New(rterr.BadAddress, err)
	}

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	go s.acceptLoop(ctx, ln)
	return ln, nil
}

func (s *Session) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}

		go s.handleAccepted(ctx, conn)
	}
}

// handleAccepted completes the server-side TLS handshake (when Options.TLS
// is configured) off the accept loop's own goroutine, so one slow or stalled
// handshake never delays accepting the next connection, then adopts the
// conn and starts serving it.
func (s *Session) handleAccepted(ctx context.Context, conn net.Conn) {
	if s.opts.TLS != nil {
		tlsConn, terr := connector.Accept(ctx, conn, s.opts.TLS)
		if terr != nil {
			return
		}
		conn = tlsConn
	}

	sock := s.adopt(conn)
	_ = sock.Serve(ctx)
}

// adopt wraps conn in a Socket pre-registered with every arena entry and
// tracks it for future RegisterService/UnregisterService fan-out.
func (s *Session) adopt(conn net.Conn) *transport.Socket {
	sock := transport.NewSocket(conn, s.opts.Log)

	s.mu.Lock()
	for id, meta := range s.arena {
		sock.Register(id.Service, id.Object, meta)
	}
	s.sockets = append(s.sockets, sock)
	s.mu.Unlock()

	return sock
}

// dial resolves rawURL, connects (optionally over TLS per SSLPolicy), and
// returns an already-serving Socket adopted into this Session's arena.
func (s *Session) dial(ctx context.Context, rawURL string) (*transport.Socket, rterr.Error) {
	u, err := endpoint.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	useSSL, err := endpoint.ApplySSLPolicy(u, s.opts.SSLPolicy)
	if err != nil {
		return nil, err
	}

	conn, err := connector.Connect(ctx, rawURL, connector.Options{
		UseSSL:        useSSL,
		TLSContext:    s.opts.TLS,
		IPv6Policy:    s.opts.IPv6Policy,
		HandshakeSide: tlsconf.Client,
		Resolver:      s.opts.Resolver,
		DialTimeout:   s.opts.DialTimeout,
	})
	if err != nil {
		return nil, err
	}

	sock := s.adopt(conn)
	go func() { _ = sock.Serve(ctx) }()
	return sock, nil
}

// Close tears down the directory connection and every Socket this Session
// has dialed or accepted.
func (s *Session) Close() error {
	s.mu.Lock()
	sockets := append([]*transport.Socket(nil), s.sockets...)
	s.mu.Unlock()

	var first error
	for _, sock := range sockets {
		if e := sock.Close(); e != nil && first == nil {
			first = e
		}
	}
	if s.dirSock != nil {
		if e := s.dirSock.Close(); e != nil && first == nil {
			first = e
		}
	}
	return first
}
