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

// Package connector resolves a URL and establishes the socket — plain or
// TLS-wrapped — that the transport dispatcher frames messages over.
package connector

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	endpoint "github.com/sabouaram/meshbus/endpoint"
	rterr "github.com/sabouaram/meshbus/rterr"
	tlsconf "github.com/sabouaram/meshbus/tlsconf"
)

// Options configures a single Connect call.
type Options struct {
	// UseSSL, when true, performs a TLS handshake with TLSContext after
	// the TCP connect succeeds.
	UseSSL bool
	// TLSContext supplies the handshake's *tls.Config; required when
	// UseSSL is true.
	TLSContext *tlsconf.Context
	// IPv6Policy governs findFirstValidIfAny's candidate preference.
	IPv6Policy endpoint.IPv6Policy
	// HandshakeSide selects client or server TLS config construction.
	HandshakeSide tlsconf.HandshakeSide
	// Resolver overrides the default DNS resolver; nil uses
	// endpoint.DefaultResolver.
	Resolver endpoint.Resolver
	// DialTimeout bounds the TCP connect step; zero means no timeout
	// beyond ctx's own deadline.
	DialTimeout time.Duration
}

// Connect resolves rawURL to a single address, dials it, and optionally
// performs a TLS handshake, returning the established net.Conn. Only the
// single entry chosen by endpoint.ResolveUrl is dialed; other candidate
// addresses are not tried.
func Connect(ctx context.Context, rawURL string, opts Options) (net.Conn, rterr.Error) {
	entry, err := endpoint.ResolveUrl(ctx, opts.Resolver, rawURL, opts.IPv6Policy)
	if err != nil {
		return nil, err
	}
	if entry.IP == nil {
		return nil, rterr.New(rterr.HostNotFound)
	}

	d := net.Dialer{Timeout: opts.DialTimeout}
	conn, derr := d.DialContext(ctx, "tcp", entry.Addr())
	if derr != nil {
		if ctx.Err() != nil {
			return nil, rterr.New(rterr.Cancelled, derr)
		}
		return nil, rterr.New(rterr.ConnectionRefused, derr)
	}

	if !opts.UseSSL {
		return conn, nil
	}

	if opts.TLSContext == nil {
		conn.Close()
		return nil, rterr.New(rterr.HandshakeFailed)
	}

	host, _, herr := net.SplitHostPort(entry.Addr())
	if herr != nil {
		host = entry.IP.String()
	}

	cfg, berr := opts.TLSContext.Build(opts.HandshakeSide, host)
	if berr != nil {
		conn.Close()
		return nil, berr
	}

	tlsConn, herr2 := clientHandshake(ctx, conn, cfg)
	if herr2 != nil {
		conn.Close()
		return nil, rterr.New(rterr.HandshakeFailed, herr2)
	}

	return tlsConn, nil
}

// Accept wraps an already-accepted conn with the server side of a TLS
// handshake using tlsCtx, the counterpart to Connect's client-side dial.
// A nil tlsCtx is rejected rather than silently handing back a plaintext
// conn a caller might mistake for an encrypted one.
func Accept(ctx context.Context, conn net.Conn, tlsCtx *tlsconf.Context) (net.Conn, rterr.Error) {
	if tlsCtx == nil {
		conn.Close()
		return nil, rterr.New(rterr.HandshakeFailed)
	}

	cfg, berr := tlsCtx.Build(tlsconf.Server, "")
	if berr != nil {
		conn.Close()
		return nil, berr
	}

	tlsConn, herr := serverHandshake(ctx, conn, cfg)
	if herr != nil {
		conn.Close()
		return nil, rterr.New(rterr.HandshakeFailed, herr)
	}

	return tlsConn, nil
}

func clientHandshake(ctx context.Context, conn net.Conn, cfg *tls.Config) (*tls.Conn, error) {
	tc := tls.Client(conn, cfg)
	if err := tc.HandshakeContext(ctx); err != nil {
		return nil, err
	}
	return tc, nil
}

func serverHandshake(ctx context.Context, conn net.Conn, cfg *tls.Config) (*tls.Conn, error) {
	tc := tls.Server(conn, cfg)
	if err := tc.HandshakeContext(ctx); err != nil {
		return nil, err
	}
	return tc, nil
}
