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

// Package tlsconf builds the *tls.Config the connector hands to a TLS
// handshake, on top of the root/client CA, certificate pair and
// cipher/curve/version policy carried by a certificates.TLSConfig.
package tlsconf

import (
	"crypto/tls"

	libtls "github.com/sabouaram/meshbus/certificates"
	rterr "github.com/sabouaram/meshbus/rterr"
)

// HandshakeSide says which half of the TLS handshake the connector is
// about to perform.
type HandshakeSide uint8

const (
	// Client builds a config for the dialing side: a server name, an
	// optional client certificate pair, and a root CA pool to verify the
	// remote server.
	Client HandshakeSide = iota
	// Server builds a config for the accepting side: the server's own
	// certificate pair and, depending on ClientAuth, a client CA pool to
	// verify incoming connections.
	Server
)

// Context wraps a certificates.TLSConfig and resolves it into the
// *tls.Config appropriate for one side of a handshake.
type Context struct {
	tls libtls.TLSConfig
}

// New wraps an existing certificates.TLSConfig.
func New(cfg libtls.TLSConfig) *Context {
	return &Context{tls: cfg}
}

// Default builds an empty Context backed by a fresh, unconfigured
// certificates.TLSConfig (no CAs, no certificate pairs, library default
// cipher/curve/version policy) — the starting point rtconfig.Config
// customizes via its own ClientAuth/RootCA/Certificate settings.
func Default() *Context {
	return &Context{tls: libtls.New()}
}

// Config returns the underlying certificates.TLSConfig for callers that
// need to add root CAs, client CAs or a certificate pair before dialing.
func (c *Context) Config() libtls.TLSConfig {
	return c.tls
}

// Build resolves a *tls.Config for side, with serverName set for SNI/
// verification on the Client side. A nil Context or underlying TLSConfig
// means "no TLS configured"; Build rejects that explicitly rather than
// silently handing back an empty *tls.Config a caller might mistake for
// an insecure-by-design default.
func (c *Context) Build(side HandshakeSide, serverName string) (*tls.Config, rterr.Error) {
	if c == nil || c.tls == nil {
		return nil, rterr.New(rterr.HandshakeFailed)
	}

	cfg := c.tls.TlsConfig(serverName)
	if cfg == nil {
		return nil, rterr.New(rterr.HandshakeFailed)
	}

	switch side {
	case Server:
		if len(c.tls.GetCertificatePair()) == 0 {
			return nil, rterr.New(rterr.HandshakeFailed)
		}
	case Client:
		// serverName may legitimately be empty for an IP-addressed peer;
		// verification then relies solely on the configured root CA pool.
	}

	return cfg, nil
}
