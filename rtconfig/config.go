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

// Package rtconfig gathers the external settings a process needs to stand
// up a rtsession.Session — TLS policy, directory address, address-family
// and encryption preference, and the logger every other layer writes
// through — and binds them either by hand or out of a viper.Viper.
package rtconfig

import (
	"context"
	"time"

	endpoint "github.com/sabouaram/meshbus/endpoint"
	logger "github.com/sabouaram/meshbus/logger"
	logfld "github.com/sabouaram/meshbus/logger/fields"
	loglvl "github.com/sabouaram/meshbus/logger/level"
	rterr "github.com/sabouaram/meshbus/rterr"
	rtsession "github.com/sabouaram/meshbus/rtsession"
	tlsconf "github.com/sabouaram/meshbus/tlsconf"
	transport "github.com/sabouaram/meshbus/transport"
)

// Config is the full set of settings a process supplies to stand up a
// session peer. Every field is optional; NewSession fills in the same
// defaults rtsession.Options itself would (system resolver, no TLS,
// synchronous inline executor).
type Config struct {
	// Executor runs the callbacks passed to Session.OnServiceAdded. Nil
	// falls back to an inline, synchronous executor; a process wanting
	// the runtime's default cooperative scheduler supplies rtexec.NewLoop.
	Executor rtsession.Executor

	// TLS supplies certificate, CA and cipher policy for handshakes this
	// session performs, on either side. Nil means TLS is never available,
	// regardless of SSLPolicy/a peer's tcps:// scheme.
	TLS *tlsconf.Context

	// DirectoryURL addresses the service directory this session resolves
	// names against. Empty means name resolution is unavailable; Listen
	// and direct-URL dialing still work.
	DirectoryURL string

	// IPv6Policy governs address-family preference during resolution.
	IPv6Policy endpoint.IPv6Policy

	// SSLPolicy reconciles this process's own TLS preference against each
	// URL's declared scheme before a dial.
	SSLPolicy endpoint.SSLPolicy

	// DialTimeout bounds each outbound TCP connect.
	DialTimeout time.Duration

	// Resolver overrides DNS lookup; nil uses the system resolver.
	Resolver endpoint.Resolver

	// Logger receives the dispatcher-level log entries of every Socket the
	// session creates. Nil is silent.
	Logger logger.Logger
}

// NewSession builds a rtsession.Session from c, dialing DirectoryURL (when
// set) before returning. This is the one place Config's fields cross into
// rtsession.Options, keeping the dependency one-directional: rtsession
// never imports rtconfig back.
func (c Config) NewSession(ctx context.Context) (*rtsession.Session, rterr.Error) {
	return rtsession.NewSession(ctx, rtsession.Options{
		DirectoryURL: c.DirectoryURL,
		TLS:          c.TLS,
		IPv6Policy:   c.IPv6Policy,
		SSLPolicy:    c.SSLPolicy,
		Resolver:     c.Resolver,
		DialTimeout:  c.DialTimeout,
		Executor:     c.Executor,
		Log:          c.loggerAdapter(),
	})
}

// loggerAdapter bridges Config.Logger into the transport.Log signature
// the dispatcher logs through; a nil Logger yields a nil Log, which
// transport.Socket treats as silent.
func (c Config) loggerAdapter() transport.Log {
	if c.Logger == nil {
		return nil
	}
	return func(lvl loglvl.Level, message string, fields logfld.Fields) {
		c.Logger.LogDetails(lvl, message, nil, nil, fields)
	}
}
