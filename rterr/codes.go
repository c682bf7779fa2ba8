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

// Package rterr carries the structured, coded error taxonomy shared by every
// layer of the runtime: the dynamic value system, the URL resolver, the
// connector and the transport dispatcher all raise errors through this
// package's CodeError constants rather than ad-hoc error strings.
package rterr

import liberr "github.com/sabouaram/meshbus/errors"

// Error is a type alias so callers never need to import the base errors
// package directly to type-assert a returned error.
type Error = liberr.Error

const (
	// Success is never itself returned as an error; it is the first code
	// of this package's range (liberr.MinPkgRtErr), reserved to keep the taxonomy aligned with the spec's symbolic list.
	Success liberr.CodeError = iota + liberr.MinPkgRtErr

	BadAddress
	HostNotFound
	ConnectionRefused
	TimedOut
	Cancelled
	Disconnected
	HandshakeFailed
	ProtocolError
	NotFound
	ConversionFailed
	Overflow
)

func init() {
	liberr.RegisterIdFctMessage(Success, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case Success:
		return "success"
	case BadAddress:
		return "invalid or unparsable address"
	case HostNotFound:
		return "host could not be resolved"
	case ConnectionRefused:
		return "connection refused by peer"
	case TimedOut:
		return "operation timed out"
	case Cancelled:
		return "operation was cancelled"
	case Disconnected:
		return "socket is disconnected"
	case HandshakeFailed:
		return "tls handshake failed"
	case ProtocolError:
		return "protocol framing violation"
	case NotFound:
		return "service or method not found"
	case ConversionFailed:
		return "value conversion failed"
	case Overflow:
		return "narrowing conversion overflow"
	}

	return ""
}

// New builds an rterr.Error for the given code, optionally wrapping parents.
func New(code liberr.CodeError, parent ...error) liberr.Error {
	return code.Error(parent...)
}
