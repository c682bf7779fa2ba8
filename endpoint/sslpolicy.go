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

package endpoint

import (
	rterr "github.com/sabouaram/meshbus/rterr"
)

// SSLPolicy governs how a process-wide TLS preference interacts with a
// single URL's own scheme-declared preference.
type SSLPolicy uint8

const (
	// SSLDisabled never upgrades a connection to TLS, regardless of the
	// URL's scheme.
	SSLDisabled SSLPolicy = iota
	// SSLPreferred defers entirely to the URL's own scheme: tcps:// gets
	// TLS, tcp:// does not.
	SSLPreferred
	// SSLRequired rejects any URL that does not declare tcps://.
	SSLRequired
)

// ApplySSLPolicy reconciles policy with u's own scheme, returning whether
// the connection that follows should perform a TLS handshake.
func ApplySSLPolicy(u URL, policy SSLPolicy) (bool, rterr.Error) {
	switch policy {
	case SSLDisabled:
		return false, nil
	case SSLRequired:
		if !u.UseSSL() {
			return false, rterr.New(rterr.BadAddress)
		}
		return true, nil
	default:
		return u.UseSSL(), nil
	}
}
