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

// Package endpoint parses the runtime's connection URLs and resolves them
// to dialable addresses, with IPv6Policy as the address-family policy.
package endpoint

import (
	"strconv"
	"strings"

	rterr "github.com/sabouaram/meshbus/rterr"
)

// URL is a parsed "scheme://host:port" endpoint address. Scheme is
// "tcp" or "tcps" (the latter implying useSsl at the connector).
type URL struct {
	Scheme string
	Host   string
	Port   uint16
}

// UseSSL reports whether the scheme requires a TLS handshake after connect.
func (u URL) UseSSL() bool {
	return u.Scheme == "tcps"
}

// String renders the URL back to its "scheme://host:port" form.
func (u URL) String() string {
	return u.Scheme + "://" + u.Host + ":" + strconv.Itoa(int(u.Port))
}

// ParseURL parses s into a URL, failing with BadAddress for an empty
// input, an unknown scheme, a missing/zero port, or a host with more
// dotted segments than a valid IPv4 literal allows (e.g. "10.12.14.15.16").
func ParseURL(s string) (URL, rterr.Error) {
	if s == "" {
		return URL{}, rterr.New(rterr.BadAddress)
	}

	scheme, rest, ok := strings.Cut(s, "://")
	if !ok || (scheme != "tcp" && scheme != "tcps") {
		return URL{}, rterr.New(rterr.BadAddress)
	}

	if rest == "" {
		return URL{}, rterr.New(rterr.BadAddress)
	}

	host, portStr, ok := splitHostPort(rest)
	if !ok {
		return URL{}, rterr.New(rterr.BadAddress)
	}

	if host == "" {
		return URL{}, rterr.New(rterr.BadAddress)
	}

	if !isBracketedIPv6(rest) && strings.Count(host, ".") > 3 {
		return URL{}, rterr.New(rterr.BadAddress)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return URL{}, rterr.New(rterr.BadAddress)
	}

	return URL{Scheme: scheme, Host: host, Port: uint16(port)}, nil
}

func isBracketedIPv6(hostport string) bool {
	return strings.HasPrefix(hostport, "[")
}

// splitHostPort splits "host:port" or "[ipv6]:port" the way net.SplitHostPort
// does, without requiring the port to already be known valid (ParseURL
// validates separately so it can return BadAddress uniformly).
func splitHostPort(hostport string) (host, port string, ok bool) {
	if strings.HasPrefix(hostport, "[") {
		end := strings.Index(hostport, "]")
		if end < 0 {
			return "", "", false
		}
		host = hostport[1:end]
		rest := hostport[end+1:]
		if !strings.HasPrefix(rest, ":") {
			return "", "", false
		}
		return host, rest[1:], true
	}

	i := strings.LastIndex(hostport, ":")
	if i < 0 {
		return "", "", false
	}
	return hostport[:i], hostport[i+1:], true
}
