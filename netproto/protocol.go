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

// Package netproto holds the closed set of address families the resolver
// and connector negotiate over: NetworkProtocol, a uint8 enum mapping
// directly onto the network strings accepted by net.Dial.
package netproto

import (
	"bytes"
	"math"
	"strings"
)

// NetworkProtocol is the address-family/socket-type policy used throughout
// resolution and connection. The zero value, NetworkEmpty, means "unset".
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

var names = map[NetworkProtocol]string{
	NetworkUnix:     "unix",
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
	NetworkUnixGram: "unixgram",
}

var byName = func() map[string]NetworkProtocol {
	m := make(map[string]NetworkProtocol, len(names))
	for p, n := range names {
		m[n] = p
	}
	return m
}()

// String returns the net.Dial-compatible network string, or "" for
// NetworkEmpty and any out-of-range value.
func (p NetworkProtocol) String() string {
	return names[p]
}

// Code is an alias for String kept for symmetry with the rest of the
// runtime's enums, which expose both a String() and a normalized Code().
func (p NetworkProtocol) Code() string {
	return names[p]
}

// Int returns the enum's ordinal, 0 for NetworkEmpty and any out-of-range
// value.
func (p NetworkProtocol) Int() int {
	if _, ok := names[p]; !ok {
		return 0
	}
	return int(p)
}

// Int64 is Int widened to int64.
func (p NetworkProtocol) Int64() int64 {
	return int64(p.Int())
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, "'")
	return s
}

// Parse resolves a case-insensitive, whitespace/quote-trimmed network
// string to its NetworkProtocol, returning NetworkEmpty for anything
// unrecognized.
func Parse(s string) NetworkProtocol {
	s = strings.ToLower(normalize(s))
	return byName[s]
}

// ParseBytes is Parse over a []byte, without requiring a caller-side
// string conversion.
func ParseBytes(b []byte) NetworkProtocol {
	return Parse(string(b))
}

// ParseInt64 maps a raw ordinal back to its NetworkProtocol, rejecting
// negative values and anything outside uint8 range or not a defined
// constant.
func ParseInt64(i int64) NetworkProtocol {
	if i <= 0 || i > math.MaxUint8 {
		return NetworkEmpty
	}
	p := NetworkProtocol(i)
	if _, ok := names[p]; !ok {
		return NetworkEmpty
	}
	return p
}

// MarshalJSON renders the protocol as its lowercase JSON string, "" for
// NetworkEmpty.
func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON parses a JSON string into the protocol; an unrecognized
// value sets NetworkEmpty without raising an error, matching Parse.
func (p *NetworkProtocol) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	*p = Parse(s)
	return nil
}

// MarshalYAML renders the protocol as its lowercase string for YAML
// encoding.
func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML parses a YAML scalar into the protocol.
func (p *NetworkProtocol) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*p = Parse(s)
	return nil
}
