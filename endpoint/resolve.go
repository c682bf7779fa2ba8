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
	"context"
	"net"
	"strconv"

	rterr "github.com/sabouaram/meshbus/rterr"
)

// ResolveEntry is one candidate address a URL's host resolved to.
type ResolveEntry struct {
	IP   net.IP
	Port uint16
}

// IsIPv4 reports whether the entry's address is an IPv4 (or IPv4-in-IPv6)
// literal.
func (e ResolveEntry) IsIPv4() bool {
	return e.IP.To4() != nil
}

// Addr renders the entry as a net.Dial-compatible "host:port" string.
func (e ResolveEntry) Addr() string {
	return net.JoinHostPort(e.IP.String(), strconv.Itoa(int(e.Port)))
}

// Resolver resolves a URL's host to its candidate addresses. The default
// Resolver used by ResolveUrlList/ResolveUrl wraps net.DefaultResolver;
// tests substitute a stub to avoid a real DNS lookup.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

type netResolver struct{}

func (netResolver) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	return net.DefaultResolver.LookupIPAddr(ctx, host)
}

// DefaultResolver is the Resolver used when callers do not supply one.
var DefaultResolver Resolver = netResolver{}

// ResolveUrlList parses and resolves url's host against r, returning every
// candidate ResolveEntry in the order the resolver reported them. A
// malformed url fails synchronously with BadAddress before any lookup; a
// literal IP host skips DNS entirely.
func ResolveUrlList(ctx context.Context, r Resolver, rawURL string) ([]ResolveEntry, rterr.Error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	if ip := net.ParseIP(u.Host); ip != nil {
		return []ResolveEntry{{IP: ip, Port: u.Port}}, nil
	}

	if r == nil {
		r = DefaultResolver
	}

	addrs, lerr := r.LookupIPAddr(ctx, u.Host)
	if lerr != nil {
		if ctx.Err() != nil {
			return nil, rterr.New(rterr.Cancelled, lerr)
		}
		return nil, rterr.New(rterr.HostNotFound, lerr)
	}

	out := make([]ResolveEntry, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, ResolveEntry{IP: a.IP, Port: u.Port})
	}

	return out, nil
}

// IPv6Policy controls whether findFirstValidIfAny may choose an IPv6
// candidate.
type IPv6Policy uint8

const (
	IPv6Disabled IPv6Policy = iota
	IPv6Enabled
)

// ResolveUrl resolves rawURL then narrows the candidate list to a single
// entry via findFirstValidIfAny under policy. The returned entry's zero
// value (nil IP) means no admissible candidate was found, distinct from a
// resolution error.
func ResolveUrl(ctx context.Context, r Resolver, rawURL string, policy IPv6Policy) (ResolveEntry, rterr.Error) {
	entries, err := ResolveUrlList(ctx, r, rawURL)
	if err != nil {
		return ResolveEntry{}, err
	}
	return findFirstValidIfAny(entries, policy == IPv6Enabled), nil
}

// findFirstValidIfAny scans entries in order. When ipV6Allowed, any IPv4
// entry outranks any IPv6 entry regardless of position, so the scan
// returns the first IPv4 entry if one exists anywhere, else the first
// IPv6 entry. When !ipV6Allowed, only IPv4 entries are admissible. Empty
// input, or a list with no admissible entry, returns the zero ResolveEntry.
func findFirstValidIfAny(entries []ResolveEntry, ipV6Allowed bool) ResolveEntry {
	var firstV6 *ResolveEntry

	for i := range entries {
		e := entries[i]
		if e.IsIPv4() {
			return e
		}
		if ipV6Allowed && firstV6 == nil {
			firstV6 = &entries[i]
		}
	}

	if ipV6Allowed && firstV6 != nil {
		return *firstV6
	}

	return ResolveEntry{}
}
