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

package connector_test

import (
	"context"
	"fmt"
	"net"
	"time"

	connector "github.com/sabouaram/meshbus/connector"
	tlsconf "github.com/sabouaram/meshbus/tlsconf"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Connect", func() {
	It("dials a plain TCP listener and returns a usable net.Conn", func() {
		ln, lerr := net.Listen("tcp", "127.0.0.1:0")
		Expect(lerr).To(BeNil())
		defer ln.Close()

		accepted := make(chan struct{})
		go func() {
			c, aerr := ln.Accept()
			if aerr == nil {
				defer c.Close()
			}
			close(accepted)
		}()

		url := fmt.Sprintf("tcp://%s", ln.Addr().String())
		conn, err := connector.Connect(context.Background(), url, connector.Options{
			IPv6Policy: 0,
		})
		Expect(err).To(BeNil())
		Expect(conn).ToNot(BeNil())
		conn.Close()

		Eventually(accepted).Should(BeClosed())
	})

	It("fails with a typed error for a malformed URL", func() {
		_, err := connector.Connect(context.Background(), "tcp://127.0.0.1:0/bad", connector.Options{})
		Expect(err).ToNot(BeNil())
	})

	It("fails fast when no listener is present on the target port", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		ln, lerr := net.Listen("tcp", "127.0.0.1:0")
		Expect(lerr).To(BeNil())
		addr := ln.Addr().String()
		ln.Close()

		_, err := connector.Connect(ctx, fmt.Sprintf("tcp://%s", addr), connector.Options{})
		Expect(err).ToNot(BeNil())
	})

	It("rejects a TLS request with no TLSContext configured", func() {
		ln, lerr := net.Listen("tcp", "127.0.0.1:0")
		Expect(lerr).To(BeNil())
		defer ln.Close()

		go func() {
			c, aerr := ln.Accept()
			if aerr == nil {
				c.Close()
			}
		}()

		url := fmt.Sprintf("tcp://%s", ln.Addr().String())
		_, err := connector.Connect(context.Background(), url, connector.Options{
			UseSSL: true,
		})
		Expect(err).ToNot(BeNil())
	})

	It("surfaces a handshake failure when the peer does not speak TLS", func() {
		ln, lerr := net.Listen("tcp", "127.0.0.1:0")
		Expect(lerr).To(BeNil())
		defer ln.Close()

		go func() {
			c, aerr := ln.Accept()
			if aerr == nil {
				defer c.Close()
				buf := make([]byte, 16)
				c.SetReadDeadline(time.Now().Add(time.Second))
				c.Read(buf)
			}
		}()

		url := fmt.Sprintf("tcp://%s", ln.Addr().String())
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, err := connector.Connect(ctx, url, connector.Options{
			UseSSL:     true,
			TLSContext: tlsconf.Default(),
		})
		Expect(err).ToNot(BeNil())
	})
})
