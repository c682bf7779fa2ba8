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

package directory_test

import (
	"context"
	"net"
	"time"

	directory "github.com/sabouaram/meshbus/directory"
	transport "github.com/sabouaram/meshbus/transport"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client", func() {
	It("resolves a service name against a remote Registry over a socket", func() {
		serverConn, clientConn := net.Pipe()
		defer serverConn.Close()
		defer clientConn.Close()

		reg := directory.NewRegistry()
		reg.Announce("weather", "tcp://10.0.0.5:9559")

		serverSock := transport.NewSocket(serverConn, nil)
		reg.Attach(serverSock)

		clientSock := transport.NewSocket(clientConn, nil)
		client := directory.NewClient(clientSock)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		go serverSock.Serve(ctx)
		go clientSock.Serve(ctx)

		url, err := client.Resolve(ctx, "weather")
		Expect(err).To(BeNil())
		Expect(url).To(Equal("tcp://10.0.0.5:9559"))
	})

	It("delivers a remote Announce to OnServiceAdded subscribers", func() {
		serverConn, clientConn := net.Pipe()
		defer serverConn.Close()
		defer clientConn.Close()

		reg := directory.NewRegistry()
		serverSock := transport.NewSocket(serverConn, nil)
		reg.Attach(serverSock)

		clientSock := transport.NewSocket(clientConn, nil)
		client := directory.NewClient(clientSock)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		go serverSock.Serve(ctx)
		go clientSock.Serve(ctx)

		received := make(chan string, 1)
		client.OnServiceAdded(func(name string) {
			received <- name
		})

		reg.Announce("weather", "tcp://10.0.0.5:9559")

		Eventually(received).Should(Receive(Equal("weather")))
	})

	It("surfaces NotFound for an unregistered name", func() {
		serverConn, clientConn := net.Pipe()
		defer serverConn.Close()
		defer clientConn.Close()

		reg := directory.NewRegistry()
		serverSock := transport.NewSocket(serverConn, nil)
		reg.Attach(serverSock)

		clientSock := transport.NewSocket(clientConn, nil)
		client := directory.NewClient(clientSock)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		go serverSock.Serve(ctx)
		go clientSock.Serve(ctx)

		_, err := client.Resolve(ctx, "nope")
		Expect(err).ToNot(BeNil())
	})
})
