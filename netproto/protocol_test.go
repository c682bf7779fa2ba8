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

package netproto_test

import (
	"reflect"

	netproto "github.com/sabouaram/meshbus/netproto"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NetworkProtocol", func() {
	It("round-trips String/Code through Parse for every named protocol", func() {
		all := []netproto.NetworkProtocol{
			netproto.NetworkUnix, netproto.NetworkTCP, netproto.NetworkTCP4, netproto.NetworkTCP6,
			netproto.NetworkUDP, netproto.NetworkUDP4, netproto.NetworkUDP6,
			netproto.NetworkIP, netproto.NetworkIP4, netproto.NetworkIP6, netproto.NetworkUnixGram,
		}
		for _, p := range all {
			Expect(netproto.Parse(p.String())).To(Equal(p))
			Expect(netproto.Parse(p.Code())).To(Equal(p))
		}
	})

	It("parses case-insensitively and trims whitespace/quotes", func() {
		Expect(netproto.Parse(" TCP ")).To(Equal(netproto.NetworkTCP))
		Expect(netproto.Parse(`"udp"`)).To(Equal(netproto.NetworkUDP))
		Expect(netproto.Parse("`unix`")).To(Equal(netproto.NetworkUnix))
		Expect(netproto.Parse("bogus")).To(Equal(netproto.NetworkEmpty))
	})

	It("maps ordinals through ParseInt64, rejecting out-of-range values", func() {
		Expect(netproto.ParseInt64(2)).To(Equal(netproto.NetworkTCP))
		Expect(netproto.ParseInt64(0)).To(Equal(netproto.NetworkEmpty))
		Expect(netproto.ParseInt64(-1)).To(Equal(netproto.NetworkEmpty))
		Expect(netproto.ParseInt64(256)).To(Equal(netproto.NetworkEmpty))
		Expect(netproto.ParseInt64(99)).To(Equal(netproto.NetworkEmpty))
	})

	It("marshals and unmarshals JSON as a lowercase string", func() {
		data, err := netproto.NetworkTCP4.MarshalJSON()
		Expect(err).To(BeNil())
		Expect(string(data)).To(Equal(`"tcp4"`))

		var p netproto.NetworkProtocol
		Expect(p.UnmarshalJSON([]byte(`"tcp4"`))).To(BeNil())
		Expect(p).To(Equal(netproto.NetworkTCP4))
	})

	It("decodes through the viper decoder hook", func() {
		hook := netproto.ViperDecoderHook()
		out, err := hook(reflect.TypeOf(""), reflect.TypeOf(netproto.NetworkEmpty), "udp")
		Expect(err).To(BeNil())
		Expect(out).To(Equal(netproto.NetworkUDP))
	})
})
