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

package endpoint_test

import (
	endpoint "github.com/sabouaram/meshbus/endpoint"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ApplySSLPolicy", func() {
	It("never upgrades under SSLDisabled even for a tcps URL", func() {
		u, _ := endpoint.ParseURL("tcps://example.test:443")
		use, err := endpoint.ApplySSLPolicy(u, endpoint.SSLDisabled)
		Expect(err).To(BeNil())
		Expect(use).To(BeFalse())
	})

	It("defers to the URL's own scheme under SSLPreferred", func() {
		plain, _ := endpoint.ParseURL("tcp://example.test:80")
		secure, _ := endpoint.ParseURL("tcps://example.test:443")

		use1, err1 := endpoint.ApplySSLPolicy(plain, endpoint.SSLPreferred)
		Expect(err1).To(BeNil())
		Expect(use1).To(BeFalse())

		use2, err2 := endpoint.ApplySSLPolicy(secure, endpoint.SSLPreferred)
		Expect(err2).To(BeNil())
		Expect(use2).To(BeTrue())
	})

	It("rejects a plain tcp URL under SSLRequired", func() {
		plain, _ := endpoint.ParseURL("tcp://example.test:80")
		_, err := endpoint.ApplySSLPolicy(plain, endpoint.SSLRequired)
		Expect(err).ToNot(BeNil())
	})
})
