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

package rtconfig_test

import (
	"time"

	"github.com/spf13/viper"

	endpoint "github.com/sabouaram/meshbus/endpoint"
	rtconfig "github.com/sabouaram/meshbus/rtconfig"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FromViper", func() {
	It("decodes the directory URL, policies and dial timeout", func() {
		v := viper.New()
		v.Set("directory_url", "tcp://directory.internal:9999")
		v.Set("ipv6_policy", "enabled")
		v.Set("ssl_policy", "required")
		v.Set("dial_timeout", "5s")

		cfg, err := rtconfig.FromViper(v)
		Expect(err).To(BeNil())
		Expect(cfg.DirectoryURL).To(Equal("tcp://directory.internal:9999"))
		Expect(cfg.IPv6Policy).To(Equal(endpoint.IPv6Enabled))
		Expect(cfg.SSLPolicy).To(Equal(endpoint.SSLRequired))
		Expect(cfg.DialTimeout).To(Equal(5 * time.Second))
	})

	It("defaults policies to disabled when unset", func() {
		v := viper.New()
		v.Set("directory_url", "tcp://directory.internal:9999")

		cfg, err := rtconfig.FromViper(v)
		Expect(err).To(BeNil())
		Expect(cfg.IPv6Policy).To(Equal(endpoint.IPv6Disabled))
		Expect(cfg.SSLPolicy).To(Equal(endpoint.SSLDisabled))
	})

	It("leaves Executor, TLS and Logger at their zero value for the caller to wire in", func() {
		v := viper.New()
		cfg, err := rtconfig.FromViper(v)
		Expect(err).To(BeNil())
		Expect(cfg.Executor).To(BeNil())
		Expect(cfg.TLS).To(BeNil())
		Expect(cfg.Logger).To(BeNil())
	})
})
