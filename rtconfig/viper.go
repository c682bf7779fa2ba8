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

package rtconfig

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	endpoint "github.com/sabouaram/meshbus/endpoint"
	rterr "github.com/sabouaram/meshbus/rterr"
)

// fileConfig is the viper-decodable subset of Config: the scalar,
// plain-old-data fields a configuration file can actually express.
// Executor, TLS and Logger are runtime dependencies a process wires in by
// hand after FromViper returns, the same way a *sql.DB or http.Client
// never comes out of a config file either.
type fileConfig struct {
	DirectoryURL string              `mapstructure:"directory_url"`
	IPv6Policy   endpoint.IPv6Policy `mapstructure:"ipv6_policy"`
	SSLPolicy    endpoint.SSLPolicy  `mapstructure:"ssl_policy"`
	DialTimeout  time.Duration       `mapstructure:"dial_timeout"`
}

// FromViper decodes the directory URL, IPv6 policy, SSL policy and dial
// timeout out of v into a Config. Executor, TLS and Logger are left at
// their zero value; set them on the returned Config before calling
// NewSession.
func FromViper(v *viper.Viper) (Config, rterr.Error) {
	var fc fileConfig

	opt := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			ipv6PolicyDecoderHook(),
			sslPolicyDecoderHook(),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})

	if err := v.Unmarshal(&fc, opt); err != nil {
		return Config{}, rterr.New(rterr.BadAddress, err)
	}

	return Config{
		DirectoryURL: fc.DirectoryURL,
		IPv6Policy:   fc.IPv6Policy,
		SSLPolicy:    fc.SSLPolicy,
		DialTimeout:  fc.DialTimeout,
	}, nil
}

// ipv6PolicyDecoderHook lets a configuration file spell out "disabled" /
// "enabled" instead of the bare integer endpoint.IPv6Policy decodes to by
// default, the same string-to-enum convention netproto.ViperDecoderHook
// already establishes for NetworkProtocol.
func ipv6PolicyDecoderHook() mapstructure.DecodeHookFunc {
	target := reflect.TypeOf(endpoint.IPv6Disabled)

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != target || from.Kind() != reflect.String {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return nil, fmt.Errorf("rtconfig: expected string for ipv6_policy, got %T", data)
		}
		if strings.EqualFold(strings.TrimSpace(s), "enabled") {
			return endpoint.IPv6Enabled, nil
		}
		return endpoint.IPv6Disabled, nil
	}
}

// sslPolicyDecoderHook mirrors ipv6PolicyDecoderHook for endpoint.SSLPolicy,
// accepting "disabled", "preferred" or "required".
func sslPolicyDecoderHook() mapstructure.DecodeHookFunc {
	target := reflect.TypeOf(endpoint.SSLDisabled)

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != target || from.Kind() != reflect.String {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return nil, fmt.Errorf("rtconfig: expected string for ssl_policy, got %T", data)
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "preferred":
			return endpoint.SSLPreferred, nil
		case "required":
			return endpoint.SSLRequired, nil
		default:
			return endpoint.SSLDisabled, nil
		}
	}
}
