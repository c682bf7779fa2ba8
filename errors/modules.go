/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

// Package-reserved ranges for CodeError registration. Each package that
// registers error codes via RegisterIdFctMessage claims a disjoint band
// of 100 so a code's numeric value alone identifies its owning package.
const (
	MinPkgRtErr       = 200
	MinPkgCertificate = 300
	MinPkgConfig      = 500
	MinPkgLogger      = 600
	MinPkgDynVal      = 700
	MinPkgObjMeta     = 800
	MinPkgAdapter     = 900
	MinPkgEndpoint    = 1000
	MinPkgConnector   = 1100
	MinPkgTransport   = 1200
	MinPkgDirectory   = 1300
	MinPkgSession     = 1400
	MinPkgNetProto    = 1500

	MinAvailable = 4000
)
