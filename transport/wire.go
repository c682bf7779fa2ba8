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

package transport

import (
	"github.com/fxamacker/cbor/v2"

	liberr "github.com/sabouaram/meshbus/errors"

	dynval "github.com/sabouaram/meshbus/dynval"
	rterr "github.com/sabouaram/meshbus/rterr"
)

// wireError is the CBOR wire shape of an Error frame's payload: enough to
// reconstruct a CodeError on the receiving side and to surface the
// failing message for diagnostics even when the receiver doesn't carry
// this package's exact CodeError range.
type wireError struct {
	Code    uint16 `cbor:"c"`
	Message string `cbor:"m"`
}

// encodeErrorPayload renders e as an Error frame's payload. A marshal
// failure here falls back to an empty payload rather than compounding
// one failure into a second one on the write path.
func encodeErrorPayload(e rterr.Error) []byte {
	if e == nil {
		return nil
	}
	b, err := cbor.Marshal(wireError{Code: e.Code(), Message: e.Error()})
	if err != nil {
		return nil
	}
	return b
}

// decodeErrorPayload is encodeErrorPayload's inverse, used to turn a
// received Error frame back into an rterr.Error on the caller's side of
// a Call.
func decodeErrorPayload(payload []byte) rterr.Error {
	var we wireError
	if len(payload) == 0 {
		return rterr.New(rterr.ProtocolError)
	}
	if err := cbor.Unmarshal(payload, &we); err != nil {
		return rterr.New(rterr.ProtocolError, err)
	}
	return rterr.New(liberr.NewCodeError(we.Code), errorsAsError(we.Message))
}

type wireErrorText string

func (w wireErrorText) Error() string { return string(w) }

func errorsAsError(msg string) error {
	return wireErrorText(msg)
}

// wireValue is the CBOR wire shape for one dynval.Value. Scalar kinds
// carry their Go value directly in V; List/Tuple kinds carry their
// elements in Sub instead, recursively; Map carries its entries in
// Pairs as parallel key/value wireValues.
type wireValue struct {
	Kind   uint8       `cbor:"k"`
	V      interface{} `cbor:"v,omitempty"`
	Sub    []wireValue `cbor:"s,omitempty"`
	Pairs  []wirePair  `cbor:"p,omitempty"`
	Width  uint8       `cbor:"w,omitempty"`
	Signed bool        `cbor:"g,omitempty"`
}

// wirePair is one Map entry: a key/value wireValue pair, mirroring the
// count + (key,value)* shape the Map kind carries on the wire.
type wirePair struct {
	K wireValue `cbor:"k"`
	V wireValue `cbor:"v"`
}

// EncodePayload serializes args to the bytes a frame carries as its
// payload. Object, Pointer, Dynamic and Iterator kinds are not wire
// representable by this codec and fail with ProtocolError — they cross
// a process boundary only as a resolved name or capability negotiated at
// the directory/session layer, never as raw bytes on the wire.
func EncodePayload(args []dynval.Value) ([]byte, rterr.Error) {
	wv := make([]wireValue, len(args))
	for i, a := range args {
		w, err := toWire(a)
		if err != nil {
			return nil, err
		}
		wv[i] = w
	}

	b, merr := cbor.Marshal(wv)
	if merr != nil {
		return nil, rterr.New(rterr.ProtocolError, merr)
	}
	return b, nil
}

// DecodePayload is EncodePayload's inverse.
func DecodePayload(payload []byte) ([]dynval.Value, rterr.Error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var wv []wireValue
	if uerr := cbor.Unmarshal(payload, &wv); uerr != nil {
		return nil, rterr.New(rterr.ProtocolError, uerr)
	}

	out := make([]dynval.Value, len(wv))
	for i, w := range wv {
		v, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func toWire(v dynval.Value) (wireValue, rterr.Error) {
	switch v.Kind() {
	case dynval.Void:
		return wireValue{Kind: uint8(dynval.Void)}, nil
	case dynval.Int:
		i, err := v.ToInt()
		if err != nil {
			return wireValue{}, rterr.New(rterr.ProtocolError, err)
		}
		return wireValue{Kind: uint8(dynval.Int), V: i, Width: v.Descriptor().IntWidth(), Signed: v.Descriptor().IntSigned()}, nil
	case dynval.Float:
		f, err := v.ToDouble()
		if err != nil {
			return wireValue{}, rterr.New(rterr.ProtocolError, err)
		}
		return wireValue{Kind: uint8(dynval.Float), V: f}, nil
	case dynval.String:
		s, err := v.ToString()
		if err != nil {
			return wireValue{}, rterr.New(rterr.ProtocolError, err)
		}
		return wireValue{Kind: uint8(dynval.String), V: s}, nil
	case dynval.Raw:
		b, ok := v.Storage().([]byte)
		if !ok {
			return wireValue{}, rterr.New(rterr.ProtocolError)
		}
		return wireValue{Kind: uint8(dynval.Raw), V: b}, nil
	case dynval.List, dynval.Tuple:
		elems := v.Elements()
		sub := make([]wireValue, len(elems))
		for i, e := range elems {
			w, err := toWire(e)
			if err != nil {
				return wireValue{}, err
			}
			sub[i] = w
		}
		return wireValue{Kind: uint8(v.Kind()), Sub: sub}, nil
	case dynval.Map:
		entries := v.Entries()
		pairs := make([]wirePair, 0, len(entries))
		for k, e := range entries {
			wk, err := toWire(k)
			if err != nil {
				return wireValue{}, err
			}
			wv, err := toWire(e)
			if err != nil {
				return wireValue{}, err
			}
			pairs = append(pairs, wirePair{K: wk, V: wv})
		}
		return wireValue{Kind: uint8(dynval.Map), Pairs: pairs}, nil
	default:
		return wireValue{}, rterr.New(rterr.ProtocolError)
	}
}

func fromWire(w wireValue) (dynval.Value, rterr.Error) {
	switch dynval.Kind(w.Kind) {
	case dynval.Void:
		return dynval.Empty(), nil
	case dynval.Int:
		i, ok := toInt64(w.V)
		if !ok {
			return dynval.Value{}, rterr.New(rterr.ProtocolError)
		}
		width := w.Width
		if width == 0 {
			width = 64
		}
		val := dynval.NewOwning(dynval.IntType(width, w.Signed), i)
		return val, nil
	case dynval.Float:
		f, ok := w.V.(float64)
		if !ok {
			return dynval.Value{}, rterr.New(rterr.ProtocolError)
		}
		return dynval.NewOwning(dynval.FloatType(), f), nil
	case dynval.String:
		s, ok := w.V.(string)
		if !ok {
			return dynval.Value{}, rterr.New(rterr.ProtocolError)
		}
		return dynval.NewOwning(dynval.StringType(), s), nil
	case dynval.Raw:
		b, ok := w.V.([]byte)
		if !ok {
			return dynval.Value{}, rterr.New(rterr.ProtocolError)
		}
		return dynval.NewOwning(dynval.RawType(), b), nil
	case dynval.List, dynval.Tuple:
		elems := make([]dynval.Value, len(w.Sub))
		descs := make([]*dynval.TypeDescriptor, len(w.Sub))
		for i, s := range w.Sub {
			e, err := fromWire(s)
			if err != nil {
				return dynval.Value{}, err
			}
			elems[i] = e
			descs[i] = e.Descriptor()
		}
		if dynval.Kind(w.Kind) == dynval.Tuple {
			return dynval.NewOwning(dynval.TupleType(descs...), elems), nil
		}
		var elemDesc *dynval.TypeDescriptor
		if len(descs) > 0 {
			elemDesc = descs[0]
		} else {
			elemDesc = dynval.DynamicType()
		}
		return dynval.NewOwning(dynval.ListType(elemDesc), elems), nil
	case dynval.Map:
		entries := make(map[dynval.Value]dynval.Value, len(w.Pairs))
		var keyDesc, elemDesc *dynval.TypeDescriptor
		for _, p := range w.Pairs {
			k, err := fromWire(p.K)
			if err != nil {
				return dynval.Value{}, err
			}
			e, err := fromWire(p.V)
			if err != nil {
				return dynval.Value{}, err
			}
			entries[k] = e
			keyDesc, elemDesc = k.Descriptor(), e.Descriptor()
		}
		if keyDesc == nil {
			keyDesc = dynval.DynamicType()
		}
		if elemDesc == nil {
			elemDesc = dynval.DynamicType()
		}
		return dynval.NewOwning(dynval.MapType(keyDesc, elemDesc), entries), nil
	default:
		return dynval.Value{}, rterr.New(rterr.ProtocolError)
	}
}

// toInt64 accepts either an int64 (same-process Marshal/Unmarshal round
// trip) or a uint64 (CBOR's minimal encoding for small non-negative
// integers can decode into either Go type depending on the unmarshal
// target) and normalizes to int64.
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
