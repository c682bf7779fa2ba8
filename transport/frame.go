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

// Package transport frames and dispatches messages over a connector-
// established net.Conn: one fixed-size little-endian header per message,
// correlated by a per-socket monotonic message id, routed by
// (serviceId, objectId, actionId) into an objmeta method or signal table.
package transport

import (
	"encoding/binary"
	"errors"
	"io"
)

// Magic marks the start of every frame; a mismatched value means the
// stream is desynchronized and the socket is no longer usable.
const Magic uint32 = 0x6d657368 // "mesh"

// MessageType classifies the purpose of a frame's payload.
type MessageType uint8

const (
	Call MessageType = iota + 1
	Reply
	Error
	Post
	Event
	Capability
	Cancel
)

func (t MessageType) String() string {
	switch t {
	case Call:
		return "call"
	case Reply:
		return "reply"
	case Error:
		return "error"
	case Post:
		return "post"
	case Event:
		return "event"
	case Capability:
		return "capability"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// headerSize is the byte length of every frame's fixed header after the
// magic value, excluding the variable-length payload that follows it.
const headerSize = 4 + 4 + 4 + 4 + 4 + 1 + 1

// Header identifies a frame's routing and correlation fields. Payload is
// carried alongside a Header rather than inside it so callers can stream
// large payloads without buffering the whole frame twice.
type Header struct {
	MessageID   uint32
	ServiceID   uint32
	ObjectID    uint32
	ActionID    uint32
	PayloadSize uint32
	PayloadType uint8
	Type        MessageType
}

// ErrShortFrame is returned when a read completes fewer bytes than a
// frame's declared header or payload length.
var ErrShortFrame = errors.New("transport: short frame read")

// ErrBadMagic is returned when a frame's leading magic value does not
// match Magic; the stream must be treated as desynchronized.
var ErrBadMagic = errors.New("transport: bad magic, stream desynchronized")

// WriteFrame writes magic, header and payload to w as one contiguous
// little-endian frame.
func WriteFrame(w io.Writer, h Header, payload []byte) error {
	buf := make([]byte, 4+headerSize)
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.MessageID)
	binary.LittleEndian.PutUint32(buf[8:12], h.ServiceID)
	binary.LittleEndian.PutUint32(buf[12:16], h.ObjectID)
	binary.LittleEndian.PutUint32(buf[16:20], h.ActionID)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(len(payload)))
	buf[24] = h.PayloadType
	buf[25] = byte(h.Type)

	if _, err := w.Write(buf); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads one frame from r, returning its Header and payload. It
// blocks until a full frame is available or r returns an error.
func ReadFrame(r io.Reader) (Header, []byte, error) {
	head := make([]byte, 4+headerSize)
	if _, err := io.ReadFull(r, head); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Header{}, nil, ErrShortFrame
		}
		return Header{}, nil, err
	}

	if binary.LittleEndian.Uint32(head[0:4]) != Magic {
		return Header{}, nil, ErrBadMagic
	}

	h := Header{
		MessageID:   binary.LittleEndian.Uint32(head[4:8]),
		ServiceID:   binary.LittleEndian.Uint32(head[8:12]),
		ObjectID:    binary.LittleEndian.Uint32(head[12:16]),
		ActionID:    binary.LittleEndian.Uint32(head[16:20]),
		PayloadSize: binary.LittleEndian.Uint32(head[20:24]),
		PayloadType: head[24],
		Type:        MessageType(head[25]),
	}

	if h.PayloadSize == 0 {
		return h, nil, nil
	}

	payload := make([]byte, h.PayloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Header{}, nil, ErrShortFrame
		}
		return Header{}, nil, err
	}

	return h, payload, nil
}
