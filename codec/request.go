package codec

import (
	"fmt"

	"callwire/message"
)

// flagSlot is the reserved position of a body's flags byte during a write.
// The byte is written as zero up front and patched in one fixed-position
// store once the variable sections have settled the final flag state.
type flagSlot struct {
	buf []byte
	pos int
}

func reserveFlags(buf []byte, off int) (flagSlot, int, error) {
	next, err := writeUint8(buf, off, 0)
	if err != nil {
		return flagSlot{}, 0, err
	}
	return flagSlot{buf: buf, pos: off}, next, nil
}

func (s flagSlot) patch(f message.Flags) { s.buf[s.pos] = byte(f) }

// RequestByteLength computes the encoded size of req for a single
// unfragmented frame, short-circuiting on the first section that cannot be
// represented.
func RequestByteLength(req *message.CallRequest) (int, error) {
	if req.TTL == 0 {
		return 0, &InvalidTTLError{TTL: req.TTL}
	}
	if len(req.Service) > 0xff {
		return 0, fmt.Errorf("service name of %d bytes: %w", len(req.Service), ErrFieldTooLong)
	}
	n := 1 + 4 + tracingLength + 1 + len(req.Service)
	hn, err := headersByteLength(req.Headers)
	if err != nil {
		return 0, err
	}
	an, err := argsByteLength(req.Checksum.Type, req.Args)
	if err != nil {
		return 0, err
	}
	return n + hn + an, nil
}

// WriteRequest encodes req into buf starting at off and returns the offset
// just past the last byte written. limit caps how far the argument stream
// may extend (the frame-size limit supplied by the transport). When the
// arguments do not fit below it, the fragment bit is set both on req.Flags
// and in the written flags byte, and the stream is cut at the limit.
func WriteRequest(req *message.CallRequest, buf []byte, off, limit int) (int, error) {
	if req.TTL == 0 {
		return 0, &InvalidTTLError{TTL: req.TTL}
	}
	slot, off, err := reserveFlags(buf, off)
	if err != nil {
		return 0, err
	}
	if off, err = writeUint32(buf, off, req.TTL); err != nil {
		return 0, err
	}
	if off, err = writeTracing(req.Tracing, buf, off); err != nil {
		return 0, err
	}
	if off, err = writeLen1(buf, off, []byte(req.Service)); err != nil {
		return 0, fmt.Errorf("service name: %w", err)
	}
	if off, err = writeHeaders(req.Headers, buf, off); err != nil {
		return 0, err
	}
	if off, err = writeArgs(req.Checksum, req.Args, &req.Flags, buf, off, limit); err != nil {
		return 0, err
	}
	slot.patch(req.Flags)
	return off, nil
}

// ReadRequest decodes a complete request body from buf starting at off. The
// returned message's Args alias buf; callers that keep them past the frame's
// lifetime must copy.
func ReadRequest(buf []byte, off int) (*message.CallRequest, int, error) {
	req := new(message.CallRequest)
	fl, off, err := readUint8(buf, off)
	if err != nil {
		return nil, 0, err
	}
	req.Flags = message.Flags(fl)
	if req.TTL, off, err = readUint32(buf, off); err != nil {
		return nil, 0, err
	}
	if req.TTL == 0 {
		return nil, 0, &InvalidTTLError{TTL: req.TTL, Decoded: true}
	}
	if req.Tracing, off, err = readTracing(buf, off); err != nil {
		return nil, 0, err
	}
	var svc []byte
	if svc, off, err = readLen1(buf, off); err != nil {
		return nil, 0, fmt.Errorf("service name: %w", err)
	}
	req.Service = string(svc)
	if req.Headers, off, err = readHeaders(buf, off); err != nil {
		return nil, 0, err
	}
	if req.Checksum, req.Args, off, err = readArgs(buf, off); err != nil {
		return nil, 0, err
	}
	return req, off, nil
}
