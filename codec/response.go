package codec

import "callwire/message"

// ResponseByteLength computes the encoded size of res for a single
// unfragmented frame, short-circuiting on the first section that cannot be
// represented.
func ResponseByteLength(res *message.CallResponse) (int, error) {
	n := 1 + 1 + tracingLength
	hn, err := headersByteLength(res.Headers)
	if err != nil {
		return 0, err
	}
	an, err := argsByteLength(res.Checksum.Type, res.Args)
	if err != nil {
		return 0, err
	}
	return n + hn + an, nil
}

// WriteResponse encodes res into buf starting at off and returns the offset
// just past the last byte written. limit caps the argument stream exactly as
// in WriteRequest; the fragment bit is set when the arguments overflow it.
func WriteResponse(res *message.CallResponse, buf []byte, off, limit int) (int, error) {
	slot, off, err := reserveFlags(buf, off)
	if err != nil {
		return 0, err
	}
	if off, err = writeUint8(buf, off, uint8(res.Code)); err != nil {
		return 0, err
	}
	if off, err = writeTracing(res.Tracing, buf, off); err != nil {
		return 0, err
	}
	if off, err = writeHeaders(res.Headers, buf, off); err != nil {
		return 0, err
	}
	if off, err = writeArgs(res.Checksum, res.Args, &res.Flags, buf, off, limit); err != nil {
		return 0, err
	}
	slot.patch(res.Flags)
	return off, nil
}

// ReadResponse decodes a complete response body from buf starting at off.
// The returned message's Args alias buf.
func ReadResponse(buf []byte, off int) (*message.CallResponse, int, error) {
	res := new(message.CallResponse)
	fl, off, err := readUint8(buf, off)
	if err != nil {
		return nil, 0, err
	}
	res.Flags = message.Flags(fl)
	var code uint8
	if code, off, err = readUint8(buf, off); err != nil {
		return nil, 0, err
	}
	res.Code = message.Code(code)
	if res.Tracing, off, err = readTracing(buf, off); err != nil {
		return nil, 0, err
	}
	if res.Headers, off, err = readHeaders(buf, off); err != nil {
		return nil, 0, err
	}
	if res.Checksum, res.Args, off, err = readArgs(buf, off); err != nil {
		return nil, 0, err
	}
	return res, off, nil
}
