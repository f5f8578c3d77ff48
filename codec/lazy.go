package codec

import (
	"fmt"
	"unicode/utf8"

	"callwire/checksum"
	"callwire/frame"
	"callwire/message"
)

// The lazy readers return exactly what an eager decode of the same buffer
// would produce for the same field, including the same errors on malformed
// input. They differ only in cost: each variable-length boundary (service
// name end, checksum start, args start) is computed at most once per frame
// and memoized in the frame's offset cache, so a later read of a deeper
// field resumes from the last known boundary instead of rescanning.

// LazyRequest reads single call-request fields straight out of a received
// frame without materializing a CallRequest.
type LazyRequest struct {
	Frame *frame.Frame
}

// Flags reads the flags byte.
func (l LazyRequest) Flags() (message.Flags, error) {
	b, _, err := readUint8(l.Frame.Buf, l.Frame.Overhead+flagsOffset)
	return message.Flags(b), err
}

// TTL reads the time-to-live, failing on the zero value just as the eager
// decoder does.
func (l LazyRequest) TTL() (uint32, error) {
	ttl, _, err := readUint32(l.Frame.Buf, l.Frame.Overhead+ttlOffset)
	if err != nil {
		return 0, err
	}
	if ttl == 0 {
		return 0, &InvalidTTLError{TTL: ttl, Decoded: true}
	}
	return ttl, nil
}

// Tracing reads the fixed-width trace context.
func (l LazyRequest) Tracing() (message.Tracing, error) {
	t, _, err := readTracing(l.Frame.Buf, l.Frame.Overhead+reqTracingOffset)
	return t, err
}

// Service reads the service name and memoizes where it ends, since every
// later field sits behind it.
func (l LazyRequest) Service() (string, error) {
	svc, end, err := readLen1(l.Frame.Buf, l.Frame.Overhead+reqServiceOffset)
	if err != nil {
		return "", fmt.Errorf("service name: %w", err)
	}
	l.Frame.SetOffset(frame.OffsetServiceEnd, end)
	return string(svc), nil
}

func (l LazyRequest) serviceEnd() (int, error) {
	if off, ok := l.Frame.CachedOffset(frame.OffsetServiceEnd); ok {
		return off, nil
	}
	_, end, err := readLen1(l.Frame.Buf, l.Frame.Overhead+reqServiceOffset)
	if err != nil {
		return 0, fmt.Errorf("service name: %w", err)
	}
	l.Frame.SetOffset(frame.OffsetServiceEnd, end)
	return end, nil
}

// Header scans the header section for one key without building the map. The
// scan necessarily reaches the end of the section, which doubles as the
// checksum start, so that boundary is memoized as a side effect.
func (l LazyRequest) Header(name string) (string, bool, error) {
	start, err := l.serviceEnd()
	if err != nil {
		return "", false, err
	}
	val, ok, end, err := lazyHeader(l.Frame.Buf, start, name)
	if err != nil {
		return "", false, err
	}
	l.Frame.SetOffset(frame.OffsetChecksumStart, end)
	return val, ok, nil
}

func (l LazyRequest) checksumStart() (int, error) {
	if off, ok := l.Frame.CachedOffset(frame.OffsetChecksumStart); ok {
		return off, nil
	}
	start, err := l.serviceEnd()
	if err != nil {
		return 0, err
	}
	end, err := skipHeaders(l.Frame.Buf, start)
	if err != nil {
		return 0, err
	}
	l.Frame.SetOffset(frame.OffsetChecksumStart, end)
	return end, nil
}

func (l LazyRequest) argsStart() (int, error) {
	if off, ok := l.Frame.CachedOffset(frame.OffsetArgsStart); ok {
		return off, nil
	}
	cs, err := l.checksumStart()
	if err != nil {
		return 0, err
	}
	off, err := checksum.LazySkip(l.Frame.Buf, cs)
	if err != nil {
		return 0, err
	}
	l.Frame.SetOffset(frame.OffsetArgsStart, off)
	return off, nil
}

// Arg1 returns the first argument's raw bytes, aliasing the frame buffer.
func (l LazyRequest) Arg1() ([]byte, error) {
	off, err := l.argsStart()
	if err != nil {
		return nil, err
	}
	arg, _, err := readLen2(l.Frame.Buf, off)
	if err != nil {
		return nil, fmt.Errorf("arg1: %w", err)
	}
	return arg, nil
}

// Arg1String returns arg1 validated as UTF-8 text, for the common case of a
// method name.
func (l LazyRequest) Arg1String() (string, error) {
	arg, err := l.Arg1()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(arg) {
		return "", fmt.Errorf("arg1 is not valid utf-8")
	}
	return string(arg), nil
}

// LazyResponse reads single call-response fields straight out of a received
// frame without materializing a CallResponse.
type LazyResponse struct {
	Frame *frame.Frame
}

// Flags reads the flags byte.
func (l LazyResponse) Flags() (message.Flags, error) {
	b, _, err := readUint8(l.Frame.Buf, l.Frame.Overhead+flagsOffset)
	return message.Flags(b), err
}

// Code reads the application-level response code.
func (l LazyResponse) Code() (message.Code, error) {
	b, _, err := readUint8(l.Frame.Buf, l.Frame.Overhead+codeOffset)
	return message.Code(b), err
}

// Tracing reads the fixed-width trace context.
func (l LazyResponse) Tracing() (message.Tracing, error) {
	t, _, err := readTracing(l.Frame.Buf, l.Frame.Overhead+resTracingOffset)
	return t, err
}

// Header scans the header section for one key without building the map,
// memoizing the checksum start as a side effect. Unlike the request path the
// header section sits at a fixed offset, so no prior skip is needed.
func (l LazyResponse) Header(name string) (string, bool, error) {
	val, ok, end, err := lazyHeader(l.Frame.Buf, l.Frame.Overhead+resHeadersOffset, name)
	if err != nil {
		return "", false, err
	}
	l.Frame.SetOffset(frame.OffsetChecksumStart, end)
	return val, ok, nil
}

func (l LazyResponse) checksumStart() (int, error) {
	if off, ok := l.Frame.CachedOffset(frame.OffsetChecksumStart); ok {
		return off, nil
	}
	end, err := skipHeaders(l.Frame.Buf, l.Frame.Overhead+resHeadersOffset)
	if err != nil {
		return 0, err
	}
	l.Frame.SetOffset(frame.OffsetChecksumStart, end)
	return end, nil
}

func (l LazyResponse) argsStart() (int, error) {
	if off, ok := l.Frame.CachedOffset(frame.OffsetArgsStart); ok {
		return off, nil
	}
	cs, err := l.checksumStart()
	if err != nil {
		return 0, err
	}
	off, err := checksum.LazySkip(l.Frame.Buf, cs)
	if err != nil {
		return 0, err
	}
	l.Frame.SetOffset(frame.OffsetArgsStart, off)
	return off, nil
}

// Arg1 returns the first argument's raw bytes, aliasing the frame buffer.
func (l LazyResponse) Arg1() ([]byte, error) {
	off, err := l.argsStart()
	if err != nil {
		return nil, err
	}
	arg, _, err := readLen2(l.Frame.Buf, off)
	if err != nil {
		return nil, fmt.Errorf("arg1: %w", err)
	}
	return arg, nil
}

// Arg1String returns arg1 validated as UTF-8 text.
func (l LazyResponse) Arg1String() (string, error) {
	arg, err := l.Arg1()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(arg) {
		return "", fmt.Errorf("arg1 is not valid utf-8")
	}
	return string(arg), nil
}

// IsFrameTerminal reports whether f carries the final fragment of its
// message's argument stream: true when the fragment bit is clear. Only the
// flags byte is read. The reassembly layer uses this to decide whether to
// wait for continuation frames.
func IsFrameTerminal(f *frame.Frame) (bool, error) {
	b, _, err := readUint8(f.Buf, f.Overhead+flagsOffset)
	if err != nil {
		return false, err
	}
	return !message.Flags(b).Has(message.FlagMoreFragments), nil
}
