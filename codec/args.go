package codec

import (
	"fmt"

	"callwire/checksum"
	"callwire/message"
)

// Argument stream: the checksum section immediately followed by 2-byte
// length-prefixed arguments filling the remainder of the frame.

// argsByteLength sums the checksum section width and every argument's
// prefix+payload width, assuming a single unfragmented frame.
func argsByteLength(t checksum.Type, args [][]byte) (int, error) {
	n, err := checksum.ByteLength(t)
	if err != nil {
		return 0, err
	}
	for i, arg := range args {
		if len(arg) > 0xffff {
			return 0, fmt.Errorf("arg%d of %d bytes: %w", i+1, len(arg), ErrFieldTooLong)
		}
		n += 2 + len(arg)
	}
	return n, nil
}

// readArgs decodes the checksum section and every remaining argument. The
// returned args alias buf.
func readArgs(buf []byte, off int) (checksum.Checksum, [][]byte, int, error) {
	cs, off, err := checksum.ReadFrom(buf, off)
	if err != nil {
		return checksum.Checksum{}, nil, 0, err
	}
	var args [][]byte
	for off < len(buf) {
		var arg []byte
		if arg, off, err = readLen2(buf, off); err != nil {
			return checksum.Checksum{}, nil, 0, fmt.Errorf("arg%d: %w", len(args)+1, err)
		}
		args = append(args, arg)
	}
	return cs, args, off, nil
}

// writeArgs writes the checksum section and then as much of the argument
// stream as fits below limit, the frame capacity supplied by the transport.
//
// When the full stream fits, flags are left alone. When it does not, the
// fragment bit is set through flags. This is the one place the final flag
// state is decided, which is why composite writers patch the flags byte only
// after this step. The frame is then filled at byte granularity: the last
// argument written may be a partial one whose length prefix covers only the
// bytes present in this frame. The remainder travels in continuation frames
// produced by the fragmentation layer.
func writeArgs(cs checksum.Checksum, args [][]byte, flags *message.Flags, buf []byte, off, limit int) (int, error) {
	if limit > len(buf) {
		limit = len(buf)
	}
	off, err := cs.WriteInto(buf, off)
	if err != nil {
		return 0, err
	}

	total := 0
	oversize := false
	for _, arg := range args {
		total += 2 + len(arg)
		if len(arg) > 0xffff {
			oversize = true
		}
	}
	if !oversize && off+total <= limit {
		for _, arg := range args {
			if off, err = writeLen2(buf, off, arg); err != nil {
				return 0, err
			}
		}
		return off, nil
	}

	flags.Set(message.FlagMoreFragments, true)
	for _, arg := range args {
		rest := arg
		for {
			space := limit - off - 2
			if space < 0 || (space == 0 && len(rest) > 0) {
				return off, nil
			}
			if space > 0xffff {
				space = 0xffff
			}
			chunk := rest
			if len(chunk) > space {
				chunk = chunk[:space]
			}
			if off, err = writeLen2(buf, off, chunk); err != nil {
				return 0, err
			}
			rest = rest[len(chunk):]
			if len(rest) == 0 {
				break
			}
		}
	}
	return off, nil
}
