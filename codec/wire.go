package codec

import (
	"encoding/binary"
	"fmt"
)

// Low-level big-endian accessors shared by the eager and lazy paths. Every
// reader validates the remaining buffer before touching it and returns the
// offset just past what it consumed, so callers can chain sections without
// re-checking bounds.

func readUint8(buf []byte, off int) (uint8, int, error) {
	if off < 0 || off+1 > len(buf) {
		return 0, 0, fmt.Errorf("read byte at %d: %w", off, ErrTruncated)
	}
	return buf[off], off + 1, nil
}

func readUint16(buf []byte, off int) (uint16, int, error) {
	if off < 0 || off+2 > len(buf) {
		return 0, 0, fmt.Errorf("read uint16 at %d: %w", off, ErrTruncated)
	}
	return binary.BigEndian.Uint16(buf[off : off+2]), off + 2, nil
}

func readUint32(buf []byte, off int) (uint32, int, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, 0, fmt.Errorf("read uint32 at %d: %w", off, ErrTruncated)
	}
	return binary.BigEndian.Uint32(buf[off : off+4]), off + 4, nil
}

func readUint64(buf []byte, off int) (uint64, int, error) {
	if off < 0 || off+8 > len(buf) {
		return 0, 0, fmt.Errorf("read uint64 at %d: %w", off, ErrTruncated)
	}
	return binary.BigEndian.Uint64(buf[off : off+8]), off + 8, nil
}

// readLen1 reads a 1-byte length prefix and returns the spanned bytes,
// aliasing buf.
func readLen1(buf []byte, off int) ([]byte, int, error) {
	n, off, err := readUint8(buf, off)
	if err != nil {
		return nil, 0, err
	}
	end := off + int(n)
	if end > len(buf) {
		return nil, 0, fmt.Errorf("span [%d:%d): %w", off, end, ErrMalformedLength)
	}
	return buf[off:end], end, nil
}

// readLen2 reads a 2-byte length prefix and returns the spanned bytes,
// aliasing buf.
func readLen2(buf []byte, off int) ([]byte, int, error) {
	n, off, err := readUint16(buf, off)
	if err != nil {
		return nil, 0, err
	}
	end := off + int(n)
	if end > len(buf) {
		return nil, 0, fmt.Errorf("span [%d:%d): %w", off, end, ErrMalformedLength)
	}
	return buf[off:end], end, nil
}

func writeUint8(buf []byte, off int, v uint8) (int, error) {
	if off < 0 || off+1 > len(buf) {
		return 0, fmt.Errorf("write byte at %d: %w", off, ErrTruncated)
	}
	buf[off] = v
	return off + 1, nil
}

func writeUint16(buf []byte, off int, v uint16) (int, error) {
	if off < 0 || off+2 > len(buf) {
		return 0, fmt.Errorf("write uint16 at %d: %w", off, ErrTruncated)
	}
	binary.BigEndian.PutUint16(buf[off:off+2], v)
	return off + 2, nil
}

func writeUint32(buf []byte, off int, v uint32) (int, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, fmt.Errorf("write uint32 at %d: %w", off, ErrTruncated)
	}
	binary.BigEndian.PutUint32(buf[off:off+4], v)
	return off + 4, nil
}

func writeUint64(buf []byte, off int, v uint64) (int, error) {
	if off < 0 || off+8 > len(buf) {
		return 0, fmt.Errorf("write uint64 at %d: %w", off, ErrTruncated)
	}
	binary.BigEndian.PutUint64(buf[off:off+8], v)
	return off + 8, nil
}

func writeLen1(buf []byte, off int, p []byte) (int, error) {
	if len(p) > 0xff {
		return 0, fmt.Errorf("len1 field of %d bytes: %w", len(p), ErrFieldTooLong)
	}
	off, err := writeUint8(buf, off, uint8(len(p)))
	if err != nil {
		return 0, err
	}
	if off+len(p) > len(buf) {
		return 0, fmt.Errorf("write %d bytes at %d: %w", len(p), off, ErrTruncated)
	}
	copy(buf[off:], p)
	return off + len(p), nil
}

func writeLen2(buf []byte, off int, p []byte) (int, error) {
	if len(p) > 0xffff {
		return 0, fmt.Errorf("len2 field of %d bytes: %w", len(p), ErrFieldTooLong)
	}
	off, err := writeUint16(buf, off, uint16(len(p)))
	if err != nil {
		return 0, err
	}
	if off+len(p) > len(buf) {
		return 0, fmt.Errorf("write %d bytes at %d: %w", len(p), off, ErrTruncated)
	}
	copy(buf[off:], p)
	return off + len(p), nil
}
