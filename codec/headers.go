package codec

import (
	"fmt"

	"callwire/message"
)

// Transport header map, "header1" scheme: a 1-byte entry count followed by
// nh (key~1 value~1) pairs in insertion order.

// headersByteLength computes the encoded size of h, failing before any write
// when the map or one of its fields cannot be represented.
func headersByteLength(h *message.Headers) (int, error) {
	if h.Len() > 0xff {
		return 0, fmt.Errorf("header map with %d entries: %w", h.Len(), ErrFieldTooLong)
	}
	n := 1
	var err error
	h.Each(func(k, v string) bool {
		if len(k) > 0xff {
			err = fmt.Errorf("header key %q of %d bytes: %w", k, len(k), ErrFieldTooLong)
			return false
		}
		if len(v) > 0xff {
			err = fmt.Errorf("header %q value of %d bytes: %w", k, len(v), ErrFieldTooLong)
			return false
		}
		n += 1 + len(k) + 1 + len(v)
		return true
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func readHeaders(buf []byte, off int) (*message.Headers, int, error) {
	nh, off, err := readUint8(buf, off)
	if err != nil {
		return nil, 0, err
	}
	h := message.NewHeaders()
	for i := 0; i < int(nh); i++ {
		var k, v []byte
		if k, off, err = readLen1(buf, off); err != nil {
			return nil, 0, fmt.Errorf("header %d key: %w", i, err)
		}
		if v, off, err = readLen1(buf, off); err != nil {
			return nil, 0, fmt.Errorf("header %d value: %w", i, err)
		}
		h.Set(string(k), string(v))
	}
	return h, off, nil
}

func writeHeaders(h *message.Headers, buf []byte, off int) (int, error) {
	if h.Len() > 0xff {
		return 0, fmt.Errorf("header map with %d entries: %w", h.Len(), ErrFieldTooLong)
	}
	off, err := writeUint8(buf, off, uint8(h.Len()))
	if err != nil {
		return 0, err
	}
	h.Each(func(k, v string) bool {
		if off, err = writeLen1(buf, off, []byte(k)); err != nil {
			return false
		}
		if off, err = writeLen1(buf, off, []byte(v)); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	return off, nil
}

// skipHeaders walks the header section computing only its end offset,
// allocating nothing.
func skipHeaders(buf []byte, off int) (int, error) {
	nh, off, err := readUint8(buf, off)
	if err != nil {
		return 0, err
	}
	for i := 0; i < int(nh); i++ {
		if _, off, err = readLen1(buf, off); err != nil {
			return 0, fmt.Errorf("header %d key: %w", i, err)
		}
		if _, off, err = readLen1(buf, off); err != nil {
			return 0, fmt.Errorf("header %d value: %w", i, err)
		}
	}
	return off, nil
}

// lazyHeader scans the header section for one key without building the map.
// It always walks to the end of the section so the returned end offset is
// valid whether or not the key was found.
func lazyHeader(buf []byte, off int, key string) (val string, found bool, end int, err error) {
	nh, off, err := readUint8(buf, off)
	if err != nil {
		return "", false, 0, err
	}
	for i := 0; i < int(nh); i++ {
		var k, v []byte
		if k, off, err = readLen1(buf, off); err != nil {
			return "", false, 0, fmt.Errorf("header %d key: %w", i, err)
		}
		if v, off, err = readLen1(buf, off); err != nil {
			return "", false, 0, fmt.Errorf("header %d value: %w", i, err)
		}
		// Last one wins, matching what readHeaders builds for duplicates.
		if string(k) == key {
			val, found = string(v), true
		}
	}
	return val, found, off, nil
}
