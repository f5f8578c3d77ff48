// Package checksum implements the tagged digest section that protects the
// argument stream of a call body.
//
// The section is a 1-byte type tag optionally followed by a 4-byte digest:
// the tag alone determines the width. Type None carries no digest bytes and
// always verifies; every other known type carries exactly 4 bytes computed
// over the raw argument bytes in order (length prefixes excluded). Digest
// algorithms are pluggable through a registry so additional types can be
// added without touching the codec.
package checksum

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	farm "github.com/dgryski/go-farm"
)

// Type is the on-wire checksum type tag.
type Type byte

const (
	TypeNone     Type = 0x00
	TypeCRC32    Type = 0x01
	TypeFarmhash Type = 0x02
	TypeCRC32C   Type = 0x03
)

// DigestFunc computes a 4-byte digest over the exact bytes of an argument
// list, in order, ignoring the 2-byte length prefixes.
type DigestFunc func(args [][]byte) uint32

var castagnoliTable = crc32.MakeTable(crc32.Castagnoli)

// registry maps a type tag to its digest implementation. Register at init
// time; the map is read concurrently once frames start flowing.
var registry = map[Type]DigestFunc{
	TypeCRC32:    func(args [][]byte) uint32 { return crcArgs(crc32.IEEETable, args) },
	TypeCRC32C:   func(args [][]byte) uint32 { return crcArgs(castagnoliTable, args) },
	TypeFarmhash: farmArgs,
}

func crcArgs(tab *crc32.Table, args [][]byte) uint32 {
	var sum uint32
	for _, arg := range args {
		sum = crc32.Update(sum, tab, arg)
	}
	return sum
}

func farmArgs(args [][]byte) uint32 {
	// farmhash has no streaming form, so hash the concatenated stream.
	var n int
	for _, arg := range args {
		n += len(arg)
	}
	buf := make([]byte, 0, n)
	for _, arg := range args {
		buf = append(buf, arg...)
	}
	return farm.Fingerprint32(buf)
}

// Register adds or replaces the digest implementation for a type. Type None
// is fixed and cannot be reassigned.
func Register(t Type, fn DigestFunc) {
	if t == TypeNone || fn == nil {
		return
	}
	registry[t] = fn
}

// ByteLength returns the encoded width of the checksum section for a type:
// the tag byte plus the digest value when one is present. Unknown types are
// an error so malformed frames are caught before any digest bytes are read.
func ByteLength(t Type) (int, error) {
	if t == TypeNone {
		return 1, nil
	}
	if _, ok := registry[t]; !ok {
		return 0, fmt.Errorf("checksum: unknown type 0x%02x", byte(t))
	}
	return 1 + 4, nil
}

// Checksum is the decoded checksum section of a call body.
type Checksum struct {
	Type  Type
	Value uint32 // meaningful only when Type != TypeNone
}

// Sum computes the digest of args under t, returning a ready-to-encode
// checksum. Type None yields the zero checksum.
func Sum(t Type, args [][]byte) (Checksum, error) {
	if t == TypeNone {
		return Checksum{}, nil
	}
	fn, ok := registry[t]
	if !ok {
		return Checksum{}, fmt.Errorf("checksum: unknown type 0x%02x", byte(t))
	}
	return Checksum{Type: t, Value: fn(args)}, nil
}

// ReadFrom decodes the type tag and, when present, the digest value starting
// at off, returning the checksum and the offset just past the section.
func ReadFrom(buf []byte, off int) (Checksum, int, error) {
	if off < 0 || off >= len(buf) {
		return Checksum{}, 0, fmt.Errorf("checksum: truncated at offset %d", off)
	}
	c := Checksum{Type: Type(buf[off])}
	n, err := ByteLength(c.Type)
	if err != nil {
		return Checksum{}, 0, err
	}
	if off+n > len(buf) {
		return Checksum{}, 0, fmt.Errorf("checksum: truncated at offset %d", off)
	}
	if c.Type != TypeNone {
		c.Value = binary.BigEndian.Uint32(buf[off+1 : off+5])
	}
	return c, off + n, nil
}

// WriteInto encodes the section at off and returns the offset just past it.
func (c Checksum) WriteInto(buf []byte, off int) (int, error) {
	n, err := ByteLength(c.Type)
	if err != nil {
		return 0, err
	}
	if off < 0 || off+n > len(buf) {
		return 0, fmt.Errorf("checksum: no room for %d bytes at offset %d", n, off)
	}
	buf[off] = byte(c.Type)
	if c.Type != TypeNone {
		binary.BigEndian.PutUint32(buf[off+1:off+5], c.Value)
	}
	return off + n, nil
}

// LazySkip returns the offset just past the checksum section without reading
// the digest value.
func LazySkip(buf []byte, off int) (int, error) {
	if off < 0 || off >= len(buf) {
		return 0, fmt.Errorf("checksum: truncated at offset %d", off)
	}
	n, err := ByteLength(Type(buf[off]))
	if err != nil {
		return 0, err
	}
	if off+n > len(buf) {
		return 0, fmt.Errorf("checksum: truncated at offset %d", off)
	}
	return off + n, nil
}

// MismatchError reports a digest disagreement found by Verify.
type MismatchError struct {
	Type Type
	Want uint32 // digest carried on the wire
	Got  uint32 // digest recomputed over the argument bytes
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum: type 0x%02x mismatch: wire %08x, computed %08x",
		byte(e.Type), e.Want, e.Got)
}

// Verify recomputes the digest over args and compares it against c. Type
// None always verifies. A mismatch is reported, not acted on: the caller
// decides whether to drop the frame.
func (c Checksum) Verify(args [][]byte) error {
	if c.Type == TypeNone {
		return nil
	}
	fn, ok := registry[c.Type]
	if !ok {
		return fmt.Errorf("checksum: unknown type 0x%02x", byte(c.Type))
	}
	if got := fn(args); got != c.Value {
		return &MismatchError{Type: c.Type, Want: c.Value, Got: got}
	}
	return nil
}
