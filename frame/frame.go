// Package frame wraps one unit of bytes delivered by the transport layer:
// a fixed-size envelope followed by a type-specific body. The transport owns
// the buffer and the envelope; this package only gives the codec a view past
// the envelope plus a small per-frame cache for the offsets of the body's
// variable-length sections.
package frame

// OffsetKey names a variable-length boundary inside a call body whose
// position is worth remembering once computed. The set is closed: each key
// maps to one fixed slot in the cache.
type OffsetKey int

const (
	// OffsetServiceEnd is the end of the service name field (requests only).
	OffsetServiceEnd OffsetKey = iota
	// OffsetChecksumStart is the end of the header map, where the checksum
	// section begins.
	OffsetChecksumStart
	// OffsetArgsStart is the end of the checksum section, where the first
	// argument's length prefix begins.
	OffsetArgsStart

	numOffsetKeys
)

// Frame is a received (or to-be-sent) buffer with its envelope overhead and
// an owned offset cache. The cache is scoped to exactly this frame: it is a
// decode-time optimization, not message state, and is discarded with the
// frame. A frame belongs to a single handler at a time, so the cache needs
// no locking.
type Frame struct {
	Buf      []byte
	Overhead int

	offsets [numOffsetKeys]int
	known   [numOffsetKeys]bool
}

// New wraps buf with the given envelope overhead and a cold offset cache.
func New(buf []byte, overhead int) *Frame {
	return &Frame{Buf: buf, Overhead: overhead}
}

// Body returns the type-specific body bytes past the envelope.
func (f *Frame) Body() []byte { return f.Buf[f.Overhead:] }

// CachedOffset returns the memoized absolute buffer offset for key, if one
// has been computed on this frame.
func (f *Frame) CachedOffset(key OffsetKey) (int, bool) {
	if !f.known[key] {
		return 0, false
	}
	return f.offsets[key], true
}

// SetOffset memoizes an absolute buffer offset for key. The first computed
// value is authoritative; later writes for the same key are ignored.
func (f *Frame) SetOffset(key OffsetKey, off int) {
	if f.known[key] {
		return
	}
	f.offsets[key] = off
	f.known[key] = true
}
