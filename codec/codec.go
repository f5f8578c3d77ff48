// Package codec implements encode and decode of the two payload-carrying
// message kinds of the wire protocol: call requests and call responses.
//
// Both bodies share one fixed field order (all integers big-endian; ~1/~2
// mark 1- and 2-byte length prefixes):
//
//	request:  flags:1 ttl:4 tracing:24 traceflags:1 service~1 nh:1 (hk~1 hv~1){nh} csumtype:1 (csum:4){0,1} (arg~2)*
//	response: flags:1 code:1 tracing:24 traceflags:1 nh:1 (hk~1 hv~1){nh} csumtype:1 (csum:4){0,1} (arg~2)*
//
// The package offers two views of the same bytes. The eager path
// (ReadRequest, ReadResponse) walks the full layout and materializes a
// message struct. The lazy path (LazyRequest, LazyResponse) reads single
// fields straight from a received frame, memoizing the variable-length
// section boundaries in the frame's offset cache so relay code can route on
// the service name or one header without paying for a full decode.
//
// Writers are two-phase: the flags byte is reserved first and patched last,
// because the argument writer is the one that finds out whether the frame
// must be fragmented.
package codec

// Fixed offsets relative to the start of a call body. Everything after the
// tracing section is variable-length.
const (
	flagsOffset = 0

	ttlOffset        = 1
	reqTracingOffset = ttlOffset + 4
	reqServiceOffset = reqTracingOffset + tracingLength

	codeOffset       = 1
	resTracingOffset = codeOffset + 1
	resHeadersOffset = resTracingOffset + tracingLength
)
