// Package message defines the two payload-carrying message kinds of the wire
// protocol: call requests and call responses. These are the frames that move
// application data; control frames (handshake, ping, error signaling) live in
// the transport layer and never reach this package.
//
// A message is either built by the caller for encoding, or allocated fresh by
// a decode. The Cont link chains fragment bodies of the same kind together;
// it is populated by the reassembly layer, never by the codec itself.
package message

import "callwire/checksum"

// Flags is the single-byte bitset carried first in every call body. Only the
// fragment bit has fixed semantics; the remaining bits are reserved and must
// round-trip unchanged.
type Flags uint8

// FlagMoreFragments marks a frame whose argument stream continues in a
// follow-up frame on the same connection.
const FlagMoreFragments Flags = 0x01

// Has checks whether a flag is set.
func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Set sets/unsets a flag.
func (f *Flags) Set(flag Flags, on bool) {
	if on {
		*f |= flag
	} else {
		*f &^= flag
	}
}

// Code is the application-level outcome carried by a call response. It is
// orthogonal to protocol or transport errors, which travel in dedicated
// error frames.
type Code uint8

const (
	CodeOK    Code = 0x00
	CodeError Code = 0x01
)

// Tracing is the fixed-width trace context embedded in every call body:
// three 8-byte ids plus one flag byte, 25 bytes on the wire.
type Tracing struct {
	SpanID   uint64
	ParentID uint64
	TraceID  uint64
	Flags    byte
}

// CallRequest carries one outbound call. Args is the ordered argument list;
// by convention arg1 is the method name, arg2 the application headers and
// arg3 the body, but the codec does not care about arity.
type CallRequest struct {
	Flags    Flags
	TTL      uint32 // milliseconds the caller is willing to wait; zero is invalid
	Tracing  Tracing
	Service  string // destination service, at most 255 bytes
	Headers  *Headers
	Checksum checksum.Checksum
	Args     [][]byte

	// Cont links the follow-up fragment carrying the rest of the argument
	// stream. Populated by the reassembly layer when FlagMoreFragments was
	// set on this body's frame.
	Cont *CallRequest
}

// CallResponse mirrors CallRequest with the service name and TTL replaced by
// the response code.
type CallResponse struct {
	Flags    Flags
	Code     Code
	Tracing  Tracing
	Headers  *Headers
	Checksum checksum.Checksum
	Args     [][]byte

	Cont *CallResponse
}

// VerifyChecksum recomputes the digest over the argument list and compares
// it against the embedded checksum.
func (r *CallRequest) VerifyChecksum() error { return r.Checksum.Verify(r.Args) }

// VerifyChecksum recomputes the digest over the argument list and compares
// it against the embedded checksum.
func (r *CallResponse) VerifyChecksum() error { return r.Checksum.Verify(r.Args) }
