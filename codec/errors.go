package codec

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every decode or size-computation failure wraps one of
// these so callers can classify with errors.Is instead of string matching.
var (
	// ErrTruncated reports a buffer shorter than a field requires.
	ErrTruncated = errors.New("truncated buffer")
	// ErrMalformedLength reports a length prefix whose span extends past the
	// buffer end.
	ErrMalformedLength = errors.New("length prefix exceeds buffer")
	// ErrFieldTooLong reports a field larger than its length prefix can
	// represent. Raised during size computation, before any byte is written.
	ErrFieldTooLong = errors.New("field exceeds length prefix range")
)

// InvalidTTLError reports a request TTL of zero. When Decoded is true the
// invalid value came off the wire and the error is a parse error; otherwise
// the caller built an invalid message and the error is a validation failure
// caught before encoding.
type InvalidTTLError struct {
	TTL     uint32
	Decoded bool
}

func (e *InvalidTTLError) Error() string {
	if e.Decoded {
		return fmt.Sprintf("parse error: invalid ttl %d", e.TTL)
	}
	return fmt.Sprintf("invalid ttl %d", e.TTL)
}
