package codec

import "callwire/message"

// tracingLength is the fixed width of the embedded trace context: span,
// parent and trace ids at 8 bytes each, plus one flag byte.
const tracingLength = 8 + 8 + 8 + 1

func readTracing(buf []byte, off int) (message.Tracing, int, error) {
	var t message.Tracing
	var err error
	if t.SpanID, off, err = readUint64(buf, off); err != nil {
		return message.Tracing{}, 0, err
	}
	if t.ParentID, off, err = readUint64(buf, off); err != nil {
		return message.Tracing{}, 0, err
	}
	if t.TraceID, off, err = readUint64(buf, off); err != nil {
		return message.Tracing{}, 0, err
	}
	if t.Flags, off, err = readUint8(buf, off); err != nil {
		return message.Tracing{}, 0, err
	}
	return t, off, nil
}

func writeTracing(t message.Tracing, buf []byte, off int) (int, error) {
	var err error
	if off, err = writeUint64(buf, off, t.SpanID); err != nil {
		return 0, err
	}
	if off, err = writeUint64(buf, off, t.ParentID); err != nil {
		return 0, err
	}
	if off, err = writeUint64(buf, off, t.TraceID); err != nil {
		return 0, err
	}
	return writeUint8(buf, off, t.Flags)
}
