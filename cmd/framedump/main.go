// Command framedump builds (or loads) a call-request frame and inspects it
// the way a relay would: field by field through the lazy readers, without a
// full decode. Useful for eyeballing wire layouts and debugging captured
// frames.
//
// With no -in file it generates a sample frame first, so running it bare
// demonstrates the whole encode → lazy-inspect cycle.
package main

import (
	"encoding/hex"
	"flag"
	"os"
	"strings"

	"go.uber.org/zap"

	"callwire/checksum"
	"callwire/codec"
	"callwire/frame"
	"callwire/message"
)

func main() {
	in := flag.String("in", "", "hex-encoded frame file to inspect; empty generates a sample frame")
	overhead := flag.Int("overhead", 16, "fixed envelope bytes preceding the call body")
	headerKey := flag.String("header", "cn", "transport header key to extract")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	var buf []byte
	if *in != "" {
		raw, err := os.ReadFile(*in)
		if err != nil {
			logger.Fatal("read frame file", zap.Error(err))
		}
		buf, err = hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			logger.Fatal("decode hex", zap.Error(err))
		}
	} else {
		buf = sampleFrame(logger, *overhead)
		logger.Info("generated sample frame",
			zap.Int("bytes", len(buf)),
			zap.String("hex", hex.EncodeToString(buf)))
	}

	f := frame.New(buf, *overhead)
	lazy := codec.LazyRequest{Frame: f}

	flags, err := lazy.Flags()
	if err != nil {
		logger.Fatal("read flags", zap.Error(err))
	}
	ttl, err := lazy.TTL()
	if err != nil {
		logger.Fatal("read ttl", zap.Error(err))
	}
	tracing, err := lazy.Tracing()
	if err != nil {
		logger.Fatal("read tracing", zap.Error(err))
	}
	service, err := lazy.Service()
	if err != nil {
		logger.Fatal("read service", zap.Error(err))
	}
	hval, hok, err := lazy.Header(*headerKey)
	if err != nil {
		logger.Fatal("read header", zap.String("key", *headerKey), zap.Error(err))
	}
	arg1, err := lazy.Arg1String()
	if err != nil {
		logger.Fatal("read arg1", zap.Error(err))
	}
	terminal, err := codec.IsFrameTerminal(f)
	if err != nil {
		logger.Fatal("read terminal flag", zap.Error(err))
	}

	logger.Info("call request",
		zap.Uint8("flags", uint8(flags)),
		zap.Uint32("ttl", ttl),
		zap.Uint64("traceid", tracing.TraceID),
		zap.Uint64("spanid", tracing.SpanID),
		zap.String("service", service),
		zap.String("header."+*headerKey, hval),
		zap.Bool("header.found", hok),
		zap.String("arg1", arg1),
		zap.Bool("terminal", terminal))
}

// sampleFrame encodes a small request the way a client would, checksum and
// all, prefixed by a zeroed envelope of the given overhead.
func sampleFrame(logger *zap.Logger, overhead int) []byte {
	headers := message.NewHeaders()
	headers.Set("cn", "framedump")
	headers.Set("as", "raw")

	args := [][]byte{[]byte("Echo::echo"), []byte("{}"), []byte(`{"msg":"hello"}`)}
	cs, err := checksum.Sum(checksum.TypeCRC32, args)
	if err != nil {
		logger.Fatal("compute checksum", zap.Error(err))
	}

	req := &message.CallRequest{
		TTL:      1000,
		Tracing:  message.Tracing{SpanID: 0x01, TraceID: 0x02, Flags: 0x01},
		Service:  "echo",
		Headers:  headers,
		Checksum: cs,
		Args:     args,
	}

	size, err := codec.RequestByteLength(req)
	if err != nil {
		logger.Fatal("size request", zap.Error(err))
	}
	buf := make([]byte, overhead+size)
	if _, err := codec.WriteRequest(req, buf, overhead, len(buf)); err != nil {
		logger.Fatal("encode request", zap.Error(err))
	}
	return buf
}
