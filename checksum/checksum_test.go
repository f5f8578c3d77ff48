package checksum

import (
	"errors"
	"hash/crc32"
	"testing"
)

func TestByteLength(t *testing.T) {
	if n, err := ByteLength(TypeNone); err != nil || n != 1 {
		t.Errorf("ByteLength(None) = %d, %v; want 1, nil", n, err)
	}
	for _, typ := range []Type{TypeCRC32, TypeCRC32C, TypeFarmhash} {
		if n, err := ByteLength(typ); err != nil || n != 5 {
			t.Errorf("ByteLength(%#02x) = %d, %v; want 5, nil", byte(typ), n, err)
		}
	}
	if _, err := ByteLength(Type(0x7f)); err == nil {
		t.Error("ByteLength should fail for an unknown type")
	}
}

func TestSumMatchesPrefixFreeStream(t *testing.T) {
	// The digest covers the raw argument bytes only, so argument boundaries
	// must not matter.
	a := [][]byte{[]byte("hello"), []byte(" "), []byte("world")}
	b := [][]byte{[]byte("hello world")}

	ca, err := Sum(TypeCRC32, a)
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}
	cb, err := Sum(TypeCRC32, b)
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}
	if ca.Value != cb.Value {
		t.Errorf("split args digest %08x != joined digest %08x", ca.Value, cb.Value)
	}
	if want := crc32.ChecksumIEEE([]byte("hello world")); ca.Value != want {
		t.Errorf("crc32 digest = %08x, want %08x", ca.Value, want)
	}
}

func TestVerify(t *testing.T) {
	args := [][]byte{[]byte("Echo::echo"), []byte("{}"), []byte(`{"msg":"hi"}`)}

	for _, typ := range []Type{TypeCRC32, TypeCRC32C, TypeFarmhash} {
		cs, err := Sum(typ, args)
		if err != nil {
			t.Fatalf("Sum(%#02x) failed: %v", byte(typ), err)
		}
		if err := cs.Verify(args); err != nil {
			t.Errorf("Verify(%#02x) on untampered args: %v", byte(typ), err)
		}

		// Flip a single byte of one argument.
		args[2][3] ^= 0x01
		err = cs.Verify(args)
		args[2][3] ^= 0x01
		if err == nil {
			t.Errorf("Verify(%#02x) should fail after tampering", byte(typ))
			continue
		}
		var mismatch *MismatchError
		if !errors.As(err, &mismatch) {
			t.Errorf("Verify(%#02x) error = %v, want MismatchError", byte(typ), err)
		} else if mismatch.Want != cs.Value {
			t.Errorf("MismatchError.Want = %08x, want %08x", mismatch.Want, cs.Value)
		}
	}

	// Type None verifies anything.
	none := Checksum{}
	if err := none.Verify(args); err != nil {
		t.Errorf("None should always verify, got %v", err)
	}
	if err := none.Verify(nil); err != nil {
		t.Errorf("None should verify an empty list, got %v", err)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	buf := make([]byte, 8)

	in := Checksum{Type: TypeCRC32C, Value: 0xdeadbeef}
	end, err := in.WriteInto(buf, 1)
	if err != nil {
		t.Fatalf("WriteInto failed: %v", err)
	}
	if end != 6 {
		t.Errorf("WriteInto end = %d, want 6", end)
	}

	out, end2, err := ReadFrom(buf, 1)
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	if out != in || end2 != end {
		t.Errorf("round trip: got %+v end %d, want %+v end %d", out, end2, in, end)
	}

	skip, err := LazySkip(buf, 1)
	if err != nil || skip != end {
		t.Errorf("LazySkip = %d, %v; want %d, nil", skip, err, end)
	}

	// None occupies only the tag byte.
	end, err = Checksum{}.WriteInto(buf, 0)
	if err != nil || end != 1 {
		t.Fatalf("WriteInto(None) = %d, %v; want 1, nil", end, err)
	}
	if skip, err = LazySkip(buf, 0); err != nil || skip != 1 {
		t.Errorf("LazySkip(None) = %d, %v; want 1, nil", skip, err)
	}
}

func TestReadErrors(t *testing.T) {
	if _, _, err := ReadFrom([]byte{}, 0); err == nil {
		t.Error("ReadFrom on empty buffer should fail")
	}
	// Tag promises 4 digest bytes but only 2 remain.
	if _, _, err := ReadFrom([]byte{byte(TypeCRC32), 0x00, 0x00}, 0); err == nil {
		t.Error("ReadFrom on truncated digest should fail")
	}
	if _, _, err := ReadFrom([]byte{0x7f, 0, 0, 0, 0}, 0); err == nil {
		t.Error("ReadFrom on unknown type should fail")
	}
	if _, err := LazySkip([]byte{0x7f, 0, 0, 0, 0}, 0); err == nil {
		t.Error("LazySkip on unknown type should fail")
	}
}

func TestRegister(t *testing.T) {
	const typeXOR = Type(0x42)
	Register(typeXOR, func(args [][]byte) uint32 {
		var sum uint32
		for _, arg := range args {
			for _, b := range arg {
				sum ^= uint32(b)
			}
		}
		return sum
	})
	defer delete(registry, typeXOR)

	cs, err := Sum(typeXOR, [][]byte{{0x01}, {0x03}})
	if err != nil {
		t.Fatalf("Sum with registered type failed: %v", err)
	}
	if cs.Value != 0x02 {
		t.Errorf("registered digest = %08x, want 00000002", cs.Value)
	}
	if n, err := ByteLength(typeXOR); err != nil || n != 5 {
		t.Errorf("ByteLength(registered) = %d, %v; want 5, nil", n, err)
	}

	// None is fixed.
	Register(TypeNone, func([][]byte) uint32 { return 1 })
	if _, ok := registry[TypeNone]; ok {
		t.Error("Register must not install a digest for TypeNone")
	}
}
