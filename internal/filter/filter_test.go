package filter

import (
	"bytes"
	"testing"
)

func TestDeflateRoundTrip(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 17)
	}

	for _, level := range []int{1, 6, 9} {
		codec := NewDeflate(level)
		encoded, err := codec.Encode(data)
		if err != nil {
			t.Fatalf("level %d: Encode failed: %v", level, err)
		}
		if len(encoded) >= len(data) {
			t.Errorf("level %d: repetitive data did not compress (%d >= %d)",
				level, len(encoded), len(data))
		}

		decoded, err := codec.Decode(encoded, len(data))
		if err != nil {
			t.Fatalf("level %d: Decode failed: %v", level, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("level %d: round trip mismatch", level)
		}
	}
}

func TestDeflateEmpty(t *testing.T) {
	codec := NewDeflate(1)
	encoded, err := codec.Encode(nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := codec.Decode(encoded, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected empty payload, got %d bytes", len(decoded))
	}
}

func TestDeflateTruncatedInput(t *testing.T) {
	codec := NewDeflate(1)
	encoded, err := codec.Encode([]byte("some payload worth keeping"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := codec.Decode(encoded[:len(encoded)/2], 26); err == nil {
		t.Fatal("expected an error for truncated input")
	}
}
