package compress

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestLZ78RoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("aaaaaaaaaaaaaaaaaaaa"),
		[]byte("abcabcabcabcabcabcabc"),
		{0x00, 0x00, 0x00, 0x01, 0x00, 0x02},
		[]byte("the quick brown fox jumps over the lazy dog"),
	}
	for _, data := range cases {
		blob := lz78Compress(data)
		got, err := lz78Decompress(blob)
		if err != nil {
			t.Fatalf("lz78Decompress(%q): %v", data, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch: got %q want %q", got, data)
		}
	}
}

func TestLZ78RoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		data := make([]byte, r.Intn(2000))
		r.Read(data)
		blob := lz78Compress(data)
		got, err := lz78Decompress(blob)
		if err != nil {
			t.Fatalf("decompress: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch for len %d", len(data))
		}
	}
}

func TestLZ78DecompressRejectsBadSignature(t *testing.T) {
	if _, err := lz78Decompress([]byte("not-lz78-data")); err == nil {
		t.Fatal("expected error for bad signature")
	}
}

func TestLZ78DecompressRejectsBadIndex(t *testing.T) {
	blob := lz78Compress([]byte("ab"))
	// Corrupt the varint index of the first record to something huge.
	blob[9] = 0xff
	blob[10] = 0xff
	if _, err := lz78Decompress(blob); err == nil {
		t.Fatal("expected error for out-of-range dictionary index")
	}
}

func TestCompressAutoDeterministic(t *testing.T) {
	data := bytes.Repeat([]byte("hello world "), 200)
	blob1, method1, ratio1, err := CompressAuto(data)
	if err != nil {
		t.Fatalf("CompressAuto: %v", err)
	}
	blob2, method2, ratio2, err := CompressAuto(data)
	if err != nil {
		t.Fatalf("CompressAuto: %v", err)
	}
	if !bytes.Equal(blob1, blob2) || method1 != method2 || ratio1 != ratio2 {
		t.Fatal("CompressAuto is not a pure function of its input")
	}
}

func TestCompressAutoRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("x"),
		bytes.Repeat([]byte("abcabcabc"), 500),
		[]byte("\x00\x01\x02\x03\x04\x05"),
	}
	for _, data := range cases {
		blob, _, _, err := CompressAuto(data)
		if err != nil {
			t.Fatalf("CompressAuto: %v", err)
		}
		got, err := Decompress(blob)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch")
		}
	}
}

func TestCompressAutoPicksSmaller(t *testing.T) {
	data := bytes.Repeat([]byte{'z'}, 10000)
	blob, _, _, err := CompressAuto(data)
	if err != nil {
		t.Fatalf("CompressAuto: %v", err)
	}
	lz77, err := lz77Compress(data)
	if err != nil {
		t.Fatal(err)
	}
	lz78 := lz78Compress(data)
	smaller := len(lz77)
	if len(lz78) < smaller {
		smaller = len(lz78)
	}
	if len(blob) > smaller+5 {
		t.Fatalf("CompressAuto blob len %d exceeds min(lz77,lz78)+5 = %d", len(blob), smaller+5)
	}
}
