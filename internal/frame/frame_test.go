package frame

import (
	"bytes"
	"testing"
)

func TestBuildParseRoundTrip(t *testing.T) {
	meta := Metadata{
		Version:    FormatVersion,
		Marker:     Marker,
		Mode:       ModeAppend,
		Comp:       "lz77",
		PlainSize:  5,
		BlobSize:   3,
		SHA256:     "deadbeef",
		SourceKind: SourceFile,
		SourceName: "a.txt",
	}
	blob := []byte{1, 2, 3}

	framed, err := Build(meta, blob)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	container := append([]byte("junk prefix bytes"), framed...)
	offset, ok := Find(container)
	if !ok {
		t.Fatal("Find: marker not located")
	}

	gotMeta, gotBlob, err := Parse(container, offset)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if gotMeta.SourceName != "a.txt" || gotMeta.Mode != ModeAppend {
		t.Fatalf("unexpected metadata: %+v", gotMeta)
	}
	if !bytes.Equal(gotBlob, blob) {
		t.Fatalf("gotBlob = %v want %v", gotBlob, blob)
	}
}

func TestFindLastPrefersLastOccurrence(t *testing.T) {
	meta := Metadata{BlobSize: 1}
	framed, _ := Build(meta, []byte{9})
	container := append(append([]byte(Marker), []byte("garbage")...), framed...)

	offset, ok := FindLast(container)
	if !ok {
		t.Fatal("FindLast: not found")
	}
	if offset != len(Marker)+len("garbage") {
		t.Fatalf("offset = %d, want last occurrence", offset)
	}
}

func TestParseRejectsOutOfBoundsLength(t *testing.T) {
	container := append([]byte(Marker), 0xff, 0xff, 0xff, 0xff)
	if _, _, err := Parse(container, 0); err == nil {
		t.Fatal("expected error for out-of-bounds metadata length")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	container := append([]byte(Marker), 0, 0, 0, 3)
	container = append(container, []byte("xyz")...)
	if _, _, err := Parse(container, 0); err == nil {
		t.Fatal("expected error for malformed metadata JSON")
	}
}
