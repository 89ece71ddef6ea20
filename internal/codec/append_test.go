package codec

import (
	"bytes"
	"testing"

	"stegosuite/internal/frame"
)

func TestAppendEmbedExtractRoundTrip(t *testing.T) {
	cover := []byte("a perfectly ordinary cover file\x89PNG\r\n")
	framed, err := frame.Build(frame.Metadata{BlobSize: 3}, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("frame.Build: %v", err)
	}

	var a Append
	stego, err := a.Embed(cover, framed)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !bytes.HasPrefix(stego, cover) {
		t.Fatal("Embed must leave the cover's bytes untouched at the head of the container")
	}

	got, err := a.Extract(stego)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, framed) {
		t.Fatalf("Extract = %v, want %v", got, framed)
	}
}

func TestAppendEmbedRejectsMarkerCollision(t *testing.T) {
	cover := []byte("leading " + frame.Marker + " trailing")
	var a Append
	if _, err := a.Embed(cover, []byte("framed")); err == nil {
		t.Fatal("expected error when cover already contains the marker")
	}
}

func TestAppendExtractRejectsMissingMarker(t *testing.T) {
	var a Append
	if _, err := a.Extract([]byte("no marker here")); err == nil {
		t.Fatal("expected error when stego has no marker")
	}
}

func TestAppendExtractPrefersLastOccurrence(t *testing.T) {
	cover := []byte("prefix " + frame.Marker + " decoy bytes")
	framed, err := frame.Build(frame.Metadata{BlobSize: 1}, []byte{7})
	if err != nil {
		t.Fatalf("frame.Build: %v", err)
	}
	stego := append(append([]byte{}, cover...), framed...)

	var a Append
	got, err := a.Extract(stego)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, framed) {
		t.Fatalf("Extract = %v, want %v", got, framed)
	}
}
