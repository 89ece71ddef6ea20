package stego

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"stegosuite/internal/frame"
)

func syntheticCoverJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestEmbedExtractAppendFileNoCrypto(t *testing.T) {
	dir := t.TempDir()
	payloadPath := filepath.Join(dir, "secret.txt")
	want := bytes.Repeat([]byte("a"), 1024)
	if err := os.WriteFile(payloadPath, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cover := syntheticCoverJPEG(t, 64, 48)

	res, err := Embed(cover, EmbedOptions{
		PayloadPath: payloadPath,
		Mode:        frame.ModeAppend,
	})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !bytes.HasPrefix(res.StegoBytes, cover) {
		t.Fatal("append-mode stego must start with the exact cover bytes")
	}

	outDir := filepath.Join(dir, "out")
	_, plain, err := Extract(res.StegoBytes, ExtractOptions{
		Mode:    frame.ModeAppend,
		OutPath: outDir,
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(plain, want) {
		t.Fatalf("recovered payload mismatch: got %d bytes, want %d", len(plain), len(want))
	}

	got, err := os.ReadFile(filepath.Join(outDir, "secret.txt"))
	if err != nil {
		t.Fatalf("ReadFile recovered: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("file written to OutPath does not match original payload")
	}
}

func TestEmbedExtractAppendDirectory(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "a.txt"), []byte("hi\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(srcDir, "b"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "b", "bin"), []byte{0x00, 0x01, 0x02, 0x03}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cover := syntheticCoverJPEG(t, 64, 48)
	res, err := Embed(cover, EmbedOptions{PayloadPath: srcDir, Mode: frame.ModeAppend})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	outDir := filepath.Join(t.TempDir(), "out")
	meta, _, err := Extract(res.StegoBytes, ExtractOptions{Mode: frame.ModeAppend, OutPath: outDir})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.SourceKind != frame.SourceDir {
		t.Fatalf("source_kind = %v, want dir", meta.SourceKind)
	}

	gotA, err := os.ReadFile(filepath.Join(outDir, "a.txt"))
	if err != nil || !bytes.Equal(gotA, []byte("hi\n")) {
		t.Fatalf("a.txt mismatch: %v %v", gotA, err)
	}
	gotB, err := os.ReadFile(filepath.Join(outDir, "b", "bin"))
	if err != nil || !bytes.Equal(gotB, []byte{0x00, 0x01, 0x02, 0x03}) {
		t.Fatalf("b/bin mismatch: %v %v", gotB, err)
	}
}

func TestEmbedExtractAppendWithEncryption(t *testing.T) {
	dir := t.TempDir()
	payloadPath := filepath.Join(dir, "s.bin")
	want := []byte("super secret payload bytes")
	if err := os.WriteFile(payloadPath, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cover := syntheticCoverJPEG(t, 64, 48)
	res, err := Embed(cover, EmbedOptions{
		PayloadPath: payloadPath,
		Mode:        frame.ModeAppend,
		Password:    "correct horse",
	})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if _, _, err := Extract(res.StegoBytes, ExtractOptions{Mode: frame.ModeAppend, Password: "wrong horse"}); err == nil {
		t.Fatal("expected extraction with the wrong password to fail")
	}

	_, plain, err := Extract(res.StegoBytes, ExtractOptions{Mode: frame.ModeAppend, Password: "correct horse"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(plain, want) {
		t.Fatalf("recovered payload mismatch: %q want %q", plain, want)
	}
}

func TestExtractAutoDetectsAppendMode(t *testing.T) {
	dir := t.TempDir()
	payloadPath := filepath.Join(dir, "secret.txt")
	want := []byte("auto-detected append payload")
	if err := os.WriteFile(payloadPath, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cover := syntheticCoverJPEG(t, 64, 48)
	res, err := Embed(cover, EmbedOptions{PayloadPath: payloadPath, Mode: frame.ModeAppend})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	_, plain, err := Extract(res.StegoBytes, ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract with no mode specified: %v", err)
	}
	if !bytes.Equal(plain, want) {
		t.Fatalf("recovered payload mismatch: got %q want %q", plain, want)
	}
}

func TestEmbedRejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	payloadPath := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(payloadPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cover := syntheticCoverJPEG(t, 32, 32)
	if _, err := Embed(cover, EmbedOptions{PayloadPath: payloadPath, Mode: "bogus"}); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
