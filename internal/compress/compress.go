// Package compress implements the adaptive compressor: it races a
// deflate (LZ77) encoder against a from-scratch LZ78 encoder and keeps
// whichever output is smaller, prepending a 5-byte signature so the
// decompressor can dispatch on method without being told separately.
package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Method names the winning algorithm, matching the metadata record's
// comp field.
type Method string

const (
	MethodLZ77 Method = "lz77"
	MethodLZ78 Method = "lz78"
)

var lz77Signature = [5]byte{'L', 'Z', '7', '7', 0}

// CompressAuto runs both encoders on data and returns the smaller
// output with its method tag and descriptive ratio. Ties are broken
// toward LZ77, so the choice is a pure, deterministic function of data.
// If the from-scratch LZ78 encoder panics on pathological input,
// CompressAuto recovers and falls back to LZ77 unconditionally — the
// only in-core recovery the pipeline performs.
func CompressAuto(data []byte) (blob []byte, method Method, ratio float64, err error) {
	lz77, err := lz77Compress(data)
	if err != nil {
		return nil, "", 0, fmt.Errorf("compress: lz77: %w", err)
	}

	lz78 := lz78CompressSafe(data)

	blob, method = lz77, MethodLZ77
	if lz78 != nil && len(lz78) < len(lz77) {
		blob, method = lz78, MethodLZ78
	}

	if len(data) > 0 {
		ratio = 1 - float64(len(blob))/float64(len(data))
	}
	return blob, method, ratio, nil
}

// lz78CompressSafe guards the from-scratch encoder against an
// unexpected panic on pathological input, returning nil so the caller
// falls back to LZ77 instead of propagating the panic.
func lz78CompressSafe(data []byte) (out []byte) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return lz78Compress(data)
}

// Decompress dispatches on the blob's 5-byte signature and inverts
// whichever encoder produced it.
func Decompress(blob []byte) ([]byte, error) {
	if len(blob) < 5 {
		return nil, fmt.Errorf("compress: blob too short for signature")
	}
	switch [5]byte(blob[:5]) {
	case lz77Signature:
		return lz77Decompress(blob)
	case lz78Signature:
		return lz78Decompress(blob)
	default:
		return nil, fmt.Errorf("compress: unrecognized signature %q", blob[:5])
	}
}

func lz77Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(lz77Signature[:])

	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz77Decompress(blob []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(blob[5:]))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lz77: %w", err)
	}
	return out, nil
}
