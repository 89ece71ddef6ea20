// Package frame builds and parses the framed blob: a marker, a 4-byte
// big-endian metadata length, the metadata JSON, and the (ciphertext or
// compressed) payload blob. The framer only handles structure —
// SHA-256 integrity verification against the plaintext happens one
// layer up, in internal/stego, once the payload has actually been
// decompressed.
package frame

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"stegosuite/internal/stegoerr"
)

// Marker anchors the framed blob inside a stego container. It is long
// and improbable enough that a well-formed carrier is assumed never to
// emit it by chance; the append codec additionally asserts its absence
// from the cover before embedding.
const Marker = "::STEGA_PAYLOAD_START::"

// FormatVersion is written into every metadata record's v field.
const FormatVersion = 1

// Mode names which codec placed the framed blob.
type Mode string

const (
	ModeAppend Mode = "append"
	ModeDCT    Mode = "dct"
)

// SourceKind mirrors payload.Kind in the metadata record.
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceDir  SourceKind = "dir"
)

// Metadata is the JSON record carried inside every framed blob,
// describing how the payload was processed so Extract can reverse it.
type Metadata struct {
	Version       int        `json:"v"`
	Marker        string     `json:"marker"`
	Mode          Mode       `json:"mode"`
	Encrypted     bool       `json:"encrypted"`
	Comp          string     `json:"comp"`
	CompRatio     float64    `json:"comp_ratio"`
	PlainSize     int        `json:"plain_size"`
	BlobSize      int        `json:"blob_size"`
	SHA256        string     `json:"sha256"`
	SourceKind    SourceKind `json:"source_kind"`
	SourceName    string     `json:"source_name"`
	Rate          float64    `json:"rate,omitempty"`
	BlockCount    int        `json:"block_count,omitempty"`
	UsedCoefs     int        `json:"used_coefs,omitempty"`
	ChannelPreset string     `json:"channel_preset,omitempty"`
}

// Build assembles the framed blob: MARKER || META_LEN || META_JSON ||
// blob, where blob is the ciphertext E when Metadata.Encrypted is true,
// or the compressed blob C otherwise.
func Build(meta Metadata, blob []byte) ([]byte, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("frame: marshal metadata: %w", err)
	}

	out := make([]byte, 0, len(Marker)+4+len(metaJSON)+len(blob))
	out = append(out, Marker...)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(metaJSON)))
	out = append(out, lenBuf[:]...)
	out = append(out, metaJSON...)
	out = append(out, blob...)
	return out, nil
}

// Find locates the first occurrence of Marker in container, for
// DCT-recovered bitstreams whose frame starts at the head of the
// recovered bit sequence. The metadata JSON's marker field holds a
// second copy of Marker further on, so the first occurrence is the one
// that heads the frame.
func Find(container []byte) (int, bool) {
	idx := bytes.Index(container, []byte(Marker))
	return idx, idx >= 0
}

// FindLast locates the last occurrence of Marker in container. Append
// mode scans from the end defensively: the embed step already asserts
// the marker is absent from the cover, but scanning from the end
// tolerates a cover that coincidentally contains the marker sequence
// somewhere before the real, appended one. When Metadata.Marker is set,
// the last occurrence in a framed blob is the copy inside the metadata
// JSON, so the append codec skips occurrences that Parse rejects.
func FindLast(container []byte) (int, bool) {
	idx := bytes.LastIndex(container, []byte(Marker))
	return idx, idx >= 0
}

// Parse reads a framed blob starting at the marker's offset in
// container (as returned by Find or FindLast) and returns the decoded
// metadata plus the remaining blob bytes (E or C).
func Parse(container []byte, markerOffset int) (Metadata, []byte, error) {
	lenStart := markerOffset + len(Marker)
	lenEnd := lenStart + 4
	if lenEnd > len(container) {
		return Metadata{}, nil, stegoerr.Integrity("frame: metadata length field out of bounds")
	}
	metaLen := int(binary.BigEndian.Uint32(container[lenStart:lenEnd]))

	metaStart := lenEnd
	metaEnd := metaStart + metaLen
	if metaEnd > len(container) {
		return Metadata{}, nil, stegoerr.Integrity("frame: metadata JSON out of bounds")
	}

	var meta Metadata
	if err := json.Unmarshal(container[metaStart:metaEnd], &meta); err != nil {
		return Metadata{}, nil, stegoerr.Integrity("frame: malformed metadata JSON: %w", err)
	}

	blobStart := metaEnd
	blobEnd := blobStart + meta.BlobSize
	if blobEnd > len(container) {
		return Metadata{}, nil, stegoerr.Integrity("frame: payload blob out of bounds")
	}

	return meta, container[blobStart:blobEnd], nil
}
