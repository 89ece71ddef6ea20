// Package stego wires the payload loader, compressor, optional AEAD
// layer, framer, and codec into the two end-to-end operations the rest
// of the program drives: Embed and Extract.
package stego

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"stegosuite/internal/aead"
	"stegosuite/internal/codec"
	"stegosuite/internal/compress"
	"stegosuite/internal/dctcodec"
	"stegosuite/internal/frame"
	"stegosuite/internal/payload"
	"stegosuite/internal/stegoerr"
)

// EmbedOptions configures one Embed call. The cover image itself is
// passed separately to Embed; this struct only carries the payload and
// codec parameters.
type EmbedOptions struct {
	PayloadPath string
	Mode        frame.Mode
	Password    string // empty disables encryption
	Rate        float64
	ChannelName string
}

// ExtractOptions configures one Extract call. Password must match the
// value used at embed time: it is not recorded anywhere in the stego
// container. Mode may be left empty to auto-detect between the append
// and DCT codecs.
type ExtractOptions struct {
	StegoPath string
	OutPath   string
	Mode      frame.Mode
	Password  string
}

// Result summarizes a completed Embed call for logging/CLI output.
type Result struct {
	StegoBytes []byte
	CompMethod compress.Method
	CompRatio  float64
	PlainSize  int
	BlobSize   int
	UsedCoefs  int
	BlockCount int
}

// Embed loads the payload, compresses it, optionally encrypts it,
// frames it with metadata, and embeds the framed blob into the cover
// using the requested codec.
func Embed(cover []byte, opts EmbedOptions) (Result, error) {
	loaded, err := payload.Load(opts.PayloadPath)
	if err != nil {
		return Result{}, err
	}

	plainSum := sha256.Sum256(loaded.Bytes)

	compBlob, method, ratio, err := compress.CompressAuto(loaded.Bytes)
	if err != nil {
		return Result{}, stegoerr.Runtime("stego: compress payload: %v", err)
	}

	blob := compBlob
	encrypted := opts.Password != ""
	if encrypted {
		blob, err = aead.Encrypt(opts.Password, compBlob)
		if err != nil {
			return Result{}, stegoerr.Runtime("stego: encrypt payload: %v", err)
		}
	}

	meta := frame.Metadata{
		Version:    frame.FormatVersion,
		Marker:     frame.Marker,
		Mode:       opts.Mode,
		Encrypted:  encrypted,
		Comp:       string(method),
		CompRatio:  ratio,
		PlainSize:  len(loaded.Bytes),
		BlobSize:   len(blob),
		SHA256:     hex.EncodeToString(plainSum[:]),
		SourceKind: frame.SourceKind(loaded.Kind),
		SourceName: loaded.Name,
	}

	var c codec.Codec
	switch opts.Mode {
	case frame.ModeAppend:
		c = codec.Append{}
	case frame.ModeDCT:
		preset, perr := dctcodec.LookupPreset(opts.ChannelName)
		if perr != nil {
			return Result{}, stegoerr.Arg("%v", perr)
		}
		blockCount, used, serr := dctcodec.Stats(cover, opts.Rate, opts.ChannelName)
		if serr != nil {
			return Result{}, serr
		}
		meta.Rate = dctcodec.ClampRate(opts.Rate, preset)
		meta.ChannelPreset = channelNameOrDefault(opts.ChannelName)
		meta.BlockCount = blockCount
		meta.UsedCoefs = used
		c = dctcodec.DCT{Rate: opts.Rate, PresetName: opts.ChannelName}
	default:
		return Result{}, stegoerr.Arg("stego: unknown mode %q", opts.Mode)
	}

	framed, err := frame.Build(meta, blob)
	if err != nil {
		return Result{}, stegoerr.Runtime("stego: build frame: %v", err)
	}

	stegoBytes, err := c.Embed(cover, framed)
	if err != nil {
		return Result{}, err
	}

	return Result{
		StegoBytes: stegoBytes,
		CompMethod: method,
		CompRatio:  ratio,
		PlainSize:  len(loaded.Bytes),
		BlobSize:   len(blob),
		UsedCoefs:  meta.UsedCoefs,
		BlockCount: meta.BlockCount,
	}, nil
}

// Extract reverses Embed: it locates the framed blob inside stego,
// optionally decrypts it, decompresses it, and verifies the SHA-256
// recorded in the metadata against the recovered plaintext. When
// opts.OutPath is set, a directory source is unpacked there with
// payload.Unarchive and a file source is written there under its
// recorded name; the plaintext is returned in both cases. An empty
// opts.Mode auto-detects between the append and DCT codecs.
func Extract(stego []byte, opts ExtractOptions) (frame.Metadata, []byte, error) {
	mode := opts.Mode
	if mode == "" {
		mode = detectMode(stego)
	}

	var c codec.Codec
	switch mode {
	case frame.ModeAppend:
		c = codec.Append{}
	case frame.ModeDCT:
		c = dctcodec.DCT{}
	default:
		return frame.Metadata{}, nil, stegoerr.Arg("stego: unknown mode %q", mode)
	}

	framed, err := c.Extract(stego)
	if err != nil {
		return frame.Metadata{}, nil, err
	}

	offset, ok := frame.Find(framed)
	if !ok {
		return frame.Metadata{}, nil, stegoerr.Integrity("stego: marker not found in recovered bitstream")
	}
	meta, blob, err := frame.Parse(framed, offset)
	if err != nil {
		return frame.Metadata{}, nil, err
	}

	if meta.Encrypted {
		if opts.Password == "" {
			return frame.Metadata{}, nil, stegoerr.Arg("stego: payload is encrypted but no password was supplied")
		}
		blob, err = aead.Decrypt(opts.Password, blob)
		if err != nil {
			return frame.Metadata{}, nil, err
		}
	}

	plain, err := compress.Decompress(blob)
	if err != nil {
		return frame.Metadata{}, nil, stegoerr.Integrity("stego: decompress payload: %v", err)
	}

	sum := sha256.Sum256(plain)
	if hex.EncodeToString(sum[:]) != meta.SHA256 {
		return frame.Metadata{}, nil, stegoerr.Integrity("stego: SHA-256 mismatch: payload was corrupted or tampered with")
	}

	if opts.OutPath != "" {
		if err := writeRecovered(meta, plain, opts.OutPath); err != nil {
			return frame.Metadata{}, nil, err
		}
	}

	return meta, plain, nil
}

// writeRecovered persists the recovered payload to outPath: a
// directory source is unpacked with payload.Unarchive, a file source
// is written verbatim using the name recorded in the metadata.
func writeRecovered(meta frame.Metadata, plain []byte, outPath string) error {
	if payload.Kind(meta.SourceKind) == payload.KindDir {
		return payload.Unarchive(plain, outPath)
	}

	if err := os.MkdirAll(outPath, 0o755); err != nil {
		return stegoerr.IO("create output directory %s: %w", outPath, err)
	}
	name := meta.SourceName
	if name == "" {
		name = "recovered.bin"
	}
	target := filepath.Join(outPath, name)
	if err := os.WriteFile(target, plain, 0o644); err != nil {
		return stegoerr.IO("write recovered payload %s: %w", target, err)
	}
	return nil
}

func channelNameOrDefault(name string) string {
	if name == "" {
		return "none"
	}
	return name
}

// detectMode guesses which codec placed the framed blob by scanning
// the raw container bytes for the marker before falling back to the
// DCT codec: an append-mode container carries the marker verbatim in
// its bytes, while a DCT-mode container only reveals it after the
// coefficient modulation has been reversed.
func detectMode(stego []byte) frame.Mode {
	if _, ok := frame.FindLast(stego); ok {
		return frame.ModeAppend
	}
	return frame.ModeDCT
}
