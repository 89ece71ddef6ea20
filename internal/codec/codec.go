// Package codec defines the Codec interface shared by the append and
// DCT embedding strategies: both operations take and return whole byte
// sequences, so the pipeline in internal/stego never needs to know
// which codec it is driving beyond picking one by Mode.
package codec

import "stegosuite/internal/frame"

// Mode selects which codec implementation handles a given embed or
// extract call.
type Mode = frame.Mode

const (
	ModeAppend = frame.ModeAppend
	ModeDCT    = frame.ModeDCT
)

// Codec embeds a framed blob into carrier bytes and recovers it again.
// Embed returns the complete stego container bytes (not just the
// changed region); Extract returns the framed blob it locates inside
// stego container bytes.
type Codec interface {
	// Embed places framed inside the bytes decoded from cover,
	// returning the bytes to persist as the stego file.
	Embed(cover []byte, framed []byte) ([]byte, error)

	// Extract recovers the framed blob previously placed into stego.
	Extract(stego []byte) ([]byte, error)
}
