package dctcodec

import (
	"math"

	"stegosuite/internal/stegoerr"
)

// DCT is the content-adaptive codec: it modulates mid-frequency AC
// coefficients of the cover's luminance plane rather than appending
// bytes after it, trading perfect fidelity (PSNR = infinity) for
// survival through re-encodes that strip anything past the image's
// own pixel data.
//
// Rate and PresetName are read only by Embed: they bound how many
// candidates may be used and pick the JPEG quality. Extract ignores
// both, because Embed always writes into the first candidates of the
// order and the selection band is the same for every preset, so a
// zero-value DCT{} (as internal/stego uses) extracts from any preset.
type DCT struct {
	Rate       float64
	PresetName string
}

// BlockCount reports how many 8x8 luminance blocks a cover of the
// given pixel dimensions decomposes into, for metadata/reporting.
func BlockCount(width, height int) int {
	return (ceilToBlock(width) / blockSize) * (ceilToBlock(height) / blockSize)
}

// Stats reports the block count and the coefficient budget a cover
// yields at the given rate and preset, for populating metadata before
// the actual Embed call runs.
func Stats(cover []byte, rate float64, presetName string) (blockCount, used int, err error) {
	preset, err := LookupPreset(presetName)
	if err != nil {
		return 0, 0, stegoerr.Arg("%v", err)
	}
	lp, err := decodeForEmbedding(cover)
	if err != nil {
		return 0, 0, err
	}
	blocks := blocksFromPlane(lp)
	candidates := EligibleCandidates(forwardAll(blocks))
	rate = ClampRate(rate, preset)
	used = int(math.Ceil(rate * float64(len(candidates))))
	return BlockCount(lp.width, lp.height), used, nil
}

// Capacity reports how many coefficient slots (not yet clamped to a
// specific payload's needs) a cover decodes to at the given rate and
// preset, for pre-flight capacity checks before compression/encryption
// even run.
func Capacity(cover []byte, rate float64, presetName string) (int, error) {
	preset, err := LookupPreset(presetName)
	if err != nil {
		return 0, stegoerr.Arg("%v", err)
	}
	lp, err := decodeForEmbedding(cover)
	if err != nil {
		return 0, err
	}
	blocks := blocksFromPlane(lp)
	candidates := EligibleCandidates(forwardAll(blocks))
	rate = ClampRate(rate, preset)
	used := int(math.Ceil(rate * float64(len(candidates))))
	return used, nil
}

// Embed implements codec.Codec. cover must decode as an image;
// the returned bytes are a JPEG encoding of cover with framed's bits
// modulated into its mid-frequency AC coefficients.
func (d DCT) Embed(cover []byte, framed []byte) ([]byte, error) {
	preset, err := LookupPreset(d.PresetName)
	if err != nil {
		return nil, stegoerr.Arg("%v", err)
	}

	lp, err := decodeForEmbedding(cover)
	if err != nil {
		return nil, err
	}
	blocks := blocksFromPlane(lp)
	dctBlocks := forwardAll(blocks)

	candidates := EligibleCandidates(dctBlocks)
	rate := ClampRate(d.Rate, preset)
	used := int(math.Ceil(rate * float64(len(candidates))))

	bits := bitsForPayload(framed)
	needed := len(bits)
	if needed > used {
		return nil, stegoerr.WrapCapacity(needed, used)
	}

	for i := 0; i < needed; i++ {
		c := candidates[i]
		blk := &dctBlocks[c.BlockRow][c.BlockCol]
		blk[c.Row][c.Col] = writeBit(blk[c.Row][c.Col], bits[i])
	}

	planeFromBlocks(lp, inverseAll(dctBlocks))
	return encodeJPEG(lp, preset.Quality)
}

// Extract implements codec.Codec. It re-derives the same coefficient
// order Embed used, reads the 32-bit length prefix, then reads exactly
// that many payload bytes' worth of bits.
func (DCT) Extract(stego []byte) ([]byte, error) {
	lp, err := decodeForEmbedding(stego)
	if err != nil {
		return nil, err
	}
	blocks := blocksFromPlane(lp)
	dctBlocks := forwardAll(blocks)
	candidates := EligibleCandidates(dctBlocks)

	if len(candidates) < 32 {
		return nil, stegoerr.Integrity("dctcodec: stego image too small to carry a length prefix")
	}

	prefixBits := make([]byte, 32)
	for i := 0; i < 32; i++ {
		c := candidates[i]
		prefixBits[i] = readBit(dctBlocks[c.BlockRow][c.BlockCol][c.Row][c.Col])
	}
	payloadLen := int(readLengthPrefix(prefixBits))

	needed := 32 + 8*payloadLen
	if needed > len(candidates) {
		return nil, stegoerr.Integrity("dctcodec: declared payload length exceeds available coefficients")
	}

	payloadBits := make([]byte, 8*payloadLen)
	for i := 0; i < 8*payloadLen; i++ {
		c := candidates[32+i]
		payloadBits[i] = readBit(dctBlocks[c.BlockRow][c.BlockCol][c.Row][c.Col])
	}

	return bytesFromPayloadBits(payloadBits), nil
}

func forwardAll(blocks [][]Block) [][]Block {
	out := make([][]Block, len(blocks))
	for i := range blocks {
		out[i] = make([]Block, len(blocks[i]))
		for j := range blocks[i] {
			out[i][j] = Forward2D(blocks[i][j])
		}
	}
	return out
}

func inverseAll(blocks [][]Block) [][]Block {
	out := make([][]Block, len(blocks))
	for i := range blocks {
		out[i] = make([]Block, len(blocks[i]))
		for j := range blocks[i] {
			out[i][j] = Inverse2D(blocks[i][j])
		}
	}
	return out
}
