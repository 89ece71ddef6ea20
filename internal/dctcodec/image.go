package dctcodec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"

	"stegosuite/internal/stegoerr"
)

// lumaPlane holds the Y channel of a decoded cover together with the
// Cb/Cr planes needed to reassemble a full-color image after the Y
// plane has been modified, plus the original (unpadded) dimensions.
type lumaPlane struct {
	width, height   int
	paddedW, paddedH int
	y               [][]float64
	cb, cr          [][]uint8
}

// decodeForEmbedding loads a cover image (any format image.Decode
// recognizes) and splits it into an edge-padded Y plane plus Cb/Cr
// planes, following ITU-R BT.601 primaries.
func decodeForEmbedding(cover []byte) (*lumaPlane, error) {
	img, _, err := image.Decode(bytes.NewReader(cover))
	if err != nil {
		return nil, stegoerr.Arg("dctcodec: decode cover: %v", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, stegoerr.Arg("dctcodec: cover has zero-sized bounds")
	}

	paddedW := ceilToBlock(w)
	paddedH := ceilToBlock(h)

	lp := &lumaPlane{width: w, height: h, paddedW: paddedW, paddedH: paddedH}
	lp.y = make([][]float64, paddedH)
	lp.cb = make([][]uint8, paddedH)
	lp.cr = make([][]uint8, paddedH)
	for row := 0; row < paddedH; row++ {
		lp.y[row] = make([]float64, paddedW)
		lp.cb[row] = make([]uint8, paddedW)
		lp.cr[row] = make([]uint8, paddedW)
		srcY := clampInt(row, 0, h-1)
		for col := 0; col < paddedW; col++ {
			srcX := clampInt(col, 0, w-1)
			r, g, b, _ := img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY).RGBA()
			yy, cb, cr := rgbToYCbCr(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			lp.y[row][col] = float64(yy)
			lp.cb[row][col] = cb
			lp.cr[row][col] = cr
		}
	}
	return lp, nil
}

// ceilToBlock rounds n up to the next multiple of blockSize.
func ceilToBlock(n int) int {
	if n%blockSize == 0 {
		return n
	}
	return n + (blockSize - n%blockSize)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rgbToYCbCr applies the ITU-R BT.601 full-range conversion.
func rgbToYCbCr(r, g, b uint8) (y, cb, cr uint8) {
	return color.RGBToYCbCr(r, g, b)
}

// blocksFromPlane splits the padded Y plane into row-major 8x8 blocks.
func blocksFromPlane(lp *lumaPlane) [][]Block {
	rows := lp.paddedH / blockSize
	cols := lp.paddedW / blockSize
	blocks := make([][]Block, rows)
	for bi := 0; bi < rows; bi++ {
		blocks[bi] = make([]Block, cols)
		for bj := 0; bj < cols; bj++ {
			var blk Block
			for i := 0; i < blockSize; i++ {
				for j := 0; j < blockSize; j++ {
					blk[i][j] = lp.y[bi*blockSize+i][bj*blockSize+j]
				}
			}
			blocks[bi][bj] = blk
		}
	}
	return blocks
}

// planeFromBlocks writes transformed blocks back into lp's Y plane.
func planeFromBlocks(lp *lumaPlane, blocks [][]Block) {
	for bi := range blocks {
		for bj := range blocks[bi] {
			blk := blocks[bi][bj]
			for i := 0; i < blockSize; i++ {
				for j := 0; j < blockSize; j++ {
					lp.y[bi*blockSize+i][bj*blockSize+j] = blk[i][j]
				}
			}
		}
	}
}

// encodeJPEG reassembles the (possibly modified) Y plane with the
// original Cb/Cr planes, crops back to the cover's true dimensions,
// and encodes the result as a JPEG at the given quality.
func encodeJPEG(lp *lumaPlane, quality int) ([]byte, error) {
	out := image.NewRGBA(image.Rect(0, 0, lp.width, lp.height))
	for row := 0; row < lp.height; row++ {
		for col := 0; col < lp.width; col++ {
			yy := clampByte(lp.y[row][col])
			r, g, b := color.YCbCrToRGB(yy, lp.cb[row][col], lp.cr[row][col])
			out.Set(col, row, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
		return nil, stegoerr.Runtime("dctcodec: encode stego JPEG: %v", err)
	}
	return buf.Bytes(), nil
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
