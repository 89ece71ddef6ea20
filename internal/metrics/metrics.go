// Package metrics computes the PSNR/RMSE fidelity metrics reported by
// the metrics and bench subcommands, over the RGB triple-channel mean
// squared error between a cover and its stego counterpart.
package metrics

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"stegosuite/internal/stegoerr"
)

// Result holds a computed PSNR/RMSE pair. PSNR is +Inf when the two
// images are pixel-identical.
type Result struct {
	PSNR float64
	RMSE float64
}

// Compare decodes cover and stego and computes RMSE/PSNR over their
// RGB channels. The two images must have identical dimensions.
func Compare(cover, stego []byte) (Result, error) {
	a, _, err := image.Decode(bytes.NewReader(cover))
	if err != nil {
		return Result{}, stegoerr.Arg("metrics: decode cover: %v", err)
	}
	b, _, err := image.Decode(bytes.NewReader(stego))
	if err != nil {
		return Result{}, stegoerr.Arg("metrics: decode stego: %v", err)
	}

	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return Result{}, stegoerr.Arg("metrics: dimension mismatch: cover %dx%d, stego %dx%d",
			ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	var sumSquares float64
	n := ab.Dx() * ab.Dy() * 3
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ar, ag, ab8 := rgb8(a.At(ab.Min.X+x, ab.Min.Y+y))
			br, bg, bb8 := rgb8(b.At(bb.Min.X+x, bb.Min.Y+y))
			sumSquares += sq(ar, br) + sq(ag, bg) + sq(ab8, bb8)
		}
	}

	mse := sumSquares / float64(n)
	if mse == 0 {
		return Result{PSNR: math.Inf(1), RMSE: 0}, nil
	}
	rmse := math.Sqrt(mse)
	psnr := 10 * math.Log10(255*255/mse)
	return Result{PSNR: psnr, RMSE: rmse}, nil
}

func rgb8(c color.Color) (r, g, b float64) {
	rr, gg, bb, _ := c.RGBA()
	return float64(rr >> 8), float64(gg >> 8), float64(bb >> 8)
}

func sq(a, b float64) float64 {
	d := a - b
	return d * d
}
