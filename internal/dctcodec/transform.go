// Package dctcodec implements the content-adaptive DCT codec: a
// from-scratch separable 2-D DCT-II, a magnitude-based cost map over
// mid-frequency AC coefficients, deterministic coefficient selection,
// and an LSB-in-quantized-magnitude modulation scheme.
package dctcodec

import "math"

// blockSize is N in the spec's 8×8 DCT-II formulation.
const blockSize = 8

// Block is one 8×8 tile of the luminance plane, in either the pixel or
// the DCT-coefficient domain depending on context.
type Block [blockSize][blockSize]float64

// basis is the precomputed orthonormal DCT-II basis matrix:
// basis[k][n] = alpha(k) * cos((pi/N) * (n + 0.5) * k), with
// alpha(0) = sqrt(1/N) and alpha(k) = sqrt(2/N) for k >= 1.
var basis = computeBasis()

func computeBasis() [blockSize][blockSize]float64 {
	var b [blockSize][blockSize]float64
	const n = float64(blockSize)
	for k := 0; k < blockSize; k++ {
		alpha := math.Sqrt(2.0 / n)
		if k == 0 {
			alpha = math.Sqrt(1.0 / n)
		}
		for x := 0; x < blockSize; x++ {
			b[k][x] = alpha * math.Cos((math.Pi/n)*(float64(x)+0.5)*float64(k))
		}
	}
	return b
}

// Forward2D computes the separable 2-D DCT-II of block: B·X·Bᵀ.
func Forward2D(x Block) Block {
	return matMul(matMul(basis, x), transpose(basis))
}

// Inverse2D computes the separable 2-D inverse DCT-II: Bᵀ·Y·B.
func Inverse2D(y Block) Block {
	return matMul(matMul(transpose(basis), y), basis)
}

func matMul(a, b Block) Block {
	var out Block
	for i := 0; i < blockSize; i++ {
		for j := 0; j < blockSize; j++ {
			var sum float64
			for k := 0; k < blockSize; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func transpose(a [blockSize][blockSize]float64) [blockSize][blockSize]float64 {
	var out [blockSize][blockSize]float64
	for i := 0; i < blockSize; i++ {
		for j := 0; j < blockSize; j++ {
			out[j][i] = a[i][j]
		}
	}
	return out
}

// zigzagOrder maps a zig-zag scan index (0 = DC, 1..63 = AC in
// increasing-frequency order) to a flat row*8+col position within an
// 8×8 block, following the standard JPEG zig-zag sequence.
var zigzagOrder = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// positionForZigzag returns the (row, col) coordinate of the
// coefficient at the given zig-zag index.
func positionForZigzag(zz int) (row, col int) {
	flat := zigzagOrder[zz]
	return flat / blockSize, flat % blockSize
}
