package dctcodec

import (
	"math"
	"sort"
)

// Candidate identifies one eligible mid-frequency AC coefficient: a
// specific (blockRow, blockCol) tile and a (row, col) position inside
// it, ranked by the magnitude-based cost kappa = 1 / |round(coefficient)|.
type Candidate struct {
	BlockRow int
	BlockCol int
	Row      int
	Col      int
	Cost     float64
}

// EligibleCandidates scans every block's DCT coefficients in the fixed
// selectionBand and returns every nonzero-after-rounding AC
// coefficient, totally ordered by (cost ascending, block-row
// ascending, block-col ascending, zig-zag index ascending). The same
// deterministic order is produced whether blocks holds the
// coefficients written at embed time or the coefficients recovered
// (and necessarily slightly perturbed by modulation) at extract time;
// the two orders are expected to agree with very high but not perfect
// probability.
func EligibleCandidates(blocks [][]Block) []Candidate {
	type ranked struct {
		Candidate
		blockRow, blockCol, zz int
	}
	var all []ranked
	for bi := range blocks {
		for bj := range blocks[bi] {
			block := blocks[bi][bj]
			for zz := selectionBand[0]; zz <= selectionBand[1] && zz < 64; zz++ {
				row, col := positionForZigzag(zz)
				q := math.Round(block[row][col])
				if q == 0 {
					continue
				}
				all = append(all, ranked{
					Candidate: Candidate{
						BlockRow: bi,
						BlockCol: bj,
						Row:      row,
						Col:      col,
						Cost:     1.0 / math.Abs(q),
					},
					blockRow: bi,
					blockCol: bj,
					zz:       zz,
				})
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Cost != b.Cost {
			return a.Cost < b.Cost
		}
		if a.blockRow != b.blockRow {
			return a.blockRow < b.blockRow
		}
		if a.blockCol != b.blockCol {
			return a.blockCol < b.blockCol
		}
		return a.zz < b.zz
	})

	out := make([]Candidate, len(all))
	for i, r := range all {
		out[i] = r.Candidate
	}
	return out
}
