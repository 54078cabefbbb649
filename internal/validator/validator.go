package validator

import (
	"context"

	"svw.info/tenner/internal/tenner"
)

// FastValidator scans the given cells of a board for rule conflicts without
// building a CSP model: repeated digits in a row, equal digits in contiguous
// cells of consecutive rows, and column sums that a fully filled column
// misses.
type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

func (v *FastValidator) Validate(ctx context.Context, b *tenner.Board) (bool, []tenner.CellCoord, error) {
	if err := b.Validate(); err != nil {
		return false, nil, err
	}
	conf := make([]tenner.CellCoord, 0, 8)
	// rows: duplicate digits
	for r, row := range b.Rows {
		m := 0
		for c, val := range row {
			if val == tenner.Empty {
				continue
			}
			bit := 1 << val
			if m&bit != 0 {
				conf = append(conf, tenner.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// contiguity: vertical and diagonal neighbors in the next row
	for r := 0; r+1 < len(b.Rows); r++ {
		for c, val := range b.Rows[r] {
			if val == tenner.Empty {
				continue
			}
			for _, dc := range [3]int{-1, 0, 1} {
				nc := c + dc
				if nc < 0 || nc >= tenner.Width {
					continue
				}
				if b.Rows[r+1][nc] == val {
					conf = append(conf, tenner.CellCoord{Row: r + 1, Col: nc})
				}
			}
		}
	}
	// sums: only judged once every cell of the column is filled
	if b.Sums != nil {
		for c := 0; c < tenner.Width; c++ {
			total, filled := 0, 0
			for r := range b.Rows {
				if b.Rows[r][c] == tenner.Empty {
					continue
				}
				total += b.Rows[r][c]
				filled++
			}
			if filled == len(b.Rows) && total != b.Sums[c] {
				for r := range b.Rows {
					conf = append(conf, tenner.CellCoord{Row: r, Col: c})
				}
			}
		}
	}
	return len(conf) == 0, conf, nil
}
