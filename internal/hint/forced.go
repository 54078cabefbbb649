package hint

import (
	"context"
	"fmt"

	"svw.info/tenner/internal/csp"
	"svw.info/tenner/internal/propagate"
	"svw.info/tenner/internal/tenner"
)

// Forced implements a minimal Hinter: it establishes arc consistency on the
// board's model and suggests the first open cell whose domain collapsed to a
// single digit.
type Forced struct{}

func NewForced() *Forced { return &Forced{} }

// Hint returns the first propagation-forced cell, if any.
func (h *Forced) Hint(ctx context.Context, b *tenner.Board) (tenner.Hint, bool, error) {
	p, grid, err := tenner.BuildBinaryModel(b)
	if err != nil {
		return tenner.Hint{}, false, err
	}
	ok, _ := propagate.GAC(p, nil)
	if !ok {
		return tenner.Hint{}, false, fmt.Errorf("hint: board has no solution")
	}
	for r := range grid {
		for c, v := range grid[r] {
			if b.Rows[r][c] != tenner.Empty {
				continue
			}
			if v.CurDomainSize() == 1 {
				val := soleValue(v)
				return tenner.Hint{
					Message: fmt.Sprintf("Forced: only %d fits here", val),
					Cell:    tenner.CellCoord{Row: r, Col: c},
					Value:   val,
				}, true, nil
			}
		}
	}
	return tenner.Hint{}, false, nil
}

func soleValue(v *csp.Variable) int {
	return v.CurDomain()[0]
}
