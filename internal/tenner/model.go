package tenner

import (
	"fmt"

	"svw.info/tenner/internal/csp"
)

// Model builders translate a Board into a csp.Problem plus the grid of
// variables, one per cell. Fixed cells become singleton domains, open cells
// get the full digit range. Two encodings are provided: a binary model with
// pairwise not-equal constraints, and an all-different model with one n-ary
// row constraint built from permutations of the row's unused digits. Both
// share the adjacency and column-sum constraints.

// ModelKind selects a Board encoding.
type ModelKind string

const (
	ModelBinary  ModelKind = "binary"
	ModelAllDiff ModelKind = "alldiff"
)

// BuildModel dispatches on kind.
func BuildModel(kind ModelKind, b *Board) (*csp.Problem, [][]*csp.Variable, error) {
	switch kind {
	case ModelBinary:
		return BuildBinaryModel(b)
	case ModelAllDiff:
		return BuildAllDiffModel(b)
	default:
		return nil, nil, fmt.Errorf("tenner: unknown model kind %q", kind)
	}
}

// BuildBinaryModel encodes row distinctness as pairwise not-equal constraints
// between every pair of cells in a row.
func BuildBinaryModel(b *Board) (*csp.Problem, [][]*csp.Variable, error) {
	if err := b.Validate(); err != nil {
		return nil, nil, err
	}
	p := csp.NewProblem("tenner-binary")
	grid, err := addVarGrid(p, b)
	if err != nil {
		return nil, nil, err
	}

	for r := range grid {
		for j := 0; j < Width; j++ {
			for k := j + 1; k < Width; k++ {
				if err := addNotEqual(p, grid[r][j], grid[r][k]); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	if err := addAdjacency(p, grid); err != nil {
		return nil, nil, err
	}
	if err := addColumnSums(p, grid, b.Sums); err != nil {
		return nil, nil, err
	}
	return p, grid, nil
}

// BuildAllDiffModel encodes row distinctness as one n-ary constraint per row
// over its open cells, enumerating permutations of the digits the row's fixed
// cells leave unused.
func BuildAllDiffModel(b *Board) (*csp.Problem, [][]*csp.Variable, error) {
	if err := b.Validate(); err != nil {
		return nil, nil, err
	}
	p := csp.NewProblem("tenner-alldiff")
	grid, err := addVarGrid(p, b)
	if err != nil {
		return nil, nil, err
	}

	for r, row := range b.Rows {
		missing := make([]bool, Width)
		for d := 0; d < Width; d++ {
			missing[d] = true
		}
		var scope []*csp.Variable
		for c, cell := range row {
			if cell == Empty {
				scope = append(scope, grid[r][c])
				continue
			}
			if !missing[cell] {
				return nil, nil, fmt.Errorf("%w: digit %d repeats in row %d", ErrBadBoard, cell, r)
			}
			missing[cell] = false
		}
		if len(scope) == 0 {
			continue
		}
		var free []int
		for d := 0; d < Width; d++ {
			if missing[d] {
				free = append(free, d)
			}
		}
		tuples := permutations(free)
		if err := p.AddConstraint(csp.NewConstraint(fmt.Sprintf("alldiff-row-%d", r), scope, tuples)); err != nil {
			return nil, nil, err
		}
	}
	if err := addAdjacency(p, grid); err != nil {
		return nil, nil, err
	}
	if err := addColumnSums(p, grid, b.Sums); err != nil {
		return nil, nil, err
	}
	return p, grid, nil
}

// GridFromSolution maps a solved assignment back onto cell coordinates.
func GridFromSolution(sol csp.Solution, nrows int) ([][]int, error) {
	out := make([][]int, nrows)
	for r := 0; r < nrows; r++ {
		out[r] = make([]int, Width)
		for c := 0; c < Width; c++ {
			val, ok := sol[cellName(r, c)]
			if !ok {
				return nil, fmt.Errorf("tenner: no value for cell (%d,%d) in solution", r, c)
			}
			out[r][c] = val
		}
	}
	return out, nil
}

func cellName(r, c int) string { return fmt.Sprintf("%d,%d", r, c) }

func addVarGrid(p *csp.Problem, b *Board) ([][]*csp.Variable, error) {
	digits := make([]int, Width)
	for d := range digits {
		digits[d] = d
	}
	grid := make([][]*csp.Variable, len(b.Rows))
	for r, row := range b.Rows {
		grid[r] = make([]*csp.Variable, Width)
		for c, cell := range row {
			dom := digits
			if cell != Empty {
				dom = []int{cell}
			}
			v := csp.NewVariable(cellName(r, c), dom)
			if err := p.AddVariable(v); err != nil {
				return nil, err
			}
			grid[r][c] = v
		}
	}
	return grid, nil
}

func addNotEqual(p *csp.Problem, a, b *csp.Variable) error {
	var tuples [][]csp.Value
	for _, x := range a.Domain() {
		for _, y := range b.Domain() {
			if x != y {
				tuples = append(tuples, []csp.Value{x, y})
			}
		}
	}
	return p.AddConstraint(csp.NewConstraint("neq", []*csp.Variable{a, b}, tuples))
}

// addAdjacency forbids equal digits in vertically and diagonally contiguous
// cells of consecutive rows.
func addAdjacency(p *csp.Problem, grid [][]*csp.Variable) error {
	for r := 0; r+1 < len(grid); r++ {
		for c := 0; c < Width; c++ {
			if err := addNotEqual(p, grid[r][c], grid[r+1][c]); err != nil {
				return err
			}
			if c > 0 {
				if err := addNotEqual(p, grid[r][c], grid[r+1][c-1]); err != nil {
					return err
				}
			}
			if c+1 < Width {
				if err := addNotEqual(p, grid[r][c], grid[r+1][c+1]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// addColumnSums constrains each column to its target via explicit enumeration
// of the domain product. Skipped when the board carries no sums.
func addColumnSums(p *csp.Problem, grid [][]*csp.Variable, sums []int) error {
	if sums == nil {
		return nil
	}
	for c := 0; c < Width; c++ {
		scope := make([]*csp.Variable, len(grid))
		domains := make([][]csp.Value, len(grid))
		for r := range grid {
			scope[r] = grid[r][c]
			domains[r] = grid[r][c].Domain()
		}
		var tuples [][]csp.Value
		forEachProduct(domains, func(t []csp.Value) {
			total := 0
			for _, v := range t {
				total += v
			}
			if total == sums[c] {
				tuple := make([]csp.Value, len(t))
				copy(tuple, t)
				tuples = append(tuples, tuple)
			}
		})
		if err := p.AddConstraint(csp.NewConstraint(fmt.Sprintf("sum-col-%d", c), scope, tuples)); err != nil {
			return err
		}
	}
	return nil
}

// forEachProduct visits the cartesian product of the domains. The visited
// slice is reused between calls.
func forEachProduct(domains [][]csp.Value, visit func([]csp.Value)) {
	t := make([]csp.Value, len(domains))
	var rec func(i int)
	rec = func(i int) {
		if i == len(domains) {
			visit(t)
			return
		}
		for _, v := range domains[i] {
			t[i] = v
			rec(i + 1)
		}
	}
	rec(0)
}

// permutations enumerates all orderings of vals.
func permutations(vals []int) [][]csp.Value {
	var out [][]csp.Value
	cur := make([]csp.Value, 0, len(vals))
	used := make([]bool, len(vals))
	var rec func()
	rec = func() {
		if len(cur) == len(vals) {
			t := make([]csp.Value, len(cur))
			copy(t, cur)
			out = append(out, t)
			return
		}
		for i, v := range vals {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, v)
			rec()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	rec()
	return out
}
