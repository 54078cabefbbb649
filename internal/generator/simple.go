package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"svw.info/tenner/internal/csp"
	"svw.info/tenner/internal/ports"
	"svw.info/tenner/internal/propagate"
	"svw.info/tenner/internal/search"
	"svw.info/tenner/internal/tenner"
)

// carve keeps roughly this share of cells as givens.
const givensShare = 0.45

// Generate creates a puzzle with a unique solution: it fills a full grid by
// randomized search, derives the column sums, then blanks cells while the
// board stays uniquely solvable.
func (g *UniqueGenerator) Generate(ctx context.Context, seed int64, rows int) (*tenner.Puzzle, ports.Stats, error) {
	start := time.Now()
	if rows < 3 || rows > 7 {
		return nil, ports.Stats{}, fmt.Errorf("generator: %d rows (want 3-7)", rows)
	}
	rng := rand.New(rand.NewSource(seed))

	// 1) full random solution of a sum-free board
	full, st, err := fillRandom(ctx, rng, rows)
	if err != nil {
		return nil, st, err
	}
	sums := make([]int, tenner.Width)
	for c := 0; c < tenner.Width; c++ {
		for r := 0; r < rows; r++ {
			sums[c] += full[r][c]
		}
	}

	// 2) carve out clues while preserving uniqueness
	board := &tenner.Board{Rows: full, Sums: sums}
	positions := make([]int, rows*tenner.Width)
	for i := range positions {
		positions[i] = i
	}
	rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	target := int(float64(rows*tenner.Width) * givensShare)
	deadline := start.Add(5 * time.Second)
	nodes := st.Nodes

	givens := rows * tenner.Width
	for _, pos := range positions {
		if givens <= target || time.Now().After(deadline) {
			break
		}
		r, c := pos/tenner.Width, pos%tenner.Width
		old := board.Rows[r][c]
		board.Rows[r][c] = tenner.Empty
		unique, ust, err := g.Solver.Unique(ctx, board)
		nodes += ust.Nodes
		if err != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		if unique {
			givens--
		} else {
			board.Rows[r][c] = old
		}
	}

	p := &tenner.Puzzle{
		Seed:      seed,
		Board:     *board,
		CreatedAt: time.Now().UnixNano(),
	}
	return p, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// fillRandom solves an empty sum-free board with shuffled value ordering to
// produce a full valid grid.
func fillRandom(ctx context.Context, rng *rand.Rand, rows int) ([][]int, ports.Stats, error) {
	empty := &tenner.Board{Rows: make([][]int, rows)}
	for r := range empty.Rows {
		empty.Rows[r] = make([]int, tenner.Width)
		for c := range empty.Rows[r] {
			empty.Rows[r][c] = tenner.Empty
		}
	}
	p, _, err := tenner.BuildBinaryModel(empty)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	sv := search.New(propagate.FC)
	sv.ValueOrder = func(_ *csp.Variable, vals []csp.Value) []csp.Value {
		out := make([]csp.Value, len(vals))
		copy(out, vals)
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	sol, st, err := sv.Solve(ctx, p)
	if err != nil {
		return nil, st, err
	}
	grid, err := tenner.GridFromSolution(sol, rows)
	return grid, st, err
}
