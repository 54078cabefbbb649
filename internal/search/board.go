package search

import (
	"context"

	"svw.info/tenner/internal/logger"
	"svw.info/tenner/internal/ports"
	"svw.info/tenner/internal/propagate"
	"svw.info/tenner/internal/tenner"
)

// BoardSolver implements ports.Solver for Tenner boards: it builds the chosen
// model, runs backtracking search with the chosen propagator, and maps the
// assignment back onto a grid.
type BoardSolver struct {
	Model tenner.ModelKind
	Prop  propagate.Propagator
	prop  string
}

// NewBoardSolver wires a board-level solver. propName must be bt, fc or gac.
func NewBoardSolver(kind tenner.ModelKind, propName string) (*BoardSolver, error) {
	prop, err := propagate.ByName(propName)
	if err != nil {
		return nil, err
	}
	return &BoardSolver{Model: kind, Prop: prop, prop: propName}, nil
}

// Solve satisfies ports.Solver.
func (s *BoardSolver) Solve(ctx context.Context, b *tenner.Board) ([][]int, ports.Stats, error) {
	p, _, err := tenner.BuildModel(s.Model, b)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	sol, st, err := New(s.Prop).Solve(ctx, p)
	if err != nil {
		return nil, st, err
	}
	grid, err := tenner.GridFromSolution(sol, len(b.Rows))
	if err != nil {
		return nil, st, err
	}
	log := logger.Logger()
	log.Debug().
		Str("model", string(s.Model)).
		Str("propagator", s.prop).
		Int("nodes", st.Nodes).
		Int("prunings", st.Prunings).
		Dur("took", st.Duration).
		Msg("board solved")
	return grid, st, nil
}

// Unique satisfies ports.Solver by counting solutions up to 2.
func (s *BoardSolver) Unique(ctx context.Context, b *tenner.Board) (bool, ports.Stats, error) {
	p, _, err := tenner.BuildModel(s.Model, b)
	if err != nil {
		return false, ports.Stats{}, err
	}
	count, st, err := New(s.Prop).CountSolutions(ctx, p, 2)
	if err != nil {
		return false, st, err
	}
	return count == 1, st, nil
}
