package ports

import (
	"context"
	"time"

	"svw.info/tenner/internal/tenner"
)

// Stats captures performance characteristics of a solver run.
type Stats struct {
	Nodes    int
	Prunings int
	Duration time.Duration
}

// Solver solves a board and can test uniqueness.
type Solver interface {
	Solve(ctx context.Context, b *tenner.Board) ([][]int, Stats, error)
	Unique(ctx context.Context, b *tenner.Board) (bool, Stats, error)
}

// Generator creates new puzzles from a seed.
type Generator interface {
	Generate(ctx context.Context, seed int64, rows int) (*tenner.Puzzle, Stats, error)
}

// Validator performs fast conflict checks on the given cells of a board.
type Validator interface {
	Validate(ctx context.Context, b *tenner.Board) (ok bool, conflicts []tenner.CellCoord, err error)
}

// Hinter returns a cell forced by propagation, if any.
type Hinter interface {
	Hint(ctx context.Context, b *tenner.Board) (tenner.Hint, bool, error)
}

// Storage persists and retrieves puzzles as JSON.
type Storage interface {
	Save(ctx context.Context, p *tenner.Puzzle) error
	Load(ctx context.Context, id string) (*tenner.Puzzle, error)
	List(ctx context.Context) ([]tenner.PuzzleMeta, error)
}
