// Package tenner models the Tenner Grid puzzle: an n x 10 grid (3 <= n <= 7)
// where every row holds distinct digits 0-9, vertically and diagonally
// adjacent cells differ, and each column sums to a given target.
package tenner

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Width is the fixed number of columns of a Tenner Grid.
const Width = 10

// Empty marks an unfilled cell in a board row.
const Empty = -1

// Board holds the given rows and the column sum targets. A cell is either
// Empty or a fixed digit 0-9. Sums may be nil while a board is still being
// generated; a playable board has one target per column.
type Board struct {
	Rows [][]int `json:"rows" yaml:"rows"`
	Sums []int   `json:"sums,omitempty" yaml:"sums,omitempty"`
}

// CellCoord identifies a cell on the grid.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Hint describes a forced cell for the UI.
type Hint struct {
	Message string    `json:"message,omitempty"`
	Cell    CellCoord `json:"cell"`
	Value   int       `json:"value"`
}

// Puzzle is a persisted board with metadata.
type Puzzle struct {
	ID        string `json:"id,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
	Board     Board  `json:"board"`
	CreatedAt int64  `json:"createdAt,omitempty"`
	// Optional user metadata
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// ErrBadBoard is wrapped by every board shape violation.
var ErrBadBoard = errors.New("invalid tenner board")

// Validate checks board shape: 3-7 rows of width 10, cells Empty or 0-9, and
// when sums are present exactly one non-negative target per column.
func (b *Board) Validate() error {
	if len(b.Rows) < 3 || len(b.Rows) > 7 {
		return fmt.Errorf("%w: %d rows (want 3-7)", ErrBadBoard, len(b.Rows))
	}
	for r, row := range b.Rows {
		if len(row) != Width {
			return fmt.Errorf("%w: row %d has %d cells (want %d)", ErrBadBoard, r, len(row), Width)
		}
		for c, cell := range row {
			if cell != Empty && (cell < 0 || cell > 9) {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrBadBoard, r, c, cell)
			}
		}
	}
	if b.Sums != nil {
		if len(b.Sums) != Width {
			return fmt.Errorf("%w: %d column sums (want %d)", ErrBadBoard, len(b.Sums), Width)
		}
		for c, s := range b.Sums {
			if s < 0 {
				return fmt.Errorf("%w: negative sum %d for column %d", ErrBadBoard, s, c)
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	out := &Board{Rows: make([][]int, len(b.Rows))}
	for i, row := range b.Rows {
		out.Rows[i] = make([]int, len(row))
		copy(out.Rows[i], row)
	}
	if b.Sums != nil {
		out.Sums = make([]int, len(b.Sums))
		copy(out.Sums, b.Sums)
	}
	return out
}

// LoadBoard reads a YAML board file and validates its shape.
func LoadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBoard(data)
}

// ParseBoard decodes a YAML board document and validates its shape.
func ParseBoard(data []byte) (*Board, error) {
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBoard, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Marshal encodes the board as YAML.
func (b *Board) Marshal() ([]byte, error) {
	return yaml.Marshal(b)
}

// FormatGrid renders a grid (a board's rows or a solved result) for terminal
// output, with column sums appended when present.
func FormatGrid(rows [][]int, sums []int) string {
	var sb strings.Builder
	for _, row := range rows {
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if cell == Empty {
				sb.WriteByte('.')
			} else {
				fmt.Fprintf(&sb, "%d", cell)
			}
		}
		sb.WriteByte('\n')
	}
	if sums != nil {
		sb.WriteString(strings.Repeat("-", 2*Width-1))
		sb.WriteByte('\n')
		for c, s := range sums {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", s)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
