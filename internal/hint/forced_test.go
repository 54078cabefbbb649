package hint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"svw.info/tenner/internal/tenner"
)

func TestHintFindsSumForcedCell(t *testing.T) {
	// Column 0 sums to 14 with 8 and 6 fixed below, so the open cell must
	// be 0; arc consistency discovers that without search.
	b := &tenner.Board{
		Rows: [][]int{
			{tenner.Empty, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			{8, 9, 0, 1, 2, 3, 4, 5, 6, 7},
			{6, 7, 8, 9, 0, 1, 2, 3, 4, 5},
		},
		Sums: []int{14, 17, 10, 13, 6, 9, 12, 15, 18, 21},
	}
	h, ok, err := NewForced().Hint(context.Background(), b)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, tenner.CellCoord{Row: 0, Col: 0}, h.Cell)
	require.Equal(t, 0, h.Value)
	require.NotEmpty(t, h.Message)
}

func TestHintNoForcedCellWithoutSums(t *testing.T) {
	// Cells (0,0) and (0,4) can swap 0 and 4 freely once sums are gone, so
	// propagation leaves two candidates in each and no hint exists.
	b := &tenner.Board{
		Rows: [][]int{
			{tenner.Empty, 1, 2, 3, tenner.Empty, 5, 6, 7, 8, 9},
			{8, 9, 0, 1, 2, 3, 4, 5, 6, 7},
			{6, 7, 8, 9, 0, 1, 2, 3, 4, 5},
		},
	}
	_, ok, err := NewForced().Hint(context.Background(), b)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHintRejectsDeadBoard(t *testing.T) {
	b := &tenner.Board{
		Rows: [][]int{
			{tenner.Empty, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			{8, 9, 0, 1, 2, 3, 4, 5, 6, 7},
			{6, 7, 8, 9, 0, 1, 2, 3, 4, 5},
		},
		Sums: []int{99, 17, 10, 13, 6, 9, 12, 15, 18, 21},
	}
	_, _, err := NewForced().Hint(context.Background(), b)
	require.Error(t, err)
}
