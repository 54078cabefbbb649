package tenner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"svw.info/tenner/internal/propagate"
	"svw.info/tenner/internal/search"
	"svw.info/tenner/internal/tenner"
)

// fullGrid is a valid 3-row Tenner solution (rows are shifted digit runs, so
// all adjacency constraints hold).
var fullGrid = [][]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{8, 9, 0, 1, 2, 3, 4, 5, 6, 7},
	{6, 7, 8, 9, 0, 1, 2, 3, 4, 5},
}

var fullSums = []int{14, 17, 10, 13, 6, 9, 12, 15, 18, 21}

// sampleBoard blanks three cells of fullGrid, one per column touched, so the
// column sums force each of them uniquely.
func sampleBoard() *tenner.Board {
	b := &tenner.Board{Rows: make([][]int, len(fullGrid)), Sums: append([]int(nil), fullSums...)}
	for r, row := range fullGrid {
		b.Rows[r] = append([]int(nil), row...)
	}
	b.Rows[0][0] = tenner.Empty
	b.Rows[1][3] = tenner.Empty
	b.Rows[2][7] = tenner.Empty
	return b
}

func TestBuildBinaryModelShape(t *testing.T) {
	p, grid, err := tenner.BuildBinaryModel(sampleBoard())
	require.NoError(t, err)
	require.Equal(t, 30, p.NumVariables())
	require.Len(t, grid, 3)

	// fixed cells become singleton domains, open cells keep all digits
	require.Equal(t, 10, grid[0][0].CurDomainSize())
	require.Equal(t, []int{1}, grid[0][1].CurDomain())
}

func TestBuildAllDiffModelRejectsRepeatedDigit(t *testing.T) {
	b := sampleBoard()
	b.Rows[0][1] = 2 // duplicates the fixed 2 at (0,2)
	_, _, err := tenner.BuildAllDiffModel(b)
	require.ErrorIs(t, err, tenner.ErrBadBoard)
}

func TestBuildModelDispatch(t *testing.T) {
	_, _, err := tenner.BuildModel(tenner.ModelKind("nope"), sampleBoard())
	require.Error(t, err)
	_, _, err = tenner.BuildModel(tenner.ModelBinary, sampleBoard())
	require.NoError(t, err)
	_, _, err = tenner.BuildModel(tenner.ModelAllDiff, sampleBoard())
	require.NoError(t, err)
}

func TestSolveSampleBoardBothModels(t *testing.T) {
	for _, kind := range []tenner.ModelKind{tenner.ModelBinary, tenner.ModelAllDiff} {
		for _, prop := range []string{"fc", "gac"} {
			t.Run(string(kind)+"/"+prop, func(t *testing.T) {
				s, err := search.NewBoardSolver(kind, prop)
				require.NoError(t, err)
				got, st, err := s.Solve(context.Background(), sampleBoard())
				require.NoError(t, err)
				require.Equal(t, fullGrid, got, "column sums force the blanked cells")
				require.Positive(t, st.Nodes)
			})
		}
	}
}

func TestSampleBoardIsUnique(t *testing.T) {
	s, err := search.NewBoardSolver(tenner.ModelBinary, "gac")
	require.NoError(t, err)
	unique, _, err := s.Unique(context.Background(), sampleBoard())
	require.NoError(t, err)
	require.True(t, unique)
}

func TestSolveContradictoryBoard(t *testing.T) {
	b := sampleBoard()
	b.Sums[0] = 1 // col 0 holds fixed 8 and 6, sum 1 is unreachable
	s, err := search.NewBoardSolver(tenner.ModelBinary, "gac")
	require.NoError(t, err)
	_, _, err = s.Solve(context.Background(), b)
	require.ErrorIs(t, err, search.ErrNoSolution)
}

func TestGridFromSolutionMissingCell(t *testing.T) {
	p, _, err := tenner.BuildBinaryModel(sampleBoard())
	require.NoError(t, err)
	_, err = tenner.GridFromSolution(p.Assignment(), 3)
	require.Error(t, err, "nothing assigned yet")

	sol, _, err := search.New(propagate.GAC).Solve(context.Background(), p)
	require.NoError(t, err)
	grid, err := tenner.GridFromSolution(sol, 3)
	require.NoError(t, err)
	require.Equal(t, fullGrid, grid)
}
