package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"svw.info/tenner/internal/tenner"
)

func samplePuzzle(id string) *tenner.Puzzle {
	return &tenner.Puzzle{
		ID:   id,
		Seed: 42,
		Board: tenner.Board{
			Rows: [][]int{
				{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
				{8, 9, 0, 1, 2, 3, 4, 5, 6, 7},
				{6, 7, 8, 9, 0, 1, 2, 3, 4, 5},
			},
			Sums: []int{14, 17, 10, 13, 6, 9, 12, 15, 18, 21},
		},
		CreatedAt: 1700000000,
		Name:      "sample",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewFS(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, samplePuzzle("daily-1")))

	got, err := s.Load(ctx, "daily-1")
	require.NoError(t, err)
	require.Equal(t, samplePuzzle("daily-1"), got)
}

func TestSaveRejectsMissingID(t *testing.T) {
	s := NewFS(t.TempDir())
	require.Error(t, s.Save(context.Background(), &tenner.Puzzle{}))
	require.Error(t, s.Save(context.Background(), nil))
}

func TestSaveSanitizesID(t *testing.T) {
	dir := t.TempDir()
	s := NewFS(dir)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, samplePuzzle("../escape")))
	_, err := os.Stat(filepath.Join(dir, "__escape.json"))
	require.NoError(t, err)

	got, err := s.Load(ctx, "../escape")
	require.NoError(t, err)
	require.Equal(t, "../escape", got.ID)
}

func TestLoadMissing(t *testing.T) {
	s := NewFS(t.TempDir())
	_, err := s.Load(context.Background(), "nope")
	require.Error(t, err)
}

func TestListSkipsGarbage(t *testing.T) {
	dir := t.TempDir()
	s := NewFS(dir)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, samplePuzzle("a")))
	require.NoError(t, s.Save(ctx, samplePuzzle("b")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0o644))

	metas, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	for _, m := range metas {
		require.NotEmpty(t, m.ID)
		require.Equal(t, "sample", m.Name)
	}
}

func TestListEmptyDir(t *testing.T) {
	s := NewFS(filepath.Join(t.TempDir(), "does-not-exist"))
	metas, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, metas)
}
