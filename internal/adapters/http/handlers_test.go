package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"svw.info/tenner/internal/generator"
	"svw.info/tenner/internal/hint"
	"svw.info/tenner/internal/infrastructure/storage"
	"svw.info/tenner/internal/search"
	"svw.info/tenner/internal/tenner"
	"svw.info/tenner/internal/usecase"
	"svw.info/tenner/internal/validator"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	sv, err := search.NewBoardSolver(tenner.ModelBinary, "gac")
	require.NoError(t, err)
	uc := usecase.NewService(
		sv,
		generator.NewUniqueGenerator(sv),
		validator.New(),
		hint.NewForced(),
		storage.NewFS(t.TempDir()),
	)
	return New(uc).Router()
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func sampleBoard() tenner.Board {
	return tenner.Board{
		Rows: [][]int{
			{tenner.Empty, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			{8, 9, 0, tenner.Empty, 2, 3, 4, 5, 6, 7},
			{6, 7, 8, 9, 0, 1, 2, tenner.Empty, 4, 5},
		},
		Sums: []int{14, 17, 10, 13, 6, 9, 12, 15, 18, 21},
	}
}

func TestSolveEndpoint(t *testing.T) {
	h := testRouter(t)
	rec := post(t, h, "/api/solve", solveReq{Board: sampleBoard()})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[solveResp](t, rec)
	require.Empty(t, resp.Error)
	require.Equal(t, [][]int{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{8, 9, 0, 1, 2, 3, 4, 5, 6, 7},
		{6, 7, 8, 9, 0, 1, 2, 3, 4, 5},
	}, resp.Grid)
	require.Positive(t, resp.Nodes)
}

func TestSolveEndpointNoSolution(t *testing.T) {
	h := testRouter(t)
	b := sampleBoard()
	b.Sums[0] = 1 // column 0 cannot sum to 1
	rec := post(t, h, "/api/solve", solveReq{Board: b})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotEmpty(t, decode[solveResp](t, rec).Error)
}

func TestSolveEndpointPropagatorOverride(t *testing.T) {
	h := testRouter(t)
	rec := post(t, h, "/api/solve", solveReq{Board: sampleBoard(), Prop: "fc", Model: "alldiff"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decode[solveResp](t, rec).Grid)

	rec = post(t, h, "/api/solve", solveReq{Board: sampleBoard(), Prop: "ac3"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveEndpointBadJSON(t *testing.T) {
	h := testRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/solve", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateEndpoint(t *testing.T) {
	h := testRouter(t)
	b := sampleBoard()
	rec := post(t, h, "/api/validate", validateReq{Board: b})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[validateResp](t, rec).OK)

	b.Rows[0][1] = 9 // duplicates the 9 at (0,9)
	rec = post(t, h, "/api/validate", validateReq{Board: b})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[validateResp](t, rec)
	require.False(t, resp.OK)
	require.NotEmpty(t, resp.Conflicts)
}

func TestHintEndpoint(t *testing.T) {
	h := testRouter(t)
	rec := post(t, h, "/api/hint", hintReq{Board: sampleBoard()})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[hintResp](t, rec)
	require.True(t, resp.Found)
	require.Equal(t, tenner.CellCoord{Row: 0, Col: 0}, resp.Hint.Cell)
	require.Equal(t, 0, resp.Hint.Value)
}

func TestGenerateEndpoint(t *testing.T) {
	h := testRouter(t)
	rec := post(t, h, "/api/generate", generateReq{Seed: 42, Rows: 3})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[generateResp](t, rec)
	require.Empty(t, resp.Error)
	require.Equal(t, int64(42), resp.Seed)
	require.NoError(t, resp.Board.Validate())
}

func TestSaveLoadListEndpoints(t *testing.T) {
	h := testRouter(t)

	rec := post(t, h, "/api/save", tenner.Puzzle{ID: "t1", Board: sampleBoard(), Name: "test"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "t1", decode[saveResp](t, rec).ID)

	rec = post(t, h, "/api/load", loadReq{ID: "t1"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[loadResp](t, rec)
	require.NotNil(t, resp.Puzzle)
	require.Equal(t, "test", resp.Puzzle.Name)

	rec = post(t, h, "/api/load", loadReq{ID: "missing"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/list", nil)
	lrec := httptest.NewRecorder()
	h.ServeHTTP(lrec, req)
	require.Equal(t, http.StatusOK, lrec.Code)
	require.Len(t, decode[listResp](t, lrec).Puzzles, 1)
}

func TestMetricsEndpoint(t *testing.T) {
	h := testRouter(t)
	// counters carry labels, so at least one solve must have been observed
	// before they show up in the exposition
	post(t, h, "/api/solve", solveReq{Board: sampleBoard()})
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "tenner_solves_total")
}

func TestUnknownRoute(t *testing.T) {
	h := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
