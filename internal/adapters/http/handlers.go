package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"svw.info/tenner/internal/ports"
	"svw.info/tenner/internal/search"
	"svw.info/tenner/internal/tenner"
	"svw.info/tenner/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

// Router builds the chi router with logging, recovery, and metrics.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Post("/api/solve", h.handleSolve)
	r.Post("/api/validate", h.handleValidate)
	r.Post("/api/hint", h.handleHint)
	r.Post("/api/generate", h.handleGenerate)
	r.Post("/api/save", h.handleSave)
	r.Post("/api/load", h.handleLoad)
	r.Get("/api/list", h.handleList)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ---- Solve ----

type solveReq struct {
	Board tenner.Board `json:"board"`
	// Optional overrides of the server's solver wiring.
	Prop  string `json:"prop,omitempty"`
	Model string `json:"model,omitempty"`
}
type solveResp struct {
	Grid       [][]int `json:"grid,omitempty"`
	DurationMs int64   `json:"durationMs,omitempty"`
	Nodes      int     `json:"nodes,omitempty"`
	Prunings   int     `json:"prunings,omitempty"`
	Error      string  `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	grid, st, err := h.solveWith(r, &req)
	observeSolve(st.Duration, err)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, search.ErrNoSolution) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, solveResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes, Prunings: st.Prunings})
		return
	}
	writeJSON(w, http.StatusOK, solveResp{
		Grid:       grid,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
		Prunings:   st.Prunings,
	})
}

// solveWith uses the wired solver unless the request overrides the propagator
// or model.
func (h *Handler) solveWith(r *http.Request, req *solveReq) ([][]int, ports.Stats, error) {
	if req.Prop == "" && req.Model == "" {
		return h.UC.Solve(r.Context(), &req.Board)
	}
	prop := req.Prop
	if prop == "" {
		prop = "gac"
	}
	model := tenner.ModelKind(req.Model)
	if req.Model == "" {
		model = tenner.ModelBinary
	}
	s, err := search.NewBoardSolver(model, prop)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	return s.Solve(r.Context(), &req.Board)
}

// ---- Validate ----

type validateReq struct {
	Board tenner.Board `json:"board"`
}
type validateResp struct {
	OK        bool               `json:"ok"`
	Conflicts []tenner.CellCoord `json:"conflicts,omitempty"`
	Error     string             `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	ok, conflicts, err := h.UC.Validate(r.Context(), &req.Board)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Conflicts: conflicts})
}

// ---- Hint ----

type hintReq struct {
	Board tenner.Board `json:"board"`
}
type hintResp struct {
	Found bool        `json:"found"`
	Hint  tenner.Hint `json:"hint,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), &req.Board)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, hintResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Found: ok, Hint: hh})
}

// ---- Generate ----

type generateReq struct {
	Seed int64 `json:"seed,omitempty"`
	Rows int   `json:"rows,omitempty"`
}
type generateResp struct {
	Board      tenner.Board `json:"board"`
	Seed       int64        `json:"seed"`
	DurationMs int64        `json:"durationMs,omitempty"`
	Nodes      int          `json:"nodes,omitempty"`
	Error      string       `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rows := req.Rows
	if rows == 0 {
		rows = 4
	}
	p, st, err := h.UC.Generate(r.Context(), seed, rows)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, generateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Board:      p.Board,
		Seed:       seed,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var p tenner.Puzzle
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if p.ID == "" {
		p.ID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		writeJSON(w, http.StatusInternalServerError, saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: p.ID})
}

type loadReq struct {
	ID string `json:"id"`
}
type loadResp struct {
	Puzzle *tenner.Puzzle `json:"puzzle,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: "invalid JSON: missing id"})
		return
	}
	p, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Puzzle: p})
}

type listResp struct {
	Puzzles []tenner.PuzzleMeta `json:"puzzles"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	metas, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, listResp{Puzzles: metas})
}
