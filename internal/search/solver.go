// Package search drives backtracking search over a csp.Problem. The solver
// owns the trail: every propagator call's pruning list is restored in reverse
// order when the corresponding assignment is undone, so a finished run leaves
// the problem exactly as it found it.
package search

import (
	"context"
	"errors"
	"time"

	"svw.info/tenner/internal/csp"
	"svw.info/tenner/internal/ports"
	"svw.info/tenner/internal/propagate"
)

// ErrNoSolution reports an exhausted search space. Domain wipeouts during
// propagation are ordinary backtracks, not errors.
var ErrNoSolution = errors.New("search: no solution")

// Solver is a depth-first backtracking solver parameterized by propagation
// strategy and variable ordering.
type Solver struct {
	Propagate propagate.Propagator
	Order     propagate.Ordering
	// ValueOrder optionally reorders the candidate values of a branching
	// variable. The default tries values in domain order.
	ValueOrder func(v *csp.Variable, vals []csp.Value) []csp.Value
}

// New returns a solver using the given propagator and MRV ordering.
func New(prop propagate.Propagator) *Solver {
	return &Solver{Propagate: prop, Order: propagate.MRV}
}

// Solve searches for one full assignment satisfying every constraint.
// Cancellation is honored between propagator calls, never mid-call.
func (s *Solver) Solve(ctx context.Context, p *csp.Problem) (csp.Solution, ports.Stats, error) {
	start := time.Now()
	var sol csp.Solution
	st := ports.Stats{}
	err := s.run(ctx, p, &st, func(found csp.Solution) bool {
		sol = found
		return true
	})
	st.Duration = time.Since(start)
	if err != nil {
		return nil, st, err
	}
	if sol == nil {
		return nil, st, ErrNoSolution
	}
	return sol, st, nil
}

// CountSolutions counts full assignments up to limit. A limit of 2 is the
// uniqueness test.
func (s *Solver) CountSolutions(ctx context.Context, p *csp.Problem, limit int) (int, ports.Stats, error) {
	start := time.Now()
	count := 0
	st := ports.Stats{}
	err := s.run(ctx, p, &st, func(csp.Solution) bool {
		count++
		return count >= limit
	})
	st.Duration = time.Since(start)
	return count, st, err
}

// run performs root propagation, recurses, and unwinds the root prunings so
// the problem state is untouched afterwards. onSolution returns true to stop
// the search.
func (s *Solver) run(ctx context.Context, p *csp.Problem, st *ports.Stats, onSolution func(csp.Solution) bool) error {
	ok, pruned := s.Propagate(p, nil)
	st.Prunings += len(pruned)
	if !ok {
		csp.Restore(pruned)
		return nil
	}
	_, err := s.dfs(ctx, p, st, onSolution)
	csp.Restore(pruned)
	return err
}

func (s *Solver) dfs(ctx context.Context, p *csp.Problem, st *ports.Stats, onSolution func(csp.Solution) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	v := s.Order(p)
	if v == nil {
		return onSolution(p.Assignment()), nil
	}
	vals := v.CurDomain()
	if s.ValueOrder != nil {
		vals = s.ValueOrder(v, vals)
	}
	for _, val := range vals {
		st.Nodes++
		v.Assign(val)
		ok, pruned := s.Propagate(p, v)
		st.Prunings += len(pruned)
		var stop bool
		var err error
		if ok {
			stop, err = s.dfs(ctx, p, st, onSolution)
		}
		csp.Restore(pruned)
		v.Unassign()
		if err != nil || stop {
			return stop, err
		}
	}
	return false, nil
}
