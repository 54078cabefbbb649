// Package propagate implements the constraint propagation strategies driven
// by the backtracking search: plain backtracking checks (BT), forward
// checking (FC), and generalized arc consistency (GAC), plus the
// minimum-remaining-values branching heuristic.
//
// A propagator is called either before any branching (newVar == nil) or right
// after the driver commits newVar. It may prune values from current domains
// and reports success together with the exact pruning list it performed, or
// failure (a domain wiped out) together with the prunings made up to that
// point. The driver owns the list and replays it in reverse on backtrack.
package propagate

import (
	"fmt"

	"svw.info/tenner/internal/csp"
)

// Propagator prunes current domains after an assignment (or at the search
// root when newVar is nil) and reports success plus its pruning list.
type Propagator func(p *csp.Problem, newVar *csp.Variable) (bool, []csp.Pruning)

// ByName maps a propagator flag value (bt, fc, gac) to its implementation.
func ByName(name string) (Propagator, error) {
	switch name {
	case "bt":
		return BT, nil
	case "fc":
		return FC, nil
	case "gac":
		return GAC, nil
	default:
		return nil, fmt.Errorf("propagate: unknown propagator %q (want bt, fc or gac)", name)
	}
}

// BT does no propagation. At the root it succeeds trivially; after an
// assignment it evaluates every fully instantiated constraint touching the
// new variable and fails if any is violated. Nothing is ever pruned, so the
// pruning list is always empty.
func BT(p *csp.Problem, newVar *csp.Variable) (bool, []csp.Pruning) {
	if newVar == nil {
		return true, nil
	}
	for _, c := range p.ConstraintsWith(newVar) {
		if c.NumUnassigned() != 0 {
			continue
		}
		scope := c.Scope()
		vals := make([]csp.Value, len(scope))
		for i, v := range scope {
			vals[i], _ = v.AssignedValue()
		}
		if !c.Check(vals) {
			return false, nil
		}
	}
	return true, nil
}

// FC forward-checks every constraint with exactly one unassigned scope
// variable: each live value of that variable without support is pruned. At
// the root all constraints are scanned, otherwise only those touching newVar.
// A wipeout fails immediately with the prunings accumulated so far.
func FC(p *csp.Problem, newVar *csp.Variable) (bool, []csp.Pruning) {
	var cons []*csp.Constraint
	if newVar == nil {
		cons = p.Constraints()
	} else {
		cons = p.ConstraintsWith(newVar)
	}

	var pruned []csp.Pruning
	for _, c := range cons {
		unasgn := c.UnassignedVars()
		if len(unasgn) != 1 {
			continue
		}
		u := unasgn[0]
		for _, val := range u.CurDomain() {
			// Domain membership is the already-pruned test: an earlier
			// constraint in this same call may have removed val.
			if !u.InCurDomain(val) || c.HasSupport(u, val) {
				continue
			}
			u.Prune(val)
			pruned = append(pruned, csp.Pruning{Var: u, Val: val})
			if u.CurDomainSize() == 0 {
				return false, pruned
			}
		}
	}
	return true, pruned
}

// GAC enforces generalized arc consistency with a FIFO worklist. The queue is
// seeded with every constraint at the root, or with the constraints touching
// newVar after an assignment. Pruning a value re-enqueues the constraints
// sharing that variable until a fixpoint is reached; a wipeout fails with the
// accumulated pruning list.
func GAC(p *csp.Problem, newVar *csp.Variable) (bool, []csp.Pruning) {
	var seed []*csp.Constraint
	if newVar == nil {
		seed = p.Constraints()
	} else {
		seed = p.ConstraintsWith(newVar)
	}

	queue := make([]*csp.Constraint, 0, len(seed))
	queued := make(map[*csp.Constraint]bool, len(seed))
	enqueue := func(c *csp.Constraint) {
		if !queued[c] {
			queued[c] = true
			queue = append(queue, c)
		}
	}
	for _, c := range seed {
		enqueue(c)
	}

	var pruned []csp.Pruning
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		queued[c] = false

		for _, v := range c.Scope() {
			for _, val := range v.CurDomain() {
				if !v.InCurDomain(val) || c.HasSupport(v, val) {
					continue
				}
				v.Prune(val)
				pruned = append(pruned, csp.Pruning{Var: v, Val: val})
				if v.CurDomainSize() == 0 {
					return false, pruned
				}
				for _, rc := range p.ConstraintsWith(v) {
					enqueue(rc)
				}
			}
		}
	}
	return true, pruned
}
