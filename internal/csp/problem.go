package csp

import (
	"errors"
	"fmt"
)

// ErrUnregisteredVariable is returned when a constraint references a variable
// the problem does not own.
var ErrUnregisteredVariable = errors.New("constraint scope variable not registered in problem")

// Pruning is one (variable, value) pair removed by a propagator call. A
// pruning list is the undo record the search driver replays on backtrack.
type Pruning struct {
	Var *Variable
	Val Value
}

// Restore undoes a pruning list in reverse order.
func Restore(prunings []Pruning) {
	for i := len(prunings) - 1; i >= 0; i-- {
		prunings[i].Var.Restore(prunings[i].Val)
	}
}

// Solution maps variable names to their solved values.
type Solution map[string]Value

// Problem owns the variable and constraint sets of one CSP instance and keeps
// the derived variable -> constraints index. Constraints are registered at
// model-build time only; the index is not maintained through search because
// nothing changes it.
type Problem struct {
	name       string
	vars       []*Variable
	cons       []*Constraint
	registered map[*Variable]bool
	byVar      map[*Variable][]*Constraint
}

// NewProblem creates an empty problem registry.
func NewProblem(name string) *Problem {
	return &Problem{
		name:       name,
		registered: make(map[*Variable]bool),
		byVar:      make(map[*Variable][]*Constraint),
	}
}

// Name returns the problem's tag.
func (p *Problem) Name() string { return p.name }

// AddVariable registers a variable. Registration order is significant: it is
// the tie-break order of the MRV heuristic.
func (p *Problem) AddVariable(v *Variable) error {
	if p.registered[v] {
		return fmt.Errorf("csp: variable %s already registered in %s", v.Name(), p.name)
	}
	p.registered[v] = true
	p.vars = append(p.vars, v)
	return nil
}

// AddConstraint registers a constraint. Every scope variable must already be
// registered.
func (p *Problem) AddConstraint(c *Constraint) error {
	for _, v := range c.scope {
		if !p.registered[v] {
			return fmt.Errorf("csp: %s in scope of %s: %w", v.Name(), c.Name(), ErrUnregisteredVariable)
		}
	}
	p.cons = append(p.cons, c)
	for _, v := range c.scope {
		p.byVar[v] = append(p.byVar[v], c)
	}
	return nil
}

// Variables returns all variables in registration order.
func (p *Problem) Variables() []*Variable {
	out := make([]*Variable, len(p.vars))
	copy(out, p.vars)
	return out
}

// Constraints returns all constraints in registration order.
func (p *Problem) Constraints() []*Constraint {
	out := make([]*Constraint, len(p.cons))
	copy(out, p.cons)
	return out
}

// ConstraintsWith returns the constraints whose scope contains v, in
// registration order.
func (p *Problem) ConstraintsWith(v *Variable) []*Constraint {
	cons := p.byVar[v]
	out := make([]*Constraint, len(cons))
	copy(out, cons)
	return out
}

// UnassignedVariables returns the registered variables without a committed
// value, in registration order.
func (p *Problem) UnassignedVariables() []*Variable {
	var out []*Variable
	for _, v := range p.vars {
		if _, ok := v.AssignedValue(); !ok {
			out = append(out, v)
		}
	}
	return out
}

// NumVariables returns the number of registered variables.
func (p *Problem) NumVariables() int { return len(p.vars) }

// NumConstraints returns the number of registered constraints.
func (p *Problem) NumConstraints() int { return len(p.cons) }

// Assignment captures the currently assigned variables as a Solution.
func (p *Problem) Assignment() Solution {
	sol := make(Solution, len(p.vars))
	for _, v := range p.vars {
		if val, ok := v.AssignedValue(); ok {
			sol[v.Name()] = val
		}
	}
	return sol
}
