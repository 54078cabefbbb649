package csp

import (
	"fmt"
	"strconv"
	"strings"
)

// Constraint relates an ordered scope of variables through an explicit table
// of satisfying value tuples, aligned positionally with the scope. The table
// is immutable after construction; a support index (scope position, value ->
// candidate tuples) makes HasSupport an indexed existential search instead of
// a full table scan.
type Constraint struct {
	name   string
	scope  []*Variable
	vpos   map[*Variable]int
	tuples [][]Value
	seen   map[string]struct{}
	// support[i][v] lists indices of tuples assigning v to scope position i.
	support []map[Value][]int
}

// NewConstraint builds a constraint over scope with the given satisfying
// tuples. Tuples whose arity does not match the scope indicate a model-builder
// bug and panic; duplicate tuples are kept once.
func NewConstraint(name string, scope []*Variable, tuples [][]Value) *Constraint {
	c := &Constraint{
		name:    name,
		scope:   make([]*Variable, len(scope)),
		vpos:    make(map[*Variable]int, len(scope)),
		seen:    make(map[string]struct{}, len(tuples)),
		support: make([]map[Value][]int, len(scope)),
	}
	copy(c.scope, scope)
	for i, v := range scope {
		c.vpos[v] = i
		c.support[i] = make(map[Value][]int)
	}
	for _, t := range tuples {
		if len(t) != len(scope) {
			panic(fmt.Sprintf("csp: tuple arity %d does not match scope arity %d in %s", len(t), len(scope), name))
		}
		k := tupleKey(t)
		if _, dup := c.seen[k]; dup {
			continue
		}
		c.seen[k] = struct{}{}
		ti := len(c.tuples)
		stored := make([]Value, len(t))
		copy(stored, t)
		c.tuples = append(c.tuples, stored)
		for i, val := range stored {
			c.support[i][val] = append(c.support[i][val], ti)
		}
	}
	return c
}

// Name returns the constraint's tag. Tags need not be unique.
func (c *Constraint) Name() string { return c.name }

// Scope returns the ordered scope.
func (c *Constraint) Scope() []*Variable {
	out := make([]*Variable, len(c.scope))
	copy(out, c.scope)
	return out
}

// Arity returns the number of scope variables.
func (c *Constraint) Arity() int { return len(c.scope) }

// Check reports whether the scope-aligned tuple is satisfying.
func (c *Constraint) Check(tuple []Value) bool {
	if len(tuple) != len(c.scope) {
		return false
	}
	_, ok := c.seen[tupleKey(tuple)]
	return ok
}

// HasSupport reports whether some satisfying tuple assigns val to v and, to
// every other scope variable, a value still in that variable's current
// domain. Querying a variable outside the scope is a caller bug and panics.
func (c *Constraint) HasSupport(v *Variable, val Value) bool {
	i, ok := c.vpos[v]
	if !ok {
		panic(fmt.Sprintf("csp: variable %s not in scope of %s", v.Name(), c.name))
	}
	for _, ti := range c.support[i][val] {
		if c.tupleLive(c.tuples[ti]) {
			return true
		}
	}
	return false
}

// tupleLive reports whether every component of t is in its variable's current
// domain.
func (c *Constraint) tupleLive(t []Value) bool {
	for i, v := range c.scope {
		if !v.InCurDomain(t[i]) {
			return false
		}
	}
	return true
}

// UnassignedVars returns the scope variables without a committed value, in
// scope order. Recomputed on every call; assignment state changes during
// search.
func (c *Constraint) UnassignedVars() []*Variable {
	var out []*Variable
	for _, v := range c.scope {
		if _, ok := v.AssignedValue(); !ok {
			out = append(out, v)
		}
	}
	return out
}

// NumUnassigned counts scope variables without a committed value.
func (c *Constraint) NumUnassigned() int {
	n := 0
	for _, v := range c.scope {
		if _, ok := v.AssignedValue(); !ok {
			n++
		}
	}
	return n
}

func (c *Constraint) String() string {
	names := make([]string, len(c.scope))
	for i, v := range c.scope {
		names[i] = v.Name()
	}
	return fmt.Sprintf("%s(%s)", c.name, strings.Join(names, ","))
}

func tupleKey(t []Value) string {
	var b strings.Builder
	for i, v := range t {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
