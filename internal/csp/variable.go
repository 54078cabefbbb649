// Package csp holds the finite-domain constraint-satisfaction primitives:
// variables with prunable current domains, constraints over explicit tuple
// tables, and the problem registry that indexes constraints by variable.
//
// The mutation protocol is deliberately narrow. Propagators shrink current
// domains through Prune and report every (variable, value) pair they removed;
// the search driver restores exactly those pairs, in reverse order, when it
// undoes an assignment. Misusing the protocol (pruning an absent value,
// restoring a live one, assigning outside the current domain) is a caller bug
// and panics rather than corrupting domain state silently.
package csp

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Value is a single domain element. Models map whatever they place (digits,
// colors, slots) onto ints before building variables.
type Value = int

// Variable has an immutable original domain fixed at construction and a
// mutable current domain tracked as a bitset over original-domain positions.
type Variable struct {
	name string
	dom  []Value       // original domain, construction order
	pos  map[Value]int // value -> position in dom
	cur  *bitset.BitSet

	val   Value
	bound bool
}

// NewVariable creates a variable whose current domain starts equal to the
// given original domain. Duplicate values are kept once.
func NewVariable(name string, domain []Value) *Variable {
	v := &Variable{
		name: name,
		pos:  make(map[Value]int, len(domain)),
	}
	for _, d := range domain {
		if _, ok := v.pos[d]; ok {
			continue
		}
		v.pos[d] = len(v.dom)
		v.dom = append(v.dom, d)
	}
	v.cur = bitset.New(uint(len(v.dom)))
	for i := range v.dom {
		v.cur.Set(uint(i))
	}
	return v
}

// Name returns the variable's identity, stable for its lifetime.
func (v *Variable) Name() string { return v.name }

// Domain returns a copy of the original domain in construction order.
func (v *Variable) Domain() []Value {
	out := make([]Value, len(v.dom))
	copy(out, v.dom)
	return out
}

// CurDomain returns the live values in original-domain order. For an assigned
// variable only the assigned value counts as current.
func (v *Variable) CurDomain() []Value {
	if v.bound {
		return []Value{v.val}
	}
	out := make([]Value, 0, v.cur.Count())
	for i, d := range v.dom {
		if v.cur.Test(uint(i)) {
			out = append(out, d)
		}
	}
	return out
}

// CurDomainSize reports the cardinality of the current domain. Zero signals a
// domain wipeout.
func (v *Variable) CurDomainSize() int {
	if v.bound {
		return 1
	}
	return int(v.cur.Count())
}

// InCurDomain reports whether val is live. For an assigned variable only the
// assigned value is live.
func (v *Variable) InCurDomain(val Value) bool {
	if v.bound {
		return val == v.val
	}
	i, ok := v.pos[val]
	return ok && v.cur.Test(uint(i))
}

// Prune removes val from the current domain. Pruning a value that is not
// currently present is a propagator bug and panics.
func (v *Variable) Prune(val Value) {
	i, ok := v.pos[val]
	if !ok || !v.cur.Test(uint(i)) {
		panic(fmt.Sprintf("csp: prune of %d not in current domain of %s", val, v.name))
	}
	v.cur.Clear(uint(i))
}

// Restore reinserts a previously pruned value. Restoring a value that is
// still present is a trail bug and panics.
func (v *Variable) Restore(val Value) {
	i, ok := v.pos[val]
	if !ok {
		panic(fmt.Sprintf("csp: restore of %d outside original domain of %s", val, v.name))
	}
	if v.cur.Test(uint(i)) {
		panic(fmt.Sprintf("csp: restore of %d already in current domain of %s", val, v.name))
	}
	v.cur.Set(uint(i))
}

// Assign commits the variable to val. The value must be in the current
// domain.
func (v *Variable) Assign(val Value) {
	if !v.InCurDomain(val) {
		panic(fmt.Sprintf("csp: assign of %d not in current domain of %s", val, v.name))
	}
	v.val = val
	v.bound = true
}

// Unassign clears the committed value on backtrack.
func (v *Variable) Unassign() {
	if !v.bound {
		panic(fmt.Sprintf("csp: unassign of unassigned %s", v.name))
	}
	v.bound = false
}

// AssignedValue returns the committed value and whether one is set.
func (v *Variable) AssignedValue() (Value, bool) {
	return v.val, v.bound
}

func (v *Variable) String() string {
	if v.bound {
		return fmt.Sprintf("%s=%d", v.name, v.val)
	}
	return fmt.Sprintf("%s%v", v.name, v.CurDomain())
}
