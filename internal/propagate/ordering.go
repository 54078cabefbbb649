package propagate

import "svw.info/tenner/internal/csp"

// Ordering picks the next variable to branch on, or nil when every variable
// is assigned.
type Ordering func(p *csp.Problem) *csp.Variable

// MRV returns the unassigned variable with the smallest current domain, ties
// broken by registration order. Assigned variables report a domain of size
// one and are skipped.
func MRV(p *csp.Problem) *csp.Variable {
	var best *csp.Variable
	smallest := 0
	for _, v := range p.Variables() {
		if _, ok := v.AssignedValue(); ok {
			continue
		}
		if best == nil || v.CurDomainSize() < smallest {
			best = v
			smallest = v.CurDomainSize()
		}
	}
	return best
}
