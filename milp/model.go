// Package milp builds and solves small mixed-integer linear programs.
//
// A Model exposes the capability set the recommendation pipeline needs:
// declare binary or bounded continuous variables, add linear constraints,
// set a linear objective, solve, and read back variable values and the
// solve status. Solving runs the LP relaxation through gonum's simplex and
// closes the integrality gap with branch and bound over the binary
// variables, so the whole thing stays pure Go with no native solver
// library to link against.
package milp

import (
	"fmt"
	"math"
)

// Status is the lifecycle state of a Model.
type Status int

const (
	StatusBuilt Status = iota
	StatusSolving
	StatusSolved
	StatusInfeasible
	StatusSolverError
)

func (s Status) String() string {
	switch s {
	case StatusBuilt:
		return "built"
	case StatusSolving:
		return "solving"
	case StatusSolved:
		return "solved"
	case StatusInfeasible:
		return "infeasible"
	case StatusSolverError:
		return "solver error"
	default:
		return "unknown"
	}
}

// Var is an opaque handle to one decision variable.
type Var int

// Term is one coefficient*variable entry of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

type varKind int

const (
	kindBinary varKind = iota
	kindContinuous
)

type variable struct {
	name string
	kind varKind
	lo   float64
	hi   float64
}

type sense int

const (
	senseLE sense = iota
	senseEQ
	senseGE
)

func (s sense) String() string {
	switch s {
	case senseLE:
		return "<="
	case senseEQ:
		return "="
	default:
		return ">="
	}
}

type constraint struct {
	name  string
	terms []Term
	sense sense
	rhs   float64
}

// Model is a single-use optimization model. Build it, solve it once, read
// the solution, discard it. It is not safe for concurrent use and must not
// be shared across requests.
type Model struct {
	vars        []variable
	constraints []constraint
	objective   []float64
	status      Status
	values      []float64
	objValue    float64
}

// New returns an empty model in the built state.
func New() *Model {
	return &Model{status: StatusBuilt}
}

// Binary declares a new {0,1} decision variable.
func (m *Model) Binary(name string) Var {
	m.vars = append(m.vars, variable{name: name, kind: kindBinary, lo: 0, hi: 1})
	m.objective = append(m.objective, 0)
	return Var(len(m.vars) - 1)
}

// Continuous declares a new continuous variable bounded to [lo, hi].
// Bounds must satisfy 0 <= lo <= hi; the solver works on nonnegative
// variables.
func (m *Model) Continuous(name string, lo, hi float64) Var {
	if lo < 0 || hi < lo {
		panic(fmt.Sprintf("milp: invalid bounds [%g, %g] for variable %s", lo, hi, name))
	}
	m.vars = append(m.vars, variable{name: name, kind: kindContinuous, lo: lo, hi: hi})
	m.objective = append(m.objective, 0)
	return Var(len(m.vars) - 1)
}

// Maximize sets the objective to maximize the given linear expression.
// Later calls replace earlier ones.
func (m *Model) Maximize(terms ...Term) {
	for i := range m.objective {
		m.objective[i] = 0
	}
	for _, t := range terms {
		m.objective[t.Var] += t.Coef
	}
}

// AddLe adds the constraint terms <= rhs.
func (m *Model) AddLe(name string, terms []Term, rhs float64) {
	m.addConstraint(name, terms, senseLE, rhs)
}

// AddEq adds the constraint terms = rhs.
func (m *Model) AddEq(name string, terms []Term, rhs float64) {
	m.addConstraint(name, terms, senseEQ, rhs)
}

// AddGe adds the constraint terms >= rhs.
func (m *Model) AddGe(name string, terms []Term, rhs float64) {
	m.addConstraint(name, terms, senseGE, rhs)
}

func (m *Model) addConstraint(name string, terms []Term, s sense, rhs float64) {
	for _, t := range terms {
		if int(t.Var) < 0 || int(t.Var) >= len(m.vars) {
			panic(fmt.Sprintf("milp: constraint %s references unknown variable %d", name, t.Var))
		}
	}
	copied := make([]Term, len(terms))
	copy(copied, terms)
	m.constraints = append(m.constraints, constraint{name: name, terms: copied, sense: s, rhs: rhs})
}

// Status reports the current lifecycle state.
func (m *Model) Status() Status {
	return m.status
}

// Value returns the solved value of v, or 0 when the model is not solved.
func (m *Model) Value(v Var) float64 {
	if m.status != StatusSolved || int(v) >= len(m.values) {
		return 0
	}
	return m.values[v]
}

// ObjectiveValue returns the objective at the optimum, or -Inf when the
// model is not solved.
func (m *Model) ObjectiveValue() float64 {
	if m.status != StatusSolved {
		return math.Inf(-1)
	}
	return m.objValue
}

// NumVars reports how many variables have been declared.
func (m *Model) NumVars() int {
	return len(m.vars)
}

// NumConstraints reports how many constraints have been added.
func (m *Model) NumConstraints() int {
	return len(m.constraints)
}
