package milp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	// simplexTol is handed to gonum's simplex.
	simplexTol = 1e-10
	// intTol decides whether a relaxation value counts as integral.
	intTol = 1e-6
	// fixedTol is the slack allowed when checking constraints of a node
	// with every variable fixed.
	fixedTol = 1e-7
	// boundEps below this width a variable counts as fixed.
	boundEps = 1e-12
	// pruneEps guards the bound test against float noise.
	pruneEps = 1e-9
)

type incumbent struct {
	found bool
	obj   float64
	x     []float64
}

// Solve optimizes the model in place. A nil return with StatusSolved means
// values are readable; StatusInfeasible means no assignment satisfies the
// constraints. A non-nil error means the underlying engine failed and the
// status is StatusSolverError.
func (m *Model) Solve() error {
	if m.status != StatusBuilt {
		return fmt.Errorf("milp: model is %s, solve needs a freshly built model", m.status)
	}
	m.status = StatusSolving

	lo := make([]float64, len(m.vars))
	hi := make([]float64, len(m.vars))
	for i, v := range m.vars {
		lo[i], hi[i] = v.lo, v.hi
	}

	best := incumbent{obj: math.Inf(-1)}
	if err := m.branch(lo, hi, &best); err != nil {
		m.status = StatusSolverError
		return err
	}
	if !best.found {
		m.status = StatusInfeasible
		return nil
	}

	m.values = best.x
	m.objValue = best.obj
	m.status = StatusSolved
	return nil
}

// branch runs depth-first branch and bound over the binary variables,
// tightening lo/hi per node.
func (m *Model) branch(lo, hi []float64, best *incumbent) error {
	x, objValue, err := m.solveRelaxation(lo, hi)
	if errors.Is(err, lp.ErrInfeasible) {
		return nil
	}
	if err != nil {
		return err
	}
	if best.found && objValue <= best.obj+pruneEps {
		// The relaxation bounds everything below this node.
		return nil
	}

	fractional := -1
	for i, v := range m.vars {
		if v.kind != kindBinary {
			continue
		}
		if math.Abs(x[i]-math.Round(x[i])) > intTol {
			fractional = i
			break
		}
	}
	if fractional < 0 {
		best.found = true
		best.obj = objValue
		best.x = append([]float64(nil), x...)
		return nil
	}

	// Explore the rounding the relaxation leans toward first.
	order := []float64{1, 0}
	if x[fractional] < 0.5 {
		order = []float64{0, 1}
	}
	for _, fixed := range order {
		childLo := append([]float64(nil), lo...)
		childHi := append([]float64(nil), hi...)
		childLo[fractional] = fixed
		childHi[fractional] = fixed
		if err := m.branch(childLo, childHi, best); err != nil {
			return err
		}
	}
	return nil
}

// solveRelaxation solves the LP relaxation under the given bounds and maps
// the solution back onto the model's variables. The returned objective is
// in maximize sense.
func (m *Model) solveRelaxation(lo, hi []float64) ([]float64, float64, error) {
	// Every variable is shifted to u = x - lo, u >= 0. Variables whose
	// bounds collapsed are constants and get no column.
	column := make([]int, len(m.vars))
	free := 0
	for i := range m.vars {
		if hi[i]-lo[i] > boundEps {
			column[i] = free
			free++
		} else {
			column[i] = -1
		}
	}

	objOffset := 0.0
	for i := range m.vars {
		objOffset += m.objective[i] * lo[i]
	}

	if free == 0 {
		if err := m.checkFixed(lo); err != nil {
			return nil, 0, err
		}
		return append([]float64(nil), lo...), objOffset, nil
	}

	type row struct {
		coefs []float64 // len == free
		slack int       // +1 for <=, -1 for >=, 0 for =
		b     float64
	}

	rows := make([]row, 0, len(m.constraints)+free)
	slacks := 0
	for _, con := range m.constraints {
		r := row{coefs: make([]float64, free), b: con.rhs}
		hasFree := false
		for _, t := range con.terms {
			r.b -= t.Coef * lo[t.Var]
			if c := column[t.Var]; c >= 0 {
				r.coefs[c] += t.Coef
				if t.Coef != 0 {
					hasFree = true
				}
			}
		}
		switch con.sense {
		case senseLE:
			r.slack = 1
		case senseGE:
			r.slack = -1
		default:
			if !hasFree {
				// Equality over constants only: either trivially
				// satisfied or the node is dead.
				if math.Abs(r.b) > fixedTol {
					return nil, 0, lp.ErrInfeasible
				}
				continue
			}
		}
		if r.slack != 0 {
			slacks++
		}
		rows = append(rows, r)
	}

	// Upper bound rows: u_i + s = hi - lo.
	for i := range m.vars {
		if c := column[i]; c >= 0 {
			r := row{coefs: make([]float64, free), slack: 1, b: hi[i] - lo[i]}
			r.coefs[c] = 1
			rows = append(rows, r)
			slacks++
		}
	}

	nRows := len(rows)
	nCols := free + slacks
	data := make([]float64, nRows*nCols)
	b := make([]float64, nRows)
	slackCol := free
	for i, r := range rows {
		copy(data[i*nCols:i*nCols+free], r.coefs)
		if r.slack != 0 {
			data[i*nCols+slackCol] = float64(r.slack)
			slackCol++
		}
		b[i] = r.b
	}

	// gonum minimizes; negate for a maximization objective.
	c := make([]float64, nCols)
	for i := range m.vars {
		if col := column[i]; col >= 0 {
			c[col] = -m.objective[i]
		}
	}

	a := mat.NewDense(nRows, nCols, data)
	optF, optX, err := lp.Simplex(c, a, b, simplexTol, nil)
	if err != nil {
		return nil, 0, err
	}

	x := make([]float64, len(m.vars))
	for i := range m.vars {
		x[i] = lo[i]
		if col := column[i]; col >= 0 {
			x[i] += optX[col]
		}
	}
	return x, objOffset - optF, nil
}

// checkFixed verifies the constraints at a fully fixed assignment.
func (m *Model) checkFixed(x []float64) error {
	for _, con := range m.constraints {
		lhs := 0.0
		for _, t := range con.terms {
			lhs += t.Coef * x[t.Var]
		}
		switch con.sense {
		case senseLE:
			if lhs > con.rhs+fixedTol {
				return lp.ErrInfeasible
			}
		case senseGE:
			if lhs < con.rhs-fixedTol {
				return lp.ErrInfeasible
			}
		default:
			if math.Abs(lhs-con.rhs) > fixedTol {
				return lp.ErrInfeasible
			}
		}
	}
	return nil
}
