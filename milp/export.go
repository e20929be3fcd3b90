package milp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteLP writes the model in CPLEX LP text format, which most solver
// tooling can read back for inspection.
func (m *Model) WriteLP(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("Maximize\n obj:")
	m.writeExpr(&sb, m.objectiveTerms())
	sb.WriteString("\nSubject To\n")
	for i, con := range m.constraints {
		name := sanitizeName(con.name)
		if name == "" {
			name = fmt.Sprintf("c%d", i)
		}
		sb.WriteString(" " + name + ":")
		m.writeExpr(&sb, con.terms)
		fmt.Fprintf(&sb, " %s %g\n", con.sense, con.rhs)
	}

	sb.WriteString("Bounds\n")
	for i, v := range m.vars {
		if v.kind == kindContinuous {
			fmt.Fprintf(&sb, " %g <= %s <= %g\n", v.lo, m.varName(Var(i)), v.hi)
		}
	}

	binaries := []string{}
	for i, v := range m.vars {
		if v.kind == kindBinary {
			binaries = append(binaries, m.varName(Var(i)))
		}
	}
	if len(binaries) > 0 {
		sb.WriteString("Binary\n " + strings.Join(binaries, " ") + "\n")
	}
	sb.WriteString("End\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// DumpLP writes the model to a file, creating parent directories as needed.
func (m *Model) DumpLP(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return m.WriteLP(file)
}

func (m *Model) objectiveTerms() []Term {
	terms := make([]Term, 0, len(m.objective))
	for i, coef := range m.objective {
		if coef != 0 {
			terms = append(terms, Term{Var: Var(i), Coef: coef})
		}
	}
	return terms
}

func (m *Model) varName(v Var) string {
	name := sanitizeName(m.vars[v].name)
	if name == "" {
		name = fmt.Sprintf("v%d", v)
	}
	return name
}

func (m *Model) writeExpr(sb *strings.Builder, terms []Term) {
	if len(terms) == 0 {
		sb.WriteString(" 0")
		return
	}
	for i, t := range terms {
		coef := t.Coef
		sign := "+"
		if coef < 0 {
			sign = "-"
			coef = -coef
		}
		if i == 0 && sign == "+" {
			fmt.Fprintf(sb, " %g %s", coef, m.varName(t.Var))
			continue
		}
		fmt.Fprintf(sb, " %s %g %s", sign, coef, m.varName(t.Var))
	}
}

func sanitizeName(name string) string {
	var out strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			out.WriteRune(r)
		default:
			out.WriteRune('_')
		}
	}
	return out.String()
}
