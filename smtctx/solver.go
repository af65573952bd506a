package smtctx

import "fmt"

// Model maps a Var's Name to its concrete value once a Solver reports
// satisfiability.
type Model map[string]interface{}

// Solver is the seam to the opaque SMT backend described in spec.md
// §1 and §6: the production implementation is an external
// collaborator (e.g. a z3 binding) out of scope for this repo. Only a
// small reference implementation (ReferenceSolver) lives here, and it
// is for tests over bounded-domain problems only — see DESIGN.md.
type Solver interface {
	// CheckSat attempts to satisfy every constraint in cs, returning a
	// Model on success. On failure it returns UnsatisfiableConstraints
	// naming every constraint that participated.
	CheckSat(vars []*Var, cs []NamedConstraint) (Model, error)
}

// UnsatisfiableConstraints is returned by a Solver when no assignment
// satisfies every registered constraint (spec.md §7).
type UnsatisfiableConstraints struct {
	Names []string
}

func (e *UnsatisfiableConstraints) Error() string {
	return fmt.Sprintf("unsatisfiable constraints: %v", e.Names)
}

// Resolve copies a solved Model's values back onto every Var it
// mentions, making Var.Resolved readable by materialization code.
func Resolve(vars []*Var, model Model) {
	for _, v := range vars {
		if v.IsConcrete() {
			v.Resolved = v.Value
			continue
		}
		if val, ok := model[v.Name]; ok {
			v.Resolved = val
		}
	}
}
