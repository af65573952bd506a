package smtctx

import "fmt"

// ReferenceSolver is a small backtracking search over bounded integer,
// boolean, and enum domains. It exists so this repo's encoder packages
// have something runnable to test against without a real SMT binding;
// it is not a production solver (no incremental solving, no theory
// reasoning beyond brute-force enumeration) and must never be mistaken
// for one — see DESIGN.md and spec.md §1 ("the underlying SMT solver
// ... [is] treated as an opaque backend").
type ReferenceSolver struct {
	// IntMin/IntMax bound the search domain for free IntSort
	// variables. Defaults (0, 32) cover OSPF costs, AS-path lengths,
	// local-pref deltas, and router IDs in the worked examples.
	IntMin, IntMax int
}

// NewReferenceSolver returns a ReferenceSolver with sensible bounds
// for the BGP/OSPF domain this repo encodes.
func NewReferenceSolver() *ReferenceSolver {
	return &ReferenceSolver{IntMin: 0, IntMax: 32}
}

// CheckSat implements Solver.
func (s *ReferenceSolver) CheckSat(vars []*Var, cs []NamedConstraint) (Model, error) {
	byName := map[string]*Var{}
	for _, v := range vars {
		byName[v.Name] = v
	}
	for _, c := range cs {
		for _, v := range exprVars(c.Expr) {
			byName[v.Name] = v
		}
	}

	var free []*Var
	assign := map[string]interface{}{}
	for _, v := range byName {
		if v.IsConcrete() {
			assign[v.Name] = v.Value
		} else {
			free = append(free, v)
		}
	}

	assigned := map[string]interface{}{}
	for k, v := range assign {
		assigned[k] = v
	}

	if !backtrack(free, 0, assigned, cs, s.IntMin, s.IntMax) {
		names := make([]string, len(cs))
		for i, c := range cs {
			names[i] = c.Name
		}
		return nil, &UnsatisfiableConstraints{Names: names}
	}
	return Model(assigned), nil
}

func backtrack(free []*Var, idx int, assign map[string]interface{}, cs []NamedConstraint, intMin, intMax int) bool {
	if idx == len(free) {
		return allSatisfied(cs, assign)
	}
	v := free[idx]
	for _, candidate := range domainFor(v, intMin, intMax) {
		assign[v.Name] = candidate
		if partiallyConsistent(cs, assign) && backtrack(free, idx+1, assign, cs, intMin, intMax) {
			return true
		}
	}
	delete(assign, v.Name)
	return false
}

func domainFor(v *Var, intMin, intMax int) []interface{} {
	switch sort := v.Sort.(type) {
	case BoolSort:
		return []interface{}{false, true}
	case *EnumSort:
		out := make([]interface{}, len(sort.Values))
		for i, m := range sort.Values {
			out[i] = m
		}
		return out
	case IntSort:
		var out []interface{}
		for i := intMin; i <= intMax; i++ {
			out = append(out, i)
		}
		return out
	default:
		return nil
	}
}

// partiallyConsistent evaluates every constraint whose variables are
// already bound, pruning the search as soon as one is violated.
func partiallyConsistent(cs []NamedConstraint, assign map[string]interface{}) bool {
	for _, c := range cs {
		if !allBound(c.Expr, assign) {
			continue
		}
		v, ok := eval(c.Expr, assign).(bool)
		if ok && !v {
			return false
		}
	}
	return true
}

func allSatisfied(cs []NamedConstraint, assign map[string]interface{}) bool {
	for _, c := range cs {
		v, ok := eval(c.Expr, assign).(bool)
		if !ok || !v {
			return false
		}
	}
	return true
}

func allBound(e Expr, assign map[string]interface{}) bool {
	for _, v := range exprVars(e) {
		if _, ok := assign[v.Name]; !ok {
			return false
		}
	}
	return true
}

func exprVars(e Expr) []*Var {
	var out []*Var
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case VarRef:
			out = append(out, n.V)
		case Eq:
			walk(n.Lhs)
			walk(n.Rhs)
		case Lt:
			walk(n.Lhs)
			walk(n.Rhs)
		case Add:
			for _, t := range n.Terms {
				walk(t)
			}
		case And:
			for _, t := range n.Terms {
				walk(t)
			}
		case Or:
			for _, t := range n.Terms {
				walk(t)
			}
		case Not:
			walk(n.Term)
		case If:
			walk(n.Cond)
			walk(n.Then)
			walk(n.Else)
		case Distinct:
			for _, t := range n.Terms {
				walk(t)
			}
		}
	}
	walk(e)
	return out
}

func eval(e Expr, assign map[string]interface{}) interface{} {
	switch n := e.(type) {
	case VarRef:
		return assign[n.V.Name]
	case BoolConst:
		return bool(n)
	case IntConst:
		return int(n)
	case EnumConst:
		return n.Value
	case Eq:
		return eq(eval(n.Lhs, assign), eval(n.Rhs, assign))
	case Lt:
		return toInt(eval(n.Lhs, assign)) < toInt(eval(n.Rhs, assign))
	case Add:
		sum := 0
		for _, t := range n.Terms {
			sum += toInt(eval(t, assign))
		}
		return sum
	case And:
		for _, t := range n.Terms {
			if b, _ := eval(t, assign).(bool); !b {
				return false
			}
		}
		return true
	case Or:
		for _, t := range n.Terms {
			if b, _ := eval(t, assign).(bool); b {
				return true
			}
		}
		return false
	case Not:
		b, _ := eval(n.Term, assign).(bool)
		return !b
	case If:
		cond, _ := eval(n.Cond, assign).(bool)
		if cond {
			return eval(n.Then, assign)
		}
		return eval(n.Else, assign)
	case Distinct:
		seen := map[interface{}]bool{}
		for _, t := range n.Terms {
			v := eval(t, assign)
			if seen[v] {
				return false
			}
			seen[v] = true
		}
		return true
	default:
		panic(fmt.Sprintf("smtctx: unhandled expr %T", e))
	}
}

func eq(a, b interface{}) bool {
	return toComparable(a) == toComparable(b)
}

func toComparable(v interface{}) interface{} {
	if i, ok := v.(int); ok {
		return i
	}
	return v
}

func toInt(v interface{}) int {
	i, _ := v.(int)
	return i
}
