package smtctx

import "fmt"

// Expr is a boolean- or value-producing node in the constraint AST
// built by encoder packages and handed to a Solver. The concrete node
// types below are the minimal set spec.md §6 requires the backend to
// support: equality, ordered comparison, boolean and/or/not, if-then-
// else, and Distinct.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// VarRef refers to a previously created Var by name.
type VarRef struct{ V *Var }

func (VarRef) isExpr()          {}
func (r VarRef) String() string { return r.V.Name }

// BoolConst is a literal true/false.
type BoolConst bool

func (BoolConst) isExpr() {}
func (b BoolConst) String() string {
	if b {
		return "true"
	}
	return "false"
}

// IntConst is a literal integer, used for concrete OSPF costs and
// concrete router IDs.
type IntConst int

func (IntConst) isExpr()          {}
func (i IntConst) String() string { return fmt.Sprintf("%d", int(i)) }

// EnumConst is a literal enum member, e.g. a concrete Origin or
// NextHop value.
type EnumConst struct {
	Sort  *EnumSort
	Value string
}

func (EnumConst) isExpr()          {}
func (e EnumConst) String() string { return e.Sort.Name + "::" + e.Value }

// Eq is structural equality between two expressions (attribute
// equating across a route-map line or an import/export wire).
type Eq struct{ Lhs, Rhs Expr }

func (Eq) isExpr()          {}
func (e Eq) String() string { return fmt.Sprintf("(%s == %s)", e.Lhs, e.Rhs) }

// Lt is `Lhs < Rhs` over IntSort expressions.
type Lt struct{ Lhs, Rhs Expr }

func (Lt) isExpr()          {}
func (e Lt) String() string { return fmt.Sprintf("(%s < %s)", e.Lhs, e.Rhs) }

// And is n-ary conjunction.
type And struct{ Terms []Expr }

func (And) isExpr() {}
func (a And) String() string {
	return joinTerms("&&", a.Terms)
}

// Or is n-ary disjunction.
type Or struct{ Terms []Expr }

func (Or) isExpr() {}
func (o Or) String() string {
	return joinTerms("||", o.Terms)
}

// Not negates a single boolean expression.
type Not struct{ Term Expr }

func (Not) isExpr()          {}
func (n Not) String() string { return fmt.Sprintf("!(%s)", n.Term) }

// If is `Cond ? Then : Else` (the backend's If primitive).
type If struct{ Cond, Then, Else Expr }

func (If) isExpr() {
}
func (i If) String() string {
	return fmt.Sprintf("if(%s,%s,%s)", i.Cond, i.Then, i.Else)
}

// Add is n-ary integer sum, used for a path's total IGP cost.
type Add struct{ Terms []Expr }

func (Add) isExpr()          {}
func (a Add) String() string { return joinTerms("+", a.Terms) }

// Distinct asserts pairwise inequality across all of Terms, used for
// router-ID uniqueness.
type Distinct struct{ Terms []Expr }

func (Distinct) isExpr()          {}
func (d Distinct) String() string { return "distinct" + joinTerms(",", d.Terms) }

func joinTerms(sep string, terms []Expr) string {
	s := "("
	for i, t := range terms {
		if i > 0 {
			s += " " + sep + " "
		}
		s += t.String()
	}
	return s + ")"
}

// helpers for building Expr trees tersely from call sites.

// AndOf builds an And over a non-empty slice, collapsing a single term.
func AndOf(terms ...Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	return And{Terms: terms}
}

// OrOf builds an Or over a non-empty slice, collapsing a single term.
func OrOf(terms ...Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	return Or{Terms: terms}
}
