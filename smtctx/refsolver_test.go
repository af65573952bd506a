package smtctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceSolverSatisfiesSimpleEquality(t *testing.T) {
	ctx := NewContext(nil)
	v := ctx.FreshVar(IntSort{}, nil, "med")
	ctx.RegisterConstraint(Eq{Lhs: v.Ref(), Rhs: IntConst(7)}, "fix_med")

	model, err := NewReferenceSolver().CheckSat(nil, ctx.Constraints())
	require.NoError(t, err)
	assert.Equal(t, 7, model[v.Name])
}

func TestReferenceSolverReturnsUnsatisfiableConstraints(t *testing.T) {
	ctx := NewContext(nil)
	v := ctx.FreshVar(BoolSort{}, nil, "permit")
	ctx.RegisterConstraint(v.Ref(), "assert_true")
	ctx.RegisterConstraint(Not{Term: v.Ref()}, "assert_false")

	_, err := NewReferenceSolver().CheckSat(nil, ctx.Constraints())
	require.Error(t, err)
	var unsat *UnsatisfiableConstraints
	require.ErrorAs(t, err, &unsat)
	assert.ElementsMatch(t, []string{"assert_true1", "assert_false1"}, unsat.Names)
}

func TestReferenceSolverRespectsConcreteVars(t *testing.T) {
	ctx := NewContext(nil)
	fixed := ctx.FreshVar(IntSort{}, 3, "rid")
	hole := ctx.FreshVar(IntSort{}, nil, "rid")
	ctx.RegisterConstraint(Distinct{Terms: []Expr{fixed.Ref(), hole.Ref()}}, "unique_rid")

	model, err := NewReferenceSolver().CheckSat(nil, ctx.Constraints())
	require.NoError(t, err)
	assert.Equal(t, 3, model[fixed.Name])
	assert.NotEqual(t, model[fixed.Name], model[hole.Name])
}

func TestReferenceSolverSatisfiesEnumEquality(t *testing.T) {
	ctx := NewContext(nil)
	sort := ctx.DeclareEnum("NextHop", []string{"A", "B"})
	v := ctx.FreshVar(sort, nil, "next_hop")
	ctx.RegisterConstraint(Eq{Lhs: v.Ref(), Rhs: EnumConst{Sort: sort, Value: "B"}}, "fix_next_hop")

	model, err := NewReferenceSolver().CheckSat(nil, ctx.Constraints())
	require.NoError(t, err)
	assert.Equal(t, "B", model[v.Name])
}

func TestResolveFillsConcreteAndSolvedVars(t *testing.T) {
	fixed := &Var{Name: "fixed", Sort: IntSort{}, Value: 9}
	hole := &Var{Name: "hole", Sort: IntSort{}}
	Resolve([]*Var{fixed, hole}, Model{"hole": 4})

	assert.Equal(t, 9, fixed.Resolved)
	assert.Equal(t, 4, hole.Resolved)
}

func TestIfExprEvaluatesBothBranches(t *testing.T) {
	ctx := NewContext(nil)
	cond := ctx.FreshVar(BoolSort{}, true, "use_backup")
	result := ctx.FreshVar(IntSort{}, nil, "cost")
	ctx.RegisterConstraint(Eq{
		Lhs: result.Ref(),
		Rhs: If{Cond: cond.Ref(), Then: IntConst(10), Else: IntConst(20)},
	}, "pick_cost")

	model, err := NewReferenceSolver().CheckSat(nil, ctx.Constraints())
	require.NoError(t, err)
	assert.Equal(t, 10, model[result.Name])
}
