package smtctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit0/synet-plus/domain"
)

func TestFreshVarNamesAreDeterministicPerPrefix(t *testing.T) {
	ctx := NewContext(nil)

	a := ctx.FreshVar(IntSort{}, nil, "local_pref")
	b := ctx.FreshVar(IntSort{}, nil, "local_pref")
	c := ctx.FreshVar(IntSort{}, nil, "med")

	assert.Equal(t, "local_pref_1", a.Name)
	assert.Equal(t, "local_pref_2", b.Name)
	assert.Equal(t, "med_1", c.Name)
}

func TestFreshVarNamingIsStableAcrossIdenticalRuns(t *testing.T) {
	build := func() []string {
		ctx := NewContext(nil)
		var names []string
		for _, prefix := range []string{"local_pref", "local_pref", "med", "local_pref"} {
			names = append(names, ctx.FreshVar(IntSort{}, nil, prefix).Name)
		}
		return names
	}
	assert.Equal(t, build(), build())
}

func TestFreshVarWithConcreteValueIsConcrete(t *testing.T) {
	ctx := NewContext(nil)
	v := ctx.FreshVar(IntSort{}, 5, "med")
	assert.True(t, v.IsConcrete())
	assert.Equal(t, 5, v.IntValue())
}

func TestFreshVarRegistersEnumMemberOnFirstUse(t *testing.T) {
	ctx := NewContext(nil)
	sort := ctx.DeclareEnum("Peer", nil)
	ctx.FreshVar(sort, "R1", "peer")
	assert.True(t, sort.Has("R1"))
}

func TestDeclareEnumIsIdempotent(t *testing.T) {
	ctx := NewContext(nil)
	first := ctx.DeclareEnum("Peer", []string{"R1"})
	second := ctx.DeclareEnum("Peer", []string{"R2"})
	assert.Same(t, first, second)
	assert.True(t, first.Has("R1"))
	assert.False(t, first.Has("R2"))
}

func TestEnsureEnumValueAppendsOnlyOnce(t *testing.T) {
	ctx := NewContext(nil)
	ctx.DeclareEnum("ASPath", []string{"p1"})
	ctx.EnsureEnumValue("ASPath", "p2")
	ctx.EnsureEnumValue("ASPath", "p2")
	sort := ctx.Enum("ASPath")
	assert.Equal(t, []string{"p1", "p2"}, sort.Values)
}

func TestOriginNextHopIsSharedAcrossCalls(t *testing.T) {
	ctx := NewContext(nil)
	a := ctx.OriginNextHop()
	b := ctx.OriginNextHop()
	assert.Same(t, a, b)
	assert.Equal(t, OriginSentinel, a.Value)
}

func TestRegisterConstraintNamesAreStableAndOrdered(t *testing.T) {
	ctx := NewContext(nil)
	n1 := ctx.RegisterConstraint(BoolConst(true), "permit")
	n2 := ctx.RegisterConstraint(BoolConst(false), "permit")
	n3 := ctx.RegisterConstraint(BoolConst(true), "deny")

	assert.Equal(t, "permit1", n1)
	assert.Equal(t, "permit2", n2)
	assert.Equal(t, "deny1", n3)

	cs := ctx.Constraints()
	require.Len(t, cs, 3)
	assert.Equal(t, []string{"permit1", "permit2", "deny1"}, []string{cs[0].Name, cs[1].Name, cs[2].Name})
}

func TestConstraintsReturnsACopy(t *testing.T) {
	ctx := NewContext(nil)
	ctx.RegisterConstraint(BoolConst(true), "permit")
	cs := ctx.Constraints()
	cs[0].Name = "mutated"
	assert.Equal(t, "permit1", ctx.Constraints()[0].Name)
}

func TestNewContextDeclaresOriginEnum(t *testing.T) {
	ctx := NewContext(nil)
	sort := ctx.Enum(OriginSort)
	require.NotNil(t, sort)
	assert.Equal(t, OriginSymbols, sort.Values)
}

func TestCommunitiesReturnsWhatWasPassedIn(t *testing.T) {
	cs := []domain.Community{"65000:100"}
	ctx := NewContext(cs)
	assert.Equal(t, cs, ctx.Communities())
}
