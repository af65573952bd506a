package smtctx

// Sort identifies the domain a symbolic Var ranges over. The real
// backend is an SMT solver supporting integer, boolean, and
// uninterpreted enum sorts (spec.md §1); SolverContext models exactly
// those three.
type Sort interface {
	sortName() string
}

// IntSort is the sort of unbounded (in the backend; bounded in the
// reference solver) integers: as_path_len, local_pref, med, OSPF
// costs, router IDs.
type IntSort struct{}

func (IntSort) sortName() string { return "Int" }

// BoolSort is the sort of booleans: permitted, per-community flags,
// match results, HOLE realizations.
type BoolSort struct{}

func (BoolSort) sortName() string { return "Bool" }

// EnumSort is a named, closed, uninterpreted enumeration: Prefix,
// Peer, NextHop, ASPath, Origin. Two EnumSort values with the same
// Name but different Values are programmer error — enum sorts are
// registered once per SolverContext via DeclareEnum.
type EnumSort struct {
	Name   string
	Values []string
	index  map[string]int
}

func (e *EnumSort) sortName() string { return e.Name }

// Has reports whether value is a declared member of this enum.
func (e *EnumSort) Has(value string) bool {
	_, ok := e.index[value]
	return ok
}

// well-known enum sort names, shared across packages that build
// fixed-value Announcements.
const (
	PrefixSort  = "Prefix"
	PeerSort    = "Peer"
	NextHopSort = "NextHop"
	ASPathSort  = "ASPath"
	OriginSort  = "Origin"
)

// OriginSymbols are the three fixed values of the Origin enum, always
// declared by SolverContext.NewContext.
var OriginSymbols = []string{"IGP", "EBGP", "INCOMPLETE"}

// OriginSentinel is the distinguished NextHop enum value meaning
// "learned at origin, not yet rewritten" (glossary: ORIGIN_SENTINEL).
const OriginSentinel = "ORIGIN_SENTINEL"
