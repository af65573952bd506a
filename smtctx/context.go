package smtctx

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grapefruit0/synet-plus/counter"
	"github.com/grapefruit0/synet-plus/domain"
)

// NamedConstraint is one assertion registered against the context,
// tagged with a human-readable name so an UNSAT core stays readable
// (spec.md §7: "Constraint names encode context").
type NamedConstraint struct {
	Name string
	Expr Expr
}

// SolverContext is the arena for every symbolic variable, enum sort,
// community registration, and named constraint created during one
// synthesis run (C1). It is an explicitly passed collaborator, never
// ambient global state (spec.md §9): exactly one encoder writes to it
// at a time, and all fresh-variable naming flows through it so two
// runs over the same input produce identical constraint text.
type SolverContext struct {
	RunID        string
	log          *logrus.Entry
	enums        map[string]*EnumSort
	communities  []domain.Community
	constraints  []NamedConstraint
	nameCounters map[string]*counter.Counter

	originNextHop *Var
}

// counterFor returns the monotonic sequence for namePrefix, allocating
// one the first time it's needed.
func (c *SolverContext) counterFor(namePrefix string) *counter.Counter {
	ctr, ok := c.nameCounters[namePrefix]
	if !ok {
		ctr = counter.New()
		c.nameCounters[namePrefix] = ctr
	}
	return ctr
}

// NewContext creates an empty arena, declares the fixed Origin enum,
// and stamps the run with a fresh UUID carried as the run_id field of
// every line logged through this context. UnsatisfiableConstraints
// errors carry only constraint names, not the UUID.
func NewContext(communities []domain.Community) *SolverContext {
	runID := uuid.NewString()
	ctx := &SolverContext{
		RunID:        runID,
		log:          logrus.WithField("run_id", runID),
		enums:        map[string]*EnumSort{},
		communities:  communities,
		nameCounters: map[string]*counter.Counter{},
	}
	ctx.DeclareEnum(OriginSort, OriginSymbols)
	return ctx
}

// Communities returns the registered community identities every
// Announcement carries a boolean variable for.
func (c *SolverContext) Communities() []domain.Community { return c.communities }

// DeclareEnum registers a new uninterpreted enum sort with the given
// member names. Declaring a name that is already registered returns the
// existing sort unchanged; values passed on that call are ignored.
func (c *SolverContext) DeclareEnum(name string, values []string) *EnumSort {
	if existing, ok := c.enums[name]; ok {
		return existing
	}
	index := make(map[string]int, len(values))
	for i, v := range values {
		index[v] = i
	}
	sort := &EnumSort{Name: name, Values: values, index: index}
	c.enums[name] = sort
	return sort
}

// Enum returns a previously declared enum sort, or nil.
func (c *SolverContext) Enum(name string) *EnumSort { return c.enums[name] }

// EnsureEnumValue makes sure value is a declared member of the named
// enum sort, appending it if this is the first time it is seen. Used
// for the ASPath and Peer/Prefix/NextHop sorts, whose membership is
// only known once propagation has enumerated every path (spec.md §4.1
// step 6: `ctx.create_enum_type(ASPATH_SORT, ...)`).
func (c *SolverContext) EnsureEnumValue(name, value string) *EnumSort {
	sort, ok := c.enums[name]
	if !ok {
		sort = c.DeclareEnum(name, []string{value})
		return sort
	}
	if !sort.Has(value) {
		sort.Values = append(sort.Values, value)
		sort.index[value] = len(sort.Values) - 1
	}
	return sort
}

// FreshVar allocates a new Var in this context. value, when non-nil,
// fixes the variable as concrete; namePrefix becomes part of the
// generated, deterministic variable name.
func (c *SolverContext) FreshVar(sort Sort, value interface{}, namePrefix string) *Var {
	ctr := c.counterFor(namePrefix)
	ctr.Increment()
	name := fmt.Sprintf("%s_%d", namePrefix, ctr.Value())
	if enumSort, ok := sort.(*EnumSort); ok {
		if member, ok := value.(string); ok && member != "" {
			c.EnsureEnumValue(enumSort.Name, member)
		}
	}
	return &Var{Name: name, Sort: sort, Value: value}
}

// OriginNextHop returns the shared sentinel Var meaning "learned at
// origin, not yet rewritten" (glossary: ORIGIN_SENTINEL), creating it
// on first use.
func (c *SolverContext) OriginNextHop() *Var {
	if c.originNextHop == nil {
		nh := c.DeclareEnum(NextHopSort, nil)
		c.originNextHop = c.FreshVar(nh, OriginSentinel, "origin_next_hop")
	}
	return c.originNextHop
}

// RegisterConstraint adds a named assertion to the arena. The returned
// name is stable for a given (namePrefix, call-order) pair, which is
// what makes two runs over identical input produce identical
// constraint text (spec.md §5).
func (c *SolverContext) RegisterConstraint(e Expr, namePrefix string) string {
	ctr := c.counterFor("constraint:" + namePrefix)
	ctr.Increment()
	name := fmt.Sprintf("%s%d", namePrefix, ctr.Value())
	c.constraints = append(c.constraints, NamedConstraint{Name: name, Expr: e})
	c.log.WithField("constraint", name).Debug("registered constraint")
	return name
}

// Constraints returns every constraint registered so far, in
// registration order (spec.md §5: "selection constraints are emitted
// in a fixed traversal order... so the same inputs yield the same
// constraint text").
func (c *SolverContext) Constraints() []NamedConstraint {
	return append([]NamedConstraint(nil), c.constraints...)
}

// Log returns the run-scoped structured logger every encoder package
// should derive its own component logger from.
func (c *SolverContext) Log() *logrus.Entry { return c.log }
