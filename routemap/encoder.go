// Package routemap implements the Route-Map Encoder (C4): translating
// an ordered, possibly-symbolic RouteMap into a function from an input
// AnnouncementsContext to an output AnnouncementsContext of the same
// length, preserving spec.md §4.2's first-match, implicit-deny-tail
// semantics.
package routemap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/smtctx"
	"github.com/grapefruit0/synet-plus/topology"
)

// Encoder executes one RouteMap against an AnnouncementsContext. It
// caches a PrefixIndex per distinct prefix-list so evaluating the same
// list across many announcements does not rebuild the BART trie each
// time.
type Encoder struct {
	ctx            *smtctx.SolverContext
	log            *logrus.Entry
	prefixIdxCache map[string]*topology.PrefixIndex

	// lineHoles caches the HOLE Vars a line's access/actions allocate,
	// keyed by "rmapName_lineno_<attr>". A route-map line's disposition
	// is configured once, not re-decided per announcement, so every
	// announcement evaluated against the same line must see the same
	// hole variable rather than a fresh one each time.
	lineHoles map[string]*smtctx.Var
}

// NewEncoder returns an Encoder bound to ctx.
func NewEncoder(ctx *smtctx.SolverContext) *Encoder {
	return &Encoder{
		ctx:            ctx,
		log:            ctx.Log().WithField("component", "routemap"),
		prefixIdxCache: map[string]*topology.PrefixIndex{},
		lineHoles:      map[string]*smtctx.Var{},
	}
}

// lineHole returns the cached hole Var for (line-scoped) key, allocating
// it via new on first use.
func (e *Encoder) lineHole(key string, new func() *smtctx.Var) *smtctx.Var {
	if v, ok := e.lineHoles[key]; ok {
		return v
	}
	v := new()
	e.lineHoles[key] = v
	return v
}

// Execute runs rmap against input, returning an output context of the
// same length, one output Announcement per input Announcement.
func (e *Encoder) Execute(rmap *topology.RouteMap, input *smtctx.AnnouncementsContext) *smtctx.AnnouncementsContext {
	lines := rmap.SortedLines()
	out := make([]*smtctx.Announcement, len(input.Anns))
	for i, ann := range input.Anns {
		out[i] = e.executeOne(rmap.Name, i, lines, ann)
	}
	return smtctx.NewAnnouncementsContext(out)
}

// lineResult is one line's fully-resolved (access-applied) candidate
// output, paired with the boolean expression under which it is the
// first matching line.
type lineResult struct {
	fires  smtctx.Expr
	result *smtctx.Announcement
}

func (e *Encoder) executeOne(rmapName string, idx int, lines []topology.RouteMapLine, input *smtctx.Announcement) *smtctx.Announcement {
	var results []lineResult
	var priorMatched []smtctx.Expr

	for _, line := range lines {
		lineKey := fmt.Sprintf("%s_line%d", rmapName, line.LineNo)
		matchExpr := e.evalMatches(line.Matches, input, lineKey)
		notPrior := smtctx.Expr(smtctx.BoolConst(true))
		if len(priorMatched) > 0 {
			ors := make([]smtctx.Expr, len(priorMatched))
			copy(ors, priorMatched)
			notPrior = smtctx.Not{Term: smtctx.OrOf(ors...)}
		}
		fires := smtctx.AndOf(matchExpr, notPrior)
		priorMatched = append(priorMatched, matchExpr)

		namePrefix := fmt.Sprintf("%s_ann%d", lineKey, idx)
		result := e.applyAccess(line, input, lineKey, namePrefix)
		results = append(results, lineResult{fires: fires, result: result})
	}

	implicitDeny := input.ShallowCopy()
	implicitDeny.Prev = input
	implicitDeny.Permitted = e.ctx.FreshVar(smtctx.BoolSort{}, false, fmt.Sprintf("%s_ann%d_implicit_deny", rmapName, idx))

	return e.selectOutput(rmapName, idx, results, implicitDeny)
}

// evalMatches conjoins every match predicate in matches against ann,
// reducing each to a known truth value whenever ann's relevant
// attributes are already concrete (spec.md §4.2).
func (e *Encoder) evalMatches(matches []topology.Match, ann *smtctx.Announcement, lineKey string) smtctx.Expr {
	if len(matches) == 0 {
		return smtctx.BoolConst(true)
	}
	terms := make([]smtctx.Expr, 0, len(matches))
	for i, m := range matches {
		terms = append(terms, e.evalMatch(m, ann, fmt.Sprintf("%s_match%d", lineKey, i)))
	}
	return smtctx.AndOf(terms...)
}

func (e *Encoder) evalMatch(m topology.Match, ann *smtctx.Announcement, holeKey string) smtctx.Expr {
	switch match := m.(type) {
	case topology.MatchAll:
		return smtctx.BoolConst(true)
	case topology.MatchNextHop:
		if match.NextHop.IsHole() {
			return e.lineHole(holeKey+"_next_hop", func() *smtctx.Var {
				return e.ctx.FreshVar(smtctx.BoolSort{}, nil, holeKey+"_next_hop")
			}).Ref()
		}
		if match.NextHop.IsAbsent() {
			return smtctx.BoolConst(true)
		}
		sort := e.ctx.EnsureEnumValue(smtctx.NextHopSort, match.NextHop.Val)
		return smtctx.Eq{Lhs: ann.NextHop.Ref(), Rhs: smtctx.EnumConst{Sort: sort, Value: match.NextHop.Val}}
	case topology.MatchCommunitiesList:
		terms := make([]smtctx.Expr, 0, len(match.List))
		for _, c := range match.List {
			if v, ok := ann.Communities[c]; ok {
				terms = append(terms, smtctx.Eq{Lhs: v.Ref(), Rhs: smtctx.BoolConst(true)})
			} else {
				terms = append(terms, smtctx.BoolConst(false))
			}
		}
		if len(terms) == 0 {
			return smtctx.BoolConst(true)
		}
		return smtctx.AndOf(terms...)
	case topology.MatchIPPrefixList:
		index := e.prefixIndex(match.ListName, match.List)
		if ann.Prefix.IsConcrete() {
			return smtctx.BoolConst(index.Contains(ann.Prefix.EnumValue()))
		}
		// Prefix is expected to always be concrete on announcements
		// this encoder sees (bgpencoder fixes it at creation time);
		// fall back to a fresh hole if that invariant is ever broken.
		return e.ctx.FreshVar(smtctx.BoolSort{}, nil, "match_prefix_unknown").Ref()
	default:
		return smtctx.BoolConst(true)
	}
}

func (e *Encoder) prefixIndex(name string, prefixes []string) *topology.PrefixIndex {
	if idx, ok := e.prefixIdxCache[name]; ok {
		return idx
	}
	idx := topology.NewPrefixIndex(prefixes)
	e.prefixIdxCache[name] = idx
	return idx
}

// applyAccess resolves one line's access (permit/deny/HOLE) into a
// single output Announcement. For a HOLE access, every attribute that
// could legally differ between the permit and deny branches is
// resolved via an If over a freshly allocated "permit chosen" boolean
// (the line's HOLE), so the solver is free to pick either branch.
func (e *Encoder) applyAccess(line topology.RouteMapLine, input *smtctx.Announcement, lineKey, namePrefix string) *smtctx.Announcement {
	permitView := e.applyActions(line.Actions, input, lineKey, namePrefix)
	denyView := input.ShallowCopy()
	denyView.Prev = input
	denyView.Permitted = e.ctx.FreshVar(smtctx.BoolSort{}, false, namePrefix+"_deny")

	switch line.Access.Kind {
	case topology.ConcreteKind:
		if line.Access.Val == topology.AccessPermit {
			return permitView
		}
		return denyView
	case topology.HoleKind:
		choice := e.lineHole(lineKey+"_access_hole", func() *smtctx.Var {
			return e.ctx.FreshVar(smtctx.BoolSort{}, nil, lineKey+"_access_hole")
		})
		return mux(e.ctx, choice.Ref(), permitView, denyView, namePrefix+"_muxed")
	default:
		// Absent access on a concrete sketch is a configuration error
		// upstream; treat as deny to fail closed rather than leak a
		// route nobody configured a disposition for.
		return denyView
	}
}

// applyActions builds the permit-branch Announcement: unmodified
// attributes alias the input's Var directly (a safe equality by
// construction, no new constraint needed), and every attribute an
// Action targets gets a fresh Var fixed or left as a hole per the
// action's Sketch value.
func (e *Encoder) applyActions(actions []topology.Action, input *smtctx.Announcement, lineKey, namePrefix string) *smtctx.Announcement {
	out := input.ShallowCopy()
	out.Prev = input
	out.Permitted = e.ctx.FreshVar(smtctx.BoolSort{}, true, namePrefix+"_permit")

	for _, a := range actions {
		switch action := a.(type) {
		case topology.ActionSetLocalPref:
			out.LocalPref = e.sketchIntVar(action.Value, lineKey+"_set_local_pref", namePrefix+"_set_local_pref")
		case topology.ActionSetMED:
			out.Med = e.sketchIntVar(action.Value, lineKey+"_set_med", namePrefix+"_set_med")
		case topology.ActionSetNextHop:
			out.NextHop = e.sketchEnumVar(smtctx.NextHopSort, action.Value, lineKey+"_set_next_hop", namePrefix+"_set_next_hop")
		case topology.ActionSetCommunity:
			out.Communities = cloneComms(out.Communities)
			out.Communities[action.Community] = e.sketchBoolVar(action.Value, lineKey+"_set_comm_"+string(action.Community), namePrefix+"_set_comm_"+string(action.Community))
		}
	}
	return out
}

func cloneComms(in map[domain.Community]*smtctx.Var) map[domain.Community]*smtctx.Var {
	out := make(map[domain.Community]*smtctx.Var, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// sketchIntVar resolves an int-valued action Sketch. A HOLE resolves to
// one Var shared by every announcement evaluated against this line
// (cached under holeKey); a concrete value gets its own per-announcement
// Var (interchangeable for solving, since they all carry the same
// value).
func (e *Encoder) sketchIntVar(s topology.Sketch[int], holeKey, name string) *smtctx.Var {
	if s.IsConcrete() {
		return e.ctx.FreshVar(smtctx.IntSort{}, s.Val, name)
	}
	return e.lineHole(holeKey, func() *smtctx.Var { return e.ctx.FreshVar(smtctx.IntSort{}, nil, holeKey) })
}

func (e *Encoder) sketchBoolVar(s topology.Sketch[bool], holeKey, name string) *smtctx.Var {
	if s.IsConcrete() {
		return e.ctx.FreshVar(smtctx.BoolSort{}, s.Val, name)
	}
	return e.lineHole(holeKey, func() *smtctx.Var { return e.ctx.FreshVar(smtctx.BoolSort{}, nil, holeKey) })
}

func (e *Encoder) sketchEnumVar(sortName string, s topology.Sketch[string], holeKey, name string) *smtctx.Var {
	sort := e.ctx.DeclareEnum(sortName, nil)
	if s.IsConcrete() {
		return e.ctx.FreshVar(sort, s.Val, name)
	}
	return e.lineHole(holeKey, func() *smtctx.Var { return e.ctx.FreshVar(sort, nil, holeKey) })
}

// mux builds a new Announcement equal to a when cond holds and b
// otherwise, attribute by attribute, via registered If constraints.
func mux(ctx *smtctx.SolverContext, cond smtctx.Expr, a, b *smtctx.Announcement, namePrefix string) *smtctx.Announcement {
	out := &smtctx.Announcement{Communities: map[domain.Community]*smtctx.Var{}, Prev: a.Prev}
	out.Prefix = muxVar(ctx, cond, a.Prefix, b.Prefix, namePrefix+"_prefix")
	out.Peer = muxVar(ctx, cond, a.Peer, b.Peer, namePrefix+"_peer")
	out.Origin = muxVar(ctx, cond, a.Origin, b.Origin, namePrefix+"_origin")
	out.ASPath = muxVar(ctx, cond, a.ASPath, b.ASPath, namePrefix+"_as_path")
	out.ASPathLen = muxVar(ctx, cond, a.ASPathLen, b.ASPathLen, namePrefix+"_as_path_len")
	out.NextHop = muxVar(ctx, cond, a.NextHop, b.NextHop, namePrefix+"_next_hop")
	out.LocalPref = muxVar(ctx, cond, a.LocalPref, b.LocalPref, namePrefix+"_local_pref")
	out.Med = muxVar(ctx, cond, a.Med, b.Med, namePrefix+"_med")
	out.Permitted = muxVar(ctx, cond, a.Permitted, b.Permitted, namePrefix+"_permitted")
	for c := range a.Communities {
		out.Communities[c] = muxVar(ctx, cond, a.Communities[c], b.Communities[c], namePrefix+"_comm_"+string(c))
	}
	return out
}

func muxVar(ctx *smtctx.SolverContext, cond smtctx.Expr, a, b *smtctx.Var, name string) *smtctx.Var {
	v := ctx.FreshVar(a.Sort, nil, name)
	ctx.RegisterConstraint(smtctx.Eq{Lhs: v.Ref(), Rhs: smtctx.If{Cond: cond, Then: a.Ref(), Else: b.Ref()}}, name+"_def_")
	return v
}

// selectOutput folds every line's result into a single output
// Announcement via nested If on each line's `fires` condition, falling
// through to implicitDeny when no line fires.
func (e *Encoder) selectOutput(rmapName string, idx int, results []lineResult, implicitDeny *smtctx.Announcement) *smtctx.Announcement {
	acc := implicitDeny
	for i := len(results) - 1; i >= 0; i-- {
		namePrefix := fmt.Sprintf("%s_ann%d_select%d", rmapName, idx, i)
		acc = mux(e.ctx, results[i].fires, results[i].result, acc, namePrefix)
	}
	return acc
}
