package bgpencoder

import (
	"fmt"
	"strings"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/smtctx"
)

// OSPFRequirement is one generated OSPF weight-solver input, emitted by
// the decision ladder whenever it compares two candidates' IGP cost: a
// pair of router sub-paths whose relative OSPF cost the BGP selection
// assumed, plus the fresh boolean EqualVar the ladder constrains
// consistently with that assumption (true when it required the costs
// tied, false when it required BestPath strictly cheaper). Handed to an
// external OSPF weight solver out of this repo's scope (spec.md §6,
// "a list of generated OSPF equality/inequality requirements";
// SPEC_FULL.md §5, `generated_ospf_reqs`).
type OSPFRequirement struct {
	Net       string
	BestPath  []string
	OtherPath []string
	EqualVar  *smtctx.Var
}

// originRank orders Origin enum members for clause 4: IGP < EBGP <
// INCOMPLETE.
var originRank = map[string]int{"IGP": 0, "EBGP": 1, "INCOMPLETE": 2}

// UseIGP gates clauses 7-8 of the decision ladder. When false, clause 7
// is skipped and clause 8 never applies, matching spec.md §4.4's
// "assigning deterministic unequal IGP costs (10 and 15)" fallback,
// implemented here by simply short-circuiting both clauses rather than
// emitting the placeholder arithmetic.
var UseIGP = true

// EmitSelectionConstraints walks net's order_info layers pairwise: for
// every (best, other) pair drawn from two adjacent layers, register one
// decision-ladder constraint forcing best's Announcement to beat
// other's (spec.md §4.3 step 6, §4.4). Pairs heard from the same peer
// are skipped — the ladder cannot distinguish two paths at that level.
func (e *Encoder) EmitSelectionConstraints(net string, coster *IGPCoster) {
	layers := e.orderInfo[net]
	for li := 0; li+1 < len(layers); li++ {
		for _, best := range layers[li] {
			for _, other := range layers[li+1] {
				if best.Peer != "" && best.Peer == other.Peer {
					continue
				}
				e.emitDecisionLadder(net, best, other, coster)
			}
		}
	}
}

func (e *Encoder) emitDecisionLadder(net string, best, other *domain.PropagatedInfo, coster *IGPCoster) {
	S, ok1 := e.anns[best.Key()]
	O, ok2 := e.anns[other.Key()]
	if !ok1 || !ok2 {
		return
	}

	oPermitted := O.Permitted.Ref()
	clause1 := smtctx.Not{Term: oPermitted}

	localPrefBetter := smtctx.Lt{Lhs: O.LocalPref.Ref(), Rhs: S.LocalPref.Ref()}
	clause2 := smtctx.And{Terms: []smtctx.Expr{oPermitted, localPrefBetter}}
	localPrefEq := smtctx.Eq{Lhs: S.LocalPref.Ref(), Rhs: O.LocalPref.Ref()}
	prior3 := smtctx.AndOf(oPermitted, localPrefEq)

	asLenBetter := smtctx.Lt{Lhs: S.ASPathLen.Ref(), Rhs: O.ASPathLen.Ref()}
	clause3 := smtctx.AndOf(prior3, asLenBetter)
	asLenEq := smtctx.Eq{Lhs: S.ASPathLen.Ref(), Rhs: O.ASPathLen.Ref()}
	prior4 := smtctx.AndOf(prior3, asLenEq)

	clause4 := smtctx.AndOf(prior4, originBetter(S.Origin, O.Origin))
	originEq := smtctx.Eq{Lhs: S.Origin.Ref(), Rhs: O.Origin.Ref()}
	prior5 := smtctx.AndOf(prior4, originEq)

	sameAS := best.Peer != "" && other.Peer != "" && e.graph.ASNum(best.Peer) == e.graph.ASNum(other.Peer)
	medBetter := smtctx.Lt{Lhs: S.Med.Ref(), Rhs: O.Med.Ref()}
	medEq := smtctx.Expr(smtctx.Eq{Lhs: S.Med.Ref(), Rhs: O.Med.Ref()})
	var clause5 smtctx.Expr = smtctx.BoolConst(false)
	if sameAS {
		clause5 = smtctx.AndOf(prior5, medBetter)
	} else {
		medEq = smtctx.BoolConst(true) // "MED-equal-or-incomparable": different peer AS never discriminates here
	}
	prior6 := smtctx.AndOf(prior5, medEq)

	selfAS := e.graph.ASNum(e.Router)
	sViaEBGP := best.Peer != "" && e.graph.ASNum(best.Peer) != selfAS
	oViaEBGP := other.Peer != "" && e.graph.ASNum(other.Peer) != selfAS
	clause6Cond := sViaEBGP && !oViaEBGP
	clause6 := smtctx.AndOf(prior6, smtctx.BoolConst(clause6Cond))
	ebgpTie := smtctx.BoolConst(sViaEBGP == oViaEBGP)
	prior7 := smtctx.AndOf(prior6, ebgpTie)

	var clause7 smtctx.Expr = smtctx.BoolConst(false)
	var prior8 smtctx.Expr = prior7
	if UseIGP && coster != nil {
		sPath := inASSuffix(best.Path, selfAS, e)
		oPath := inASSuffix(other.Path, selfAS, e)
		sCost, sok := coster.Cost(sPath)
		oCost, ook := coster.Cost(oPath)
		if sok && ook {
			igpEqVar := e.ctx.FreshVar(smtctx.BoolSort{}, nil,
				fmt.Sprintf("igp_eq_%s_%s_%s", net, strings.Join(sPath, "_"), strings.Join(oPath, "_")))
			if len(sPath) > 0 && len(oPath) > 0 {
				e.ospfReqs = append(e.ospfReqs, OSPFRequirement{Net: net, BestPath: sPath, OtherPath: oPath, EqualVar: igpEqVar})
			}

			clause7 = smtctx.AndOf(prior7, smtctx.Not{Term: igpEqVar.Ref()}, smtctx.Lt{Lhs: sCost, Rhs: oCost})
			prior8 = smtctx.AndOf(prior7, igpEqVar.Ref(), smtctx.Eq{Lhs: sCost, Rhs: oCost})
		}
	}
	if !UseIGP {
		prior8 = smtctx.BoolConst(false)
	}

	var clause8 smtctx.Expr = smtctx.BoolConst(false)
	sID, sok := e.RouterIDExpr(best.Peer)
	oID, ook := e.RouterIDExpr(other.Peer)
	if sok && ook {
		clause8 = smtctx.AndOf(prior8, smtctx.Lt{Lhs: sID, Rhs: oID})
	}

	disjunction := smtctx.OrOf(clause1, clause2, clause3, clause4, clause5, clause6, clause7, clause8)
	e.ctx.RegisterConstraint(disjunction, "Sel_"+net+"_"+e.Router+"_")
}

func originBetter(s, o *smtctx.Var) smtctx.Expr {
	if s.IsConcrete() && o.IsConcrete() {
		return smtctx.BoolConst(originRank[s.EnumValue()] < originRank[o.EnumValue()])
	}
	// Symbolic origins: encode "s's rank is strictly less than o's rank"
	// as a disjunction over every ordered pair with that property.
	var terms []smtctx.Expr
	for sName, sRank := range originRank {
		for oName, oRank := range originRank {
			if sRank >= oRank {
				continue
			}
			terms = append(terms, smtctx.And{Terms: []smtctx.Expr{
				smtctx.Eq{Lhs: s.Ref(), Rhs: smtctx.EnumConst{Sort: enumSortOf(s), Value: sName}},
				smtctx.Eq{Lhs: o.Ref(), Rhs: smtctx.EnumConst{Sort: enumSortOf(o), Value: oName}},
			}})
		}
	}
	if len(terms) == 0 {
		return smtctx.BoolConst(false)
	}
	return smtctx.OrOf(terms...)
}

func enumSortOf(v *smtctx.Var) *smtctx.EnumSort {
	sort, _ := v.Sort.(*smtctx.EnumSort)
	return sort
}

// inASSuffix returns the trailing run of path whose routers all belong
// to as (spec.md §4.4: "IGP cost... restricted to the prefix of the
// path that lies within this router's AS" — within the router-level
// path traced origin-to-here, that's the suffix nearest this router).
func inASSuffix(path []string, as int, e *Encoder) []string {
	i := len(path)
	for i > 0 && e.graph.ASNum(path[i-1]) == as {
		i--
	}
	return path[i:]
}
