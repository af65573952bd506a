package bgpencoder

import (
	"fmt"
	"sort"

	"github.com/grapefruit0/synet-plus/smtctx"
)

// ExportedRoutes computes the announcements this router (e) exports
// toward neighbor (spec.md §4.3 step 3): every PropagatedInfo the
// neighbor holds whose second-to-last hop is this router, mapped back
// to this router's own Announcement via the neighbor's origins map,
// run through this router's export route-map for that neighbor.
// Results are memoized — two imports from the same neighbor, or a
// second orchestrator pass, reuse the same AnnouncementsContext.
func (e *Encoder) ExportedRoutes(neighbor *Encoder, neighborName string) (*smtctx.AnnouncementsContext, []string) {
	if ctx, ok := e.exportedCache[neighborName]; ok {
		return ctx, e.exportedKeys[neighborName]
	}

	var keys []string
	var input []*smtctx.Announcement
	for _, key := range neighbor.sortedInfoKeys() {
		info := neighbor.info[key]
		if info.PrevNode() != e.Router {
			continue
		}
		originsForNet := neighbor.origins[info.AnnName]
		if originsForNet == nil {
			continue
		}
		parent, ok := originsForNet[key]
		if !ok {
			continue
		}
		ann, ok := e.anns[parent.Key()]
		if !ok {
			continue
		}
		keys = append(keys, key)
		input = append(input, ann)
	}

	inCtx := smtctx.NewAnnouncementsContext(input)
	rmName := e.graph.BGPExportRouteMap(e.Router, neighborName)
	outCtx := e.applyRouteMap(rmName, inCtx)

	e.exportedCache[neighborName] = outCtx
	e.exportedKeys[neighborName] = keys
	return outCtx, keys
}

// ImportedFrom computes what this router (e) stores after hearing
// neighbor's exported announcements, applying the eBGP/iBGP next-hop
// rewrite and this router's import route-map (spec.md §4.3 step 4).
func (e *Encoder) ImportedFrom(neighbor *Encoder, neighborName string) (*smtctx.AnnouncementsContext, []string) {
	expCtx, keys := neighbor.ExportedRoutes(e, e.Router)

	selfAS := e.graph.ASNum(e.Router)
	neighborAS := e.graph.ASNum(neighborName)
	nhSort := e.ctx.DeclareEnum(smtctx.NextHopSort, nil)
	concreteNextHop := e.nextHop[neighborName]

	rewritten := make([]*smtctx.Announcement, len(expCtx.Anns))
	for i, ann := range expCtx.Anns {
		copyAnn := ann.ShallowCopy()
		copyAnn.Prev = ann

		namePrefix := fmt.Sprintf("%s_from_%s_%d", e.Router, neighborName, i)
		if selfAS != neighborAS {
			copyAnn.LocalPref = e.ctx.FreshVar(smtctx.IntSort{}, 100, namePrefix+"_ebgp_local_pref")
			copyAnn.NextHop = e.ctx.FreshVar(nhSort, concreteNextHop, namePrefix+"_ebgp_next_hop")
		} else {
			concrete := e.ctx.FreshVar(nhSort, concreteNextHop, namePrefix+"_ibgp_concrete_next_hop")
			chosen := e.ctx.FreshVar(nhSort, nil, namePrefix+"_ibgp_next_hop")
			cond := smtctx.Eq{Lhs: ann.NextHop.Ref(), Rhs: e.ctx.OriginNextHop().Ref()}
			e.ctx.RegisterConstraint(
				smtctx.Eq{Lhs: chosen.Ref(), Rhs: smtctx.If{Cond: cond, Then: concrete.Ref(), Else: ann.NextHop.Ref()}},
				namePrefix+"_ibgp_next_hop_def_",
			)
			copyAnn.NextHop = chosen
		}
		rewritten[i] = copyAnn
	}

	inCtx := smtctx.NewAnnouncementsContext(rewritten)
	rmName := e.graph.BGPImportRouteMap(e.Router, neighborName)
	outCtx := e.applyRouteMap(rmName, inCtx)
	return outCtx, keys
}

// WireImports asserts, for every BGP neighbor, equality between this
// router's own symbolic Announcement (from CreateAnnouncements) and
// the corresponding imported announcement (spec.md §4.3 step 4, final
// paragraph). This is phase 2 of the two-phase orchestration: every
// router's Announcements already exist by the time any router's
// WireImports runs.
func (e *Encoder) WireImports(neighbors map[string]*Encoder) {
	names := make([]string, 0, len(neighbors))
	for name := range neighbors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		neighbor := neighbors[name]
		ctx, keys := e.ImportedFrom(neighbor, name)
		for i, key := range keys {
			own, ok := e.anns[key]
			if !ok {
				continue
			}
			imported := ctx.Anns[i]
			e.assertEqual(own, imported, fmt.Sprintf("Imp_%s_from_%s_%s", e.Router, name, key))
		}
	}
}

func (e *Encoder) assertEqual(own, imported *smtctx.Announcement, namePrefix string) {
	pairs := []struct {
		attr string
		a, b *smtctx.Var
	}{
		{"prefix", own.Prefix, imported.Prefix},
		{"next_hop", own.NextHop, imported.NextHop},
		{"origin", own.Origin, imported.Origin},
		{"local_pref", own.LocalPref, imported.LocalPref},
		{"med", own.Med, imported.Med},
		{"permitted", own.Permitted, imported.Permitted},
	}
	for _, p := range pairs {
		e.ctx.RegisterConstraint(smtctx.Eq{Lhs: p.a.Ref(), Rhs: p.b.Ref()}, namePrefix+"_"+p.attr+"_")
	}
	for community, v := range own.Communities {
		if iv, ok := imported.Communities[community]; ok {
			e.ctx.RegisterConstraint(smtctx.Eq{Lhs: v.Ref(), Rhs: iv.Ref()}, namePrefix+"_comm_"+string(community)+"_")
		}
	}
}
