// Package bgpencoder implements the BGP Router Encoder (C5): per-router
// symbolic announcement creation, export/import route-map wiring across
// neighbors, and the BGP decision ladder that forces a router's
// selected announcement to beat every other candidate (spec.md §4.3,
// §4.4).
package bgpencoder

import (
	"github.com/sirupsen/logrus"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/routemap"
	"github.com/grapefruit0/synet-plus/smtctx"
	"github.com/grapefruit0/synet-plus/topology"
)

// Encoder owns one router's symbolic BGP state: one Announcement per
// PropagatedInfo it may hold, across every destination prefix.
type Encoder struct {
	Router string

	ctx   *smtctx.SolverContext
	graph *topology.NetworkGraph
	rm    *routemap.Encoder
	log   *logrus.Entry

	nextHop map[string]string // neighbor name -> concrete interface address

	info     map[string]*domain.PropagatedInfo            // every info this router holds, keyed by Key()
	selected map[string]bool                                // keys in paths_info (selected_sham)
	origins  map[string]map[string]*domain.PropagatedInfo   // net -> (key at this router -> info at upstream neighbor)
	orderInfo map[string][][]*domain.PropagatedInfo         // net -> order_info layers, for this router

	anns map[string]*smtctx.Announcement // info key -> this router's own symbolic Announcement

	exportedCache map[string]*smtctx.AnnouncementsContext
	exportedKeys  map[string][]string

	ridCache *RouterIDCache // shared across every router's Encoder so a HOLE router ID resolves to one Var

	ospfReqs []OSPFRequirement // accumulated by emitDecisionLadder, one per IGP-cost comparison
}

// OSPFRequirements returns every OSPFRequirement the decision ladder
// generated for this router across all calls to EmitSelectionConstraints.
func (e *Encoder) OSPFRequirements() []OSPFRequirement {
	return e.ospfReqs
}

// RouterIDCache hands out one Var per router's HOLE router-ID,
// shared across every bgpencoder.Encoder in a synthesis run. Without
// sharing, two routers' decision ladders comparing the same peer's
// router ID would each allocate their own fresh variable for it,
// silently decoupling what must be one quantity.
type RouterIDCache struct {
	vars map[string]*smtctx.Var
}

// NewRouterIDCache returns an empty cache, constructed once by the
// orchestrator and passed to every NewEncoder call.
func NewRouterIDCache() *RouterIDCache { return &RouterIDCache{vars: map[string]*smtctx.Var{}} }

// Resolved returns the solved integer value of router's HOLE router-ID
// Var, if one was ever allocated and a model has been applied.
func (c *RouterIDCache) Resolved(router string) (int, bool) {
	v, ok := c.vars[router]
	if !ok || v.Resolved == nil {
		return 0, false
	}
	return v.IntValue(), true
}

// NewEncoder returns an Encoder for router, sharing ctx, rm (a
// routemap.Encoder), and ridCache with every other router in the same
// synthesis run.
func NewEncoder(router string, ctx *smtctx.SolverContext, graph *topology.NetworkGraph, rm *routemap.Encoder, nextHop map[string]string, ridCache *RouterIDCache) *Encoder {
	return &Encoder{
		Router:        router,
		ctx:           ctx,
		graph:         graph,
		rm:            rm,
		log:           ctx.Log().WithField("component", "bgpencoder").WithField("router", router),
		nextHop:       nextHop,
		info:          map[string]*domain.PropagatedInfo{},
		selected:      map[string]bool{},
		origins:       map[string]map[string]*domain.PropagatedInfo{},
		orderInfo:     map[string][][]*domain.PropagatedInfo{},
		anns:          map[string]*smtctx.Announcement{},
		exportedCache: map[string]*smtctx.AnnouncementsContext{},
		exportedKeys:  map[string][]string{},
		ridCache:      ridCache,
	}
}

// RouterIDExpr returns an Expr for name's router-ID: a concrete
// IntConst when the sketch pins a value, or this run's shared fresh
// positive IntSort Var the first time a HOLE router-ID is referenced
// (reused on every later reference to the same router, across every
// encoder, for the same reason IGPCoster caches HOLE edge costs).
func (e *Encoder) RouterIDExpr(name string) (smtctx.Expr, bool) {
	id := e.graph.BGPRouterID(name)
	if id.IsAbsent() {
		return nil, false
	}
	if id.IsConcrete() {
		return smtctx.IntConst(id.Val), true
	}
	if v, ok := e.ridCache.vars[name]; ok {
		return v.Ref(), true
	}
	v := e.ctx.FreshVar(smtctx.IntSort{}, nil, "router_id_"+name)
	e.ridCache.vars[name] = v
	return v.Ref(), true
}

// AddPropagatedInfo registers net's paths_info, block_info, order_info,
// and origins at this router (the output of propagation.Build's
// RouterDAG for this router).
func (e *Encoder) AddPropagatedInfo(net string, pathsInfo, blockInfo []*domain.PropagatedInfo, order [][]*domain.PropagatedInfo, origins map[string]*domain.PropagatedInfo) {
	for _, info := range pathsInfo {
		e.info[info.Key()] = info
		e.selected[info.Key()] = true
	}
	for _, info := range blockInfo {
		e.info[info.Key()] = info
	}
	e.orderInfo[net] = order
	if origins != nil {
		e.origins[net] = origins
	}
}

func (e *Encoder) applyRouteMap(name string, in *smtctx.AnnouncementsContext) *smtctx.AnnouncementsContext {
	if name == "" {
		return in
	}
	rmap, ok := e.graph.RouteMaps(e.Router)[name]
	if !ok {
		e.log.WithField("route_map", name).Warn("route-map referenced but not attached to router")
		return in
	}
	return e.rm.Execute(rmap, in)
}
