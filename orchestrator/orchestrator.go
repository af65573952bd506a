// Package orchestrator implements the Propagation Orchestrator (C6):
// it instantiates one BGP Router Encoder per router over a single
// shared SolverContext, wires the two-phase announcement/import design
// across every router, emits selection constraints and router-ID
// uniqueness constraints, invokes the solver, and materializes the
// result back into the NetworkGraph (spec.md §4.5).
package orchestrator

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/grapefruit0/synet-plus/bgpencoder"
	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/metrics"
	"github.com/grapefruit0/synet-plus/propagation"
	"github.com/grapefruit0/synet-plus/routemap"
	"github.com/grapefruit0/synet-plus/smtctx"
	"github.com/grapefruit0/synet-plus/topology"
)

// Orchestrator drives one complete synthesis run: propagation, one
// bgpencoder.Encoder per router, selection-constraint emission, and
// solving.
type Orchestrator struct {
	ctx   *smtctx.SolverContext
	graph *topology.NetworkGraph
	rm    *routemap.Encoder
	log   *logrus.Entry

	encoders map[string]*bgpencoder.Encoder
	ridCache *bgpencoder.RouterIDCache
}

// New builds an Orchestrator sharing one SolverContext across every
// router's encoder (spec.md §5: "the SolverContext is a single shared
// mutable arena").
func New(graph *topology.NetworkGraph, communities []domain.Community) *Orchestrator {
	ctx := smtctx.NewContext(communities)
	rm := routemap.NewEncoder(ctx)
	ridCache := bgpencoder.NewRouterIDCache()

	o := &Orchestrator{
		ctx:      ctx,
		graph:    graph,
		rm:       rm,
		log:      ctx.Log().WithField("component", "orchestrator"),
		encoders: map[string]*bgpencoder.Encoder{},
		ridCache: ridCache,
	}
	// Every BGP-speaking node gets an Encoder, not just internal
	// routers: an external peer's propagation node holds exactly one
	// self-originated PropagatedInfo, and the first router inside this
	// network to hear it needs somewhere to call ExportedRoutes against
	// (spec.md §4.3 step 3 reads "the neighbor's propagation node"
	// without restricting "neighbor" to internal routers). Only internal
	// routers get WireImports/MarkSelected/the decision ladder: a peer
	// has no import policy and nothing for this repo to select between.
	for _, name := range graph.AllNodesIter() {
		if !graph.IsBGPEnabled(name) {
			continue
		}
		o.encoders[name] = bgpencoder.NewEncoder(name, ctx, graph, rm, nextHopMap(graph, name), ridCache)
	}
	return o
}

func nextHopMap(g *topology.NetworkGraph, router string) map[string]string {
	out := map[string]string{}
	for _, neighbor := range g.BGPNeighbors(router) {
		out[neighbor] = g.Loopback(neighbor)
	}
	return out
}

// Result is everything a completed synthesis run produces (spec.md §6,
// "Outputs").
type Result struct {
	Model            smtctx.Model
	UnmatchingOrders []propagation.UnmatchingOrder
	OSPFRequirements []bgpencoder.OSPFRequirement
}

// Run executes the full pipeline over reqs: propagation, two-phase
// encoding, selection-constraint and router-ID-uniqueness emission,
// then solving with solver. On success, it materializes concrete
// route-maps and router IDs back into the NetworkGraph passed to New;
// prefix-lists and community-lists in the graph are left unchanged.
func (o *Orchestrator) Run(reqs []domain.Req, solver smtctx.Solver) (*Result, error) {
	var results map[string]*propagation.Result
	var unmatching []propagation.UnmatchingOrder
	err := metrics.ObservePhase("propagation", func() error {
		var buildErr error
		results, unmatching, buildErr = propagation.Build(reqs, o.graph)
		return buildErr
	})
	if err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	nets := sortedResultNets(results)
	var coster *bgpencoder.IGPCoster
	_ = metrics.ObservePhase("encoding", func() error {
		// Phase 1 covers every BGP-speaking node, including external
		// peers: a peer's RouterDAG entry is where its one
		// self-originated PropagatedInfo lives, and WireImports below
		// needs that peer's Encoder to already hold a symbolic
		// Announcement for it.
		for _, net := range nets {
			res := results[net]
			for name, enc := range o.encoders {
				node, ok := res.RouterDAG.Nodes[name]
				if !ok {
					continue
				}
				enc.AddPropagatedInfo(net, node.PathsInfo, node.BlockInfo, node.OrderInfo, node.Origins)
				metrics.DAGNodesVisited.WithLabelValues("router").Inc()
			}
		}

		// Phase 1: every node's own symbolic Announcements exist before
		// any cross-router wiring reads them — breaks the
		// router-to-router circular dependency (spec.md §4.5, §9).
		for _, enc := range o.encoders {
			enc.CreateAnnouncements()
		}

		// Phase 2: wire imports/exports, fix each held announcement's
		// Permitted flag, emit the decision ladder.
		coster = bgpencoder.NewIGPCoster(o.ctx, o.graph)
		for _, router := range o.graph.RoutersIter() {
			o.encoders[router].WireImports(o.neighborEncoders(router))
		}
		for _, net := range nets {
			for _, router := range o.graph.RoutersIter() {
				o.encoders[router].MarkSelected(net)
				o.encoders[router].EmitSelectionConstraints(net, coster)
			}
		}

		o.emitRouterIDConstraints()
		return nil
	})

	metrics.ConstraintsRegistered.WithLabelValues("orchestrator").Add(float64(len(o.ctx.Constraints())))
	o.log.WithField("constraints", len(o.ctx.Constraints())).Info("encoding complete, invoking solver")

	var model smtctx.Model
	err = metrics.ObservePhase("solve", func() error {
		var solveErr error
		model, solveErr = solver.CheckSat(nil, o.ctx.Constraints())
		return solveErr
	})
	if err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	o.resolveAllVars(model)

	_ = metrics.ObservePhase("materialize", func() error {
		Materialize(o.graph, o.rm, o.ridCache)
		return nil
	})

	metrics.RunsTotal.WithLabelValues("sat").Inc()

	return &Result{
		Model:            model,
		UnmatchingOrders: unmatching,
		OSPFRequirements: o.collectOSPFRequirements(),
	}, nil
}

func (o *Orchestrator) neighborEncoders(router string) map[string]*bgpencoder.Encoder {
	out := map[string]*bgpencoder.Encoder{}
	for _, n := range o.graph.BGPNeighbors(router) {
		if enc, ok := o.encoders[n]; ok {
			out[n] = enc
		}
	}
	return out
}

// resolveAllVars applies the solved model to every Var mentioned by a
// registered constraint — the reference solver (and, by contract, any
// real backend) only returns assignments for variables it actually
// reasoned about, so this, not a separately tracked allocation list, is
// the authoritative set of Vars worth resolving.
func (o *Orchestrator) resolveAllVars(model smtctx.Model) {
	seen := map[string]*smtctx.Var{}
	var vars []*smtctx.Var
	var walk func(smtctx.Expr)
	walk = func(e smtctx.Expr) {
		switch n := e.(type) {
		case smtctx.VarRef:
			if _, ok := seen[n.V.Name]; !ok {
				seen[n.V.Name] = n.V
				vars = append(vars, n.V)
			}
		case smtctx.Eq:
			walk(n.Lhs)
			walk(n.Rhs)
		case smtctx.Lt:
			walk(n.Lhs)
			walk(n.Rhs)
		case smtctx.Add:
			for _, t := range n.Terms {
				walk(t)
			}
		case smtctx.And:
			for _, t := range n.Terms {
				walk(t)
			}
		case smtctx.Or:
			for _, t := range n.Terms {
				walk(t)
			}
		case smtctx.Not:
			walk(n.Term)
		case smtctx.If:
			walk(n.Cond)
			walk(n.Then)
			walk(n.Else)
		case smtctx.Distinct:
			for _, t := range n.Terms {
				walk(t)
			}
		}
	}
	for _, c := range o.ctx.Constraints() {
		walk(c.Expr)
	}
	smtctx.Resolve(vars, model)
}

func sortedResultNets(results map[string]*propagation.Result) []string {
	nets := make([]string, 0, len(results))
	for net := range results {
		nets = append(nets, net)
	}
	sort.Strings(nets)
	return nets
}
