package bgpencoder

import (
	"fmt"

	"github.com/grapefruit0/synet-plus/smtctx"
	"github.com/grapefruit0/synet-plus/topology"
)

// IGPCoster turns a router-level path into a symbolic integer cost by
// summing each hop's OSPF edge cost (spec.md §4.4's igp_cost clause).
// Concrete edges contribute IntConst terms; HOLE edges are allocated a
// fresh IntSort Var the first time they're seen and reused afterward,
// so the same physical edge costed while comparing two different
// candidate paths shares one variable instead of silently diverging
// into two independently-solved costs for the same link.
type IGPCoster struct {
	ctx      *smtctx.SolverContext
	graph    *topology.NetworkGraph
	holeVars map[[2]string]*smtctx.Var
}

// NewIGPCoster returns an IGPCoster sharing ctx and graph with the rest
// of a synthesis run.
func NewIGPCoster(ctx *smtctx.SolverContext, graph *topology.NetworkGraph) *IGPCoster {
	return &IGPCoster{ctx: ctx, graph: graph, holeVars: map[[2]string]*smtctx.Var{}}
}

// Cost returns an Expr for the total OSPF cost of path (a sequence of
// router names), and false if some consecutive pair has no OSPF edge
// between them (the path leaves the IGP domain).
func (c *IGPCoster) Cost(path []string) (smtctx.Expr, bool) {
	if len(path) < 2 {
		return smtctx.IntConst(0), true
	}
	var terms []smtctx.Expr
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		edge := c.graph.EdgeOSPFCost(a, b)
		if edge.IsAbsent() {
			return nil, false
		}
		if edge.IsConcrete() {
			terms = append(terms, smtctx.IntConst(edge.Val))
			continue
		}
		terms = append(terms, c.edgeVar(a, b).Ref())
	}
	return smtctx.Add{Terms: terms}, true
}

func (c *IGPCoster) edgeVar(a, b string) *smtctx.Var {
	key := costEdgeKey(a, b)
	if v, ok := c.holeVars[key]; ok {
		return v
	}
	v := c.ctx.FreshVar(smtctx.IntSort{}, nil, fmt.Sprintf("ospf_cost_%s_%s", key[0], key[1]))
	c.holeVars[key] = v
	return v
}

func costEdgeKey(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}
