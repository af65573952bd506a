package orchestrator

import "github.com/grapefruit0/synet-plus/smtctx"

// emitRouterIDConstraints registers, for every router carrying a
// router-ID sketch (concrete or HOLE), a positivity constraint and a
// single Distinct across all of them (spec.md's invariant "router IDs
// are globally distinct and strictly positive"; SPEC_FULL.md §5,
// supplemented from `set_bgp_router_ids`). A router with no router-ID
// field at all is skipped — spec.md §7's UnsetRouterID is a warning the
// decision ladder already absorbs by treating that router's ID
// comparisons as inapplicable (bgpencoder.Encoder.RouterIDExpr returns
// ok=false), so nothing here needs to fabricate one.
func (o *Orchestrator) emitRouterIDConstraints() {
	var terms []smtctx.Expr
	for _, router := range o.graph.RoutersIter() {
		expr, ok := o.encoders[router].RouterIDExpr(router)
		if !ok {
			o.log.WithField("router", router).Warn("router has no router-ID sketch; decision ladder will skip its tie-break clause")
			continue
		}
		terms = append(terms, expr)
		o.ctx.RegisterConstraint(smtctx.Lt{Lhs: smtctx.IntConst(0), Rhs: expr}, "RouterIDPositive_"+router+"_")
	}
	if len(terms) > 1 {
		o.ctx.RegisterConstraint(smtctx.Distinct{Terms: terms}, "RouterIDsDistinct_")
	}
}
