package bgpencoder

import "github.com/grapefruit0/synet-plus/smtctx"

// MarkSelected asserts, for every PropagatedInfo this router holds for
// net, that its Announcement's Permitted flag equals whether it belongs
// to paths_info: true for paths_info members, false for block_info
// members (spec.md §4.3 step 5, "assert permitted = true iff it belongs
// to selected_sham, else permitted = false"). It does not rank
// multiple simultaneously-permitted paths_info candidates against one
// another — that is the decision ladder's job, over the already-forced
// Permitted=true set.
func (e *Encoder) MarkSelected(net string) {
	for _, key := range e.sortedInfoKeys() {
		info := e.info[key]
		if info.AnnName != net {
			continue
		}
		e.ctx.RegisterConstraint(
			smtctx.Eq{Lhs: smtctx.VarRef{V: e.anns[key].Permitted}, Rhs: smtctx.BoolConst(e.selected[key])},
			"Permitted_"+net+"_",
		)
	}
}
