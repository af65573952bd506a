package orchestrator

import (
	"sort"

	"github.com/grapefruit0/synet-plus/bgpencoder"
)

// collectOSPFRequirements gathers every bgpencoder.OSPFRequirement the
// decision ladder generated across every router's Encoder, sorted by
// net and EqualVar name; each EqualVar has already been resolved by
// o.resolveAllVars (spec.md §6, "a list
// of generated OSPF equality/inequality requirements";
// SPEC_FULL.md §5, `generated_ospf_reqs`). Must run after the solver
// has returned and o.resolveAllVars has applied the model.
func (o *Orchestrator) collectOSPFRequirements() []bgpencoder.OSPFRequirement {
	var out []bgpencoder.OSPFRequirement
	for _, router := range o.graph.RoutersIter() {
		out = append(out, o.encoders[router].OSPFRequirements()...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Net != out[j].Net {
			return out[i].Net < out[j].Net
		}
		return out[i].EqualVar.Name < out[j].EqualVar.Name
	})
	return out
}
