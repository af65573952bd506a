package propagation

import (
	"sort"

	"github.com/grapefruit0/synet-plus/topology"
)

// ibgpZone is the set of internal routers belonging to one AS — the
// population expandBlockedASPaths must fan a blocked AS-level hop out
// across, since any one of them may be the actual transit router a real
// iBGP-speaking AS would use (new_propagation.py's
// `extract_ibgp_zones`/`ibgp_zones`).
type ibgpZone map[string]bool

// extractIBGPZones groups every BGP-enabled internal router by AS
// number.
func extractIBGPZones(g *topology.NetworkGraph) map[int]ibgpZone {
	zones := map[int]ibgpZone{}
	for _, router := range g.RoutersIter() {
		if !g.IsBGPEnabled(router) {
			continue
		}
		as := g.ASNum(router)
		if zones[as] == nil {
			zones[as] = ibgpZone{}
		}
		zones[as][router] = true
	}
	return zones
}

func (z ibgpZone) sortedMembers() []string {
	out := make([]string, 0, len(z))
	for r := range z {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
