package propagation

import (
	"strconv"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/topology"
)

// extractLayers walks reqs (a same-destination requirement group, or a
// PathOrderReq/KConnectedPathsReq's children) into ordered layers of AS-
// and router-level paths (spec.md §4.1 step 2). A PathOrderReq's
// children keep their relative layer order; a KConnectedPathsReq's
// children are unioned into a single layer, since its alternatives are
// equally acceptable.
//
// req.Path is taken origin-first, ending at the requiring router —
// matching the invariant that a PropagatedInfo's path[-1] is its owning
// node, rather than the reversed-index bookkeeping of the source this
// was distilled from.
func extractLayers(reqs []domain.Req, g *topology.NetworkGraph) (asLayers, routerLayers [][]Path) {
	for _, req := range reqs {
		switch r := req.(type) {
		case *domain.PathReq:
			routerPath := Path(append([]string(nil), r.Path...))
			asPath := asLevelPath(routerPath, g)
			asLayers = append(asLayers, []Path{asPath})
			routerLayers = append(routerLayers, []Path{routerPath})
		case *domain.PathOrderReq:
			as, router := extractLayers(r.Children, g)
			asLayers = append(asLayers, as...)
			routerLayers = append(routerLayers, router...)
		case *domain.KConnectedPathsReq:
			as, router := extractLayers(r.Children, g)
			asLayers = append(asLayers, flattenLayer(as))
			routerLayers = append(routerLayers, flattenLayer(router))
		}
	}
	return asLayers, routerLayers
}

// asLevelPath contracts router-level path into its AS-number
// projection, dropping consecutive repeats (iBGP hops within one AS).
func asLevelPath(path Path, g *topology.NetworkGraph) Path {
	var out Path
	for _, node := range path {
		as := strconv.Itoa(g.ASNum(node))
		if len(out) == 0 || out[len(out)-1] != as {
			out = append(out, as)
		}
	}
	return out
}

// flattenLayer unions a list of layers into one deduplicated layer,
// preserving first-seen order for determinism.
func flattenLayer(layers [][]Path) []Path {
	var out []Path
	seen := map[string]bool{}
	for _, layer := range layers {
		for _, p := range layer {
			k := p.key()
			if !seen[k] {
				seen[k] = true
				out = append(out, p)
			}
		}
	}
	return out
}
