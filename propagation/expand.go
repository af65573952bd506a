package propagation

import (
	"strconv"

	"github.com/grapefruit0/synet-plus/topology"
)

// expandBlockedASPaths realizes every AS-level blocked path as one or
// more router-level paths and adds them to the router DAG's block sets
// when not already allowed there (spec.md §4.1 step 5).
func expandBlockedASPaths(asDAG, routerDAG *DAG, g *topology.NetworkGraph) {
	zones := extractIBGPZones(g)
	for _, asNode := range sortedDagNodes(asDAG) {
		n := asDAG.node(asNode)
		for _, asPath := range n.Block {
			for _, routerPath := range realizeRouterPaths(asPath, zones, g) {
				endNode := routerPath[len(routerPath)-1]
				target := routerDAG.node(endNode)
				if target.hasPath(routerPath) {
					continue
				}
				target.addBlock(routerPath)
			}
		}
	}
}

// realizeRouterPaths enumerates every router-level path that realizes
// asPath: starting from every router in asPath's first AS zone, it
// fans out through the BGP-neighbor relation one AS hop at a time,
// branching at each hop into every neighbor belonging to the next
// hop's zone instead of following a single greedy representative
// (matching the original's expand_as_path, which walks every router
// the next AS hop's ibgp zone contains rather than one border router).
func realizeRouterPaths(asPath Path, zones map[int]ibgpZone, g *topology.NetworkGraph) []Path {
	if len(asPath) == 0 {
		return nil
	}

	zoneFor := func(asHop string) ibgpZone {
		n, err := strconv.Atoi(asHop)
		if err != nil {
			return nil
		}
		return zones[n]
	}

	startZone := zoneFor(asPath[0])
	frontier := make([]Path, 0, len(startZone))
	for _, r := range startZone.sortedMembers() {
		frontier = append(frontier, Path{r})
	}

	for i := 0; i+1 < len(asPath); i++ {
		nextZone := zoneFor(asPath[i+1])
		var next []Path
		for _, path := range frontier {
			last := path[len(path)-1]
			for _, neigh := range g.BGPNeighbors(last) {
				if !nextZone[neigh] || containsNode(path, neigh) {
					continue
				}
				extended := make(Path, len(path)+1)
				copy(extended, path)
				extended[len(path)] = neigh
				next = append(next, extended)
			}
		}
		frontier = next
	}
	return frontier
}
