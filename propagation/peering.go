package propagation

import (
	"sort"
	"strconv"

	"github.com/grapefruit0/synet-plus/topology"
)

// peeringGraph is the AS-level view of a NetworkGraph: one node per AS
// number, one edge per pair of AS numbers joined by at least one
// router-to-router BGP session (new_propagation.py's `verify.peering_graph`).
type peeringGraph struct {
	neighbors map[int]map[int]bool
}

func buildPeeringGraph(g *topology.NetworkGraph) *peeringGraph {
	pg := &peeringGraph{neighbors: map[int]map[int]bool{}}
	for _, node := range g.AllNodesIter() {
		if !g.IsBGPEnabled(node) {
			continue
		}
		asNum := g.ASNum(node)
		if pg.neighbors[asNum] == nil {
			pg.neighbors[asNum] = map[int]bool{}
		}
		for _, neigh := range g.BGPNeighbors(node) {
			neighAS := g.ASNum(neigh)
			if neighAS == asNum {
				continue
			}
			pg.neighbors[asNum][neighAS] = true
			if pg.neighbors[neighAS] == nil {
				pg.neighbors[neighAS] = map[int]bool{}
			}
			pg.neighbors[neighAS][asNum] = true
		}
	}
	return pg
}

func (pg *peeringGraph) neighborsOf(asNum string) []string {
	n, _ := strconv.Atoi(asNum)
	out := make([]string, 0, len(pg.neighbors[n]))
	for as := range pg.neighbors[n] {
		out = append(out, strconv.Itoa(as))
	}
	sort.Strings(out)
	return out
}

// routerNeighbors adapts NetworkGraph.BGPNeighbors to the neighborFunc
// shape used by the generic propagation pass.
func routerNeighbors(g *topology.NetworkGraph) func(string) []string {
	return func(node string) []string { return g.BGPNeighbors(node) }
}

func routerAS(g *topology.NetworkGraph) func(string) string {
	return func(node string) string { return strconv.Itoa(g.ASNum(node)) }
}
