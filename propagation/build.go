package propagation

import (
	"sort"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/topology"
)

// Result is one destination prefix's fully built and partially
// evaluated propagation state, the unit Build returns per net.
type Result struct {
	Net       string
	ASDAG     *DAG
	RouterDAG *DAG
}

// Build runs the full Propagation Builder pipeline (spec.md §4.1) over
// reqs: group by destination, extract AS- and router-level layers,
// compute propagation, check realizability, expand blocked AS paths
// down to the router DAG, and partially evaluate PropagatedInfo.
//
// Only BGP-protocol requirements are propagated here; requirements
// declared against OSPF are skipped and nothing else reads them. A net
// whose requirements fail the realizability check is reported in the
// returned UnmatchingOrders and has no entry in the results map.
func Build(reqs []domain.Req, g *topology.NetworkGraph) (map[string]*Result, []UnmatchingOrder, error) {
	netReqs := map[string][]domain.Req{}
	var nets []string
	for _, req := range reqs {
		if reqProtocol(req) != domain.BGP {
			continue
		}
		net := req.DstNet()
		if _, ok := netReqs[net]; !ok {
			nets = append(nets, net)
		}
		netReqs[net] = append(netReqs[net], req)
	}
	sort.Strings(nets)

	results := map[string]*Result{}
	var unmatching []UnmatchingOrder

	peering := buildPeeringGraph(g)

	for _, net := range nets {
		asLayers, routerLayers := extractLayers(netReqs[net], g)

		asDAG := computePropagation(asLayers, peering.neighborsOf)
		routerDAG := computePropagation(routerLayers, routerNeighbors(g))

		// A prefix whose order contradicts itself is reported and left out
		// of the results, so nothing is encoded for it.
		conflicts := checkRealizability(net, asDAG)
		unmatching = append(unmatching, conflicts...)
		if len(conflicts) > 0 {
			continue
		}

		expandBlockedASPaths(asDAG, routerDAG, g)

		if err := partialEvaluate(net, routerDAG, g); err != nil {
			return nil, nil, err
		}

		results[net] = &Result{Net: net, ASDAG: asDAG, RouterDAG: routerDAG}
	}

	return results, unmatching, nil
}

// reqProtocol returns the protocol a requirement (at any nesting level)
// was declared against.
func reqProtocol(req domain.Req) domain.Protocol {
	switch r := req.(type) {
	case *domain.PathReq:
		return r.Protocol
	case *domain.PathOrderReq:
		return r.Protocol
	case *domain.KConnectedPathsReq:
		return r.Protocol
	default:
		return domain.BGP
	}
}
