// Package topology provides NetworkGraph (C2), the queryable
// representation of an operator's topology sketch: routers, peers, AS
// numbers, BGP neighbor relations, per-edge OSPF costs, advertised
// announcements, router IDs, and attached route-maps.
package topology

import (
	"fmt"
	"sort"

	"github.com/grapefruit0/synet-plus/domain"
)

type node struct {
	name       string
	isRouter   bool // false for external peers (Provider1, Customer, ...)
	bgpEnabled bool
	asNum      int
	routerID   Sketch[int]
	ospfArea   int
	ospfOn     bool
	loopback   string
	advertise  []domain.ExternalAnnouncement
	bgpNeigh   map[string]bool
	routeMaps  map[string]*RouteMap
	importRM   map[string]string // neighbor -> route-map name
	exportRM   map[string]string
	prefixList map[string]*PrefixList
	commList   map[string]*CommunityList
}

// NetworkGraph is the read-mostly topology view every other component
// queries. It also receives the materialized route-maps and router IDs
// written back after a successful solve; its prefix-lists and
// community-lists are the ones loaded from the sketch.
type NetworkGraph struct {
	nodes map[string]*node
	edges map[[2]string]Sketch[int] // undirected OSPF edge cost, keyed by sorted pair
}

// New creates an empty NetworkGraph.
func New() *NetworkGraph {
	return &NetworkGraph{
		nodes: map[string]*node{},
		edges: map[[2]string]Sketch[int]{},
	}
}

func (g *NetworkGraph) get(name string) *node {
	n, ok := g.nodes[name]
	if !ok {
		n = &node{
			name:       name,
			bgpNeigh:   map[string]bool{},
			routeMaps:  map[string]*RouteMap{},
			importRM:   map[string]string{},
			exportRM:   map[string]string{},
			prefixList: map[string]*PrefixList{},
			commList:   map[string]*CommunityList{},
		}
		g.nodes[name] = n
	}
	return n
}

// AddRouter registers an internal router belonging to asNum.
func (g *NetworkGraph) AddRouter(name string, asNum int) {
	n := g.get(name)
	n.isRouter = true
	n.bgpEnabled = true
	n.asNum = asNum
}

// AddPeer registers an external BGP peer (a neighboring AS's border
// router, from this topology's point of view an opaque endpoint).
func (g *NetworkGraph) AddPeer(name string, asNum int) {
	n := g.get(name)
	n.isRouter = false
	n.bgpEnabled = true
	n.asNum = asNum
}

// SetEdge records an undirected physical link with the given OSPF
// cost sketch.
func (g *NetworkGraph) SetEdge(a, b string, cost Sketch[int]) {
	g.get(a)
	g.get(b)
	g.edges[edgeKey(a, b)] = cost
	g.get(a).ospfOn = true
	g.get(b).ospfOn = true
}

func edgeKey(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// EdgeOSPFCost returns the cost sketch for the edge between a and b,
// or an absent sketch if no such edge exists.
func (g *NetworkGraph) EdgeOSPFCost(a, b string) Sketch[int] {
	return g.edges[edgeKey(a, b)]
}

// SetLoopback sets the address used as this node's BGP next-hop when
// it is the advertising router.
func (g *NetworkGraph) SetLoopback(name, addr string) {
	g.get(name).loopback = addr
}

// Loopback returns the address set by SetLoopback.
func (g *NetworkGraph) Loopback(name string) string {
	return g.get(name).loopback
}

// AddBGPNeighbor establishes a BGP neighbor relation in both
// directions (a session is always mutual).
func (g *NetworkGraph) AddBGPNeighbor(a, b string) {
	g.get(a).bgpNeigh[b] = true
	g.get(b).bgpNeigh[a] = true
}

// IsBGPEnabled reports whether BGP runs on name.
func (g *NetworkGraph) IsBGPEnabled(name string) bool {
	n, ok := g.nodes[name]
	return ok && n.bgpEnabled
}

// IsRouter reports whether name is an internal router (as opposed to
// an external peer).
func (g *NetworkGraph) IsRouter(name string) bool {
	n, ok := g.nodes[name]
	return ok && n.isRouter
}

// ASNum returns the AS number of name.
func (g *NetworkGraph) ASNum(name string) int {
	return g.get(name).asNum
}

// BGPNeighbors returns the sorted BGP neighbor list of name, so
// traversal order (and therefore generated constraint order) is
// deterministic across runs.
func (g *NetworkGraph) BGPNeighbors(name string) []string {
	n, ok := g.nodes[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(n.bgpNeigh))
	for neigh := range n.bgpNeigh {
		out = append(out, neigh)
	}
	sort.Strings(out)
	return out
}

// RoutersIter returns every router name (internal routers only,
// sorted), the population the propagation and encoding phases iterate
// over.
func (g *NetworkGraph) RoutersIter() []string {
	out := make([]string, 0, len(g.nodes))
	for name, n := range g.nodes {
		if n.isRouter {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// AllNodesIter returns every node name, routers and peers alike,
// sorted.
func (g *NetworkGraph) AllNodesIter() []string {
	out := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SetBGPRouterID sets the router-ID sketch for name.
func (g *NetworkGraph) SetBGPRouterID(name string, id Sketch[int]) {
	g.get(name).routerID = id
}

// BGPRouterID returns the router-ID sketch for name.
func (g *NetworkGraph) BGPRouterID(name string) Sketch[int] {
	return g.get(name).routerID
}

// AddBGPAdvertise registers an external announcement originated at
// name.
func (g *NetworkGraph) AddBGPAdvertise(name string, ann domain.ExternalAnnouncement) {
	n := g.get(name)
	n.advertise = append(n.advertise, ann)
}

// BGPAdvertise returns every announcement originated at name.
func (g *NetworkGraph) BGPAdvertise(name string) []domain.ExternalAnnouncement {
	return g.get(name).advertise
}

// AddRouteMap attaches a route-map body to router.
func (g *NetworkGraph) AddRouteMap(router string, rmap *RouteMap) {
	g.get(router).routeMaps[rmap.Name] = rmap
}

// RouteMaps returns every route-map attached to router, by name.
func (g *NetworkGraph) RouteMaps(router string) map[string]*RouteMap {
	return g.get(router).routeMaps
}

// SetBGPImportRouteMap attaches an import policy for announcements
// heard from peer at local.
func (g *NetworkGraph) SetBGPImportRouteMap(local, peer, name string) {
	g.get(local).importRM[peer] = name
}

// BGPImportRouteMap returns the import policy name for (local, peer),
// or "" if none is configured.
func (g *NetworkGraph) BGPImportRouteMap(local, peer string) string {
	return g.get(local).importRM[peer]
}

// SetBGPExportRouteMap attaches an export policy applied to
// announcements local sends to peer.
func (g *NetworkGraph) SetBGPExportRouteMap(local, peer, name string) {
	g.get(local).exportRM[peer] = name
}

// BGPExportRouteMap returns the export policy name for (local, peer),
// or "" if none is configured.
func (g *NetworkGraph) BGPExportRouteMap(local, peer string) string {
	return g.get(local).exportRM[peer]
}

// AddIPPrefixList inserts or replaces a prefix-list attached to
// router.
func (g *NetworkGraph) AddIPPrefixList(router string, list *PrefixList) {
	g.get(router).prefixList[list.Name] = list
}

// IPPrefixLists returns every prefix-list attached to router.
func (g *NetworkGraph) IPPrefixLists(router string) map[string]*PrefixList {
	return g.get(router).prefixList
}

// AddCommunityList inserts or replaces a community-list attached to
// router.
func (g *NetworkGraph) AddCommunityList(router string, list *CommunityList) {
	g.get(router).commList[list.Name] = list
}

// CommunityLists returns every community-list attached to router.
func (g *NetworkGraph) CommunityLists(router string) map[string]*CommunityList {
	return g.get(router).commList
}

// String renders a short human-readable summary, used in debug logs.
func (g *NetworkGraph) String() string {
	return fmt.Sprintf("NetworkGraph(%d nodes, %d edges)", len(g.nodes), len(g.edges))
}
