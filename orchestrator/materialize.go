package orchestrator

import (
	"github.com/grapefruit0/synet-plus/bgpencoder"
	"github.com/grapefruit0/synet-plus/routemap"
	"github.com/grapefruit0/synet-plus/topology"
)

// Materialize walks every router's attached route-maps and router ID,
// replacing each with its solved concrete form in graph. Route-map
// matches are copied unchanged, and prefix-lists and community-lists
// in graph are not touched.
func Materialize(graph *topology.NetworkGraph, rm *routemap.Encoder, ridCache *bgpencoder.RouterIDCache) {
	for _, router := range graph.RoutersIter() {
		for _, rmap := range graph.RouteMaps(router) {
			graph.AddRouteMap(router, rm.Materialize(rmap))
		}
		if resolved, ok := ridCache.Resolved(router); ok {
			graph.SetBGPRouterID(router, topology.ConcreteValue(resolved))
		}
	}
}
