package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit0/synet-plus/domain"
)

func TestAddRouterAndAddPeerSetBGPAndRouterFlags(t *testing.T) {
	g := New()
	g.AddRouter("R1", 100)
	g.AddPeer("Provider1", 400)

	assert.True(t, g.IsRouter("R1"))
	assert.True(t, g.IsBGPEnabled("R1"))
	assert.False(t, g.IsRouter("Provider1"))
	assert.True(t, g.IsBGPEnabled("Provider1"))
	assert.Equal(t, 100, g.ASNum("R1"))
	assert.Equal(t, 400, g.ASNum("Provider1"))
}

func TestBGPNeighborsAreMutualAndSorted(t *testing.T) {
	g := New()
	g.AddRouter("R1", 100)
	g.AddRouter("R2", 100)
	g.AddRouter("R3", 100)
	g.AddBGPNeighbor("R1", "R3")
	g.AddBGPNeighbor("R1", "R2")

	assert.Equal(t, []string{"R2", "R3"}, g.BGPNeighbors("R1"))
	assert.Equal(t, []string{"R1"}, g.BGPNeighbors("R2"))
}

func TestRoutersIterExcludesPeers(t *testing.T) {
	g := New()
	g.AddRouter("R1", 100)
	g.AddPeer("Provider1", 400)

	assert.Equal(t, []string{"R1"}, g.RoutersIter())
	assert.Equal(t, []string{"Provider1", "R1"}, g.AllNodesIter())
}

func TestEdgeOSPFCostIsUndirected(t *testing.T) {
	g := New()
	g.AddRouter("R1", 100)
	g.AddRouter("R2", 100)
	g.SetEdge("R2", "R1", ConcreteValue(5))

	cost := g.EdgeOSPFCost("R1", "R2")
	require.True(t, cost.IsConcrete())
	assert.Equal(t, 5, cost.Val)
	assert.Equal(t, cost, g.EdgeOSPFCost("R2", "R1"))
}

func TestEdgeOSPFCostAbsentWhenNoEdgeExists(t *testing.T) {
	g := New()
	g.AddRouter("R1", 100)
	g.AddRouter("R2", 100)
	assert.True(t, g.EdgeOSPFCost("R1", "R2").IsAbsent())
}

func TestRouteMapAttachmentsAreKeyedByRouter(t *testing.T) {
	g := New()
	g.AddRouter("R1", 100)
	g.SetBGPImportRouteMap("R1", "Provider1", "IMPORT_FROM_PROVIDER1")
	g.SetBGPExportRouteMap("R1", "Provider1", "EXPORT_TO_PROVIDER1")

	assert.Equal(t, "IMPORT_FROM_PROVIDER1", g.BGPImportRouteMap("R1", "Provider1"))
	assert.Equal(t, "EXPORT_TO_PROVIDER1", g.BGPExportRouteMap("R1", "Provider1"))
	assert.Equal(t, "", g.BGPImportRouteMap("R1", "Provider2"))
}

func TestBGPAdvertiseAccumulatesPerNode(t *testing.T) {
	g := New()
	g.AddPeer("Provider1", 400)
	g.AddBGPAdvertise("Provider1", domain.ExternalAnnouncement{Prefix: "128.0.0.0/24", Peer: "Provider1"})
	g.AddBGPAdvertise("Provider1", domain.ExternalAnnouncement{Prefix: "129.0.0.0/24", Peer: "Provider1"})

	ads := g.BGPAdvertise("Provider1")
	require.Len(t, ads, 2)
	assert.Equal(t, "128.0.0.0/24", ads[0].Prefix)
	assert.Equal(t, "129.0.0.0/24", ads[1].Prefix)
}

func TestSetBGPRouterIDRoundTrips(t *testing.T) {
	g := New()
	g.AddRouter("R1", 100)
	g.SetBGPRouterID("R1", HoleValue[int]())
	assert.True(t, g.BGPRouterID("R1").IsHole())
}
