package propagation

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit0/synet-plus/topology"
)

// multihomedTransitTopology gives AS200 two routers (R2a, R2b) that
// both sit on the path from AS100's R1 into AS300's R3, so a blocked
// AS-level path 100->200->300 can only be fully realized at router
// granularity by fanning out through every router in AS200's zone.
func multihomedTransitTopology() *topology.NetworkGraph {
	g := topology.New()
	g.AddRouter("R1", 100)
	g.AddRouter("R2a", 200)
	g.AddRouter("R2b", 200)
	g.AddRouter("R3", 300)

	g.AddBGPNeighbor("R1", "R2a")
	g.AddBGPNeighbor("R1", "R2b")
	g.AddBGPNeighbor("R2a", "R2b")
	g.AddBGPNeighbor("R2a", "R3")
	g.AddBGPNeighbor("R2b", "R3")
	return g
}

func TestExtractIBGPZonesGroupsByASNumber(t *testing.T) {
	g := multihomedTransitTopology()
	zones := extractIBGPZones(g)

	require.ElementsMatch(t, []string{"R1"}, zones[100].sortedMembers())
	require.ElementsMatch(t, []string{"R2a", "R2b"}, zones[200].sortedMembers())
	require.ElementsMatch(t, []string{"R3"}, zones[300].sortedMembers())
}

func TestRealizeRouterPathsFansOutThroughEveryZoneMember(t *testing.T) {
	g := multihomedTransitTopology()
	zones := extractIBGPZones(g)

	got := realizeRouterPaths(Path{"100", "200", "300"}, zones, g)
	sort.Slice(got, func(i, j int) bool { return got[i].key() < got[j].key() })

	want := []Path{
		{"R1", "R2a", "R3"},
		{"R1", "R2b", "R3"},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("realizeRouterPaths mismatch (-want +got):\n%s", diff)
	}
}
