package propagation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/topology"
)

// twoProvidersTopology builds the worked example from spec.md §8
// scenario 1: R1, R2, R3 in AS100 full-meshed; Provider1 (AS400) peers
// R2; Provider2 (AS500) peers R3; Customer (AS600) peers R1.
func twoProvidersTopology() *topology.NetworkGraph {
	g := topology.New()
	g.AddRouter("R1", 100)
	g.AddRouter("R2", 100)
	g.AddRouter("R3", 100)
	g.AddPeer("Provider1", 400)
	g.AddPeer("Provider2", 500)
	g.AddPeer("Customer", 600)

	g.AddBGPNeighbor("R1", "R2")
	g.AddBGPNeighbor("R1", "R3")
	g.AddBGPNeighbor("R2", "R3")
	g.AddBGPNeighbor("R2", "Provider1")
	g.AddBGPNeighbor("R3", "Provider2")
	g.AddBGPNeighbor("R1", "Customer")

	g.AddBGPAdvertise("Provider1", domain.ExternalAnnouncement{
		Prefix: "128.0.0.0/24",
		Peer:   "Provider1",
		ASPath: domain.ASPath{5000},
	})
	g.AddBGPAdvertise("Provider2", domain.ExternalAnnouncement{
		Prefix: "128.0.0.0/24",
		Peer:   "Provider2",
		ASPath: domain.ASPath{3000, 5000},
	})
	g.AddBGPAdvertise("Customer", domain.ExternalAnnouncement{
		Prefix: "128.0.1.0/24",
		Peer:   "Customer",
	})
	return g
}

func TestBuildTwoProvidersPreferProvider1(t *testing.T) {
	g := twoProvidersTopology()
	reqs := []domain.Req{
		&domain.PathOrderReq{
			Protocol: domain.BGP,
			Dst:      "128.0.0.0/24",
			Children: []domain.Req{
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider1", "R2", "R1"}},
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider2", "R3", "R1"}},
			},
		},
	}

	results, unmatching, err := Build(reqs, g)
	require.NoError(t, err)
	assert.Empty(t, unmatching)

	res, ok := results["128.0.0.0/24"]
	require.True(t, ok)

	r1 := res.RouterDAG.node("R1")
	require.Len(t, r1.Order, 2)
	require.Len(t, r1.Order[0], 1)
	assert.Equal(t, Path{"Provider1", "R2", "R1"}, r1.Order[0][0])
	assert.Equal(t, Path{"Provider2", "R3", "R1"}, r1.Order[1][0])

	var sawProvider1Path bool
	for _, info := range r1.PathsInfo {
		if info.Path[0] == "Provider1" {
			sawProvider1Path = true
			assert.Equal(t, "R2", info.Peer)
			assert.Equal(t, "R2", info.Egress)
			assert.Equal(t, "Provider1", info.ExternalPeer)
		}
	}
	assert.True(t, sawProvider1Path)
}

func TestBuildUnrealizableOrder(t *testing.T) {
	g := twoProvidersTopology()
	preferP1 := &domain.PathOrderReq{
		Protocol: domain.BGP,
		Dst:      "128.0.0.0/24",
		Children: []domain.Req{
			&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider1", "R2", "R1"}},
			&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider2", "R3", "R1"}},
		},
	}
	preferP2 := &domain.PathOrderReq{
		Protocol: domain.BGP,
		Dst:      "128.0.0.0/24",
		Children: []domain.Req{
			&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider2", "R3", "R1"}},
			&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider1", "R2", "R1"}},
		},
	}

	_, unmatching, err := Build([]domain.Req{preferP1, preferP2}, g)
	require.NoError(t, err)
	assert.NotEmpty(t, unmatching)
}

func TestBuildMissingOriginAnnouncementIsError(t *testing.T) {
	g := twoProvidersTopology()
	reqs := []domain.Req{
		&domain.PathReq{Protocol: domain.BGP, Dst: "9.9.9.0/24", Path: []string{"Provider1", "R2", "R1"}},
	}

	_, _, err := Build(reqs, g)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingOriginAnnouncement)
}

func TestBuildKConnectedPathsUnionsIntoOneLayer(t *testing.T) {
	g := twoProvidersTopology()
	reqs := []domain.Req{
		&domain.KConnectedPathsReq{
			Protocol: domain.BGP,
			Dst:      "128.0.0.0/24",
			Children: []domain.Req{
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider1", "R2", "R1"}},
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider2", "R3", "R1"}},
			},
		},
	}

	results, unmatching, err := Build(reqs, g)
	require.NoError(t, err)
	assert.Empty(t, unmatching)

	r1 := results["128.0.0.0/24"].RouterDAG.node("R1")
	require.Len(t, r1.Order, 1)
	assert.Len(t, r1.Order[0], 2)
}
