package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/smtctx"
	"github.com/grapefruit0/synet-plus/topology"
)

// twoProvidersTopology mirrors spec.md §8 scenario 1: R1, R2, R3 in
// AS100 full-meshed; Provider1 (AS400) peers R2; Provider2 (AS500)
// peers R3; Customer (AS600) peers R1. Router IDs are pinned so the
// decision ladder's clause 8 never needs to fire for this scenario.
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

	g.SetLoopback("R1", "10.0.0.1")
	g.SetLoopback("R2", "10.0.0.2")
	g.SetLoopback("R3", "10.0.0.3")
	g.SetLoopback("Provider1", "20.0.0.1")
	g.SetLoopback("Provider2", "20.0.0.2")
	g.SetLoopback("Customer", "20.0.0.3")

	g.SetBGPRouterID("R1", topology.ConcreteValue(1))
	g.SetBGPRouterID("R2", topology.ConcreteValue(2))
	g.SetBGPRouterID("R3", topology.ConcreteValue(3))

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

func preferProvider1Req() []domain.Req {
	return []domain.Req{
		&domain.PathOrderReq{
			Protocol: domain.BGP,
			Dst:      "128.0.0.0/24",
			Children: []domain.Req{
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider1", "R2", "R1"}},
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider2", "R3", "R1"}},
			},
		},
	}
}

func TestRunTwoProvidersSolvesWithoutConflict(t *testing.T) {
	g := twoProvidersTopology()
	o := New(g, nil)

	result, err := o.Run(preferProvider1Req(), smtctx.NewReferenceSolver())
	require.NoError(t, err)
	assert.Empty(t, result.UnmatchingOrders)
	assert.NotEmpty(t, result.Model)
}

func TestRunUnrealizableOrderReturnsConflictBeforeSolving(t *testing.T) {
	g := twoProvidersTopology()
	o := New(g, nil)

	reqs := []domain.Req{
		&domain.PathOrderReq{
			Protocol: domain.BGP,
			Dst:      "128.0.0.0/24",
			Children: []domain.Req{
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider1", "R2", "R1"}},
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider2", "R3", "R1"}},
			},
		},
		&domain.PathOrderReq{
			Protocol: domain.BGP,
			Dst:      "128.0.0.0/24",
			Children: []domain.Req{
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider2", "R3", "R1"}},
				&domain.PathReq{Protocol: domain.BGP, Dst: "128.0.0.0/24", Path: []string{"Provider1", "R2", "R1"}},
			},
		},
	}

	result, err := o.Run(reqs, smtctx.NewReferenceSolver())
	require.NoError(t, err)
	assert.NotEmpty(t, result.UnmatchingOrders)
}

func TestEmitRouterIDConstraintsRegistersDistinctAndPositive(t *testing.T) {
	g := twoProvidersTopology()
	o := New(g, nil)

	before := len(o.ctx.Constraints())
	o.emitRouterIDConstraints()
	assert.Greater(t, len(o.ctx.Constraints()), before)
}
