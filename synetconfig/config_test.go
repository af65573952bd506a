package synetconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit0/synet-plus/domain"
)

const sampleYAML = `
communities:
  - "100:1"
routers:
  - name: R1
    asn: 100
    loopback: 10.0.0.1
    router_id: HOLE
    neighbors: [R2]
  - name: R2
    asn: 100
    loopback: 10.0.0.2
    router_id: 2
    neighbors: [R1, Provider1]
peers:
  - name: Provider1
    asn: 400
    loopback: 20.0.0.1
    neighbors: [R2]
    advertise:
      - prefix: 128.0.0.0/24
        as_path: [5000]
edges:
  - a: R1
    b: R2
    cost: HOLE
requirements:
  - kind: path
    dst: 128.0.0.0/24
    path: [Provider1, R2, R1]
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sketch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadBuildsGraphReqsAndCommunities(t *testing.T) {
	path := writeTemp(t, sampleYAML)

	graph, reqs, communities, err := Load(path)
	require.NoError(t, err)

	assert.True(t, graph.IsRouter("R1"))
	assert.True(t, graph.IsBGPEnabled("Provider1"))
	assert.False(t, graph.IsRouter("Provider1"))
	assert.True(t, graph.BGPRouterID("R1").IsHole())
	assert.Equal(t, 2, graph.BGPRouterID("R2").Val)
	assert.True(t, graph.EdgeOSPFCost("R1", "R2").IsHole())

	require.Len(t, reqs, 1)
	pathReq, ok := reqs[0].(*domain.PathReq)
	require.True(t, ok)
	assert.Equal(t, []string{"Provider1", "R2", "R1"}, pathReq.Path)

	require.Len(t, communities, 1)
	assert.Equal(t, domain.Community("100:1"), communities[0])

	adverts := graph.BGPAdvertise("Provider1")
	require.Len(t, adverts, 1)
	assert.Equal(t, "128.0.0.0/24", adverts[0].Prefix)
	assert.Equal(t, domain.ASPath{5000}, adverts[0].ASPath)
}

func TestLoadRejectsMissingRequiredField(t *testing.T) {
	path := writeTemp(t, `
routers:
  - asn: 100
    loopback: 10.0.0.1
`)
	_, _, _, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	_, _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
