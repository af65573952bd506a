package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelfOriginatedInfoHasNoPrevNode(t *testing.T) {
	p := &PropagatedInfo{AnnName: "128.0.0.0/24", Path: []string{"Provider1"}}
	assert.True(t, p.SelfOriginated())
	assert.Equal(t, "Provider1", p.Node())
	assert.Equal(t, "", p.PrevNode())
}

func TestImportedInfoTracksPrevNode(t *testing.T) {
	p := &PropagatedInfo{AnnName: "128.0.0.0/24", Path: []string{"Provider1", "R1", "R2"}}
	assert.False(t, p.SelfOriginated())
	assert.Equal(t, "R2", p.Node())
	assert.Equal(t, "R1", p.PrevNode())
}

func TestKeyDistinguishesDifferentPathsToSameNode(t *testing.T) {
	a := &PropagatedInfo{AnnName: "128.0.0.0/24", Path: []string{"Provider1", "R1"}, Peer: "Provider1"}
	b := &PropagatedInfo{AnnName: "128.0.0.0/24", Path: []string{"Provider2", "R3", "R1"}, Peer: "R3"}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestKeyIsStableForIdenticalFields(t *testing.T) {
	a := &PropagatedInfo{AnnName: "128.0.0.0/24", Path: []string{"Provider1", "R1"}, Peer: "Provider1"}
	b := &PropagatedInfo{AnnName: "128.0.0.0/24", Path: []string{"Provider1", "R1"}, Peer: "Provider1"}
	assert.Equal(t, a.Key(), b.Key())
}
