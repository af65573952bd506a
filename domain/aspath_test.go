package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestASPathKeyIsOrderSensitive(t *testing.T) {
	assert.Equal(t, "100_200", ASPath{100, 200}.Key())
	assert.NotEqual(t, ASPath{100, 200}.Key(), ASPath{200, 100}.Key())
}

func TestASPathAppendContractsRepeatedTrailingAS(t *testing.T) {
	p := ASPath{100}
	assert.Equal(t, ASPath{100}, p.Append(100))
	assert.Equal(t, ASPath{100, 200}, p.Append(200))
}

func TestASPathReversedDoesNotMutateOriginal(t *testing.T) {
	p := ASPath{100, 200, 300}
	r := p.Reversed()
	assert.Equal(t, ASPath{300, 200, 100}, r)
	assert.Equal(t, ASPath{100, 200, 300}, p)
}

func TestASPathConcatAppendsWithoutContraction(t *testing.T) {
	p := ASPath{100, 200}
	out := p.Concat(ASPath{200, 300})
	assert.Equal(t, ASPath{100, 200, 200, 300}, out)
}

func TestOriginBetterOrdersIGPFirst(t *testing.T) {
	assert.True(t, OriginIGP.Better(OriginEBGP))
	assert.True(t, OriginIGP.Better(OriginIncomplete))
	assert.True(t, OriginEBGP.Better(OriginIncomplete))
	assert.False(t, OriginIncomplete.Better(OriginEBGP))
	assert.False(t, OriginEBGP.Better(OriginIGP))
	assert.False(t, OriginIGP.Better(OriginIGP))
}
