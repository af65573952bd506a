package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSketchZeroValueIsAbsent(t *testing.T) {
	var s Sketch[int]
	assert.True(t, s.IsAbsent())
	assert.False(t, s.IsHole())
	assert.False(t, s.IsConcrete())
}

func TestConcreteValueIsConcreteNotHole(t *testing.T) {
	s := ConcreteValue(42)
	assert.True(t, s.IsConcrete())
	assert.False(t, s.IsHole())
	assert.False(t, s.IsAbsent())
	assert.Equal(t, 42, s.Val)
}

func TestHoleValueIsHoleNotConcrete(t *testing.T) {
	s := HoleValue[string]()
	assert.True(t, s.IsHole())
	assert.False(t, s.IsConcrete())
	assert.False(t, s.IsAbsent())
}
