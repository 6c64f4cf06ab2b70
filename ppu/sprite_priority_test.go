package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpritePriorityFirstClaimWins(t *testing.T) {
	var sp spritePriority
	sp.clear()

	assert.True(t, sp.tryClaim(10, 5, 20))
	assert.Equal(t, 5, sp.ownerOf(10))
}

func TestSpritePriorityLowerXWins(t *testing.T) {
	var sp spritePriority
	sp.clear()

	sp.tryClaim(10, 5, 20)
	assert.True(t, sp.tryClaim(10, 6, 15))
	assert.Equal(t, 6, sp.ownerOf(10))

	assert.False(t, sp.tryClaim(10, 7, 25))
	assert.Equal(t, 6, sp.ownerOf(10))
}

func TestSpritePriorityTiedXBreaksByOAMIndex(t *testing.T) {
	var sp spritePriority
	sp.clear()

	sp.tryClaim(10, 9, 20)
	assert.True(t, sp.tryClaim(10, 3, 20))
	assert.Equal(t, 3, sp.ownerOf(10))

	assert.False(t, sp.tryClaim(10, 12, 20))
	assert.Equal(t, 3, sp.ownerOf(10))
}
