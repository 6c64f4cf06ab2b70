package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTileRowPixelCombinesPlanes(t *testing.T) {
	row := TileRow{Low: 0b10000000, High: 0b10000000}
	assert.Equal(t, byte(3), row.Pixel(0))
	assert.Equal(t, byte(0), row.Pixel(1))
}

func TestTileRowPixelFlipped(t *testing.T) {
	row := TileRow{Low: 0b00000001, High: 0b00000000}
	assert.Equal(t, byte(1), row.Pixel(7))
	assert.Equal(t, byte(1), row.PixelFlipped(0))
}
