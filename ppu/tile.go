package ppu

import "github.com/joswald/pocketcore/bit"

// TileRow is one 8-pixel row of a tile, stored as the Game Boy's two
// bit-plane bytes: bit 7 of each byte is the leftmost pixel.
type TileRow struct {
	Low  byte
	High byte
}

// Pixel extracts the 2-bit color index (0-3) at pixelX (0 leftmost).
func (t TileRow) Pixel(pixelX int) byte {
	bitIndex := uint8(7 - pixelX)
	return rowPixel(t, bitIndex)
}

// PixelFlipped extracts the pixel as if the row were mirrored horizontally.
func (t TileRow) PixelFlipped(pixelX int) byte {
	bitIndex := uint8(pixelX)
	return rowPixel(t, bitIndex)
}

func rowPixel(t TileRow, bitIndex uint8) byte {
	var pixel byte
	if bit.IsSet(bitIndex, t.Low) {
		pixel |= 1
	}
	if bit.IsSet(bitIndex, t.High) {
		pixel |= 2
	}
	return pixel
}
