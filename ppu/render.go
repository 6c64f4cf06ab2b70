package ppu

import (
	"github.com/joswald/pocketcore/addr"
	"github.com/joswald/pocketcore/bit"
)

const spritesPerLine = 10

// renderScanline composes background, window, and sprites for the line that
// just finished pixel transfer, writing palette indices into the
// framebuffer.
func (p *PPU) renderScanline() {
	y := p.line
	if y < 0 || y >= visibleLines {
		return
	}

	if bit.IsSet(bgEnableBit, p.lcdc) {
		p.renderBackgroundLine(y)
	} else {
		for x := 0; x < FramebufferWidth; x++ {
			p.bgIndex[x] = 0
			p.fb.Set(x, y, 0)
		}
	}

	if bit.IsSet(windowEnableBit, p.lcdc) {
		p.renderWindowLine(y)
	}

	if bit.IsSet(objEnableBit, p.lcdc) {
		p.renderSpritesLine(y)
	}
}

func (p *PPU) vramAt(address uint16) byte {
	return p.vram[address-addr.VRAMStart]
}

// tileDataAddress resolves a tile number to the address of its row's low
// byte, honoring LCDC's addressing-mode bit: unsigned indexing from 0x8000,
// or signed indexing based at 0x9000.
func (p *PPU) tileDataAddress(tileNumber byte, rowInTile int, unsignedMode bool) uint16 {
	if unsignedMode {
		return addr.TileData0 + uint16(tileNumber)*16 + uint16(rowInTile)*2
	}
	return uint16(int32(addr.TileData2) + int32(int8(tileNumber))*16 + int32(rowInTile)*2)
}

func applyPalette(palette byte, index byte) byte {
	return (palette >> (index * 2)) & 0x03
}

func (p *PPU) renderBackgroundLine(y int) {
	bgY := byte(y) + p.scy
	tileRow := int(bgY / 8)
	rowInTile := int(bgY % 8)

	tileMapBase := addr.TileMap0
	if bit.IsSet(bgTileMapBit, p.lcdc) {
		tileMapBase = addr.TileMap1
	}
	unsignedMode := bit.IsSet(bgWindowData, p.lcdc)

	for x := 0; x < FramebufferWidth; x++ {
		bgX := byte(x) + p.scx
		tileCol := int(bgX / 8)
		colInTile := int(bgX % 8)

		tileMapAddr := tileMapBase + uint16(tileRow)*32 + uint16(tileCol)
		tileNumber := p.vramAt(tileMapAddr)
		tileDataAddr := p.tileDataAddress(tileNumber, rowInTile, unsignedMode)
		row := TileRow{Low: p.vramAt(tileDataAddr), High: p.vramAt(tileDataAddr + 1)}

		colorIndex := row.Pixel(colInTile)
		p.bgIndex[x] = colorIndex
		p.fb.Set(x, y, applyPalette(p.bgp, colorIndex))
	}
}

func (p *PPU) renderWindowLine(y int) {
	if int(p.wy) > y {
		return
	}
	startX := int(p.wx) - 7
	if startX >= FramebufferWidth {
		return
	}

	tileMapBase := addr.TileMap0
	if bit.IsSet(windowTileMapBit, p.lcdc) {
		tileMapBase = addr.TileMap1
	}
	unsignedMode := bit.IsSet(bgWindowData, p.lcdc)

	tileRow := p.windowLine / 8
	rowInTile := p.windowLine % 8
	rendered := false

	for winX := 0; winX < FramebufferWidth; winX++ {
		x := startX + winX
		if x < 0 {
			continue
		}
		if x >= FramebufferWidth {
			break
		}

		tileCol := winX / 8
		colInTile := winX % 8

		tileMapAddr := tileMapBase + uint16(tileRow)*32 + uint16(tileCol)
		tileNumber := p.vramAt(tileMapAddr)
		tileDataAddr := p.tileDataAddress(tileNumber, rowInTile, unsignedMode)
		row := TileRow{Low: p.vramAt(tileDataAddr), High: p.vramAt(tileDataAddr + 1)}

		colorIndex := row.Pixel(colInTile)
		p.bgIndex[x] = colorIndex
		p.fb.Set(x, y, applyPalette(p.bgp, colorIndex))
		rendered = true
	}

	if rendered {
		p.windowLine++
	}
}

func (p *PPU) renderSpritesLine(y int) {
	p.sprites.clear()

	height := 8
	if bit.IsSet(objSizeBit, p.lcdc) {
		height = 16
	}

	matched := 0
	for i := 0; i < 40 && matched < spritesPerLine; i++ {
		base := i * 4
		spriteY := int(p.oam[base]) - 16
		if y < spriteY || y >= spriteY+height {
			continue
		}
		matched++

		rawX := p.oam[base+1]
		spriteX := int(rawX) - 8
		tileNumber := p.oam[base+2]
		attrs := p.oam[base+3]
		if height == 16 {
			tileNumber &^= 0x01
		}

		rowInSprite := y - spriteY
		if bit.IsSet(6, attrs) { // Y flip
			rowInSprite = height - 1 - rowInSprite
		}
		tileDataAddr := addr.TileData0 + uint16(tileNumber)*16 + uint16(rowInSprite)*2
		row := TileRow{Low: p.vramAt(tileDataAddr), High: p.vramAt(tileDataAddr + 1)}

		xFlip := bit.IsSet(5, attrs)
		palette := p.obp0
		if bit.IsSet(4, attrs) {
			palette = p.obp1
		}
		behindBG := bit.IsSet(7, attrs)

		for col := 0; col < 8; col++ {
			screenX := spriteX + col
			if screenX < 0 || screenX >= FramebufferWidth {
				continue
			}

			var colorIndex byte
			if xFlip {
				colorIndex = row.PixelFlipped(col)
			} else {
				colorIndex = row.Pixel(col)
			}
			if colorIndex == 0 {
				continue
			}
			if behindBG && p.bgIndex[screenX] != 0 {
				continue
			}
			if !p.sprites.tryClaim(screenX, i, int(rawX)) {
				continue
			}

			p.fb.Set(screenX, y, applyPalette(palette, colorIndex))
		}
	}
}
