// Package ppu implements the pixel processing unit: the OAM-scan ->
// pixel-transfer -> H-blank -> V-blank scanline state machine, VRAM/OAM
// storage, background/window/sprite composition, and OAM DMA.
package ppu

import (
	"log/slog"

	"github.com/joswald/pocketcore/addr"
	"github.com/joswald/pocketcore/bit"
)

// Mode is the PPU's current scanline stage. Values match STAT bits 1-0.
type Mode uint8

const (
	ModeHBlank        Mode = 0
	ModeVBlank        Mode = 1
	ModeOAMScan       Mode = 2
	ModePixelTransfer Mode = 3
)

// Base durations, in CPU base cycles, per §4.3 of the specification.
const (
	oamScanCycles      = 80
	pixelTransferCycles = 172
	hblankCycles       = 204
	scanlineCycles     = oamScanCycles + pixelTransferCycles + hblankCycles // 456
	visibleLines       = 144
	totalLines         = 154
)

// STAT register bit positions.
const (
	statLYCInterrupt    = 6
	statOAMInterrupt    = 5
	statVBlankInterrupt = 4
	statHBlankInterrupt = 3
	statCoincidence     = 2
)

// LCDC register bit positions.
const (
	lcdEnable        = 7
	windowTileMapBit = 6
	windowEnableBit  = 5
	bgWindowData     = 4
	bgTileMapBit     = 3
	objSizeBit       = 2
	objEnableBit     = 1
	bgEnableBit      = 0
)

const dmaDurationCycles = 160

// PPU owns VRAM, OAM, the PPU registers, and the framebuffer. It is driven
// exclusively by the MMU, which routes 8000-9FFF, FE00-FE9F, FF40-FF4B, and
// FF46 to it.
type PPU struct {
	vram [0x2000]byte
	oam  [160]byte

	lcdc, stat, scy, scx, lyc, bgp, obp0, obp1, wy, wx byte

	mode        Mode
	line        int
	modeClock   int
	enabledPrev bool
	windowLine  int

	fb      *FrameBuffer
	sprites spritePriority
	bgIndex [FramebufferWidth]byte

	dmaCyclesLeft int

	// RequestInterrupt is wired by the MMU to its owned interrupt.Controller.
	RequestInterrupt func(addr.Interrupt)
}

// New returns a PPU powered on in OAM-scan mode at line 0.
func New() *PPU {
	return &PPU{
		fb:   NewFrameBuffer(),
		mode: ModeOAMScan,
	}
}

// FrameBuffer returns the PPU's output buffer of 2-bit palette indices.
func (p *PPU) FrameBuffer() *FrameBuffer {
	return p.fb
}

// DMAActive reports whether an OAM DMA transfer is still in its 160-cycle
// window; while true, the MMU must serve 0xFF for CPU reads outside HRAM.
func (p *PPU) DMAActive() bool {
	return p.dmaCyclesLeft > 0
}

// StartDMA copies 160 bytes from source (already shifted: value<<8) into OAM
// and begins the 160-cycle DMA-active window the MMU consults via
// DMAActive. read is supplied by the MMU, so the source range can be ROM,
// VRAM, external RAM, WRAM, or echo RAM.
func (p *PPU) StartDMA(source uint16, read func(uint16) byte) {
	for i := uint16(0); i < 160; i++ {
		p.oam[i] = read(source + i)
	}
	p.dmaCyclesLeft = dmaDurationCycles
}

// Read dispatches a CPU-visible read to VRAM, OAM, or a PPU register.
func (p *PPU) Read(address uint16) byte {
	switch {
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		return p.vram[address-addr.VRAMStart]
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		return p.oam[address-addr.OAMStart]
	case address == addr.LCDC:
		return p.lcdc
	case address == addr.STAT:
		return p.stat&0xFC | byte(p.mode)
	case address == addr.SCY:
		return p.scy
	case address == addr.SCX:
		return p.scx
	case address == addr.LY:
		return byte(p.line)
	case address == addr.LYC:
		return p.lyc
	case address == addr.BGP:
		return p.bgp
	case address == addr.OBP0:
		return p.obp0
	case address == addr.OBP1:
		return p.obp1
	case address == addr.WY:
		return p.wy
	case address == addr.WX:
		return p.wx
	default:
		return 0xFF
	}
}

// Write dispatches a CPU-visible write to VRAM, OAM, or a PPU register. LY is
// read-only from the CPU side and silently ignored here.
func (p *PPU) Write(address uint16, value byte) {
	switch {
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		p.vram[address-addr.VRAMStart] = value
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		p.oam[address-addr.OAMStart] = value
	case address == addr.LCDC:
		p.lcdc = value
	case address == addr.STAT:
		p.stat = value & 0x78
	case address == addr.SCY:
		p.scy = value
	case address == addr.SCX:
		p.scx = value
	case address == addr.LY:
		// read-only
	case address == addr.LYC:
		p.lyc = value
		p.compareLYC()
	case address == addr.BGP:
		p.bgp = value
	case address == addr.OBP0:
		p.obp0 = value
	case address == addr.OBP1:
		p.obp1 = value
	case address == addr.WY:
		p.wy = value
	case address == addr.WX:
		p.wx = value
	default:
		slog.Warn("ppu: write to unmapped register", "addr", address, "value", value)
	}
}

func (p *PPU) lcdEnabled() bool {
	return bit.IsSet(lcdEnable, p.lcdc)
}

func (p *PPU) requestInterrupt(kind addr.Interrupt) {
	if p.RequestInterrupt != nil {
		p.RequestInterrupt(kind)
	}
}

func (p *PPU) requestStatIfEnabled(statBit uint8) {
	if bit.IsSet(statBit, p.stat) {
		p.requestInterrupt(addr.LCDSTATInterrupt)
	}
}

// Tick advances the PPU's scanline state machine and the DMA countdown by
// cycles base clock cycles.
func (p *PPU) Tick(cycles int) {
	if p.dmaCyclesLeft > 0 {
		p.dmaCyclesLeft -= cycles
		if p.dmaCyclesLeft < 0 {
			p.dmaCyclesLeft = 0
		}
	}

	if !p.lcdEnabled() {
		p.mode = ModeHBlank
		p.line = 0
		p.modeClock = 0
		p.enabledPrev = false
		return
	}

	if !p.enabledPrev {
		p.mode = ModeOAMScan
		p.line = 0
		p.modeClock = 0
		p.enabledPrev = true
	}

	p.modeClock += cycles
	for p.step() {
	}
}

// step performs at most one mode transition; it returns true if another
// transition might be due immediately (the clock can outrun a single
// duration when an instruction's cycle count is large).
func (p *PPU) step() bool {
	switch p.mode {
	case ModeOAMScan:
		if p.modeClock < oamScanCycles {
			return false
		}
		p.modeClock -= oamScanCycles
		p.mode = ModePixelTransfer
		return true
	case ModePixelTransfer:
		if p.modeClock < pixelTransferCycles {
			return false
		}
		p.modeClock -= pixelTransferCycles
		p.renderScanline()
		p.mode = ModeHBlank
		p.requestStatIfEnabled(statHBlankInterrupt)
		return true
	case ModeHBlank:
		if p.modeClock < hblankCycles {
			return false
		}
		p.modeClock -= hblankCycles
		p.line++
		p.compareLYC()
		if p.line >= visibleLines {
			p.mode = ModeVBlank
			p.windowLine = 0
			p.requestInterrupt(addr.VBlankInterrupt)
			p.requestStatIfEnabled(statVBlankInterrupt)
		} else {
			p.mode = ModeOAMScan
			p.requestStatIfEnabled(statOAMInterrupt)
		}
		return true
	case ModeVBlank:
		if p.modeClock < scanlineCycles {
			return false
		}
		p.modeClock -= scanlineCycles
		p.line++
		if p.line >= totalLines {
			p.line = 0
			p.mode = ModeOAMScan
			p.compareLYC()
			p.requestStatIfEnabled(statOAMInterrupt)
		} else {
			p.compareLYC()
		}
		return true
	default:
		return false
	}
}

func (p *PPU) compareLYC() {
	if p.line == int(p.lyc) {
		p.stat = bit.Set(statCoincidence, p.stat)
		p.requestStatIfEnabled(statLYCInterrupt)
	} else {
		p.stat = bit.Reset(statCoincidence, p.stat)
	}
}
