// Package mmu implements the memory bus: region-dispatched reads/writes
// covering the cartridge, VRAM/OAM (owned by the PPU), WRAM, echo RAM, the
// unused range, I/O registers (timer, serial, joypad, interrupts, PPU), and
// HRAM. The MMU owns the PPU, timer, and interrupt controller outright; the
// CPU only ever talks to the MMU.
package mmu

import (
	"log/slog"

	"github.com/joswald/pocketcore/addr"
	"github.com/joswald/pocketcore/cartridge"
	"github.com/joswald/pocketcore/interrupt"
	"github.com/joswald/pocketcore/joypad"
	"github.com/joswald/pocketcore/ppu"
	"github.com/joswald/pocketcore/serial"
	"github.com/joswald/pocketcore/timer"
)

const bootROMSize = 0x0100

// MMU is the system bus. It dispatches every CPU-visible address to the
// region or peripheral that owns it.
type MMU struct {
	cart *cartridge.Cartridge

	wram [0x2000]byte
	hram [0x007F]byte

	bootROM     [bootROMSize]byte
	bootMapped  bool
	hasBootROM  bool

	PPU         *ppu.PPU
	Timer       *timer.Timer
	Interrupts  *interrupt.Controller
	Serial      *serial.LogSink
	Joypad      *joypad.Joypad
}

// New returns an MMU with no cartridge and no boot ROM mapped; ROM reads
// fall through to whatever was loaded via LoadCartridge.
func New() *MMU {
	m := &MMU{
		cart:       cartridge.New(),
		PPU:        ppu.New(),
		Timer:      timer.New(),
		Interrupts: interrupt.New(),
		Serial:     serial.New(),
		Joypad:     joypad.New(),
	}

	m.PPU.RequestInterrupt = m.Interrupts.Request
	m.Timer.RequestInterrupt = func() { m.Interrupts.Request(addr.TimerInterrupt) }
	m.Serial.RequestInterrupt = func() { m.Interrupts.Request(addr.SerialInterrupt) }
	m.Joypad.RequestInterrupt = func() { m.Interrupts.Request(addr.JoypadInterrupt) }

	return m
}

// LoadCartridge installs a parsed cartridge image, replacing any previous
// one.
func (m *MMU) LoadCartridge(cart *cartridge.Cartridge) {
	m.cart = cart
}

// LoadBootROM installs a boot ROM image and maps it over 0x0000-0x00FF
// until the program writes to addr.BootDisable.
func (m *MMU) LoadBootROM(data []byte) {
	n := copy(m.bootROM[:], data)
	m.hasBootROM = n > 0
	m.bootMapped = m.hasBootROM
}

// PendingInterrupts returns the IE&IF&0x1F mask the CPU checks every step.
func (m *MMU) PendingInterrupts() uint8 {
	return m.Interrupts.Pending()
}

// AcknowledgeInterrupt clears the serviced interrupt's IF bit.
func (m *MMU) AcknowledgeInterrupt(kind addr.Interrupt) {
	m.Interrupts.Acknowledge(kind)
}

// Tick advances the timer, serial port, and PPU by cycles base clock
// cycles. It does not itself run the CPU; the driver calls this once per
// CPU instruction with that instruction's cycle count.
func (m *MMU) Tick(cycles int) {
	m.Timer.Tick(cycles)
	m.Serial.Tick(cycles)
	m.PPU.Tick(cycles)
}

// Read returns the byte at address as the CPU would observe it, including
// the 0xFF DMA-lockout behavior and echo-RAM aliasing.
func (m *MMU) Read(address uint16) byte {
	if m.PPU.DMAActive() && address < addr.HRAMStart {
		return 0xFF
	}

	switch {
	case m.bootMapped && address <= addr.BootROMEnd:
		return m.bootROM[address]
	case address <= addr.CartridgeEnd:
		return m.cart.ReadROM(address)
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		return m.PPU.Read(address)
	case address >= addr.ExternalRAMStart && address <= addr.ExternalRAMEnd:
		return m.cart.ReadRAM(address)
	case address >= addr.WRAMStart && address <= addr.WRAMEnd:
		return m.wram[address-addr.WRAMStart]
	case address >= addr.EchoStart && address <= addr.EchoEnd:
		return m.wram[address-addr.EchoStart]
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		return m.PPU.Read(address)
	case address >= addr.UnusedStart && address <= addr.UnusedEnd:
		return 0xFF
	case address == addr.IE:
		return m.Interrupts.ReadIE()
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		return m.hram[address-addr.HRAMStart]
	case address >= addr.IOStart && address <= addr.IOEnd:
		return m.readIO(address)
	default:
		slog.Warn("mmu: read from unmapped address", "addr", address)
		return 0xFF
	}
}

// Write stores value at address, routing to the owning peripheral.
func (m *MMU) Write(address uint16, value byte) {
	if m.PPU.DMAActive() && address < addr.HRAMStart {
		return
	}

	switch {
	case m.bootMapped && address <= addr.BootROMEnd:
		// boot ROM is read-only once mapped
	case address <= addr.CartridgeEnd:
		// no MBC: ROM writes are no-ops
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		m.PPU.Write(address, value)
	case address >= addr.ExternalRAMStart && address <= addr.ExternalRAMEnd:
		m.cart.WriteRAM(address, value)
	case address >= addr.WRAMStart && address <= addr.WRAMEnd:
		m.wram[address-addr.WRAMStart] = value
	case address >= addr.EchoStart && address <= addr.EchoEnd:
		m.wram[address-addr.EchoStart] = value
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		m.PPU.Write(address, value)
	case address >= addr.UnusedStart && address <= addr.UnusedEnd:
		// unused: writes are dropped
	case address == addr.IE:
		m.Interrupts.WriteIE(value)
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		m.hram[address-addr.HRAMStart] = value
	case address >= addr.IOStart && address <= addr.IOEnd:
		m.writeIO(address, value)
	default:
		slog.Warn("mmu: write to unmapped address", "addr", address, "value", value)
	}
}

func (m *MMU) readIO(address uint16) byte {
	switch {
	case address == addr.P1:
		return m.Joypad.Read()
	case address == addr.SB || address == addr.SC:
		return m.Serial.Read(address)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return m.Timer.Read(address)
	case address == addr.IF:
		return m.Interrupts.ReadIF()
	case address >= addr.LCDC && address <= addr.WX:
		return m.PPU.Read(address)
	default:
		slog.Warn("mmu: read from unmapped io register", "addr", address)
		return 0xFF
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch {
	case address == addr.P1:
		m.Joypad.Write(value)
	case address == addr.SB || address == addr.SC:
		m.Serial.Write(address, value)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		m.Timer.Write(address, value)
	case address == addr.IF:
		m.Interrupts.WriteIF(value)
	case address == addr.DMA:
		m.PPU.StartDMA(uint16(value)<<8, m.dmaSourceRead)
	case address == addr.BootDisable:
		m.bootMapped = false
	case address >= addr.LCDC && address <= addr.WX:
		m.PPU.Write(address, value)
	default:
		slog.Warn("mmu: write to unmapped io register", "addr", address, "value", value)
	}
}

// dmaSourceRead serves the DMA's byte-by-byte source reads. It bypasses the
// DMA-active 0xFF lockout (the transfer is reading itself) and serves boot
// ROM, cartridge ROM, VRAM, external RAM, WRAM, and echo RAM the same way
// Read does; any source address at 0xFE00 or above reads 0xFF.
func (m *MMU) dmaSourceRead(address uint16) byte {
	switch {
	case m.bootMapped && address <= addr.BootROMEnd:
		return m.bootROM[address]
	case address <= addr.CartridgeEnd:
		return m.cart.ReadROM(address)
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		return m.PPU.Read(address)
	case address >= addr.ExternalRAMStart && address <= addr.ExternalRAMEnd:
		return m.cart.ReadRAM(address)
	case address >= addr.WRAMStart && address <= addr.WRAMEnd:
		return m.wram[address-addr.WRAMStart]
	case address >= addr.EchoStart && address <= addr.EchoEnd:
		return m.wram[address-addr.EchoStart]
	default:
		return 0xFF
	}
}
