// Package pocketcore wires the cpu, mmu, ppu, timer, and interrupt packages
// into a runnable machine and exposes the small surface a CLI or presenter
// needs: feed it a ROM, step or run-frame it, and read back the framebuffer.
package pocketcore

import (
	"fmt"
	"log/slog"

	"github.com/joswald/pocketcore/addr"
	"github.com/joswald/pocketcore/cartridge"
	"github.com/joswald/pocketcore/cpu"
	"github.com/joswald/pocketcore/joypad"
	"github.com/joswald/pocketcore/mmu"
	"github.com/joswald/pocketcore/ppu"
)

// cyclesPerFrame is the base-clock cycle count of one 160x144 video frame
// (154 scanlines x 456 cycles/line).
const cyclesPerFrame = 70224

// Machine is the root emulator: a CPU bound to an MMU that owns every
// peripheral. It is the single point of contact for a driver (CLI, test, or
// presenter) and never exposes package-internal state directly.
type Machine struct {
	cpu *cpu.CPU
	mmu *mmu.MMU

	instructionCount uint64
	frameCount       uint64
}

// NewMachine returns a Machine with registers at their post-boot-ROM
// power-up values, loaded with the given ROM image. It runs as though the
// boot ROM has already executed and handed control to the cartridge at
// 0x0100.
func NewMachine(romImage []byte) (*Machine, error) {
	if len(romImage) == 0 {
		return nil, fmt.Errorf("pocketcore: empty rom image")
	}

	m := mmu.New()
	m.LoadCartridge(cartridge.NewFromImage(romImage))

	machine := &Machine{
		cpu: cpu.New(m),
		mmu: m,
	}

	slog.Debug("pocketcore: machine created", "rom_bytes", len(romImage))
	return machine, nil
}

// NewMachineWithBootROM returns a Machine that will execute the given boot
// ROM image from 0x0000 before falling through to the cartridge, instead of
// starting with post-boot register values.
func NewMachineWithBootROM(romImage, bootROM []byte) (*Machine, error) {
	if len(romImage) == 0 {
		return nil, fmt.Errorf("pocketcore: empty rom image")
	}
	if len(bootROM) == 0 {
		return nil, fmt.Errorf("pocketcore: empty boot rom image")
	}

	m := mmu.New()
	m.LoadCartridge(cartridge.NewFromImage(romImage))
	m.LoadBootROM(bootROM)

	machine := &Machine{
		cpu: cpu.NewAtBootROM(m),
		mmu: m,
	}

	return machine, nil
}

// TickInstruction executes exactly one CPU unit of work (one instruction,
// one interrupt dispatch, or one HALT or STOP idle cycle) and ticks every peripheral by
// the resulting cycle count. It returns the cycles consumed.
func (mc *Machine) TickInstruction() int {
	cycles := mc.cpu.Step()
	mc.mmu.Tick(cycles)
	mc.instructionCount++
	return cycles
}

// RunFrame runs TickInstruction until at least one full video frame's worth
// of cycles (70224) has elapsed, or the core stops (illegal opcode). It
// returns the number of instructions executed this frame.
func (mc *Machine) RunFrame() int {
	total := 0
	executed := 0
	for total < cyclesPerFrame {
		if mc.IsStopped() {
			break
		}
		total += mc.TickInstruction()
		executed++
	}
	mc.frameCount++
	return executed
}

// Framebuffer returns the current 160x144 indexed framebuffer.
func (mc *Machine) Framebuffer() *ppu.FrameBuffer {
	return mc.mmu.PPU.FrameBuffer()
}

// IsStopped reports whether the CPU has hit an illegal opcode or a STOP
// instruction and will not execute any further instructions.
func (mc *Machine) IsStopped() bool {
	return mc.cpu.IsStopped()
}

// DecodeError returns the illegal-opcode error that stopped the core, or
// nil if IsStopped is false or the stop was a STOP instruction rather than
// a decode failure.
func (mc *Machine) DecodeError() *cpu.DecodeError {
	return mc.cpu.DecodeError()
}

// RequestInterrupt raises the named interrupt's IF bit, as a peripheral
// would. Exposed mainly for tests driving the core without a real ROM.
func (mc *Machine) RequestInterrupt(kind addr.Interrupt) {
	mc.mmu.Interrupts.Request(kind)
}

// SetButtonState reports a physical button's press state to the joypad,
// which latches it and requests the joypad interrupt on a press edge. Host
// input polling (keyboard, controller) lives entirely outside this package.
func (mc *Machine) SetButtonState(button joypad.Button, pressed bool) {
	mc.mmu.Joypad.SetButtonState(button, pressed)
}

// InstructionCount returns the running total of instructions executed.
func (mc *Machine) InstructionCount() uint64 { return mc.instructionCount }

// FrameCount returns the running total of frames completed by RunFrame.
func (mc *Machine) FrameCount() uint64 { return mc.frameCount }

// PC returns the CPU program counter, for diagnostics and presenters that
// display it (matching the teacher's debug HUD).
func (mc *Machine) PC() uint16 { return mc.cpu.PC() }
