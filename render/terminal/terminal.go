// Package terminal presents a Machine's framebuffer in a terminal window
// using tcell, polling keyboard input into joypad button state.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/joswald/pocketcore"
	"github.com/joswald/pocketcore/joypad"
)

const (
	width     = 160
	height    = 144
	frameTime = time.Second / 60
)

// shadeChars maps a 2-bit palette index to a block character, from a full
// block to a blank cell. Drawn in a white foreground, that runs lightest to
// darkest, matching the suggested index->shade ordering in ppu.Color.
var shadeChars = []rune{'█', '▓', '▒', ' '}

// Renderer drives a Machine in real time, drawing its framebuffer to a
// terminal screen and feeding keyboard input back into the joypad.
type Renderer struct {
	screen  tcell.Screen
	machine *pocketcore.Machine
	running bool
}

// New creates and initializes a terminal screen for machine.
func New(machine *pocketcore.Machine) (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: initializing screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: initializing screen: %w", err)
	}

	return &Renderer{
		screen:  screen,
		machine: machine,
		running: true,
	}, nil
}

// Run drives the machine one frame at a time at roughly 60Hz until the
// user quits, the process receives a termination signal, or the machine
// stops (illegal opcode).
func (r *Renderer) Run() error {
	defer r.screen.Fini()

	r.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	r.screen.Clear()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	go r.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for r.running {
		select {
		case <-ticker.C:
			r.machine.RunFrame()
			if r.machine.IsStopped() {
				if err := r.machine.DecodeError(); err != nil {
					slog.Error("terminal: machine stopped", "error", err)
				}
				return nil
			}
			r.render()
			r.screen.Show()
		case <-signals:
			r.running = false
			slog.Info("terminal: received signal, stopping")
		}
	}

	return nil
}

func (r *Renderer) handleInput() {
	for r.running {
		ev := r.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				r.running = false
				return
			case tcell.KeyEnter:
				r.machine.SetButtonState(joypad.Start, true)
			case tcell.KeyRight:
				r.machine.SetButtonState(joypad.Right, true)
			case tcell.KeyLeft:
				r.machine.SetButtonState(joypad.Left, true)
			case tcell.KeyUp:
				r.machine.SetButtonState(joypad.Up, true)
			case tcell.KeyDown:
				r.machine.SetButtonState(joypad.Down, true)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'a':
					r.machine.SetButtonState(joypad.A, true)
				case 's':
					r.machine.SetButtonState(joypad.B, true)
				case 'q':
					r.machine.SetButtonState(joypad.Select, true)
				}
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
	}
}

func (r *Renderer) render() {
	termWidth, termHeight := r.screen.Size()
	if termWidth < width || termHeight < height+1 {
		r.drawTooSmall(termWidth, termHeight)
		return
	}

	r.screen.Clear()
	fb := r.machine.Framebuffer()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			index := fb.Get(x, y)
			r.screen.SetContent(x, y, shadeChars[index], nil, style)
		}
	}

	r.drawStatusLine(termWidth, termHeight)
}

func (r *Renderer) drawStatusLine(termWidth, termHeight int) {
	status := fmt.Sprintf("frame %d  instr %d  pc 0x%04X",
		r.machine.FrameCount(), r.machine.InstructionCount(), r.machine.PC())
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for i, ch := range status {
		if i >= termWidth {
			break
		}
		r.screen.SetContent(i, termHeight-1, ch, nil, style)
	}
}

func (r *Renderer) drawTooSmall(termWidth, termHeight int) {
	r.screen.Clear()
	msg := fmt.Sprintf("terminal too small: need at least %dx%d", width, height+1)
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	y := termHeight / 2
	for i, ch := range msg {
		if i >= termWidth {
			break
		}
		r.screen.SetContent(i, y, ch, nil, style)
	}
}
