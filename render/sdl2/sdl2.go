//go:build sdl2

// Package sdl2 is an optional host-window presenter. It is entirely outside
// the core packages (cpu, mmu, ppu, timer, interrupt): it only ever reads a
// Machine's framebuffer and forwards key events into SetButtonState.
package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joswald/pocketcore"
	"github.com/joswald/pocketcore/joypad"
	"github.com/joswald/pocketcore/ppu"
)

const (
	screenWidth  = 160
	screenHeight = 144
	pixelScale   = 3
	bytesPerPixel = 4
)

// Window is a host window presenting a Machine's framebuffer via SDL2.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	machine  *pocketcore.Machine
	running  bool

	pixelBuffer []byte
}

// New creates (but does not yet open) a presenter for machine.
func New(machine *pocketcore.Machine) *Window {
	return &Window{machine: machine}
}

// Open initializes SDL2, creates the window/renderer/texture, and readies
// the presenter to run.
func (w *Window) Open() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl2: initializing: %w", err)
	}

	window, err := sdl.CreateWindow(
		"pocketcore",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		screenWidth*pixelScale, screenHeight*pixelScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl2: creating window: %w", err)
	}
	w.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: creating renderer: %w", err)
	}
	w.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING,
		screenWidth, screenHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: creating texture: %w", err)
	}
	w.texture = texture

	w.pixelBuffer = make([]byte, screenWidth*screenHeight*bytesPerPixel)
	w.running = true

	slog.Info("sdl2: window opened")
	return nil
}

// Close tears down SDL2 resources.
func (w *Window) Close() {
	if w.texture != nil {
		w.texture.Destroy()
	}
	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.window != nil {
		w.window.Destroy()
	}
	sdl.Quit()
}

// Run drives the machine one frame per call to RunFrame, presenting the
// framebuffer and polling keyboard events, until the window is closed or
// the machine stops.
func (w *Window) Run() error {
	defer w.Close()

	for w.running {
		w.pollEvents()
		if !w.running {
			break
		}

		w.machine.RunFrame()
		if w.machine.IsStopped() {
			if err := w.machine.DecodeError(); err != nil {
				slog.Error("sdl2: machine stopped", "error", err)
			}
			return nil
		}
		w.present(w.machine.Framebuffer())
	}
	return nil
}

func (w *Window) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.running = false
		case *sdl.KeyboardEvent:
			if button, ok := keyMapping[e.Keysym.Sym]; ok {
				w.machine.SetButtonState(button, e.Type == sdl.KEYDOWN)
			} else if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				w.running = false
			}
		}
	}
}

var keyMapping = map[sdl.Keycode]joypad.Button{
	sdl.K_RETURN: joypad.Start,
	sdl.K_a:      joypad.A,
	sdl.K_s:      joypad.B,
	sdl.K_q:      joypad.Select,
	sdl.K_UP:     joypad.Up,
	sdl.K_DOWN:   joypad.Down,
	sdl.K_LEFT:   joypad.Left,
	sdl.K_RIGHT:  joypad.Right,
}

func (w *Window) present(fb *ppu.FrameBuffer) {
	for y := 0; y < screenHeight; y++ {
		for x := 0; x < screenWidth; x++ {
			color := ppu.Color(fb.Get(x, y))
			i := (y*screenWidth + x) * bytesPerPixel
			// RGBA8888, byte order matching SDL's little-endian ABGR layout.
			w.pixelBuffer[i] = byte(color)
			w.pixelBuffer[i+1] = byte(color >> 8)
			w.pixelBuffer[i+2] = byte(color >> 16)
			w.pixelBuffer[i+3] = byte(color >> 24)
		}
	}

	w.texture.Update(nil, unsafe.Pointer(&w.pixelBuffer[0]), screenWidth*bytesPerPixel)
	w.renderer.Clear()
	w.renderer.Copy(w.texture, nil, nil)
	w.renderer.Present()
}
