//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/joswald/pocketcore"
)

// Window is a stub used when the sdl2 build tag is not set: go-sdl2 requires
// SDL2 development libraries to link, so the default build excludes it.
type Window struct{}

// New returns a stub presenter; Open always fails.
func New(_ *pocketcore.Machine) *Window { return &Window{} }

// Open reports that this build was compiled without SDL2 support.
func (w *Window) Open() error {
	return fmt.Errorf("sdl2: not available in this build, rebuild with -tags sdl2")
}

// Close does nothing.
func (w *Window) Close() {}

// Run reports the same build error as Open.
func (w *Window) Run() error {
	return w.Open()
}
