// Package serial implements a minimal SB/SC serial port. No link cable is
// ever attached, so transfers have nothing to exchange with; instead the
// outgoing byte is logged, which is exactly what test ROMs (e.g. Blargg's)
// use the port for.
package serial

import (
	"log/slog"

	"github.com/joswald/pocketcore/addr"
	"github.com/joswald/pocketcore/bit"
)

// LogSink is a dummy serial device that logs outgoing bytes as text.
type LogSink struct {
	sb, sc         byte
	transferActive bool
	countdown      int
	line           []byte

	immediate bool
	defaultRX byte

	RequestInterrupt func()
}

type Option func(*LogSink)

// WithFixedTiming makes transfers complete after the DMG's real per-byte
// duration (~4096 cycles) instead of instantly.
func WithFixedTiming() Option {
	return func(s *LogSink) { s.immediate = false }
}

// New returns a logging serial port that completes transfers immediately by
// default.
func New(opts ...Option) *LogSink {
	s := &LogSink{immediate: true, defaultRX: 0xFF}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read dispatches SB or SC.
func (s *LogSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc
	default:
		return 0xFF
	}
}

// Write dispatches SB or SC; a write to SC with both the start and internal-
// clock bits set begins a transfer.
func (s *LogSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeStartTransfer()
	}
}

// Tick advances a fixed-timing transfer countdown; immediate-mode sinks have
// nothing to do here.
func (s *LogSink) Tick(cycles int) {
	if s.immediate || !s.transferActive {
		return
	}
	s.countdown -= cycles
	if s.countdown <= 0 {
		s.completeTransfer()
	}
}

func (s *LogSink) maybeStartTransfer() {
	if s.transferActive {
		return
	}
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			slog.Info("serial", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	if s.immediate {
		s.completeTransfer()
		return
	}

	s.transferActive = true
	s.countdown = 4096
}

func (s *LogSink) completeTransfer() {
	s.sb = s.defaultRX
	s.sc = bit.Reset(7, s.sc)
	s.transferActive = false
	if s.RequestInterrupt != nil {
		s.RequestInterrupt()
	}
}
