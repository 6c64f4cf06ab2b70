// Package cartridge parses and exposes ROM images as a flat, unbanked
// address space. Real bank switching (MBC1/2/3/5) is explicitly out of
// scope; this package only reads the header metadata a debugger or log line
// would want and serves ROM/external-RAM accesses directly out of the image.
package cartridge

import (
	"strings"
	"unicode"
)

const (
	titleAddress            = 0x0134
	titleLength             = 16
	cartridgeTypeAddress    = 0x0147
	romSizeAddress          = 0x0148
	ramSizeAddress          = 0x0149
	headerChecksumAddress   = 0x014D
)

// externalRAMSize is fixed at one 8KiB bank; games that declare a larger
// external RAM size than this are unsupported (no banking).
const externalRAMSize = 0x2000

// Cartridge is a flat, unbanked view of a ROM image plus a single fixed bank
// of external (cartridge) RAM.
type Cartridge struct {
	rom []byte
	ram [externalRAMSize]byte

	Title          string
	CartridgeType  byte
	ROMSizeCode    byte
	RAMSizeCode    byte
	HeaderChecksum byte
}

// New returns an empty cartridge, useful when no ROM is loaded (e.g. a
// headless boot-ROM-only run).
func New() *Cartridge {
	return &Cartridge{rom: make([]byte, 0x8000)}
}

// NewFromImage parses a ROM image and returns a Cartridge serving reads out
// of it directly; data is copied so callers may reuse their buffer.
func NewFromImage(data []byte) *Cartridge {
	rom := make([]byte, len(data))
	copy(rom, data)

	c := &Cartridge{rom: rom}

	if len(data) > titleAddress+titleLength {
		c.Title = cleanTitle(data[titleAddress : titleAddress+titleLength])
	}
	if len(data) > cartridgeTypeAddress {
		c.CartridgeType = data[cartridgeTypeAddress]
	}
	if len(data) > romSizeAddress {
		c.ROMSizeCode = data[romSizeAddress]
	}
	if len(data) > ramSizeAddress {
		c.RAMSizeCode = data[ramSizeAddress]
	}
	if len(data) > headerChecksumAddress {
		c.HeaderChecksum = data[headerChecksumAddress]
	}

	return c
}

// cleanTitle converts the null-padded header title into a printable string.
func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		switch {
		case b == 0:
			continue
		case unicode.IsPrint(rune(b)):
			runes = append(runes, rune(b))
		default:
			runes = append(runes, '?')
		}
	}
	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(Untitled)"
	}
	return title
}

// ReadROM reads a byte from 0x0000-0x7FFF.
func (c *Cartridge) ReadROM(address uint16) byte {
	if int(address) >= len(c.rom) {
		return 0xFF
	}
	return c.rom[address]
}

// ReadRAM reads a byte from external (cartridge) RAM, 0xA000-0xBFFF.
func (c *Cartridge) ReadRAM(address uint16) byte {
	return c.ram[address%externalRAMSize]
}

// WriteRAM writes a byte to external (cartridge) RAM. ROM writes are
// silently ignored: there is no MBC to interpret them as bank switches.
func (c *Cartridge) WriteRAM(address uint16, value byte) {
	c.ram[address%externalRAMSize] = value
}
