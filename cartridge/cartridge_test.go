package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func headerImage(title string) []byte {
	data := make([]byte, 0x8000)
	copy(data[titleAddress:], title)
	data[cartridgeTypeAddress] = 0x01
	data[romSizeAddress] = 0x00
	data[ramSizeAddress] = 0x02
	return data
}

func TestNewFromImageParsesHeader(t *testing.T) {
	c := NewFromImage(headerImage("POCKETCORE"))

	assert.Equal(t, "POCKETCORE", c.Title)
	assert.Equal(t, byte(0x01), c.CartridgeType)
	assert.Equal(t, byte(0x02), c.RAMSizeCode)
}

func TestReadROMOutOfRangeReturnsFF(t *testing.T) {
	c := NewFromImage(make([]byte, 0x100))
	assert.Equal(t, byte(0xFF), c.ReadROM(0x7FFF))
}

func TestExternalRAMReadWriteRoundTrips(t *testing.T) {
	c := New()
	c.WriteRAM(0xA010, 0x42)
	assert.Equal(t, byte(0x42), c.ReadRAM(0xA010))
}

func TestEmptyTitleBecomesUntitled(t *testing.T) {
	c := NewFromImage(make([]byte, 0x8000))
	assert.Equal(t, "(Untitled)", c.Title)
}
