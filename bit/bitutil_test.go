package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.Equal(t, uint16(0xBEEF), Combine(0xBE, 0xEF))
	assert.Equal(t, uint16(0x0000), Combine(0x00, 0x00))
}

func TestLowHigh(t *testing.T) {
	assert.Equal(t, uint8(0xEF), Low(0xBEEF))
	assert.Equal(t, uint8(0xBE), High(0xBEEF))
}

func TestIsSet(t *testing.T) {
	assert.True(t, IsSet(0, 0x01))
	assert.False(t, IsSet(1, 0x01))
	assert.True(t, IsSet(7, 0x80))
}

func TestIsSet16(t *testing.T) {
	assert.True(t, IsSet16(9, 0x0200))
	assert.False(t, IsSet16(9, 0x01FF))
}

func TestSetReset(t *testing.T) {
	assert.Equal(t, uint8(0x81), Set(7, 0x01))
	assert.Equal(t, uint8(0x01), Reset(7, 0x81))
}

func TestSetTo(t *testing.T) {
	assert.Equal(t, uint8(0x81), SetTo(7, 0x01, true))
	assert.Equal(t, uint8(0x01), SetTo(7, 0x81, false))
}

func TestExtractBits(t *testing.T) {
	assert.Equal(t, uint8(0b101), ExtractBits(0b11010110, 6, 4))
	assert.Equal(t, uint8(0b11), ExtractBits(0xFF, 1, 0))
}
