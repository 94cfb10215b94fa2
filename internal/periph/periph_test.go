package periph

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/system/nes/register"
	"github.com/retroenv/retrogolib/assert"
)

func TestStatusWarmup(t *testing.T) {
	t.Run("readiness asserts on the configured read", func(t *testing.T) {
		device := New(3)

		assert.Equal(t, byte(0), device.Read(register.PPU_STATUS))
		assert.Equal(t, byte(0), device.Read(register.PPU_STATUS))
		assert.Equal(t, byte(0x80), device.Read(register.PPU_STATUS))
		assert.Equal(t, 3, device.StatusReads())
	})

	t.Run("readiness flag is one shot", func(t *testing.T) {
		device := New(1)

		assert.Equal(t, byte(0x80), device.Read(register.PPU_STATUS))
		assert.Equal(t, byte(0), device.Read(register.PPU_STATUS))
	})

	t.Run("frame signal re-asserts the flag", func(t *testing.T) {
		device := New(1)
		device.Read(register.PPU_STATUS)

		device.AssertFrameSignal()
		assert.Equal(t, byte(0x80), device.Read(register.PPU_STATUS))
		assert.Equal(t, byte(0), device.Read(register.PPU_STATUS))
	})
}

func TestAddressLatch(t *testing.T) {
	t.Run("high byte first, data writes auto-increment", func(t *testing.T) {
		device := New(1)

		device.Write(register.PPU_ADDR, 0x21)
		device.Write(register.PPU_ADDR, 0x08)
		device.Write(register.PPU_DATA, 0xAA)
		device.Write(register.PPU_DATA, 0xBB)

		assert.Equal(t, byte(0xAA), device.VRAM(0x2108))
		assert.Equal(t, byte(0xBB), device.VRAM(0x2109))
	})

	t.Run("status read resets the latch toggle", func(t *testing.T) {
		device := New(1)

		device.Write(register.PPU_ADDR, 0x21)
		device.Read(register.PPU_STATUS)
		device.Write(register.PPU_ADDR, 0x3F)
		device.Write(register.PPU_ADDR, 0x00)
		device.Write(register.PPU_DATA, 0x0F)

		assert.Equal(t, byte(0x0F), device.VRAM(0x3F00))
	})
}

func TestControllerShift(t *testing.T) {
	t.Run("shifts button A out first", func(t *testing.T) {
		device := New(1)
		device.SetButtons(true, true)

		device.Write(register.JOYPAD1, 1)
		device.Write(register.JOYPAD1, 0)

		assert.Equal(t, byte(1), device.Read(register.JOYPAD1))
		assert.Equal(t, byte(1), device.Read(register.JOYPAD1))
		assert.Equal(t, byte(0), device.Read(register.JOYPAD1))
	})

	t.Run("latches the levels at the falling edge", func(t *testing.T) {
		device := New(1)
		device.SetButtons(true, false)

		device.Write(register.JOYPAD1, 1)
		device.SetButtons(false, true)
		device.Write(register.JOYPAD1, 0)

		assert.Equal(t, byte(0), device.Read(register.JOYPAD1))
		assert.Equal(t, byte(1), device.Read(register.JOYPAD1))
	})

	t.Run("falling edge without strobe keeps the register", func(t *testing.T) {
		device := New(1)
		device.SetButtons(true, false)

		device.Write(register.JOYPAD1, 1)
		device.Write(register.JOYPAD1, 0)
		device.SetButtons(false, true)
		device.Write(register.JOYPAD1, 0)

		assert.Equal(t, byte(1), device.Read(register.JOYPAD1))
	})
}

func TestToneRegisters(t *testing.T) {
	device := New(1)

	device.Write(register.APU_PL1_LO, 0xDF)
	device.Write(register.APU_PL1_HI, 0x01)
	device.Write(register.APU_PL1_VOL, 0xBF)
	device.Write(register.APU_SND_CHN, 0x01)

	assert.Equal(t, uint16(0x01DF), device.TonePeriod())
	assert.Equal(t, byte(0xBF), device.Envelope())
	assert.Equal(t, byte(0x01), device.ChannelsEnabled())
}

func TestWritesTo(t *testing.T) {
	device := New(1)

	device.Write(register.PPU_CTRL, 0x00)
	device.Write(register.PPU_DATA, 0x11)
	device.Write(register.PPU_DATA, 0x22)

	assert.Equal(t, []byte{0x11, 0x22}, device.WritesTo(register.PPU_DATA))
	assert.Equal(t, 3, len(device.Writes()))
}
