// Package periph simulates the console's memory mapped peripherals at
// register level: the video register file with warm-up readiness and
// address latch, the tone channel register file and the controller
// shift register. It implements the firmware's memory bus and models
// register effects only, never pixels or cycles.
package periph

import "github.com/retroenv/retrogolib/arch/system/nes/register"

// vramSize is the size of the video peripheral's internal memory.
const vramSize = 0x4000

// Write records one bus write in order of occurrence.
type Write struct {
	Address uint16
	Value   byte
}

// Device is a register level simulation of the console peripherals.
// It is owned by a single goroutine, the frame loop.
type Device struct {
	// video
	warmupReads int
	statusReads int
	warmed      bool
	ready       bool
	control     byte
	mask        byte
	vram        [vramSize]byte
	vramAddress uint16
	latchHigh   bool

	// audio
	envelope  byte
	sweep     byte
	timerLow  byte
	timerHigh byte
	channels  byte

	// controller
	buttonA  bool
	buttonB  bool
	strobing bool
	shift    byte

	writes []Write
}

// New creates a new device. The readiness flag asserts on the
// warmupReads-th status read, modeling the peripheral's post reset
// warm-up cycle count. A value of 1 is ready on the first read.
func New(warmupReads int) *Device {
	return &Device{
		warmupReads: warmupReads,
	}
}

// SetButtons sets the button levels sampled by the next strobe.
func (d *Device) SetButtons(a, b bool) {
	d.buttonA = a
	d.buttonB = b
}

// AssertFrameSignal raises the readiness flag, as the hardware does
// once per frame period. The flag is single shot, reading the status
// register clears it.
func (d *Device) AssertFrameSignal() {
	d.ready = true
}

// FrameSignalEnabled reports whether the firmware unmasked the
// periodic frame signal in the video control register.
func (d *Device) FrameSignalEnabled() bool {
	return d.control&0x80 != 0
}

// StatusReads returns the number of status register reads seen.
func (d *Device) StatusReads() int {
	return d.statusReads
}

// TonePeriod returns the 16 bit period currently latched into the
// channel timer.
func (d *Device) TonePeriod() uint16 {
	return uint16(d.timerHigh)<<8 | uint16(d.timerLow)
}

// Envelope returns the channel envelope configuration byte.
func (d *Device) Envelope() byte {
	return d.envelope
}

// ChannelsEnabled returns the channel enable register value.
func (d *Device) ChannelsEnabled() byte {
	return d.channels
}

// VRAM returns the byte at a video memory address.
func (d *Device) VRAM(address uint16) byte {
	return d.vram[address%vramSize]
}

// Writes returns all bus writes in order.
func (d *Device) Writes() []Write {
	return d.writes
}

// WritesTo returns the values written to one address, in order.
func (d *Device) WritesTo(address uint16) []byte {
	var values []byte
	for _, w := range d.writes {
		if w.Address == address {
			values = append(values, w.Value)
		}
	}
	return values
}

// Read implements the memory bus.
func (d *Device) Read(address uint16) byte {
	switch address {
	case register.PPU_STATUS:
		return d.readStatus()
	case register.JOYPAD1:
		return d.readController()
	default:
		return 0
	}
}

// Write implements the memory bus.
func (d *Device) Write(address uint16, value byte) {
	d.writes = append(d.writes, Write{Address: address, Value: value})

	switch address {
	case register.PPU_CTRL:
		d.control = value
	case register.PPU_MASK:
		d.mask = value
	case register.PPU_ADDR:
		d.writeAddressLatch(value)
	case register.PPU_DATA:
		d.vram[d.vramAddress%vramSize] = value
		d.vramAddress++
	case register.APU_PL1_VOL:
		d.envelope = value
	case register.APU_PL1_SWEEP:
		d.sweep = value
	case register.APU_PL1_LO:
		d.timerLow = value
	case register.APU_PL1_HI:
		d.timerHigh = value
	case register.APU_SND_CHN:
		d.channels = value
	case register.JOYPAD1:
		d.writeStrobe(value)
	}
}

// readStatus models the one shot readiness flag. The warm-up completes
// on the configured status read, afterwards the flag follows
// AssertFrameSignal. Reading clears the flag and resets the address
// latch toggle, as the hardware does.
func (d *Device) readStatus() byte {
	d.statusReads++
	if !d.warmed && d.statusReads >= d.warmupReads {
		d.warmed = true
		d.ready = true
	}

	var value byte
	if d.ready {
		value = 0x80
	}
	d.ready = false
	d.latchHigh = false
	return value
}

// writeAddressLatch takes the high byte on the first write and the low
// byte on the second, toggled by the internal latch state.
func (d *Device) writeAddressLatch(value byte) {
	if !d.latchHigh {
		d.vramAddress = uint16(value) << 8
		d.latchHigh = true
	} else {
		d.vramAddress |= uint16(value)
		d.latchHigh = false
	}
}

// writeStrobe latches the button levels into the shift register on the
// falling edge of the strobe. Button A shifts out first.
func (d *Device) writeStrobe(value byte) {
	if value&1 != 0 {
		d.strobing = true
		return
	}
	if d.strobing {
		d.strobing = false
		d.shift = 0
		if d.buttonA {
			d.shift |= 1 << 0
		}
		if d.buttonB {
			d.shift |= 1 << 1
		}
	}
}

// readController shifts one bit out of the controller shift register.
func (d *Device) readController() byte {
	bit := d.shift & 1
	d.shift >>= 1
	return bit
}
