// Package video implements the driver for the memory mapped video
// peripheral. All output goes through an address-then-data protocol:
// a target address is latched with two writes, following data writes
// auto-increment the peripheral's internal pointer.
package video

import (
	"fmt"

	"github.com/retroenv/nesgofirmware/internal/hal"
)

const (
	// AddressSpace is the size of the peripheral's internal memory,
	// latched addresses are 14 bit.
	AddressSpace = 0x4000

	// PaletteBase is the fixed start address of the palette area.
	PaletteBase = 0x3F00

	// PaletteSize is the number of entries written as one palette set.
	PaletteSize = 4

	// maxPaletteEntry is the highest valid entry of the fixed hardware
	// color table.
	maxPaletteEntry = 63
)

// Control register bits.
const (
	ControlEnableFrameSignal = 0x80 // unmask the periodic frame signal
)

// Status register bits.
const (
	StatusReady = 0x80 // frame readiness flag, cleared by reading
)

// Driver drives the video peripheral through its register ports.
type Driver struct {
	regs *hal.Registers
}

// New creates a new video driver on the given register interface.
func New(regs *hal.Registers) *Driver {
	return &Driver{regs: regs}
}

// DisableRendering writes zero to the control and mask registers,
// fully disabling rendering and masking the periodic frame signal.
func (d *Driver) DisableRendering() {
	d.regs.Write(hal.VideoControl, 0)
	d.regs.Write(hal.VideoMask, 0)
}

// EnableFrameSignal unmasks the periodic frame signal. Once enabled the
// signal can not be cancelled, only masked again.
func (d *Driver) EnableFrameSignal() {
	d.regs.Write(hal.VideoControl, ControlEnableFrameSignal)
}

// Ready reads the status register and reports whether the peripheral
// has asserted its readiness flag. Reading clears the flag, the call
// doubles as the acknowledge of the frame signal.
func (d *Driver) Ready() bool {
	return d.regs.Read(hal.VideoStatus)&StatusReady != 0
}

// LatchAddress latches a target address for following data writes by
// writing the high byte and then the low byte to the address port. The
// order is fixed by the peripheral's internal latch toggle.
func (d *Driver) LatchAddress(address uint16) error {
	if address >= AddressSpace {
		return fmt.Errorf("address %#04x is outside of the %#04x byte video address space", address, AddressSpace)
	}
	d.regs.Write(hal.VideoAddress, byte(address>>8))
	d.regs.Write(hal.VideoAddress, byte(address))
	return nil
}

// WriteStream writes the bytes to the data port in order. The
// peripheral auto-increments its internal pointer after each write, a
// prior LatchAddress call sets the starting position. An empty stream
// performs no writes.
func (d *Driver) WriteStream(data []byte) {
	for _, value := range data {
		d.regs.Write(hal.VideoData, value)
	}
}

// WritePalette latches the palette base address and writes the 4 entry
// palette set. Entries index the fixed hardware color table and have
// to be in the range 0 to 63.
func (d *Driver) WritePalette(palette [PaletteSize]byte) error {
	for i, entry := range palette {
		if entry > maxPaletteEntry {
			return fmt.Errorf("palette entry %d value %d exceeds the color table maximum of %d", i, entry, maxPaletteEntry)
		}
	}
	if err := d.LatchAddress(PaletteBase); err != nil {
		return fmt.Errorf("latching palette base: %w", err)
	}
	d.WriteStream(palette[:])
	return nil
}

// FillTiles latches the target address and writes the two tile indexes
// as a pair, repeated pairs times. The caller has to guarantee that the
// stream stays inside the peripheral's address space, a violation is
// rejected instead of wrapping into unrelated memory.
func (d *Driver) FillTiles(address uint16, tileA, tileB byte, pairs int) error {
	if pairs < 0 {
		return fmt.Errorf("negative tile pair count %d", pairs)
	}
	if int(address)+pairs*2 > AddressSpace {
		return fmt.Errorf("%d tile pairs starting at %#04x exceed the video address space", pairs, address)
	}
	if err := d.LatchAddress(address); err != nil {
		return fmt.Errorf("latching tile address: %w", err)
	}
	for i := 0; i < pairs; i++ {
		d.regs.Write(hal.VideoData, tileA)
		d.regs.Write(hal.VideoData, tileB)
	}
	return nil
}
