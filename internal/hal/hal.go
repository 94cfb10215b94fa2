// Package hal binds symbolic register ports to the fixed memory mapped
// addresses of the console's video, audio and input peripherals.
package hal

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/system/nes/register"
)

// Memory is the bus that register accesses go through. Reads and writes
// are single non-blocking accesses with no buffering, whatever value is
// written is visible to the peripheral on the next access.
type Memory interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// Port identifies a peripheral register by role instead of address.
type Port uint8

// Ports of the video, audio and input peripherals.
const (
	VideoControl Port = iota // rendering and periodic signal control
	VideoMask                // rendering mask
	VideoStatus              // readiness flag, reading acknowledges the frame signal
	SpriteAddress
	SpriteData
	VideoScroll
	VideoAddress // two-write address latch, high byte first
	VideoData    // auto-incrementing data port
	ToneEnvelope // duty and volume configuration
	ToneSweep
	ToneTimerLow  // period latch, low byte first
	ToneTimerHigh // period latch, high byte second
	ChannelEnable
	Controller // strobe on write, serial bit reads

	portCount
)

var portNames = [portCount]string{
	VideoControl:  "video control",
	VideoMask:     "video mask",
	VideoStatus:   "video status",
	SpriteAddress: "sprite address",
	SpriteData:    "sprite data",
	VideoScroll:   "video scroll",
	VideoAddress:  "video address",
	VideoData:     "video data",
	ToneEnvelope:  "tone envelope",
	ToneSweep:     "tone sweep",
	ToneTimerLow:  "tone timer low",
	ToneTimerHigh: "tone timer high",
	ChannelEnable: "channel enable",
	Controller:    "controller",
}

func (p Port) String() string {
	if p >= portCount {
		return fmt.Sprintf("port(%d)", uint8(p))
	}
	return portNames[p]
}

// defaultAddresses maps every port to its console address. The map is
// compile time configuration, addresses never change at runtime.
var defaultAddresses = [portCount]uint16{
	VideoControl:  register.PPU_CTRL,
	VideoMask:     register.PPU_MASK,
	VideoStatus:   register.PPU_STATUS,
	SpriteAddress: register.OAM_ADDR,
	SpriteData:    register.OAM_DATA,
	VideoScroll:   register.PPU_SCROLL,
	VideoAddress:  register.PPU_ADDR,
	VideoData:     register.PPU_DATA,
	ToneEnvelope:  register.APU_PL1_VOL,
	ToneSweep:     register.APU_PL1_SWEEP,
	ToneTimerLow:  register.APU_PL1_LO,
	ToneTimerHigh: register.APU_PL1_HI,
	ChannelEnable: register.APU_SND_CHN,
	Controller:    register.JOYPAD1,
}

// Registers provides typed access to the peripheral registers of a
// memory bus. There is no logic at this layer, only the address map.
type Registers struct {
	mem       Memory
	addresses [portCount]uint16
}

// NewRegisters creates a register interface for the given bus using the
// default console address map.
func NewRegisters(mem Memory) *Registers {
	return &Registers{
		mem:       mem,
		addresses: defaultAddresses,
	}
}

// NewRegistersWithAddresses creates a register interface with a custom
// address map. Every port has to be mapped, a zero address is treated
// as an unmapped port and rejected here instead of at access time.
func NewRegistersWithAddresses(mem Memory, addresses map[Port]uint16) (*Registers, error) {
	r := &Registers{mem: mem}
	for port := Port(0); port < portCount; port++ {
		address, ok := addresses[port]
		if !ok || address == 0 {
			return nil, fmt.Errorf("port %s is not mapped to an address", port)
		}
		r.addresses[port] = address
	}
	return r, nil
}

// Address returns the bus address a port is bound to.
func (r *Registers) Address(port Port) uint16 {
	return r.addresses[port]
}

// Read reads the current value of a peripheral register.
func (r *Registers) Read(port Port) byte {
	return r.mem.Read(r.addresses[port])
}

// Write writes a value to a peripheral register.
func (r *Registers) Write(port Port, value byte) {
	r.mem.Write(r.addresses[port], value)
}
