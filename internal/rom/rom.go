// Package rom packages a firmware image into the fixed cartridge
// format consumed by the console: header, program region with the
// interrupt vector table at its tail and an opaque pattern region. The
// format itself is an external contract, this package only satisfies
// its fixed offsets.
package rom

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/m6502"
	"github.com/retroenv/retrogolib/arch/system/nes"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

const (
	prgSize = 0x8000 // two 16KB program banks mapped at the code base address
	chrSize = 0x2000 // one 8KB pattern bank

	prgBankSize = 0x4000
	chrBankSize = 0x2000
)

// Vectors holds the three handler addresses of the vector table, in
// table order: periodic frame signal, reset, unused signal.
type Vectors struct {
	FrameReady uint16
	Reset      uint16
	Unused     uint16
}

// DefaultVectors returns a vector table with all three handlers
// targeting the program entry at the code base address.
func DefaultVectors() Vectors {
	entry := uint16(nes.CodeBaseAddress)
	return Vectors{
		FrameReady: entry,
		Reset:      entry,
		Unused:     entry,
	}
}

// Image describes a firmware image to package.
type Image struct {
	// Program is the machine code blob, placed at the start of the
	// program region.
	Program []byte

	// Pattern is the opaque graphics blob, padded to the fixed
	// pattern region size.
	Pattern []byte

	Vectors Vectors

	Mapper uint16
	Mirror byte
}

// Build assembles the cartridge image bytes.
func Build(image Image) ([]byte, error) {
	prg, err := buildProgramRegion(image)
	if err != nil {
		return nil, err
	}

	if len(image.Pattern) > chrSize {
		return nil, fmt.Errorf("pattern region of %d bytes exceeds the %d byte maximum", len(image.Pattern), chrSize)
	}
	chr := make([]byte, chrSize)
	copy(chr, image.Pattern)

	control1, control2 := cartridge.ControlBytes(0, image.Mirror, image.Mapper, false)

	header := make([]byte, 16)
	copy(header, []byte{'N', 'E', 'S', 0x1A})
	header[4] = prgSize / prgBankSize
	header[5] = chrSize / chrBankSize
	header[6] = control1
	header[7] = control2

	data := make([]byte, 0, len(header)+len(prg)+len(chr))
	data = append(data, header...)
	data = append(data, prg...)
	data = append(data, chr...)
	return data, nil
}

// Save builds the cartridge image and writes it to the writer.
func Save(w io.Writer, image Image) error {
	data, err := Build(image)
	if err != nil {
		return fmt.Errorf("building image: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	return nil
}

// buildProgramRegion places the program at the code base address and
// the vector table at its fixed tail offsets.
func buildProgramRegion(image Image) ([]byte, error) {
	vectorsOffset := int(m6502.NMIAddress) - nes.CodeBaseAddress
	if len(image.Program) > vectorsOffset {
		return nil, fmt.Errorf("program of %d bytes overlaps the vector table at offset %d", len(image.Program), vectorsOffset)
	}

	if err := validateVector("frame-ready", image.Vectors.FrameReady); err != nil {
		return nil, err
	}
	if err := validateVector("reset", image.Vectors.Reset); err != nil {
		return nil, err
	}
	if err := validateVector("unused", image.Vectors.Unused); err != nil {
		return nil, err
	}

	prg := make([]byte, prgSize)
	copy(prg, image.Program)

	putWord(prg, int(m6502.NMIAddress)-nes.CodeBaseAddress, image.Vectors.FrameReady)
	putWord(prg, int(m6502.ResetAddress)-nes.CodeBaseAddress, image.Vectors.Reset)
	putWord(prg, int(m6502.IrqAddress)-nes.CodeBaseAddress, image.Vectors.Unused)
	return prg, nil
}

func validateVector(name string, address uint16) error {
	if int(address) < nes.CodeBaseAddress {
		return fmt.Errorf("%s vector %#04x points below the code base address %#04x", name, address, nes.CodeBaseAddress)
	}
	return nil
}

func putWord(data []byte, offset int, value uint16) {
	data[offset] = byte(value)
	data[offset+1] = byte(value >> 8)
}
