package rom

import "fmt"

// Mapping converts between CPU addresses and offsets of the ROM image.
type Mapping interface {
	fmt.Stringer

	// ToOffset returns the image offset of a CPU address and whether the
	// address is mapped to the cartridge.
	ToOffset(address uint32) (int, bool)
	// ToAddress returns the canonical CPU address of an image offset.
	ToAddress(offset int) uint32
}

// HiROM maps the image linearly into banks $C0-$FF, mirrored in banks $40-$7D.
type HiROM struct{}

const hiROMBase = 0xC00000

func (HiROM) String() string {
	return "HiROM"
}

// ToOffset returns the image offset of a CPU address.
func (HiROM) ToOffset(address uint32) (int, bool) {
	bank := address >> 16
	switch {
	case bank >= 0xC0 && bank <= 0xFF:
		return int(address - hiROMBase), true
	case bank >= 0x40 && bank <= 0x7D:
		return int(address - 0x400000), true
	default:
		return 0, false
	}
}

// ToAddress returns the CPU address in banks $C0-$FF of an image offset.
func (HiROM) ToAddress(offset int) uint32 {
	return uint32(offset) + hiROMBase
}

// LoROM maps 32KB chunks of the image into the upper half of banks $80-$FF,
// mirrored in banks $00-$7D. Banks $7E-$7F are work RAM.
type LoROM struct{}

const loROMBankSize = 0x8000

func (LoROM) String() string {
	return "LoROM"
}

// ToOffset returns the image offset of a CPU address.
func (LoROM) ToOffset(address uint32) (int, bool) {
	bank := address >> 16
	low := address & 0xFFFF
	if low < 0x8000 || bank == 0x7E || bank == 0x7F {
		return 0, false
	}
	bank &= 0x7F
	return int(bank*loROMBankSize + low - 0x8000), true
}

// ToAddress returns the CPU address in banks $80-$FF of an image offset.
func (LoROM) ToAddress(offset int) uint32 {
	bank := uint32(offset/loROMBankSize) | 0x80
	return bank<<16 | 0x8000 + uint32(offset%loROMBankSize)
}

// MappingFromString returns the mapping for the given name.
func MappingFromString(name string) (Mapping, error) {
	switch name {
	case "hirom", "HiROM", "hi":
		return HiROM{}, nil
	case "lorom", "LoROM", "lo":
		return LoROM{}, nil
	default:
		return nil, fmt.Errorf("unsupported ROM mapping '%s'", name)
	}
}
