// Package detector handles ROM mapping detection.
package detector

import (
	"encoding/binary"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/options"
	"github.com/retroenv/snescfa/internal/rom"
)

// Internal header locations and fields.
const (
	loROMHeader = 0x7FC0
	hiROMHeader = 0xFFC0

	mapModeOffset    = 0x15
	complementOffset = 0x1C
	checksumOffset   = 0x1E
	resetOffset      = 0x3C
	headerSize       = 0x40
)

// Detector handles ROM mapping detection from the internal cartridge header
// and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new mapping detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the ROM mapping from options or the image data.
// It first checks if a mapping is explicitly specified in options, otherwise
// scores both possible internal header locations. HiROM wins ties.
func (d *Detector) Detect(opts options.Program, data []byte) (rom.Mapping, error) {
	if opts.Mapping != "" {
		return rom.MappingFromString(opts.Mapping)
	}

	lo := scoreHeader(data, loROMHeader, false)
	hi := scoreHeader(data, hiROMHeader, true)

	var mapping rom.Mapping = rom.HiROM{}
	if lo > hi {
		mapping = rom.LoROM{}
	}

	d.logger.Debug("Auto-detected mapping",
		log.Stringer("mapping", mapping),
		log.Int("lorom_score", lo),
		log.Int("hirom_score", hi))
	return mapping, nil
}

// scoreHeader rates how likely the internal header is located at the offset.
func scoreHeader(data []byte, offset int, hiROM bool) int {
	if len(data) < offset+headerSize {
		return -1
	}
	header := data[offset : offset+headerSize]

	score := 0
	complement := binary.LittleEndian.Uint16(header[complementOffset:])
	checksum := binary.LittleEndian.Uint16(header[checksumOffset:])
	if complement^checksum == 0xFFFF {
		score += 2
	}

	mapMode := header[mapModeOffset] &^ 0x10 // ignore the FastROM bit
	if (hiROM && mapMode == 0x21) || (!hiROM && mapMode == 0x20) {
		score++
	}

	if reset := binary.LittleEndian.Uint16(header[resetOffset:]); reset >= 0x8000 {
		score++
	}
	return score
}
