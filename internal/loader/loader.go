// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/snescfa/internal/options"
)

// CopierHeaderSize is the size of the header that some copier devices
// prepend to the ROM image.
const CopierHeaderSize = 512

var ErrEmptyFile = errors.New("empty ROM file")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file and returns the image without copier header.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	return StripHeader(data)
}

// StripHeader removes a copier header. A header is present if the image size
// is not a multiple of 1 KB but has 512 extra bytes.
func StripHeader(data []byte) ([]byte, error) {
	if len(data)%1024 == CopierHeaderSize {
		data = data[CopierHeaderSize:]
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}
