// Package app provides the main application helper for the analyzer.
package app

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/options"
	"github.com/retroenv/snescfa/internal/rom"
)

// PrintInfo prints the information about the input file and its mapping.
func PrintInfo(logger *log.Logger, opts options.Program, mapping rom.Mapping, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Processing SNES ROM",
		log.String("file", opts.Input),
		log.Stringer("mapping", mapping),
		log.Int("size", size),
	)
	if size%0x8000 != 0 {
		logger.Warn("ROM size is not a multiple of 32 KB, the image may be truncated")
	}
}
