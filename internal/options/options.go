// Package options contains the program options.
package options

import (
	"github.com/retroenv/snescfa/internal/arch/w65816"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string // input SNES ROM file
	Output string // output file, stdout if empty
	Config string // JSON report configuration file
	Batch  string // glob pattern of ROM files to process
}

// Flags contains behavior options.
type Flags struct {
	Mapping      string // ROM mapping name, auto-detected if empty
	MaxDomPasses int    // dominator fixpoint pass limit, 0 for unlimited
	Debug        bool
	Quiet        bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Format      string
	NoAddresses bool
}

// Program options of the analyzer.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Routine defines the routine to analyze and the processor state at its
// entry.
type Routine struct {
	Address uint32
	Flags   w65816.Flags
}

// Output formats.
const (
	FormatText = "text"
	FormatDOT  = "dot"
	FormatJSON = "json"
)
