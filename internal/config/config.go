// Package config handles application configuration and setup
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/optable"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrNoTrackRoutine = errors.New("no routine to track configured")
	ErrInvalidOpTable = errors.New("invalid operation table")
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Address is a 24 bit CPU address that is stored as hex string in the
// configuration file.
type Address uint32

// ParseAddress parses an address in Go integer syntax. A leading $ marks
// a hex value, as does a value without prefix that contains hex letters.
func ParseAddress(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "$"); ok {
		s = "0x" + rest
	}

	value, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		hexValue, hexErr := strconv.ParseUint(s, 16, 32)
		if hexErr != nil {
			return 0, fmt.Errorf("%w '%s'", ErrInvalidAddress, s)
		}
		value = hexValue
	}
	if value > 0xFFFFFF {
		return 0, fmt.Errorf("%w '%s': exceeds 24 bit", ErrInvalidAddress, s)
	}
	return uint32(value), nil
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("0x%06X", uint32(a))), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	value, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = Address(value)
	return nil
}

// JSONSchema describes the string representation of the address.
func (Address) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Address",
		Description: "24 bit CPU address, for example 0xC0FF28 or $C0FF28",
		Pattern:     `^(0x|\$)?[0-9A-Fa-f]{1,6}$`,
	}
}

// OpTable is the location of the operation handler pointer table.
type OpTable struct {
	Base  Address `json:"base" jsonschema:"title=Base,description=Address of the first pointer"`
	Count int     `json:"count" jsonschema:"title=Count,description=Number of operations,minimum=1"`
	Bank  uint8   `json:"bank" jsonschema:"title=Bank,description=Bank of the handler routines"`
}

// Config is the report configuration file.
type Config struct {
	TrackRoutine Address   `json:"trackRoutine" jsonschema:"title=Tracked Routine,description=Routine whose calls are analyzed"`
	IgnoreList   []Address `json:"ignoreList,omitempty" jsonschema:"title=Ignore List,description=Handlers that are not analyzed"`
	OpTable      OpTable   `json:"opTable" jsonschema:"title=Operation Table,description=Location of the operation handler table"`
	Mapping      string    `json:"mapping,omitempty" jsonschema:"title=Mapping,description=ROM mapping,enum=hirom,enum=lorom"`
	MaxDomPasses int       `json:"maxDomPasses,omitempty" jsonschema:"title=Max Dominator Passes,description=Limit of dominator fixpoint passes,minimum=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	table := optable.Default()
	return Config{
		OpTable: OpTable{
			Base:  Address(table.Base),
			Count: table.Count,
			Bank:  table.Bank,
		},
	}
}

// Load reads a configuration file. Fields missing in the file keep their
// default values. An empty path returns the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.OpTable.Count <= 0 {
		return Config{}, fmt.Errorf("config file %s: %w: count %d", path, ErrInvalidOpTable, cfg.OpTable.Count)
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to generate a report.
func (c Config) Validate() error {
	if c.TrackRoutine == 0 {
		return ErrNoTrackRoutine
	}
	if c.OpTable.Count <= 0 {
		return fmt.Errorf("%w: count %d", ErrInvalidOpTable, c.OpTable.Count)
	}
	return nil
}

// Table returns the operation table of the configuration.
func (c Config) Table() optable.Table {
	return optable.Table{
		Base:  uint32(c.OpTable.Base),
		Count: c.OpTable.Count,
		Bank:  c.OpTable.Bank,
	}
}

// Ignored returns the ignore list as plain addresses.
func (c Config) Ignored() []uint32 {
	ignored := make([]uint32, 0, len(c.IgnoreList))
	for _, address := range c.IgnoreList {
		ignored = append(ignored, uint32(address))
	}
	return ignored
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	reflector := new(jsonschema.Reflector)
	data, err := json.MarshalIndent(reflector.Reflect(&Config{}), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling schema: %w", err)
	}
	return data, nil
}
