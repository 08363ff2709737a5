// Package optable reads the operation handler pointer table of the script
// interpreter.
package optable

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/set"
)

// Default table location.
const (
	DefaultBase  = 0xC43128
	DefaultCount = 0x100
	DefaultBank  = 0xC4
)

var ErrInvalidIndex = errors.New("invalid operation index")

// PointerReader reads 16 bit pointers of a table and extends them with a
// bank byte.
type PointerReader interface {
	ReadAddrFromPtr(tableBase uint32, index int, bank byte) (uint32, error)
}

// Table describes a pointer table of operation handlers.
type Table struct {
	Base  uint32 `json:"base"`
	Count int    `json:"count"`
	Bank  byte   `json:"bank"`
}

// Entry is a single operation of the table.
type Entry struct {
	ID      int
	Address uint32
}

// Default returns the operation table of the game.
func Default() Table {
	return Table{
		Base:  DefaultBase,
		Count: DefaultCount,
		Bank:  DefaultBank,
	}
}

// Routine returns the handler address of the operation.
func (t Table) Routine(r PointerReader, id int) (uint32, error) {
	if id < 0 || id >= t.Count {
		return 0, fmt.Errorf("%w: got %X, count=%X", ErrInvalidIndex, id, t.Count)
	}

	address, err := r.ReadAddrFromPtr(t.Base, id, t.Bank)
	if err != nil {
		return 0, fmt.Errorf("reading operation %X: %w", id, err)
	}
	return address, nil
}

// Entries returns all operations of the table.
func (t Table) Entries(r PointerReader) ([]Entry, error) {
	entries := make([]Entry, 0, t.Count)
	for id := range t.Count {
		address, err := t.Routine(r, id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{ID: id, Address: address})
	}
	return entries, nil
}

// Routines returns the distinct handler addresses in table order.
func (t Table) Routines(r PointerReader) ([]uint32, error) {
	entries, err := t.Entries(r)
	if err != nil {
		return nil, err
	}

	seen := set.New[uint32]()
	var routines []uint32
	for _, entry := range entries {
		if seen.Contains(entry.Address) {
			continue
		}
		seen.Add(entry.Address)
		routines = append(routines, entry.Address)
	}
	return routines, nil
}
