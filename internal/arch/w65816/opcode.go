// Package w65816 provides the 65816 opcode table and operand decoding.
package w65816

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownOpcode is returned for an opcode byte that is not part of the table.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrDuplicateMnemonic is returned when two opcode groups share a mnemonic.
	ErrDuplicateMnemonic = errors.New("mnemonic is already registered")
	// ErrDuplicateOpcode is returned when an opcode byte is registered twice.
	ErrDuplicateOpcode = errors.New("opcode is already registered")
	// ErrNotIndexed is returned when formatting an indexed addressing mode for an
	// opcode that carries neither index attribute.
	ErrNotIndexed = errors.New("opcode not indexed")
)

// OpcodeDesc describes a single opcode byte of a mnemonic group.
type OpcodeDesc struct {
	Value      byte
	Addressing AddressingMode
	Attributes Attribute
}

// Group lists all opcodes that share a mnemonic. The group attributes are
// merged into the attributes of every opcode of the group.
type Group struct {
	Mnemonic   string
	Attributes Attribute
	Opcodes    []OpcodeDesc
}

// Opcode is a fully resolved opcode descriptor.
type Opcode struct {
	Value      byte
	Mnemonic   string
	Addressing AddressingMode
	Attributes Attribute
}

// Has returns whether the opcode carries all given attributes.
func (o *Opcode) Has(attr Attribute) bool {
	return o.Attributes.Has(attr)
}

// IsControlTransfer returns whether the opcode can transfer control to a
// target address.
func (o *Opcode) IsControlTransfer() bool {
	return o.Attributes.HasAny(EnterSub | Branch | Jump)
}

// IndexRegister returns the name of the register used by indexed addressing.
func (o *Opcode) IndexRegister() (string, error) {
	switch {
	case o.Has(IndexedX):
		return "X", nil
	case o.Has(IndexedY):
		return "Y", nil
	default:
		return "", fmt.Errorf("%s $%02X: %w", o.Mnemonic, o.Value, ErrNotIndexed)
	}
}

// Table maps opcode bytes to their descriptors. It is immutable after creation.
type Table struct {
	opcodes [256]*Opcode
	count   int
}

// NewTable builds an opcode table from the given groups and validates that
// every mnemonic and every opcode byte is registered only once.
func NewTable(groups []Group) (*Table, error) {
	t := &Table{}
	mnemonics := make(map[string]struct{}, len(groups))

	for _, group := range groups {
		if _, ok := mnemonics[group.Mnemonic]; ok {
			return nil, fmt.Errorf("%s: %w", group.Mnemonic, ErrDuplicateMnemonic)
		}
		mnemonics[group.Mnemonic] = struct{}{}

		for _, desc := range group.Opcodes {
			if t.opcodes[desc.Value] != nil {
				return nil, fmt.Errorf("%02X: %w", desc.Value, ErrDuplicateOpcode)
			}

			t.opcodes[desc.Value] = &Opcode{
				Value:      desc.Value,
				Mnemonic:   group.Mnemonic,
				Addressing: desc.Addressing,
				Attributes: group.Attributes | desc.Attributes,
			}
			t.count++
		}
	}

	return t, nil
}

// Lookup returns the descriptor of the given opcode byte.
func (t *Table) Lookup(b byte) (*Opcode, error) {
	op := t.opcodes[b]
	if op == nil {
		return nil, fmt.Errorf("opcode %02X: %w", b, ErrUnknownOpcode)
	}
	return op, nil
}

// Len returns the number of registered opcodes.
func (t *Table) Len() int {
	return t.count
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return NewTable(Groups)
})

// DefaultTable returns the table built from Groups. It is built once and
// shared, callers must not modify the returned descriptors.
func DefaultTable() (*Table, error) {
	return defaultTable()
}
