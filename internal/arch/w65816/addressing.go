package w65816

import (
	"errors"
	"fmt"

	"github.com/retroenv/snescfa/internal/arch"
)

// ErrNotAJump is returned when a jump target is requested for an addressing
// mode that can not transfer control.
var ErrNotAJump = errors.New("addressing mode is not a jump")

// AddressingMode is the addressing mode of an opcode.
type AddressingMode uint8

// Addressing modes.
const (
	NoAddressing AddressingMode = iota
	ImmediateAddressing
	DirectAddressing
	DirectIndexedAddressing
	IndirectAddressing
	IndirectIndexedAddressing
	IndirectLongAddressing
	IndirectLongIndexedAddressing
	AbsoluteAddressing
	AbsoluteIndexedAddressing
	AbsoluteLongAddressing
	AbsoluteLongIndexedAddressing
	AbsoluteIndexedIndirectAddressing
	AccumulatorAddressing
	StackRelativeAddressing
	PCRelativeAddressing
	BlockMoveAddressing

	addressingModeCount
)

type operandReaderFunc func(src arch.ByteReader, op *Opcode, p Flags) (uint32, int, error)

type formatterFunc func(op *Opcode, value uint32, length int) (string, error)

// jumpTargetFunc returns the target address and whether it is statically known.
type jumpTargetFunc func(address, value, next uint32) (uint32, bool)

type modeHandler struct {
	name       string
	read       operandReaderFunc
	format     formatterFunc
	jumpTarget jumpTargetFunc // nil for modes that can not transfer control
}

var modeHandlers = [...]modeHandler{
	NoAddressing: {
		name:   "none",
		read:   readNone,
		format: formatNone,
	},
	ImmediateAddressing: {
		name:   "immediate",
		read:   readImmediate,
		format: formatImmediate,
	},
	DirectAddressing: {
		name:       "direct",
		read:       readByte,
		format:     formatPlain("$%02X"),
		jumpTarget: jumpDirect,
	},
	DirectIndexedAddressing: {
		name:   "direct_indexed",
		read:   readByte,
		format: formatIndexed("$%02X,%s"),
	},
	IndirectAddressing: {
		name:   "indirect",
		read:   readByte,
		format: formatPlain("($%02X)"),
	},
	IndirectIndexedAddressing: {
		name:   "indirect_indexed",
		read:   readByte,
		format: formatIndexed("($%02X),%s"),
	},
	IndirectLongAddressing: {
		name:   "indirect_long",
		read:   readByte,
		format: formatPlain("[$%02X]"),
	},
	IndirectLongIndexedAddressing: {
		name:   "indirect_long_indexed",
		read:   readByte,
		format: formatIndexed("[$%02X],%s"),
	},
	AbsoluteAddressing: {
		name:       "absolute",
		read:       readWord,
		format:     formatPlain("$%04X"),
		jumpTarget: jumpAbsolute,
	},
	AbsoluteIndexedAddressing: {
		name:   "absolute_indexed",
		read:   readWord,
		format: formatIndexed("$%04X,%s"),
	},
	AbsoluteLongAddressing: {
		name:       "absolute_long",
		read:       readLong,
		format:     formatPlain("$%06X"),
		jumpTarget: jumpAbsoluteLong,
	},
	AbsoluteLongIndexedAddressing: {
		name:   "absolute_long_indexed",
		read:   readLong,
		format: formatIndexed("$%06X,%s"),
	},
	AbsoluteIndexedIndirectAddressing: {
		name:       "absolute_indexed_indirect",
		read:       readWord,
		format:     formatIndexed("($%04X),%s"),
		jumpTarget: jumpComputed,
	},
	AccumulatorAddressing: {
		name:   "accumulator",
		read:   readNone,
		format: formatAccumulator,
	},
	StackRelativeAddressing: {
		name:   "stack_relative",
		read:   readByte,
		format: formatPlain("$%02X,S"),
	},
	PCRelativeAddressing: {
		name:       "pc_relative",
		read:       readByte,
		format:     formatPlain("$%02X"),
		jumpTarget: jumpRelative,
	},
	BlockMoveAddressing: {
		name:   "block_move",
		read:   readWord,
		format: formatBlockMove,
	},
}

// fails to compile if a mode was added without a handler entry
var _ = [1]struct{}{}[len(modeHandlers)-int(addressingModeCount)]

func (m AddressingMode) handler() *modeHandler {
	return &modeHandlers[m]
}

func (m AddressingMode) String() string {
	if m >= addressingModeCount {
		return fmt.Sprintf("AddressingMode(%d)", m)
	}
	return m.handler().name
}

// ReadOperand reads the operand of the opcode from the byte source and returns
// the raw value and the operand length in bytes. The width of immediate
// operands depends on the processor flags.
func (m AddressingMode) ReadOperand(src arch.ByteReader, op *Opcode, p Flags) (uint32, int, error) {
	value, length, err := m.handler().read(src, op, p)
	if err != nil {
		return 0, 0, fmt.Errorf("reading %s operand: %w", m, err)
	}
	return value, length, nil
}

// Format returns the display text of an operand. Modes without an operand
// return an empty string.
func (m AddressingMode) Format(op *Opcode, value uint32, length int) (string, error) {
	return m.handler().format(op, value, length)
}

// CanJump returns whether the mode supports jump target calculation.
func (m AddressingMode) CanJump() bool {
	return m.handler().jumpTarget != nil
}

// JumpTarget returns the target address of a control transfer with the given
// instruction address, raw operand value and address of the next instruction.
// The returned bool is false if the target is computed at runtime.
func (m AddressingMode) JumpTarget(address, value, next uint32) (uint32, bool, error) {
	fun := m.handler().jumpTarget
	if fun == nil {
		return 0, false, fmt.Errorf("%s: %w", m, ErrNotAJump)
	}
	target, ok := fun(address, value, next)
	return target, ok, nil
}

// ImmediateLength returns the immediate operand length of an opcode for the
// given processor flags.
func ImmediateLength(op *Opcode, p Flags) int {
	if op.Has(MDependant) && !p.M {
		return 2
	}
	if op.Has(XDependant) && !p.X {
		return 2
	}
	return 1
}

func readNone(arch.ByteReader, *Opcode, Flags) (uint32, int, error) {
	return 0, 0, nil
}

func readImmediate(src arch.ByteReader, op *Opcode, p Flags) (uint32, int, error) {
	if ImmediateLength(op, p) == 2 {
		return readWord(src, op, p)
	}
	return readByte(src, op, p)
}

func readByte(src arch.ByteReader, _ *Opcode, _ Flags) (uint32, int, error) {
	b, err := src.ReadU8()
	if err != nil {
		return 0, 0, err
	}
	return uint32(b), 1, nil
}

func readWord(src arch.ByteReader, _ *Opcode, _ Flags) (uint32, int, error) {
	w, err := src.ReadU16()
	if err != nil {
		return 0, 0, err
	}
	return uint32(w), 2, nil
}

func readLong(src arch.ByteReader, _ *Opcode, _ Flags) (uint32, int, error) {
	l, err := src.ReadU24()
	if err != nil {
		return 0, 0, err
	}
	return l, 3, nil
}

func formatNone(*Opcode, uint32, int) (string, error) {
	return "", nil
}

func formatAccumulator(*Opcode, uint32, int) (string, error) {
	return "A", nil
}

func formatImmediate(_ *Opcode, value uint32, length int) (string, error) {
	switch length {
	case 1:
		return fmt.Sprintf("#$%02X", value), nil
	case 2:
		return fmt.Sprintf("#$%04X", value), nil
	default:
		return "", fmt.Errorf("unexpected immediate length %d", length)
	}
}

func formatPlain(format string) formatterFunc {
	return func(_ *Opcode, value uint32, _ int) (string, error) {
		return fmt.Sprintf(format, value), nil
	}
}

func formatIndexed(format string) formatterFunc {
	return func(op *Opcode, value uint32, _ int) (string, error) {
		register, err := op.IndexRegister()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(format, value, register), nil
	}
}

func formatBlockMove(_ *Opcode, value uint32, _ int) (string, error) {
	return fmt.Sprintf("$%02X,$%02X", value&0xFF, value>>8), nil
}

// jumpDirect treats the direct page operand as offset to the next instruction.
func jumpDirect(_, value, next uint32) (uint32, bool) {
	return next + value, true
}

func jumpAbsolute(address, value, _ uint32) (uint32, bool) {
	return address&0xFF0000 | value, true
}

func jumpAbsoluteLong(_, value, _ uint32) (uint32, bool) {
	return value, true
}

func jumpRelative(_, value, next uint32) (uint32, bool) {
	offset := int32(int8(byte(value)))
	return uint32(int32(next) + offset), true
}

// jumpComputed handles indexed indirect calls whose target is only known at runtime.
func jumpComputed(_, _, _ uint32) (uint32, bool) {
	return 0, false
}
