package disasm

import (
	"errors"
	"fmt"

	"github.com/retroenv/snescfa/internal/arch/w65816"
)

// ErrUnresolvedComputedJump is returned when a static target is requested for
// a control transfer whose target is computed at runtime.
var ErrUnresolvedComputedJump = errors.New("jump target is computed at runtime")

// Instruction is a single decoded instruction.
type Instruction struct {
	Address    uint32
	Opcode     *w65816.Opcode
	Operand    uint32 // raw operand value, relative branch offsets are not sign extended
	OperandLen int
}

// Has returns whether the opcode of the instruction carries all given attributes.
func (ins *Instruction) Has(attr w65816.Attribute) bool {
	return ins.Opcode.Has(attr)
}

// Size returns the instruction size in bytes.
func (ins *Instruction) Size() int {
	return 1 + ins.OperandLen
}

// NextAddress returns the address of the instruction that follows.
func (ins *Instruction) NextAddress() uint32 {
	return ins.Address + uint32(ins.Size())
}

// IsIndexedCall returns whether the instruction is a subroutine call through
// an indexed pointer table.
func (ins *Instruction) IsIndexedCall() bool {
	return ins.Has(w65816.EnterSub) && ins.Opcode.Addressing == w65816.AbsoluteIndexedIndirectAddressing
}

// JumpTarget returns the target of a call, branch or jump instruction and
// whether it is statically known.
func (ins *Instruction) JumpTarget() (uint32, bool, error) {
	if !ins.Opcode.IsControlTransfer() {
		return 0, false, fmt.Errorf("%s is not a jump instruction: %w", ins.Opcode.Mnemonic, w65816.ErrNotAJump)
	}
	target, ok, err := ins.Opcode.Addressing.JumpTarget(ins.Address, ins.Operand, ins.NextAddress())
	if err != nil {
		return 0, false, fmt.Errorf("instruction at %06X: %w", ins.Address, err)
	}
	return target, ok, nil
}

// StaticJumpTarget returns the target of a control transfer and fails for
// targets that are computed at runtime.
func (ins *Instruction) StaticJumpTarget() (uint32, error) {
	target, ok, err := ins.JumpTarget()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("instruction at %06X: %w", ins.Address, ErrUnresolvedComputedJump)
	}
	return target, nil
}

// Text returns the assembly text of the instruction, optionally prefixed with
// its address. Branches and calls with a known target are suffixed with the
// resolved target address.
func (ins *Instruction) Text(displayAddress bool) (string, error) {
	var s string
	if displayAddress {
		s = fmt.Sprintf("%06X %s", ins.Address, ins.Opcode.Mnemonic)
	} else {
		s = ins.Opcode.Mnemonic
	}

	if ins.Opcode.Addressing != w65816.NoAddressing {
		param, err := ins.Opcode.Addressing.Format(ins.Opcode, ins.Operand, ins.OperandLen)
		if err != nil {
			return "", fmt.Errorf("formatting instruction at %06X: %w", ins.Address, err)
		}
		s += " " + param
	}

	if ins.Opcode.Attributes.HasAny(w65816.Branch | w65816.EnterSub) {
		target, ok, err := ins.JumpTarget()
		if err != nil {
			return "", err
		}
		if ok {
			s += fmt.Sprintf(" [%06X]", target)
		}
	}

	return s, nil
}

func (ins *Instruction) String() string {
	s, err := ins.Text(true)
	if err != nil {
		return fmt.Sprintf("%06X %s <%v>", ins.Address, ins.Opcode.Mnemonic, err)
	}
	return s
}
