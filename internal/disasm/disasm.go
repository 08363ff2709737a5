// Package disasm implements a routine reader that follows the control flow of
// 65816 code starting at an entry address.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/arch"
	"github.com/retroenv/snescfa/internal/arch/w65816"
)

// Reader decodes routines from a byte source.
type Reader struct {
	logger *log.Logger
	table  *w65816.Table
	src    arch.ByteSource
}

// New returns a new routine reader.
func New(logger *log.Logger, table *w65816.Table, src arch.ByteSource) *Reader {
	return &Reader{
		logger: logger,
		table:  table,
		src:    src,
	}
}

// ReadInstruction decodes the instruction at the cursor position using the
// given processor flags.
func (r *Reader) ReadInstruction(p w65816.Flags) (*Instruction, error) {
	address := r.src.Tell()

	b, err := r.src.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("reading opcode at %06X: %w", address, err)
	}
	op, err := r.table.Lookup(b)
	if err != nil {
		return nil, fmt.Errorf("decoding instruction at %06X: %w", address, err)
	}

	value, length, err := op.Addressing.ReadOperand(r.src, op, p)
	if err != nil {
		return nil, fmt.Errorf("decoding instruction at %06X: %w", address, err)
	}

	return &Instruction{
		Address:    address,
		Opcode:     op,
		Operand:    value,
		OperandLen: length,
	}, nil
}

// ReadRoutine decodes all instructions reachable from the entry address
// without leaving the routine through calls. The flags are the processor
// state at the routine entry, the passed value is not modified.
func (r *Reader) ReadRoutine(address uint32, p w65816.Flags) (*Routine, error) {
	routine := NewRoutine(address)

	r.logger.Debug("Reading routine", log.Hex("address", address))
	if err := r.src.Seek(address); err != nil {
		return nil, fmt.Errorf("reading routine %06X: %w", address, err)
	}

	for {
		if cursor := r.src.Tell(); routine.IsKnown(cursor) {
			r.logger.Debug("Reached decoded code", log.Hex("address", cursor))
			resumed, err := r.resume(routine)
			if err != nil {
				return nil, err
			}
			if !resumed {
				return routine, nil
			}
			continue
		}

		ins, err := r.ReadInstruction(p)
		if err != nil {
			return nil, fmt.Errorf("reading routine %06X: %w", address, err)
		}
		routine.AddInstruction(ins)
		p.Update(ins.Opcode, ins.Operand)

		done, err := r.followInstruction(routine, ins, p)
		if err != nil {
			return nil, fmt.Errorf("reading routine %06X: %w", address, err)
		}
		if done {
			return routine, nil
		}
	}
}

// followInstruction handles the control flow effect of an instruction and
// returns whether the routine is completely read.
func (r *Reader) followInstruction(routine *Routine, ins *Instruction, p w65816.Flags) (bool, error) {
	switch {
	case ins.Has(w65816.EnterSub):
		target, ok, err := ins.JumpTarget()
		if err != nil {
			return false, err
		}
		if !ok {
			r.logger.Debug("Ignore computed call", log.Hex("address", ins.Address))
			return false, nil
		}
		routine.AddSubroutine(target, p)

	case ins.Has(w65816.ReturnSub):
		resumed, err := r.resume(routine)
		return !resumed, err

	case ins.Has(w65816.Branch):
		target, err := ins.StaticJumpTarget()
		if err != nil {
			return false, err
		}
		if routine.AddJump(target) {
			r.logger.Debug("Branch target pending", log.Hex("target", target))
		} else {
			r.logger.Debug("Branch target ignored", log.Hex("target", target))
		}

	case ins.Has(w65816.Jump):
		target, err := ins.StaticJumpTarget()
		if err != nil {
			return false, err
		}
		if !routine.AddJump(target) {
			r.logger.Debug("Jump target ignored", log.Hex("target", target))
			return false, nil
		}

		r.logger.Debug("Jump", log.Hex("target", target))
		if err := r.src.Seek(target); err != nil {
			return false, fmt.Errorf("jumping to %06X: %w", target, err)
		}
	}

	return false, nil
}

// resume moves the cursor to the next pending address and returns false if
// there is none left.
func (r *Reader) resume(routine *Routine) (bool, error) {
	next, ok := routine.NextJump()
	if !ok {
		return false, nil
	}

	r.logger.Debug("Continue at pending target", log.Hex("address", next))
	if err := r.src.Seek(next); err != nil {
		return false, fmt.Errorf("seeking to %06X: %w", next, err)
	}
	return true, nil
}
