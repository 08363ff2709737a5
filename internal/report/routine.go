package report

import (
	"fmt"

	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/disasm"
)

// SubCall is a call of a subroutine with a static target.
type SubCall struct {
	Caller  uint32 // routine containing the call
	Address uint32 // address of the call instruction
	Target  disasm.SubroutineCall
}

// Jump is a jump instruction of a routine.
type Jump struct {
	Address  uint32
	Target   uint32
	Computed bool
}

// RoutineInfo holds the calls and jumps of a routine.
type RoutineInfo struct {
	Routine      *disasm.Routine
	Jumps        []Jump
	SubCalls     []SubCall
	IndexedCalls []uint32
}

func newRoutineInfo(routine *disasm.Routine) (*RoutineInfo, error) {
	info := &RoutineInfo{Routine: routine}

	for _, ins := range routine.Instructions {
		switch {
		case ins.Has(w65816.EnterSub):
			if ins.IsIndexedCall() {
				info.IndexedCalls = append(info.IndexedCalls, ins.Address)
				continue
			}

			target, err := ins.StaticJumpTarget()
			if err != nil {
				return nil, err
			}
			call, ok := routine.Subroutine(target)
			if !ok {
				return nil, fmt.Errorf("call at %06X to %06X was not recorded", ins.Address, target)
			}
			info.SubCalls = append(info.SubCalls, SubCall{
				Caller:  routine.Address,
				Address: ins.Address,
				Target:  call,
			})

		case ins.Has(w65816.Jump):
			target, ok, err := ins.JumpTarget()
			if err != nil {
				return nil, err
			}
			info.Jumps = append(info.Jumps, Jump{
				Address:  ins.Address,
				Target:   target,
				Computed: !ok,
			})
		}
	}

	return info, nil
}

// Calls returns all calls of the given subroutine.
func (i *RoutineInfo) Calls(target uint32) []SubCall {
	var calls []SubCall
	for _, call := range i.SubCalls {
		if call.Target.Address == target {
			calls = append(calls, call)
		}
	}
	return calls
}

// CallCount returns the number of calls of the given subroutine.
func (i *RoutineInfo) CallCount(target uint32) int {
	return len(i.Calls(target))
}
