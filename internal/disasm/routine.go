package disasm

import (
	"slices"

	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/snescfa/internal/arch/w65816"
	"golang.org/x/exp/maps"
)

// SubroutineCall describes a called subroutine together with the processor
// flags at the first call site.
type SubroutineCall struct {
	Address uint32
	Flags   w65816.Flags
}

// Routine is the result of a routine read. Instructions are stored in
// discovery order, every address is contained only once.
type Routine struct {
	Address      uint32
	Instructions []*Instruction

	visited     set.Set[uint32] // addresses of decoded instructions
	pending     set.Set[uint32] // branch targets that are not decoded yet
	subroutines map[uint32]SubroutineCall
}

// NewRoutine returns an empty routine with the given entry address.
func NewRoutine(address uint32) *Routine {
	return &Routine{
		Address:     address,
		visited:     set.New[uint32](),
		pending:     set.New[uint32](),
		subroutines: make(map[uint32]SubroutineCall),
	}
}

// AddInstruction appends an instruction and marks its address as decoded.
func (r *Routine) AddInstruction(ins *Instruction) {
	r.Instructions = append(r.Instructions, ins)
	r.visited.Add(ins.Address)
	delete(r.pending, ins.Address)
}

// AddJump marks the address as pending and returns whether it was not
// decoded yet.
func (r *Routine) AddJump(address uint32) bool {
	if r.visited.Contains(address) {
		return false
	}
	r.pending.Add(address)
	return true
}

// NextJump removes an arbitrary pending address and returns it. The order
// in which pending addresses are returned is unspecified.
func (r *Routine) NextJump() (uint32, bool) {
	for address := range r.pending {
		delete(r.pending, address)
		return address, true
	}
	return 0, false
}

// PendingCount returns the number of pending addresses.
func (r *Routine) PendingCount() int {
	return len(r.pending)
}

// IsKnown returns whether an instruction at the address was decoded.
func (r *Routine) IsKnown(address uint32) bool {
	return r.visited.Contains(address)
}

// AddSubroutine records a subroutine call. Only the flags of the first call
// to a subroutine are kept.
func (r *Routine) AddSubroutine(address uint32, flags w65816.Flags) {
	if _, ok := r.subroutines[address]; ok {
		return
	}
	r.subroutines[address] = SubroutineCall{
		Address: address,
		Flags:   flags,
	}
}

// Subroutine returns the recorded call of the subroutine at the address.
func (r *Routine) Subroutine(address uint32) (SubroutineCall, bool) {
	call, ok := r.subroutines[address]
	return call, ok
}

// Subroutines returns all recorded subroutine calls sorted by address.
func (r *Routine) Subroutines() []SubroutineCall {
	addresses := maps.Keys(r.subroutines)
	slices.Sort(addresses)

	calls := make([]SubroutineCall, 0, len(addresses))
	for _, address := range addresses {
		calls = append(calls, r.subroutines[address])
	}
	return calls
}
