package w65816

// Processor status register bits that control register widths.
const (
	MBit = 0x20 // accumulator and memory width
	XBit = 0x10 // index register width
)

// Flags is a snapshot of the processor flags that change the width of
// immediate operands. A set flag selects 8 bit width.
type Flags struct {
	M bool
	X bool
}

// Update applies the flag changes of a REP or SEP instruction with the given
// operand. Only a single flag is changed per instruction, M takes precedence
// over X when both bits are present in the operand.
func (p *Flags) Update(op *Opcode, operand uint32) {
	var value bool
	switch {
	case op.Has(ResetP):
		value = false
	case op.Has(SetP):
		value = true
	default:
		return
	}

	switch {
	case operand&MBit != 0:
		p.M = value
	case operand&XBit != 0:
		p.X = value
	}
}

func (p Flags) String() string {
	return "M=" + flagBit(p.M) + " X=" + flagBit(p.X)
}

func flagBit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
