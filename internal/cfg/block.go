package cfg

import (
	"fmt"

	"github.com/retroenv/snescfa/internal/disasm"
)

// Block is a basic block, a sequence of instructions that is entered at the
// first and left after the last instruction.
type Block struct {
	Address      uint32
	Instructions []*disasm.Instruction
}

// NodeID returns the graph node identifier of the block starting at the address.
func NodeID(address uint32) string {
	return fmt.Sprintf("%X", address)
}

// Name returns the display name of the block.
func (b *Block) Name() string {
	return fmt.Sprintf("%06X", b.Address)
}

// HasInstruction returns whether the block contains an instruction at the address.
func (b *Block) HasInstruction(address uint32) bool {
	for _, ins := range b.Instructions {
		if ins.Address == address {
			return true
		}
	}
	return false
}

// Lines returns the assembly text of all instructions without addresses.
func (b *Block) Lines() ([]string, error) {
	lines := make([]string, 0, len(b.Instructions))
	for _, ins := range b.Instructions {
		s, err := ins.Text(false)
		if err != nil {
			return nil, err
		}
		lines = append(lines, s)
	}
	return lines, nil
}
