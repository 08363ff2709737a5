package disasm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/rom"
)

const testBase = 0xC00000

func newTestReader(t *testing.T, code []byte) *Reader {
	t.Helper()

	table, err := w65816.DefaultTable()
	assert.NoError(t, err)

	data := make([]byte, 0x10000)
	copy(data, code)
	return New(log.NewTestLogger(t), table, rom.New(data, rom.HiROM{}))
}

func mnemonics(routine *Routine) []string {
	var names []string
	for _, ins := range routine.Instructions {
		names = append(names, ins.Opcode.Mnemonic)
	}
	return names
}

func TestReadRoutine(t *testing.T) {
	tests := []struct {
		name      string
		code      []byte
		entry     uint32
		flags     w65816.Flags
		mnemonics []string
		addresses []uint32
	}{
		{
			name:      "linear",
			code:      []byte{0xEA, 0x18, 0x60},
			entry:     testBase,
			mnemonics: []string{"NOP", "CLC", "RTS"},
			addresses: []uint32{0xC00000, 0xC00001, 0xC00002},
		},
		{
			name: "branch over call",
			code: []byte{
				0xA9, 0x01, // LDA #$01
				0xF0, 0x03, // BEQ $C00007
				0x20, 0x34, 0x12, // JSR $1234
				0x60, // RTS
			},
			entry:     testBase,
			flags:     w65816.Flags{M: true, X: true},
			mnemonics: []string{"LDA", "BEQ", "JSR", "RTS"},
			addresses: []uint32{0xC00000, 0xC00002, 0xC00004, 0xC00007},
		},
		{
			name: "code after return",
			code: []byte{
				0xD0, 0x01, // BNE $C00003
				0x60,       // RTS
				0xE2, 0x20, // SEP #$20
				0x6B, // RTL
			},
			entry:     testBase,
			mnemonics: []string{"BNE", "RTS", "SEP", "RTL"},
			addresses: []uint32{0xC00000, 0xC00002, 0xC00003, 0xC00005},
		},
		{
			name: "jump skips data",
			code: []byte{
				0x4C, 0x05, 0x00, // JMP $0005
				0xFF, 0xFF, // data
				0x60, // RTS
			},
			entry:     testBase,
			mnemonics: []string{"JMP", "RTS"},
			addresses: []uint32{0xC00000, 0xC00005},
		},
		{
			name: "backward branch",
			code: []byte{
				0xCA,       // DEX
				0xD0, 0xFD, // BNE $C00000
				0x60, // RTS
			},
			entry:     testBase,
			mnemonics: []string{"DEX", "BNE", "RTS"},
			addresses: []uint32{0xC00000, 0xC00001, 0xC00003},
		},
		{
			name: "jump to decoded code continues after the jump",
			code: []byte{
				0xEA,             // NOP
				0x4C, 0x00, 0x00, // JMP $0000
				0xEA, // NOP
				0x60, // RTS
			},
			entry:     testBase,
			mnemonics: []string{"NOP", "JMP", "NOP", "RTS"},
			addresses: []uint32{0xC00000, 0xC00001, 0xC00004, 0xC00005},
		},
		{
			name: "fall through into decoded code",
			code: []byte{
				0xFF, 0xFF,
				0xEA,       // NOP
				0xEA,       // NOP
				0xF0, 0xFC, // BEQ $C00002
				0x60, // RTS
			},
			entry:     0xC00004,
			mnemonics: []string{"BEQ", "RTS", "NOP", "NOP"},
			addresses: []uint32{0xC00004, 0xC00006, 0xC00002, 0xC00003},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newTestReader(t, tt.code)

			routine, err := reader.ReadRoutine(tt.entry, tt.flags)
			assert.NoError(t, err)
			assert.Equal(t, tt.entry, routine.Address)
			assert.Equal(t, tt.mnemonics, mnemonics(routine))

			var addresses []uint32
			for _, ins := range routine.Instructions {
				addresses = append(addresses, ins.Address)
			}
			assert.Equal(t, tt.addresses, addresses)
			assert.Equal(t, 0, routine.PendingCount())
		})
	}
}

func TestReadRoutineFlags(t *testing.T) {
	code := []byte{
		0xC2, 0x30, // REP #$30, only clears M
		0xA9, 0x34, 0x12, // LDA #$1234
		0xA2, 0x12, // LDX #$12
		0x22, 0x00, 0x80, 0xC5, // JSL $C58000
		0xE2, 0x20, // SEP #$20
		0x22, 0x00, 0x80, 0xC5, // JSL $C58000
		0x22, 0x00, 0x90, 0xC5, // JSL $C59000
		0x6B, // RTL
	}
	reader := newTestReader(t, code)

	initial := w65816.Flags{M: true, X: true}
	routine, err := reader.ReadRoutine(testBase, initial)
	assert.NoError(t, err)
	assert.Equal(t, w65816.Flags{M: true, X: true}, initial)

	assert.Len(t, routine.Instructions, 8)
	assert.Equal(t, 2, routine.Instructions[1].OperandLen)
	assert.Equal(t, uint32(0x1234), routine.Instructions[1].Operand)
	assert.Equal(t, 1, routine.Instructions[2].OperandLen)

	first, ok := routine.Subroutine(0xC58000)
	assert.True(t, ok)
	assert.Equal(t, w65816.Flags{M: false, X: true}, first.Flags)

	second, ok := routine.Subroutine(0xC59000)
	assert.True(t, ok)
	assert.Equal(t, w65816.Flags{M: true, X: true}, second.Flags)

	calls := routine.Subroutines()
	assert.Len(t, calls, 2)
	assert.Equal(t, uint32(0xC58000), calls[0].Address)
	assert.Equal(t, uint32(0xC59000), calls[1].Address)
}

func TestReadRoutineIndexedCall(t *testing.T) {
	code := []byte{
		0xFC, 0x34, 0x12, // JSL ($1234,X)
		0x60, // RTS
	}
	reader := newTestReader(t, code)

	routine, err := reader.ReadRoutine(testBase, w65816.Flags{})
	assert.NoError(t, err)
	assert.Len(t, routine.Instructions, 2)
	assert.Empty(t, routine.Subroutines())
	assert.True(t, routine.Instructions[0].IsIndexedCall())

	_, err = routine.Instructions[0].StaticJumpTarget()
	assert.True(t, errors.Is(err, ErrUnresolvedComputedJump))
}

func TestReadRoutineErrors(t *testing.T) {
	t.Run("unknown opcode", func(t *testing.T) {
		reader := newTestReader(t, []byte{0xEA, 0xFF})
		_, err := reader.ReadRoutine(testBase, w65816.Flags{})
		assert.True(t, errors.Is(err, w65816.ErrUnknownOpcode))
	})

	t.Run("entry outside of image", func(t *testing.T) {
		reader := newTestReader(t, nil)
		_, err := reader.ReadRoutine(0x7E0000, w65816.Flags{})
		assert.True(t, errors.Is(err, rom.ErrOutOfBounds))
	})

	t.Run("truncated operand", func(t *testing.T) {
		table, err := w65816.DefaultTable()
		assert.NoError(t, err)
		reader := New(log.NewTestLogger(t), table, rom.New([]byte{0xEA, 0x22, 0x00}, rom.HiROM{}))

		_, err = reader.ReadRoutine(testBase, w65816.Flags{})
		assert.True(t, errors.Is(err, rom.ErrOutOfBounds))
	})
}

func TestRoutinePending(t *testing.T) {
	routine := NewRoutine(0x10)
	assert.True(t, routine.AddJump(0x20))
	assert.True(t, routine.AddJump(0x30))
	assert.Equal(t, 2, routine.PendingCount())

	routine.AddInstruction(&Instruction{Address: 0x20, Opcode: &w65816.Opcode{Mnemonic: "NOP"}})
	assert.Equal(t, 1, routine.PendingCount())
	assert.False(t, routine.AddJump(0x20))
	assert.True(t, routine.IsKnown(0x20))

	next, ok := routine.NextJump()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x30), next)

	_, ok = routine.NextJump()
	assert.False(t, ok)
}

func TestRoutineAddressZero(t *testing.T) {
	routine := NewRoutine(0x10)
	assert.True(t, routine.AddJump(0))

	next, ok := routine.NextJump()
	assert.True(t, ok)
	assert.Equal(t, uint32(0), next)
}
