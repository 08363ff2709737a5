package writer

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/cfg"
	"github.com/retroenv/snescfa/internal/disasm"
	"github.com/retroenv/snescfa/internal/dominator"
	"github.com/retroenv/snescfa/internal/loop"
	"github.com/retroenv/snescfa/internal/rom"
)

var testCode = []byte{
	0xA2, 0x10, // LDX #$10
	0xCA,       // DEX
	0xD0, 0xFD, // BNE $C00002
	0x60, // RTS
}

func readTestRoutine(t *testing.T) *disasm.Routine {
	t.Helper()

	data := make([]byte, 0x10000)
	copy(data, testCode)
	table, err := w65816.DefaultTable()
	assert.NoError(t, err)

	reader := disasm.New(log.NewTestLogger(t), table, rom.New(data, rom.HiROM{}))
	routine, err := reader.ReadRoutine(0xC00000, w65816.Flags{M: true, X: true})
	assert.NoError(t, err)
	return routine
}

func TestWriteRoutine(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{Addresses: true, HexComments: true})
	assert.NoError(t, w.WriteRoutine(readTestRoutine(t)))

	expected := "; routine C00000\n" +
		"  C00000 LDX #$10                ; A2 10\n" +
		"\n" +
		"L_C00002:\n" +
		"  C00002 DEX                     ; CA\n" +
		"  C00003 BNE $FD [C00002]        ; D0 FD\n" +
		"  C00005 RTS                     ; 60\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteGraphs(t *testing.T) {
	logger := log.NewTestLogger(t)
	g, err := cfg.Build(logger, readTestRoutine(t))
	assert.NoError(t, err)
	tree, err := dominator.Build(g)
	assert.NoError(t, err)
	loops, err := loop.Find(g, tree)
	assert.NoError(t, err)

	var buf bytes.Buffer
	w := New(&buf, Options{})

	assert.NoError(t, w.WriteCFG(g))
	expected := "block C00000 (entry):\n" +
		"  LDX #$10\n" +
		"  -> C00002\n" +
		"\n" +
		"block C00002:\n" +
		"  DEX\n" +
		"  BNE $FD [C00002]\n" +
		"  -> C00005 (not taken)\n" +
		"  -> C00002 (taken)\n" +
		"\n" +
		"block C00005 (exit):\n" +
		"  RTS\n"
	assert.Equal(t, expected, buf.String())

	buf.Reset()
	assert.NoError(t, w.WriteTree(tree))
	assert.Equal(t, "C00000\n  C00002\n    C00005\n", buf.String())

	buf.Reset()
	assert.NoError(t, w.WriteLoops(g, loops))
	assert.Equal(t, "loop 0: back edge C00002 -> C00002: C00002\n", buf.String())

	buf.Reset()
	assert.NoError(t, w.WriteLoops(g, nil))
	assert.Equal(t, "no loops\n", buf.String())
}
