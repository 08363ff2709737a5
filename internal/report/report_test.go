package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/disasm"
	"github.com/retroenv/snescfa/internal/dominator"
	"github.com/retroenv/snescfa/internal/rom"
)

const (
	trackedRoutine = 0xC08000

	handlerDirect    = 0xC00000
	handlerCond      = 0xC00010
	handlerLoop      = 0xC00020
	handlerSub       = 0xC00030
	handlerIndexed   = 0xC00040
	handlerJump      = 0xC00050
	handlerBroken    = 0xC00060
	subroutineCaller = 0xC09000
)

var testCode = map[int][]byte{
	0x0000: {0x20, 0x00, 0x80, 0x60},                   // JSR tracked, RTS
	0x0010: {0xF0, 0x03, 0x20, 0x00, 0x80, 0x60},       // BEQ over JSR tracked, RTS
	0x0020: {0x20, 0x00, 0x80, 0xCA, 0xD0, 0xFA, 0x60}, // JSR tracked, DEX, BNE back, RTS
	0x0030: {0x20, 0x00, 0x90, 0x60},                   // JSR subroutine, RTS
	0x0040: {0xFC, 0x34, 0x12, 0x60},                   // JSR ($1234,X), RTS
	0x0050: {0x4C, 0x55, 0x00, 0xFF, 0xFF, 0x60},       // JMP $0055, data, RTS
	0x0060: {0x01},                                     // undefined opcode
	0x8000: {0x60},
	0x9000: {0x20, 0x00, 0x80, 0x60}, // JSR tracked, RTS
}

func newTestAnalyzer(t *testing.T, opts ...dominator.Option) *Analyzer {
	t.Helper()

	data := make([]byte, 0x10000)
	for offset, code := range testCode {
		copy(data[offset:], code)
	}

	table, err := w65816.DefaultTable()
	assert.NoError(t, err)

	logger := log.NewTestLogger(t)
	reader := disasm.New(logger, table, rom.New(data, rom.HiROM{}))
	return NewAnalyzer(logger, reader, trackedRoutine, opts...)
}

func TestAnalyze(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	tests := []struct {
		name         string
		address      uint32
		condCalls    bool
		inLoopCalls  bool
		calls        int
		indexedCalls int
		jumps        int
		routines     int
		status       Status
	}{
		{"direct call", handlerDirect, false, false, 1, 0, 0, 1, StatusOK},
		{"conditional call", handlerCond, true, false, 1, 0, 0, 1, StatusKO},
		{"call in loop", handlerLoop, false, true, 1, 0, 0, 1, StatusKO},
		{"call in subroutine", handlerSub, false, false, 0, 0, 0, 2, StatusKO},
		{"indexed call", handlerIndexed, false, false, 0, 1, 0, 1, StatusKO},
		{"jump", handlerJump, false, false, 0, 0, 1, 1, StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := analyzer.Analyze(tt.address)
			assert.NoError(t, err)

			assert.Equal(t, tt.condCalls, analysis.CondCalls)
			assert.Equal(t, tt.inLoopCalls, analysis.InLoopCalls)
			assert.Equal(t, tt.routines, analysis.CallGraph.Len())

			h, err := NewHandler(analysis, trackedRoutine)
			assert.NoError(t, err)
			assert.Equal(t, tt.calls, h.Calls)
			assert.Equal(t, tt.indexedCalls, h.IndexedCalls)
			assert.Equal(t, tt.jumps, h.Jumps)
			assert.Equal(t, tt.status, h.Status)
		})
	}
}

func TestAnalyzeSubroutineDepth(t *testing.T) {
	analysis, err := newTestAnalyzer(t).Analyze(handlerSub)
	assert.NoError(t, err)

	h, err := NewHandler(analysis, trackedRoutine)
	assert.NoError(t, err)
	assert.Equal(t, []Subroutine{{Address: subroutineCaller, Count: 1, Depth: 1}}, h.Subroutines)

	assert.True(t, analysis.CallGraph.HasNode("C09000"))
	assert.False(t, analysis.CallGraph.HasNode("C08000"))
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := newTestAnalyzer(t).Analyze(handlerBroken)
	assert.True(t, errors.Is(err, w65816.ErrUnknownOpcode))

	_, err = newTestAnalyzer(t, dominator.WithMaxPasses(1)).Analyze(handlerCond)
	assert.True(t, errors.Is(err, dominator.ErrPassLimit))
}

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		status  Status
	}{
		{"no calls", Handler{}, StatusOK},
		{"conditional without calls", Handler{CondCalls: true}, StatusOK},
		{"conditional", Handler{Calls: 1, CondCalls: true}, StatusKO},
		{"loop", Handler{Calls: 2, InLoopCalls: true}, StatusKO},
		{"indexed", Handler{IndexedCalls: 1}, StatusKO},
		{"subroutines", Handler{Subroutines: []Subroutine{{Address: 1}}}, StatusKO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.handler
			h.computeStatus()
			assert.Equal(t, tt.status, h.Status)
		})
	}
}

func addresses(handlers []*Handler) []uint32 {
	var result []uint32
	for _, h := range handlers {
		result = append(result, h.Address)
	}
	return result
}

func TestGenerate(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	handlers := []uint32{
		handlerDirect, handlerCond, handlerLoop, handlerSub,
		handlerIndexed, handlerJump, handlerBroken, handlerDirect,
	}

	report, err := Generate(context.Background(), log.NewTestLogger(t), analyzer, handlers, []uint32{handlerJump})
	assert.NoError(t, err)

	assert.Equal(t, []uint32{handlerDirect, subroutineCaller}, addresses(report.OK))
	assert.Equal(t, []uint32{handlerSub, handlerIndexed, handlerCond, handlerLoop}, addresses(report.KO))
	assert.Equal(t, []uint32{handlerJump}, addresses(report.Ignored))
	assert.Equal(t, []uint32{handlerBroken}, addresses(report.Failed))
	assert.Equal(t, 1, strings.Count(report.Failed[0].Err, "reading routine C00060"))
	assert.Len(t, report.All(), 8)

	var buf bytes.Buffer
	assert.NoError(t, report.WriteText(&buf))
	text := buf.String()
	assert.True(t, strings.Contains(text, "Tracked routine: C08000"))
	assert.True(t, strings.Contains(text, "C09000 x1 @1"))
	assert.True(t, strings.Contains(text, "Ignored"))

	buf.Reset()
	assert.NoError(t, report.WriteJSON(&buf))
	assert.True(t, strings.Contains(buf.String(), `"status": "KO"`))
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, log.NewTestLogger(t), newTestAnalyzer(t), []uint32{handlerDirect}, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
