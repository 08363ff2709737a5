package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/snescfa/internal/config"
)

func createTestROM(t *testing.T, dir string) string {
	t.Helper()

	data := make([]byte, 0x10000)
	// operation table with two handlers in bank $C0
	copy(data[0x0100:], []byte{0x00, 0x10, 0x00, 0x20})
	copy(data[0x1000:], []byte{0x20, 0x00, 0x80, 0x60})             // JSR $8000, RTS
	copy(data[0x2000:], []byte{0xF0, 0x03, 0x20, 0x00, 0x80, 0x60}) // BEQ, JSR $8000, RTS
	copy(data[0x3000:], []byte{0xA2, 0x10, 0xCA, 0xD0, 0xFD, 0x60}) // LDX #$10, DEX, BNE, RTS
	data[0x8000] = 0x60

	path := filepath.Join(dir, "game.sfc")
	assert.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func createTestConfig(t *testing.T, dir string) string {
	t.Helper()

	data := `{
  "trackRoutine": "0xC08000",
  "opTable": {"base": "0xC00100", "count": 2, "bank": 192},
  "mapping": "hirom"
}`
	path := filepath.Join(dir, "report.json")
	assert.NoError(t, os.WriteFile(path, []byte(data), 0600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCommand(BuildInfo{Version: "test"})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--quiet"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeCommands(t *testing.T) {
	dir := t.TempDir()
	romFile := createTestROM(t, dir)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name: "disasm",
			args: []string{"disasm", "--x8", romFile, "C03000"},
			expected: "; routine C03000\n" +
				"  C03000 LDX #$10\n" +
				"\n" +
				"L_C03002:\n" +
				"  C03002 DEX\n" +
				"  C03003 BNE $FD [C03002]\n" +
				"  C03005 RTS\n",
		},
		{
			name:     "dominator tree",
			args:     []string{"dom", "--x8", "-m", "hirom", romFile, "$C03000"},
			expected: "C03000\n  C03002\n    C03005\n",
		},
		{
			name:     "loops",
			args:     []string{"loops", "--x8", romFile, "0xC03000"},
			expected: "loop 0: back edge C03002 -> C03002: C03002\n",
		},
		{
			name: "cfg without addresses",
			args: []string{"cfg", "--noaddresses", romFile, "C01000"},
			expected: "block C01000 (entry, exit):\n" +
				"  JSR $8000 [C08000]\n" +
				"  RTS\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestAnalyzeDOT(t *testing.T) {
	romFile := createTestROM(t, t.TempDir())

	for _, command := range []string{"cfg", "dom"} {
		out, err := run(t, command, "-f", "dot", "--x8", romFile, "C03000")
		assert.NoError(t, err)
		assert.True(t, strings.Contains(out, "digraph"))
	}

	_, err := run(t, "loops", "-f", "dot", romFile, "C03000")
	assert.True(t, errors.Is(err, errInvalidFormat))
}

func TestAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()
	romFile := createTestROM(t, dir)

	_, err := run(t, "disasm", romFile, "xyz")
	assert.True(t, errors.Is(err, config.ErrInvalidAddress))

	_, err = run(t, "disasm", romFile)
	assert.Error(t, err)

	_, err = run(t, "disasm", filepath.Join(dir, "missing.sfc"), "C00000")
	assert.Error(t, err)
}

func TestOutputFile(t *testing.T) {
	dir := t.TempDir()
	romFile := createTestROM(t, dir)
	output := filepath.Join(dir, "out.txt")

	out, err := run(t, "-o", output, "dom", "--x8", romFile, "C03000")
	assert.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "C03000\n  C03002\n    C03005\n", string(data))
}

func TestOpSub(t *testing.T) {
	dir := t.TempDir()
	romFile := createTestROM(t, dir)
	cfgFile := createTestConfig(t, dir)

	out, err := run(t, "-c", cfgFile, "opsub", romFile, "1")
	assert.NoError(t, err)
	assert.Equal(t, "C02000\n", out)

	_, err = run(t, "-c", cfgFile, "opsub", romFile, "0x10")
	assert.Error(t, err)

	_, err = run(t, "-c", cfgFile, "opsub", romFile, "one")
	assert.Error(t, err)
}

func TestCalls(t *testing.T) {
	dir := t.TempDir()
	romFile := createTestROM(t, dir)
	cfgFile := createTestConfig(t, dir)

	out, err := run(t, "-c", cfgFile, "calls", romFile, "C01000")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "C01000: 2 instructions"))

	out, err = run(t, "calls", "-t", "C09000", "-f", "dot", "-m", "hirom", romFile, "C01000")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "digraph"))
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	romFile := createTestROM(t, dir)
	cfgFile := createTestConfig(t, dir)

	out, err := run(t, "-c", cfgFile, "report", romFile)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "Tracked routine: C08000"))
	assert.Equal(t, "OK", statusOf(out, "C01000"))
	assert.Equal(t, "KO", statusOf(out, "C02000"))

	out, err = run(t, "-c", cfgFile, "report", "--ignore", "C02000", romFile)
	assert.NoError(t, err)
	assert.Equal(t, "Ignored", statusOf(out, "C02000"))

	out, err = run(t, "-c", cfgFile, "-f", "json", "report", romFile)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, `"track": 12615680`))

	_, err = run(t, "-m", "hirom", "report", romFile)
	assert.True(t, errors.Is(err, config.ErrNoTrackRoutine))
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	createTestROM(t, dir)
	cfgFile := createTestConfig(t, dir)

	_, err := run(t, "-c", cfgFile, "batch", filepath.Join(dir, "*.sfc"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "game.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "OK", statusOf(string(data), "C01000"))

	_, err = run(t, "-c", cfgFile, "batch", filepath.Join(dir, "*.smc"))
	assert.True(t, errors.Is(err, errNoFiles))
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "trackRoutine"))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "test"))
}

func statusOf(text, address string) string {
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 1 && fields[0] == address {
			return fields[1]
		}
	}
	return ""
}
