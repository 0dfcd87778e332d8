package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/pkg/log"
)

func nullLogger() log.Logger { return log.NewNullLogger() }

// writeROM writes a flat rom running program from 0x0150.
func writeROM(t *testing.T, program ...uint8) string {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], []uint8{0x00, 0xC3, 0x50, 0x01})
	copy(rom[0x0134:], "GBCORE")
	copy(rom[0x0150:], program)

	path := filepath.Join(t.TempDir(), "test.gb")
	require.NoError(t, os.WriteFile(path, rom, 0o644))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCmd(t *testing.T) {
	// LD A, 0x42; JR -2
	rom := writeROM(t, 0x3E, 0x42, 0x18, 0xFE)

	out, err := execute(t, newRunCmd(nullLogger), rom, "--steps", "10", "--digest", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "AF=42")
	assert.Contains(t, out, "PC=0152")
	assert.Contains(t, out, "digest: ")
	assert.Contains(t, out, "execution digest: ")
	assert.Contains(t, out, "(10 instructions)")
}

func TestRunCmd_Serial(t *testing.T) {
	var program []uint8
	for _, c := range []byte("Passed") {
		program = append(program, 0x3E, c, 0xE0, 0x01, 0x3E, 0x81, 0xE0, 0x02)
	}
	rom := writeROM(t, append(program, 0x18, 0xFE)...)

	out, err := execute(t, newRunCmd(nullLogger), rom, "--serial", "--seconds", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `serial: "Passed"`)
	assert.Contains(t, out, "breakpoint hit")
}

func TestRunCmd_IllegalOpcode(t *testing.T) {
	rom := writeROM(t, 0xDD)

	out, err := execute(t, newRunCmd(nullLogger), rom, "--steps", "5")
	assert.Error(t, err)
	assert.Contains(t, out, "PC=0150")
}

func TestInfoCmd(t *testing.T) {
	out, err := execute(t, newInfoCmd(), writeROM(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Title:     GBCORE")
	assert.Contains(t, out, "Supported: true")

	_, err = execute(t, newInfoCmd(), filepath.Join(t.TempDir(), "missing.gb"))
	assert.Error(t, err)
}

func TestProfileCmd(t *testing.T) {
	// NOP; JR -3
	rom := writeROM(t, 0x00, 0x18, 0xFD)
	chart := filepath.Join(t.TempDir(), "profile.png")

	out, err := execute(t, newProfileCmd(nullLogger), rom, "--frames", "1", "--top", "3", "--out", chart)
	require.NoError(t, err)
	assert.Contains(t, out, "NOP")
	assert.Contains(t, out, "JR r8")
	assert.FileExists(t, chart)
}

func TestScriptCmd(t *testing.T) {
	rom := writeROM(t, 0x3E, 0x42, 0x18, 0xFE)
	lua := filepath.Join(t.TempDir(), "test.lua")
	require.NoError(t, os.WriteFile(lua, []byte(`
		run_until(0x0152, 10)
		assert(reg("A") == 0x42)
	`), 0o644))

	out, err := execute(t, newScriptCmd(nullLogger), rom, lua)
	require.NoError(t, err)
	assert.Contains(t, out, "PC=0152")

	require.NoError(t, os.WriteFile(lua, []byte(`assert(reg("A") == 0)`), 0o644))
	_, err = execute(t, newScriptCmd(nullLogger), rom, lua)
	assert.Error(t, err)
}
