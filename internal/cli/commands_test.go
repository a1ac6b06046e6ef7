package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const source = `//go:build errsum

package sample

import "strconv"

// Parse parses a number.
//
//errsum:errors *strconv.NumError
func Parse(s string) int {
	return strconv.Atoi(s)
}
`

func TestMain(m *testing.M) {
	color.NoColor = true
	goleak.VerifyTestMain(m)
}

// execute runs the command line in dir and returns what it printed.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateAndCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "parse.go"), []byte(source), 0o644))

	_, stderr, err := execute(t, dir, "check")
	require.ErrorIs(t, err, ErrAlreadyHandled)
	assert.Contains(t, stderr, "[check]")
	assert.Contains(t, stderr, "ERS040: StaleOutput: parse_errsum.go is missing")
	assert.Contains(t, stderr, "1 problem(s) found")

	stdout, _, err := execute(t, dir, "generate", "-w", "1")
	require.NoError(t, err)
	assert.Equal(t, "1 source file(s), 1 written\n", stdout)

	data, err := os.ReadFile(filepath.Join(dir, "parse_errsum.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "func Parse(s string) (int, ParseError) {")

	stdout, _, err = execute(t, dir, "check", "./...")
	require.NoError(t, err)
	assert.Equal(t, "1 source file(s) up to date\n", stdout)
}

func TestGenerateDiagnostics(t *testing.T) {
	dir := t.TempDir()
	bad := "//go:build errsum\n\npackage sample\n\n//errsum:errors\nfunc F() {\n\treturn nil\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte(bad), 0o644))

	_, stderr, err := execute(t, dir, "generate", ".")
	require.ErrorIs(t, err, ErrAlreadyHandled)
	assert.Contains(t, stderr, "[synth]")
	assert.Contains(t, stderr, "bad.go:6:1: ERS001: EmptySources")

	_, statErr := os.Stat(filepath.Join(dir, "bad_errsum.go"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "parse.go"), []byte(source), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "errsum.yaml"), []byte("suffix: _gen\n"), 0o644))

	_, _, err := execute(t, dir, "generate")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "parse_gen.go"))
	assert.NoError(t, err)

	_, _, err = execute(t, dir, "generate", "--config", "missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFlagErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, dir, "generate", "--resolve", "guess")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown resolve mode "guess"`)

	_, _, err = execute(t, dir, "generate", "--workers", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers must not be negative")

	_, _, err = execute(t, dir, "generate", filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRules(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ERS004: InactiveDirective\n\tThe errors directive has no effect in a file built without the errsum tag.\n")
	assert.Contains(t, stdout, "ERS040: StaleOutput")
}
