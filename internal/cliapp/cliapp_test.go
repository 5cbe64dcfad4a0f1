package cliapp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newRunner builds a Runner with buffers in place of os.Stdout/Stderr,
// following nmxmxh-inos_v1's testify/require style for assertions.
func newRunner() (Runner, *bytes.Buffer, *bytes.Buffer) {
	var out, errw bytes.Buffer
	return Runner{Version: "test", Stdout: &out, Stderr: &errw}, &out, &errw
}

func TestRun_NoArgsPrintsHelp(t *testing.T) {
	r, out, _ := newRunner()
	code := r.Run(nil)
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "envsense")
}

func TestRun_UnknownCommandExitsTwo(t *testing.T) {
	r, _, errw := newRunner()
	code := r.Run([]string{"bogus"})
	require.Equal(t, 2, code)
	require.Contains(t, errw.String(), CodeUsage)
}

func TestRun_Version(t *testing.T) {
	r, out, _ := newRunner()
	code := r.Run([]string{"version"})
	require.Equal(t, 0, code)
	require.Equal(t, "test\n", out.String())
}

func TestRunInfo_JSONIsDeterministicAndEndsWithNewline(t *testing.T) {
	r, out, _ := newRunner()
	code := r.Run([]string{"info", "--json"})
	require.Equal(t, 0, code)
	require.True(t, bytes.HasSuffix(out.Bytes(), []byte("\n")))
	require.Contains(t, out.String(), "\"version\":\"0.3.0\"")
}

func TestRunInfo_UnknownFieldExitsTwoWithSuggestions(t *testing.T) {
	r, _, errw := newRunner()
	code := r.Run([]string{"info", "--fields", "termnal.interactive"})
	require.Equal(t, 2, code)
	require.Contains(t, errw.String(), CodeInvalidField)
	require.Contains(t, errw.String(), "did you mean")
}

func TestRunInfo_ConfigDefaultsApplyWhenFlagsUnset(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	contents := "schemaVersion: 1\ndefaults:\n  json: true\n  fields:\n    - terminal.interactive\n"
	require.NoError(t, os.WriteFile(".envsense.yml", []byte(contents), 0o644))

	r, out, _ := newRunner()
	code := r.Run([]string{"info"})
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "terminal.interactive")
	require.True(t, bytes.HasPrefix(bytes.TrimSpace(out.Bytes()), []byte("{")))
}

func TestRunCheck_TerminalInteractiveExitCode(t *testing.T) {
	r, _, _ := newRunner()
	code := r.Run([]string{"check", "--quiet", "terminal.interactive"})
	require.Contains(t, []int{0, 1}, code)
}

func TestRunCheck_UnknownFieldExitsTwo(t *testing.T) {
	r, _, errw := newRunner()
	code := r.Run([]string{"check", "--quiet", "nope.nope"})
	require.Equal(t, 2, code)
	require.Contains(t, errw.String(), CodeInvalidField)
}

func TestRunCheck_AnyAllMutuallyExclusive(t *testing.T) {
	r, _, errw := newRunner()
	code := r.Run([]string{"check", "--any", "--all", "terminal.interactive"})
	require.Equal(t, 2, code)
	require.Contains(t, errw.String(), CodeUsage)
}

func TestRunCheck_List(t *testing.T) {
	r, out, _ := newRunner()
	code := r.Run([]string{"check", "--list"})
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "terminal.color_level")
}

func TestRunDoctor_CleanRepoAllChecksPass(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	r, out, _ := newRunner()
	code := r.Run([]string{"doctor"})
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "[ok]")
}

func TestRunDoctor_JSONIncludesDiagnosticID(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	r, out, _ := newRunner()
	code := r.Run([]string{"doctor", "--json"})
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "diagnosticId")
}

func TestRunMigrate_PredicateRewritesLegacyBareNames(t *testing.T) {
	r, out, _ := newRunner()
	code := r.Run([]string{"migrate", "--predicate", "!is_ci"})
	require.Equal(t, 0, code)
	require.Equal(t, "!ci\n", out.String())
}

func TestRunMigrate_JSONRewritesLegacyReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"agent":"cursor","interactive":true,"color_level":"truecolor"}`), 0o644))

	r, out, _ := newRunner()
	code := r.Run([]string{"migrate", "--json", path})
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), `"version":"0.3.0"`)
	require.Contains(t, out.String(), `"id":"cursor"`)
}

func TestRunMigrate_MutuallyExclusiveFlags(t *testing.T) {
	r, _, errw := newRunner()
	code := r.Run([]string{"migrate", "--predicate", "ci", "--guide"})
	require.Equal(t, 2, code)
	require.Contains(t, errw.String(), CodeUsage)
}

func TestRunMigrate_Guide(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	r, out, _ := newRunner()
	code := r.Run([]string{"migrate", "--guide"})
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "[ok]")
}
