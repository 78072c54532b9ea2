package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxit-dev/taxit/internal/config"
	"github.com/taxit-dev/taxit/internal/ledger"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "taxit-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "taxit")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/taxit")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// runTaxit runs the binary in dir and returns stdout and stderr separately.
func runTaxit(t *testing.T, dir string, env []string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, _, err := runTaxit(t, dir, nil, "init")
	require.NoError(t, err)
	return dir
}

func TestInit_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runTaxit(t, dir, nil, "init", "project", "--year", "2020")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized taxit project")

	cfg, err := config.Load(filepath.Join(dir, "project", config.FileName))
	require.NoError(t, err)
	assert.Equal(t, 2020, cfg.Year)

	_, err = os.Stat(filepath.Join(dir, "project", "scenario.yaml"))
	require.NoError(t, err)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := initProject(t)

	_, stderr, err := runTaxit(t, dir, nil, "init")
	require.Error(t, err)
	assert.Contains(t, stderr, "already exists")

	_, _, err = runTaxit(t, dir, nil, "init", "--force")
	require.NoError(t, err)
}

func TestRun_Sample(t *testing.T) {
	dir := initProject(t)

	out, _, err := runTaxit(t, dir, nil, "run", "scenario.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "salary acme -> alice 30000.00")
	assert.Contains(t, out, "contract acme -> bob 12000.00")
	assert.Contains(t, out, "4 events, 0 rejected, ledger total 0.00")
}

func TestRun_JournalVerifies(t *testing.T) {
	dir := initProject(t)

	out, _, err := runTaxit(t, dir, nil, "run", "scenario.yaml", "--journal", "journal.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Journal written to journal.csv")

	f, err := os.Open(filepath.Join(dir, "journal.csv"))
	require.NoError(t, err)
	entries, err := ledger.ReadEntries(f)
	f.Close()
	require.NoError(t, err)
	assert.Len(t, entries, 2*18)

	out, _, err = runTaxit(t, dir, nil, "verify", "journal.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "36 entries")
	assert.Contains(t, out, "ok")
}

func TestVerify_DetectsTampering(t *testing.T) {
	dir := initProject(t)
	_, _, err := runTaxit(t, dir, nil, "run", "scenario.yaml", "--journal", "journal.csv")
	require.NoError(t, err)

	path := filepath.Join(dir, "journal.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Drop one leg of the last transfer.
	tampered := strings.Join(lines[:len(lines)-1], "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0o644))

	out, stderr, err := runTaxit(t, dir, nil, "verify", "journal.csv")
	require.Error(t, err)
	assert.Contains(t, out, "invariant 1")
	assert.Contains(t, out, "invariant 2")
	assert.Contains(t, stderr, "invariant violations")
}

func TestRun_StrictStopsAtRejection(t *testing.T) {
	dir := initProject(t)
	f, err := os.OpenFile(filepath.Join(dir, "scenario.yaml"), os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("  - kind: salary\n    employer: acme\n    employee: alice\n    gross: 100\n    dependent_care: 500\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, _, err := runTaxit(t, dir, nil, "run", "scenario.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "5 events, 1 rejected")

	out, stderr, err := runTaxit(t, dir, nil, "run", "scenario.yaml", "--strict")
	require.Error(t, err)
	assert.Contains(t, out, "rejected")
	assert.Contains(t, stderr, "event 5")
}

func TestTax(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runTaxit(t, dir, nil, "tax", "30000", "--already", "30000", "--year", "2021")
	require.NoError(t, err)
	assert.Contains(t, out, "federal/income/single/2021")
	assert.Contains(t, out, "10525.00")
	assert.Contains(t, out, "19475.00")
	assert.Contains(t, out, "Tax due: 5547.50")

	_, stderr, err := runTaxit(t, dir, nil, "tax", "100", "--year", "1990")
	require.Error(t, err)
	assert.Contains(t, stderr, "no rate table for federal/income/single/1990")

	_, _, err = runTaxit(t, dir, nil, "tax", "abc")
	require.Error(t, err)
}

func TestTax_YearFromEnvironment(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runTaxit(t, dir, []string{"TAXIT_YEAR=2020"}, "tax", "10000")
	require.NoError(t, err)
	assert.Contains(t, out, "federal/income/single/2020")
	assert.Contains(t, out, "Tax due: 1002.50") // 9875*10% + 125*12%
}

func TestRates(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runTaxit(t, dir, nil, "rates", "--category", "ssi_employee", "--status", "married")
	require.NoError(t, err)
	assert.Contains(t, out, "federal/ssi_employee/married/2021")
	assert.Contains(t, out, "142800.00")

	out, _, err = runTaxit(t, dir, nil, "rates", "--export", "tables.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 24 tables")

	// The exported file loads back as an extra rates file.
	cfg := config.Default(2021)
	cfg.Rates.File = "tables.yaml"
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))
	_, _, err = runTaxit(t, dir, nil, "rates")
	require.NoError(t, err)

	_, _, err = runTaxit(t, dir, nil, "rates", "--status", "widowed")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := runTaxit(t, t.TempDir(), nil, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}
