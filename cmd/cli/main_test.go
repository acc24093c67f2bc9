package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostatcheck/adapters/excel"
	"gostatcheck/internal/errors"
)

const paperJSON = `[
  {"test_type": "t", "df1": 25, "test_value": 2.10, "operator": "=", "reported_p_value": 0.05},
  {"test_type": "t", "df1": 25, "test_value": 2.10, "operator": "=", "reported_p_value": 0.05},
  {"test_type": "f", "df1": 1, "df2": 3184, "test_value": 2.20},
  {"test_type": "t", "df1": 20, "test_value": 1.80, "operator": "=", "reported_p_value": 0}
]`

// A rerun of the extractor that missed the last test.
const shortRunJSON = `[
  {"test_type": "t", "df1": 25, "test_value": 2.10, "operator": "=", "reported_p_value": 0.05}
]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"STATCHECK_SIGNIFICANCE_LEVEL", "STATCHECK_WORKERS", "STATCHECK_RUNS_REQUIRED", "STATCHECK_SHEET", "LOG_LEVEL", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	paper := writeFile(t, dir, "paper.json", paperJSON)
	xlsx := filepath.Join(dir, "results.xlsx")

	out, err := run(t, "check", paper, "--workers", "2", "--xlsx", xlsx, "--sheet", "Paper")
	require.NoError(t, err)
	assert.Contains(t, out, "t(25) = 2.10")
	assert.Contains(t, out, "0.04551 to 0.04646")
	assert.Contains(t, out, "2 checked: 1 consistent, 1 inconsistent, 0 cannot be determined, 1 gross")
	assert.Contains(t, out, "(1 duplicate and 1 incomplete records skipped)")

	header, rows, err := excel.ReadTable(xlsx, "Paper")
	require.NoError(t, err)
	assert.Equal(t, "Consistent", header[0], "a single file has no batch column")
	require.Len(t, rows, 2)
	assert.Equal(t, "Yes", rows[0][0])
	assert.Equal(t, "No", rows[1][0])
}

func TestCheckCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	paper := writeFile(t, dir, "paper.json", paperJSON)

	_, err := run(t, "check", paper, "--alpha", "1.5")
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	_, err = run(t, "check", writeFile(t, dir, "paper.txt", paperJSON))
	assert.Equal(t, errors.CodeUnsupportedFile, errors.GetCode(err))

	_, err = run(t, "check", writeFile(t, dir, "broken.json", "[{"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = run(t, "check", paper, "--store")
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err), "no DATABASE_URL")

	_, err = run(t, "check")
	assert.Error(t, err)
}

func TestCheckCmd_NoTests(t *testing.T) {
	out, err := run(t, "check", writeFile(t, t.TempDir(), "empty.yaml", "records: []\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "No statistical tests were found.")
}

func TestVoteCmd(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "run1.json", paperJSON)
	b := writeFile(t, dir, "run2.json", shortRunJSON)
	c := writeFile(t, dir, "run3.json", paperJSON)

	out, err := run(t, "vote", a, b, c)
	require.NoError(t, err)
	assert.Contains(t, out, "Most frequent result")
	assert.Contains(t, out, "t(20) = 1.80")
	assert.Contains(t, out, "2 of 3 runs produced this table.")
}

func TestVoteCmd_RunsRequired(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "run1.json", paperJSON)

	for _, key := range []string{"STATCHECK_SIGNIFICANCE_LEVEL", "STATCHECK_WORKERS", "STATCHECK_SHEET"} {
		t.Setenv(key, "")
	}
	// godotenv never overrides a variable that is already set, even to "".
	require.NoError(t, os.Unsetenv("STATCHECK_RUNS_REQUIRED"))
	t.Cleanup(func() { _ = os.Unsetenv("STATCHECK_RUNS_REQUIRED") })
	envFile := writeFile(t, dir, "vote.env", "STATCHECK_RUNS_REQUIRED=3\n")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"vote", a, "--env-file", envFile})
	err := cmd.Execute()
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestVoteCmd_NoResults(t *testing.T) {
	empty := writeFile(t, t.TempDir(), "run1.json", "[]")
	out, err := run(t, "vote", empty)
	require.NoError(t, err)
	assert.Contains(t, out, "Inconsistent results")
}
