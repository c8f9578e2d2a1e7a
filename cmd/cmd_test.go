package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/transport/history"
)

const textbookFile = "../infra/problemfile/testdata/textbook.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// useHistory points the configuration at a fresh jsonl store.
func useHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solutions.jsonl")
	t.Setenv("K_HISTORY__BACKEND", "jsonl")
	t.Setenv("K_HISTORY__PATH", path)
	return path
}

func TestSolveCommand(t *testing.T) {
	useHistory(t)
	out, err := execute(t, "solve", "-f", textbookFile, "-m", "nw", "--format", "json")
	require.NoError(t, err)
	var sol model.Solution
	require.NoError(t, json.Unmarshal([]byte(out), &sol))
	assert.Equal(t, 1080.0, sol.TotalCost)

	out, err = execute(t, "solve", "-f", textbookFile, "-m", "vogel", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Plant A")
	assert.Contains(t, out, "Vogel (VAM): total cost 880")

	out, err = execute(t, "solve", "-f", textbookFile, "-m", "mincost", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "origin,destination,amount,unit_cost,cost"))

	_, err = execute(t, "solve", "-f", textbookFile, "-m", "greedy")
	assert.ErrorIs(t, err, model.ErrUnknownMethod)
	_, err = execute(t, "solve", "-f", textbookFile, "-m", "vogel", "--format", "xml")
	assert.Error(t, err)
	t.Cleanup(func() { solveOpts.remote = false })
	_, err = execute(t, "solve", "-f", textbookFile, "-m", "vogel", "--format", "table", "--remote")
	assert.Error(t, err, "remote needs a broker")
}

func TestCompareCommand(t *testing.T) {
	useHistory(t)
	chart := filepath.Join(t.TempDir(), "cmp.html")
	out, err := execute(t, "compare", "-f", textbookFile, "--reference", "--format", "table", "--chart", chart)
	require.NoError(t, err)
	assert.Contains(t, out, "Northwest Corner")
	assert.Contains(t, out, "Simplex (LP)")

	data, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Minimum Cost")

	compareOpts.reference, compareOpts.chart = false, ""
	out, err = execute(t, "compare", "-f", textbookFile, "--format", "json")
	require.NoError(t, err)
	var cmp model.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.Len(t, cmp.Solutions, 3)
	assert.Nil(t, cmp.Reference)
}

func TestHistoryCommands(t *testing.T) {
	path := useHistory(t)
	_, err := execute(t, "solve", "-f", textbookFile, "-m", "nw", "--format", "json")
	require.NoError(t, err)
	_, err = execute(t, "solve", "-f", textbookFile, "-m", "vogel", "--format", "json")
	require.NoError(t, err)

	out, err := execute(t, "history", "ls", "--format", "json", "-m", "vogel")
	require.NoError(t, err)
	var recs []history.Record
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, 880.0, recs[0].Solution.TotalCost)

	historyOpts.method = ""
	out, err = execute(t, "history", "ls", "--format", "table")
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(out), "\n")))
	assert.Contains(t, out, "3x4")

	_, err = execute(t, "history", "clear")
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestHistoryNeedsPersistentBackend(t *testing.T) {
	t.Setenv("K_HISTORY__BACKEND", "memory")
	_, err := execute(t, "history", "clear")
	assert.Error(t, err)
}
