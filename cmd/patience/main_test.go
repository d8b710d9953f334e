package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amp-labs/patience/compare"
	"github.com/amp-labs/patience/envutil"
	"github.com/amp-labs/patience/lines"
	"github.com/amp-labs/patience/patience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/alecthomas/kingpin.v2"
)

type result struct {
	stdout string
	stderr string
}

// invoke runs the command line with args. Logging is global, so the tests in
// this package do not run in parallel.
func invoke(ctx context.Context, t *testing.T, stdin string, args ...string) (result, error) {
	t.Helper()

	app := kingpin.New(appName, "test")
	app.Terminate(func(int) {})
	app.Writer(io.Discard)

	var stdout, stderr bytes.Buffer

	ctx = envutil.WithEnvOverride(ctx, "LOG_LEVEL", "error")

	err := run(ctx, app, args, strings.NewReader(stdin), &stdout, &stderr)

	return result{stdout: stdout.String(), stderr: stderr.String()}, err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestSort_Stdin(t *testing.T) { //nolint:paralleltest
	tests := []struct {
		name     string
		input    string
		args     []string
		expected string
	}{
		{
			name:     "lexical default",
			input:    "pear\napple\nfig\n",
			args:     []string{"sort"},
			expected: "apple\nfig\npear\n",
		},
		{
			name:     "natural",
			input:    "file10\nfile2\nfile1\n",
			args:     []string{"sort", "--comparator", "natural"},
			expected: "file1\nfile2\nfile10\n",
		},
		{
			name:     "length then lexical",
			input:    "ccc\nb\naa\nd\n",
			args:     []string{"sort", "--comparator", "length", "--ties", "new-pile"},
			expected: "b\nd\naa\nccc\n",
		},
		{
			name:     "reverse linked",
			input:    "2\n10\n1\n",
			args:     []string{"sort", "--comparator", "numeric", "-r", "--linked", "--verify"},
			expected: "10\n2\n1\n",
		},
		{
			name:     "no trailing newline",
			input:    "b\r\na",
			args:     []string{"sort", "-"},
			expected: "a\nb\n",
		},
		{
			name:     "dash for input and output",
			input:    "2\n1\n",
			args:     []string{"sort", "-", "-o", "-", "--comparator", "numeric"},
			expected: "1\n2\n",
		},
		{
			name:     "empty input",
			input:    "",
			args:     []string{"sort", "--verify"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := invoke(t.Context(), t, tt.input, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.stdout)
		})
	}
}

func TestSort_EnvironmentSettings(t *testing.T) { //nolint:paralleltest
	ctx := envutil.WithEnvOverrides(t.Context(), map[string]string{
		envComparator: "FOLD",
		envTies:       "new-pile",
	})

	res, err := invoke(ctx, t, "b\nA\na\nB\n", "sort")
	require.NoError(t, err)
	assert.Equal(t, "A\na\nb\nB\n", res.stdout)

	// Flags win over the environment.
	res, err = invoke(ctx, t, "b\nA\na\nB\n", "sort", "--comparator", "lexical")
	require.NoError(t, err)
	assert.Equal(t, "A\nB\na\nb\n", res.stdout)
}

func TestSort_ConfigFile(t *testing.T) { //nolint:paralleltest
	config := writeInput(t, "patience.yaml", "env:\n  PATIENCE_COMPARATOR: length\n")

	res, err := invoke(t.Context(), t, "aaa\nb\ncc\n", "--config", config, "sort")
	require.NoError(t, err)
	assert.Equal(t, "b\ncc\naaa\n", res.stdout)
}

func TestSort_Files(t *testing.T) { //nolint:paralleltest
	dir := t.TempDir()
	input := writeInput(t, "words.txt", "delta\nalpha\ncharlie\nbravo\n")
	output := filepath.Join(dir, "sorted.txt.zst")
	metricsFile := filepath.Join(dir, "sort.prom")

	res, err := invoke(t.Context(), t, "", "sort", input,
		"-o", output, "--stats", "--verify", "--metrics-file", metricsFile)
	require.NoError(t, err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "4 lines (contiguous)")

	src, err := lines.Open(output, lines.Auto)
	require.NoError(t, err)

	sorted, _, err := lines.Read(src)
	require.NoError(t, err)
	require.NoError(t, src.Close())
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta"}, sorted)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `patience_sort_calls_total{variant="contiguous"} 1`)
	assert.Contains(t, string(prom), `patience_sort_elements_total{variant="contiguous"} 4`)
}

func TestSort_Errors(t *testing.T) { //nolint:paralleltest
	tests := []struct {
		name string
		env  map[string]string
		args []string
		err  error
	}{
		{
			name: "unknown comparator flag",
			args: []string{"sort", "--comparator", "random"},
			err:  compare.ErrUnknownComparator,
		},
		{
			name: "unknown comparator variable",
			env:  map[string]string{envComparator: "random"},
			args: []string{"sort"},
			err:  envutil.ErrNotAllowed,
		},
		{
			name: "unknown tie policy",
			env:  map[string]string{envTies: "sideways"},
			args: []string{"sort"},
			err:  patience.ErrUnknownTiePolicy,
		},
		{
			name: "unknown compression",
			args: []string{"sort", "--compression", "rar"},
			err:  lines.ErrUnknownCompression,
		},
		{
			name: "missing file",
			args: []string{"sort", filepath.Join(os.TempDir(), "does-not-exist.txt")},
			err:  os.ErrNotExist,
		},
		{
			name: "config with unknown suffix",
			args: []string{"--config", "settings.ini", "sort"},
			err:  envutil.ErrUnknownFileType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := invoke(envutil.WithEnvOverrides(t.Context(), tt.env), t, "x\n", tt.args...)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParse_Errors(t *testing.T) { //nolint:paralleltest
	_, err := invoke(t.Context(), t, "", "shuffle")
	require.Error(t, err)

	_, err = invoke(t.Context(), t, "", "piles")
	require.Error(t, err)
}

func TestPiles(t *testing.T) { //nolint:paralleltest
	first := writeInput(t, "first.txt", "3\n1\n2\n")
	second := writeInput(t, "second.txt", "5\n4\n3\n2\n1\n")

	res, err := invoke(t.Context(), t, "", "piles", "--workers", "2", first, second)
	require.NoError(t, err)

	out := res.stdout
	assert.Contains(t, out, "Largest")
	require.Contains(t, out, first)
	require.Contains(t, out, second)
	assert.Less(t, strings.Index(out, first), strings.Index(out, second))
}

func TestPiles_Stdin(t *testing.T) { //nolint:paralleltest
	res, err := invoke(t.Context(), t, "3\n1\n2\n", "piles", "-")
	require.NoError(t, err)

	assert.Contains(t, res.stdout, "Smallest")
	assert.Regexp(t, `-\s+\|\s+3\s+\|\s+2\s+\|`, res.stdout)
}

func TestStdioArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{name: "empty", args: []string{}, expected: []string{}},
		{name: "lone dash", args: []string{"sort", "-"}, expected: []string{"sort", ""}},
		{name: "dash flag value", args: []string{"sort", "-o", "-"}, expected: []string{"sort", "-o", ""}},
		{name: "flags untouched", args: []string{"sort", "-r", "--", "x"}, expected: []string{"sort", "-r", "--", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, stdioArgs(tt.args))
		})
	}
}

func TestReportPiles(t *testing.T) {
	t.Parallel()

	less := compare.Numeric()

	tests := []struct {
		name     string
		values   []string
		ties     patience.TiePolicy
		expected pileReport
	}{
		{
			name:     "empty",
			expected: pileReport{path: "in"},
		},
		{
			name:     "mixed",
			values:   []string{"3", "1", "2"},
			expected: pileReport{path: "in", lines: 3, piles: 2, largest: 2, smallest: 1},
		},
		{
			name:     "decreasing",
			values:   []string{"3", "2", "1"},
			expected: pileReport{path: "in", lines: 3, piles: 3, largest: 1, smallest: 1},
		},
		{
			name:     "equal values extend",
			values:   []string{"7", "7", "7"},
			expected: pileReport{path: "in", lines: 3, piles: 1, largest: 3, smallest: 3},
		},
		{
			name:     "equal values new pile",
			values:   []string{"7", "7", "7"},
			ties:     patience.TiesNewPile,
			expected: pileReport{path: "in", lines: 3, piles: 3, largest: 1, smallest: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := reportPiles("in", tt.values, ordering{less: less, ties: tt.ties})
			assert.Equal(t, tt.expected, report)
		})
	}
}

func TestBench(t *testing.T) { //nolint:paralleltest
	res, err := invoke(t.Context(), t, "", "bench", "--max-exp", "3", "--repeats", "1")
	require.NoError(t, err)

	assert.Contains(t, res.stdout, "Elements")
	assert.Contains(t, res.stdout, "patience (list)")
	assert.Contains(t, res.stdout, "slices.Sort")
}
