package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biodesigner/internal/stats"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--store", "memory"}, args...)
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const circuitJSON = `{
	"nodes": [
		{"id": "p1", "type": "promoter", "data": {"strength": "low", "inducible": true, "inducer": "IPTG"}},
		{"id": "p2", "type": "promoter", "data": {"strength": "medium"}},
		{"id": "gfp", "type": "gene", "data": {"function": "reporter"}}
	],
	"edges": [{"id": "e1", "source": "p1", "target": "gfp"}],
	"optimizationGoal": "maxExpression"
}`

func TestOptimizeCommandWritesResultAndReport(t *testing.T) {
	input := writeFile(t, "circuit.json", circuitJSON)
	out := t.TempDir()

	stdout, _, err := runCLI(t, "", "optimize", input, "--iterations", "25", "--seed", "3", "--out", out)
	require.NoError(t, err)

	var result struct {
		Goal           string    `json:"goal"`
		Iterations     int       `json:"iterations"`
		OriginalScore  float64   `json:"original_score"`
		OptimizedScore float64   `json:"optimized_score"`
		Trace          []float64 `json:"trace"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "maxExpression", result.Goal)
	assert.Equal(t, 25, result.Iterations)
	assert.Len(t, result.Trace, 25)
	assert.GreaterOrEqual(t, result.OptimizedScore, result.OriginalScore)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	cfg, ok, err := stats.ReadRunConfig(out, entries[0].Name())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), cfg.Seed)
	assert.Equal(t, 25, cfg.Iterations)
}

func TestOptimizeCommandReadsStdinAndHonoursGoalFlag(t *testing.T) {
	stdout, _, err := runCLI(t, circuitJSON, "optimize", "-", "--goal", "stability", "--iterations", "0")
	require.NoError(t, err)
	var result struct {
		Goal          string  `json:"goal"`
		OriginalScore float64 `json:"original_score"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "stability", result.Goal)
	assert.Equal(t, 2.0, result.OriginalScore)
}

func TestOptimizeCommandUsesConfigDefaults(t *testing.T) {
	config := writeFile(t, "config.yaml", "optimizer:\n  iterations: 7\n  seed: 1\n")
	input := writeFile(t, "circuit.json", circuitJSON)
	stdout, _, err := runCLI(t, "", "--config", config, "optimize", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"iterations": 7`)
}

func TestOptimizeCommandRejectsUnknownGoal(t *testing.T) {
	input := writeFile(t, "circuit.json", circuitJSON)
	_, _, err := runCLI(t, "", "optimize", input, "--goal", "fastest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown optimization goal")
}

func TestSimulateCommand(t *testing.T) {
	input := writeFile(t, "circuit.json", circuitJSON)
	stdout, _, err := runCLI(t, "", "simulate", input)
	require.NoError(t, err)
	var result struct {
		Levels map[string]float64 `json:"levels"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.InDelta(t, 100.0, result.Levels["gfp"], 1e-9)
	assert.InDelta(t, 50.0, result.Levels["p2"], 1e-9)
}

func TestCodonCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "", "codon", "aagaacaat", "--organism", "ecoli")
	require.NoError(t, err)
	var result struct {
		OptimizedSequence string `json:"optimizedSequence"`
		Organism          string `json:"organism"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "AAAAACAAC", result.OptimizedSequence)
	assert.Equal(t, "ecoli", result.Organism)

	stdout, _, err = runCLI(t, "", "codon", "AAGAACAAT", "--expression", "--organism", "human")
	require.NoError(t, err)
	assert.Contains(t, stdout, "consider using a strong CMV promoter")

	_, _, err = runCLI(t, "", "codon")
	assert.Error(t, err)
}

func TestValidateCommandReadsFasta(t *testing.T) {
	fasta := writeFile(t, "seq.fasta", ">demo sequence\nttGAATTC\nGG\n")
	stdout, _, err := runCLI(t, "", "validate", "--file", fasta)
	require.NoError(t, err)
	var report struct {
		IsValidDNA bool `json:"isValidDNA"`
		Length     int  `json:"length"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.IsValidDNA)
	assert.Equal(t, 10, report.Length)
}

func TestTranslateCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "", "translate", "CCATGAAATAAGGG")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"proteinSequence": "MK"`)
}

func TestTablesCommands(t *testing.T) {
	stdout, _, err := runCLI(t, "", "tables", "list")
	require.NoError(t, err)
	assert.Equal(t, "e_coli\nhuman\nyeast\n", stdout)

	stdout, _, err = runCLI(t, "", "tables", "show", "Yeast")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"name": "Saccharomyces cerevisiae"`)

	table := writeFile(t, "pichia.yaml", "organism: Pichia\nname: Komagataella phaffii\nfrequencies:\n  AAA: 0.47\n  AAG: 0.53\n")
	stdout, _, err = runCLI(t, "", "tables", "import", table)
	require.NoError(t, err)
	assert.Equal(t, "imported pichia\n", stdout)

	bad := writeFile(t, "bad.yaml", "organism: broken\nfrequencies:\n  XYZ: 0.5\n")
	_, _, err = runCLI(t, "", "tables", "import", bad)
	assert.Error(t, err)

	_, _, err = runCLI(t, "", "tables", "show", "pichia")
	assert.Error(t, err)
}

func TestLogFlagsAreValidated(t *testing.T) {
	_, _, err := runCLI(t, "", "--log-level", "loud", "tables", "list")
	assert.Error(t, err)

	_, stderr, err := runCLI(t, "", "--log-format", "json", "codon", "AAG")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"codons optimized"`)
}

func TestUnknownStoreKind(t *testing.T) {
	_, _, err := runCLI(t, "", "--store", "postgres", "tables", "list")
	assert.Error(t, err)
}

func TestParseSequence(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"plain":           {in: "ATGAAA", want: "ATGAAA"},
		"plain multiline": {in: "ATG\nAAA\n", want: "ATGAAA"},
		"fasta":           {in: ">gene1 demo\nATGAAA\nTAA\n", want: "ATGAAATAA"},
		"crlf":            {in: ">gene1\r\nATG\r\nAAA\r\n", want: "ATGAAA"},
		"comments":        {in: ";note\n>gene1\nATG\n;more\nAAA\n", want: "ATGAAA"},
		"two records":     {in: ">a\nATG\n>b\nCCC\n", want: "ATGCCC"},
		"empty":           {in: "", want: ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseSequence([]byte(tc.in)))
		})
	}
}
