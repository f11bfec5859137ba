package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/datalens-cli/internal/inspect"
)

const trainCSV = `id,age,cabin,port,is_valid
1,22,,S,0
2,,,C,0
3,26,,S,0
4,35,C85,Q,1
`

// resetFlags restores every flag to its default so values do not leak
// between invocations of the shared root command.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns its output.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCLI_Missing(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainCSV)

	out, err := runCmd(t, "missing", data, "--format", "markdown", "--threshold", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Dataset: train")
	assert.Contains(t, out, "| cabin | 75 |")
	assert.Contains(t, out, "| age | 25 |")
	assert.NotContains(t, out, "| port |")
	assert.Contains(t, out, "threshold 50%: ['cabin']")
}

func TestCLI_MissingUnknownColumn(t *testing.T) {
	data := writeFile(t, t.TempDir(), "train.csv", trainCSV)
	_, err := runCmd(t, "missing", data, "--columns", "nope")
	require.ErrorIs(t, err, inspect.ErrColumnNotFound)
}

func TestCLI_NoDataset(t *testing.T) {
	_, err := runCmd(t, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dataset given")
}

func TestCLI_FeaturesFileFoundNextToDataset(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainCSV)
	writeFile(t, dir, "features.yaml", "categorical: [port]\ncontinuous: [age]\n")

	out, err := runCmd(t, "rare", data, "--format", "markdown", "--threshold", "0.3")
	require.NoError(t, err)
	assert.Contains(t, out, "port has 3 levels.")
	assert.Contains(t, out, "| C | 0.25 |")
	assert.NotContains(t, out, "| S |")

	out, err = runCmd(t, "unseen", data, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| port | 1 | ['Q'] |", "split column is picked up from the config default")
}

func TestCLI_FlagsOverrideFeatures(t *testing.T) {
	data := writeFile(t, t.TempDir(), "train.csv", trainCSV)
	out, err := runCmd(t, "bins", data, "--continuous", "id", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "- id")
}

func TestCLI_VarianceUnknownMode(t *testing.T) {
	data := writeFile(t, t.TempDir(), "train.csv", trainCSV)
	_, err := runCmd(t, "variance", data, "--categorical", "port", "--mode", "medium")
	require.ErrorIs(t, err, inspect.ErrConfiguration)
}

func TestCLI_VarianceHighMode(t *testing.T) {
	data := writeFile(t, t.TempDir(), "train.csv", trainCSV)
	out, err := runCmd(t, "variance", data, "--categorical", "port,id", "--mode", "high", "--threshold", "0.7", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "[HIGH VARIANCE FEATURES]")
	assert.Contains(t, out, "| id | 1.25 |")
	assert.Contains(t, out, "Discarded as low variance: ['port']")
}

func TestCLI_VarianceOrder(t *testing.T) {
	data := writeFile(t, t.TempDir(), "levels.csv", "c\nx\nz\nz\ny\n")
	out, err := runCmd(t, "variance", data, "--categorical", "c", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| c | 0.5 |")

	out, err = runCmd(t, "variance", data, "--categorical", "c", "--order", "lexical", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| c | 0.6875 |")

	_, err = runCmd(t, "variance", data, "--categorical", "c", "--order", "random")
	assert.Error(t, err)
}

func TestCLI_LevelHelpDescribesNumberText(t *testing.T) {
	for _, c := range []*cobra.Command{rareCmd, varianceCmd} {
		assert.Contains(t, c.Long, `2.50 is "2.5"`, c.Name())
	}
}

func TestCLI_DropMissingWritesCSV(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainCSV)
	dest := filepath.Join(dir, "out", "dropped.csv")

	out, err := runCmd(t, "drop-missing", data, "--threshold", "50", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "['cabin']")
	assert.Contains(t, out, "✓ Wrote "+dest)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "id,age,port,is_valid\n"))
}

func TestCLI_FillContinuous(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainCSV)
	dest := filepath.Join(dir, "filled.csv")

	out, err := runCmd(t, "fill", data, "--kind", "continuous", "--columns", "age", "--value", "-1", "-o", dest, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| age | 1 |")

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(b), "2,-1,,C,0\n")
}

func TestCLI_FillCategoricalWithValidation(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", "port,age\nS,1\n,2\n")
	valid := writeFile(t, dir, "valid.csv", "port,age\n,3\nQ,4\n")
	dest := filepath.Join(dir, "valid_filled.csv")

	_, err := runCmd(t, "fill", data, "--kind", "categorical", "--categorical", "port", "--valid", valid, "--valid-output", dest, "--format", "markdown")
	require.NoError(t, err)
	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "port,age\nNONE,3\nQ,4\n", string(b))
}

func TestCLI_FillRejectsBadKind(t *testing.T) {
	data := writeFile(t, t.TempDir(), "train.csv", trainCSV)
	_, err := runCmd(t, "fill", data, "--kind", "everything")
	require.Error(t, err)
}

func TestCLI_UnseenWithValidDataset(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", "port\nS\nC\n")
	valid := writeFile(t, dir, "valid.csv", "port\nC\nQ\nX\n")

	out, err := runCmd(t, "unseen", data, "--valid", valid, "--categorical", "port", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| port | 2 | ['Q', 'X'] |")
}

func TestCLI_InspectWritesReport(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainCSV)
	writeFile(t, dir, "features.yaml", "categorical: [port]\ncontinuous: [age]\n")
	dest := filepath.Join(dir, "report.yaml")

	out, err := runCmd(t, "inspect", data, "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote report to "+dest)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	body := string(b)
	assert.Contains(t, body, "dataset: train")
	assert.Contains(t, body, "title: Unseen validation levels")
	assert.Contains(t, body, "title: Freedman-Diaconis bin widths")
}

func TestCLI_InspectText(t *testing.T) {
	data := writeFile(t, t.TempDir(), "train.csv", trainCSV)
	out, err := runCmd(t, "inspect", data, "--no-color", "--categorical", "port")
	require.NoError(t, err)
	assert.Contains(t, out, "=== DATASET TRAIN ===")
	assert.Contains(t, out, "=== MISSING VALUES ===")
	assert.NotContains(t, out, "\x1b[")
}

func TestCLI_Concat(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.csv", "a,b\n1,x\n")
	valid := writeFile(t, dir, "valid.csv", "a,c\n2,y\n")

	out, err := runCmd(t, "concat", train, valid, "--split", "fold")
	require.NoError(t, err)
	assert.Equal(t, "a,b,c,fold\n1,x,,0\n2,,y,1\n", out)
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := runCmd(t, "--config", path, "config", "set", "rare_threshold", "0.05")
	require.Error(t, err, "explicit config file must exist")

	require.NoError(t, os.WriteFile(path, []byte("min_levels: 2\n"), 0o644))
	out, err = runCmd(t, "--config", path, "config", "set", "rare_threshold", "0.05")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved config")

	out, err = runCmd(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "rare_threshold: 0.05")
	assert.Contains(t, out, "min_levels: 2")
	assert.Contains(t, out, "variance_threshold: +Inf")

	assert.Contains(t, out, "variance_order: first_seen")

	_, err = runCmd(t, "--config", path, "config", "set", "variance_order", "Lexical")
	require.NoError(t, err)
	out, err = runCmd(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "variance_order: lexical")

	_, err = runCmd(t, "--config", path, "config", "set", "variance_order", "random")
	assert.Error(t, err)
	_, err = runCmd(t, "--config", path, "config", "set", "variance_mode", "medium")
	assert.Error(t, err)
	_, err = runCmd(t, "--config", path, "config", "set", "bogus", "1")
	assert.Error(t, err)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", mask(""))
	assert.Equal(t, "******", mask("abc"))
	assert.Equal(t, "use****:db", mask("user:pw@tcp(host)/x:db"))
}
