package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/config"
)

func TestLoadRunParams(t *testing.T) {
	cfg = &config.Config{Generation: config.GenerationConfig{Total: 100, BatchSize: 10, Seed: 42, Workers: 1, Output: "out.csv"}}

	cmd := &cobra.Command{Use: "x"}
	addRunFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--total", "25", "--seed", "7"}))

	p := loadRunParams(cmd)
	assert.Equal(t, runParams{Total: 25, BatchSize: 10, Seed: 7, Workers: 1, Output: "out.csv"}, p)
}

func TestRunFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("run", "", "")
	require.NoError(t, cmd.ParseFlags([]string{"--run", "not-a-uuid"}))
	_, err := runFlag(cmd)
	require.Error(t, err)

	require.NoError(t, cmd.Flags().Set("run", "8f14e45f-ceea-467f-a8f2-7a5c8e9f3b21"))
	id, err := runFlag(cmd)
	require.NoError(t, err)
	assert.Equal(t, "8f14e45f-ceea-467f-a8f2-7a5c8e9f3b21", id.String())
}

func TestDomain(t *testing.T) {
	cat := catalog.Default()
	age, _ := cat.Attribute(catalog.AttrAge)
	bmi, _ := cat.Attribute(catalog.AttrBMI)
	sex, _ := cat.Attribute(catalog.AttrSex)

	assert.Equal(t, "[12, 50]", domain(age))
	assert.Equal(t, "derived", domain(bmi))
	assert.Equal(t, "Erkek|Kadın", domain(sex))
}

func TestGenerateThenValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.PathEnvVar, "")
	t.Setenv("TALENTGEN_LOG_LEVEL", "disabled")
	out := filepath.Join(t.TempDir(), "set.csv")

	rootCmd.SetArgs([]string{"generate", "--total", "10", "--batch-size", "5", "--seed", "42", "--output", out})
	require.NoError(t, Execute(context.Background()))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	rootCmd.SetArgs([]string{"validate", out})
	require.NoError(t, Execute(context.Background()))
}
