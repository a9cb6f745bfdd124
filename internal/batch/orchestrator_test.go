package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/record"
)

func quiet() Option {
	return WithLogger(zerolog.Nop())
}

func TestPlan(t *testing.T) {
	tests := []struct {
		total, size int
		want        []int
	}{
		{10, 5, []int{5, 5}},
		{11, 5, []int{5, 5, 1}},
		{3, 5, []int{3}},
		{0, 5, []int{}},
	}
	for _, tt := range tests {
		plan := New(nil, tt.size, 42, quiet()).Plan(tt.total)
		sizes := make([]int, 0, len(plan))
		for i, b := range plan {
			assert.Equal(t, i, b.Index)
			assert.Equal(t, int64(42+i*1000), b.Seed)
			sizes = append(sizes, b.Size)
		}
		assert.Equal(t, tt.want, sizes, "Plan(%d) size %d", tt.total, tt.size)
	}
}

func TestBatchCount(t *testing.T) {
	tests := []struct{ total, size, want int }{
		{10, 5, 2},
		{10, 3, 4},
		{1, 1000, 1},
		{0, 10, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := BatchCount(tt.total, tt.size); got != tt.want {
			t.Errorf("BatchCount(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestBatchAt(t *testing.T) {
	o := New(nil, 4, 42, quiet())
	plan := o.Plan(10)
	for i, want := range plan {
		got, err := o.BatchAt(10, i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	last, err := o.BatchAt(10, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, last.Size)

	d, err := o.Generate(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, d.Records[8:], o.GenerateBatch(last))

	for _, index := range []int{-1, 3} {
		_, err := o.BatchAt(10, index)
		require.ErrorIs(t, err, ErrInvalidParams, "index %d", index)
	}
	_, err = o.BatchAt(0, 0)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestGenerateScenario(t *testing.T) {
	var calls [][4]int
	o := New(nil, 5, 42, quiet(), WithProgress(func(c, tot, b, n int) {
		calls = append(calls, [4]int{c, tot, b, n})
	}))

	d, err := o.Generate(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, 10, d.Len())
	assert.Equal(t, [][4]int{{5, 10, 1, 2}, {10, 10, 2, 2}}, calls)

	cat := catalog.Default()
	assert.Len(t, d.Header, len(cat.Attributes())+1+len(cat.Activities()))
	for _, r := range d.Records {
		assert.NotEmpty(t, r.Recommended)
		assert.NotEqual(t, catalog.NoSport, r.Recommended)
		best, _ := r.Scores.Best()
		assert.Equal(t, best, r.Recommended)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	gen := func() []byte {
		d, err := New(nil, 7, 99, quiet()).Generate(context.Background(), 50)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, d.WriteCSV(&buf))
		return buf.Bytes()
	}
	assert.Equal(t, gen(), gen())
}

func TestBatchIndependence(t *testing.T) {
	o := New(nil, 10, 42, quiet())
	d, err := o.Generate(context.Background(), 50)
	require.NoError(t, err)

	alone := record.New(42+3000, catalog.Default()).AssembleN(10)
	assert.Equal(t, alone, d.Records[30:40])

	assert.Equal(t, alone, o.GenerateBatch(Batch{Index: 3, Seed: SeedFor(42, 3), Size: 10}))
}

func TestParallelMatchesSequential(t *testing.T) {
	seq, err := New(nil, 8, 7, quiet()).Generate(context.Background(), 100)
	require.NoError(t, err)

	var mu sync.Mutex
	var last int
	par, err := New(nil, 8, 7, quiet(), WithWorkers(4), WithProgress(func(c, tot, _, _ int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Greater(t, c, last)
		last = c
	})).Generate(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, seq.Records, par.Records)
	assert.Equal(t, 100, last)
}

func TestGenerateInvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		o     *Orchestrator
		total int
	}{
		{"zero total", New(nil, 5, 1, quiet()), 0},
		{"zero batch size", New(nil, 0, 1, quiet()), 10},
		{"zero workers", New(nil, 5, 1, quiet(), WithWorkers(0)), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.o.Generate(context.Background(), tt.total)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParams))
		})
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var batches int
	o := New(nil, 5, 1, quiet(), WithProgress(func(_, _, b, _ int) {
		batches = b
		if b == 2 {
			cancel()
		}
	}))

	_, err := o.Generate(ctx, 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 2, batches)
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	res, err := New(nil, 5, 42, quiet()).Run(context.Background(), 10, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), res.Summary.FileSize)
	assert.Equal(t, 10, res.Summary.Rows)
	assert.Equal(t, 2, res.Batches)
}

func TestRunWriteFailureKeepsDataset(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	res, err := New(nil, 5, 42, quiet()).Run(context.Background(), 10, filepath.Join(blocker, "out.csv"))
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 10, res.Dataset.Len())

	_, err = res.Dataset.WriteFile(filepath.Join(t.TempDir(), "retry.csv"))
	require.NoError(t, err)
}

func TestProgressivePath(t *testing.T) {
	tests := []struct {
		base string
		size int
		want string
	}{
		{"data/set.csv", 1000, "data/set_1000.csv"},
		{"set", 5, "set_5.csv"},
		{"out/x.tsv", 20, "out/x_20.tsv"},
	}
	for _, tt := range tests {
		if got := ProgressivePath(tt.base, tt.size); got != tt.want {
			t.Errorf("ProgressivePath(%q, %d) = %q, want %q", tt.base, tt.size, got, tt.want)
		}
	}
}

func TestProgressive(t *testing.T) {
	base := filepath.Join(t.TempDir(), "sports.csv")
	results, err := New(nil, 4, 42, quiet()).Progressive(context.Background(), []int{5, 12}, base)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 5, results[0].Dataset.Len())
	assert.Equal(t, 12, results[1].Dataset.Len())
	assert.Equal(t, results[0].Dataset.Records, results[1].Dataset.Records[:5])
	assert.FileExists(t, filepath.Join(filepath.Dir(base), "sports_5.csv"))
	assert.FileExists(t, filepath.Join(filepath.Dir(base), "sports_12.csv"))
}
