package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/record"
)

func sample(t *testing.T, n int) *Dataset {
	t.Helper()
	cat := catalog.Default()
	d := New(cat)
	d.Append(record.New(42, cat).AssembleN(n)...)
	return d
}

func TestWriteCSV(t *testing.T) {
	d := sample(t, 25)

	var buf bytes.Buffer
	require.NoError(t, d.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 26)
	assert.Equal(t, d.Header, rows[0])
	for i, row := range rows[1:] {
		assert.Len(t, row, len(d.Header))
		assert.Equal(t, d.Records[i].Row(d.Catalog()), row)
	}
}

func TestWriteCSVQuotesListValues(t *testing.T) {
	d := sample(t, 50)
	var buf bytes.Buffer
	require.NoError(t, d.WriteCSV(&buf))
	assert.True(t, strings.Contains(buf.String(), `"['`), "multi-valued cells must be quoted")
}

func TestWriteCSVIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, sample(t, 40).WriteCSV(&a))
	require.NoError(t, sample(t, 40).WriteCSV(&b))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSVSurfacesErrors(t *testing.T) {
	err := sample(t, 200).WriteCSV(failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteFile(t *testing.T) {
	d := sample(t, 10)
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	size, err := d.WriteFile(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), size)
}

func TestWriteFileFailureKeepsDataset(t *testing.T) {
	d := sample(t, 10)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := d.WriteFile(filepath.Join(blocker, "out.csv"))
	require.Error(t, err)
	assert.Equal(t, 10, d.Len())

	_, err = d.WriteFile(filepath.Join(t.TempDir(), "retry.csv"))
	require.NoError(t, err)
}

func TestSummarize(t *testing.T) {
	d := sample(t, 100)
	s := Summarize(d, 1234)

	assert.Equal(t, 100, s.Rows)
	assert.Equal(t, len(d.Header), s.Columns)
	assert.Equal(t, int64(1234), s.FileSize)
	assert.GreaterOrEqual(t, s.MeanAge, 12.0)
	assert.LessOrEqual(t, s.MeanAge, 50.0)
	assert.LessOrEqual(t, len(s.TopActivities), TopN)

	var sexTotal int
	for _, c := range s.Sex {
		sexTotal += c.Count
	}
	assert.Equal(t, 100, sexTotal)

	for i := 1; i < len(s.TopActivities); i++ {
		assert.GreaterOrEqual(t, s.TopActivities[i-1].Count, s.TopActivities[i].Count)
	}

	var buf bytes.Buffer
	s.Print(&buf)
	assert.Contains(t, buf.String(), "Rows:      100")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(New(catalog.Default()), 0)
	assert.Zero(t, s.Rows)
	assert.Empty(t, s.TopActivities)
}

func TestCountsTieOrder(t *testing.T) {
	got := counts(map[string]int{"b": 2, "a": 2, "c": 5, "x": 2}, []string{"a", "b", "c"}, 11)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"c", "a", "b", "x"}, []string{got[0].Value, got[1].Value, got[2].Value, got[3].Value})
}
