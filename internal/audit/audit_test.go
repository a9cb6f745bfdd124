package audit

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/dataset"
	"github.com/sbenjam1n/talentgen/internal/record"
)

func generated(t *testing.T, n int) *dataset.Dataset {
	t.Helper()
	cat := catalog.Default()
	d := dataset.New(cat)
	d.Append(record.New(42, cat).AssembleN(n)...)
	return d
}

func TestGeneratedDatasetPasses(t *testing.T) {
	d := generated(t, 300)

	res := New(d.Catalog()).Dataset(d)
	assert.True(t, res.Passed, "%v", res.Details)
	assert.Equal(t, 300, res.Rows)
	assert.Equal(t, 1, res.Tier)
}

func TestFileRoundTripPasses(t *testing.T) {
	d := generated(t, 100)
	path := filepath.Join(t.TempDir(), "d.csv")
	_, err := d.WriteFile(path)
	require.NoError(t, err)

	res, err := New(catalog.Default()).File(path)
	require.NoError(t, err)
	assert.True(t, res.Passed, "%v", res.Details)
	assert.Equal(t, 100, res.Rows)
}

func csvWith(t *testing.T, mutate func(a *Auditor, row []string)) string {
	t.Helper()
	d := generated(t, 1)
	a := New(d.Catalog())
	row := d.Records[0].Row(d.Catalog())
	mutate(a, row)
	d2 := [][]string{d.Header, row}
	var buf bytes.Buffer
	for _, r := range d2 {
		buf.WriteString(strings.Join(quoteAll(r), ","))
		buf.WriteByte('\n')
	}
	return buf.String()
}

func quoteAll(r []string) []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return out
}

func TestRowFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Auditor, row []string)
		check  string
	}{
		{"height out of range", func(a *Auditor, row []string) { row[a.index[catalog.AttrHeight]] = "230" }, "range"},
		{"unknown category", func(a *Auditor, row []string) { row[a.index[catalog.AttrSex]] = "X" }, "category"},
		{"bad list", func(a *Auditor, row []string) { row[a.index[catalog.AttrPreviousSports]] = "Futbol" }, "list"},
		{"bmi drift", func(a *Auditor, row []string) { row[a.index[catalog.AttrBMI]] = "99" }, "bmi"},
		{"score above 100", func(a *Auditor, row []string) { row[a.index[catalog.ColumnName(catalog.Tennis)]] = "101" }, "score"},
		{"wrong label", func(a *Auditor, row []string) {
			cur := row[a.index[catalog.ColRecommended]]
			other := catalog.Boxing
			if cur == other {
				other = catalog.Tennis
			}
			row[a.index[catalog.ColRecommended]] = other
		}, "label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(catalog.Default()).Reader(strings.NewReader(csvWith(t, tt.mutate)))
			require.NoError(t, err)
			require.False(t, res.Passed)
			var checks []string
			for _, d := range res.Details {
				checks = append(checks, d.Check)
				assert.Equal(t, 1, d.Row)
			}
			assert.Contains(t, checks, tt.check)
		})
	}
}

func TestHeaderMismatch(t *testing.T) {
	res, err := New(catalog.Default()).Reader(strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, 0, res.Tier)
	assert.Zero(t, res.Rows)
	assert.LessOrEqual(t, len(res.Details), MaxDetails)
	assert.Greater(t, res.Failures, MaxDetails)
}

func TestEmptyInput(t *testing.T) {
	_, err := New(catalog.Default()).Reader(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		ok   bool
	}{
		{"['Futbol', 'Basketbol']", []string{"Futbol", "Basketbol"}, true},
		{"['Hiçbiri']", []string{"Hiçbiri"}, true},
		{"[]", []string{}, true},
		{"Futbol", nil, false},
		{"[Futbol]", nil, false},
	}
	for _, tt := range tests {
		got, ok := ParseList(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
