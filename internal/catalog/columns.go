package catalog

import "strings"

// ScorePrefix starts every per-activity score column.
const ScorePrefix = "skor_"

// ColumnName canonicalizes an activity name into its score column:
// lower-cased, with '/' and ' ' replaced by '_'.
//
//	Futbol        -> skor_futbol
//	Koşu/Atletizm -> skor_koşu_atletizm
func ColumnName(activity string) string {
	r := strings.NewReplacer("/", "_", " ", "_")
	return ScorePrefix + r.Replace(strings.ToLower(activity))
}

// ColumnMapping is one row of the score column table.
type ColumnMapping struct {
	Activity string
	Column   string
}

// Columns returns the activity to score column table in catalog order.
// New guarantees the mapping is one-to-one.
func (c *Catalog) Columns() []ColumnMapping {
	out := make([]ColumnMapping, len(c.activities))
	for i, a := range c.activities {
		out[i] = ColumnMapping{Activity: a.Name, Column: ColumnName(a.Name)}
	}
	return out
}

// ScoreColumns returns the score column names in catalog order.
func (c *Catalog) ScoreColumns() []string {
	cols := make([]string, len(c.activities))
	for i, a := range c.activities {
		cols[i] = ColumnName(a.Name)
	}
	return cols
}

// ActivityForColumn maps a score column back to its activity name.
func (c *Catalog) ActivityForColumn(column string) (string, bool) {
	name, ok := c.columns[column]
	return name, ok
}

// Header returns the full tabular schema: attributes, the label column and
// one score column per activity.
func (c *Catalog) Header() []string {
	header := make([]string, 0, len(c.attributes)+1+len(c.activities))
	for _, a := range c.attributes {
		header = append(header, a.Name)
	}
	header = append(header, ColRecommended)
	return append(header, c.ScoreColumns()...)
}
