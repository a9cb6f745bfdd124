// Package record assembles labelled person records from the synthesizer and
// the scorer.
package record

import (
	"strconv"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/scoring"
	"github.com/sbenjam1n/talentgen/internal/synth"
)

// Record is one synthesized person with its activity scores and the
// recommended (highest scoring) activity.
type Record struct {
	synth.Person
	Recommended string         `json:"tavsiye_edilen_spor"`
	Scores      scoring.Scores `json:"scores"`
}

// Row flattens the record into the column order of cat.Header().
func (r *Record) Row(cat *catalog.Catalog) []string {
	attrs := cat.AttributeNames()
	row := make([]string, 0, len(attrs)+1+len(r.Scores))
	for _, name := range attrs {
		row = append(row, r.Field(name))
	}
	row = append(row, r.Recommended)
	for _, name := range cat.ActivityNames() {
		v, _ := r.Scores.Get(name)
		row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return row
}

// ScoreColumns returns the scores keyed by canonical column name.
func (r *Record) ScoreColumns() map[string]float64 {
	out := make(map[string]float64, len(r.Scores))
	for _, sc := range r.Scores {
		out[catalog.ColumnName(sc.Activity)] = sc.Value
	}
	return out
}

// Assembler produces records from a single seeded synthesizer.
type Assembler struct {
	synth  *synth.Synthesizer
	scorer *scoring.Scorer
}

// New creates an Assembler whose synthesizer is seeded with seed.
func New(seed int64, cat *catalog.Catalog) *Assembler {
	return &Assembler{
		synth:  synth.NewWithCatalog(seed, cat),
		scorer: scoring.New(cat),
	}
}

// Assemble synthesizes one person, scores it against every activity and
// labels it with the best one.
func (a *Assembler) Assemble() Record {
	p := a.synth.Person()
	scores := a.scorer.Score(&p)
	best, _ := scores.Best()
	return Record{Person: p, Recommended: best, Scores: scores}
}

// AssembleN assembles n records in sequence.
func (a *Assembler) AssembleN(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = a.Assemble()
	}
	return records
}
