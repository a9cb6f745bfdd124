// Package audit checks persisted datasets against the catalog schema and the
// record invariants: value ranges, BMI derivation, score bounds and the
// arg-max label.
//
// Tier 0 is structural (header and row width). Tier 1 checks every row and
// only runs when tier 0 passed.
package audit

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/dataset"
	"github.com/sbenjam1n/talentgen/internal/synth"
)

// MaxDetails caps the failing checks kept in a Result.
const MaxDetails = 20

// BMITolerance is the allowed gap between bmi and kilo/(boy/100)^2.
const BMITolerance = 1e-6

// Result is the outcome of an audit.
type Result struct {
	Tier     int      `json:"tier"`
	Passed   bool     `json:"passed"`
	Rows     int      `json:"rows"`
	Failures int      `json:"failures"`
	Message  string   `json:"message"`
	Details  []Detail `json:"details,omitempty"`
}

// Detail describes a single failing check.
type Detail struct {
	Row      int    `json:"row"`
	Check    string `json:"check"`
	Column   string `json:"column,omitempty"`
	Expected string `json:"expected,omitempty"`
	Got      string `json:"got,omitempty"`
}

func (r *Result) fail(d Detail) {
	r.Passed = false
	r.Failures++
	if len(r.Details) < MaxDetails {
		r.Details = append(r.Details, d)
	}
}

// Auditor checks rows against one catalog.
type Auditor struct {
	attributes []catalog.AttributeSpec
	activities []catalog.ActivityProfile
	header     []string
	index      map[string]int
}

// New creates an Auditor for cat.
func New(cat *catalog.Catalog) *Auditor {
	header := cat.Header()
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	return &Auditor{
		attributes: cat.Attributes(),
		activities: cat.Activities(),
		header:     header,
		index:      index,
	}
}

// File audits the CSV file at path.
func (a *Auditor) File(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return a.Reader(f)
}

// Reader audits CSV text read from r.
func (a *Auditor) Reader(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	res := a.Header(header)
	if !res.Passed {
		return res, nil
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", res.Rows+1, err)
		}
		res.Rows++
		a.Row(res, res.Rows, row)
	}
	return res.finish(), nil
}

// Dataset audits an in-memory dataset through its textual encoding.
func (a *Auditor) Dataset(d *dataset.Dataset) *Result {
	res := a.Header(d.Header)
	if !res.Passed {
		return res
	}
	for i := range d.Records {
		res.Rows++
		a.Row(res, res.Rows, d.Records[i].Row(d.Catalog()))
	}
	return res.finish()
}

func (r *Result) finish() *Result {
	r.Tier = 1
	if r.Passed {
		r.Message = fmt.Sprintf("%d rows passed", r.Rows)
	} else {
		r.Message = fmt.Sprintf("%d failing checks in %d rows", r.Failures, r.Rows)
	}
	return r
}

// Header runs the tier 0 check on a header row.
func (a *Auditor) Header(header []string) *Result {
	res := &Result{Tier: 0, Passed: true}
	if slices.Equal(header, a.header) {
		return res
	}
	res.Message = "header does not match the catalog schema"
	for i, col := range a.header {
		got := ""
		if i < len(header) {
			got = header[i]
		}
		if got != col {
			res.fail(Detail{Check: "header", Column: col, Expected: col, Got: got})
		}
	}
	if len(header) > len(a.header) {
		res.fail(Detail{Check: "header", Expected: strconv.Itoa(len(a.header)) + " columns", Got: strconv.Itoa(len(header)) + " columns"})
	}
	return res
}

// Row runs the tier 1 checks on data row n (1-based).
func (a *Auditor) Row(res *Result, n int, row []string) {
	if len(row) != len(a.header) {
		res.fail(Detail{Row: n, Check: "width", Expected: strconv.Itoa(len(a.header)), Got: strconv.Itoa(len(row))})
		return
	}

	for _, spec := range a.attributes {
		v := row[a.index[spec.Name]]
		switch spec.Kind {
		case catalog.Numeric:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || !spec.InRange(f) {
				res.fail(Detail{Row: n, Check: "range", Column: spec.Name, Expected: fmt.Sprintf("[%g, %g]", spec.Min, spec.Max), Got: v})
			}
		case catalog.Categorical:
			if !spec.Allows(v) {
				res.fail(Detail{Row: n, Check: "category", Column: spec.Name, Expected: strings.Join(spec.Values, "|"), Got: v})
			}
		case catalog.MultiCategorical:
			items, ok := ParseList(v)
			if !ok || len(items) == 0 {
				res.fail(Detail{Row: n, Check: "list", Column: spec.Name, Expected: "['value', ...]", Got: v})
				continue
			}
			for _, item := range items {
				if !spec.Allows(item) {
					res.fail(Detail{Row: n, Check: "category", Column: spec.Name, Expected: strings.Join(spec.Values, "|"), Got: item})
				}
			}
		}
	}

	a.checkBMI(res, n, row)
	a.checkScores(res, n, row)
}

func (a *Auditor) number(row []string, col string) (float64, bool) {
	i, ok := a.index[col]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(row[i], 64)
	return f, err == nil
}

func (a *Auditor) checkBMI(res *Result, n int, row []string) {
	h, hok := a.number(row, catalog.AttrHeight)
	w, wok := a.number(row, catalog.AttrWeight)
	bmi, bok := a.number(row, catalog.AttrBMI)
	if !hok || !wok || !bok {
		if !bok {
			res.fail(Detail{Row: n, Check: "bmi", Column: catalog.AttrBMI, Expected: "number", Got: row[a.index[catalog.AttrBMI]]})
		}
		return
	}
	want := synth.ComputeBMI(h, w)
	if math.Abs(bmi-want) >= BMITolerance {
		res.fail(Detail{Row: n, Check: "bmi", Column: catalog.AttrBMI, Expected: strconv.FormatFloat(want, 'f', -1, 64), Got: row[a.index[catalog.AttrBMI]]})
	}
}

func (a *Auditor) checkScores(res *Result, n int, row []string) {
	best, bestScore := "", math.Inf(-1)
	for _, act := range a.activities {
		col := catalog.ColumnName(act.Name)
		v, ok := a.number(row, col)
		if !ok || v < 0 || v > 100 {
			res.fail(Detail{Row: n, Check: "score", Column: col, Expected: "[0, 100]", Got: row[a.index[col]]})
			return
		}
		if v > bestScore {
			best, bestScore = act.Name, v
		}
	}
	if got := row[a.index[catalog.ColRecommended]]; got != best {
		res.fail(Detail{Row: n, Check: "label", Column: catalog.ColRecommended, Expected: best, Got: got})
	}
}

// ParseList parses the ['a', 'b'] literal written for multi-valued attributes.
func ParseList(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return []string{}, true
	}
	parts := strings.Split(body, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < 2 || p[0] != '\'' || p[len(p)-1] != '\'' {
			return nil, false
		}
		items = append(items, p[1:len(p)-1])
	}
	return items, true
}
