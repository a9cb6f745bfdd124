package dataset

import (
	"fmt"
	"io"
	"sort"

	"github.com/sbenjam1n/talentgen/internal/catalog"
)

// TopN is the number of activities listed in a summary.
const TopN = 5

// Count is a value with its frequency.
type Count struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Summary describes a generated dataset. It is informational only.
type Summary struct {
	Rows          int     `json:"rows"`
	Columns       int     `json:"columns"`
	FileSize      int64   `json:"file_size"`
	MeanAge       float64 `json:"mean_age"`
	TopActivities []Count `json:"top_activities"`
	Sex           []Count `json:"sex"`
	BodyTypes     []Count `json:"body_types"`
}

// Summarize computes the report for d; size is the written file size.
func Summarize(d *Dataset, size int64) Summary {
	s := Summary{Rows: d.Len(), Columns: len(d.Header), FileSize: size}
	if d.Len() == 0 {
		return s
	}

	var ageSum int
	activities := map[string]int{}
	sexes := map[string]int{}
	bodies := map[string]int{}
	for i := range d.Records {
		r := &d.Records[i]
		ageSum += r.Age
		activities[r.Recommended]++
		sexes[r.Sex]++
		bodies[r.BodyType]++
	}
	s.MeanAge = float64(ageSum) / float64(d.Len())

	s.TopActivities = counts(activities, d.cat.ActivityNames(), d.Len())
	if len(s.TopActivities) > TopN {
		s.TopActivities = s.TopActivities[:TopN]
	}
	s.Sex = counts(sexes, []string{catalog.SexMale, catalog.SexFemale}, d.Len())
	s.BodyTypes = counts(bodies, catalog.BodyTypes(), d.Len())
	return s
}

// counts orders frequencies descending; equal counts keep the order of ref.
func counts(m map[string]int, ref []string, total int) []Count {
	rank := make(map[string]int, len(ref))
	for i, v := range ref {
		rank[v] = i
	}
	out := make([]Count, 0, len(m))
	for v, n := range m {
		out = append(out, Count{Value: v, Count: n, Percent: float64(n) / float64(total) * 100})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		ri, iok := rank[out[i].Value]
		rj, jok := rank[out[j].Value]
		if iok != jok {
			return iok
		}
		if ri != rj {
			return ri < rj
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Print writes the human-readable report.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Dataset summary:\n")
	fmt.Fprintf(w, "  Rows:      %d\n", s.Rows)
	fmt.Fprintf(w, "  Columns:   %d\n", s.Columns)
	fmt.Fprintf(w, "  File size: %.2f MB\n", float64(s.FileSize)/(1024*1024))
	fmt.Fprintf(w, "  Mean age:  %.1f\n", s.MeanAge)

	fmt.Fprintf(w, "\nMost recommended activities:\n")
	for i, c := range s.TopActivities {
		fmt.Fprintf(w, "  %d. %s: %d (%.1f%%)\n", i+1, c.Value, c.Count, c.Percent)
	}
	fmt.Fprintf(w, "\nSex distribution:\n")
	for _, c := range s.Sex {
		fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", c.Value, c.Count, c.Percent)
	}
	fmt.Fprintf(w, "\nBody types:\n")
	for _, c := range s.BodyTypes {
		fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", c.Value, c.Count, c.Percent)
	}
}
