// Package dataset holds ordered record collections and their tabular encoding.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/record"
)

// Dataset is an ordered sequence of records sharing one column schema.
type Dataset struct {
	cat     *catalog.Catalog
	Header  []string
	Records []record.Record
}

// New creates an empty dataset with the schema of cat.
func New(cat *catalog.Catalog) *Dataset {
	return &Dataset{cat: cat, Header: cat.Header()}
}

// Catalog returns the catalog the dataset schema was built from.
func (d *Dataset) Catalog() *catalog.Catalog {
	return d.cat
}

// Append adds records at the end of the dataset.
func (d *Dataset) Append(records ...record.Record) {
	d.Records = append(d.Records, records...)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// WriteCSV encodes the dataset as comma separated UTF-8 text with a header row.
func (d *Dataset) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if err := cw.Write(d.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range d.Records {
		if err := cw.Write(d.Records[i].Row(d.cat)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile writes the dataset to path, creating parent directories, and
// returns the size of the written file.
func (d *Dataset) WriteFile(path string) (int64, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	if err := d.WriteCSV(f); err != nil {
		f.Close()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Size(), nil
}
