// Package batch drives the record assembler over many records split into
// independently seeded batches.
//
// Batch i is always generated from seed base+i*SeedStride with a fresh
// synthesizer, so any batch can be regenerated in isolation. Concurrent runs
// store batches by index and concatenate them in ascending order, which keeps
// the row order identical to a sequential run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/dataset"
	"github.com/sbenjam1n/talentgen/internal/logging"
	"github.com/sbenjam1n/talentgen/internal/observability"
	"github.com/sbenjam1n/talentgen/internal/record"
)

// SeedStride separates the seeds of consecutive batches.
const SeedStride = 1000

// ErrInvalidParams is returned when run parameters fail validation.
var ErrInvalidParams = errors.New("invalid batch parameters")

// Batch is one planned unit of generation.
type Batch struct {
	Index int   `json:"index"`
	Seed  int64 `json:"seed"`
	Size  int   `json:"size"`
}

// ProgressFunc is called after every finished batch. batch is 1-based.
type ProgressFunc func(completed, total, batch, batches int)

// Params are the validated inputs of a run.
type Params struct {
	Total     int `validate:"gt=0"`
	BatchSize int `validate:"gt=0"`
	Workers   int `validate:"gte=1"`
}

// Result is a finished run.
type Result struct {
	Dataset *dataset.Dataset
	Summary dataset.Summary
	Path    string
	Batches int
	Elapsed time.Duration
}

// Orchestrator generates datasets batch by batch.
type Orchestrator struct {
	cat       *catalog.Catalog
	batchSize int
	baseSeed  int64
	workers   int
	progress  ProgressFunc
	log       zerolog.Logger
	validate  *validator.Validate
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithWorkers sets how many batches may be generated concurrently.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) { o.workers = n }
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) { o.progress = fn }
}

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New creates an Orchestrator. A nil cat means catalog.Default().
func New(cat *catalog.Catalog, batchSize int, baseSeed int64, opts ...Option) *Orchestrator {
	if cat == nil {
		cat = catalog.Default()
	}
	o := &Orchestrator{
		cat:       cat,
		batchSize: batchSize,
		baseSeed:  baseSeed,
		workers:   1,
		log:       logging.Logger(),
		validate:  validator.New(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Catalog returns the orchestrator's catalog.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.cat
}

// SeedFor returns the seed of batch index i.
func SeedFor(base int64, i int) int64 {
	return base + int64(i)*SeedStride
}

// BatchCount returns ceil(total/size).
func BatchCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Plan splits total into batches. Only the last batch may be smaller.
func (o *Orchestrator) Plan(total int) []Batch {
	n := BatchCount(total, o.batchSize)
	batches := make([]Batch, n)
	for i := range batches {
		size := o.batchSize
		if rest := total - i*o.batchSize; rest < size {
			size = rest
		}
		batches[i] = Batch{Index: i, Seed: SeedFor(o.baseSeed, i), Size: size}
	}
	return batches
}

// BatchAt returns batch index of a run of total records, sized as in Plan.
func (o *Orchestrator) BatchAt(total, index int) (Batch, error) {
	if err := o.check(total); err != nil {
		return Batch{}, err
	}
	n := BatchCount(total, o.batchSize)
	if index < 0 || index >= n {
		return Batch{}, fmt.Errorf("%w: batch index %d outside [0, %d)", ErrInvalidParams, index, n)
	}
	size := min(o.batchSize, total-index*o.batchSize)
	return Batch{Index: index, Seed: SeedFor(o.baseSeed, index), Size: size}, nil
}

// GenerateBatch produces the records of b from a fresh assembler.
func (o *Orchestrator) GenerateBatch(b Batch) []record.Record {
	start := time.Now()
	records := record.New(b.Seed, o.cat).AssembleN(b.Size)
	observability.RecordBatch(len(records), time.Since(start))
	for i := range records {
		observability.RecordRecommendation(records[i].Recommended)
	}
	return records
}

func (o *Orchestrator) check(total int) error {
	p := Params{Total: total, BatchSize: o.batchSize, Workers: o.workers}
	if err := o.validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// Generate produces total records. Cancellation is observed between batches.
func (o *Orchestrator) Generate(ctx context.Context, total int) (*dataset.Dataset, error) {
	if err := o.check(total); err != nil {
		return nil, err
	}

	plan := o.Plan(total)
	results := make([][]record.Record, len(plan))

	var mu sync.Mutex
	completed := 0
	finish := func(b Batch, records []record.Record, elapsed time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		results[b.Index] = records
		completed += len(records)
		o.log.Info().
			Int("batch", b.Index+1).
			Int("of", len(plan)).
			Int64("seed", b.Seed).
			Int("completed", completed).
			Int("total", total).
			Dur("elapsed", elapsed).
			Msg("batch complete")
		if o.progress != nil {
			o.progress(completed, total, b.Index+1, len(plan))
		}
	}

	if o.workers <= 1 {
		for _, b := range plan {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generate batch %d: %w", b.Index, err)
			}
			start := time.Now()
			records := o.GenerateBatch(b)
			finish(b, records, time.Since(start))
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.workers)
		for _, b := range plan {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("generate batch %d: %w", b.Index, err)
				}
				start := time.Now()
				records := o.GenerateBatch(b)
				finish(b, records, time.Since(start))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	d := dataset.New(o.cat)
	for _, records := range results {
		d.Append(records...)
	}
	return d, nil
}

// Run generates total records, writes them to path and summarizes the
// result. On a write failure the generated dataset is still returned.
func (o *Orchestrator) Run(ctx context.Context, total int, path string) (*Result, error) {
	start := time.Now()
	d, err := o.Generate(ctx, total)
	if err != nil {
		return nil, err
	}
	res := &Result{Dataset: d, Path: path, Batches: BatchCount(total, o.batchSize)}

	size, err := d.WriteFile(path)
	res.Elapsed = time.Since(start)
	if err != nil {
		observability.RecordSinkError("csv")
		res.Summary = dataset.Summarize(d, 0)
		return res, fmt.Errorf("write dataset: %w", err)
	}
	res.Summary = dataset.Summarize(d, size)
	observability.RecordRunCompleted(time.Now())

	o.log.Info().
		Str("path", path).
		Int("rows", d.Len()).
		Int64("bytes", size).
		Dur("elapsed", res.Elapsed).
		Msg("dataset written")
	return res, nil
}

// ProgressivePath returns the output path for one size of a progressive run:
// base "data/set.csv" and size 1000 give "data/set_1000.csv".
func ProgressivePath(base string, size int) string {
	ext := filepath.Ext(base)
	if ext == "" {
		ext = ".csv"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_" + strconv.Itoa(size) + ext
}

// Progressive generates one dataset per size, each written next to basePath.
// Every size starts from the same base seed.
func (o *Orchestrator) Progressive(ctx context.Context, sizes []int, basePath string) ([]*Result, error) {
	results := make([]*Result, 0, len(sizes))
	for _, size := range sizes {
		path := ProgressivePath(basePath, size)
		o.log.Info().Int("size", size).Str("path", path).Msg("progressive dataset")
		res, err := o.Run(ctx, size, path)
		if err != nil {
			return results, fmt.Errorf("progressive size %d: %w", size, err)
		}
		results = append(results, res)
	}
	return results, nil
}
