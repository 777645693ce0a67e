// Package importer turns chosen files into px records: a directory tree into
// features and scenarios, and Java page objects into pages and elements.
// Records are sent to the Sink in sequential batches. A failed batch is
// logged and skipped; nothing already written is rolled back.
package importer

import (
	"context"

	"go.uber.org/zap"

	"github.com/chriserin/px/internal/model"
)

const DefaultBatchSize = 100

// Sink receives the records an import produces. *explorer.Service
// implements it.
type Sink interface {
	NewID() string
	PageNames(ctx context.Context, projectID string) ([]string, error)
	CreatePage(ctx context.Context, projectID, name string) (model.Page, error)
	InsertElements(ctx context.Context, elements []model.Element) error
	InsertFeatures(ctx context.Context, features []model.Feature) error
	InsertScenarios(ctx context.Context, scenarios []model.Scenario) error
}

// Phase names a stage of an import.
type Phase string

const (
	PhaseReading   Phase = "reading"
	PhaseFeatures  Phase = "features"
	PhaseScenarios Phase = "scenarios"
	PhaseDone      Phase = "done"
)

// Progress is reported as an import advances. Current and Total count files
// while reading and steps (1..3) afterwards.
type Progress struct {
	Phase   Phase
	Current int
	Total   int
	Item    string
}

type Importer struct {
	sink      Sink
	log       *zap.Logger
	batchSize int
	progress  func(Progress)
}

type Option func(*Importer)

// WithBatchSize sets how many records go into one insert call.
func WithBatchSize(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.batchSize = n
		}
	}
}

// WithProgress registers a callback for progress updates.
func WithProgress(fn func(Progress)) Option {
	return func(im *Importer) {
		im.progress = fn
	}
}

func New(sink Sink, log *zap.Logger, opts ...Option) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	im := &Importer{
		sink:      sink,
		log:       log,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

func (im *Importer) report(p Progress) {
	if im.progress != nil {
		im.progress(p)
	}
}

// chunks calls insert for each consecutive slice of at most size items.
// Every chunk is attempted; the failures are returned in order.
func chunks[T any](items []T, size int, insert func(batch []T) error) []error {
	var errs []error
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		if err := insert(items[start:end]); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
