// Package explorer implements the tree-editing operations of px on top of a
// store.Backend. Every method is a direct CRUD call; callers refetch the
// whole tree after a mutation instead of patching what they hold.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chriserin/px/internal/store"
)

var (
	ErrBlankName   = errors.New("name must not be blank")
	ErrBlankValue  = errors.New("value must not be blank")
	ErrInvalidRef  = errors.New(`element reference must look like "<Page>.<Element>"`)
	ErrAmbiguousID = errors.New("id prefix matches more than one record")
)

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Service struct {
	backend store.Backend
	now     func() time.Time
	newID   func() string
}

func New(backend store.Backend) *Service {
	return &Service{
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// NewID returns a fresh record id, letting importers link parents and
// children before anything is written.
func (s *Service) NewID() string {
	return s.newID()
}

func parseTime(v string) time.Time {
	if t, err := time.Parse(timeLayout, v); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Resolve expands an id or a unique id prefix, as typed on the command line,
// into the full id.
func (s *Service) Resolve(ctx context.Context, table store.Table, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("%s: empty id: %w", table, store.ErrNotFound)
	}
	rows, err := s.backend.Select(ctx, table, store.Query{IDPrefix: idOrPrefix})
	if err != nil {
		return "", err
	}
	switch len(rows) {
	case 0:
		return "", fmt.Errorf("%s %s: %w", table, idOrPrefix, store.ErrNotFound)
	case 1:
		return rows[0].String("id"), nil
	}
	for _, r := range rows {
		if r.String("id") == idOrPrefix {
			return idOrPrefix, nil
		}
	}
	return "", fmt.Errorf("%s %s: %w", table, idOrPrefix, ErrAmbiguousID)
}

// one fetches a single row by id.
func (s *Service) one(ctx context.Context, table store.Table, id string) (store.Row, error) {
	rows, err := s.backend.Select(ctx, table, store.Eq("id", id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", table, id, store.ErrNotFound)
	}
	return rows[0], nil
}

func (s *Service) names(ctx context.Context, table store.Table, q store.Query) ([]string, error) {
	rows, err := s.backend.Select(ctx, table, q)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.String("name")
	}
	return names, nil
}

func (s *Service) rename(ctx context.Context, table store.Table, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}
	return s.backend.Update(ctx, table, id, store.Row{"name": name})
}

// Counts is the number of records per table.
type Counts struct {
	Projects  int
	Pages     int
	Elements  int
	Features  int
	Scenarios int
	Steps     int
}

func (s *Service) Status(ctx context.Context) (Counts, error) {
	var c Counts
	for _, t := range []struct {
		table store.Table
		dst   *int
	}{
		{store.Projects, &c.Projects},
		{store.Pages, &c.Pages},
		{store.Elements, &c.Elements},
		{store.Features, &c.Features},
		{store.Scenarios, &c.Scenarios},
		{store.ScenarioElements, &c.Steps},
	} {
		rows, err := s.backend.Select(ctx, t.table, store.Query{})
		if err != nil {
			return Counts{}, err
		}
		*t.dst = len(rows)
	}
	return c, nil
}
