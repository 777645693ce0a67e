// Package store is the data-access boundary. Everything above it talks to the
// datastore through the four primitives of Backend, so the SQLite
// implementation can be swapped for a REST or RPC client with the same shape.
package store

import (
	"context"
	"errors"
)

type Table string

const (
	Projects         Table = "projects"
	Pages            Table = "pages"
	Elements         Table = "elements"
	Features         Table = "features"
	Scenarios        Table = "scenarios"
	ScenarioElements Table = "scenario_elements"
)

// ErrNotFound is returned by Update and Delete when no row has the id.
var ErrNotFound = errors.New("not found")

// Row maps column names to values. Values read back are string or nil.
type Row map[string]any

// String returns the column as a string, "" when NULL or absent.
func (r Row) String(col string) string {
	s, _ := r[col].(string)
	return s
}

// NullString returns nil for a NULL column.
func (r Row) NullString(col string) *string {
	s, ok := r[col].(string)
	if !ok {
		return nil
	}
	return &s
}

// Query filters a Select. Where matches columns by equality; a nil value
// (or nil *string) matches NULL. IDPrefix restricts ids to a prefix.
type Query struct {
	Where    map[string]any
	IDPrefix string
}

// Eq is shorthand for a single-column equality query.
func Eq(col string, v any) Query {
	return Query{Where: map[string]any{col: v}}
}

// Backend is the generic query client. Select returns rows in creation order.
type Backend interface {
	Select(ctx context.Context, table Table, q Query) ([]Row, error)
	Insert(ctx context.Context, table Table, rows []Row) error
	Update(ctx context.Context, table Table, id string, fields Row) error
	Delete(ctx context.Context, table Table, id string) error
}
