// Package docstore is a small hierarchical document-store abstraction.
// Collections are addressed by slash-separated paths ("chats/{id}/messages"),
// documents are flat maps keyed by field name.
package docstore

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("document not found")

type Op string

const (
	OpEqual         Op = "=="
	OpArrayContains Op = "array-contains"
	OpLess          Op = "<"
	OpLessEqual     Op = "<="
	OpGreater       Op = ">"
	OpGreaterEqual  Op = ">="
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query describes filters, an optional ordering field and an optional limit.
// Documents that lack the OrderBy field are not returned, as in Firestore.
type Query struct {
	Filters   []Filter
	OrderBy   string
	Direction Direction
	Limit     int
}

func (q Query) Where(field string, op Op, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) Order(field string, dir Direction) Query {
	q.OrderBy = field
	q.Direction = dir
	return q
}

func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

type Document struct {
	ID   string
	Data map[string]any
}

// Store is implemented by every backend. Get returns (nil, nil) when the
// document does not exist; Update returns ErrNotFound in that case.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error
	Update(ctx context.Context, collection, id string, data map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	Close() error
}

type serverTimestamp struct{}

// ServerTimestamp is a write sentinel replaced by the backend's clock.
var ServerTimestamp any = serverTimestamp{}

func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// Path joins collection and document ids into a collection path.
func Path(segments ...string) string {
	return strings.Join(segments, "/")
}
