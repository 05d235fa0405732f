// Package docstore is the document-store boundary shared by module adapters.
// Backends: memory (tests/dev), mongo (default runtime), postgres (jsonb table).
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("docstore: document not found")
	ErrDuplicateKey    = errors.New("docstore: duplicate key")
	ErrInvalidDocument = errors.New("docstore: invalid document")
)

// IDField is the primary key field of every document.
const IDField = "_id"

const (
	CollectionUsers       = "users"
	CollectionClasses     = "class"
	CollectionSelections  = "selects"
	CollectionPayments    = "payments"
	CollectionInstructors = "instructors"
)

// Filter matches documents whose top-level fields equal the given values.
type Filter map[string]any

type SortOrder int

const (
	SortAscending  SortOrder = 1
	SortDescending SortOrder = -1
)

type FindOptions struct {
	SortField string
	SortOrder SortOrder
	Limit     int64
}

type InsertResult struct {
	InsertedID string
}

type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedCount int64
	UpsertedID    string
}

type DeleteResult struct {
	DeletedCount int64
}

// Collection is the operation set module adapters rely on. Documents are plain
// structs carrying matching json and bson tags.
type Collection interface {
	FindOne(ctx context.Context, filter Filter, out any) error
	// Find decodes every match into out, which must point to a slice.
	Find(ctx context.Context, filter Filter, opts FindOptions, out any) error
	InsertOne(ctx context.Context, doc any) (InsertResult, error)
	// InsertIfAbsent inserts doc only when no document matches filter.
	InsertIfAbsent(ctx context.Context, filter Filter, doc any) (InsertResult, bool, error)
	UpdateOne(ctx context.Context, filter Filter, set map[string]any, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, filter Filter) (DeleteResult, error)
	// Increment applies every delta to the first match in one atomic step.
	// A negative delta requires the field to hold at least its magnitude,
	// otherwise nothing matches and MatchedCount is zero.
	Increment(ctx context.Context, filter Filter, deltas map[string]int64) (UpdateResult, error)
}

type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// IncrementGuards returns the minimum value each decremented field must hold.
func IncrementGuards(deltas map[string]int64) map[string]int64 {
	guards := make(map[string]int64)
	for field, delta := range deltas {
		if delta < 0 {
			guards[field] = -delta
		}
	}
	return guards
}
