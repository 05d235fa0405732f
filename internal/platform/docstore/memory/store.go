package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
)

// Store keeps documents as decoded JSON objects in insertion order.
type Store struct {
	mu          sync.Mutex
	collections map[string][]map[string]any
}

func NewStore() *Store {
	return &Store{
		collections: make(map[string][]map[string]any),
	}
}

func (s *Store) Collection(name string) docstore.Collection {
	return &Collection{store: s, name: name}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close(context.Context) error {
	return nil
}

// Count returns the number of documents in a collection.
func (s *Store) Count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[name])
}

type Collection struct {
	store *Store
	name  string
}

func (c *Collection) FindOne(_ context.Context, filter docstore.Filter, out any) error {
	want, err := normalizeFilter(filter)
	if err != nil {
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, doc := range c.store.collections[c.name] {
		if matches(doc, want) {
			return decode(doc, out)
		}
	}
	return docstore.ErrNotFound
}

func (c *Collection) Find(_ context.Context, filter docstore.Filter, opts docstore.FindOptions, out any) error {
	want, err := normalizeFilter(filter)
	if err != nil {
		return err
	}

	c.store.mu.Lock()
	items := make([]map[string]any, 0)
	for _, doc := range c.store.collections[c.name] {
		if matches(doc, want) {
			items = append(items, doc)
		}
	}

	if opts.SortField != "" {
		field := opts.SortField
		descending := opts.SortOrder == docstore.SortDescending
		sort.SliceStable(items, func(i, j int) bool {
			if descending {
				return compareValues(items[i][field], items[j][field]) > 0
			}
			return compareValues(items[i][field], items[j][field]) < 0
		})
	}
	if opts.Limit > 0 && int64(len(items)) > opts.Limit {
		items = items[:opts.Limit]
	}

	payload, err := json.Marshal(items)
	c.store.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode memory documents: %w", err)
	}
	return json.Unmarshal(payload, out)
}

func (c *Collection) InsertOne(_ context.Context, doc any) (docstore.InsertResult, error) {
	body, err := toDocument(doc)
	if err != nil {
		return docstore.InsertResult{}, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	id, err := c.insertLocked(body)
	if err != nil {
		return docstore.InsertResult{}, err
	}
	return docstore.InsertResult{InsertedID: id}, nil
}

func (c *Collection) InsertIfAbsent(_ context.Context, filter docstore.Filter, doc any) (docstore.InsertResult, bool, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return docstore.InsertResult{}, false, err
	}
	body, err := toDocument(doc)
	if err != nil {
		return docstore.InsertResult{}, false, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, existing := range c.store.collections[c.name] {
		if matches(existing, want) {
			return docstore.InsertResult{}, false, nil
		}
	}
	id, err := c.insertLocked(body)
	if err != nil {
		return docstore.InsertResult{}, false, err
	}
	return docstore.InsertResult{InsertedID: id}, true, nil
}

func (c *Collection) UpdateOne(
	_ context.Context,
	filter docstore.Filter,
	set map[string]any,
	upsert bool,
) (docstore.UpdateResult, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return docstore.UpdateResult{}, err
	}
	fields, err := toDocument(set)
	if err != nil {
		return docstore.UpdateResult{}, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, doc := range c.store.collections[c.name] {
		if !matches(doc, want) {
			continue
		}
		result := docstore.UpdateResult{MatchedCount: 1}
		for key, value := range fields {
			if key == docstore.IDField {
				continue
			}
			if current, ok := doc[key]; !ok || !reflect.DeepEqual(current, value) {
				doc[key] = value
				result.ModifiedCount = 1
			}
		}
		return result, nil
	}

	if !upsert {
		return docstore.UpdateResult{}, nil
	}

	body := make(map[string]any, len(want)+len(fields))
	for key, value := range want {
		body[key] = value
	}
	for key, value := range fields {
		body[key] = value
	}
	id, err := c.insertLocked(body)
	if err != nil {
		return docstore.UpdateResult{}, err
	}
	return docstore.UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
}

func (c *Collection) DeleteOne(_ context.Context, filter docstore.Filter) (docstore.DeleteResult, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return docstore.DeleteResult{}, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs := c.store.collections[c.name]
	for i, doc := range docs {
		if matches(doc, want) {
			c.store.collections[c.name] = append(docs[:i:i], docs[i+1:]...)
			return docstore.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return docstore.DeleteResult{}, nil
}

func (c *Collection) Increment(
	_ context.Context,
	filter docstore.Filter,
	deltas map[string]int64,
) (docstore.UpdateResult, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return docstore.UpdateResult{}, err
	}
	guards := docstore.IncrementGuards(deltas)

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, doc := range c.store.collections[c.name] {
		if !matches(doc, want) || !satisfiesGuards(doc, guards) {
			continue
		}
		for field, delta := range deltas {
			current, _ := doc[field].(float64)
			doc[field] = current + float64(delta)
		}
		return docstore.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return docstore.UpdateResult{}, nil
}

func (c *Collection) insertLocked(body map[string]any) (string, error) {
	id, _ := body[docstore.IDField].(string)
	if id == "" {
		id = uuid.NewString()
		body[docstore.IDField] = id
	}
	for _, existing := range c.store.collections[c.name] {
		if existing[docstore.IDField] == id {
			return "", fmt.Errorf("%w: %s", docstore.ErrDuplicateKey, id)
		}
	}
	c.store.collections[c.name] = append(c.store.collections[c.name], body)
	return id, nil
}

func satisfiesGuards(doc map[string]any, guards map[string]int64) bool {
	for field, minimum := range guards {
		current, _ := doc[field].(float64)
		if current < float64(minimum) {
			return false
		}
	}
	return true
}

func matches(doc map[string]any, want map[string]any) bool {
	for key, value := range want {
		if !reflect.DeepEqual(doc[key], value) {
			return false
		}
	}
	return true
}

// compareValues orders missing values first, then numbers, then strings.
func compareValues(left any, right any) int {
	lrank, rrank := valueRank(left), valueRank(right)
	if lrank != rrank {
		return lrank - rrank
	}
	switch l := left.(type) {
	case float64:
		r := right.(float64)
		switch {
		case l < r:
			return -1
		case l > r:
			return 1
		}
	case string:
		r := right.(string)
		switch {
		case l < r:
			return -1
		case l > r:
			return 1
		}
	}
	return 0
}

func valueRank(value any) int {
	switch value.(type) {
	case nil:
		return 0
	case float64:
		return 1
	case string:
		return 2
	default:
		return 3
	}
}

func normalizeFilter(filter docstore.Filter) (map[string]any, error) {
	if len(filter) == 0 {
		return map[string]any{}, nil
	}
	return toDocument(map[string]any(filter))
}

func toDocument(value any) (map[string]any, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", docstore.ErrInvalidDocument, err)
	}
	body := make(map[string]any)
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", docstore.ErrInvalidDocument, err)
	}
	return body, nil
}

func decode(doc map[string]any, out any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode memory document: %w", err)
	}
	return json.Unmarshal(payload, out)
}
