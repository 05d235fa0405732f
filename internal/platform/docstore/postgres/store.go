package postgresstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
)

// Store keeps every collection in one jsonb table (see internal/platform/db/migrations).
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

func (s *Store) Collection(name string) docstore.Collection {
	return &Collection{db: s.db, name: name}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type documentModel struct {
	Collection string         `gorm:"column:collection;primaryKey"`
	ID         string         `gorm:"column:id;primaryKey"`
	Seq        int64          `gorm:"column:seq;->"`
	Body       datatypes.JSON `gorm:"column:body"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (documentModel) TableName() string {
	return "documents"
}

type Collection struct {
	db   *gorm.DB
	name string
}

func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter, out any) error {
	var row documentModel
	query, err := c.scope(c.db.WithContext(ctx), filter)
	if err != nil {
		return err
	}
	err = query.Order("seq ASC").Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return docstore.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("postgres find one in %s: %w", c.name, err)
	}
	return json.Unmarshal(row.Body, out)
}

func (c *Collection) Find(ctx context.Context, filter docstore.Filter, opts docstore.FindOptions, out any) error {
	var rows []documentModel
	query, err := c.scope(c.db.WithContext(ctx), filter)
	if err != nil {
		return err
	}
	if opts.SortField != "" {
		query = query.Clauses(orderByField(opts.SortField, opts.SortOrder))
	} else {
		query = query.Order("seq ASC")
	}
	if opts.Limit > 0 {
		query = query.Limit(int(opts.Limit))
	}
	if err := query.Find(&rows).Error; err != nil {
		return fmt.Errorf("postgres find in %s: %w", c.name, err)
	}

	bodies := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		bodies = append(bodies, json.RawMessage(row.Body))
	}
	payload, err := json.Marshal(bodies)
	if err != nil {
		return fmt.Errorf("encode postgres documents: %w", err)
	}
	return json.Unmarshal(payload, out)
}

func (c *Collection) InsertOne(ctx context.Context, doc any) (docstore.InsertResult, error) {
	row, err := c.newRow(doc)
	if err != nil {
		return docstore.InsertResult{}, err
	}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return docstore.InsertResult{}, fmt.Errorf("%w: %s", docstore.ErrDuplicateKey, row.ID)
		}
		return docstore.InsertResult{}, fmt.Errorf("postgres insert into %s: %w", c.name, err)
	}
	return docstore.InsertResult{InsertedID: row.ID}, nil
}

func (c *Collection) InsertIfAbsent(ctx context.Context, filter docstore.Filter, doc any) (docstore.InsertResult, bool, error) {
	lockKey, err := json.Marshal(filter)
	if err != nil {
		return docstore.InsertResult{}, false, fmt.Errorf("%w: %v", docstore.ErrInvalidDocument, err)
	}

	var (
		result   docstore.InsertResult
		inserted bool
	)
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serializes concurrent inserts for the same filter until commit.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", c.name+":"+string(lockKey)).Error; err != nil {
			return err
		}
		query, err := c.scope(tx, filter)
		if err != nil {
			return err
		}
		var count int64
		if err := query.Model(&documentModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		row, err := c.newRow(doc)
		if err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		result = docstore.InsertResult{InsertedID: row.ID}
		inserted = true
		return nil
	})
	if err != nil {
		return docstore.InsertResult{}, false, fmt.Errorf("postgres insert-if-absent into %s: %w", c.name, err)
	}
	return result, inserted, nil
}

func (c *Collection) UpdateOne(
	ctx context.Context,
	filter docstore.Filter,
	set map[string]any,
	upsert bool,
) (docstore.UpdateResult, error) {
	fields, err := toDocument(set)
	if err != nil {
		return docstore.UpdateResult{}, err
	}

	var result docstore.UpdateResult
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query, err := c.scope(tx, filter)
		if err != nil {
			return err
		}
		var row documentModel
		err = query.Clauses(clause.Locking{Strength: "UPDATE"}).Order("seq ASC").Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !upsert {
				return nil
			}
			inserted, err := c.newRow(mergeFields(equalityFields(filter), fields))
			if err != nil {
				return err
			}
			if err := tx.Create(&inserted).Error; err != nil {
				return err
			}
			result = docstore.UpdateResult{UpsertedCount: 1, UpsertedID: inserted.ID}
			return nil
		}
		if err != nil {
			return err
		}

		result.MatchedCount = 1
		body := make(map[string]any)
		if err := json.Unmarshal(row.Body, &body); err != nil {
			return fmt.Errorf("%w: %v", docstore.ErrInvalidDocument, err)
		}
		changed := false
		for key, value := range fields {
			if key == docstore.IDField {
				continue
			}
			if current, ok := body[key]; !ok || !reflect.DeepEqual(current, value) {
				body[key] = value
				changed = true
			}
		}
		if !changed {
			return nil
		}
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", docstore.ErrInvalidDocument, err)
		}
		if err := tx.Model(&documentModel{}).
			Where("collection = ? AND id = ?", c.name, row.ID).
			UpdateColumns(map[string]any{
				"body":       datatypes.JSON(payload),
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
			return err
		}
		result.ModifiedCount = 1
		return nil
	})
	if err != nil {
		return docstore.UpdateResult{}, fmt.Errorf("postgres update in %s: %w", c.name, err)
	}
	return result, nil
}

func (c *Collection) DeleteOne(ctx context.Context, filter docstore.Filter) (docstore.DeleteResult, error) {
	var deleted int64
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query, err := c.scope(tx, filter)
		if err != nil {
			return err
		}
		var row documentModel
		err = query.Order("seq ASC").Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		res := tx.Where("collection = ? AND id = ?", c.name, row.ID).Delete(&documentModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return docstore.DeleteResult{}, fmt.Errorf("postgres delete in %s: %w", c.name, err)
	}
	return docstore.DeleteResult{DeletedCount: deleted}, nil
}

func (c *Collection) Increment(
	ctx context.Context,
	filter docstore.Filter,
	deltas map[string]int64,
) (docstore.UpdateResult, error) {
	if len(deltas) == 0 {
		return docstore.UpdateResult{}, nil
	}
	guards := docstore.IncrementGuards(deltas)

	target, err := c.scope(c.db.WithContext(ctx), filter)
	if err != nil {
		return docstore.UpdateResult{}, err
	}
	target = applyGuards(target.Model(&documentModel{}).Select("id"), guards).Order("seq ASC").Limit(1)

	// The guards are repeated on the outer UPDATE so a concurrent writer that
	// wins the row lock forces re-evaluation against the committed counters.
	expr, vars := incrementExpression(deltas)
	res := applyGuards(
		c.db.WithContext(ctx).Model(&documentModel{}).Where("collection = ? AND id = (?)", c.name, target),
		guards,
	).UpdateColumns(map[string]any{
		"body":       gorm.Expr(expr, vars...),
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return docstore.UpdateResult{}, fmt.Errorf("postgres increment in %s: %w", c.name, res.Error)
	}
	return docstore.UpdateResult{MatchedCount: res.RowsAffected, ModifiedCount: res.RowsAffected}, nil
}

func (c *Collection) scope(db *gorm.DB, filter docstore.Filter) (*gorm.DB, error) {
	query := db.Where("collection = ?", c.name)
	rest := make(map[string]any, len(filter))
	for key, value := range filter {
		if key == docstore.IDField {
			query = query.Where("id = ?", fmt.Sprint(value))
			continue
		}
		rest[key] = value
	}
	if len(rest) == 0 {
		return query, nil
	}
	containment, err := json.Marshal(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", docstore.ErrInvalidDocument, err)
	}
	return query.Where("body @> CAST(? AS jsonb)", string(containment)), nil
}

func (c *Collection) newRow(doc any) (documentModel, error) {
	body, err := toDocument(doc)
	if err != nil {
		return documentModel{}, err
	}
	docID, _ := body[docstore.IDField].(string)
	if docID == "" {
		docID = uuid.NewString()
	}
	body[docstore.IDField] = docID

	payload, err := json.Marshal(body)
	if err != nil {
		return documentModel{}, fmt.Errorf("%w: %v", docstore.ErrInvalidDocument, err)
	}
	now := time.Now().UTC()
	return documentModel{
		Collection: c.name,
		ID:         docID,
		Body:       datatypes.JSON(payload),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// incrementExpression nests one jsonb_set per field, in sorted field order so
// the generated SQL is deterministic.
func incrementExpression(deltas map[string]int64) (string, []any) {
	fields := make([]string, 0, len(deltas))
	for field := range deltas {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	expr := "body"
	vars := make([]any, 0, len(fields)*3)
	for _, field := range fields {
		expr = fmt.Sprintf("jsonb_set(%s, ARRAY[?]::text[], to_jsonb(COALESCE((body->>?)::bigint, 0) + ?))", expr)
		vars = append(vars, field, field, deltas[field])
	}
	return expr, vars
}

func applyGuards(query *gorm.DB, guards map[string]int64) *gorm.DB {
	fields := make([]string, 0, len(guards))
	for field := range guards {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		query = query.Where("COALESCE((body->>?)::bigint, 0) >= ?", field, guards[field])
	}
	return query
}

func orderByField(field string, order docstore.SortOrder) clause.OrderBy {
	direction := "ASC"
	if order == docstore.SortDescending {
		direction = "DESC"
	}
	return clause.OrderBy{
		Expression: clause.Expr{
			SQL:                "(body->>?)::numeric " + direction + " NULLS LAST, seq ASC",
			Vars:               []any{field},
			WithoutParentheses: true,
		},
	}
}

func equalityFields(filter docstore.Filter) map[string]any {
	fields := make(map[string]any, len(filter))
	for key, value := range filter {
		fields[key] = value
	}
	return fields
}

func mergeFields(base map[string]any, extra map[string]any) map[string]any {
	for key, value := range extra {
		base[key] = value
	}
	return base
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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
