package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
)

// Store owns the process-wide mongo client.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *slog.Logger
}

func Connect(ctx context.Context, uri string, database string, logger *slog.Logger) (*Store, error) {
	if uri == "" {
		return nil, errors.New("mongodb uri is required")
	}
	if database == "" {
		return nil, errors.New("mongodb database is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("mongodb connected",
		"event", "docstore_mongo_connected",
		"module", "internal/platform/docstore",
		"layer", "platform",
		"database", database,
	)
	return &Store{
		client:   client,
		database: client.Database(database),
		logger:   logger,
	}, nil
}

func (s *Store) Collection(name string) docstore.Collection {
	return &Collection{coll: s.database.Collection(name)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

type Collection struct {
	coll *mongo.Collection
}

func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter, out any) error {
	err := c.coll.FindOne(ctx, toBSONFilter(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docstore.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("mongo find one in %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *Collection) Find(ctx context.Context, filter docstore.Filter, opts docstore.FindOptions, out any) error {
	cursor, err := c.coll.Find(ctx, toBSONFilter(filter), toFindOptions(opts))
	if err != nil {
		return fmt.Errorf("mongo find in %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("mongo decode cursor in %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *Collection) InsertOne(ctx context.Context, doc any) (docstore.InsertResult, error) {
	result, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return docstore.InsertResult{}, fmt.Errorf("%w: %v", docstore.ErrDuplicateKey, err)
		}
		return docstore.InsertResult{}, fmt.Errorf("mongo insert into %s: %w", c.coll.Name(), err)
	}
	return docstore.InsertResult{InsertedID: formatID(result.InsertedID)}, nil
}

func (c *Collection) InsertIfAbsent(ctx context.Context, filter docstore.Filter, doc any) (docstore.InsertResult, bool, error) {
	result, err := c.coll.UpdateOne(ctx,
		toBSONFilter(filter),
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return docstore.InsertResult{}, false, fmt.Errorf("mongo insert-if-absent into %s: %w", c.coll.Name(), err)
	}
	if result.UpsertedCount == 0 {
		return docstore.InsertResult{}, false, nil
	}
	return docstore.InsertResult{InsertedID: formatID(result.UpsertedID)}, true, nil
}

func (c *Collection) UpdateOne(
	ctx context.Context,
	filter docstore.Filter,
	set map[string]any,
	upsert bool,
) (docstore.UpdateResult, error) {
	result, err := c.coll.UpdateOne(ctx,
		toBSONFilter(filter),
		bson.M{"$set": set},
		options.Update().SetUpsert(upsert),
	)
	if err != nil {
		return docstore.UpdateResult{}, fmt.Errorf("mongo update in %s: %w", c.coll.Name(), err)
	}
	return toUpdateResult(result), nil
}

func (c *Collection) DeleteOne(ctx context.Context, filter docstore.Filter) (docstore.DeleteResult, error) {
	result, err := c.coll.DeleteOne(ctx, toBSONFilter(filter))
	if err != nil {
		return docstore.DeleteResult{}, fmt.Errorf("mongo delete in %s: %w", c.coll.Name(), err)
	}
	return docstore.DeleteResult{DeletedCount: result.DeletedCount}, nil
}

func (c *Collection) Increment(
	ctx context.Context,
	filter docstore.Filter,
	deltas map[string]int64,
) (docstore.UpdateResult, error) {
	query, update := incrementUpdate(filter, deltas)
	result, err := c.coll.UpdateOne(ctx, query, update)
	if err != nil {
		return docstore.UpdateResult{}, fmt.Errorf("mongo increment in %s: %w", c.coll.Name(), err)
	}
	return toUpdateResult(result), nil
}

// incrementUpdate folds the decrement guards into the filter so the floor is
// checked by the same single-document write.
func incrementUpdate(filter docstore.Filter, deltas map[string]int64) (bson.M, bson.M) {
	query := toBSONFilter(filter)
	for field, minimum := range docstore.IncrementGuards(deltas) {
		query[field] = bson.M{"$gte": minimum}
	}
	inc := bson.M{}
	for field, delta := range deltas {
		inc[field] = delta
	}
	return query, bson.M{"$inc": inc}
}

func toBSONFilter(filter docstore.Filter) bson.M {
	query := bson.M{}
	for key, value := range filter {
		if key == docstore.IDField {
			query[key] = toObjectID(value)
			continue
		}
		query[key] = value
	}
	return query
}

// toObjectID keeps ids that are not ObjectID hex strings as plain strings.
func toObjectID(value any) any {
	raw, ok := value.(string)
	if !ok {
		return value
	}
	if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
		return oid
	}
	return raw
}

func toFindOptions(opts docstore.FindOptions) *options.FindOptions {
	findOptions := options.Find()
	if opts.SortField != "" {
		order := int(opts.SortOrder)
		if order == 0 {
			order = int(docstore.SortAscending)
		}
		findOptions.SetSort(bson.D{
			{Key: opts.SortField, Value: order},
			{Key: docstore.IDField, Value: 1},
		})
	}
	if opts.Limit > 0 {
		findOptions.SetLimit(opts.Limit)
	}
	return findOptions
}

func toUpdateResult(result *mongo.UpdateResult) docstore.UpdateResult {
	return docstore.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedCount: result.UpsertedCount,
		UpsertedID:    formatID(result.UpsertedID),
	}
}

func formatID(value any) string {
	switch id := value.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
