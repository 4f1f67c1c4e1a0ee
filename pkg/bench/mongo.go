package bench

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lennartvogt/treedom/pkg/cache"
	apperrors "github.com/lennartvogt/treedom/pkg/errors"
)

const (
	defaultDatabase   = "treedom"
	defaultCollection = "bench_reports"
)

// MongoStore inserts reports into a MongoDB collection. Inserts are
// retried with backoff, so transient network failures do not lose a
// finished run.
type MongoStore struct {
	client     *mongo.Client
	database   string
	collection string
}

// MongoOption customizes a MongoStore.
type MongoOption func(*MongoStore)

// WithDatabase overrides the default database name.
func WithDatabase(name string) MongoOption {
	return func(s *MongoStore) {
		s.database = name
	}
}

// WithCollection overrides the default collection name.
func WithCollection(name string) MongoOption {
	return func(s *MongoStore) {
		s.collection = name
	}
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping. The URI must use the mongodb or mongodb+srv scheme.
func NewMongoStore(ctx context.Context, uri string, opts ...MongoOption) (*MongoStore, error) {
	if err := apperrors.ValidateMongoURI(uri); err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	s := &MongoStore{
		client:     client,
		database:   defaultDatabase,
		collection: defaultCollection,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return s, nil
}

// Store inserts the report as one document.
func (s *MongoStore) Store(ctx context.Context, report *Report) error {
	coll := s.client.Database(s.database).Collection(s.collection)
	err := cache.RetryWithBackoff(ctx, func() error {
		if _, err := coll.InsertOne(ctx, report); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "mongo insert")
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
