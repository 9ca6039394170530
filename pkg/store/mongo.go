package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planekit/regiontree/pkg/errors"
)

const runsCollection = "runs"

// MongoStore implements RunStore on MongoDB.
type MongoStore struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store backed by the
// given database. The connection is verified with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		runs:   client.Database(database).Collection(runsCollection),
	}, nil
}

// Save persists a run, overwriting any existing document with the same
// ID.
func (s *MongoStore) Save(ctx context.Context, run Run) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.runs.ReplaceOne(ctx, bson.M{"_id": run.ID}, run, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save run %s", run.ID)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (Run, error) {
	var run Run
	err := s.runs.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return Run{}, errors.New(errors.ErrCodeRunNotFound, "run %s not found", id)
	}
	if err != nil {
		return Run{}, errors.Wrap(errors.ErrCodeStore, err, "get run %s", id)
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.runs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list runs")
	}
	defer cursor.Close(ctx)

	var runs []Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode runs")
	}
	return runs, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements RunStore.
var _ RunStore = (*MongoStore)(nil)
