package history

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/recap/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Title     string             `bson:"title"`
	History   string             `bson:"history"`
	AudioHash string             `bson:"audio_hash,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

// MongoStore keeps history in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// ConnectMongo dials uri and uses database.collection. Close disconnects.
func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := NewMongoStore(client.Database(database).Collection(collection))
	s.client = client
	s.owned = true
	return s, nil
}

// NewMongoStore wraps an existing collection. Close is a no-op.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Database exposes the underlying database for other stores sharing the
// connection.
func (s *MongoStore) Database() *mongo.Database {
	return s.coll.Database()
}

func (s *MongoStore) Insert(ctx context.Context, r *Record) error {
	doc := mongoRecord{
		UserID:    r.UserID,
		Title:     r.Title,
		History:   r.Body,
		AudioHash: r.AudioHash,
		CreatedAt: r.CreatedAt,
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = oid.Hex()
	}
	return nil
}

func (s *MongoStore) FindByUser(ctx context.Context, userID string) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find history: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	records := make([]Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, Record{
			ID:        d.ID.Hex(),
			UserID:    d.UserID,
			Title:     d.Title,
			Body:      d.History,
			AudioHash: d.AudioHash,
			CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return records, nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, errors.NewInvalidRequest(fmt.Sprintf("invalid history id: %s", id))
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete history: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return 0, errors.NewInvalidRequest(fmt.Sprintf("invalid history id: %s", id))
		}
		oids = append(oids, oid)
	}

	res, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
