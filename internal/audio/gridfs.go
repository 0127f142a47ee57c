package audio

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSStore serves "gridfs:<ObjectID>" references.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSStore(db *mongo.Database, bucketName string) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

func (s *GridFSStore) Scheme() string { return "gridfs" }

func (s *GridFSStore) Open(ctx context.Context, ref Ref) (io.ReadCloser, error) {
	id, err := primitive.ObjectIDFromHex(ref.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid gridfs id %q: %w", ref.Key, err)
	}

	stream, err := s.bucket.OpenDownloadStream(id)
	if err != nil {
		return nil, err
	}
	return stream, nil
}
