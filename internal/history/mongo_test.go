package history

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/nguyentantai21042004/recap/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Runs against a real server only when RECAP_TEST_MONGO_URI is set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("RECAP_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("RECAP_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coll := "history_test_" + primitive.NewObjectID().Hex()
	s, err := ConnectMongo(ctx, uri, "recap_test", coll)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.coll.Drop(context.Background())
		s.Close()
	})

	r1 := &Record{UserID: "u1", Title: "A", Body: "a", CreatedAt: time.Now().Add(-time.Minute)}
	r2 := &Record{UserID: "u1", Title: "B", Body: "b", CreatedAt: time.Now()}
	require.NoError(t, s.Insert(ctx, r1))
	require.NoError(t, s.Insert(ctx, r2))
	assert.Len(t, r1.ID, 24)

	records, err := s.FindByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "B", records[0].Title)
	assert.Equal(t, "b", records[0].Body)

	found, err := s.DeleteOne(ctx, r1.ID)
	require.NoError(t, err)
	assert.True(t, found)

	_, err = s.DeleteOne(ctx, "not-hex")
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	n, err := s.DeleteByIDs(ctx, []string{r2.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.DeleteByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
