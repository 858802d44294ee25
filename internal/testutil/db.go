package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	attendancestore "github.com/dalemusser/gatherhub/internal/app/store/attendance"
	gatheringstore "github.com/dalemusser/gatherhub/internal/app/store/gatherings"
)

// SetupTestDB connects to the test MongoDB instance and returns a database
// unique to the calling test, with all indexes created. The database is
// dropped and the client disconnected when the test finishes.
//
// The URI comes from GATHERHUB_TEST_MONGO_URI (default
// mongodb://localhost:27017). Tests that need a database are skipped when
// no server is reachable, so the rest of the suite runs anywhere.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("GATHERHUB_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("test mongo not available at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("test mongo not reachable at %s: %v", uri, err)
	}

	db := client.Database("gatherhub_test_" + primitive.NewObjectID().Hex())

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	if err := gatheringstore.New(db).EnsureIndexes(ctx); err != nil {
		t.Fatalf("failed to create gathering indexes: %v", err)
	}
	if err := attendancestore.New(db).EnsureIndexes(ctx); err != nil {
		t.Fatalf("failed to create attendance indexes: %v", err)
	}

	return db
}

// TestContext returns a context with a generous timeout for test database
// operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}
