package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/gatherhub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a principal record with the given username.
func (f *Fixtures) CreateUser(ctx context.Context, username string) models.User {
	f.t.Helper()

	user := models.User{
		ID:       primitive.NewObjectID(),
		Username: username,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGathering inserts a gathering at the given coordinates with a
// two-hour window starting an hour from now.
func (f *Fixtures) CreateGathering(ctx context.Context, title string, lng, lat float64, createdBy primitive.ObjectID) models.Gathering {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Gathering{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test gathering description",
		Location:    models.NewGeoPoint(lng, lat),
		StartTime:   now.Add(time.Hour),
		EndTime:     now.Add(3 * time.Hour),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("gatherings").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test gathering: %v", err)
	}
	return g
}

// CreateAttendance inserts an attendance record linking a user to a
// gathering.
func (f *Fixtures) CreateAttendance(ctx context.Context, gatheringID, userID primitive.ObjectID) models.AttendanceRecord {
	f.t.Helper()

	rec := models.AttendanceRecord{
		ID:          primitive.NewObjectID(),
		GatheringID: gatheringID,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("attendance_records").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test attendance record: %v", err)
	}
	return rec
}
