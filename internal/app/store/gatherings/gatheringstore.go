// internal/app/store/gatherings/gatheringstore.go
package gatheringstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/gatherhub/internal/app/system/geo"
	"github.com/dalemusser/gatherhub/internal/domain/models"
)

// Store owns the gatherings collection. Records are write-once: after
// Create the only thing that changes around a gathering is its attendance
// relation, which lives in its own collection.
type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("gathering not found")

// ValidationError reports the specific field that failed creation checks.
// Nothing is persisted when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("gatherings")}
}

// validate enforces the creation invariants: required text fields, time
// ordering, and coordinate ranges.
func validate(g models.Gathering) *ValidationError {
	if strings.TrimSpace(g.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(g.Description) == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	if g.StartTime.IsZero() {
		return &ValidationError{Field: "start_time", Message: "start_time is required"}
	}
	if g.EndTime.IsZero() {
		return &ValidationError{Field: "end_time", Message: "end_time is required"}
	}
	if !g.StartTime.Before(g.EndTime) {
		return &ValidationError{Field: "end_time", Message: "end_time must be after start_time"}
	}
	if err := geo.ValidateCoordinates(g.Location.Lng(), g.Location.Lat()); err != nil {
		return &ValidationError{Field: "location", Message: err.Error()}
	}
	if g.CreatedBy.IsZero() {
		return &ValidationError{Field: "created_by", Message: "creator is required"}
	}
	return nil
}

// Validate reports the first creation invariant the gathering violates,
// as a *ValidationError, without touching the database. Create runs the
// same checks; this lets handlers reject bad input before doing
// side-effecting work such as media resolution.
func (s *Store) Validate(g models.Gathering) error {
	g.Location.Type = "Point"
	if verr := validate(g); verr != nil {
		return verr
	}
	return nil
}

// Create validates and inserts a new gathering, assigning its id and audit
// timestamps. The insert is a single document write, so a canceled request
// either persists the whole record or nothing.
func (s *Store) Create(ctx context.Context, g models.Gathering) (models.Gathering, error) {
	g.Location.Type = "Point"
	if verr := validate(g); verr != nil {
		return models.Gathering{}, verr
	}

	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Gathering{}, fmt.Errorf("insert gathering: %w", err)
	}
	return g, nil
}

// GetByID retrieves a gathering by its id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Gathering, error) {
	var g models.Gathering
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Gathering{}, ErrNotFound
		}
		return models.Gathering{}, err
	}
	return g, nil
}

// List returns all gatherings in insertion order.
func (s *Store) List(ctx context.Context) ([]models.Gathering, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var gatherings []models.Gathering
	if err := cur.All(ctx, &gatherings); err != nil {
		return nil, err
	}
	return gatherings, nil
}

// Nearby returns gatherings within maxDistanceMeters of the origin,
// ordered by ascending great-circle distance. The $nearSphere operator
// runs against the 2dsphere index and guarantees the ordering; documents
// without an indexed location are never returned. An empty result is not
// an error.
func (s *Store) Nearby(ctx context.Context, lng, lat, maxDistanceMeters float64) ([]models.Gathering, error) {
	if err := geo.ValidateCoordinates(lng, lat); err != nil {
		return nil, &ValidationError{Field: "location", Message: err.Error()}
	}
	if maxDistanceMeters <= 0 {
		return nil, &ValidationError{Field: "max_distance", Message: "max_distance must be positive"}
	}

	filter := bson.M{
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry":    models.NewGeoPoint(lng, lat),
				"$maxDistance": maxDistanceMeters,
			},
		},
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("nearby query: %w", err)
	}
	defer cur.Close(ctx)

	var gatherings []models.Gathering
	if err := cur.All(ctx, &gatherings); err != nil {
		return nil, err
	}
	return gatherings, nil
}

// Count returns the number of gatherings matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// EnsureIndexes creates the indexes for the gatherings collection. The
// 2dsphere index backs the Nearby query.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("idx_gathering_location"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_gathering_created_at"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
