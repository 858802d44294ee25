// internal/app/store/attendance/attendancestore.go
package attendancestore

import (
	"context"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/gatherhub/internal/domain/models"
)

// Store owns the attendance relation: one record per
// (gathering_id, user_id) pair, enforced by a unique compound index.
//
// The index is what makes Toggle safe under concurrency. Two racing
// inserts for the same pair cannot both land; the loser sees a duplicate
// key and tries the remove branch, retrying the insert when another
// toggle removed the record first. Toggles on different gatherings never
// contend.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("attendance_records")}
}

// Toggle flips the principal's membership in the gathering's attendee set
// and returns the resulting state with the post-toggle count. Each toggle
// commits as exactly one insert or one record-removing delete, so any
// interleaving of concurrent toggles on the same pair is equivalent to
// some sequential order of them. A disconnecting client can never leave
// the relation half-written.
func (s *Store) Toggle(ctx context.Context, gatheringID, userID primitive.ObjectID) (attending bool, count int64, err error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, 0, err
		}

		rec := models.AttendanceRecord{
			ID:          primitive.NewObjectID(),
			GatheringID: gatheringID,
			UserID:      userID,
			CreatedAt:   time.Now().UTC(),
		}

		_, insErr := s.c.InsertOne(ctx, rec)
		if insErr == nil {
			attending = true
			break
		}
		if !wafflemongo.IsDup(insErr) {
			return false, 0, fmt.Errorf("add attendance: %w", insErr)
		}

		// Already attending: remove the existing record. A concurrent
		// toggle may have deleted it between our insert and this delete;
		// claiming the removal requires actually deleting a record, so a
		// no-op delete loops back to the insert instead of reporting a
		// removal that never happened.
		res, delErr := s.c.DeleteOne(ctx, pairFilter(gatheringID, userID))
		if delErr != nil {
			return false, 0, fmt.Errorf("remove attendance: %w", delErr)
		}
		if res.DeletedCount > 0 {
			attending = false
			break
		}
	}

	count, err = s.Count(ctx, gatheringID)
	if err != nil {
		return attending, 0, err
	}
	return attending, count, nil
}

// Count returns the cardinality of the gathering's attendee set.
func (s *Store) Count(ctx context.Context, gatheringID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"gathering_id": gatheringID})
}

// CountByGatheringIDs returns attendee counts for many gatherings in one
// round trip. Gatherings with no attendees are absent from the map.
func (s *Store) CountByGatheringIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	counts := make(map[primitive.ObjectID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"gathering_id": bson.M{"$in": ids}}}},
		{{Key: "$group", Value: bson.M{"_id": "$gathering_id", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int64              `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// UserIDsByGatheringIDs returns the attending principals for many
// gatherings in one round trip, each list in join order. Gatherings with
// no attendees are absent from the map.
func (s *Store) UserIDsByGatheringIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID][]primitive.ObjectID, error) {
	out := make(map[primitive.ObjectID][]primitive.ObjectID, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"gathering_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []models.AttendanceRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		out[rec.GatheringID] = append(out[rec.GatheringID], rec.UserID)
	}
	return out, nil
}

// ListUserIDs returns the attending principals for a gathering in the
// order they joined.
func (s *Store) ListUserIDs(ctx context.Context, gatheringID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"gathering_id": gatheringID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []models.AttendanceRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.UserID)
	}
	return ids, nil
}

// IsAttending reports whether the pair currently exists.
func (s *Store) IsAttending(ctx context.Context, gatheringID, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, pairFilter(gatheringID, userID)).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// EnsureIndexes creates the unique pair index that serializes toggles and
// keeps the attendee set duplicate-free.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "gathering_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_attendance_pair"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func pairFilter(gatheringID, userID primitive.ObjectID) bson.M {
	return bson.M{"gathering_id": gatheringID, "user_id": userID}
}
