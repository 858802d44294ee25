// internal/domain/models/attendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceRecord marks one principal as attending one gathering.
// The (gathering_id, user_id) pair is unique, so a principal can never be
// counted twice for the same gathering.
type AttendanceRecord struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	GatheringID primitive.ObjectID `bson:"gathering_id" json:"gathering_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
