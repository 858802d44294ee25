// internal/domain/models/gathering.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is a GeoJSON Point as stored in MongoDB.
// Coordinates are ordered [longitude, latitude] in WGS-84 degrees,
// which is what the 2dsphere index expects.
type GeoPoint struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// Lng returns the longitude component.
func (p GeoPoint) Lng() float64 { return p.Coordinates[0] }

// Lat returns the latitude component.
func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// Gathering is a published, geolocated, time-bounded community event.
//
// NOTE:
//   - Attendees are not embedded on the record. Membership lives in the
//     attendance_records collection, keyed (gathering_id, user_id), so a
//     toggle never rewrites the parent document.
//   - All fields except the attendance relation are write-once: there is
//     no edit or delete path after creation.
type Gathering struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description" json:"description"`
	AdditionalDetails string             `bson:"additional_details,omitempty" json:"additional_details,omitempty"`
	Location          GeoPoint           `bson:"location" json:"location"`
	StartTime         time.Time          `bson:"start_time" json:"start_time"`
	EndTime           time.Time          `bson:"end_time" json:"end_time"`

	// ImageRef is a stable reference URL produced by the media ingestion
	// collaborator. Empty means the gathering has no image.
	ImageRef string `bson:"image_ref,omitempty" json:"image_ref,omitempty"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
