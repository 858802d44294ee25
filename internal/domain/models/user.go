// internal/domain/models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the principal record owned by the external identity subsystem.
// This service only reads it to hydrate display names on responses;
// registration, credentials, and profile edits happen elsewhere.
type User struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
}
