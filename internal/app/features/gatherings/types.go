// internal/app/features/gatherings/types.go
package gatherings

import (
	"time"

	"github.com/dalemusser/gatherhub/internal/domain/models"
)

// locationInput is the request-side coordinate pair. Pointers distinguish
// "absent" from a legitimate zero coordinate.
type locationInput struct {
	Lng *float64 `json:"lng"`
	Lat *float64 `json:"lat"`
}

// createRequest is the body of POST /gatherings.
type createRequest struct {
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	AdditionalDetails string         `json:"additionalDetails,omitempty"`
	Location          *locationInput `json:"location"`
	StartTime         time.Time      `json:"startTime"`
	EndTime           time.Time      `json:"endTime"`

	// ImageAsset is the handle of an already-uploaded image, as issued by
	// the media ingestion service. Optional.
	ImageAsset string `json:"imageAsset,omitempty"`
}

// principalRef is a hydrated reference to a user record.
type principalRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type locationOutput struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// gatheringResponse is the API shape of a gathering. Attendees are
// populated on the detail and list-all endpoints; proximity search
// carries only the count.
type gatheringResponse struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	AdditionalDetails string         `json:"additionalDetails,omitempty"`
	Location          locationOutput `json:"location"`
	StartTime         time.Time      `json:"startTime"`
	EndTime           time.Time      `json:"endTime"`
	ImageRef          string         `json:"imageRef,omitempty"`
	CreatedBy         principalRef   `json:"createdBy"`
	AttendeesCount    int64          `json:"attendeesCount"`
	Attendees         []principalRef `json:"attendees,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// attendResponse is the body of POST /gatherings/{id}/attend.
type attendResponse struct {
	Attending      bool  `json:"attending"`
	AttendeesCount int64 `json:"attendeesCount"`
}

func toResponse(g models.Gathering, attendeesCount int64, creatorName string) gatheringResponse {
	return gatheringResponse{
		ID:                g.ID.Hex(),
		Title:             g.Title,
		Description:       g.Description,
		AdditionalDetails: g.AdditionalDetails,
		Location:          locationOutput{Lng: g.Location.Lng(), Lat: g.Location.Lat()},
		StartTime:         g.StartTime,
		EndTime:           g.EndTime,
		ImageRef:          g.ImageRef,
		CreatedBy:         principalRef{ID: g.CreatedBy.Hex(), Name: creatorName},
		AttendeesCount:    attendeesCount,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
}
