// internal/app/features/gatherings/handler.go
package gatherings

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	attendancestore "github.com/dalemusser/gatherhub/internal/app/store/attendance"
	userstore "github.com/dalemusser/gatherhub/internal/app/store/users"
	"github.com/dalemusser/gatherhub/internal/app/system/auth"
	"github.com/dalemusser/gatherhub/internal/app/system/httpapi"
	"github.com/dalemusser/gatherhub/internal/app/system/media"
	"github.com/dalemusser/gatherhub/internal/domain/models"
)

// Handler serves the gathering discovery API: create, list, nearby,
// detail, and the attendance toggle.
type Handler struct {
	DB *mongo.Database

	// Media resolves uploaded image assets to stable reference URLs.
	Media media.Resolver

	// DefaultRadiusMeters is the nearby-search radius used when the
	// request does not specify one.
	DefaultRadiusMeters float64

	Log *zap.Logger
}

// NewHandler constructs a gatherings Handler.
func NewHandler(db *mongo.Database, resolver media.Resolver, defaultRadiusMeters float64, logger *zap.Logger) *Handler {
	return &Handler{
		DB:                  db,
		Media:               resolver,
		DefaultRadiusMeters: defaultRadiusMeters,
		Log:                 logger,
	}
}

// principalID resolves the authenticated principal to an ObjectID. The
// bearer middleware guarantees a principal is present; a missing or
// malformed one is still rejected with 401 rather than trusted.
func principalID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, auth.Principal, bool) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		httpapi.Unauthorized(w)
		return primitive.NilObjectID, auth.Principal{}, false
	}
	id, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		httpapi.Unauthorized(w)
		return primitive.NilObjectID, auth.Principal{}, false
	}
	return id, p, true
}

// buildResponses shapes gatherings for listing. Names are hydrated in one
// $in query. With includeAttendees, each gathering also carries its
// attendee principals (list-all contract); without it only the counts are
// fetched, in one aggregation (proximity search contract).
func (h *Handler) buildResponses(ctx context.Context, gs []models.Gathering, includeAttendees bool) ([]gatheringResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(gs))
	userIDs := make([]primitive.ObjectID, 0, len(gs))
	for _, g := range gs {
		ids = append(ids, g.ID)
		userIDs = append(userIDs, g.CreatedBy)
	}

	attendance := attendancestore.New(h.DB)

	var attendees map[primitive.ObjectID][]primitive.ObjectID
	counts := make(map[primitive.ObjectID]int64, len(gs))
	if includeAttendees {
		var err error
		attendees, err = attendance.UserIDsByGatheringIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for id, uids := range attendees {
			counts[id] = int64(len(uids))
			userIDs = append(userIDs, uids...)
		}
	} else {
		var err error
		counts, err = attendance.CountByGatheringIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	names, err := userstore.New(h.DB).NamesByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]gatheringResponse, 0, len(gs))
	for _, g := range gs {
		resp := toResponse(g, counts[g.ID], names[g.CreatedBy])
		if includeAttendees {
			resp.Attendees = make([]principalRef, 0, len(attendees[g.ID]))
			for _, uid := range attendees[g.ID] {
				resp.Attendees = append(resp.Attendees, principalRef{ID: uid.Hex(), Name: names[uid]})
			}
		}
		out = append(out, resp)
	}
	return out, nil
}
