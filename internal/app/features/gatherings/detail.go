// internal/app/features/gatherings/detail.go
package gatherings

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	attendancestore "github.com/dalemusser/gatherhub/internal/app/store/attendance"
	gatheringstore "github.com/dalemusser/gatherhub/internal/app/store/gatherings"
	userstore "github.com/dalemusser/gatherhub/internal/app/store/users"
	"github.com/dalemusser/gatherhub/internal/app/system/httpapi"
	"github.com/dalemusser/gatherhub/internal/app/system/timeouts"
)

// ServeDetail handles GET /gatherings/{id}, returning the gathering with
// its creator and attendee names hydrated from the users collection.
// A syntactically invalid id is indistinguishable from an unknown one.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := principalID(w, r); !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.NotFound(w, "gathering not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := gatheringstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == gatheringstore.ErrNotFound {
			httpapi.NotFound(w, "gathering not found")
			return
		}
		h.Log.Error("get gathering failed", zap.String("gathering_id", id.Hex()), zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	attendeeIDs, err := attendancestore.New(h.DB).ListUserIDs(ctx, g.ID)
	if err != nil {
		h.Log.Error("list attendees failed", zap.String("gathering_id", id.Hex()), zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	names, err := userstore.New(h.DB).NamesByIDs(ctx, append(attendeeIDs, g.CreatedBy))
	if err != nil {
		h.Log.Error("hydrate names failed", zap.String("gathering_id", id.Hex()), zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	resp := toResponse(g, int64(len(attendeeIDs)), names[g.CreatedBy])
	resp.Attendees = make([]principalRef, 0, len(attendeeIDs))
	for _, uid := range attendeeIDs {
		resp.Attendees = append(resp.Attendees, principalRef{ID: uid.Hex(), Name: names[uid]})
	}

	httpapi.JSON(w, http.StatusOK, resp)
}
