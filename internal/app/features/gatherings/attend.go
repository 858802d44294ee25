// internal/app/features/gatherings/attend.go
package gatherings

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	attendancestore "github.com/dalemusser/gatherhub/internal/app/store/attendance"
	gatheringstore "github.com/dalemusser/gatherhub/internal/app/store/gatherings"
	"github.com/dalemusser/gatherhub/internal/app/system/httpapi"
	"github.com/dalemusser/gatherhub/internal/app/system/timeouts"
)

// HandleAttend processes POST /gatherings/{id}/attend.
//
// The toggle is idempotent in intent: attending principals are removed,
// absent ones are added, and the response always carries the resulting
// state and count. Concurrent toggles on the same pair serialize on the
// attendance relation's unique index.
func (h *Handler) HandleAttend(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := principalID(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.NotFound(w, "gathering not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := gatheringstore.New(h.DB).GetByID(ctx, id); err != nil {
		if err == gatheringstore.ErrNotFound {
			httpapi.NotFound(w, "gathering not found")
			return
		}
		h.Log.Error("get gathering failed", zap.String("gathering_id", id.Hex()), zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	attending, count, err := attendancestore.New(h.DB).Toggle(ctx, id, userID)
	if err != nil {
		h.Log.Error("attendance toggle failed",
			zap.String("gathering_id", id.Hex()),
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	h.Log.Info("attendance toggled",
		zap.String("gathering_id", id.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.Bool("attending", attending),
		zap.Int64("attendees_count", count))

	httpapi.JSON(w, http.StatusOK, attendResponse{Attending: attending, AttendeesCount: count})
}
