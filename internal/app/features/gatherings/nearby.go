// internal/app/features/gatherings/nearby.go
package gatherings

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	gatheringstore "github.com/dalemusser/gatherhub/internal/app/store/gatherings"
	"github.com/dalemusser/gatherhub/internal/app/system/httpapi"
	"github.com/dalemusser/gatherhub/internal/app/system/timeouts"
)

// ServeNearby handles GET /gatherings/nearby?lng=&lat=&maxDistance=.
//
// Results come back in ascending distance from the origin, straight off
// the 2dsphere index. maxDistance is in meters and defaults to the
// configured search radius. An empty result set is a 200 with [].
func (h *Handler) ServeNearby(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := principalID(w, r); !ok {
		return
	}

	q := r.URL.Query()

	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		httpapi.ValidationFailed(w, "lng", "lng must be a number")
		return
	}
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		httpapi.ValidationFailed(w, "lat", "lat must be a number")
		return
	}

	maxDistance := h.DefaultRadiusMeters
	if raw := q.Get("maxDistance"); raw != "" {
		maxDistance, err = strconv.ParseFloat(raw, 64)
		if err != nil || maxDistance <= 0 {
			httpapi.ValidationFailed(w, "maxDistance", "maxDistance must be a positive number of meters")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	gs, err := gatheringstore.New(h.DB).Nearby(ctx, lng, lat, maxDistance)
	if err != nil {
		var verr *gatheringstore.ValidationError
		if errors.As(err, &verr) {
			httpapi.ValidationFailed(w, verr.Field, verr.Message)
			return
		}
		h.Log.Error("nearby query failed",
			zap.Float64("lng", lng),
			zap.Float64("lat", lat),
			zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	out, err := h.buildResponses(ctx, gs, false)
	if err != nil {
		h.Log.Error("hydrate nearby gatherings failed", zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	httpapi.JSON(w, http.StatusOK, out)
}
