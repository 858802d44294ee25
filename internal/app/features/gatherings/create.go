// internal/app/features/gatherings/create.go
package gatherings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	gatheringstore "github.com/dalemusser/gatherhub/internal/app/store/gatherings"
	"github.com/dalemusser/gatherhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/gatherhub/internal/app/system/httpapi"
	"github.com/dalemusser/gatherhub/internal/app/system/media"
	"github.com/dalemusser/gatherhub/internal/app/system/timeouts"
	"github.com/dalemusser/gatherhub/internal/domain/models"
)

// HandleCreate processes POST /gatherings.
//
// A failed image resolution does not fail the create: the gathering is
// stored with no image reference and the drop is logged. Callers that need
// the image can detect the absent field and re-submit the asset.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	creatorID, p, ok := principalID(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.BadRequest(w, "invalid request body")
		return
	}
	if req.Location == nil || req.Location.Lng == nil || req.Location.Lat == nil {
		httpapi.ValidationFailed(w, "location", "location with lng and lat is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g := models.Gathering{
		Title:             htmlsanitize.StripTags(req.Title),
		Description:       htmlsanitize.Sanitize(req.Description),
		AdditionalDetails: htmlsanitize.Sanitize(req.AdditionalDetails),
		Location:          models.NewGeoPoint(*req.Location.Lng, *req.Location.Lat),
		StartTime:         req.StartTime.UTC(),
		EndTime:           req.EndTime.UTC(),
		CreatedBy:         creatorID,
	}

	store := gatheringstore.New(h.DB)

	// Reject invalid input before the ingestion round trip.
	if err := store.Validate(g); err != nil {
		var verr *gatheringstore.ValidationError
		if errors.As(err, &verr) {
			httpapi.ValidationFailed(w, verr.Field, verr.Message)
			return
		}
		h.Log.Error("create gathering failed", zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	g.ImageRef = h.resolveImage(ctx, req.ImageAsset)

	created, err := store.Create(ctx, g)
	if err != nil {
		var verr *gatheringstore.ValidationError
		if errors.As(err, &verr) {
			httpapi.ValidationFailed(w, verr.Field, verr.Message)
			return
		}
		h.Log.Error("create gathering failed", zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	h.Log.Info("gathering created",
		zap.String("gathering_id", created.ID.Hex()),
		zap.String("title", created.Title),
		zap.String("created_by", creatorID.Hex()))

	httpapi.JSON(w, http.StatusCreated, toResponse(created, 0, p.Name))
}

// resolveImage exchanges an uploaded asset for its reference URL, falling
// back to "no image" on any failure.
func (h *Handler) resolveImage(ctx context.Context, assetKey string) string {
	if assetKey == "" {
		return ""
	}

	ref, err := h.Media.Resolve(ctx, media.Asset{Key: assetKey})
	if err != nil {
		h.Log.Warn("image ingestion failed; creating gathering without image",
			zap.String("asset_key", assetKey),
			zap.Error(err))
		return ""
	}
	return ref
}
