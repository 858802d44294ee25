// internal/app/features/gatherings/list.go
package gatherings

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	gatheringstore "github.com/dalemusser/gatherhub/internal/app/store/gatherings"
	"github.com/dalemusser/gatherhub/internal/app/system/httpapi"
	"github.com/dalemusser/gatherhub/internal/app/system/timeouts"
)

// ServeList handles GET /gatherings. Every gathering is visible to every
// authenticated principal; there is no pagination in this contract.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := principalID(w, r); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	gs, err := gatheringstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list gatherings failed", zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	out, err := h.buildResponses(ctx, gs, true)
	if err != nil {
		h.Log.Error("hydrate gathering list failed", zap.Error(err))
		httpapi.ServerError(w)
		return
	}

	httpapi.JSON(w, http.StatusOK, out)
}
