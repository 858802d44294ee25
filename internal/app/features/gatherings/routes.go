// internal/app/features/gatherings/routes.go
package gatherings

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/gatherhub/internal/app/system/auth"
)

// Routes mounts the gathering discovery API. Every route sits behind the
// bearer gate: unauthenticated calls are rejected before any store access.
func Routes(h *Handler, verifier auth.Verifier, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireBearer(verifier, logger))

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/nearby", h.ServeNearby)
	r.Get("/{id}", h.ServeDetail)
	r.Post("/{id}/attend", h.HandleAttend)

	return r
}
