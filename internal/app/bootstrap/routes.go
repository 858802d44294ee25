// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	gatheringsfeature "github.com/dalemusser/gatherhub/internal/app/features/gatherings"
	healthfeature "github.com/dalemusser/gatherhub/internal/app/features/health"
	"github.com/dalemusser/gatherhub/internal/app/system/auth"
	"github.com/dalemusser/gatherhub/internal/app/system/media"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The gathering API is a JSON surface: the bearer verifier is built from
// the shared JWT secret and applied inside the gatherings feature router,
// so only the health endpoint is reachable without a token.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier := auth.NewJWTVerifier(appCfg.AuthJWTSecret)

	var resolver media.Resolver = media.Disabled{}
	if appCfg.MediaBaseURL != "" {
		resolver = media.NewIngestionClient(appCfg.MediaBaseURL, logger)
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	gatheringsHandler := gatheringsfeature.NewHandler(
		deps.MongoDatabase, resolver, appCfg.DefaultSearchRadiusMeters, logger)
	r.Mount("/gatherings", gatheringsfeature.Routes(gatheringsHandler, verifier, logger))

	return r, nil
}
