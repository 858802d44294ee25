// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the gathering service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, auth_jwt_secret, etc.
//   - Environment variables: GATHERHUB_MONGO_URI, GATHERHUB_AUTH_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --auth_jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "gatherhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Bearer token verification
	{Name: "auth_jwt_secret", Default: "", Desc: "HMAC secret for verifying bearer tokens (required)"},

	// Proximity search
	{Name: "default_search_radius_m", Default: 2000, Desc: "Default nearby search radius in meters"},

	// Media ingestion
	{Name: "media_base_url", Default: "", Desc: "Base URL of the image ingestion service (blank disables image resolution)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, GATHERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GATHERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthJWTSecret: appValues.String("auth_jwt_secret"),

		DefaultSearchRadiusMeters: float64(appValues.Int("default_search_radius_m")),

		MediaBaseURL: appValues.String("media_base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI format is checked here to catch configuration errors
// early, before attempting to connect. The JWT secret is required since
// every API route sits behind the bearer gate.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.AuthJWTSecret == "" {
		return fmt.Errorf("auth_jwt_secret is required")
	}

	if appCfg.DefaultSearchRadiusMeters <= 0 {
		return fmt.Errorf("default_search_radius_m must be positive, got %v", appCfg.DefaultSearchRadiusMeters)
	}

	return nil
}
