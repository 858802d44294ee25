package bootstrap

import (
	"testing"

	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:                  "mongodb://localhost:27017",
		MongoDatabase:             "gatherhub",
		AuthJWTSecret:             "test-secret",
		DefaultSearchRadiusMeters: 2000,
	}
}

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()

	if err := ValidateConfig(nil, validAppConfig(), logger); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(c *AppConfig)
	}{
		{"bad mongo uri", func(c *AppConfig) { c.MongoURI = "not-a-uri" }},
		{"missing jwt secret", func(c *AppConfig) { c.AuthJWTSecret = "" }},
		{"zero radius", func(c *AppConfig) { c.DefaultSearchRadiusMeters = 0 }},
		{"negative radius", func(c *AppConfig) { c.DefaultSearchRadiusMeters = -100 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validAppConfig()
			tc.mutate(&cfg)
			if err := ValidateConfig(nil, cfg, logger); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
