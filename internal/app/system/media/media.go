// Package media adapts the external media-ingestion collaborator. The
// service never uploads bytes itself: clients hand their uploads to the
// ingestion service, and this adapter exchanges the resulting asset handle
// for a stable reference URL to store on the gathering.
//
// Ingestion failure is not a creation failure. Callers are expected to fall
// back to "no image" (empty reference) and log the drop; the published
// contract keeps the gathering even when its image is lost.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrIngestion wraps any failure talking to the ingestion service.
var ErrIngestion = errors.New("media ingestion failed")

// ErrNotConfigured is returned when no ingestion backend is configured;
// image assets are dropped in that case.
var ErrNotConfigured = errors.New("media ingestion not configured")

// Asset is the opaque handle for an already-uploaded object, as issued by
// the ingestion collaborator to the client.
type Asset struct {
	Key string `json:"key"`
}

// Resolver exchanges an asset handle for a stable reference URL.
type Resolver interface {
	Resolve(ctx context.Context, asset Asset) (string, error)
}

// IngestionClient resolves assets against an HTTP ingestion service.
type IngestionClient struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// NewIngestionClient builds a client for the ingestion service at baseURL.
func NewIngestionClient(baseURL string, logger *zap.Logger) *IngestionClient {
	return &IngestionClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     logger,
	}
}

type resolveResponse struct {
	URL string `json:"url"`
}

// Resolve POSTs the asset key to the ingestion service and returns the
// reference URL it reports.
func (c *IngestionClient) Resolve(ctx context.Context, asset Asset) (string, error) {
	if asset.Key == "" {
		return "", fmt.Errorf("%w: empty asset key", ErrIngestion)
	}

	body, err := json.Marshal(asset)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIngestion, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/resolve", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIngestion, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIngestion, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: ingestion service returned %d", ErrIngestion, resp.StatusCode)
	}

	var out resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIngestion, err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: ingestion service returned no url", ErrIngestion)
	}

	c.log.Debug("resolved media asset",
		zap.String("asset_key", asset.Key),
		zap.String("url", out.URL))
	return out.URL, nil
}

// StaticResolver maps asset keys onto a fixed URL prefix without calling
// out. Used in development and tests.
type StaticResolver struct {
	BaseURL string
}

// Resolve returns BaseURL/key, minting a key when the asset has none.
func (s StaticResolver) Resolve(_ context.Context, asset Asset) (string, error) {
	key := asset.Key
	if key == "" {
		key = uuid.NewString()
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + key, nil
}

// Disabled is the resolver used when no ingestion backend is configured.
type Disabled struct{}

// Resolve always fails with ErrNotConfigured.
func (Disabled) Resolve(context.Context, Asset) (string, error) {
	return "", ErrNotConfigured
}
