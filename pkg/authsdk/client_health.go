package authsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GetLiveness calls /livez.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/livez")
}

// GetReadiness calls /readyz. When the service answers 503 with a health
// body, that body is returned together with the error so callers can see
// which check failed.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/readyz")
}

func (c *SDKClient) probe(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var health HealthResponse
	decodeErr := json.Unmarshal(body, &health)

	switch {
	case resp.StatusCode == http.StatusOK && decodeErr != nil:
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	case resp.StatusCode == http.StatusOK:
		return &health, nil
	case decodeErr == nil && health.Status != "":
		return &health, NewOAuth2Error(resp.StatusCode, ErrorCodeServerError, "service is "+health.Status)
	default:
		return nil, parseErrorResponse(resp, body)
	}
}
