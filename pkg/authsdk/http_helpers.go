package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with the SDKClient's HTTP client.
// Callers add any Authorization header through headers.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set custom headers
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// doJSON marshals payload and sends it as an application/json body.
func (c *SDKClient) doJSON(
	ctx context.Context,
	method, path string,
	payload any,
	headers map[string]string,
) (*http.Response, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	h := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		h[k] = v
	}

	return c.doRequest(ctx, method, path, bytes.NewReader(raw), h)
}

// doForm sends data as an application/x-www-form-urlencoded body.
func (c *SDKClient) doForm(ctx context.Context, path string, data url.Values) (*http.Response, error) {
	return c.doRequest(ctx, http.MethodPost, path, strings.NewReader(data.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
}

// decodeJSON decodes a JSON response into the target interface.
// Returns a typed OAuth2Error if the response indicates an error.
// Returns an error if decoding fails.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	// Read body once for both error parsing and success decoding
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatus returns a typed error if the response status is not expected.
// The body is drained and closed either way.
func checkStatus(resp *http.Response, expected int) error {
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expected {
		return parseErrorResponse(resp, bodyBytes)
	}

	return nil
}
