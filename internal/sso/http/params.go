package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/sso/pkg/authsdk"
)

const (
	mediaJSON = "application/json"
	mediaForm = "application/x-www-form-urlencoded"

	maxBodyBytes = 64 << 10
)

var errUnsupportedMedia = errors.New("unsupported media type")

// paramsParser reads the request body into a flat parameter set.
type paramsParser func(*http.Request) (url.Values, error)

// paramsParsers picks the body decoding by media type. A request without a
// Content-Type is read as a form, which is what RFC 6749 clients send.
var paramsParsers = map[string]paramsParser{
	mediaJSON: parseJSONParams,
	mediaForm: parseFormParams,
	"":        parseFormParams,
}

// readParams decodes a JSON object or form encoded body.
func readParams(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	mt := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		var err error
		if mt, _, err = mime.ParseMediaType(ct); err != nil {
			return nil, errUnsupportedMedia
		}
	}

	parse, ok := paramsParsers[mt]
	if !ok {
		return nil, errUnsupportedMedia
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return parse(r)
}

func parseFormParams(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// parseJSONParams accepts a JSON object whose values are strings. Other value
// types are ignored rather than coerced.
func parseJSONParams(r *http.Request) (url.Values, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json body: %w", err)
	}

	out := make(url.Values, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out.Set(k, s)
		}
	}
	return out, nil
}

// paramsError maps a readParams failure onto the response sent to the caller.
func paramsError(err error) *authsdk.OAuth2Error {
	if errors.Is(err, errUnsupportedMedia) {
		return authsdk.ErrUnsupportedContentType
	}
	return authsdk.ErrInvalidBody
}
