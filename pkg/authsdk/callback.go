package authsdk

import (
	"fmt"
	"net/url"
	"strconv"
)

// CallbackFragment holds the parameters an external login flow places in the
// fragment of the redirect back to an application.
type CallbackFragment struct {
	AccessToken      string
	TokenType        string
	ExpiresIn        int
	State            string
	Error            string
	ErrorDescription string
}

// Failed reports whether the login flow returned an error.
func (f CallbackFragment) Failed() bool {
	return f.Error != ""
}

// Message is the text shown for a failed callback: the description when
// present, else the bare error code.
func (f CallbackFragment) Message() string {
	if f.ErrorDescription != "" {
		return f.ErrorDescription
	}
	return f.Error
}

// ParseCallback parses the fragment of a redirect callback URL.
//
// Example:
//
//	frag, err := authsdk.ParseCallback("https://app.example/callback#access_token=abc&token_type=Bearer")
//	if err != nil {
//	    // The URL itself was malformed
//	}
//	if frag.Failed() {
//	    // The login flow reported an error, see frag.Message()
//	}
func ParseCallback(callbackURL string) (CallbackFragment, error) {
	u, err := url.Parse(callbackURL)
	if err != nil {
		return CallbackFragment{}, fmt.Errorf("failed to parse callback URL: %w", err)
	}

	values, err := url.ParseQuery(u.EscapedFragment())
	if err != nil {
		return CallbackFragment{}, fmt.Errorf("failed to parse callback fragment: %w", err)
	}

	frag := CallbackFragment{
		AccessToken:      values.Get("access_token"),
		TokenType:        values.Get("token_type"),
		State:            values.Get("state"),
		Error:            values.Get("error"),
		ErrorDescription: values.Get("error_description"),
	}
	if raw := values.Get("expires_in"); raw != "" {
		if frag.ExpiresIn, err = strconv.Atoi(raw); err != nil {
			return CallbackFragment{}, fmt.Errorf("invalid expires_in %q: %w", raw, err)
		}
	}

	return frag, nil
}
