/*
Package authsdk provides a client SDK for the aussiebroadwan sso token service.

# Overview

The service issues opaque bearer tokens shared by independently deployed
applications. This package wraps its public endpoints (refresh, revoke,
userinfo, health), its admin API, and provides the client-side bootstrap
controller that turns a login redirect into a local session state.

# SDKClient vs Session

  - SDKClient: unauthenticated calls and Session construction
  - Session: holds a token pair and refreshes it ahead of expiry
  - AdminClient: admin API calls authenticated with the service admin token

	client := authsdk.NewSDKClient("https://sso.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Resume a session from a stored refresh token
	session, err := client.AuthenticateWithRefreshToken(ctx, refreshToken)

	// Claims of the signed-in user, refreshing first if needed
	info, err := session.GetUserInfo(ctx)

	// Sign out
	err = session.Revoke(ctx, clientID, clientSecret)

# Automatic Token Refresh

Sessions treat the access token as expired 30 seconds before expires_in
elapses. The next call then uses the refresh token to rotate the pair. The
server invalidates the old refresh token on every refresh, so a Session
must be the only holder of its refresh token.

The SDK never retries a failed request.

# Session Bootstrap

After an external login flow redirects back with a fragment such as
#access_token=... or #error=..., a BootstrapController settles into one of
processing, authenticated, error or unknown:

	ctrl := authsdk.NewBootstrapController(
		client.UserInfoSource(frag.AccessToken, time.Second),
		authsdk.NavigatorFunc(router.Push),
		authsdk.BootstrapOptions{
			SuccessRedirect: "/",
			ErrorRedirect:   "/login",
		},
	)
	if err := ctrl.Mount(callbackURL); err != nil {
		// malformed URL, state is unknown
	}
	defer ctrl.Unmount()

An error fragment navigates to ErrorRedirect?error=<message> after three
seconds unless GoToLogin is called first. A principal that does not arrive
within ten seconds is reported as a timeout.

# Error Handling

Non-2xx responses are returned as *OAuth2Error carrying the HTTP status and
the error code from the body. Use IsErrorCode to branch on the code:

	if authsdk.IsErrorCode(err, authsdk.ErrorCodeInvalidToken) {
		// sign in again
	}

# Thread Safety

SDKClient, Session and AdminClient are safe for concurrent use.
*/
package authsdk
