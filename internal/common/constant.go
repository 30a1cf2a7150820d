package common

const (
	// AuthCookieName is the cookie checked when no Authorization header is
	// present on a request.
	AuthCookieName = "authToken"

	// NewTokenHeaderName carries a refreshed session token back to the
	// client when the middleware performs an opportunistic refresh.
	NewTokenHeaderName = "X-New-Token"
)
