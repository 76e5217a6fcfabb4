package auth

import (
	"net/http"
	"strings"
)

const accessTokenName = "access_token"

// ExtractAccessToken looks for the bearer token in, by priority: the access_token cookie,
// the Authorization header, and the access_token query parameter. The query parameter is
// only honoured on websocket upgrades, where browsers cannot set headers.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	if isWebsocketUpgrade(r) {
		return r.URL.Query().Get(accessTokenName)
	}

	return ""
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
