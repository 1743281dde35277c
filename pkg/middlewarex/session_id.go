package middlewarex

import (
	"net/http"

	"tradein/pkg/contextx"
)

const headerNameSessionID = "X-Session-Id"

// SessionID copies the shopper session header into the context. Routes that
// need a session enforce presence themselves.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(headerNameSessionID)

		ctx := contextx.WithSessionID(r.Context(), contextx.SessionID(sessionID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
