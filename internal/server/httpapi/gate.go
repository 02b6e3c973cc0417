package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

type customerIDKey struct{}

// CustomerIDFromContext returns the id stored by Authenticate.
func CustomerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(customerIDKey{}).(string)
	return id, ok && id != ""
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate admits requests carrying a valid access token. The revocation
// registry is not consulted; access tokens live until they expire.
func Authenticate(verifier AccessVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get(common.AuthorizationHeaderName))
		if token == "" {
			returnJson(w, http.StatusUnauthorized, Envelope{Message: "No token provided"})
			return
		}

		id, err := verifier.VerifyAccess(token)
		if err != nil {
			returnJson(w, http.StatusForbidden, Envelope{Message: "Invalid or expired token"})
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), customerIDKey{}, id)))
	})
}

func (a *API) authenticate(next http.Handler) http.Handler {
	return Authenticate(a.verifier, next)
}
