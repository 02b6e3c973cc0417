package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatedEcho(codec *auth.Codec) http.Handler {
	return Authenticate(codec, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := CustomerIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(id))
	}))
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	codec := auth.NewCodec("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour)
	h := gatedEcho(codec)

	access, err := codec.IssueAccess("c1")
	require.NoError(t, err)
	refresh, err := codec.IssueRefresh("c1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized, message: "No token provided"},
		{name: "wrong scheme", header: "Basic " + access, status: http.StatusUnauthorized, message: "No token provided"},
		{name: "empty token", header: "Bearer ", status: http.StatusUnauthorized, message: "No token provided"},
		{name: "scheme only", header: "Bearer", status: http.StatusUnauthorized, message: "No token provided"},
		{name: "garbage", header: "Bearer garbage", status: http.StatusForbidden, message: "Invalid or expired token"},
		{name: "refresh token", header: "Bearer " + refresh, status: http.StatusForbidden, message: "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestAuthenticate_PropagatesCustomerID(t *testing.T) {
	t.Parallel()
	codec := auth.NewCodec("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour)
	access, err := codec.IssueAccess("c1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+access)
	rec := httptest.NewRecorder()
	gatedEcho(codec).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c1", rec.Body.String())
}

func TestAuthenticate_ExpiredAccessToken(t *testing.T) {
	t.Parallel()
	past := time.Now().Add(-2 * time.Hour)
	old := auth.NewCodec("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour,
		auth.WithClock(func() time.Time { return past }))
	access, err := old.IssueAccess("c1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	gatedEcho(auth.NewCodec("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCustomerIDFromContext_Empty(t *testing.T) {
	t.Parallel()
	_, ok := CustomerIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
