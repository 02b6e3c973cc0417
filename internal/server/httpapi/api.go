// Package httpapi is the HTTP JSON surface of the server: session endpoints,
// the authentication gate and the note endpoints behind it.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

const defaultMaxUploadBytes = 10 << 20

type SessionService interface {
	CreateAccount(ctx context.Context, in services.AccountInput) error
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

type NoteService interface {
	AddNote(ctx context.Context, studentID string, in services.NoteInput, image *services.Upload) (*models.Note, error)
	EditNote(ctx context.Context, noteID string, in services.NoteInput, image *services.Upload) (*models.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
	ListNotes(ctx context.Context, studentID string) ([]models.Note, error)
}

// AccessVerifier resolves an access token to a customer id.
type AccessVerifier interface {
	VerifyAccess(token string) (string, error)
}

// Observer receives per-request and per-operation measurements.
type Observer interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
	ObserveSession(operation string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveHTTP(string, string, int, time.Duration) {}
func (nopObserver) ObserveSession(string, error)                   {}

type API struct {
	sessions       SessionService
	notes          NoteService
	verifier       AccessVerifier
	log            logging.Logger
	observer       Observer
	metricsHandler http.Handler
	maxUploadBytes int64
}

type Option func(*API)

// WithMetrics records request and session metrics and serves them on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *API) {
		a.observer = m
		a.metricsHandler = m.Handler()
	}
}

func WithMaxUploadBytes(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxUploadBytes = n
		}
	}
}

func New(sessions SessionService, notes NoteService, verifier AccessVerifier, log logging.Logger, opts ...Option) *API {
	if log == nil {
		log = logging.NopLogger{}
	}
	a := &API{
		sessions:       sessions,
		notes:          notes,
		verifier:       verifier,
		log:            log.With("component", "http"),
		observer:       nopObserver{},
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Envelope is the common shape of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func decodeRequest[T any](req *T, w http.ResponseWriter, r *http.Request) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		returnJson(w, http.StatusBadRequest, Envelope{Message: "Invalid request body", Error: err.Error()})
		return false
	}
	return true
}

func returnJson(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind common.ErrorKind) int {
	switch kind {
	case common.KindValidation:
		return http.StatusBadRequest
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindUnauthorized:
		return http.StatusUnauthorized
	case common.KindInvalidToken, common.KindRevoked:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type messages map[common.ErrorKind]string

// fail writes the error envelope for err. The message comes from msgs, the
// detail is only exposed for validation and internal failures.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error, msgs messages) {
	kind := common.Kind(err)
	status := StatusFor(kind)

	msg, ok := msgs[kind]
	if !ok {
		msg = http.StatusText(status)
	}

	resp := Envelope{Message: msg}
	switch kind {
	case common.KindInternal:
		resp.Error = err.Error()
		a.log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	case common.KindValidation:
		resp.Error = err.Error()
	default:
		a.log.Debug(r.Context(), "request rejected", "method", r.Method, "path", r.URL.Path, "kind", kind.String())
	}

	returnJson(w, status, resp)
}
