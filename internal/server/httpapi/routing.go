package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(a.withRequestLogging)

	r.HandleFunc("/healthz", a.Healthz).Methods(http.MethodGet)
	if a.metricsHandler != nil {
		r.Handle("/metrics", a.metricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/account", a.CreateAccount).Methods(http.MethodPost)
	r.HandleFunc("/login", a.Login).Methods(http.MethodPost)
	r.HandleFunc("/token/refresh", a.Refresh).Methods(http.MethodPost)
	r.HandleFunc("/logout", a.Logout).Methods(http.MethodPost)

	// the same path segment is a student id for POST/GET and a note id for PUT/DELETE
	s := r.PathPrefix("/students").Subrouter()
	s.Use(a.authenticate)
	s.HandleFunc("/{studentId}/notes", a.AddNote).Methods(http.MethodPost)
	s.HandleFunc("/{studentId}/notes", a.ListNotes).Methods(http.MethodGet)
	s.HandleFunc("/{noteId}/notes", a.EditNote).Methods(http.MethodPut)
	s.HandleFunc("/{noteId}/notes", a.DeleteNote).Methods(http.MethodDelete)

	return r
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	returnJson(w, http.StatusOK, Envelope{Success: true, Message: "ok"})
}
