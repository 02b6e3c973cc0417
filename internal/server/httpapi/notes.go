package httpapi

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/gorilla/mux"
)

const imageField = "bookImage"

type NoteRequest struct {
	BookName    string `json:"bookName"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

type NoteResponse struct {
	Envelope
	Note *models.Note `json:"note"`
}

type NotesResponse struct {
	Success bool          `json:"success"`
	Notes   []models.Note `json:"notes"`
}

// readNote accepts either a JSON body or a multipart form with an optional
// bookImage file. The returned cleanup must be called once the upload has
// been consumed.
func (a *API) readNote(w http.ResponseWriter, r *http.Request) (services.NoteInput, *services.Upload, func(), bool) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		req := NoteRequest{}
		if ok := decodeRequest(&req, w, r); !ok {
			return services.NoteInput{}, nil, noop, false
		}
		return services.NoteInput{BookName: req.BookName, Author: req.Author, Description: req.Description}, nil, noop, true
	}

	if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			returnJson(w, http.StatusRequestEntityTooLarge, Envelope{Message: "File too large", Error: err.Error()})
		} else {
			returnJson(w, http.StatusBadRequest, Envelope{Message: "Invalid request body", Error: err.Error()})
		}
		return services.NoteInput{}, nil, noop, false
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	in := services.NoteInput{
		BookName:    r.FormValue("bookName"),
		Author:      r.FormValue("author"),
		Description: r.FormValue("description"),
	}

	file, header, err := r.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil, cleanup, true
		}
		cleanup()
		returnJson(w, http.StatusBadRequest, Envelope{Message: "Invalid request body", Error: err.Error()})
		return services.NoteInput{}, nil, noop, false
	}

	upload := &services.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return in, upload, func() {
		_ = file.Close()
		cleanup()
	}, true
}

// studentIDMessage names a rejected studentId, falling back to msg for
// other validation failures.
func studentIDMessage(err error, msg string) string {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		return "Invalid studentId"
	case errors.Is(err, services.ErrIDRequired):
		return "studentId is required"
	}
	return msg
}

func (a *API) AddNote(w http.ResponseWriter, r *http.Request) {
	in, upload, cleanup, ok := a.readNote(w, r)
	if !ok {
		return
	}
	defer cleanup()

	note, err := a.notes.AddNote(r.Context(), mux.Vars(r)["studentId"], in, upload)
	if err != nil {
		a.fail(w, r, err, messages{
			common.KindValidation: studentIDMessage(err, "bookName, author, and description are required"),
			common.KindNotFound:   "Student not found",
			common.KindInternal:   "Error while adding note",
		})
		return
	}

	returnJson(w, http.StatusCreated, NoteResponse{
		Envelope: Envelope{Success: true, Message: "Note added successfully"},
		Note:     note,
	})
}

func (a *API) EditNote(w http.ResponseWriter, r *http.Request) {
	in, upload, cleanup, ok := a.readNote(w, r)
	if !ok {
		return
	}
	defer cleanup()

	note, err := a.notes.EditNote(r.Context(), mux.Vars(r)["noteId"], in, upload)
	if err != nil {
		a.fail(w, r, err, messages{
			common.KindValidation: "Invalid noteId",
			common.KindNotFound:   "Note not found",
			common.KindInternal:   "Error while updating note",
		})
		return
	}

	returnJson(w, http.StatusOK, NoteResponse{
		Envelope: Envelope{Success: true, Message: "Note updated successfully"},
		Note:     note,
	})
}

func (a *API) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := a.notes.DeleteNote(r.Context(), mux.Vars(r)["noteId"]); err != nil {
		a.fail(w, r, err, messages{
			common.KindValidation: "Invalid noteId",
			common.KindNotFound:   "Note not found",
			common.KindInternal:   "Error while deleting note",
		})
		return
	}

	returnJson(w, http.StatusOK, Envelope{Success: true, Message: "Note deleted successfully"})
}

func (a *API) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := a.notes.ListNotes(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		a.fail(w, r, err, messages{
			common.KindValidation: studentIDMessage(err, "studentId is required"),
			common.KindInternal:   "Error while fetching notes",
		})
		return
	}

	returnJson(w, http.StatusOK, NotesResponse{Success: true, Notes: notes})
}
