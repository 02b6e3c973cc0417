package httpapi

import (
	"context"
	"io"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

type fakeSessions struct {
	createErr error
	gotInput  services.AccountInput

	loginRes *services.LoginResult
	loginErr error

	refreshOut string
	refreshErr error

	logoutErr error
	loggedOut []string
}

func (f *fakeSessions) CreateAccount(ctx context.Context, in services.AccountInput) error {
	f.gotInput = in
	return f.createErr
}

func (f *fakeSessions) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginRes, nil
}

func (f *fakeSessions) Refresh(ctx context.Context, token string) (string, error) {
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	return f.refreshOut, nil
}

func (f *fakeSessions) Logout(ctx context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return f.logoutErr
}

type fakeNotes struct {
	gotStudentID string
	gotNoteID    string
	gotInput     services.NoteInput
	gotImage     string
	gotImageName string

	note  *models.Note
	notes []models.Note
	err   error
}

func (f *fakeNotes) capture(in services.NoteInput, image *services.Upload) {
	f.gotInput = in
	if image != nil {
		b, _ := io.ReadAll(image.Body)
		f.gotImage = string(b)
		f.gotImageName = image.Name
	}
}

func (f *fakeNotes) AddNote(ctx context.Context, studentID string, in services.NoteInput, image *services.Upload) (*models.Note, error) {
	f.gotStudentID = studentID
	f.capture(in, image)
	return f.note, f.err
}

func (f *fakeNotes) EditNote(ctx context.Context, noteID string, in services.NoteInput, image *services.Upload) (*models.Note, error) {
	f.gotNoteID = noteID
	f.capture(in, image)
	return f.note, f.err
}

func (f *fakeNotes) DeleteNote(ctx context.Context, noteID string) error {
	f.gotNoteID = noteID
	return f.err
}

func (f *fakeNotes) ListNotes(ctx context.Context, studentID string) ([]models.Note, error) {
	f.gotStudentID = studentID
	return f.notes, f.err
}
