package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notekeeper/internal/server/storage"
	"github.com/google/uuid"
)

// Validation causes callers can tell apart with errors.Is. All of them
// wrap common.ErrorValidation.
var (
	ErrIDRequired         = fmt.Errorf("%w: id is required", common.ErrorValidation)
	ErrInvalidID          = fmt.Errorf("%w: invalid id", common.ErrorValidation)
	ErrNoteFieldsRequired = fmt.Errorf("%w: bookName, author, and description are required", common.ErrorValidation)
)

type NoteInput struct {
	BookName    string
	Author      string
	Description string
}

// Upload is an image attached to a note request.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type NoteService struct {
	tx            dbx.Transactor
	repomanager   repomanager.RepositoryManager
	images        storage.ImageStore
	log           logging.Logger
	observeUpload func(error)
}

type NoteOption func(*NoteService)

// WithUploadObserver registers fn to be told the outcome of every image upload.
func WithUploadObserver(fn func(error)) NoteOption {
	return func(s *NoteService) { s.observeUpload = fn }
}

// NewNoteService builds a NoteService. images may be nil, in which case
// attached images are ignored.
func NewNoteService(tx dbx.Transactor, m repomanager.RepositoryManager, images storage.ImageStore,
	log logging.Logger, opts ...NoteOption) *NoteService {
	if log == nil {
		log = logging.NopLogger{}
	}
	s := &NoteService{
		tx:            tx,
		repomanager:   m,
		images:        images,
		log:           log.With("component", "notes"),
		observeUpload: func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func requireID(name, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s", ErrIDRequired, name)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, name)
	}
	return nil
}

// upload stores the image and returns its URL. Failures are logged and
// reported as an empty URL; they never fail the surrounding operation.
func (s *NoteService) upload(ctx context.Context, u *Upload) string {
	if u == nil || s.images == nil {
		return ""
	}
	url, err := s.images.Upload(ctx, u.Name, u.ContentType, u.Size, u.Body)
	s.observeUpload(err)
	if err != nil {
		s.log.Error(ctx, "image upload failed", "file", u.Name, "error", err)
		return ""
	}
	return url
}

func (s *NoteService) AddNote(ctx context.Context, studentID string, in NoteInput, image *Upload) (*models.Note, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: studentId", ErrIDRequired)
	}
	if in.BookName == "" || in.Author == "" || in.Description == "" {
		return nil, ErrNoteFieldsRequired
	}
	if err := requireID("studentId", studentID); err != nil {
		return nil, err
	}

	conn := s.tx.Conn()
	if _, err := s.repomanager.Customers(conn).FindByID(ctx, studentID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: student %s", common.ErrorNotFound, studentID)
		}
		return nil, internal("find student", err)
	}

	bookImage := s.upload(ctx, image)
	if bookImage == "" {
		bookImage = models.NoImage
	}

	note, err := s.repomanager.Notes(conn).Create(ctx, &models.Note{
		StudentID:   studentID,
		BookName:    in.BookName,
		Author:      in.Author,
		BookImage:   bookImage,
		Description: in.Description,
	})
	if err != nil {
		return nil, internal("create note", err)
	}

	s.log.Info(ctx, "note added", "note_id", note.ID, "student_id", studentID)
	return note, nil
}

func findNote(ctx context.Context, repo notes.Repository, noteID string) (*models.Note, error) {
	n, err := repo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: note %s", common.ErrorNotFound, noteID)
		}
		return nil, internal("find note", err)
	}
	return n, nil
}

// EditNote overwrites the non-empty fields of in. A new image replaces the
// stored URL only if its upload succeeds. The upload runs outside the
// transaction.
func (s *NoteService) EditNote(ctx context.Context, noteID string, in NoteInput, image *Upload) (*models.Note, error) {
	if err := requireID("noteId", noteID); err != nil {
		return nil, err
	}

	if _, err := findNote(ctx, s.repomanager.Notes(s.tx.Conn()), noteID); err != nil {
		return nil, err
	}
	url := s.upload(ctx, image)

	var note *models.Note
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		n, err := findNote(ctx, repo, noteID)
		if err != nil {
			return err
		}

		if url != "" {
			n.BookImage = url
		}
		if in.BookName != "" {
			n.BookName = in.BookName
		}
		if in.Author != "" {
			n.Author = in.Author
		}
		if in.Description != "" {
			n.Description = in.Description
		}

		if err := repo.Update(ctx, n); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: note %s", common.ErrorNotFound, noteID)
			}
			return internal("update note", err)
		}
		note = n
		return nil
	})
	if err != nil {
		if common.Kind(err) == common.KindInternal && !errors.Is(err, common.ErrorInternal) {
			return nil, internal("transaction", err)
		}
		return nil, err
	}

	s.log.Info(ctx, "note updated", "note_id", noteID)
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, noteID string) error {
	if err := requireID("noteId", noteID); err != nil {
		return err
	}

	if err := s.repomanager.Notes(s.tx.Conn()).Delete(ctx, noteID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: note %s", common.ErrorNotFound, noteID)
		}
		return internal("delete note", err)
	}

	s.log.Info(ctx, "note deleted", "note_id", noteID)
	return nil
}

func (s *NoteService) ListNotes(ctx context.Context, studentID string) ([]models.Note, error) {
	if err := requireID("studentId", studentID); err != nil {
		return nil, err
	}

	list, err := s.repomanager.Notes(s.tx.Conn()).ListByStudent(ctx, studentID)
	if err != nil {
		return nil, internal("list notes", err)
	}
	return list, nil
}
