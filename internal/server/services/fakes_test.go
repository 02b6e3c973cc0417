package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/customers"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/google/uuid"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeTransactor runs the unit of work directly; repositories are fakes and
// ignore the handle they are given.
type fakeTransactor struct {
	beginErr error
	calls    int
	open     bool
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn dbx.TxFunc) error {
	f.calls++
	if f.beginErr != nil {
		return f.beginErr
	}
	f.open = true
	defer func() { f.open = false }()
	return fn(ctx, nil)
}

func (f *fakeTransactor) Conn() dbx.DBTX { return nil }

type fakeCustomersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.Customer

	findErr   error
	createErr error
	saveErr   error
	saves     int
}

func newFakeCustomersRepo() *fakeCustomersRepo {
	return &fakeCustomersRepo{byEmail: map[string]*models.Customer{}}
}

func (f *fakeCustomersRepo) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	c, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomersRepo) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, c := range f.byEmail {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCustomersRepo) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	cp := *c
	f.byEmail[c.Email] = &cp
	return c, nil
}

func (f *fakeCustomersRepo) Save(ctx context.Context, c *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	cp := *c
	f.byEmail[c.Email] = &cp
	return nil
}

type fakeNotesRepo struct {
	byID map[string]*models.Note

	createErr error
	getErr    error
	updateErr error
	deleteErr error
	listErr   error
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{byID: map[string]*models.Note{}}
}

func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	n.ID = uuid.NewString()
	n.CreatedAt, n.UpdatedAt = time.Now(), time.Now()
	cp := *n
	f.byID[n.ID] = &cp
	return n, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	n, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotesRepo) Update(ctx context.Context, n *models.Note) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[n.ID]; !ok {
		return common.ErrorNotFound
	}
	n.UpdatedAt = time.Now()
	cp := *n
	f.byID[n.ID] = &cp
	return nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeNotesRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Note, 0)
	for _, n := range f.byID {
		if n.StudentID == studentID {
			out = append(out, *n)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	c *fakeCustomersRepo
	n *fakeNotesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Customers(db dbx.DBTX) customers.Repository   { return m.c }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notes.Repository           { return m.n }

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error)          { return "", errBoom{} }
func (failingHasher) Compare(string, string) (bool, error) { return false, errBoom{} }

type fakeImageStore struct {
	url   string
	err   error
	calls int
	body  string

	// tx, when set, lets the store record uploads made inside a transaction.
	tx       *fakeTransactor
	inTxHits int
}

func (f *fakeImageStore) Upload(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error) {
	f.calls++
	if f.tx != nil && f.tx.open {
		f.inTxHits++
	}
	b, _ := io.ReadAll(body)
	f.body = string(b)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("%s/%s", f.url, name), nil
}
