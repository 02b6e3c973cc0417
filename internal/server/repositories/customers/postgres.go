package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

const selectColumns = `id, email, password_hash, first_name, last_name, user_type, profile_picture, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	query := `SELECT ` + selectColumns + ` FROM customers WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	query := `SELECT ` + selectColumns + ` FROM customers WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*models.Customer, error) {
	c := &models.Customer{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
		&c.UserType, &c.ProfilePicture, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	query :=
		`INSERT INTO customers (email, password_hash, first_name, last_name, user_type, profile_picture)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		customer.Email, customer.PasswordHash, customer.FirstName, customer.LastName,
		customer.UserType, customer.ProfilePicture,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return customer, nil
}

func (r *PostgresRepository) Save(ctx context.Context, customer *models.Customer) error {
	query :=
		`UPDATE customers
		 SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
		     user_type = $6, profile_picture = $7, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Email, customer.PasswordHash, customer.FirstName,
		customer.LastName, customer.UserType, customer.ProfilePicture,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
