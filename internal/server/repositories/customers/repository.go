// Package customers declares and implements the credential store: the
// persistent home of customer records.
package customers

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository defines lookups and writes of customer records.
// Lookups return common.ErrorNotFound when no row matches.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	// Create inserts a new customer and fills in ID and timestamps.
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	// Save overwrites the mutable fields of an existing customer.
	Save(ctx context.Context, customer *models.Customer) error
}
