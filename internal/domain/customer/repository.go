package customer

import (
	"context"
)

// CustomerRepository is the persistence gateway for customers.
// Implementations report a missing id with apperrors.ErrNotFound and storage
// faults with apperrors.ErrDatabase.
type CustomerRepository interface {
	// Create assigns a fresh ID to customer and stores it.
	Create(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// Update replaces the stored record with the same ID.
	Update(ctx context.Context, customer *Customer) error

	// Delete removes the record. A missing ID is not an error.
	Delete(ctx context.Context, customerID int64) error

	FindAll(ctx context.Context) ([]*Customer, error)

	FindByFilter(ctx context.Context, filter Filter) ([]*Customer, error)
}
