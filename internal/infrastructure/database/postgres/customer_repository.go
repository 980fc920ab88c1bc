package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const selectCustomers = `
        SELECT id, name, email, phone_number, address, state
        FROM customers`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("name", cust.Name))

	query := `
        INSERT INTO customers (name, email, phone_number, address, state)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	err := r.db.QueryRow(ctx, query,
		cust.Name,
		cust.Email,
		cust.PhoneNumber,
		cust.Address,
		cust.State,
	).Scan(&cust.ID)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("failed to insert customer: %w", translatedErr)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	logCtx := r.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to find customer by ID")

	cust, err := scanCustomer(r.db.QueryRow(ctx, selectCustomers+" WHERE id = $1", customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logCtx.WarnContext(ctx, "Customer not found")
			return nil, apperrors.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	logCtx.InfoContext(ctx, "Customer found successfully")
	return cust, nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	logCtx := r.logger.With(slog.Int64("customerID", cust.ID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	query := `
        UPDATE customers
        SET name = $1,
            email = $2,
            phone_number = $3,
            address = $4,
            state = $5
        WHERE id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		cust.Name,
		cust.Email,
		cust.PhoneNumber,
		cust.Address,
		cust.State,
		cust.ID,
	)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer: %w", translateDBError(err, logCtx))
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	logCtx.InfoContext(ctx, "Customer updated successfully")
	return nil
}

// Delete removes the row if present. A missing row is not an error.
func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	logCtx := r.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.InfoContext(ctx, "Delete affected zero rows, nothing to remove")
		return nil
	}

	logCtx.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find all customers")
	return r.query(ctx, selectCustomers+" ORDER BY id ASC")
}

func (r *CustomerRepository) FindByFilter(ctx context.Context, filter customer.Filter) ([]*customer.Customer, error) {
	where, args := buildFilterQuery(filter)
	r.logger.InfoContext(ctx, "Attempting to find customers by filter", slog.Int("conditions", len(args)))
	return r.query(ctx, selectCustomers+where+" ORDER BY id ASC", args...)
}

func (r *CustomerRepository) query(ctx context.Context, query string, args ...any) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var cust customer.Customer
	err := row.Scan(
		&cust.ID,
		&cust.Name,
		&cust.Email,
		&cust.PhoneNumber,
		&cust.Address,
		&cust.State,
	)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}
