package postgres

import (
	"context"
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"log/slog"
)

const createCustomersTable = `
        CREATE TABLE IF NOT EXISTS customers (
            id           BIGSERIAL PRIMARY KEY,
            name         VARCHAR(63)  NOT NULL,
            email        VARCHAR(63)  NOT NULL DEFAULT '',
            phone_number VARCHAR(25)  NOT NULL DEFAULT '',
            address      VARCHAR(255) NOT NULL DEFAULT '',
            state        BOOLEAN      NOT NULL DEFAULT TRUE
        )`

// EnsureSchema creates the customers table when it does not exist yet.
func EnsureSchema(ctx context.Context, db DBPool, logger *slog.Logger) error {
	logger.InfoContext(ctx, "Ensuring customers table exists")
	if _, err := db.Exec(ctx, createCustomersTable); err != nil {
		logger.ErrorContext(ctx, "Failed to create customers table", slog.Any("error", err))
		return fmt.Errorf("%w: failed to create customers table: %w", apperrors.ErrDatabase, err)
	}
	return nil
}
