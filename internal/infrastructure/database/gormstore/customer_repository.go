// Package gormstore is the gorm-backed customer gateway.
package gormstore

import (
	"context"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// customerRecord is the gorm row model of the customers table.
type customerRecord struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:63;not null"`
	Email       string `gorm:"size:63;not null"`
	PhoneNumber string `gorm:"column:phone_number;size:25;not null"`
	Address     string `gorm:"size:255;not null"`
	State       bool   `gorm:"not null"`
}

func (customerRecord) TableName() string {
	return "customers"
}

func toRecord(c *customer.Customer) *customerRecord {
	return &customerRecord{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		State:       c.State,
	}
}

func (r *customerRecord) toDomain() *customer.Customer {
	return &customer.Customer{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		State:       r.State,
	}
}

// Open connects gorm to postgres and applies the connection pool limits.
func Open(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty in configuration")
	}

	logger.Info("Connecting to PostgreSQL database through gorm...")
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("unable to open gorm connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unable to access gorm connection pool: %w", err)
	}
	if cfg.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(int(cfg.MaxConns))
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// AutoMigrate creates or updates the customers table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&customerRecord{}); err != nil {
		return apperrors.WrapDatabaseError(err, "failed to migrate customers table")
	}
	return nil
}

type CustomerRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db *gorm.DB, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("gorm DB cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "GormCustomerRepository"),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	rec := toRecord(cust)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to insert customer")
	}

	cust.ID = rec.ID
	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	var rec customerRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find customer", slog.Int64("customerID", customerID), slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to get customer by ID")
	}
	return rec.toDomain(), nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	result := updateQuery(r.db.WithContext(ctx), cust)
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Int64("customerID", cust.ID), slog.Any("error", result.Error))
		return apperrors.WrapDatabaseError(result.Error, "failed to update customer")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes the row if present. A missing row is not an error.
func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	if err := r.db.WithContext(ctx).Delete(&customerRecord{}, customerID).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete customer", slog.Int64("customerID", customerID), slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to delete customer")
	}
	return nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	return r.FindByFilter(ctx, customer.Filter{})
}

func (r *CustomerRepository) FindByFilter(ctx context.Context, filter customer.Filter) ([]*customer.Customer, error) {
	var recs []customerRecord
	if err := filterQuery(r.db.WithContext(ctx), filter).Find(&recs).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to query customers")
	}

	customers := make([]*customer.Customer, 0, len(recs))
	for i := range recs {
		customers = append(customers, recs[i].toDomain())
	}
	return customers, nil
}

// conditionMap renders the filter as gorm equality conditions keyed by column.
func conditionMap(filter customer.Filter) map[string]any {
	conds := make(map[string]any)
	for _, c := range filter.Conditions() {
		conds[c.Column] = c.Value
	}
	return conds
}

func filterQuery(db *gorm.DB, filter customer.Filter) *gorm.DB {
	tx := db.Model(&customerRecord{})
	if conds := conditionMap(filter); len(conds) > 0 {
		tx = tx.Where(conds)
	}
	return tx.Order("id ASC")
}

func updateQuery(db *gorm.DB, cust *customer.Customer) *gorm.DB {
	return db.Model(&customerRecord{}).
		Where("id = ?", cust.ID).
		Select("name", "email", "phone_number", "address", "state").
		Updates(toRecord(cust))
}
