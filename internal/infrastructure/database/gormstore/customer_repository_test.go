package gormstore

import (
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres password=postgres dbname=customers port=5432 sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestConditionMap(t *testing.T) {
	filter := customer.ParseFilter(url.Values{
		"name":    {"Sirius Black"},
		"address": {""},
		"state":   {"garbage"},
	})

	assert.Equal(t, map[string]any{"name": "Sirius Black", "state": false}, conditionMap(filter))
	assert.Empty(t, conditionMap(customer.Filter{}))
}

func TestFilterQuerySQL(t *testing.T) {
	db := dryRunDB(t)

	t.Run("unfiltered", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var recs []customerRecord
			return filterQuery(tx, customer.Filter{}).Find(&recs)
		})
		assert.Contains(t, sql, `FROM "customers"`)
		assert.NotContains(t, sql, "WHERE")
		assert.Contains(t, sql, "ORDER BY id ASC")
	})

	t.Run("conjunction", func(t *testing.T) {
		filter := customer.ParseFilter(url.Values{"email": {"loki@asgard.io"}, "state": {"TRUE"}})
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var recs []customerRecord
			return filterQuery(tx, filter).Find(&recs)
		})
		assert.Contains(t, sql, "email")
		assert.Contains(t, sql, "'loki@asgard.io'")
		assert.Contains(t, sql, "true")
		assert.Contains(t, sql, " AND ")
	})
}

func TestUpdateQuerySQL(t *testing.T) {
	db := dryRunDB(t)
	cust := &customer.Customer{ID: 4, Name: "Loki", Address: "Asgard", State: false}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return updateQuery(tx, cust)
	})

	assert.Contains(t, sql, `UPDATE "customers" SET`)
	assert.Contains(t, sql, "'Loki'")
	assert.Contains(t, sql, "'Asgard'")
	assert.Contains(t, sql, "false")
	assert.Contains(t, sql, "id = 4")
}

func TestRecordMapping(t *testing.T) {
	cust := &customer.Customer{ID: 9, Name: "Irene Adler", Email: "irene@bakerstreet.uk", PhoneNumber: "555-0005", Address: "Briony Lodge", State: true}

	assert.Equal(t, cust, toRecord(cust).toDomain())
	assert.Equal(t, "customers", customerRecord{}.TableName())
}

func TestNewCustomerRepository(t *testing.T) {
	assert.Panics(t, func() { NewCustomerRepository(nil, nil) })
	assert.NotNil(t, NewCustomerRepository(dryRunDB(t), slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestOpenRequiresURL(t *testing.T) {
	_, err := Open(config.DatabaseConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.EqualError(t, err, "database URL is empty in configuration")
}
