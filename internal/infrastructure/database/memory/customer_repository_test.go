package memory

import (
	"context"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	cust := customer.NewCustomer("Sirius Black", "sirius.black@wizardmail.com", "555-112-3345", "12 Grimmauld Place", true)
	require.NoError(t, repo.Create(ctx, cust))
	assert.Equal(t, int64(1), cust.ID)

	found, err := repo.FindByID(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, cust, found)

	found.Name = "Mutated outside"
	again, err := repo.FindByID(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sirius Black", again.Name, "returned values must not alias stored state")

	cust.Suspend()
	require.NoError(t, repo.Update(ctx, cust))
	again, err = repo.FindByID(ctx, cust.ID)
	require.NoError(t, err)
	assert.False(t, again.State)

	require.NoError(t, repo.Delete(ctx, cust.ID))
	require.NoError(t, repo.Delete(ctx, cust.ID), "second delete must succeed")

	_, err = repo.FindByID(ctx, cust.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, cust), apperrors.ErrNotFound)
}

func TestCustomerRepository_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	first := customer.NewCustomer("A", "", "", "", true)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Delete(ctx, first.ID))

	second := customer.NewCustomer("B", "", "", "", true)
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestCustomerRepository_FindByFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	states := []bool{true, false, true, true, false}
	for i, state := range states {
		require.NoError(t, repo.Create(ctx, customer.NewCustomer(fmt.Sprintf("Customer %d", i), "", "", "", state)))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID, "results are ordered by id")
	}

	active, err := repo.FindByFilter(ctx, customer.ParseFilter(url.Values{"state": {"true"}}))
	require.NoError(t, err)
	assert.Len(t, active, 3)

	suspended, err := repo.FindByFilter(ctx, customer.ParseFilter(url.Values{"state": {"whatever"}}))
	require.NoError(t, err)
	assert.Len(t, suspended, 2)

	none, err := repo.FindByFilter(ctx, customer.ParseFilter(url.Values{"name": {"Customer 0"}, "state": {"false"}}))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCustomerRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Create(ctx, customer.NewCustomer(fmt.Sprintf("C%d", i), "", "", "", true))
		}(i)
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
	assert.Equal(t, int64(50), all[49].ID)
}

func TestCustomerRepository_NilCustomer(t *testing.T) {
	repo := NewCustomerRepository()
	assert.ErrorIs(t, repo.Create(context.Background(), nil), apperrors.ErrInvalidArgument)
	assert.ErrorIs(t, repo.Update(context.Background(), nil), apperrors.ErrInvalidArgument)
}
