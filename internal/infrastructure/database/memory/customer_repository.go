// Package memory keeps customers in process memory. It backs tests and the
// "memory" database driver.
package memory

import (
	"context"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"sort"
	"sync"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]customer.Customer
	nextID    int64
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[int64]customer.Customer),
		nextID:    1,
	}
}

func (r *CustomerRepository) Create(_ context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cust.ID = r.nextID
	r.nextID++
	r.customers[cust.ID] = *cust
	return nil
}

func (r *CustomerRepository) FindByID(_ context.Context, customerID int64) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.customers[customerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &stored, nil
}

func (r *CustomerRepository) Update(_ context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[cust.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.customers[cust.ID] = *cust
	return nil
}

func (r *CustomerRepository) Delete(_ context.Context, customerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.customers, customerID)
	return nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	return r.FindByFilter(ctx, customer.Filter{})
}

func (r *CustomerRepository) FindByFilter(_ context.Context, filter customer.Filter) ([]*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*customer.Customer, 0, len(r.customers))
	for _, stored := range r.customers {
		if filter.Matches(&stored) {
			c := stored
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
