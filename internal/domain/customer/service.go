package customer

import (
	"context"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

const (
	resourceName     = "Customer"
	customerNotFound = "Customer not found by repository"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, payload Payload) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, payload Payload) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
	SuspendCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context, filter Filter) ([]*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, publisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if publisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		publisher = event.NoopPublisher{}
	}

	return &customerService{
		repo:   repo,
		pub:    publisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) *event.CustomerEventPayload {
	if cust == nil {
		return nil
	}
	return &event.CustomerEventPayload{
		CustomerID:  cust.ID,
		Name:        cust.Name,
		Email:       cust.Email,
		PhoneNumber: cust.PhoneNumber,
		Address:     cust.Address,
		State:       cust.State,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, payload Payload) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	customer, err := Validate(payload)
	if err != nil {
		s.logger.WarnContext(ctx, "Validation failed for new customer", slog.Any("error", err))
		monitoring.RecordOperation("create", monitoring.OutcomeInvalid)
		return nil, err
	}

	logCtx := s.logger.With(slog.String("name", customer.Name))
	logCtx.InfoContext(ctx, "Calling repository Create")
	if err := s.repo.Create(ctx, customer); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to create customer", slog.Any("error", err))
		monitoring.RecordOperation("create", monitoring.OutcomeError)
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logCtx = logCtx.With(slog.Int64("customerID", customer.ID))
	logCtx.InfoContext(ctx, "Customer created, publishing creation event")
	s.publish(ctx, s.pub.PublishCustomerCreated, customer.ID, NewCustomerEventPayload(customer))

	monitoring.RecordOperation("create", monitoring.OutcomeSuccess)
	logCtx.InfoContext(ctx, "Successfully created new customer")
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to get customer by ID")

	customer, err := s.find(ctx, logCtx, customerID)
	if err != nil {
		monitoring.RecordOperation("read", outcomeOf(err))
		return nil, err
	}

	monitoring.RecordOperation("read", monitoring.OutcomeSuccess)
	logCtx.InfoContext(ctx, "Successfully retrieved customer")
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, payload Payload) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	customer, err := s.find(ctx, logCtx, customerID)
	if err != nil {
		monitoring.RecordOperation("update", outcomeOf(err))
		return nil, err
	}

	replacement, err := Validate(payload)
	if err != nil {
		logCtx.WarnContext(ctx, "Validation failed for customer update", slog.Any("error", err))
		monitoring.RecordOperation("update", monitoring.OutcomeInvalid)
		return nil, err
	}
	customer.Replace(replacement)

	logCtx.InfoContext(ctx, "Calling repository Update")
	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer disappeared before update completed")
			monitoring.RecordOperation("update", monitoring.OutcomeNotFound)
			return nil, apperrors.NewNotFoundError(resourceName, customerID)
		}
		logCtx.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		monitoring.RecordOperation("update", monitoring.OutcomeError)
		return nil, fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}

	s.publish(ctx, s.pub.PublishCustomerUpdated, customer.ID, NewCustomerEventPayload(customer))

	monitoring.RecordOperation("update", monitoring.OutcomeSuccess)
	logCtx.InfoContext(ctx, "Successfully updated customer")
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	if err := s.repo.Delete(ctx, customerID); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		monitoring.RecordOperation("delete", monitoring.OutcomeError)
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	s.publish(ctx, s.pub.PublishCustomerDeleted, customerID, nil)

	monitoring.RecordOperation("delete", monitoring.OutcomeSuccess)
	logCtx.InfoContext(ctx, "Customer deleted")
	return nil
}

func (s *customerService) SuspendCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to suspend customer")

	customer, err := s.find(ctx, logCtx, customerID)
	if err != nil {
		monitoring.RecordOperation("suspend", outcomeOf(err))
		return nil, err
	}

	if !customer.IsActive() {
		logCtx.InfoContext(ctx, "Customer already suspended, no action needed")
		monitoring.RecordOperation("suspend", monitoring.OutcomeSuccess)
		return customer, nil
	}

	customer.Suspend()
	logCtx.InfoContext(ctx, "Calling repository Update to persist suspension")
	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer disappeared before suspension completed")
			monitoring.RecordOperation("suspend", monitoring.OutcomeNotFound)
			return nil, apperrors.NewNotFoundError(resourceName, customerID)
		}
		logCtx.ErrorContext(ctx, "Repository failed to suspend customer", slog.Any("error", err))
		monitoring.RecordOperation("suspend", monitoring.OutcomeError)
		return nil, fmt.Errorf("failed to suspend customer %d: %w", customerID, err)
	}

	s.publish(ctx, s.pub.PublishCustomerSuspended, customer.ID, NewCustomerEventPayload(customer))

	monitoring.RecordOperation("suspend", monitoring.OutcomeSuccess)
	logCtx.InfoContext(ctx, "Customer has been suspended")
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, filter Filter) ([]*Customer, error) {
	conditions := filter.Conditions()
	s.logger.InfoContext(ctx, "Attempting to list customers", slog.Int("filters", len(conditions)))

	var (
		customers []*Customer
		err       error
	)
	if len(conditions) == 0 {
		s.logger.InfoContext(ctx, "Returning unfiltered list")
		customers, err = s.repo.FindAll(ctx)
	} else {
		for _, c := range conditions {
			s.logger.DebugContext(ctx, "Filtering customers", slog.String("column", c.Column), slog.Any("value", c.Value))
		}
		customers, err = s.repo.FindByFilter(ctx, filter)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		monitoring.RecordOperation("list", monitoring.OutcomeError)
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	monitoring.RecordOperation("list", monitoring.OutcomeSuccess)
	s.logger.InfoContext(ctx, "Customers returned", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) find(ctx context.Context, logCtx *slog.Logger, customerID int64) (*Customer, error) {
	logCtx.InfoContext(ctx, "Calling repository FindByID")
	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, apperrors.NewNotFoundError(resourceName, customerID)
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}
	return customer, nil
}

type publishFunc func(ctx context.Context, evt event.CustomerEvent) error

// publish logs and swallows publisher errors.
func (s *customerService) publish(ctx context.Context, fn publishFunc, customerID int64, payload *event.CustomerEventPayload) {
	if err := fn(ctx, event.NewCustomerEvent(customerID, payload)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish customer event", slog.Int64("customerID", customerID), slog.Any("error", err))
		return
	}
	s.logger.DebugContext(ctx, "Published customer event", slog.Int64("customerID", customerID))
}

func outcomeOf(err error) string {
	if errors.Is(err, apperrors.ErrNotFound) {
		return monitoring.OutcomeNotFound
	}
	return monitoring.OutcomeError
}
