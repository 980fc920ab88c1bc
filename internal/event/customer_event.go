package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RoutingKeyCustomerCreated   = "customer.created"
	RoutingKeyCustomerUpdated   = "customer.updated"
	RoutingKeyCustomerSuspended = "customer.suspended"
	RoutingKeyCustomerDeleted   = "customer.deleted"
)

type CustomerEventPayload struct {
	CustomerID  int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	State       bool   `json:"state"`
}

// CustomerEvent is the message body for every customer routing key.
// Payload is omitted for deletions.
type CustomerEvent struct {
	EventID    string                `json:"eventId"`
	Timestamp  time.Time             `json:"timestamp"`
	CustomerID int64                 `json:"customerId"`
	Payload    *CustomerEventPayload `json:"payload,omitempty"`
}

func NewCustomerEvent(customerID int64, payload *CustomerEventPayload) CustomerEvent {
	return CustomerEvent{
		EventID:    uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		CustomerID: customerID,
		Payload:    payload,
	}
}

type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerEvent) error
	PublishCustomerUpdated(ctx context.Context, event CustomerEvent) error
	PublishCustomerSuspended(ctx context.Context, event CustomerEvent) error
	PublishCustomerDeleted(ctx context.Context, event CustomerEvent) error
}

// NoopPublisher drops every event. It is used when RabbitMQ is disabled.
type NoopPublisher struct{}

var _ EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishCustomerCreated(context.Context, CustomerEvent) error   { return nil }
func (NoopPublisher) PublishCustomerUpdated(context.Context, CustomerEvent) error   { return nil }
func (NoopPublisher) PublishCustomerSuspended(context.Context, CustomerEvent) error { return nil }
func (NoopPublisher) PublishCustomerDeleted(context.Context, CustomerEvent) error   { return nil }
