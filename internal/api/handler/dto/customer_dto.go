package dto

import (
	"bytes"
	"customer-service/internal/domain/customer"
	"encoding/json"
	"fmt"
)

// StateFlag decodes either a JSON boolean or its text form.
type StateFlag bool

func (s *StateFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = StateFlag(b)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = StateFlag(customer.ParseState(text))
		return nil
	}
	return fmt.Errorf("invalid type for boolean [state]: %s", string(data))
}

// CustomerRequest is the body of create and full-replace requests. A
// client-supplied id is accepted and ignored.
type CustomerRequest struct {
	ID          json.RawMessage `json:"id,omitempty" swaggerignore:"true"`
	Name        *string         `json:"name" example:"Sirius Black"`
	Email       *string         `json:"email,omitempty" example:"sirius.black@wizardmail.com"`
	PhoneNumber *string         `json:"phone_number,omitempty" example:"555-112-3345"`
	Address     *string         `json:"address,omitempty" example:"12 Grimmauld Place"`
	State       *StateFlag      `json:"state,omitempty" swaggertype:"boolean" example:"true"`
}

func (r *CustomerRequest) ToPayload() customer.Payload {
	return customer.Payload{
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		State:       (*bool)(r.State),
	}
}

type CustomerResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"Sirius Black"`
	Email       string `json:"email" example:"sirius.black@wizardmail.com"`
	PhoneNumber string `json:"phone_number" example:"555-112-3345"`
	Address     string `json:"address" example:"12 Grimmauld Place"`
	State       bool   `json:"state" example:"true"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:          cust.ID,
		Name:        cust.Name,
		Email:       cust.Email,
		PhoneNumber: cust.PhoneNumber,
		Address:     cust.Address,
		State:       cust.State,
	}
}

func NewCustomerResponses(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, NewCustomerResponse(c))
	}
	return resp
}

type ErrorResponse struct {
	Message string `json:"message" example:"Customer with id [42] was not found."`
}

type HealthResponse struct {
	Status  int    `json:"status" example:"200"`
	Message string `json:"message" example:"Healthy"`
}
