package customer

import (
	"customer-service/internal/pkg/apperrors"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Column limits of the customers table.
const (
	MaxNameLength        = 63
	MaxEmailLength       = 63
	MaxPhoneNumberLength = 25
	MaxAddressLength     = 255
)

// Customer is a catalog record. ID is zero until the repository assigns one.
// State is true while the customer is active and false once suspended.
type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	State       bool   `json:"state"`
}

func NewCustomer(name, email, phoneNumber, address string, state bool) *Customer {
	return &Customer{
		Name:        name,
		Email:       email,
		PhoneNumber: phoneNumber,
		Address:     address,
		State:       state,
	}
}

func (c *Customer) String() string {
	return fmt.Sprintf("<Customer %s id=[%d]>", c.Name, c.ID)
}

// Replace overwrites every mutable field with the values of other. The ID is kept.
func (c *Customer) Replace(other *Customer) {
	c.Name = other.Name
	c.Email = other.Email
	c.PhoneNumber = other.PhoneNumber
	c.Address = other.Address
	c.State = other.State
}

// Suspend forces the customer into the inactive state. Suspending twice is a no-op.
func (c *Customer) Suspend() {
	c.State = false
}

func (c *Customer) IsActive() bool {
	return c.State
}

// Serialize returns the flat wire record with exactly the six customer fields.
func (c *Customer) Serialize() map[string]any {
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"email":        c.Email,
		"phone_number": c.PhoneNumber,
		"address":      c.Address,
		"state":        c.State,
	}
}

// Deserialize builds a Customer from a flat record. The name is required.
// State may be a boolean or its text form, see ParseState.
func Deserialize(record map[string]any) (*Customer, error) {
	if record == nil {
		return nil, apperrors.NewValidationError("", "body of request contained bad or no data")
	}

	cust := &Customer{State: true}

	rawName, ok := record["name"]
	if !ok || rawName == nil {
		return nil, apperrors.NewValidationError("name", "missing")
	}
	name, ok := rawName.(string)
	if !ok {
		return nil, apperrors.NewValidationError("name", fmt.Sprintf("invalid type %T, expected string", rawName))
	}
	cust.Name = name

	for field, dest := range map[string]*string{
		"email":        &cust.Email,
		"phone_number": &cust.PhoneNumber,
		"address":      &cust.Address,
	} {
		raw, present := record[field]
		if !present || raw == nil {
			continue
		}
		text, ok := raw.(string)
		if !ok {
			return nil, apperrors.NewValidationError(field, fmt.Sprintf("invalid type %T, expected string", raw))
		}
		*dest = text
	}

	if raw, present := record["state"]; present && raw != nil {
		switch v := raw.(type) {
		case bool:
			cust.State = v
		case string:
			cust.State = ParseState(v)
		default:
			return nil, apperrors.NewValidationError("state", fmt.Sprintf("invalid type for boolean: %T", raw))
		}
	}

	if raw, present := record["id"]; present && raw != nil {
		id, err := parseID(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("id", err.Error())
		}
		cust.ID = id
	}

	if err := cust.Validate(); err != nil {
		return nil, err
	}
	return cust, nil
}

// ParseState maps the text form of a state flag to a boolean: "true" in any
// letter case is true, every other value is false.
func ParseState(text string) bool {
	return strings.EqualFold(text, "true")
}

func parseID(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("id must be an integer, got %v", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("invalid type %T for id", raw)
	}
}
