package customer

import (
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Payload is the typed create/update request body. Nil means the field was absent.
type Payload struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Address     *string
	State       *bool
}

// Validate turns a payload into a transient Customer. Only the name is
// required; absent text fields become "" and an absent state means active.
func Validate(p Payload) (*Customer, error) {
	if p.Name == nil {
		return nil, apperrors.NewValidationError("name", "missing")
	}

	cust := NewCustomer(*p.Name, deref(p.Email), deref(p.PhoneNumber), deref(p.Address), true)
	if p.State != nil {
		cust.State = *p.State
	}

	if err := cust.Validate(); err != nil {
		return nil, err
	}
	return cust, nil
}

func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.NewValidationError("name", "cannot be empty")
	}

	limits := []struct {
		field string
		value string
		max   int
	}{
		{"name", c.Name, MaxNameLength},
		{"email", c.Email, MaxEmailLength},
		{"phone_number", c.PhoneNumber, MaxPhoneNumberLength},
		{"address", c.Address, MaxAddressLength},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return apperrors.NewValidationError(l.field, fmt.Sprintf("must be at most %d characters", l.max))
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
