package customer

import (
	"net/url"
)

// Query parameter names accepted by the search endpoint, in assembly order.
const (
	ParamName        = "name"
	ParamEmail       = "email"
	ParamPhoneNumber = "phone_number"
	ParamAddress     = "address"
	ParamState       = "state"
)

// Filter is a set of optional equality conditions combined with AND.
// A nil field places no constraint on the result.
type Filter struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Address     *string
	State       *bool
}

// Condition is one column equality of a Filter.
type Condition struct {
	Column string
	Value  any
}

// ParseFilter reads the recognised query parameters. Absent and empty values
// are skipped; state is read with ParseState and never rejected.
func ParseFilter(values url.Values) Filter {
	var f Filter
	if v := values.Get(ParamName); v != "" {
		f.Name = &v
	}
	if v := values.Get(ParamEmail); v != "" {
		f.Email = &v
	}
	if v := values.Get(ParamPhoneNumber); v != "" {
		f.PhoneNumber = &v
	}
	if v := values.Get(ParamAddress); v != "" {
		f.Address = &v
	}
	if v := values.Get(ParamState); v != "" {
		state := ParseState(v)
		f.State = &state
	}
	return f
}

func (f Filter) IsEmpty() bool {
	return len(f.Conditions()) == 0
}

// Conditions lists the active constraints in a fixed column order.
func (f Filter) Conditions() []Condition {
	conds := make([]Condition, 0, 5)
	if f.Name != nil {
		conds = append(conds, Condition{Column: ParamName, Value: *f.Name})
	}
	if f.Email != nil {
		conds = append(conds, Condition{Column: ParamEmail, Value: *f.Email})
	}
	if f.PhoneNumber != nil {
		conds = append(conds, Condition{Column: ParamPhoneNumber, Value: *f.PhoneNumber})
	}
	if f.Address != nil {
		conds = append(conds, Condition{Column: ParamAddress, Value: *f.Address})
	}
	if f.State != nil {
		conds = append(conds, Condition{Column: ParamState, Value: *f.State})
	}
	return conds
}

// Matches reports whether c satisfies every condition of the filter.
func (f Filter) Matches(c *Customer) bool {
	if c == nil {
		return false
	}
	if f.Name != nil && c.Name != *f.Name {
		return false
	}
	if f.Email != nil && c.Email != *f.Email {
		return false
	}
	if f.PhoneNumber != nil && c.PhoneNumber != *f.PhoneNumber {
		return false
	}
	if f.Address != nil && c.Address != *f.Address {
		return false
	}
	if f.State != nil && c.State != *f.State {
		return false
	}
	return true
}
