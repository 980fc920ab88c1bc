package client

import (
	"net/url"
	"strconv"
	"strings"
)

type FormState int

const (
	FormEmpty FormState = iota
	FormPopulated
	FormSubmitted
)

func (s FormState) String() string {
	switch s {
	case FormPopulated:
		return "populated"
	case FormSubmitted:
		return "submitted"
	default:
		return "empty"
	}
}

// Form mirrors the editable fields of the current record. State holds the
// text of the state selector: "true", "false" or "" for unset.
type Form struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	State       string

	status FormState
}

func (f *Form) Status() FormState { return f.status }

// Populate copies every field of rec, id included.
func (f *Form) Populate(rec Record) {
	f.ID = strconv.FormatInt(rec.ID, 10)
	f.Name = rec.Name
	f.Email = rec.Email
	f.PhoneNumber = rec.PhoneNumber
	f.Address = rec.Address
	f.State = strconv.FormatBool(rec.State)
	f.status = FormPopulated
}

func (f *Form) Clear() {
	*f = Form{}
}

func (f *Form) submit() {
	f.status = FormSubmitted
}

// Body is the JSON request body for create and update. An unset state is
// left out so the server applies its default.
func (f *Form) Body() map[string]any {
	body := map[string]any{
		"name":         f.Name,
		"email":        f.Email,
		"phone_number": f.PhoneNumber,
		"address":      f.Address,
	}
	if f.State != "" {
		body["state"] = f.State
	}
	return body
}

// SearchQuery joins the non-empty filter fields with '&' in the fixed order
// name, email, phone_number, address, state.
func (f *Form) SearchQuery() string {
	fields := []struct {
		key, value string
	}{
		{"name", f.Name},
		{"email", f.Email},
		{"phone_number", f.PhoneNumber},
		{"address", f.Address},
		{"state", f.State},
	}

	var b strings.Builder
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(field.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(field.value))
	}
	return b.String()
}
