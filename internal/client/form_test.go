package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchQuery(t *testing.T) {
	testCases := []struct {
		name     string
		form     Form
		expected string
	}{
		{name: "empty form", form: Form{}, expected: ""},
		{name: "single field", form: Form{Email: "tom@riddle.com"}, expected: "email=tom%40riddle.com"},
		{name: "state only", form: Form{State: "false"}, expected: "state=false"},
		{
			name:     "fixed order regardless of which fields are set",
			form:     Form{State: "true", Address: "Privet Drive", Name: "Harry"},
			expected: "name=Harry&address=Privet+Drive&state=true",
		},
		{
			name: "all fields",
			form: Form{
				ID: "9", Name: "Sirius Black", Email: "sb@hogwarts.edu", PhoneNumber: "555",
				Address: "12 Grimmauld", State: "true",
			},
			expected: "name=Sirius+Black&email=sb%40hogwarts.edu&phone_number=555&address=12+Grimmauld&state=true",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.form.SearchQuery())
		})
	}
}

func TestFormPopulateAndClear(t *testing.T) {
	var f Form
	assert.Equal(t, FormEmpty, f.Status())

	f.Populate(Record{ID: 42, Name: "Luna", Email: "l@q.com", PhoneNumber: "1", Address: "Ottery", State: false})
	assert.Equal(t, FormPopulated, f.Status())
	assert.Equal(t, "42", f.ID)
	assert.Equal(t, "Luna", f.Name)
	assert.Equal(t, "false", f.State)

	f.submit()
	assert.Equal(t, FormSubmitted, f.Status())
	assert.Equal(t, "submitted", f.Status().String())

	f.Clear()
	assert.Equal(t, Form{}, f)
	assert.Equal(t, "empty", f.Status().String())
}

func TestFormBody(t *testing.T) {
	f := Form{ID: "3", Name: "Ron", Email: "r@w.com"}
	body := f.Body()

	assert.Equal(t, "Ron", body["name"])
	assert.Equal(t, "", body["address"])
	assert.NotContains(t, body, "state")
	assert.NotContains(t, body, "id")

	f.State = "false"
	assert.Equal(t, "false", f.Body()["state"])
}
