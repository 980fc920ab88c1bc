package api

import (
	"bytes"
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/database/memory"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Server:  config.ServerConfig{BasePath: "/api"},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
	svc := customer.NewCustomerService(memory.NewCustomerRepository(), event.NoopPublisher{}, logger)
	srv := httptest.NewServer(SetupRouter(svc, cfg, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, target string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func createCustomer(t *testing.T, base string, body map[string]any) dto.CustomerResponse {
	t.Helper()
	resp, data := doJSON(t, http.MethodPost, base+"/api/customers", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var created dto.CustomerResponse
	require.NoError(t, json.Unmarshal(data, &created))
	return created
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":200,"message":"Healthy"}`, string(data))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodGet, srv.URL+"/api/customers", nil)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "customer_service_http_requests_total")
	assert.Contains(t, string(data), "customer_service_operations_total")
}

func TestSwaggerRedirect(t *testing.T) {
	srv := newTestServer(t)
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

	resp, err := client.Get(srv.URL + "/swagger")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/swagger/index.html", resp.Header.Get("Location"))

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/swagger/doc.json", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "/customers/{customerID}/suspend")
}

func TestCreateAndSearchByName(t *testing.T) {
	srv := newTestServer(t)

	created := createCustomer(t, srv.URL, map[string]any{
		"name":         "Sirius Black",
		"email":        "sirius.black@wizardmail.com",
		"phone_number": "555-112-3345",
		"address":      "12 Grimmauld Place",
		"state":        true,
	})
	createCustomer(t, srv.URL, map[string]any{"name": "Remus Lupin"})

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/customers?name="+url.QueryEscape("Sirius Black"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var found []dto.CustomerResponse
	require.NoError(t, json.Unmarshal(data, &found))
	require.Len(t, found, 1)
	assert.Equal(t, created, found[0])
	assert.Equal(t, "sirius.black@wizardmail.com", found[0].Email)
}

func TestSearchByState(t *testing.T) {
	srv := newTestServer(t)

	states := []bool{true, false, true, false, true}
	for i, state := range states {
		createCustomer(t, srv.URL, map[string]any{"name": fmt.Sprintf("Customer %d", i), "state": state})
	}

	count := func(query string) []dto.CustomerResponse {
		resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/customers"+query, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out []dto.CustomerResponse
		require.NoError(t, json.Unmarshal(data, &out))
		return out
	}

	active := count("?state=true")
	assert.Len(t, active, 3)
	for _, c := range active {
		assert.True(t, c.State)
	}
	assert.Len(t, count("?state=false"), 2)
	assert.Len(t, count("?state=garbage"), 2)
	assert.Len(t, count("?state="), 5)
	assert.Len(t, count(""), 5)
	assert.Len(t, count("?name=Customer+0&state=true"), 1)
	assert.Len(t, count("?name=Customer+1&state=true"), 0)
}

func TestUpdateReplacesEveryField(t *testing.T) {
	srv := newTestServer(t)

	created := createCustomer(t, srv.URL, map[string]any{
		"name":    "Sherlock Holmes",
		"email":   "sherlock@bakerstreet.uk",
		"address": "221B Baker Street",
	})

	target := fmt.Sprintf("%s/api/customers/%d", srv.URL, created.ID)
	resp, data := doJSON(t, http.MethodPut, target, map[string]any{"id": created.ID, "name": "Loki", "address": "Asgard", "state": "false"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	resp, data = doJSON(t, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.CustomerResponse
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, dto.CustomerResponse{ID: created.ID, Name: "Loki", Address: "Asgard", State: false}, got)
}

func TestDeleteThenRead(t *testing.T) {
	srv := newTestServer(t)

	created := createCustomer(t, srv.URL, map[string]any{"name": "Irene Adler"})
	target := fmt.Sprintf("%s/api/customers/%d", srv.URL, created.ID)

	resp, data := doJSON(t, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, data)

	resp, _ = doJSON(t, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = doJSON(t, http.MethodGet, target, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Contains(t, errResp.Message, "was not found")
}

func TestSuspendTwice(t *testing.T) {
	srv := newTestServer(t)

	created := createCustomer(t, srv.URL, map[string]any{"name": "Nymphadora Tonks"})
	target := fmt.Sprintf("%s/api/customers/%d/suspend", srv.URL, created.ID)

	for i := 0; i < 2; i++ {
		resp, data := doJSON(t, http.MethodPut, target, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got dto.CustomerResponse
		require.NoError(t, json.Unmarshal(data, &got))
		assert.False(t, got.State)
	}

	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/api/customers/999/suspend", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestErrorsCarryMessage(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		method string
		path   string
		body   any
		status int
	}{
		{http.MethodGet, "/api/customers/12345", nil, http.StatusNotFound},
		{http.MethodGet, "/api/customers/abc", nil, http.StatusNotFound},
		{http.MethodPut, "/api/customers/12345", map[string]any{"name": "x"}, http.StatusNotFound},
		{http.MethodPost, "/api/customers", map[string]any{"email": "no-name@example.com"}, http.StatusBadRequest},
		{http.MethodPost, "/api/customers", map[string]any{"name": 7}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		resp, data := doJSON(t, tc.method, srv.URL+tc.path, tc.body)
		assert.Equal(t, tc.status, resp.StatusCode, "%s %s", tc.method, tc.path)
		var errResp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(data, &errResp))
		assert.NotEmpty(t, errResp.Message)
	}
}

func TestCreateSetsLocation(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/customers", map[string]any{"name": "Dobby"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CustomerResponse
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, fmt.Sprintf("/api/customers/%d", created.ID), resp.Header.Get("Location"))
	assert.True(t, created.State)
}
