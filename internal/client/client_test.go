package client_test

import (
	"context"
	"customer-service/internal/client"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashMessage(t *testing.T) {
	assert.Equal(t, "Customer with id [7] was not found.",
		client.FlashMessage(&client.APIError{StatusCode: 404, Message: "Customer with id [7] was not found."}))
	assert.Equal(t, client.UnexpectedMessage, client.FlashMessage(&client.APIError{StatusCode: 502}))
	assert.Equal(t, client.UnexpectedMessage, client.FlashMessage(errors.New("dial tcp: connection refused")))
}

func TestClient_NonJSONErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.NewClient(srv.URL, nil)
	_, err := c.Get(context.Background(), "1")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, client.UnexpectedMessage, client.FlashMessage(err))
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := client.NewClient(url, nil)
	_, err := c.Search(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, client.UnexpectedMessage, client.FlashMessage(err))
}

func TestClient_SearchBuildsURL(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := client.NewClient(srv.URL+"/api/", nil)
	records, err := c.Search(context.Background(), "name=Sirius+Black&state=true")

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "/api/customers", gotPath)
	assert.Equal(t, "name=Sirius+Black&state=true", gotQuery)
}
