package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/vacancy-watch/internal/models"
)

func httpProp() *models.Property {
	return &models.Property{ID: uuid.New(), Slug: "arbor-flats", TimeZone: "UTC"}
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc) (*HTTPJSONAdapter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	adapter, err := NewHTTPJSONAdapter(HTTPJSONAdapterOptions{BaseURL: srv.URL})
	require.NoError(t, err)
	return adapter, srv
}

func TestHTTPJSONAdapterWrappedPayload(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/availability", r.URL.Path)
		assert.Equal(t, "arbor-flats", r.URL.Query().Get("property"))
		_, _ = w.Write([]byte(`{"units":[{"unit_number":"101","price":"$1,525/mo"},{"unit_number":"102"}]}`))
	})

	units, err := adapter.FetchUnits(context.Background(), httpProp())
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "101", units[0].UnitNumber)
	assert.Equal(t, "$1,525/mo", units[0].PriceText)
}

func TestHTTPJSONAdapterBareArrayPayload(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"source_id":"fp-88"},{"unit_number":"305","available_on":"Available Now"}]`))
	})

	units, err := adapter.FetchUnits(context.Background(), httpProp())
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "fp-88", units[0].SourceID)
	assert.Equal(t, "Available Now", units[1].AvailableOn)
}

func TestHTTPJSONAdapterStampsProvenanceMeta(t *testing.T) {
	adapter, srv := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"units":[{"unit_number":"101"}]}`))
	})

	units, err := adapter.FetchUnits(context.Background(), httpProp())
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "httpjson", units[0].Meta["adapter"])
	assert.Contains(t, units[0].Meta["page_url"], srv.URL)
}

func TestHTTPJSONAdapterNon200IsError(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := adapter.FetchUnits(context.Background(), httpProp())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestHTTPJSONAdapterGarbagePayloadIsError(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>cookie banner</html>`))
	})

	_, err := adapter.FetchUnits(context.Background(), httpProp())
	require.Error(t, err)
}

func TestHTTPJSONAdapterEmptyUnitsArrayIsNotError(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"units":[]}`))
	})

	units, err := adapter.FetchUnits(context.Background(), httpProp())
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestNewHTTPJSONAdapterRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPJSONAdapter(HTTPJSONAdapterOptions{})
	require.Error(t, err)
}
