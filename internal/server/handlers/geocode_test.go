package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"showscout/internal/adapter/geocode"
)

func newGeocodeRouter(upstream string) http.Handler {
	client := geocode.NewClient()
	client.BaseURL = upstream

	handler := NewGeocodeHandler(client)

	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", handler.GeocodeZip)
	return mux
}

func TestGeocodeZip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "10001", r.URL.Query().Get("postalcode"))
		require.Equal(t, "US", r.URL.Query().Get("country"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat": "40.7506", "lon": "-73.9971", "display_name": "New York, NY 10001"}]`))
	}))
	defer srv.Close()

	router := newGeocodeRouter(srv.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode?zip=10001", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "40.7506")
}

func TestGeocodeZipNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	router := newGeocodeRouter(srv.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode?zip=00000", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGeocodeZipValidation(t *testing.T) {
	router := newGeocodeRouter("http://unused")

	for _, zip := range []string{"", "1234", "123456", "abcde"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode?zip="+zip, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, "zip %q", zip)
	}
}
