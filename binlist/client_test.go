package binlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResponse = `{
  "number": {"length": 16, "luhn": true},
  "scheme": "visa",
  "type": "debit",
  "brand": "Visa/Dankort",
  "prepaid": false,
  "country": {"numeric": "208", "alpha2": "DK", "name": "Denmark", "emoji": "🇩🇰",
              "currency": "DKK", "latitude": 56, "longitude": 10},
  "bank": {"name": "Jyske Bank", "url": "www.jyskebank.dk", "phone": "+4589893300", "city": "Hjørring"}
}`

func TestLookupSendsHeadersAndDecodes(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fullResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "bincheck-test", time.Second)
	resp, err := c.Lookup(context.Background(), "45717360", "Bearer abc")
	require.NoError(t, err)

	assert.Equal(t, "/45717360", got.URL.Path)
	assert.Equal(t, "3", got.Header.Get("Accept-Version"))
	assert.Equal(t, "Bearer abc", got.Header.Get("Authorization"))
	assert.Equal(t, "bincheck-test", got.Header.Get("User-Agent"))

	require.NotNil(t, resp.Scheme)
	assert.Equal(t, "visa", *resp.Scheme)
	require.NotNil(t, resp.Number)
	assert.Equal(t, 16, *resp.Number.Length)
	assert.True(t, *resp.Number.Luhn)
	require.NotNil(t, resp.Prepaid)
	assert.False(t, *resp.Prepaid)
	require.NotNil(t, resp.Country)
	assert.Equal(t, "DK", *resp.Country.Alpha2)
	assert.Equal(t, 56.0, *resp.Country.Latitude)
	require.NotNil(t, resp.Bank)
	assert.Equal(t, "Hjørring", *resp.Bank.City)
}

func TestLookupOmitsAuthorizationWithoutCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "", time.Second).Lookup(context.Background(), "411111", "")
	require.NoError(t, err)
	assert.Nil(t, resp.Scheme)
	assert.Nil(t, resp.Prepaid)
	assert.Nil(t, resp.Bank)
}

func TestLookupStatusErrors(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusTooManyRequests, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		_, err := NewClient(srv.URL, "", time.Second).Lookup(context.Background(), "411111", "")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr), "code %d", code)
		assert.Equal(t, code, statusErr.Code)
		srv.Close()
	}
}

func TestLookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "", time.Second).Lookup(context.Background(), "411111", "")
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestLookupMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"scheme":`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Lookup(context.Background(), "411111", "")
	require.Error(t, err)
	var statusErr *StatusError
	var transportErr *TransportError
	assert.False(t, errors.As(err, &statusErr))
	assert.False(t, errors.As(err, &transportErr))
}
