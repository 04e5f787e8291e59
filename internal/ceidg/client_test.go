package ceidg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firmFixture = `{
  "firmy": [
    {
      "nazwa": "P.H.U. KOWALSKI Jan Kowalski",
      "adresDzialalnosci": {
        "ulica": "ul. Przykładowa",
        "budynek": "123",
        "miasto": "Warszawa",
        "kod": "00-001"
      },
      "pkdGlowny": {
        "kod": "62.01",
        "nazwa": "Działalność związana z oprogramowaniem"
      }
    }
  ]
}`

func TestByNIP(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(firmFixture))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token", time.Second)
	firm, err := c.ByNIP(context.Background(), "1234567890")
	require.NoError(t, err)
	require.NotNil(t, firm)

	assert.Equal(t, "/firmy?nip=1234567890", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "P.H.U. KOWALSKI Jan Kowalski", firm.Name)
	assert.Equal(t, "ul. Przykładowa 123, 00-001 Warszawa", firm.Address)
	assert.Equal(t, "62.01", firm.PKDCode)
	assert.Equal(t, "Działalność związana z oprogramowaniem", firm.PKDDescription)
}

func TestLookupMissIsNotAnError(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"firmy":[]}`))
		}))
		defer srv.Close()

		firm, err := New(srv.URL, "", time.Second).ByNIP(context.Background(), "1234567890")
		require.NoError(t, err)
		assert.Nil(t, firm)
	})

	t.Run("not found status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		firm, err := New(srv.URL, "", time.Second).ByREGON(context.Background(), "123456789")
		require.NoError(t, err)
		assert.Nil(t, firm)
	})
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "", time.Second).ByNIP(context.Background(), "1234567890")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestBusinessByNIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(firmFixture))
	}))
	defer srv.Close()

	partial, err := New(srv.URL, "", time.Second).BusinessByNIP(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "P.H.U. KOWALSKI Jan Kowalski", partial["businessName"])
	assert.Equal(t, "62.01", partial["pkdCode"])
}
