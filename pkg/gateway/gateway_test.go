package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

type countingPurger struct{ calls int }

func (p *countingPurger) Purge() { p.calls++ }

func TestJSON(t *testing.T) {
	t.Run("sends the access token header", func(t *testing.T) {
		var gotToken string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.Header.Get("access_token")
			w.Write([]byte(`{"success":true,"data":{"value":7}}`))
		}))
		defer srv.Close()

		c := New(srv.URL, staticTokens("tok-123"), &countingPurger{}, nil)
		var out Payload[map[string]int]
		err := c.JSON(context.Background(), http.MethodGet, "/thing", nil, &out)

		assert.NoError(t, err)
		assert.Equal(t, "tok-123", gotToken)
		assert.Equal(t, 7, out.Data["value"])
	})

	t.Run("omits the header when anonymous", func(t *testing.T) {
		var hasHeader bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasHeader = r.Header["Access_token"]
			w.Write([]byte(`{"success":true}`))
		}))
		defer srv.Close()

		c := New(srv.URL, staticTokens(""), &countingPurger{}, nil)
		assert.NoError(t, c.JSON(context.Background(), http.MethodGet, "/thing", nil, nil))
		assert.False(t, hasHeader)
	})

	t.Run("business rejection is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"message":"insufficient balance"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, staticTokens("tok"), &countingPurger{}, nil)
		err := c.JSON(context.Background(), http.MethodPost, "/branches/give", map[string]string{}, nil)

		assert.Error(t, err)
		assert.Equal(t, "insufficient balance", ServerMessage(err))
		assert.False(t, IsTimeout(err))
		assert.False(t, IsAuthFailure(err))
	})

	t.Run("http error carries the status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"boom"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, staticTokens("tok"), &countingPurger{}, nil)
		err := c.JSON(context.Background(), http.MethodGet, "/thing", nil, nil)

		var apiErr *Error
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.Equal(t, "boom", apiErr.Message)
	})

	t.Run("timeout is classified", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer srv.Close()

		c := New(srv.URL, staticTokens("tok"), &countingPurger{}, nil)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := c.JSON(ctx, http.MethodGet, "/slow", nil, nil)

		assert.Error(t, err)
		assert.True(t, IsTimeout(err))
	})
}

func TestAuthInvalidation(t *testing.T) {
	t.Run("401 purges and emits one event", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"token expired"}`))
		}))
		defer srv.Close()

		purger := &countingPurger{}
		c := New(srv.URL, staticTokens("stale"), purger, nil)

		err := c.JSON(context.Background(), http.MethodGet, "/balance", nil, nil)
		assert.True(t, IsAuthFailure(err))
		assert.Equal(t, 1, purger.calls)

		select {
		case ev := <-c.Invalidations():
			assert.Equal(t, http.StatusUnauthorized, ev.Status)
		default:
			t.Fatal("expected a pending invalidation event")
		}
	})

	t.Run("concurrent failures coalesce", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		purger := &countingPurger{}
		c := New(srv.URL, staticTokens("stale"), purger, nil)

		for i := 0; i < 3; i++ {
			err := c.JSON(context.Background(), http.MethodGet, "/balance", nil, nil)
			assert.True(t, IsAuthFailure(err))
		}

		// Exactly one event is pending no matter how many failures
		// were observed before the subscriber drained it.
		<-c.Invalidations()
		select {
		case <-c.Invalidations():
			t.Fatal("expected the events to coalesce into one")
		default:
		}
	})
}

func TestMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "125.5", r.FormValue("amount"))

		file, header, err := r.FormFile("image")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "receipt.png", header.Filename)

		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens("tok"), &countingPurger{}, nil)
	err := c.Multipart(context.Background(), "/branches/receive",
		map[string]string{"amount": "125.5"},
		&File{Field: "image", Name: "receipt.png", MIME: "image/png", Content: []byte("png-bytes")},
		nil)

	assert.NoError(t, err)
}

func TestAssetURL(t *testing.T) {
	c := New("http://api.example:9000/", staticTokens(""), &countingPurger{}, nil)
	assert.Equal(t, "http://api.example:9000/uploads/receipt.png", c.AssetURL("receipt.png"))
	assert.Equal(t, "", c.AssetURL(""))
}
