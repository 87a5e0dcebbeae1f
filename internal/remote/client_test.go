package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/remote"
)

func TestFetch_DecodesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "quotes/1.0"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"userId":1,"id":1,"title":"Hello","body":"x"},{"id":2,"title":"World"}]`)
	}))
	defer srv.Close()

	c := remote.NewClient(srv.URL)
	items, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Hello", items[0].Title)
	assert.Equal(t, 1, items[0].UserID)
	assert.Equal(t, "World", items[1].Title)
}

func TestFetch_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	items, err := remote.NewClient(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "maintenance")
	}))
	defer srv.Close()

	_, err := remote.NewClient(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, remote.ErrTransport))

	var te *remote.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusServiceUnavailable, te.StatusCode)
	assert.Equal(t, "maintenance", te.Message)
	assert.Equal(t, "503 Service Unavailable", remote.Reason(err))
}

func TestFetch_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"title":"not an array"}`)
	}))
	defer srv.Close()

	_, err := remote.NewClient(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrParse))
	assert.False(t, errors.Is(err, remote.ErrTransport))
}

func TestFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := remote.NewClient(url).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, remote.ErrTransport))

	var te *remote.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 0, te.StatusCode)
	assert.Equal(t, "Connection refused", te.Reason())
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := remote.NewClient(srv.URL, remote.WithTimeout(50*time.Millisecond))
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Timeout", remote.Reason(err))
}

func TestPush_SendsJSONQuote(t *testing.T) {
	var got model.Quote
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":101,"text":"Hello","category":"Local"}`)
	}))
	defer srv.Close()

	res, err := remote.NewClient(srv.URL).Push(context.Background(), model.Quote{Text: "Hello", Category: "Local"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.JSONEq(t, `{"id":101,"text":"Hello","category":"Local"}`, string(res.Body))
	assert.Equal(t, model.Quote{Text: "Hello", Category: "Local"}, got)
}

func TestPush_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := remote.NewClient(srv.URL).Push(context.Background(), model.Quote{Text: "a", Category: "b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, remote.ErrTransport))
	assert.Contains(t, err.Error(), "status 500")
}

func TestNewClient_DefaultURL(t *testing.T) {
	assert.Equal(t, remote.DefaultURL, remote.NewClient("").URL())
	assert.Equal(t, "http://localhost:8080/posts", remote.NewClient(" http://localhost:8080/posts ").URL())
}

func TestReason_Normalizes(t *testing.T) {
	tests := []struct {
		err  string
		want string
	}{
		{"dial tcp: lookup nowhere.invalid: no such host", "DNS failure"},
		{"Get \"x\": context deadline exceeded (Client.Timeout exceeded while awaiting headers)", "Timeout"},
		{"dial tcp 127.0.0.1:1: connect: connection refused", "Connection refused"},
		{"x509: certificate signed by unknown authority", "TLS/certificate error"},
		{"something else", "something else"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, remote.Reason(errors.New(tt.err)))
		})
	}
}
