package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/remote"
	"github.com/nikbrunner/quotes/internal/server"
)

func serve(t *testing.T, s *server.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestListPosts(t *testing.T) {
	s := server.New(server.Params{Posts: server.NewPosts(server.DefaultPosts()...)})

	w := serve(t, s, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var posts []server.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Equal(t, server.DefaultPosts(), posts)
}

func TestListPosts_EmptyIsArray(t *testing.T) {
	s := server.New(server.Params{})

	w := serve(t, s, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreatePost_FromQuote(t *testing.T) {
	s := server.New(server.Params{Posts: server.NewPosts(server.DefaultPosts()...)})

	w := serve(t, s, http.MethodPost, "/posts", `{"text":"Hello","category":"Mine"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":4,"title":"Hello","body":"Mine","userId":0,"text":"Hello","category":"Mine"}`, w.Body.String())

	w = serve(t, s, http.MethodGet, "/posts/4", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":4,"title":"Hello","body":"Mine","userId":0}`, w.Body.String())
}

func TestCreatePost_FromPost(t *testing.T) {
	s := server.New(server.Params{})

	w := serve(t, s, http.MethodPost, "/posts", `{"title":"foo","body":"bar","userId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"foo","body":"bar","userId":1}`, w.Body.String())
}

func TestCreatePost_Rejects(t *testing.T) {
	s := server.New(server.Params{})

	tests := map[string]string{
		"malformed": `{"text":`,
		"empty":     `{}`,
		"blank":     `{"text":"   "}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := serve(t, s, http.MethodPost, "/posts", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Empty(t, server.NewPosts().List())
}

func TestGetPost_Errors(t *testing.T) {
	s := server.New(server.Params{})

	assert.Equal(t, http.StatusBadRequest, serve(t, s, http.MethodGet, "/posts/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, s, http.MethodGet, "/posts/99", "").Code)
}

func TestHealth(t *testing.T) {
	s := server.New(server.Params{})

	w := serve(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := server.New(server.Params{Logger: zap.New(core)})

	serve(t, s, http.MethodGet, "/posts", "")

	entries := logs.FilterMessage("request").AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/posts", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestClientRoundTrip(t *testing.T) {
	s := server.New(server.Params{Posts: server.NewPosts(server.DefaultPosts()...)})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	client := remote.NewClient(srv.URL + "/posts")

	res, err := client.Push(context.Background(), model.Quote{Text: "Pushed", Category: "Mine"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	items, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "Pushed", items[3].Title)
}

func TestNewPosts_IDsContinueAfterSeed(t *testing.T) {
	posts := server.NewPosts(server.Post{ID: 10, Title: "a"}, server.Post{ID: 3, Title: "b"})

	created := posts.Create(server.Post{Title: "c"})
	assert.Equal(t, 11, created.ID)

	got, ok := posts.Get(11)
	require.True(t, ok)
	assert.Equal(t, "c", got.Title)
}
