// Package server is a local stand-in for the placeholder posts API that
// quotes sync against.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxRequestBody  = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server serves /posts from an in-memory collection.
type Server struct {
	posts  *Posts
	logger *zap.Logger
	router *chi.Mux
}

// Params holds parameters for creating a new Server.
type Params struct {
	Posts  *Posts      // optional, empty if nil
	Logger *zap.Logger // optional
}

// New creates a Server with its routes registered.
func New(params Params) *Server {
	posts := params.Posts
	if posts == nil {
		posts = NewPosts()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	s := &Server{posts: posts, logger: logger, router: r}
	s.RegisterHTTP(r)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// RegisterHTTP mounts the post routes on r.
func (s *Server) RegisterHTTP(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
	})
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("placeholder server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handleList returns every post.
// GET /posts
func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.posts.List())
}

// handleGet returns one post.
// GET /posts/{id}
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid post id", http.StatusBadRequest)
		return
	}
	post, ok := s.posts.Get(id)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// createRequest accepts both a post and a quote body.
type createRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	UserID   int    `json:"userId"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// createResponse echoes the request fields next to the stored post.
type createResponse struct {
	Post
	Text     string `json:"text,omitempty"`
	Category string `json:"category,omitempty"`
}

// handleCreate stores a post. Quote bodies become posts titled with the
// quote text.
// POST /posts
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	post := Post{
		Title:  strings.TrimSpace(req.Title),
		Body:   req.Body,
		UserID: req.UserID,
	}
	if post.Title == "" {
		post.Title = strings.TrimSpace(req.Text)
		if post.Body == "" {
			post.Body = req.Category
		}
	}
	if post.Title == "" {
		http.Error(w, "title or text required", http.StatusBadRequest)
		return
	}

	created := s.posts.Create(post)
	s.logger.Debug("post created", zap.Int("id", created.ID), zap.String("title", created.Title))

	writeJSON(w, http.StatusCreated, createResponse{
		Post:     created,
		Text:     req.Text,
		Category: req.Category,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request with its chi request ID.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("took", time.Since(start)))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
