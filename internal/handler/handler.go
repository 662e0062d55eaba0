package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Dan9191/blog-service/internal/auth"
	"github.com/Dan9191/blog-service/internal/feed"
	"github.com/Dan9191/blog-service/internal/middleware"
	"github.com/Dan9191/blog-service/internal/models"
	"github.com/Dan9191/blog-service/internal/repository"
	"github.com/Dan9191/blog-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errBadBody)
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errBadBody)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password, time.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tokenResponse{Token: token, TokenType: "bearer"})
}

// GetUser returns a user's public profile
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// DeleteUser deletes the authenticated user's own account
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, auth.ErrAuthentication)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.svc.DeleteUser(r.Context(), identity, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPosts returns posts with vote counts, filtered and paginated
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit")
	if err != nil {
		h.writeError(w, err)
		return
	}
	offset, err := queryInt(q, "offset")
	if err != nil {
		h.writeError(w, err)
		return
	}

	posts, err := h.svc.ListPosts(r.Context(), q.Get("search"), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if posts == nil {
		posts = []models.PostWithVotes{}
	}
	h.writeJSON(w, http.StatusOK, posts)
}

// CreatePost creates a post owned by the authenticated user
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, auth.ErrAuthentication)
		return
	}

	var input models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, errBadBody)
		return
	}

	post, err := h.svc.CreatePost(r.Context(), identity, input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, post)
}

// GetPost returns a single post with its vote count
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	post, err := h.svc.GetPost(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, post)
}

// UpdatePost replaces a post's fields; owner only
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, auth.ErrAuthentication)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var input models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, errBadBody)
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), identity, id, input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, post)
}

// DeletePost deletes a post; owner only
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, auth.ErrAuthentication)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.svc.DeletePost(r.Context(), identity, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Vote casts or removes the authenticated user's vote on a post
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, auth.ErrAuthentication)
		return
	}

	var input models.VoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, errBadBody)
		return
	}

	if err := h.svc.Vote(r.Context(), identity, input); err != nil {
		h.writeError(w, err)
		return
	}
	if input.Dir == models.VoteDirCast {
		h.writeJSON(w, http.StatusCreated, map[string]string{"message": "vote added"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Feed serves an RSS 2.0 feed of published posts
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context(), "", feed.ItemLimit, 0)
	if err != nil {
		h.writeError(w, err)
		return
	}

	doc, err := feed.Build(posts)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(doc)
}

var errBadBody = errors.New("invalid request body")

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, errBadID
	}
	return id, nil
}

var errBadID = errors.New("id must be an integer")

// queryInt reads an optional integer query parameter. An absent
// parameter is 0; a non-numeric one is a validation failure.
func queryInt(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", service.ErrValidation, name)
	}
	return v, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, errBadBody), errors.Is(err, errBadID),
		errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrAuthentication):
		w.Header().Set("WWW-Authenticate", "Bearer")
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicateVote):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		message = "internal server error"
		h.log.Errorf("Request failed: %v", err)
	}

	h.writeJSON(w, status, map[string]string{"error": message})
}
