// Package httpapi implements the HTTP surface consumed by the KodJobs
// browser frontend.
//
// Routes:
//
//	GET  /health          → liveness probe
//	GET  /api/users       → full user collection
//	POST /api/users       → signup (duplicate check + age derivation)
//	POST /api/login       → credential check
//	GET  /api/jobs        → one page of postings, skills annotated
//	GET  /api/jobs/{id}   → single posting for the detail view
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sanmit243/KodJobs/internal/catalog"
	"github.com/Sanmit243/KodJobs/internal/model"
	"github.com/Sanmit243/KodJobs/internal/skills"
	"github.com/Sanmit243/KodJobs/internal/store"
)

// pageSize caps every jobs listing at nine cards, matching the dashboard
// grid.
const pageSize = 9

// ─── Response types ──────────────────────────────────────────────────────────

// JobView is a posting annotated with derived skill tags. Tags are
// recomputed on every request and never stored.
type JobView struct {
	model.Job
	Skills []string `json:"skills"`
}

type loginResponse struct {
	Success bool       `json:"success"`
	User    model.User `json:"user"`
}

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler holds shared dependencies.
type Handler struct {
	users   *store.Store
	catalog catalog.Catalog
}

// NewHandler returns a configured Handler.
func NewHandler(users *store.Store, cat catalog.Catalog) *Handler {
	return &Handler{users: users, catalog: cat}
}

// RegisterRoutes mounts all backend routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/users", h.handleUsers)
	mux.HandleFunc("/api/login", h.handleLogin)
	mux.HandleFunc("/api/jobs", h.handleJobs)
	mux.HandleFunc("/api/jobs/", h.handleJobByID)
}

// ─── Users ───────────────────────────────────────────────────────────────────

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listUsers(w, r)
	case http.MethodPost:
		h.signup(w, r)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, _ *http.Request) {
	users, err := h.users.List()
	if err != nil {
		log.Printf("[api] listUsers error: %v", err)
		jsonError(w, "Error reading users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var candidate store.Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Create(candidate)
	if err != nil {
		var vErr *store.ValidationError
		switch {
		case errors.As(err, &vErr):
			jsonError(w, vErr.Msg, http.StatusBadRequest)
		case errors.Is(err, store.ErrDuplicateUser):
			jsonError(w, "Username already exists", http.StatusConflict)
		default:
			log.Printf("[api] signup error: %v", err)
			jsonError(w, "Error adding user", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ─── Login ───────────────────────────────────────────────────────────────────

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	identity := body.Username
	if identity == "" {
		identity = body.Email
	}

	user, err := h.users.Authenticate(identity, body.Password)
	if err != nil {
		var vErr *store.ValidationError
		switch {
		case errors.As(err, &vErr):
			jsonError(w, vErr.Msg, http.StatusBadRequest)
		case errors.Is(err, store.ErrAuthFailed):
			jsonError(w, "Invalid credentials", http.StatusUnauthorized)
		default:
			log.Printf("[api] login error: %v", err)
			jsonError(w, "Error during login", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: user})
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			jsonError(w, "page must be a positive integer", http.StatusBadRequest)
			return
		}
		page = v
	}

	jobs, err := h.catalog.FetchPage(r.Context(), page)
	if err != nil {
		log.Printf("[api] fetch jobs page %d error: %v", page, err)
		upstreamError(w)
		return
	}

	if len(jobs) > pageSize {
		jobs = jobs[:pageSize]
	}

	views := make([]JobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, JobView{Job: job, Skills: skills.Extract(job.Contents)})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleJobByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		jsonError(w, "invalid job id", http.StatusBadRequest)
		return
	}

	job, err := h.catalog.FetchByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrJobNotFound) {
			jsonError(w, "Job not found", http.StatusNotFound)
			return
		}
		log.Printf("[api] fetch job %d error: %v", id, err)
		upstreamError(w)
		return
	}

	writeJSON(w, http.StatusOK, JobView{Job: *job, Skills: skills.Extract(job.Contents)})
}

// ─── JSON helpers ────────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// upstreamError is the uniform retryable failure for every catalog problem:
// network error, timeout, bad status and malformed body alike.
func upstreamError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	json.NewEncoder(w).Encode(map[string]any{
		"error":     "Failed to load jobs. Please try again later.",
		"retryable": true,
	})
}
