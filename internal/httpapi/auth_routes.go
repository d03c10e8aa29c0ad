package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/puzzle-arcade/internal/auth"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"
)

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func viewOf(u storage.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

func (s *Server) mountAuth(r chi.Router) {
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)
		r.Get("/registered-players", s.handleRegisteredPlayers)
	})
}

// validateRegistration returns the first rule the request breaks, or "".
func validateRegistration(req registerReq) string {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return "All fields are required: username, email, password"
	}
	if n := utf8.RuneCountInString(req.Username); n < 3 || n > 30 {
		return "Username must be between 3 and 30 characters"
	}
	if len(req.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	if !strings.Contains(req.Email, "@") {
		return "Email is not valid"
	}
	return ""
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if msg := validateRegistration(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Hash failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	u, err := s.store.CreateUser(r.Context(), req.Username, req.Email, hash)
	if errors.Is(err, storage.ErrDuplicate) {
		msg := "Username is already taken"
		if strings.HasSuffix(err.Error(), "email") {
			msg = "Email is already registered"
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		s.log.Error("Create user failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, _, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		s.log.Error("Sign token failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info("User registered", "user", u.Username, "id", u.ID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    viewOf(u),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	u, err := s.store.UserByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Error("User lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err != nil || auth.CheckPassword(u.PasswordHash, req.Password) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, _, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		s.log.Error("Sign token failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    viewOf(u),
	})
}

// handleLogout revokes the presented token until it would have expired.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	if !s.revoked.SetWithTTL(me.TokenID, true, time.Until(me.Expires)) {
		s.log.Warn("Token revocation dropped", "user", me.Username)
		writeError(w, http.StatusServiceUnavailable, "Logout failed, try again")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out",
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.UserByID(r.Context(), currentUser(r).ID)
	if err != nil {
		s.log.Error("User lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    viewOf(u),
	})
}

func (s *Server) handleRegisteredPlayers(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.ListUsernames(r.Context())
	if err != nil {
		s.log.Error("List users failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to load statistics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(names),
		"players": names,
	})
}
