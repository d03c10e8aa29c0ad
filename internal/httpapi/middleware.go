package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/puzzle-arcade/internal/auth"
	"github.com/vovakirdan/puzzle-arcade/internal/storage"
)

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single origin with credentials.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// authUser is placed into the request context by the auth middleware.
type authUser struct {
	ID       int64
	Username string
	TokenID  string
	Expires  time.Time
}

type ctxUserKey struct{}

func currentUser(r *http.Request) *authUser {
	u, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	return u
}

func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// authenticate resolves the bearer token to a live user.
func (s *Server) authenticate(r *http.Request) (*authUser, error) {
	tok := bearerToken(r)
	if tok == "" {
		return nil, errNoToken
	}
	claims, err := s.tokens.Parse(tok)
	if err != nil {
		return nil, err
	}
	if s.revoked.Has(claims.ID) {
		return nil, auth.ErrInvalidToken
	}
	// The account must still exist.
	if _, err := s.store.UserByID(r.Context(), claims.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return &authUser{
		ID:       claims.UserID,
		Username: claims.Username,
		TokenID:  claims.ID,
		Expires:  claims.ExpiresAt,
	}, nil
}

var errNoToken = errors.New("access token required")

// requireAuth enforces a valid token and injects authUser into the context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := s.authenticate(r)
		switch {
		case errors.Is(err, errNoToken):
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		case errors.Is(err, auth.ErrInvalidToken):
			writeError(w, http.StatusForbidden, "Invalid or expired token")
			return
		case err != nil:
			s.log.Error("Auth lookup failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
	})
}

// optionalAuth decorates the request with the user when a valid token is
// present. It never rejects.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, err := s.authenticate(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a request body of at most 1 MiB into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}
