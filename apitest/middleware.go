package apitest

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

type contextKey string

const contextKeyUser contextKey = "user"

func chainMiddleware(h http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug().Str("method", colouredMethod(r.Method)).Str("path", r.URL.Path).Msg("apitest")
		next(w, r)
	}
}

// requireAuth rejects requests without a live access token the way the
// platform does: 401 with detail and code.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		claims, err := s.issuer.verify(raw, tokenTypeAccess)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"detail": "Given token not valid for any token type",
				"code":   "token_not_valid",
			})
			return
		}

		user, ok := s.users.byID(claims.UserID)
		if !ok {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next(w, r.WithContext(ctx))
	}
}

// requireApproved blocks accounts that are still awaiting approval.
func (s *Server) requireApproved(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user := currentUser(r); user == nil || !user.IsApproved {
			writeError(w, http.StatusForbidden, "Your account is pending approval.")
			return
		}
		next(w, r)
	}
}

func requireRole(roles ...apimodel.RoleType) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user := currentUser(r)
			if user == nil || !slices.Contains(roles, user.Role) {
				writeError(w, http.StatusForbidden, "You do not have permission to perform this action.")
				return
			}
			next(w, r)
		}
	}
}

func currentUser(r *http.Request) *apimodel.User {
	user, _ := r.Context().Value(contextKeyUser).(*apimodel.User)
	return user
}

func (s *Server) public() []func(http.HandlerFunc) http.HandlerFunc {
	return []func(http.HandlerFunc) http.HandlerFunc{s.loggingMiddleware}
}

func (s *Server) authenticated(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	return append([]func(http.HandlerFunc) http.HandlerFunc{s.loggingMiddleware, s.requireAuth, s.requireApproved}, mw...)
}
