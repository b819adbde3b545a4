package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const GrantKey contextKey = "grant"

// ProjectMiddleware requires a share token for the {projectId} in the route.
// The token comes from a Bearer header or, for websockets, a token query
// parameter.
func (s *Service) ProjectMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := tokenFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
			return
		}

		grant, err := s.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		if projectID := mux.Vars(r)["projectId"]; projectID != "" && projectID != grant.ProjectID {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "token not valid for this project"})
			return
		}

		ctx := context.WithValue(r.Context(), GrantKey, grant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	token := r.URL.Query().Get("token")
	return token, token != ""
}

func GrantFromContext(ctx context.Context) *Grant {
	grant, _ := ctx.Value(GrantKey).(*Grant)
	return grant
}
