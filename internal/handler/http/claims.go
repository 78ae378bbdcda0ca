package http

import (
	"net/http"

	"github.com/attendlab/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
)

// subjectFromContext resolves the authenticated subject ID from the verified
// token. Services never read claims themselves; handlers pass IDs explicitly.
func subjectFromContext(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", auth.ErrInvalidToken
	}

	return sub, nil
}
