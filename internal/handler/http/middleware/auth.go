package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

var (
	ErrInvalidToken           = errors.New("invalid or missing access token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)

// AuthRequired accepts access tokens only. It runs after jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}

			if username, _ := claims["username"].(string); username == "" {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
