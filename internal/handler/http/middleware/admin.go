package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly gates operator actions such as hard deletes and ledger
// reconciliation.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, ErrInvalidToken.Error())
			return
		}

		admin, ok := claims["is_admin"].(bool)
		if !admin || !ok {
			response.Forbidden(w, ErrAdminPrivilegeRequired.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
