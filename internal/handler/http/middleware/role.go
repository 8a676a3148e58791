package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
	"github.com/kerjakita/kerjakita-backend-go/internal/handler/http/response"
)

func requireRole(want user.Role, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, message)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, message)
				return
			}

			if user.Role(roleStr) != want {
				response.Forbidden(w, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin requires the platform admin role
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(user.RoleAdmin, "Admin access required")(next)
}

// RequireRecruiter requires the recruiter role
func RequireRecruiter(next http.Handler) http.Handler {
	return requireRole(user.RoleRecruiter, "Recruiter access required")(next)
}

// RequireJobseeker requires the jobseeker role
func RequireJobseeker(next http.Handler) http.Handler {
	return requireRole(user.RoleJobseeker, "Jobseeker access required")(next)
}
