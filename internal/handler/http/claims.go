package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	profilesvc "github.com/kerjakita/kerjakita-backend-go/internal/service/profile"
)

// userIDFromContext extracts user_id from the JWT context
func userIDFromContext(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}

// profileIDFromContext extracts profile_id from the JWT context. It is
// empty until the account has submitted a profile and refreshed its
// token.
func profileIDFromContext(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	profileID, _ := claims["profile_id"].(string)
	return profileID
}

// recruiterIdentity resolves the recruiter profile and company behind
// the authenticated user.
func recruiterIdentity(r *http.Request, profileService *profilesvc.ProfileService) (recruiterID, companyID string, err error) {
	p, err := profileService.GetRecruiter(r.Context(), userIDFromContext(r))
	if err != nil {
		return "", "", err
	}
	return p.ID, p.CompanyID, nil
}
