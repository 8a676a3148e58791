package user

import "time"

// Role represents an account role in the marketplace
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRecruiter Role = "RECRUITER"
	RoleJobseeker Role = "JOBSEEKER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleJobseeker:
		return true
	}
	return false
}

// User represents an account that can sign in
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role

	// ProfileID points at the jobseeker or recruiter profile row,
	// nil until the profile wizard has been submitted.
	ProfileID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
