package profile

import (
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/validator"
)

// SubmitJobseekerRequest is the terminal submit of the jobseeker wizard.
// Abandoning the wizard earlier has no persisted effect.
type SubmitJobseekerRequest struct {
	UserID    string   `json:"-"` // from JWT
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	IDNumber  string   `json:"id_number"`
	BirthDate *string  `json:"birth_date,omitempty"` // YYYY-MM-DD
	Summary   *string  `json:"summary,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	PhotoURL  *string  `json:"photo_url,omitempty"`
	CVURL     *string  `json:"cv_url,omitempty"`
}

func (r *SubmitJobseekerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone is required",
		})
	} else if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid Indonesian number",
		})
	}
	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address is required",
		})
	}
	if validator.IsEmpty(r.City) {
		errs = append(errs, validator.ValidationError{
			Field:   "city",
			Message: "city is required",
		})
	}
	if validator.IsEmpty(r.IDNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "id_number",
			Message: "id_number is required",
		})
	} else if !validator.IsValidNIK(r.IDNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "id_number",
			Message: "id_number must be a 16-digit NIK",
		})
	}
	if r.BirthDate != nil {
		if _, ok := validator.IsValidDate(*r.BirthDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "birth_date",
				Message: "birth_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitRecruiterRequest is the terminal submit of the recruiter wizard.
type SubmitRecruiterRequest struct {
	UserID          string  `json:"-"` // from JWT
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Position        string  `json:"position"`
	Phone           string  `json:"phone"`
	CompanyName     string  `json:"company_name"`
	CompanyIndustry string  `json:"company_industry"`
	CompanyAddress  string  `json:"company_address"`
	CompanyCity     string  `json:"company_city"`
	CompanyLogoURL  *string `json:"company_logo_url,omitempty"`
}

func (r *SubmitRecruiterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}
	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone is required",
		})
	} else if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid Indonesian number",
		})
	}
	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}
	if validator.IsEmpty(r.CompanyCity) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_city",
			Message: "company_city is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// JobseekerResponse is the JSON shape of a jobseeker profile.
type JobseekerResponse struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	IDNumber  string   `json:"id_number"`
	BirthDate *string  `json:"birth_date,omitempty"`
	Summary   *string  `json:"summary,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	PhotoURL  *string  `json:"photo_url,omitempty"`
	CVURL     *string  `json:"cv_url,omitempty"`
}

func NewJobseekerResponse(p JobseekerProfile) JobseekerResponse {
	resp := JobseekerResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		IDNumber:  p.IDNumber,
		Summary:   p.Summary,
		Skills:    p.Skills,
		PhotoURL:  p.PhotoURL,
		CVURL:     p.CVURL,
	}
	if p.BirthDate != nil {
		birthDate := p.BirthDate.Format("2006-01-02")
		resp.BirthDate = &birthDate
	}
	return resp
}

// RecruiterResponse is the JSON shape of a recruiter profile with its
// company.
type RecruiterResponse struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Position        string  `json:"position"`
	Phone           string  `json:"phone"`
	CompanyID       string  `json:"company_id"`
	CompanyName     string  `json:"company_name"`
	CompanyIndustry string  `json:"company_industry"`
	CompanyAddress  string  `json:"company_address"`
	CompanyCity     string  `json:"company_city"`
	CompanyLogoURL  *string `json:"company_logo_url,omitempty"`
}

func NewRecruiterResponse(p RecruiterProfile) RecruiterResponse {
	return RecruiterResponse{
		ID:              p.ID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Position:        p.Position,
		Phone:           p.Phone,
		CompanyID:       p.CompanyID,
		CompanyName:     p.CompanyName,
		CompanyIndustry: p.CompanyIndustry,
		CompanyAddress:  p.CompanyAddress,
		CompanyCity:     p.CompanyCity,
		CompanyLogoURL:  p.CompanyLogoURL,
	}
}
