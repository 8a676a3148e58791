package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
)

type ProfileService struct {
	jobseekerRepo profile.JobseekerRepository
	recruiterRepo profile.RecruiterRepository
	userRepo      user.UserRepository
}

func NewProfileService(
	jobseekerRepo profile.JobseekerRepository,
	recruiterRepo profile.RecruiterRepository,
	userRepo user.UserRepository,
) *ProfileService {
	return &ProfileService{
		jobseekerRepo: jobseekerRepo,
		recruiterRepo: recruiterRepo,
		userRepo:      userRepo,
	}
}

// SubmitJobseeker persists the wizard result in one shot. Resubmitting
// overwrites the previous profile.
func (s *ProfileService) SubmitJobseeker(ctx context.Context, req profile.SubmitJobseekerRequest) (profile.JobseekerProfile, error) {
	if err := req.Validate(); err != nil {
		return profile.JobseekerProfile{}, err
	}

	taken, err := s.jobseekerRepo.ExistsByNIK(ctx, req.IDNumber, req.UserID)
	if err != nil {
		return profile.JobseekerProfile{}, fmt.Errorf("failed to check NIK: %w", err)
	}
	if taken {
		return profile.JobseekerProfile{}, profile.ErrNIKExists
	}

	p := profile.JobseekerProfile{
		UserID:    req.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		IDNumber:  req.IDNumber,
		Summary:   req.Summary,
		Skills:    req.Skills,
		PhotoURL:  req.PhotoURL,
		CVURL:     req.CVURL,
	}
	if req.BirthDate != nil {
		// Validated above
		birthDate, _ := time.Parse("2006-01-02", *req.BirthDate)
		p.BirthDate = &birthDate
	}

	saved, err := s.jobseekerRepo.Upsert(ctx, p)
	if err != nil {
		return profile.JobseekerProfile{}, fmt.Errorf("failed to save jobseeker profile: %w", err)
	}

	if err := s.userRepo.SetProfileID(ctx, req.UserID, saved.ID); err != nil {
		return profile.JobseekerProfile{}, fmt.Errorf("failed to link profile: %w", err)
	}
	return saved, nil
}

// SubmitRecruiter persists the recruiter wizard result, company included.
func (s *ProfileService) SubmitRecruiter(ctx context.Context, req profile.SubmitRecruiterRequest) (profile.RecruiterProfile, error) {
	if err := req.Validate(); err != nil {
		return profile.RecruiterProfile{}, err
	}

	p := profile.RecruiterProfile{
		UserID:          req.UserID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Position:        req.Position,
		Phone:           req.Phone,
		CompanyName:     req.CompanyName,
		CompanyIndustry: req.CompanyIndustry,
		CompanyAddress:  req.CompanyAddress,
		CompanyCity:     req.CompanyCity,
		CompanyLogoURL:  req.CompanyLogoURL,
	}

	saved, err := s.recruiterRepo.Upsert(ctx, p)
	if err != nil {
		return profile.RecruiterProfile{}, fmt.Errorf("failed to save recruiter profile: %w", err)
	}

	if err := s.userRepo.SetProfileID(ctx, req.UserID, saved.ID); err != nil {
		return profile.RecruiterProfile{}, fmt.Errorf("failed to link profile: %w", err)
	}
	return saved, nil
}

// GetJobseeker returns the profile owned by the user.
func (s *ProfileService) GetJobseeker(ctx context.Context, userID string) (profile.JobseekerProfile, error) {
	return s.jobseekerRepo.GetByUserID(ctx, userID)
}

// GetRecruiter returns the profile owned by the user.
func (s *ProfileService) GetRecruiter(ctx context.Context, userID string) (profile.RecruiterProfile, error) {
	return s.recruiterRepo.GetByUserID(ctx, userID)
}
