package profile

import "errors"

var (
	ErrJobseekerNotFound = errors.New("jobseeker profile not found")
	ErrRecruiterNotFound = errors.New("recruiter profile not found")
	ErrNIKExists         = errors.New("NIK already registered")
)
