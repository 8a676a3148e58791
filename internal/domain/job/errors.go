package job

import "errors"

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrSlugExists    = errors.New("job slug already exists")
	ErrNotJobOwner   = errors.New("job does not belong to this company")
	ErrJobNotActive  = errors.New("job is no longer active")
)
