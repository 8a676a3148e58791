package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/interview"
)

type InterviewJobs struct {
	interviewRepo interview.InterviewRepository
}

func NewInterviewJobs(interviewRepo interview.InterviewRepository) *InterviewJobs {
	return &InterviewJobs{interviewRepo: interviewRepo}
}

func (j *InterviewJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Register("complete_elapsed_interviews", 1*time.Hour, j.CompleteElapsedInterviews)
}

// CompleteElapsedInterviews marks interviews whose join window has fully
// passed as COMPLETED. Worker employment status is intentionally not
// touched here; it is derived from dates on every read.
func (j *InterviewJobs) CompleteElapsedInterviews(ctx context.Context) error {
	completed, err := j.interviewRepo.CompleteElapsed(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to complete elapsed interviews: %w", err)
	}

	if completed > 0 {
		slog.Info("Marked elapsed interviews as completed", "count", completed)
	}
	return nil
}
