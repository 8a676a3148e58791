package match

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/kerjakita/kerjakita-backend-go/internal/config"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/application"
)

// Scorer rates how well a candidate fits a job posting. Scoring is
// advisory: callers must treat every error as "no recommendation" and
// keep going.
type Scorer interface {
	Score(ctx context.Context, cvText, jobTitle, jobRequirements string) (application.MatchResult, error)
}

const scoreTimeout = 15 * time.Second

const scorePrompt = `You are a recruitment screening assistant. Rate how well the candidate CV below matches the job requirements.

Respond with valid JSON only, no markdown fences, using exactly this schema:
{
  "score": <integer 0-100>,
  "highlights": ["up to 3 short strings naming concrete overlaps between CV and requirements"]
}

Job title: %s

Job requirements:
%s

Candidate CV:
%s
`

// recommendThreshold is the minimum score that marks a candidate as
// recommended in listings.
const recommendThreshold = 70

const maxCVChars = 20000

type geminiScorer struct {
	client llms.Model
}

// NewScorer builds a Gemini-backed scorer. Returns nil when no API key
// is configured; callers treat a nil Scorer as scoring disabled.
func NewScorer(ctx context.Context, cfg config.MatchConfig) (Scorer, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create match scorer client: %w", err)
	}

	return &geminiScorer{client: client}, nil
}

func (s *geminiScorer) Score(ctx context.Context, cvText, jobTitle, jobRequirements string) (application.MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, scoreTimeout)
	defer cancel()

	if len(cvText) > maxCVChars {
		cvText = cvText[:maxCVChars]
	}

	prompt := fmt.Sprintf(scorePrompt, jobTitle, jobRequirements, cvText)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.client, prompt)
	if err != nil {
		return application.MatchResult{}, fmt.Errorf("match scoring failed: %w", err)
	}

	return parseScore(resp)
}

type scorePayload struct {
	Score      int      `json:"score"`
	Highlights []string `json:"highlights"`
}

// parseScore tolerates markdown fences some models wrap around JSON.
func parseScore(raw string) (application.MatchResult, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload scorePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return application.MatchResult{}, fmt.Errorf("match scorer returned malformed payload: %w", err)
	}

	if payload.Score < 0 {
		payload.Score = 0
	}
	if payload.Score > 100 {
		payload.Score = 100
	}
	if len(payload.Highlights) > 3 {
		payload.Highlights = payload.Highlights[:3]
	}

	return application.MatchResult{
		Score:       payload.Score,
		Highlights:  payload.Highlights,
		Recommended: payload.Score >= recommendThreshold,
	}, nil
}

// ScoreOrSkip wraps a Scorer with the advisory contract: nil scorer or
// any error yields a zero, not-recommended result and a log line.
func ScoreOrSkip(ctx context.Context, scorer Scorer, cvText, jobTitle, jobRequirements string) application.MatchResult {
	if scorer == nil {
		return application.MatchResult{}
	}
	result, err := scorer.Score(ctx, cvText, jobTitle, jobRequirements)
	if err != nil {
		slog.Error("Match scoring skipped", "job_title", jobTitle, "error", err)
		return application.MatchResult{}
	}
	return result
}
