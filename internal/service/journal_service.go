package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"sunflowerpost/internal/models"
	"sunflowerpost/internal/observability"
	"sunflowerpost/internal/repository"
)

const maxJournalTextLen = 8000

const reflectionPrompt = `You are a gentle, supportive journaling companion for a wellness app.
Read the journal entry below and respond with ONLY a JSON object with these fields:
  "summary":     one or two sentences reflecting the entry back to the writer
  "mood":        a single lowercase word naming the dominant mood
  "affirmation": one short, kind affirmation addressed to the writer
  "prompt":      one open question inviting the writer to go deeper

Journal entry:
%s`

// Reflection is the structured response of the journaling assistant.
type Reflection struct {
	Summary     string `json:"summary"`
	Mood        string `json:"mood"`
	Affirmation string `json:"affirmation"`
	Prompt      string `json:"prompt"`
}

// JournalService manages private journal entries and their AI reflections.
// The llm field is an interface so tests can substitute a canned model.
type JournalService struct {
	repo repository.JournalRepository
	llm  llms.Model
}

// JournalAIConfig configures the reflection model client. BaseURL supports
// any OpenAI-compatible endpoint.
type JournalAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewJournalService creates a JournalService. When cfg.APIKey is empty the
// assistant is disabled and Reflect returns a validation error.
func NewJournalService(repo repository.JournalRepository, cfg JournalAIConfig) (*JournalService, error) {
	svc := &JournalService{repo: repo}
	if cfg.APIKey == "" {
		return svc, nil
	}

	opts := []openai.Option{openai.WithToken(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating reflection model client: %w", err)
	}
	svc.llm = llm
	return svc, nil
}

// NewJournalServiceWithModel wires an explicit model, used by tests.
func NewJournalServiceWithModel(repo repository.JournalRepository, model llms.Model) *JournalService {
	return &JournalService{repo: repo, llm: model}
}

func (s *JournalService) Create(ctx context.Context, entry *models.JournalEntry) error {
	if strings.TrimSpace(entry.Body) == "" {
		return models.NewValidationError("Journal body is required")
	}
	return s.repo.Create(ctx, entry)
}

func (s *JournalService) Get(ctx context.Context, id, userID uint) (*models.JournalEntry, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func (s *JournalService) Update(ctx context.Context, entry *models.JournalEntry) error {
	return s.repo.Update(ctx, entry)
}

func (s *JournalService) Delete(ctx context.Context, id, userID uint) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *JournalService) List(ctx context.Context, userID uint, limit, offset int) ([]models.JournalEntry, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// Reflect sends the journal text to the language model and returns the
// structured reflection. When entryID is non-zero the reflection is also
// stored on that entry (owner-scoped lookup, so another user's id 404s).
func (s *JournalService) Reflect(ctx context.Context, userID, entryID uint, text string) (*Reflection, error) {
	if s.llm == nil {
		return nil, models.NewValidationError("The journaling assistant is not configured")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Journal text is required")
	}
	if len(text) > maxJournalTextLen {
		return nil, models.NewValidationError("Journal text too long (max 8000 characters)")
	}

	raw, err := llms.GenerateFromSinglePrompt(ctx, s.llm, fmt.Sprintf(reflectionPrompt, text),
		llms.WithTemperature(0.6))
	if err != nil {
		observability.JournalReflections.WithLabelValues("error").Inc()
		return nil, &models.AppError{
			Code:    "INTERNAL_ERROR",
			Message: "The journaling assistant is unavailable right now",
			Err:     err,
		}
	}

	reflection, err := parseReflection(raw)
	if err != nil {
		observability.JournalReflections.WithLabelValues("parse_error").Inc()
		return nil, &models.AppError{
			Code:    "INTERNAL_ERROR",
			Message: "The journaling assistant returned an unreadable response",
			Err:     err,
		}
	}
	observability.JournalReflections.WithLabelValues("ok").Inc()

	if entryID != 0 {
		entry, err := s.repo.GetByID(ctx, entryID, userID)
		if err != nil {
			return nil, err
		}
		stored, err := json.Marshal(reflection)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		entry.AIReflection = string(stored)
		if err := s.repo.Update(ctx, entry); err != nil {
			return nil, err
		}
	}

	return reflection, nil
}

// parseReflection extracts the JSON object from the model output. Models
// sometimes wrap JSON in markdown fences or prose, so bound the parse to
// the outermost braces.
func parseReflection(raw string) (*Reflection, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var r Reflection
	if err := json.Unmarshal([]byte(raw[start:end+1]), &r); err != nil {
		return nil, fmt.Errorf("decoding reflection: %w", err)
	}
	if r.Summary == "" {
		return nil, fmt.Errorf("reflection missing summary")
	}
	return &r, nil
}
