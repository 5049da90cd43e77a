package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/GradGlobe-org/admin-panel-sub000/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GradeItem is one subjective answer sent to the external grader.
type GradeItem struct {
	ID       uint    `json:"qs_id"`
	Question string  `json:"qs"`
	Answer   string  `json:"qs_answer"`
	MaxMarks float64 `json:"qs_max_marks"`
}

// GradeResult is one scored item returned by the grader.
type GradeResult struct {
	ID    uint    `json:"qs_id"`
	Marks float64 `json:"marks"`
}

// SubjectiveGrader scores a batch of free-text answers. Implementations
// are best-effort: they may fail or return partial data, and callers must
// treat the response as untrusted.
type SubjectiveGrader interface {
	EvaluateBatch(ctx context.Context, items []GradeItem) ([]GradeResult, error)
}

type geminiGrader struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiGrader(cfg *config.Config) (SubjectiveGrader, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Subjective grading will be non-functional.")
		return &geminiGrader{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiGrader{client: model, cfg: cfg}, nil
}

func (g *geminiGrader) EvaluateBatch(ctx context.Context, items []GradeItem) ([]GradeResult, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}
	if len(items) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode grading batch: %w", err)
	}

	var prompt strings.Builder
	prompt.WriteString("You are an examiner for a study-abroad consultancy grading subjective exam answers.\n")
	prompt.WriteString("For each item in the JSON array below, read the question text (qs), the student's answer (qs_answer) ")
	prompt.WriteString("and the maximum marks (qs_max_marks), then award a numeric score between 0 and qs_max_marks.\n")
	prompt.WriteString("Judge factual correctness, completeness and clarity. An empty or irrelevant answer scores 0.\n\n")
	prompt.WriteString("Items:\n")
	prompt.Write(payload)
	prompt.WriteString("\n\nRespond with ONLY a JSON array, no prose and no code fences, in exactly this shape:\n")
	prompt.WriteString(`[{"qs_id": 1, "marks": 2.5}]`)
	prompt.WriteString("\nInclude one entry per item, keyed by the same qs_id values you were given.\n")

	resp, err := g.client.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		log.Error().Err(err).Int("batchSize", len(items)).Msg("Gemini API error during subjective grading")
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw.WriteString(string(txt))
		}
	}
	if raw.Len() == 0 {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	results, err := parseGradeResults(raw.String())
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw.String()).Msg("Failed to parse grader response")
		return nil, err
	}
	return results, nil
}

var gradePairPattern = regexp.MustCompile(`"qs_id"\s*:\s*"?(\d+)"?\s*,\s*"marks"\s*:\s*"?(-?[0-9]+(?:\.[0-9]+)?)"?`)

// parseGradeResults turns the grader's loosely-structured reply into a
// clean result list. Strategies, in order: strict JSON decode of the whole
// reply, decode of the first bracketed array (models love code fences and
// prose), and finally a pattern scan for qs_id/marks pairs. Anything that
// survives none of these is a hard parse failure.
func parseGradeResults(raw string) ([]GradeResult, error) {
	trimmed := strings.TrimSpace(raw)

	var results []GradeResult
	if err := json.Unmarshal([]byte(trimmed), &results); err == nil {
		return results, nil
	}

	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start != -1 && end > start {
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &results); err == nil {
			return results, nil
		}
	}

	matches := gradePairPattern.FindAllStringSubmatch(trimmed, -1)
	for _, m := range matches {
		id, idErr := strconv.ParseUint(m[1], 10, 32)
		marks, marksErr := strconv.ParseFloat(m[2], 64)
		if idErr != nil || marksErr != nil {
			continue
		}
		results = append(results, GradeResult{ID: uint(id), Marks: marks})
	}
	if len(results) > 0 {
		return results, nil
	}

	return nil, fmt.Errorf("grader response is unparseable")
}
