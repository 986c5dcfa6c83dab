package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/gorewood/gemini-mcp/internal/gemini"
	"github.com/gorewood/gemini-mcp/internal/prompt"
)

// Invoker sends a structured prompt to the model. *gemini.Client satisfies it.
type Invoker interface {
	CallStructured(ctx context.Context, req gemini.StructuredRequest) (*gemini.Result, error)
}

// Notifier receives progress and failure messages for one call.
type Notifier interface {
	Info(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// Discard is a Notifier that drops every message.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Info(context.Context, string)  {}
func (discard) Error(context.Context, string) {}

// Operation names used in messages and errors.
const (
	OpCodeReview      = "Code review"
	OpFeaturePlan     = "Feature plan proofreading"
	OpBugAnalysis     = "Bug analysis"
	OpCodeExplanation = "Code explanation"
)

// Service runs the assist operations against one Invoker.
type Service struct {
	invoker      Invoker
	loadTemplate func(name string) (*prompt.Template, error)
}

// NewService creates a Service that loads system instructions with
// prompt.LoadTemplate.
func NewService(invoker Invoker) *Service {
	return &Service{invoker: invoker, loadTemplate: prompt.LoadTemplate}
}

// ReviewCode reviews req.Code and parses the fenced JSON reply.
// A reply without a usable JSON block becomes a response whose Summary is the
// raw text and whose Rating is "N/A". A failed call becomes a response with
// Rating "Failed". Only an *gemini.AuthError or a missing template is
// returned as an error.
func (s *Service) ReviewCode(ctx context.Context, n Notifier, req CodeReviewRequest) (*CodeReviewResponse, error) {
	n = notifierOrDiscard(n)
	language := orDefault(req.Language, unknownLanguage)
	focus := orDefault(req.Focus, DefaultFocus)
	n.Info(ctx, fmt.Sprintf("Reviewing %s code with focus on %s", language, focus))

	system, err := s.system(prompt.CodeReview, map[string]string{
		"language": language,
		"focus":    focus,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.invoker.CallStructured(ctx, gemini.StructuredRequest{
		System:  system,
		User:    fmt.Sprintf("Review the following %s code.", language),
		Context: req.Code,
	})
	if err != nil {
		n.Error(ctx, OpCodeReview+" failed: "+err.Error())
		return nil, err
	}
	if !result.Success {
		opErr := &OperationError{Operation: OpCodeReview, Reason: result.Error}
		n.Error(ctx, opErr.Error())
		return &CodeReviewResponse{
			Summary:     opErr.Error(),
			Issues:      []map[string]any{},
			Suggestions: []string{},
			Rating:      "Failed",
		}, nil
	}

	n.Info(ctx, OpCodeReview+" completed")
	return parseReview(result.Content), nil
}

// parseReview builds a response from the first fenced JSON block of text.
func parseReview(text string) *CodeReviewResponse {
	parsed, ok := gemini.DecodeJSON[CodeReviewResponse](text)
	if !ok {
		return &CodeReviewResponse{
			Summary:     text,
			Issues:      []map[string]any{},
			Suggestions: []string{},
			Rating:      "N/A",
		}
	}
	if parsed.Issues == nil {
		parsed.Issues = []map[string]any{}
	}
	if parsed.Suggestions == nil {
		parsed.Suggestions = []string{}
	}
	if parsed.Rating == "" {
		parsed.Rating = "N/A"
	}
	return &parsed
}

// ProofreadFeaturePlan returns the model's review of a feature plan.
func (s *Service) ProofreadFeaturePlan(ctx context.Context, n Notifier, req FeaturePlanRequest) (string, error) {
	focusAreas := orDefault(req.FocusAreas, defaultFocusAreas)
	user := "Proofread the following feature plan.\n\n" + req.FeaturePlan

	return s.text(ctx, n, textCall{
		operation: OpFeaturePlan,
		progress:  "Proofreading feature plan, focusing on " + focusAreas,
		template:  prompt.FeaturePlan,
		vars:      map[string]string{"focus_areas": focusAreas},
		user:      user,
		context:   req.Context,
	})
}

// AnalyzeBug returns the model's analysis of a bug report.
func (s *Service) AnalyzeBug(ctx context.Context, n Notifier, req BugAnalysisRequest) (string, error) {
	var parts []string
	if req.CodeContext != "" {
		parts = append(parts, "Code:\n"+req.CodeContext)
	}
	if req.ErrorLogs != "" {
		parts = append(parts, "Error logs:\n"+req.ErrorLogs)
	}

	return s.text(ctx, n, textCall{
		operation: OpBugAnalysis,
		progress:  "Analyzing bug report",
		template:  prompt.BugAnalysis,
		user:      "Analyze this bug: " + req.BugDescription,
		context:   strings.Join(parts, "\n\n"),
	})
}

// ExplainCode returns the model's explanation of req.Code.
func (s *Service) ExplainCode(ctx context.Context, n Notifier, req CodeExplanationRequest) (string, error) {
	language := orDefault(req.Language, unknownLanguage)
	level := orDefault(req.DetailLevel, DefaultDetailLevel)

	return s.text(ctx, n, textCall{
		operation: OpCodeExplanation,
		progress:  fmt.Sprintf("Explaining %s code at %s level", language, level),
		template:  prompt.CodeExplanation,
		vars:      map[string]string{"language": language, "detail_level": level},
		user:      fmt.Sprintf("Explain the following %s code.", language),
		context:   req.Code,
	})
}

// textCall describes one operation whose reply is returned as plain text.
type textCall struct {
	operation string
	progress  string
	template  string
	vars      map[string]string
	user      string
	context   string
}

func (s *Service) text(ctx context.Context, n Notifier, call textCall) (string, error) {
	n = notifierOrDiscard(n)
	n.Info(ctx, call.progress)

	system, err := s.system(call.template, call.vars)
	if err != nil {
		return "", err
	}

	result, err := s.invoker.CallStructured(ctx, gemini.StructuredRequest{
		System:  system,
		User:    call.user,
		Context: call.context,
	})
	if err != nil {
		n.Error(ctx, call.operation+" failed: "+err.Error())
		return "", err
	}
	if !result.Success {
		opErr := &OperationError{Operation: call.operation, Reason: result.Error}
		n.Error(ctx, opErr.Error())
		return "", opErr
	}

	n.Info(ctx, call.operation+" completed")
	return result.Content, nil
}

// system renders the named template into a system instruction.
func (s *Service) system(name string, vars map[string]string) (string, error) {
	tmpl, err := s.loadTemplate(name)
	if err != nil {
		return "", fmt.Errorf("loading %s template: %w", name, err)
	}
	return prompt.Render(tmpl, vars), nil
}

func notifierOrDiscard(n Notifier) Notifier {
	if n == nil {
		return Discard
	}
	return n
}
