package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gemini-mcp/internal/assist"
)

// --- Shared helpers ---

// textResult turns an assist reply into a tool result. An *assist.OperationError
// becomes an IsError result carrying its message; any other error is
// returned to the SDK as a tool failure.
func textResult(text string, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		var opErr *assist.OperationError
		if errors.As(err, &opErr) {
			return errorResult(opErr.Error()), nil, nil
		}
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(name + " is required")
	}
	return nil
}

// --- Review tool ---

func handleReviewCode(svc *assist.Service) mcp.ToolHandlerFor[assist.CodeReviewRequest, assist.CodeReviewResponse] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input assist.CodeReviewRequest) (*mcp.CallToolResult, assist.CodeReviewResponse, error) {
		if err := required("code", input.Code); err != nil {
			return nil, assist.CodeReviewResponse{}, err
		}
		resp, err := svc.ReviewCode(ctx, notifierFor(req, "gemini_review_code"), input)
		if err != nil {
			return nil, assist.CodeReviewResponse{}, err
		}
		return nil, *resp, nil
	}
}

// --- Prose tools ---

func handleProofreadFeaturePlan(svc *assist.Service) mcp.ToolHandlerFor[assist.FeaturePlanRequest, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input assist.FeaturePlanRequest) (*mcp.CallToolResult, any, error) {
		if err := required("feature_plan", input.FeaturePlan); err != nil {
			return nil, nil, err
		}
		return textResult(svc.ProofreadFeaturePlan(ctx, notifierFor(req, "gemini_proofread_feature_plan"), input))
	}
}

func handleAnalyzeBug(svc *assist.Service) mcp.ToolHandlerFor[assist.BugAnalysisRequest, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input assist.BugAnalysisRequest) (*mcp.CallToolResult, any, error) {
		if err := required("bug_description", input.BugDescription); err != nil {
			return nil, nil, err
		}
		return textResult(svc.AnalyzeBug(ctx, notifierFor(req, "gemini_analyze_bug"), input))
	}
}

func handleExplainCode(svc *assist.Service) mcp.ToolHandlerFor[assist.CodeExplanationRequest, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input assist.CodeExplanationRequest) (*mcp.CallToolResult, any, error) {
		if err := required("code", input.Code); err != nil {
			return nil, nil, err
		}
		return textResult(svc.ExplainCode(ctx, notifierFor(req, "gemini_explain_code"), input))
	}
}
