package assist

// Defaults applied to empty request fields.
const (
	DefaultFocus       = "general"
	DefaultDetailLevel = "intermediate"
	defaultFocusAreas  = "overall quality"
	unknownLanguage    = "source"
)

// CodeReviewRequest asks for a review of a piece of code.
type CodeReviewRequest struct {
	Code     string `json:"code"               jsonschema:"the code to review"`
	Language string `json:"language,omitempty" jsonschema:"programming language of the code"`
	Focus    string `json:"focus,omitempty"    jsonschema:"review focus, e.g. security, performance, general"`
}

// CodeReviewResponse is the structured result of a code review.
type CodeReviewResponse struct {
	Summary     string           `json:"summary"     jsonschema:"overall assessment"`
	Issues      []map[string]any `json:"issues"      jsonschema:"problems found"`
	Suggestions []string         `json:"suggestions" jsonschema:"general improvements"`
	Rating      string           `json:"rating"      jsonschema:"overall grade; N/A when the reply was unstructured, Failed when the call failed"`
}

// FeaturePlanRequest asks for a feature plan to be proofread.
type FeaturePlanRequest struct {
	FeaturePlan string `json:"feature_plan"          jsonschema:"the feature plan text"`
	Context     string `json:"context,omitempty"     jsonschema:"background on the project or product"`
	FocusAreas  string `json:"focus_areas,omitempty" jsonschema:"comma-separated areas to focus on"`
}

// BugAnalysisRequest asks for the likely cause of a bug.
type BugAnalysisRequest struct {
	BugDescription string `json:"bug_description"        jsonschema:"what goes wrong and when"`
	CodeContext    string `json:"code_context,omitempty" jsonschema:"relevant code"`
	ErrorLogs      string `json:"error_logs,omitempty"   jsonschema:"error messages or stack traces"`
}

// CodeExplanationRequest asks for an explanation of a piece of code.
type CodeExplanationRequest struct {
	Code        string `json:"code"                   jsonschema:"the code to explain"`
	Language    string `json:"language,omitempty"     jsonschema:"programming language of the code"`
	DetailLevel string `json:"detail_level,omitempty" jsonschema:"beginner, intermediate, or advanced"`
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
