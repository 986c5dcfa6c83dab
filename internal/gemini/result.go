package gemini

// Metadata keys set on Result.Metadata. They are informational only.
const (
	MetaCommand       = "command"
	MetaModel         = "model"
	MetaFilesIncluded = "files_included"
	MetaExitCode      = "exit_code"
)

// Result is the outcome of one Gemini CLI invocation.
type Result struct {
	Content  string         `json:"content"`
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	Prompt   string         `json:"input_prompt"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// succeeded builds a successful Result.
func succeeded(prompt, content string, metadata map[string]any) *Result {
	return &Result{
		Content:  content,
		Success:  true,
		Prompt:   prompt,
		Metadata: metadata,
	}
}

// failed builds a failed Result. Content is always empty.
func failed(prompt, message string, metadata map[string]any) *Result {
	return &Result{
		Success:  false,
		Error:    message,
		Prompt:   prompt,
		Metadata: metadata,
	}
}

// ExitCode returns the recorded process exit code, if any.
func (r *Result) ExitCode() (int, bool) {
	if r == nil || r.Metadata == nil {
		return 0, false
	}
	code, ok := r.Metadata[MetaExitCode].(int)
	return code, ok
}
