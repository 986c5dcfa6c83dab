package gemini

import (
	"context"
	"strings"
)

// StructuredRequest is a prompt split into its system, context, and user parts.
type StructuredRequest struct {
	System  string
	User    string
	Context string   // optional
	Options *Options // nil uses the client defaults
}

// BuildPrompt lays out a structured prompt as
//
//	System: <system>
//
//	Context:
//	<contextText>
//
//	User: <user>
//
// The context block is omitted when contextText is empty.
func BuildPrompt(system, user, contextText string) string {
	var b strings.Builder
	b.WriteString("System: ")
	b.WriteString(system)
	b.WriteString("\n\n")
	if contextText != "" {
		b.WriteString("Context:\n")
		b.WriteString(contextText)
		b.WriteString("\n\n")
	}
	b.WriteString("User: ")
	b.WriteString(user)
	return b.String()
}

// CallStructured builds the prompt for req and invokes the CLI with it.
// The Result is returned as Invoke produced it.
func (c *Client) CallStructured(ctx context.Context, req StructuredRequest) (*Result, error) {
	return c.Invoke(ctx, BuildPrompt(req.System, req.User, req.Context), req.Options, nil)
}
