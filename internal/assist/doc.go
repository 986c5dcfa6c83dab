// Package assist implements the developer operations served over MCP and the
// CLI: code review, feature plan proofreading, bug analysis, and code
// explanation.
//
// Each operation renders a prompt template into a system instruction, sends
// it with the request through an Invoker, and shapes the reply. A failed CLI
// call is reported as an *OperationError (or, for code review, as a response
// with the "Failed" rating); an *gemini.AuthError is returned unchanged.
package assist
