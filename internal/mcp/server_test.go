package mcp

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gemini-mcp/internal/config"
)

// connect starts the server over in-memory transports and returns a client
// session for it.
func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestNewServer_RegistersTools(t *testing.T) {
	server := NewServer("test-version", config.Default(), newTestClient(t, &fakeCLI{}))
	session := connect(t, server)

	tools, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)

	want := []string{
		"gemini_analyze_bug",
		"gemini_ask",
		"gemini_configure",
		"gemini_explain_code",
		"gemini_proofread_feature_plan",
		"gemini_review_code",
	}
	if len(names) != len(want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("tools[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewServer_ConfigResource(t *testing.T) {
	cfg := config.Default()
	cfg.Name = "Test Server"
	session := connect(t, NewServer("test-version", cfg, newTestClient(t, &fakeCLI{})))

	result, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: ConfigURI})
	if err != nil {
		t.Fatal(err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &data); err != nil {
		t.Fatal(err)
	}
	if data["name"] != "Test Server" {
		t.Errorf("name = %v", data["name"])
	}
	if _, ok := data["gemini_options"]; !ok {
		t.Error("gemini_options missing")
	}
}

func TestNewServer_CallToolFailureIsToolError(t *testing.T) {
	isolateTemplates(t)
	cli := &fakeCLI{reply: failure("quota exceeded")}
	session := connect(t, NewServer("test-version", config.Default(), newTestClient(t, cli)))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "gemini_analyze_bug",
		Arguments: map[string]any{"bug_description": "it breaks"},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v, want a tool-level failure", err)
	}
	if !result.IsError {
		t.Error("IsError = false, want true")
	}
	if got := resultText(t, result); got != "Bug analysis failed: quota exceeded" {
		t.Errorf("text = %q", got)
	}
}
