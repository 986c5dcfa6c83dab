package mcp

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gemini-mcp/internal/logging"
)

// sessionNotifier forwards assist progress to the calling client as MCP
// logging notifications. Errors are also written to the process log.
type sessionNotifier struct {
	session *mcp.ServerSession
	logger  string
}

func notifierFor(req *mcp.CallToolRequest, logger string) sessionNotifier {
	n := sessionNotifier{logger: logger}
	if req != nil {
		n.session = req.Session
	}
	return n
}

func (n sessionNotifier) Info(ctx context.Context, message string) {
	n.send(ctx, "info", message)
}

func (n sessionNotifier) Error(ctx context.Context, message string) {
	message = logging.Mask(message)
	log.Printf("ERROR: %s: %s", n.logger, message)
	n.send(ctx, "error", message)
}

// send delivers one notification. The client may not have enabled logging,
// and a lost notification never fails the call.
func (n sessionNotifier) send(ctx context.Context, level mcp.LoggingLevel, message string) {
	if n.session == nil {
		return
	}
	_ = n.session.Log(ctx, &mcp.LoggingMessageParams{
		Level:  level,
		Logger: n.logger,
		Data:   logging.Mask(message),
	})
}
