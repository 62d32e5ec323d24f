package integration

import (
	"context"
	"errors"
)

// ChatSession is the boundary to the underlying chat/completion backend:
// send one prompt, await one text response. Streaming, tool use, and MCP
// data-source routing are transport concerns hidden behind this interface.
type ChatSession interface {
	SendAndWait(ctx context.Context, prompt string) (string, error)
}

// ErrBackendUnavailable marks a session construction failure caused by the
// real backend not being reachable or configured (missing endpoint, missing
// API key). Callers substitute the demo session when they see this class of
// error; any other construction error is a genuine configuration fault.
var ErrBackendUnavailable = errors.New("chat backend unavailable")
