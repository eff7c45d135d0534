// Package mcp exposes calculator sessions as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
)

const (
	serverName    = "calculator-mcp"
	serverVersion = "0.1.0"
)

// Tools holds the state shared by the tool handlers.
type Tools struct {
	store  *calculator.Store
	logger *zap.Logger
}

// NewTools returns tool handlers backed by store.
func NewTools(store *calculator.Store, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tools{store: store, logger: logger}
}

// NewServer builds an MCP server with every calculator tool registered.
func NewServer(tools *Tools) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	tools.Register(s)
	return s
}

// Register adds the calculator tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcpgo.NewTool("new_session",
		mcpgo.WithDescription("Start a calculator session. Returns the session id and the initial display."),
	), t.NewSession)

	s.AddTool(mcpgo.NewTool("press_keys",
		mcpgo.WithDescription("Press keypad buttons on a session calculator, e.g. \"12×3=\". Digits, '.', + - × ÷ % (or * /), '=', 'C' (clear), '<' (delete) and '~' (negate)."),
		mcpgo.WithString("session_id",
			mcpgo.Required(),
			mcpgo.Description("Session id returned by new_session"),
		),
		mcpgo.WithString("keys",
			mcpgo.Required(),
			mcpgo.Description("Key sequence, one button per character"),
		),
	), t.PressKeys)

	s.AddTool(mcpgo.NewTool("show_display",
		mcpgo.WithDescription("Show the current display of a session calculator"),
		mcpgo.WithString("session_id",
			mcpgo.Required(),
			mcpgo.Description("Session id returned by new_session"),
		),
	), t.ShowDisplay)

	s.AddTool(mcpgo.NewTool("close_session",
		mcpgo.WithDescription("Discard a calculator session"),
		mcpgo.WithString("session_id",
			mcpgo.Required(),
			mcpgo.Description("Session id returned by new_session"),
		),
	), t.CloseSession)

	s.AddTool(mcpgo.NewTool("evaluate",
		mcpgo.WithDescription("Run a key sequence on a fresh calculator and return the display"),
		mcpgo.WithString("keys",
			mcpgo.Required(),
			mcpgo.Description("Key sequence, one button per character"),
		),
	), t.Evaluate)
}

// NewSession handles the new_session tool.
func (t *Tools) NewSession(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	sess, err := t.store.Create()
	if err != nil {
		return mcpgo.NewToolResultError(fmt.Sprintf("Error creating session: %v", err)), nil
	}
	t.logger.Info("mcp session created", zap.String("session_id", sess.ID))
	return mcpgo.NewToolResultText(render(sess.ID, sess.State)), nil
}

// PressKeys handles the press_keys tool.
func (t *Tools) PressKeys(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["session_id"].(string)
	if !ok || id == "" {
		return mcpgo.NewToolResultError("session_id is required"), nil
	}
	seq, ok := args["keys"].(string)
	if !ok {
		return mcpgo.NewToolResultError("keys is required"), nil
	}

	keys, err := calculator.ParseSequence(seq)
	if err != nil {
		return mcpgo.NewToolResultError(fmt.Sprintf("Error reading keys: %v", err)), nil
	}

	sess, err := t.store.PressContext(ctx, id, keys)
	if err != nil {
		return sessionError(err), nil
	}
	return mcpgo.NewToolResultText(render(sess.ID, sess.State)), nil
}

// ShowDisplay handles the show_display tool.
func (t *Tools) ShowDisplay(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	id, ok := request.GetArguments()["session_id"].(string)
	if !ok || id == "" {
		return mcpgo.NewToolResultError("session_id is required"), nil
	}

	sess, err := t.store.Get(id)
	if err != nil {
		return sessionError(err), nil
	}
	return mcpgo.NewToolResultText(render(sess.ID, sess.State)), nil
}

// CloseSession handles the close_session tool.
func (t *Tools) CloseSession(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	id, ok := request.GetArguments()["session_id"].(string)
	if !ok || id == "" {
		return mcpgo.NewToolResultError("session_id is required"), nil
	}

	if err := t.store.Delete(id); err != nil {
		return sessionError(err), nil
	}
	t.logger.Info("mcp session closed", zap.String("session_id", id))
	return mcpgo.NewToolResultText("closed session " + id), nil
}

// Evaluate handles the evaluate tool.
func (t *Tools) Evaluate(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	seq, ok := request.GetArguments()["keys"].(string)
	if !ok {
		return mcpgo.NewToolResultError("keys is required"), nil
	}

	keys, err := calculator.ParseSequence(seq)
	if err != nil {
		return mcpgo.NewToolResultError(fmt.Sprintf("Error reading keys: %v", err)), nil
	}

	st := calculator.PressTraced(ctx, calculator.New(), keys)
	return mcpgo.NewToolResultText(render("", st)), nil
}

func sessionError(err error) *mcpgo.CallToolResult {
	if errors.Is(err, calculator.ErrSessionNotFound) {
		return mcpgo.NewToolResultError("unknown session; call new_session first")
	}
	return mcpgo.NewToolResultError(err.Error())
}

// render formats a calculator for a tool response.
func render(id string, st calculator.State) string {
	display, expr := st.Display()

	var b strings.Builder
	if id != "" {
		fmt.Fprintf(&b, "session: %s\n", id)
	}
	if expr != "" {
		fmt.Fprintf(&b, "expression: %s\n", expr)
	}
	fmt.Fprintf(&b, "display: %s", display)
	return b.String()
}
