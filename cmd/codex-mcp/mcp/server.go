// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/bureau-foundation/codex-mcp/cmd/codex-mcp/cli"
	"github.com/bureau-foundation/codex-mcp/lib/clock"
	"github.com/bureau-foundation/codex-mcp/lib/version"
)

// maxMessageSize bounds a single JSON-RPC line. Review requests carry
// whole diffs, so this is far above what ordinary tool calls need.
const maxMessageSize = 64 << 20

// Tool is one operation exposed over MCP.
type Tool struct {
	// Name is the MCP tool name (e.g., "codex_review").
	Name string

	// Title is the human-readable display name.
	Title string

	// Description tells agents when to use the tool.
	Description string

	// Annotations carry behavioral hints. Nil leaves the MCP defaults.
	Annotations *cli.ToolAnnotations

	// Params returns a pointer to a new zero parameter struct. Its
	// type drives the input schema; each call decodes into a fresh one.
	Params func() any

	// Defaults are published as the default of the named input schema
	// properties. Properties the schema does not have are ignored.
	Defaults map[string]any

	// Call runs the operation with the decoded parameters.
	Call func(ctx context.Context, params any) (string, error)
}

// tool is a Tool with its generated input schema.
type tool struct {
	Tool
	inputSchema *cli.Schema
}

// Server is an MCP server that exposes a fixed set of tools over
// JSON-RPC 2.0 on newline-delimited stdio.
type Server struct {
	tools       []tool
	toolsByName map[string]*tool
	logger      *slog.Logger

	// clock times tool calls for the call log.
	clock clock.Clock

	// initialized is only touched by the goroutine running Run.
	initialized bool

	calls sync.WaitGroup
}

// NewServer creates a server for tools. Schema generation failures are
// programming errors in a parameter struct and are returned rather
// than skipped, so a broken tool never silently disappears.
func NewServer(tools []Tool, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		toolsByName: make(map[string]*tool, len(tools)),
		logger:      logger,
		clock:       clock.Real(),
	}
	for _, definition := range tools {
		if _, duplicate := s.toolsByName[definition.Name]; duplicate {
			return nil, fmt.Errorf("duplicate tool %q", definition.Name)
		}
		inputSchema, err := cli.ParamsSchema(definition.Params())
		if err != nil {
			return nil, fmt.Errorf("tool %s: input schema: %w", definition.Name, err)
		}
		for property, value := range definition.Defaults {
			inputSchema.SetDefault(property, value)
		}
		s.tools = append(s.tools, tool{Tool: definition, inputSchema: inputSchema})
		s.toolsByName[definition.Name] = nil
	}
	for i := range s.tools {
		s.toolsByName[s.tools[i].Name] = &s.tools[i]
	}
	return s, nil
}

// Run processes JSON-RPC 2.0 requests from input and writes responses
// to output until input reaches EOF or ctx is done. Each request
// occupies a single line (newline-delimited JSON-RPC, not
// Content-Length framed). tools/call requests share ctx, so cancelling
// it terminates every running codex child; Run returns only after all
// in-flight calls have written their responses.
func (s *Server) Run(ctx context.Context, input io.Reader, output io.Writer) error {
	writer := &responseWriter{encoder: json.NewEncoder(output)}
	defer s.calls.Wait()

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(input)
		scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down MCP server", "cause", context.Cause(ctx))
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if len(line) == 0 {
				continue
			}
			if err := s.handleLine(ctx, writer, line); err != nil {
				return err
			}
		}
	}
}

// handleLine decodes and dispatches one message. Only a failure to
// write a response is returned: it means the client is gone.
func (s *Server) handleLine(ctx context.Context, writer *responseWriter, line []byte) error {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		if writeErr := writer.writeError(json.RawMessage("null"), codeParseError, "parse error: "+err.Error()); writeErr != nil {
			return cli.Internal("writing parse error response: %w", writeErr)
		}
		return nil
	}

	if req.JSONRPC != "2.0" {
		if !req.isNotification() {
			if writeErr := writer.writeError(req.ID, codeInvalidRequest, "unsupported JSON-RPC version"); writeErr != nil {
				return cli.Internal("writing version error response: %w", writeErr)
			}
		}
		return nil
	}

	// Notifications have no ID and receive no response. This includes
	// notifications/cancelled: an in-flight codex call runs until it
	// finishes or reaches its deadline.
	if req.isNotification() {
		s.logger.Debug("ignoring notification", "method", req.Method)
		return nil
	}

	return s.dispatch(ctx, writer, &req)
}

// dispatch routes a JSON-RPC request to the appropriate handler.
func (s *Server) dispatch(ctx context.Context, writer *responseWriter, req *request) error {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(writer, req)
	case "ping":
		return writer.writeResult(req.ID, map[string]any{})
	case "tools/list":
		if !s.initialized {
			return writer.writeError(req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsList(writer, req)
	case "tools/call":
		if !s.initialized {
			return writer.writeError(req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsCall(ctx, writer, req)
	default:
		return writer.writeError(req.ID, codeMethodNotFound, "unknown method: "+req.Method)
	}
}

func (s *Server) handleInitialize(writer *responseWriter, req *request) error {
	if len(req.Params) == 0 {
		return writer.writeError(req.ID, codeInvalidParams, "params required for initialize")
	}

	var params initializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writer.writeError(req.ID, codeInvalidParams, "invalid initialize params: "+err.Error())
	}

	// The server answers with its own protocol version and the client
	// decides whether it can proceed.
	s.initialized = true
	s.logger.Info("MCP client initialized",
		"client", params.ClientInfo.Name,
		"client_version", params.ClientInfo.Version,
		"protocol_version", params.ProtocolVersion,
	)

	return writer.writeResult(req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: serverCapabilities{
			Tools: &toolCapability{},
		},
		ServerInfo: serverInfo{
			Name:    serverName,
			Version: version.Short(),
		},
		Instructions: instructions,
	})
}

func (s *Server) handleToolsList(writer *responseWriter, req *request) error {
	descriptions := make([]toolDescription, 0, len(s.tools))
	for i := range s.tools {
		t := &s.tools[i]
		descriptions = append(descriptions, toolDescription{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			InputSchema: t.inputSchema,
			Annotations: translateAnnotations(t.Annotations),
		})
	}
	return writer.writeResult(req.ID, toolsListResult{Tools: descriptions})
}

// handleToolsCall validates the envelope synchronously and runs the
// tool in its own goroutine. The response is written when the tool
// returns, possibly after responses to later requests.
func (s *Server) handleToolsCall(ctx context.Context, writer *responseWriter, req *request) error {
	if len(req.Params) == 0 {
		return writer.writeError(req.ID, codeInvalidParams, "params required for tools/call")
	}

	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writer.writeError(req.ID, codeInvalidParams, "invalid tools/call params: "+err.Error())
	}

	t, ok := s.toolsByName[params.Name]
	if !ok {
		return writer.writeError(req.ID, codeInvalidParams, "unknown tool: "+params.Name)
	}

	id := req.ID
	s.calls.Go(func() {
		result := s.executeTool(ctx, t, params.Arguments)
		if err := writer.writeResult(id, result); err != nil {
			s.logger.Error("writing tools/call response", "tool", t.Name, "error", err)
		}
	})
	return nil
}

// executeTool decodes arguments into fresh parameters and calls the
// tool, logging the call under a generated call_id.
func (s *Server) executeTool(ctx context.Context, t *tool, arguments json.RawMessage) toolsCallResult {
	logger := s.logger.With("call_id", uuid.New().String(), "tool", t.Name)
	start := s.clock.Now()

	params := t.Params()
	var output string
	var callErr error
	if len(arguments) > 0 && string(arguments) != "null" {
		if err := json.Unmarshal(arguments, params); err != nil {
			callErr = cli.Validation("invalid arguments: %w", err)
		}
	}
	if callErr == nil {
		logger.Info("tool call started")
		output, callErr = t.Call(ctx, params)
	}

	result := buildToolResult(output, callErr)
	attributes := []any{"duration", s.clock.Now().Sub(start), "is_error", result.IsError}
	if result.ErrorInfo != nil {
		attributes = append(attributes, "category", result.ErrorInfo.Category, "error", callErr)
	}
	logger.Info("tool call finished", attributes...)
	return result
}

// buildToolResult assembles a toolsCallResult from the tool output and
// an optional error.
func buildToolResult(output string, callErr error) toolsCallResult {
	result := toolsCallResult{}
	if output != "" {
		result.Content = append(result.Content, contentBlock{
			Type: "text",
			Text: output,
		})
	}
	if callErr != nil {
		result.IsError = true
		result.Content = append(result.Content, contentBlock{
			Type: "text",
			Text: callErr.Error(),
		})
		result.ErrorInfo = classifyError(callErr)
	}
	// MCP requires at least one content block in the result.
	if len(result.Content) == 0 {
		result.Content = []contentBlock{{Type: "text", Text: ""}}
	}
	return result
}

// classifyError extracts structured error metadata from an error.
// Errors that are not a ToolError are unexpected and reported as
// internal.
func classifyError(err error) *errorInfo {
	var toolErr *cli.ToolError
	if errors.As(err, &toolErr) {
		return &errorInfo{Category: string(toolErr.Category)}
	}
	return &errorInfo{Category: string(cli.CategoryInternal)}
}

// translateAnnotations converts tool annotations into MCP protocol
// hints. Nil stays nil so clients apply the MCP defaults.
func translateAnnotations(annotations *cli.ToolAnnotations) *toolAnnotations {
	if annotations == nil {
		return nil
	}
	return &toolAnnotations{
		ReadOnlyHint:    annotations.ReadOnly,
		DestructiveHint: annotations.Destructive,
		IdempotentHint:  annotations.Idempotent,
		OpenWorldHint:   annotations.OpenWorld,
	}
}

// responseWriter serializes responses onto the output stream. Each
// response is encoded as a single line under the lock, so concurrent
// tool calls never interleave their bytes.
type responseWriter struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

// writeResult sends a JSON-RPC 2.0 success response.
func (w *responseWriter) writeResult(id json.RawMessage, result any) error {
	return w.write(response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// writeError sends a JSON-RPC 2.0 error response.
func (w *responseWriter) writeError(id json.RawMessage, code int, message string) error {
	return w.write(response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	})
}

func (w *responseWriter) write(message response) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encoder.Encode(message)
}
