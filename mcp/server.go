// Package mcp serves nghint's checks as MCP (Model Context Protocol) tools
// over a line-delimited JSON-RPC stream, usually stdio.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/lex00/nghint/logging"
)

// maxMessage bounds a single JSON-RPC line. Whole templates travel inside
// tool arguments.
const maxMessage = 4 * 1024 * 1024

// ToolHandler processes tool invocations and returns results.
type ToolHandler func(ctx context.Context, args map[string]any) (string, error)

// Tool represents a registered tool that can be invoked by MCP clients.
type Tool struct {
	Name        string
	Description string
	Handler     ToolHandler
	InputSchema map[string]any // JSON Schema for input parameters
}

// Config configures the MCP server.
type Config struct {
	// Name is the server name (e.g., "nghint")
	Name string

	// Version is the server version
	Version string

	// Log receives protocol traces at debug level. Nil discards them.
	Log *logging.Logger
}

// Server implements the MCP protocol.
type Server struct {
	config Config
	log    *logging.Logger

	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewServer creates a new MCP server with the given configuration.
func NewServer(config Config) *Server {
	log := config.Log
	if log == nil {
		log = logging.Discard()
	}
	return &Server{
		config: config,
		log:    log.WithComponent("mcp"),
		tools:  make(map[string]*Tool),
	}
}

// RegisterTool adds a tool that MCP clients can invoke. A nil schema
// accepts an empty object.
func (s *Server) RegisterTool(name, description string, handler ToolHandler, inputSchema map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inputSchema == nil {
		inputSchema = objectSchema(nil)
	}
	s.tools[name] = &Tool{
		Name:        name,
		Description: description,
		Handler:     handler,
		InputSchema: inputSchema,
	}
	s.log.Debug("registered tool", "tool", name)
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.config.Name
}

// Tools lists the registered tools sorted by name.
func (s *Server) Tools() []ToolInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]ToolInfo, 0, len(s.tools))
	for _, tool := range s.tools {
		tools = append(tools, ToolInfo{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// Call runs a tool in-process.
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	s.mu.RLock()
	tool, exists := s.tools[name]
	s.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("tool not found: %s", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return tool.Handler(ctx, args)
}

// Serve answers requests read line by line from r, writing one response
// line to w per request. It returns when r is exhausted or ctx is done.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.log.Debug("serving", "name", s.config.Name)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxMessage)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.log.Debug("received", "message", line)

		response := s.handleMessage(ctx, []byte(line))
		if response == nil {
			continue
		}

		out, err := json.Marshal(response)
		if err != nil {
			s.log.WithError(err).Error("failed to marshal response")
			continue
		}
		if _, err := fmt.Fprintln(w, string(out)); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return nil
}

// handleMessage processes a single JSON-RPC message. It returns nil for
// notifications.
func (s *Server) handleMessage(ctx context.Context, data []byte) *JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errorResponse(nil, ParseError, "Parse error")
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		return errorResponse(req.ID, InvalidRequest, "Invalid request")
	}
	if len(req.ID) == 0 {
		s.log.Debug("notification", "method", req.Method)
		return nil
	}

	switch req.Method {
	case "initialize":
		return result(req.ID, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			ServerInfo: ServerInfo{
				Name:    s.config.Name,
				Version: s.config.Version,
			},
			Capabilities: ServerCapabilities{
				Tools: &ToolsCapability{},
			},
		})
	case "ping":
		return result(req.ID, struct{}{})
	case "tools/list":
		return result(req.ID, ToolsListResult{Tools: s.Tools()})
	case "tools/call":
		return s.handleToolsCall(ctx, &req)
	default:
		return errorResponse(req.ID, MethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

// handleToolsCall handles the tools/call request.
func (s *Server) handleToolsCall(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	var params ToolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, InvalidParams, "Invalid params structure")
		}
	}

	s.mu.RLock()
	_, exists := s.tools[params.Name]
	s.mu.RUnlock()
	if !exists {
		return errorResponse(req.ID, InvalidParams, fmt.Sprintf("Tool not found: %s", params.Name))
	}

	text, err := s.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Debug("tool failed", "tool", params.Name, "error", err.Error())
		return result(req.ID, ToolCallResult{
			Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		})
	}
	return result(req.ID, ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	})
}

func result(id json.RawMessage, v any) *JSONRPCResponse {
	return &JSONRPCResponse{JSONRPC: "2.0", Result: v, ID: id}
}

func errorResponse(id json.RawMessage, code int, message string) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		Error:   &JSONRPCError{Code: code, Message: message},
		ID:      id,
	}
}
