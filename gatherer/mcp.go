package gatherer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tapscan/tapscan/kit"
)

// RegisterMCP registers the audit tools on an MCP server.
func (a *Auditor) RegisterMCP(srv *mcp.Server) {
	a.registerAuditTool(srv)
	a.registerListRunsTool(srv)
	a.registerGetRunTool(srv)
}

// inputSchema builds a JSON Schema object with type "object".
func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- audit ---

type auditRequest struct {
	URL string `json:"url"`
}

func (a *Auditor) registerAuditTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "tapscan_audit",
		Description: "Audit a page's tap targets: collects interactive elements, flags targets that are too small or overlap, returns the full report.",
		InputSchema: inputSchema(map[string]any{
			"url": map[string]any{"type": "string", "description": "Page URL to audit"},
		}, []string{"url"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*auditRequest)
		if r.URL == "" {
			return nil, fmt.Errorf("url is required")
		}
		return a.Audit(ctx, r.URL)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r auditRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- list_runs ---

type listRunsRequest struct {
	Limit int `json:"limit,omitempty"`
}

func (a *Auditor) registerListRunsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "tapscan_list_runs",
		Description: "List recent audit runs, newest first.",
		InputSchema: inputSchema(map[string]any{
			"limit": map[string]any{"type": "integer", "description": "Max runs (default 50)"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*listRunsRequest)
		if a.store == nil {
			return nil, fmt.Errorf("run history is not enabled")
		}
		return a.store.List(ctx, r.Limit)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r listRunsRequest
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
				return nil, err
			}
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- get_run ---

type getRunRequest struct {
	RunID string `json:"run_id"`
}

func (a *Auditor) registerGetRunTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "tapscan_get_run",
		Description: "Fetch a stored audit report by run ID.",
		InputSchema: inputSchema(map[string]any{
			"run_id": map[string]any{"type": "string", "description": "Run ID from tapscan_audit or tapscan_list_runs"},
		}, []string{"run_id"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*getRunRequest)
		if a.store == nil {
			return nil, fmt.Errorf("run history is not enabled")
		}
		rep, err := a.store.Get(ctx, r.RunID)
		if err != nil {
			return nil, err
		}
		return rep, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r getRunRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
