package kit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestChain_Order(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				order = append(order, name+"_before")
				resp, err := next(ctx, req)
				order = append(order, name+"_after")
				return resp, err
			}
		}
	}

	base := func(_ context.Context, _ any) (any, error) {
		order = append(order, "endpoint")
		return "ok", nil
	}

	chained := Chain(mw("a"), mw("b"), mw("c"))(base)
	resp, err := chained(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp != "ok" {
		t.Fatalf("response: got %v", resp)
	}

	expected := []string{"a_before", "b_before", "c_before", "endpoint", "c_after", "b_after", "a_after"}
	if len(order) != len(expected) {
		t.Fatalf("order length: got %d, want %d", len(order), len(expected))
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("order[%d]: got %q, want %q", i, order[i], expected[i])
		}
	}
}

func TestContextRoundtrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithTransport(ctx, "mcp")

	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("request id: got %q", got)
	}
	if got := GetTransport(ctx); got != "mcp" {
		t.Errorf("transport: got %q", got)
	}
	if got := GetTransport(context.Background()); got != "http" {
		t.Errorf("default transport: got %q, want http", got)
	}
}

var testImpl = &mcp.Implementation{Name: "kit-test", Version: "0.1.0"}

func TestRegisterMCPTool(t *testing.T) {
	srv := mcp.NewServer(testImpl, nil)

	type echoReq struct {
		Msg string `json:"msg"`
	}
	tool := &mcp.Tool{
		Name:        "echo",
		Description: "Echo the message back.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"msg": map[string]any{"type": "string"}},
		},
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*echoReq)
		if r.Msg == "boom" {
			return nil, errors.New("exploded")
		}
		if GetTransport(ctx) != "mcp" {
			return nil, errors.New("transport not tagged")
		}
		return map[string]string{"echo": r.Msg}, nil
	}
	decode := func(req *mcp.CallToolRequest) (*MCPDecodeResult, error) {
		var r echoReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &MCPDecodeResult{Request: &r}, nil
	}
	RegisterMCPTool(srv, tool, endpoint, decode)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"msg": "hello"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %v", result.Content)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatal("expected TextContent")
	}
	var resp map[string]string
	if err := json.Unmarshal([]byte(tc.Text), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["echo"] != "hello" {
		t.Errorf("echo: got %q", resp["echo"])
	}

	result, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"msg": "boom"},
	})
	if err != nil {
		t.Fatalf("CallTool(boom): %v", err)
	}
	if !result.IsError {
		t.Fatal("endpoint error not surfaced as tool error")
	}
	tc, ok = result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatal("expected TextContent in error result")
	}
	if !strings.Contains(tc.Text, "exploded") {
		t.Errorf("error text: got %q, want it to mention exploded", tc.Text)
	}
}
