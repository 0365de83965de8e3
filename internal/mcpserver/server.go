// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the vault graph to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/vaultgraph/internal/graph"
	"github.com/starford/vaultgraph/internal/identity"
	"github.com/starford/vaultgraph/internal/livegraph"
)

const graphResourceURI = "vaultgraph://graph"

// Source provides graph snapshots. *livegraph.Holder satisfies it.
type Source interface {
	Current() (*livegraph.Snapshot, error)
	Rebuild(ctx context.Context) (*livegraph.Snapshot, error)
}

// Server wraps the MCP server with vault graph tools.
type Server struct {
	mcp *server.MCPServer
	src Source
}

// New creates a new MCP server with all tools registered.
func New(src Source, version string) *Server {
	s := &Server{src: src}

	s.mcp = server.NewMCPServer(
		"vaultgraph",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Return the vault graph as JSON: nodes (id, label, url, link_count) and links (source, target)."),
	), s.getGraph)

	s.mcp.AddTool(mcp.NewTool("get_node",
		mcp.WithDescription("Return one document node with its backlinks and outlinks."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document identity, e.g. notes/chapter1.md (case-insensitive)")),
	), s.getNode)

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("List the documents that link to the given document, one line per link."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document identity (case-insensitive)")),
	), s.getBacklinks)

	s.mcp.AddTool(mcp.NewTool("rebuild_graph",
		mcp.WithDescription("Rescan the vault and rebuild the graph from scratch."),
	), s.rebuildGraph)

	s.mcp.AddResource(
		mcp.NewResource(graphResourceURI, "Vault Graph",
			mcp.WithResourceDescription("The current vault graph as JSON."),
			mcp.WithMIMEType("application/json"),
		),
		s.readGraphResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) getGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.src.Current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(snap.JSON)), nil
}

func (s *Server) getNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.src.Current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id := identity.ID(raw)
	n, ok := graph.Node(snap.Graph, id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(map[string]any{
		"node":      n,
		"backlinks": graph.Backlinks(snap.Graph, id),
		"outlinks":  graph.Outlinks(snap.Graph, id),
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getBacklinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.src.Current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	bl := graph.Backlinks(snap.Graph, identity.ID(raw))
	if len(bl) == 0 {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	return mcp.NewToolResultText(strings.Join(bl, "\n")), nil
}

func (s *Server) rebuildGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.src.Rebuild(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("rebuilt: %d nodes, %d links", len(snap.Graph.Nodes), len(snap.Graph.Links))), nil
}

func (s *Server) readGraphResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap, err := s.src.Current()
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      graphResourceURI,
			MIMEType: "application/json",
			Text:     string(snap.JSON),
		},
	}, nil
}
