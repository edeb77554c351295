// Package mcp exposes roadmap generation as Model Context Protocol tools
// served over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/richinex/waypoint/classifier"
	"github.com/richinex/waypoint/generation"
	"github.com/richinex/waypoint/internal/logger"
	"github.com/richinex/waypoint/resources"
)

// ServerName is reported to connecting clients.
const ServerName = "waypoint"

// Generator produces a roadmap result for a topic.
type Generator interface {
	Generate(ctx context.Context, topic string) generation.Result
}

// Classifier reports the domain decision for a topic.
type Classifier interface {
	Classify(ctx context.Context, topic string) classifier.Decision
}

// NewServer creates an MCP server with every tool registered.
func NewServer(version string, gen Generator, res resources.Fetcher, cls Classifier, l *zap.Logger) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(ServerName, version, mcpserver.WithToolCapabilities(false))
	RegisterTools(s, gen, res, cls, l)
	return s
}

// RegisterTools registers the roadmap tools with server.
func RegisterTools(server *mcpserver.MCPServer, gen Generator, res resources.Fetcher, cls Classifier, l *zap.Logger) *Handlers {
	h := &Handlers{generator: gen, resources: res, classifier: cls, logger: logger.OrNop(l)}

	server.AddTool(mcp.Tool{
		Name:        "generate_roadmap",
		Description: "Generate a hierarchical learning roadmap for a technology topic, role, or skill.",
		InputSchema: topicSchema("Technology topic to build a roadmap for"),
	}, h.GenerateRoadmap)

	server.AddTool(mcp.Tool{
		Name:        "fetch_resources",
		Description: "Find learning resources (videos, articles, books or a summary with courses) for a topic.",
		InputSchema: topicSchema("Topic to find resources for"),
	}, h.FetchResources)

	server.AddTool(mcp.Tool{
		Name:        "classify_topic",
		Description: "Report whether a topic is technology related and which check decided it.",
		InputSchema: topicSchema("Topic to classify"),
	}, h.ClassifyTopic)

	return h
}

func topicSchema(description string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"topic": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
		Required: []string{"topic"},
	}
}
