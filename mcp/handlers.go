package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/richinex/waypoint/classifier"
	"github.com/richinex/waypoint/resources"
)

// Handlers implements the tool callbacks. Failures are reported as tool
// errors so the protocol session stays healthy.
type Handlers struct {
	generator  Generator
	resources  resources.Fetcher
	classifier Classifier
	logger     *zap.Logger
}

// GenerateRoadmap handles the generate_roadmap tool.
func (h *Handlers) GenerateRoadmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, errResult := requireTopic(request)
	if errResult != nil {
		return errResult, nil
	}

	res := h.generator.Generate(ctx, topic)
	if !res.Success() {
		h.logger.Info("roadmap tool failed", zap.String("topic", topic), zap.String("outcome", string(res.Outcome)))
		return mcp.NewToolResultError(res.Reason), nil
	}
	return jsonResult(res.Response())
}

// FetchResources handles the fetch_resources tool.
func (h *Handlers) FetchResources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, errResult := requireTopic(request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(map[string]any{
		"success":   true,
		"resources": h.resources.Fetch(ctx, topic),
	})
}

// ClassifyTopic handles the classify_topic tool.
func (h *Handlers) ClassifyTopic(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, errResult := requireTopic(request)
	if errResult != nil {
		return errResult, nil
	}
	d := h.classifier.Classify(ctx, topic)
	return jsonResult(struct {
		Topic string `json:"topic"`
		classifier.Decision
	}{topic, d})
}

func requireTopic(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	topic, err := request.RequireString("topic")
	if err != nil {
		return "", mcp.NewToolResultError("topic argument is required and must be a string")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", mcp.NewToolResultError("topic must not be blank")
	}
	return topic, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
