package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

var resActiveRoutine = mcp.NewResource(
	"repbook://active_routine",
	"Active Routine",
	mcp.WithResourceDescription("The routine currently selected for training, with its full document"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) activeRoutine(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id, nombre, err := h.ds.GetActiveRoutine(ctx)
	if err != nil {
		return nil, err
	}

	row, err := h.ds.GetRoutine(ctx, id)
	if err != nil {
		h.log.Warn("active_routine: document fetch failed", "error", err)
	}

	payload := map[string]any{
		"id":     id,
		"nombre": nombre,
	}
	if row != nil {
		payload["routine"] = row
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
