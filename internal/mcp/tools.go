package mcp

import (
	"context"
	"errors"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/repbook/internal/training"
)

// parseWeek validates a week parameter string against the selectable
// range (1..WeeksMax).
func parseWeek(s string) (int, error) {
	week, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("week must be a number")
	}
	if week < 1 || week > training.WeeksMax {
		return 0, errors.New("week out of range")
	}
	return week, nil
}

// --- Tool definitions ---

var toolListRoutines = mcp.NewTool("list_routines",
	mcp.WithDescription("List all stored routines with their metadata (id, name, day count, last update)."),
)

var toolGetRoutine = mcp.NewTool("get_routine",
	mcp.WithDescription("Retrieve one routine's full document: days in order, each with its exercises and prescribed sets (rep ranges, technique modifiers, coach notes)."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Routine ID")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Retrieve one training week's progress: exercise statuses (C completed, NC not completed, OE substituted) and recorded reps/load per set."),
	mcp.WithString("week", mcp.Required(), mcp.Description("Training week number (1-12)")),
)

var toolGetSetTrend = mcp.NewTool("get_set_trend",
	mcp.WithDescription("Find the most recent prior-week recording for one set slot (day, exercise, set index). Used to compare the current entry against past performance."),
	mcp.WithString("week", mcp.Required(), mcp.Description("Current training week; the lookup scans weeks before it")),
	mcp.WithString("day", mcp.Required(), mcp.Description("Zero-based day index within the routine")),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise ID (ej-...)")),
	mcp.WithString("set", mcp.Required(), mcp.Description("Zero-based set index")),
)

var toolGetTrainingVolume = mcp.NewTool("get_training_volume",
	mcp.WithDescription("Aggregated logged training volume (reps x load) grouped by week and muscle."),
)

// --- Tool handlers ---

func (h *handlers) listRoutines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.ListRoutines(ctx)
	if err != nil {
		h.log.Error("mcp list_routines", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRoutine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	row, err := h.ds.GetRoutine(ctx, id)
	if err != nil {
		h.log.Error("mcp get_routine", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(row)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weekStr, err := req.RequireString("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	week, err := parseWeek(weekStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, err := h.ds.QueryWeek(ctx, week)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(p)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSetTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weekStr, err := req.RequireString("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	week, err := parseWeek(weekStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dayStr, err := req.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return mcp.NewToolResultError("day must be a number"), nil
	}
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	setStr, err := req.RequireString("set")
	if err != nil {
		return mcp.NewToolResultError("set parameter is required"), nil
	}
	setIdx, err := strconv.Atoi(setStr)
	if err != nil {
		return mcp.NewToolResultError("set must be a number"), nil
	}

	slot := training.SetKey{
		Key:   training.Key{Week: week, Day: day, Exercise: exercise},
		Index: setIdx,
	}
	history, err := h.ds.QuerySlotHistory(ctx, week, slot)
	if err != nil {
		h.log.Error("mcp get_set_trend", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.WeeklyVolume(ctx)
	if err != nil {
		h.log.Error("mcp get_training_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
