package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "motionsplit://"

	// historyLimit caps the records returned by the history resource.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Most recent extraction records, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Extraction settings used when a tool call does not override them",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// historyEntry is the JSON shape of one record in the history resource.
type historyEntry struct {
	RunID       string    `json:"run_id"`
	SourcePath  string    `json:"source_path"`
	OutputPath  string    `json:"output_path,omitempty"`
	Outcome     string    `json:"outcome"`
	VideoSize   int64     `json:"video_size"`
	Unchanged   bool      `json:"unchanged,omitempty"`
	Error       string    `json:"error,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// handleHistoryResource returns the latest extraction records.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	records, err := s.ports.History.Recent(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	entries := make([]historyEntry, len(records))
	for i := range records {
		entries[i] = historyEntry{
			RunID:       records[i].RunID,
			SourcePath:  records[i].SourcePath,
			OutputPath:  records[i].OutputPath,
			Outcome:     records[i].Outcome.String(),
			VideoSize:   records[i].VideoSize,
			Unchanged:   records[i].Unchanged,
			Error:       records[i].Error,
			ProcessedAt: records[i].ProcessedAt,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

// handleSettingsResource returns the effective extraction settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := s.extractSettings()

	info := struct {
		RequireMotionFlag bool   `json:"require_motion_flag"`
		TailWindow        int    `json:"tail_window"`
		Workers           int    `json:"workers"`
		OutputDir         string `json:"output_dir"`
		Recursive         bool   `json:"recursive"`
		Overwrite         bool   `json:"overwrite"`
	}{
		RequireMotionFlag: settings.RequireMotionFlag,
		TailWindow:        settings.TailWindow,
		Workers:           settings.Workers,
		OutputDir:         settings.OutputDir,
		Recursive:         settings.Recursive,
		Overwrite:         settings.Overwrite,
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
