package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

// ClassifyInput is the input schema for the classify_file tool.
type ClassifyInput struct {
	Path              string `json:"path" jsonschema:"absolute path of the JPEG file to inspect"`
	RequireMotionFlag *bool  `json:"require_motion_flag,omitempty" jsonschema:"only accept files whose XMP marks them as motion photos"`
	TailWindow        *int   `json:"tail_window,omitempty" jsonschema:"search only the last N bytes of the file for the video (0 = whole tail)"`
}

// ClassifyOutput is the output schema for the classify_file tool.
type ClassifyOutput struct {
	Path            string   `json:"path"`
	Outcome         string   `json:"outcome"`
	Description     string   `json:"description"`
	FileSize        int      `json:"file_size"`
	Boundary        int      `json:"boundary"`
	ContainerOffset int      `json:"container_offset"`
	VideoSize       int      `json:"video_size"`
	XMPPackets      int      `json:"xmp_packets"`
	TailBytes       int      `json:"tail_bytes"`
	Signatures      []string `json:"signatures,omitempty"`
}

// ExtractInput is the input schema for the extract_file tool.
type ExtractInput struct {
	Path              string `json:"path" jsonschema:"absolute path of the motion photo"`
	OutputDir         string `json:"output_dir,omitempty" jsonschema:"directory for the video (default: _extracted_videos next to the photo)"`
	RequireMotionFlag *bool  `json:"require_motion_flag,omitempty" jsonschema:"only accept files whose XMP marks them as motion photos"`
	Overwrite         *bool  `json:"overwrite,omitempty" jsonschema:"replace an existing video with different content"`
}

// ExtractOutput is the output schema for the extract_file tool.
type ExtractOutput struct {
	Outcome    string `json:"outcome"`
	Extracted  bool   `json:"extracted"`
	OutputPath string `json:"output_path,omitempty"`
	VideoSize  int64  `json:"video_size"`
	Digest     string `json:"digest,omitempty"`
	Unchanged  bool   `json:"unchanged,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_file",
		Description: "Report whether a JPEG carries an embedded video and where it starts, without writing anything",
	}, s.handleClassify)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_file",
		Description: "Write the video embedded in a motion photo to an .mp4 file",
	}, s.handleExtract)
}

// handleClassify handles the classify_file tool invocation.
func (s *Server) handleClassify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	if input.Path == "" {
		return nil, ClassifyOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	settings := s.extractSettings()
	if input.RequireMotionFlag != nil {
		settings.RequireMotionFlag = *input.RequireMotionFlag
	}
	if input.TailWindow != nil {
		settings.TailWindow = max(*input.TailWindow, domain.Unbounded)
	}

	c, err := s.ports.Extraction.Classify(ctx, input.Path, settings)
	if err != nil {
		return nil, ClassifyOutput{}, err
	}

	output := ClassifyOutput{
		Path:            c.Path,
		Outcome:         c.Outcome.String(),
		Description:     c.Outcome.Description(),
		FileSize:        c.FileSize,
		Boundary:        c.Boundary,
		ContainerOffset: c.ContainerOffset,
		VideoSize:       c.VideoSize,
		XMPPackets:      c.XMPPackets,
		TailBytes:       c.Probe.Remaining,
	}
	for _, hit := range c.Probe.Hits {
		output.Signatures = append(output.Signatures, fmt.Sprintf("%s@%d", hit.Signature, hit.Offset))
	}

	return nil, output, nil
}

// handleExtract handles the extract_file tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	if input.Path == "" {
		return nil, ExtractOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	settings := s.extractSettings()
	if input.RequireMotionFlag != nil {
		settings.RequireMotionFlag = *input.RequireMotionFlag
	}
	if input.Overwrite != nil {
		settings.Overwrite = *input.Overwrite
	}
	if input.OutputDir != "" {
		settings.OutputDir = input.OutputDir
	}
	outputDir := settings.ResolveOutputDir(filepath.Dir(input.Path))

	rec, err := s.ports.Extraction.ExtractFile(ctx, input.Path, outputDir, settings)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	return nil, ExtractOutput{
		Outcome:    rec.Outcome.String(),
		Extracted:  rec.Extracted(),
		OutputPath: rec.OutputPath,
		VideoSize:  rec.VideoSize,
		Digest:     rec.Digest,
		Unchanged:  rec.Unchanged,
	}, nil
}
