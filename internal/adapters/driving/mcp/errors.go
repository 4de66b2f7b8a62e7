// Package mcp provides an MCP (Model Context Protocol) server adapter for motionsplit.
// It lets AI assistants classify motion photos and extract their videos.
package mcp

import "errors"

// ErrMissingExtractionService is returned when the extraction service is not provided.
var ErrMissingExtractionService = errors.New("mcp: extraction service is required")
