package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent extractions",
	Long:  `Lists the most recent extraction records, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	historyLimit int
	historyJSON  bool
)

// historyEntry is the JSON shape of one record.
type historyEntry struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	SourcePath  string    `json:"source_path"`
	OutputPath  string    `json:"output_path,omitempty"`
	Outcome     string    `json:"outcome"`
	VideoSize   int64     `json:"video_size"`
	Digest      string    `json:"digest,omitempty"`
	Unchanged   bool      `json:"unchanged,omitempty"`
	Error       string    `json:"error,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		entries := make([]historyEntry, len(records))
		for i := range records {
			entries[i] = historyEntry{
				ID:          records[i].ID,
				RunID:       records[i].RunID,
				SourcePath:  records[i].SourcePath,
				OutputPath:  records[i].OutputPath,
				Outcome:     records[i].Outcome.String(),
				VideoSize:   records[i].VideoSize,
				Digest:      records[i].Digest,
				Unchanged:   records[i].Unchanged,
				Error:       records[i].Error,
				ProcessedAt: records[i].ProcessedAt,
			}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No extractions recorded yet.")
		return nil
	}

	for i := range records {
		rec := &records[i]
		status := rec.Outcome.Description()
		switch {
		case rec.Error != "":
			status = "failed: " + rec.Error
		case rec.Unchanged:
			status = "unchanged"
		case rec.Extracted():
			status = "extracted " + humanize.Bytes(uint64(max(rec.VideoSize, 0)))
		}
		cmd.Printf("%-14s %-30s %s\n", humanize.Time(rec.ProcessedAt), filepath.Base(rec.SourcePath), status)
	}

	return nil
}
