package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/ui"
)

// importResult is the JSON output of an import run.
type importResult struct {
	Files    int `json:"files"`
	Events   int `json:"events"`
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import passage events into the library",
	Long: `Import passage and index events into the local library.

Each file holds events in wire format, either as a JSON array or as one
JSON object per line. Events already present are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		progress := ui.NewProgress("reading event files", len(args))
		var events []model.ContentEvent
		for _, file := range args {
			raw, err := os.ReadFile(file)
			if err != nil {
				progress.Done()
				return handleError(ErrFileReadError, err, "")
			}
			parsed, err := parseEventFile(raw)
			if err != nil {
				progress.Done()
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("%s: %v", file, err),
					"expected a JSON array of events or one event per line")
			}
			events = append(events, parsed...)
			progress.Increment()
		}
		progress.Done()

		lib, err := openLibrary()
		if err != nil {
			return handleError(ErrLibraryError, err, "")
		}
		defer lib.Close()

		imported, err := lib.ImportEvents(events)
		if err != nil {
			return handleError(ErrLibraryError, err, "")
		}
		total, err := lib.CountEvents()
		if err != nil {
			return handleError(ErrLibraryError, err, "")
		}

		result := importResult{
			Files:    len(args),
			Events:   len(events),
			Imported: imported,
			Total:    total,
		}

		if isJSONOutput() {
			outputSuccess(result, &Meta{Count: imported})
			return nil
		}

		fmt.Println(ui.Successf("imported %d of %d events (%d in library)",
			result.Imported, result.Events, result.Total))
		return nil
	},
}

// parseEventFile decodes a JSON array of wire events, or falls back to one
// event per line.
func parseEventFile(raw []byte) ([]model.ContentEvent, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var events []model.ContentEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, err
		}
		return events, nil
	}

	var events []model.ContentEvent
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var ev model.ContentEvent
		if err := json.Unmarshal(text, &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
