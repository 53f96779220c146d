package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lectern-reader/lectern/internal/citation"
	"github.com/lectern-reader/lectern/internal/docscan"
	"github.com/lectern-reader/lectern/internal/ui"
)

var scanResolveFlag bool

// scannedCitation is one citation occurrence in the JSON scan output.
type scannedCitation struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Citation string `json:"citation"`
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
	Status   string `json:"status,omitempty"`
	Passages int    `json:"passages,omitempty"`
}

var scanCmd = &cobra.Command{
	Use:   "scan <file|dir>...",
	Short: "Find citations in markdown documents",
	Long: `Find citation wikilinks in markdown documents.

Citations inside code blocks and inline code are ignored. With --resolve,
each citation is also resolved against the library and its status shown.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := collectMarkdownFiles(args)
		if err != nil {
			return handleError(ErrFileNotFound, err, "")
		}

		var found []scannedCitation
		for _, file := range files {
			content, err := os.ReadFile(file)
			if err != nil {
				return handleError(ErrFileReadError, err, "")
			}
			for _, c := range docscan.Scan(content) {
				sc := scannedCitation{
					File:     file,
					Line:     c.Line,
					Citation: c.Raw,
					Valid:    c.Err == nil,
				}
				if c.Err != nil {
					sc.Error = c.Err.Error()
				}
				found = append(found, sc)
			}
		}

		if scanResolveFlag {
			if err := resolveScanned(cmd, found); err != nil {
				return err
			}
		}

		if isJSONOutput() {
			outputSuccess(found, &Meta{Count: len(found)})
			return nil
		}

		if len(found) == 0 {
			fmt.Println(ui.Hint("no citations found"))
			return nil
		}

		table := ui.NewTable(4)
		for _, sc := range found {
			status := ""
			switch {
			case !sc.Valid:
				status = ui.SymbolError
			case sc.Status != "":
				status = sc.Status
			}
			table.AddRow(
				ui.FilePath(fmt.Sprintf("%s:%d", sc.File, sc.Line)),
				sc.Citation,
				status,
				ui.Hint(sc.Error),
			)
		}
		fmt.Print(table.String())
		fmt.Println(ui.Hint(fmt.Sprintf("%d citations", len(found))))
		return nil
	},
}

// resolveScanned resolves each valid scanned citation against the library.
func resolveScanned(cmd *cobra.Command, found []scannedCitation) error {
	lib, err := openLibrary()
	if err != nil {
		return handleError(ErrLibraryError, err, "")
	}
	defer lib.Close()
	r := newResolver(lib)

	for i := range found {
		if !found[i].Valid {
			continue
		}
		link, err := citation.Parse(found[i].Citation)
		if err != nil {
			continue
		}
		res := r.Resolve(cmd.Context(), link)
		found[i].Status = res.Status.String()
		found[i].Passages = len(res.Passages)
	}
	return nil
}

// collectMarkdownFiles expands the argument list into markdown file paths.
// Directories are walked recursively.
func collectMarkdownFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != arg {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".md") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func init() {
	scanCmd.Flags().BoolVar(&scanResolveFlag, "resolve", false, "resolve each citation against the library")
	rootCmd.AddCommand(scanCmd)
}
