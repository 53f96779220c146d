package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lectern-reader/lectern/internal/citation"
	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/ui"
	"github.com/lectern-reader/lectern/internal/wikilink"
)

var readVersions []string

var readCmd = &cobra.Command{
	Use:   "read <citation>",
	Short: "Resolve a citation and display its passages",
	Long: `Resolve a citation and display its passages.

The citation may be bare or wrapped in wikilink brackets:

  lectern read "romans 3:16-18 (kjv, niv)"
  lectern read "[[john 3:16,17]]"
  lectern read "sunzi::the art of war 1:2; psalms 23"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.Join(args, " ")

		payload, _, ok := wikilink.ParseExact(raw)
		if !ok {
			return handleErrorMsg(ErrCitationInvalid,
				fmt.Sprintf("not a citation: %q", raw),
				"write a citation like \"romans 3:16-18 (kjv)\"")
		}

		link, err := citation.Parse(payload)
		if err != nil {
			return handleError(ErrCitationInvalid, err,
				"write a citation like \"romans 3:16-18 (kjv)\"")
		}
		if len(readVersions) > 0 {
			for i := range link.References {
				link.References[i].Versions = append([]string(nil), readVersions...)
			}
		}
		applyDefaultVersions(&link)

		lib, err := openLibrary()
		if err != nil {
			return handleError(ErrLibraryError, err, "")
		}
		defer lib.Close()

		start := time.Now()
		res := newResolver(lib).Resolve(cmd.Context(), link)
		elapsed := time.Since(start)

		if isJSONOutput() {
			var warnings []Warning
			for _, w := range res.Warnings {
				warnings = append(warnings, Warning{Code: WarnQueryFailed, Message: w, Citation: payload})
			}
			if res.VersionNotFound {
				warnings = append(warnings, Warning{Code: WarnVersionNotFound, Citation: payload,
					Message: "requested version unavailable"})
			}
			outputSuccessWithWarnings(res, warnings, &Meta{
				Count:       len(res.Passages),
				QueryTimeMs: elapsed.Milliseconds(),
			})
			return nil
		}

		fmt.Print(ui.RenderResult(res, ui.NewDisplayContext()))
		return nil
	},
}

// applyDefaultVersions fills configured default versions into references
// that name none.
func applyDefaultVersions(link *model.Wikilink) {
	if len(cfg.DefaultVersions) == 0 {
		return
	}
	for i := range link.References {
		if len(link.References[i].Versions) == 0 {
			link.References[i].Versions = append([]string(nil), cfg.DefaultVersions...)
		}
	}
}

func init() {
	readCmd.Flags().StringSliceVar(&readVersions, "versions", nil, "version codes to read, overriding the citation")
	rootCmd.AddCommand(readCmd)
}
