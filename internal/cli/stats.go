package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/slkpatel/json2toon/toon"
)

// NewStatsCmd creates the stats command: report savings without emitting
// the converted text.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Report estimated token savings for a JSON document",
		Example: `  json2toon stats data.json
  curl -s https://api.example.com/users | json2toon stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := encodeOptions(cmd)
			if err != nil {
				return err
			}

			data, err := readInput(args)
			if err != nil {
				return err
			}

			_, stats, err := toon.JSONToTOONWithStats(data, opts)
			if err != nil {
				return err
			}
			printStats(os.Stdout, stats)
			return nil
		},
	}

	cmd.Flags().IntP("indent", "i", 2, "spaces per nesting level")
	cmd.Flags().Bool("sort-keys", false, "render object keys in sorted order")
	cmd.Flags().Bool("stats", true, "")
	_ = cmd.Flags().MarkHidden("stats")

	return cmd
}

// printStats writes the conversion report.
func printStats(w io.Writer, s toon.ConversionStats) {
	fmt.Fprintf(w, "%s\n", dim("── conversion stats ──"))
	fmt.Fprintf(w, "  %s: %d tokens, %d bytes\n", cyan("json"), s.JSONTokenCount, s.JSONSize)
	fmt.Fprintf(w, "  %s: %d tokens, %d bytes\n", cyan("toon"), s.TOONTokenCount, s.TOONSize)
	fmt.Fprintf(w, "  %s: %d tokens (%.2f%%)\n", green("saved"), s.TokensSaved, s.PercentageSaved)
	fmt.Fprintf(w, "  %s: %.3f\n", green("ratio"), s.CompressionRatio)
}
