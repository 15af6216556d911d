package cli

import (
	"github.com/spf13/cobra"

	"github.com/slkpatel/json2toon/toon"
)

// NewDecodeCmd creates the decode command: TOON in, JSON out.
func NewDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Convert TOON back to JSON",
		Long: `Decode reads TOON text from a file or stdin and writes JSON.

Malformed structural headers fail with the offending line number; the
process exits non-zero and writes no partial output.`,
		Example: `  json2toon decode data.toon
  cat data.toon | json2toon decode --compact`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			indent := "  "
			if compact, _ := cmd.Flags().GetBool("compact"); compact {
				indent = ""
			}

			out, err := toon.TOONToJSON(string(data), indent)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			return writeOutput(output, string(out))
		},
	}

	cmd.Flags().Bool("compact", false, "emit compact JSON instead of pretty-printed")
	cmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	return cmd
}
