package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slkpatel/json2toon/internal/config"
	"github.com/slkpatel/json2toon/toon"
)

// NewEncodeCmd creates the encode command: JSON in, TOON out.
func NewEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Convert JSON to TOON",
		Long: `Encode reads JSON from a file or stdin and writes TOON text.

Arrays of uniform flat objects become tabular blocks; everything else uses
the indented generic layout.`,
		Example: `  echo '{"users":[{"id":1,"name":"Alice","role":"admin"}]}' | json2toon encode
  json2toon encode --stats --sort-keys data.json -o data.toon`,
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

			output, _ := cmd.Flags().GetString("output")

			if opts.IncludeStats {
				text, stats, err := toon.JSONToTOONWithStats(data, opts)
				if err != nil {
					return err
				}
				if err := writeOutput(output, text); err != nil {
					return err
				}
				printStats(os.Stderr, stats)
				return nil
			}

			text, err := toon.JSONToTOON(data, opts)
			if err != nil {
				return err
			}
			return writeOutput(output, text)
		},
	}

	cmd.Flags().IntP("indent", "i", 2, "spaces per nesting level")
	cmd.Flags().Bool("sort-keys", false, "render object keys in sorted order")
	cmd.Flags().Bool("stats", false, "print token savings report to stderr")
	cmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	return cmd
}

// encodeOptions merges config-file defaults with explicitly set flags.
func encodeOptions(cmd *cobra.Command) (toon.EncodeOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		return toon.EncodeOptions{}, err
	}

	opts := toon.EncodeOptions{
		IndentWidth:  cfg.Indent,
		SortKeys:     cfg.SortKeys,
		IncludeStats: cfg.Stats,
	}

	if cmd.Flags().Changed("indent") {
		opts.IndentWidth, _ = cmd.Flags().GetInt("indent")
	}
	if opts.IndentWidth <= 0 {
		return toon.EncodeOptions{}, fmt.Errorf("indent must be positive, got %d", opts.IndentWidth)
	}
	if cmd.Flags().Changed("sort-keys") {
		opts.SortKeys, _ = cmd.Flags().GetBool("sort-keys")
	}
	if cmd.Flags().Changed("stats") {
		opts.IncludeStats, _ = cmd.Flags().GetBool("stats")
	}
	return opts, nil
}
