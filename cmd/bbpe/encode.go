package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var (
		text   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text to token ids",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			input := text
			if len(args) == 1 {
				input = args[0]
			}
			if input == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				input = string(data)
			}

			if format != "ids" && format != "json" {
				return fmt.Errorf("--format must be 'ids' or 'json'")
			}

			tok, err := loadTokenizer(cfg)
			if err != nil {
				return err
			}

			ids, err := tok.Encode(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				return enc.Encode(map[string]any{"ids": ids, "count": len(ids)})
			default:
				parts := make([]string, len(ids))
				for i, id := range ids {
					parts[i] = fmt.Sprint(id)
				}
				_, err = fmt.Fprintln(out, strings.Join(parts, " "))
				return err
			}
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to encode ('-' reads stdin)")
	cmd.Flags().StringVar(&format, "format", "ids", "Output format: ids|json")

	return cmd
}
