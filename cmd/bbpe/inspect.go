package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show tokenizer vocabulary and merge table shape",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			tok, err := loadTokenizer(cfg)
			if err != nil {
				return err
			}

			specials := tok.Specials()
			out := cmd.OutOrStdout()

			if format == "json" {
				names := make([]string, len(specials))
				for i, sp := range specials {
					names[i] = sp.Content
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"path":           cfg.Paths.TokenizerPath,
					"vocab_size":     tok.VocabSize(),
					"merge_count":    tok.MergeCount(),
					"pre_tokenizers": tok.Stages(),
					"special_tokens": names,
				})
			}

			fmt.Fprintf(out, "path:           %s\n", cfg.Paths.TokenizerPath)
			fmt.Fprintf(out, "vocab size:     %d\n", tok.VocabSize())
			fmt.Fprintf(out, "merges:         %d\n", tok.MergeCount())
			fmt.Fprintf(out, "pre-tokenizers: %v\n", tok.Stages())
			fmt.Fprintf(out, "special tokens: %d\n", len(specials))
			for _, sp := range specials {
				fmt.Fprintf(out, "  %6d  %s\n", sp.ID, sp.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")

	return cmd
}
