package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <id>...",
		Short: "Decode token ids back to text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			tok, err := loadTokenizer(cfg)
			if err != nil {
				return err
			}

			text, err := tok.Decode(ids)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	return cmd
}

// parseIDs accepts ids as separate arguments, and also splits any argument
// on spaces and commas so pasted id lists work unquoted or quoted.
func parseIDs(args []string) ([]int32, error) {
	var ids []int32
	for _, arg := range args {
		for _, field := range strings.FieldsFunc(arg, func(r rune) bool {
			return r == ' ' || r == ','
		}) {
			n, err := strconv.ParseInt(field, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid token id %q", field)
			}
			ids = append(ids, int32(n))
		}
	}
	return ids, nil
}
