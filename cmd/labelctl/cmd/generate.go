package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"labelprint/internal/core/apperror"
	"labelprint/pkg/sequence"
)

var generateCmd = &cobra.Command{
	Use:   "generate <base-name>",
	Short: "Expand a numbered base name into label codes",
	Example: `  labelctl generate PA00001 -n 5
  labelctl generate ITEM-0098 -n 3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("quantity", "n", 1, "number of codes")
	generateCmd.Flags().Bool("json", false, "print a JSON array")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	quantity, _ := cmd.Flags().GetInt("quantity")
	asJSON, _ := cmd.Flags().GetBool("json")

	codes, err := sequence.Generate(args[0], quantity)
	if err != nil {
		if sequence.Validate(args[0]) != nil {
			return apperror.NewInvalidPattern(args[0])
		}
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(codes)
	}
	for _, code := range codes {
		fmt.Fprintln(out, code)
	}
	return nil
}
