package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"labelprint/pkg/labelcmd/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Lay out a TSPL command file as JSON elements",
	Example: `  labelctl preview labels.prn
  labelctl encode PA00001 | labelctl preview`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(preview.ParseTSPL(string(data)))
}
