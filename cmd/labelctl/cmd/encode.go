package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"labelprint/internal/config"
	"labelprint/internal/domain/printing"
	"labelprint/pkg/labelcmd"
	"labelprint/pkg/logger"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <base-name>",
	Short: "Render label codes as TSPL or ZPL commands",
	Example: `  labelctl encode PA00001 -n 10 --dialect tspl -o labels.prn
  labelctl encode PA00001 -n 2 --dialect zpl --symbology qrcode`,
	Args:    cobra.ExactArgs(1),
	PreRunE: bindPrintingFlags,
	RunE:    runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	addPrintingFlags(encodeCmd.Flags())
	encodeCmd.Flags().StringP("out", "o", "-", "output file, - for stdout")
}

// addPrintingFlags registers the flags shared by encode and send.
func addPrintingFlags(fs *pflag.FlagSet) {
	fs.IntP("quantity", "n", 1, "number of labels")
	fs.String("dialect", "tspl", "printer language (tspl, zpl)")
	fs.String("symbology", "barcode", "code type (barcode, qrcode, datamatrix)")
	fs.Bool("border", true, "draw a border around each label")
}

// bindPrintingFlags lets explicit flags override the printing config keys.
func bindPrintingFlags(cmd *cobra.Command, _ []string) error {
	for key, flag := range map[string]string{
		"printing.default_dialect":   "dialect",
		"printing.default_symbology": "symbology",
		"printing.border":            "border",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

// encodeLabels builds the command batch for a base name from flags and config.
func encodeLabels(ctx context.Context, cmd *cobra.Command, cfg *config.Config, baseName string) (*printing.Encoded, error) {
	quantity, _ := cmd.Flags().GetInt("quantity")

	dialect, err := labelcmd.ParseDialect(cfg.Printing.DefaultDialect)
	if err != nil {
		return nil, err
	}
	symbology, err := labelcmd.ParseSymbology(cfg.Printing.DefaultSymbology)
	if err != nil {
		return nil, err
	}

	// Encode needs no stores when no config id is given.
	svc := printing.NewService(nil, nil, nil, nil, nil, printing.Options{
		MaxQuantity:      cfg.Printing.MaxQuantity,
		DefaultDialect:   dialect,
		DefaultSymbology: symbology,
		Border:           cfg.Printing.Border,
		DefaultPort:      cfg.Printing.DefaultPort,
	})
	return svc.Encode(ctx, printing.Request{BaseName: baseName, Quantity: quantity})
}

func runEncode(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd.Context())
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	enc, err := encodeLabels(ctx, cmd, cfg, args[0])
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("out")
	w, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if _, err := w.Write(enc.Batch.Bytes()); err != nil {
		_ = w.Close()
		return fmt.Errorf("write commands: %w", err)
	}
	if err := w.Close(); err != nil {
		return err
	}

	logger.Info(ctx, "labels encoded",
		"base_name", enc.BaseName,
		"labels", enc.Batch.Len(),
		"dialect", enc.Batch.Dialect,
		"suggested_name", enc.FileName,
	)
	return nil
}
