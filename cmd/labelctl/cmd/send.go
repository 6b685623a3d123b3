package cmd

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"labelprint/internal/config"
	"labelprint/internal/infrastructure/transport"
	"labelprint/pkg/logger"
)

var sendCmd = &cobra.Command{
	Use:   "send [base-name]",
	Short: "Print labels on a raw TCP printer",
	Long: `send encodes labels and writes them to a printer listening on a raw TCP
port (9100 unless the address names one). With --file an existing command
file is sent as is.`,
	Example: `  labelctl send PA00001 -n 3 --printer 10.0.0.5
  labelctl send --file labels.prn --printer 10.0.0.5:9100`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindPrintingFlags,
	RunE:    runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	addPrintingFlags(sendCmd.Flags())
	sendCmd.Flags().String("printer", "", "printer address host[:port]")
	sendCmd.Flags().String("file", "", "send this command file instead of encoding")
	sendCmd.Flags().Duration("delay", 0, "pause between labels; sends labels one by one when set")
	_ = sendCmd.MarkFlagRequired("printer")
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd.Context())
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printer, _ := cmd.Flags().GetString("printer")
	addr := withDefaultPort(printer, cfg.Printing.DefaultPort)
	opts := tcpOptions(cfg)

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := readInput(cmd, file)
		if err != nil {
			return err
		}
		sink, err := transport.DialTCP(ctx, addr, opts)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.Send(ctx, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent %d bytes to %s\n", len(data), addr)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("base name or --file is required")
	}
	enc, err := encodeLabels(ctx, cmd, cfg, args[0])
	if err != nil {
		return err
	}

	delay, _ := cmd.Flags().GetDuration("delay")
	dispatcher := transport.NewDispatcher(transport.TCPDialer(opts), transport.Options{
		PerDocument: delay > 0,
		Delay:       delay,
	})

	res, err := dispatcher.Print(ctx, addr, enc.Batch)
	fmt.Fprintf(cmd.OutOrStdout(), "printed %d/%d labels on %s (%s)\n", res.Printed, res.Total, addr, res.State.Status)
	if err != nil {
		return err
	}

	logger.Info(ctx, "labels printed", "printer", addr, "labels", res.Printed)
	return nil
}

func tcpOptions(cfg *config.Config) transport.TCPOptions {
	return transport.TCPOptions{
		DialTimeout:  cfg.Printing.DialTimeout,
		WriteTimeout: cfg.Printing.WriteTimeout,
		ChunkSize:    cfg.Printing.ChunkSize,
	}
}

// withDefaultPort appends port when addr has none.
func withDefaultPort(addr string, port int) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, strconv.Itoa(port))
}
