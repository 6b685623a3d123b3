package printing

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"labelprint/internal/core/apperror"
	"labelprint/internal/core/id"
	"labelprint/internal/domain/labelconfig"
	"labelprint/internal/domain/labels"
	"labelprint/internal/domain/printhistory"
	"labelprint/pkg/labelcmd"
	"labelprint/pkg/labelcmd/preview"
	"labelprint/pkg/logger"
	"labelprint/pkg/sequence"
)

// ConfigGenerator expands a stored configuration. Satisfied by
// *labelconfig.Service.
type ConfigGenerator interface {
	Generate(ctx context.Context, configID id.ID, save bool) (*labelconfig.GenerateResult, error)
}

// LabelSaver stores generated codes. Satisfied by *labels.Service.
type LabelSaver interface {
	Save(ctx context.Context, items []*labels.GeneratedLabel) (int64, error)
}

// Recorder stores print jobs. Satisfied by *printhistory.Service.
type Recorder interface {
	Record(ctx context.Context, h *printhistory.PrintHistory) error
}

// Sender delivers a batch to a network printer and reports how many
// documents got through.
type Sender interface {
	Send(ctx context.Context, addr string, batch labelcmd.Batch) (int, error)
}

// FileStore keeps command files for download.
type FileStore interface {
	SaveCommandFile(ctx context.Context, name string, data []byte) (File, error)
}

// Options are the service defaults.
type Options struct {
	MaxQuantity      int
	DefaultDialect   labelcmd.Dialect
	DefaultSymbology labelcmd.Symbology
	Border           bool
	DefaultPort      int
}

// Service encodes and delivers label jobs.
type Service struct {
	configs ConfigGenerator
	labels  LabelSaver
	history Recorder
	sender  Sender
	files   FileStore
	opts    Options
	now     func() time.Time
}

// NewService creates a new printing service. sender and files may be nil,
// which disables the matching target.
func NewService(configs ConfigGenerator, saver LabelSaver, history Recorder, sender Sender, files FileStore, opts Options) *Service {
	if opts.DefaultDialect == "" {
		opts.DefaultDialect = labelcmd.DialectTSPL
	}
	if opts.DefaultSymbology == "" {
		opts.DefaultSymbology = labelcmd.Barcode
	}
	if opts.DefaultPort == 0 {
		opts.DefaultPort = 9100
	}
	return &Service{
		configs: configs,
		labels:  saver,
		history: history,
		sender:  sender,
		files:   files,
		opts:    opts,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Encode generates the codes of req and encodes them. Nothing is stored.
func (s *Service) Encode(ctx context.Context, req Request) (*Encoded, error) {
	var (
		codes    []string
		baseName = strings.TrimSpace(req.BaseName)
		quantity = req.Quantity
		codeType = req.CodeType
	)

	if req.ConfigID != nil {
		res, err := s.configs.Generate(ctx, *req.ConfigID, false)
		if err != nil {
			return nil, err
		}
		codes = res.Codes
		baseName = res.Config.BaseName
		quantity = res.Config.Quantity
		if codeType == "" {
			codeType = string(res.Config.CodeType)
		}
	} else {
		if baseName == "" {
			return nil, apperror.NewValidation("baseName is required")
		}
		if quantity < 1 || quantity > s.opts.MaxQuantity {
			return nil, apperror.NewValidation(fmt.Sprintf("quantity must be between 1 and %d", s.opts.MaxQuantity)).
				WithDetail("quantity", quantity)
		}
		var err error
		codes, err = sequence.Generate(baseName, quantity)
		if err != nil {
			return nil, mapSequenceError(baseName, err)
		}
	}

	sym := s.opts.DefaultSymbology
	if codeType != "" {
		var err error
		if sym, err = labelcmd.ParseSymbology(codeType); err != nil {
			return nil, apperror.NewUnsupportedSymbology(codeType).WithCause(err)
		}
	}

	dialect := s.opts.DefaultDialect
	if req.Dialect != "" {
		var err error
		if dialect, err = labelcmd.ParseDialect(req.Dialect); err != nil {
			return nil, apperror.NewUnsupportedDialect(req.Dialect).WithCause(err)
		}
	}

	for _, code := range codes {
		if err := labelcmd.CheckData(dialect, code); err != nil {
			return nil, apperror.NewUnsafeData(code, string(dialect)).WithCause(err)
		}
	}

	border := s.opts.Border
	if req.Border != nil {
		border = *req.Border
	}
	enc, err := labelcmd.NewEncoder(dialect, labelcmd.WithBorder(border))
	if err != nil {
		return nil, apperror.NewUnsupportedDialect(string(dialect)).WithCause(err)
	}
	batch, err := enc.EncodeBatch(codes, sym)
	if err != nil {
		return nil, apperror.NewUnsupportedSymbology(string(sym)).WithCause(err)
	}

	logger.Debug(ctx, "labels encoded", "base_name", baseName, "count", quantity, "dialect", dialect, "code_type", sym)

	return &Encoded{
		Batch:       batch,
		Codes:       codes,
		BaseName:    baseName,
		Symbology:   sym,
		ConfigID:    req.ConfigID,
		FileName:    fileName(baseName, len(codes), dialect),
		ContentType: CommandContentType,
	}, nil
}

// Print encodes req, stores the codes and delivers them to req.Target. The
// job is recorded in print history whatever the delivery outcome; a printer
// failure is returned together with the result.
func (s *Service) Print(ctx context.Context, req JobRequest) (*JobResult, error) {
	switch req.Target {
	case TargetDownload:
		if s.files == nil {
			return nil, apperror.NewValidation("download target is not configured")
		}
	case TargetNetwork:
		if s.sender == nil {
			return nil, apperror.NewValidation("network target is not configured")
		}
		if strings.TrimSpace(req.PrinterAddress) == "" {
			return nil, apperror.NewValidation("printerAddress is required for network printing")
		}
	default:
		return nil, apperror.NewValidation("unknown target").WithDetail("target", req.Target)
	}

	enc, err := s.Encode(ctx, req.Request)
	if err != nil {
		return nil, err
	}

	p, err := sequence.Parse(enc.BaseName)
	if err != nil {
		return nil, mapSequenceError(enc.BaseName, err)
	}
	if _, err := s.labels.Save(ctx, labels.FromCodes(p, enc.Codes, enc.Symbology, enc.ConfigID, s.now())); err != nil {
		return nil, err
	}

	h := &printhistory.PrintHistory{
		ConfigID:       enc.ConfigID,
		BaseName:       enc.BaseName,
		Quantity:       len(enc.Codes),
		CodeType:       enc.Symbology,
		Dialect:        string(enc.Batch.Dialect),
		GeneratedCodes: enc.Codes,
		PrinterName:    req.PrinterName,
	}
	res := &JobResult{History: h, Codes: enc.Codes}

	started := time.Now()
	var sendErr error
	switch req.Target {
	case TargetDownload:
		h.ConnectionType = printhistory.ConnectionDownload
		file, err := s.files.SaveCommandFile(ctx, enc.FileName, enc.Batch.Bytes())
		if err != nil {
			return nil, apperror.NewStorage(err)
		}
		res.File = &file
		h.FileKey = file.Key
		h.PrintedCount = len(enc.Codes)

	case TargetNetwork:
		h.ConnectionType = printhistory.ConnectionNetwork
		addr := s.address(req.PrinterAddress)
		if h.PrinterName == "" {
			h.PrinterName = addr
		}
		h.DeviceInfo = h.DeviceInfo.With("address", addr).With("dialect", string(enc.Batch.Dialect))
		h.PrintedCount, sendErr = s.sender.Send(ctx, addr, enc.Batch)
	}
	h.DurationMS = time.Since(started).Milliseconds()
	h.Status = outcome(h.PrintedCount, len(enc.Codes), sendErr)
	if sendErr != nil {
		h.ErrorMessage = sendErr.Error()
	}

	// the job is recorded even when the caller has gone away
	recordCtx := context.WithoutCancel(ctx)
	if err := s.history.Record(recordCtx, h); err != nil {
		return nil, err
	}

	if sendErr != nil {
		return res, apperror.NewPrinterUnavailable(h.PrinterName, sendErr).
			WithDetail("printed", h.PrintedCount).
			WithDetail("historyId", h.ID)
	}
	return res, nil
}

// Preview parses TSPL commands into drawable elements.
func (s *Service) Preview(text string) (preview.Label, error) {
	if strings.TrimSpace(text) == "" {
		return preview.Label{}, apperror.NewValidation("tsplCode is required")
	}
	return preview.ParseTSPL(text), nil
}

// address appends the default raw port when addr has none.
func (s *Service) address(addr string) string {
	addr = strings.TrimSpace(addr)
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, strconv.Itoa(s.opts.DefaultPort))
}

func outcome(printed, total int, err error) printhistory.Status {
	switch {
	case err == nil && printed == total:
		return printhistory.StatusSuccess
	case printed > 0:
		return printhistory.StatusPartial
	default:
		return printhistory.StatusFailed
	}
}

func mapSequenceError(baseName string, err error) error {
	switch {
	case errors.Is(err, sequence.ErrInvalidPattern):
		return apperror.NewInvalidPattern(baseName).WithCause(err)
	case errors.Is(err, sequence.ErrOverflow), errors.Is(err, sequence.ErrNegativeQuantity):
		return apperror.NewValidation(err.Error()).WithCause(err)
	}
	return err
}

// fileName is "<base>_<count>labels<ext>", e.g. "LBL001_10labels.prn".
func fileName(baseName string, count int, d labelcmd.Dialect) string {
	return fmt.Sprintf("%s_%dlabels%s", baseName, count, d.FileExtension())
}
