package printing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/internal/core/apperror"
	"labelprint/internal/core/id"
	"labelprint/internal/domain/labelconfig"
	"labelprint/internal/domain/labels"
	"labelprint/internal/domain/printhistory"
	"labelprint/pkg/labelcmd"
)

type fakeConfigs struct {
	cfg *labelconfig.LabelConfig
}

func (f *fakeConfigs) Generate(_ context.Context, configID id.ID, _ bool) (*labelconfig.GenerateResult, error) {
	if f.cfg == nil || f.cfg.ID != configID {
		return nil, apperror.NewNotFound("label_config", configID)
	}
	codes, err := f.cfg.GenerateCodes()
	if err != nil {
		return nil, err
	}
	return &labelconfig.GenerateResult{Config: f.cfg, Codes: codes}, nil
}

type fakeSaver struct{ saved []*labels.GeneratedLabel }

func (f *fakeSaver) Save(_ context.Context, items []*labels.GeneratedLabel) (int64, error) {
	f.saved = append(f.saved, items...)
	return int64(len(items)), nil
}

type fakeRecorder struct{ jobs []*printhistory.PrintHistory }

func (f *fakeRecorder) Record(_ context.Context, h *printhistory.PrintHistory) error {
	h.Normalize()
	if err := h.Validate(); err != nil {
		return err
	}
	h.ID = id.New()
	f.jobs = append(f.jobs, h)
	return nil
}

type fakeSender struct {
	addr    string
	batches []labelcmd.Batch
	printed int
	err     error
}

func (f *fakeSender) Send(_ context.Context, addr string, batch labelcmd.Batch) (int, error) {
	f.addr = addr
	f.batches = append(f.batches, batch)
	if f.err != nil {
		return f.printed, f.err
	}
	return batch.Len(), nil
}

type fakeFiles struct{ data map[string][]byte }

func (f *fakeFiles) SaveCommandFile(_ context.Context, name string, data []byte) (File, error) {
	if f.data == nil {
		f.data = map[string][]byte{}
	}
	f.data[name] = data
	return File{Key: "k-" + name, Name: name, URL: "/api/v1/files/k-" + name, Size: len(data)}, nil
}

type fixture struct {
	svc      *Service
	configs  *fakeConfigs
	saver    *fakeSaver
	recorder *fakeRecorder
	sender   *fakeSender
	files    *fakeFiles
}

func newFixture() *fixture {
	f := &fixture{
		configs:  &fakeConfigs{},
		saver:    &fakeSaver{},
		recorder: &fakeRecorder{},
		sender:   &fakeSender{},
		files:    &fakeFiles{},
	}
	f.svc = NewService(f.configs, f.saver, f.recorder, f.sender, f.files, Options{
		MaxQuantity: 1000,
		Border:      true,
	})
	return f
}

func TestService_Encode(t *testing.T) {
	f := newFixture()

	enc, err := f.svc.Encode(context.Background(), Request{BaseName: "LBL001", Quantity: 3, CodeType: "qrcode", Dialect: "zpl"})
	require.NoError(t, err)

	assert.Equal(t, []string{"LBL001", "LBL002", "LBL003"}, enc.Codes)
	assert.Equal(t, labelcmd.DialectZPL, enc.Batch.Dialect)
	assert.Equal(t, labelcmd.QRCode, enc.Symbology)
	assert.Equal(t, "LBL001_3labels.zpl", enc.FileName)
	assert.Equal(t, 3, enc.Batch.Len())
	assert.Contains(t, enc.Batch.String(), "^GB368,368,2^FS")
}

func TestService_Encode_Defaults(t *testing.T) {
	f := newFixture()
	noBorder := false

	enc, err := f.svc.Encode(context.Background(), Request{BaseName: "A1", Quantity: 1, Border: &noBorder})
	require.NoError(t, err)
	assert.Equal(t, labelcmd.DialectTSPL, enc.Batch.Dialect)
	assert.Equal(t, labelcmd.Barcode, enc.Symbology)
	assert.NotContains(t, enc.Batch.String(), "BOX")
}

func TestService_Encode_FromConfig(t *testing.T) {
	f := newFixture()
	cfg, err := labelconfig.New("Shelf", "SH-0098", 3, labelcmd.DataMatrix, "test", f.svc.now())
	require.NoError(t, err)
	f.configs.cfg = cfg

	enc, err := f.svc.Encode(context.Background(), Request{ConfigID: &cfg.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"SH-0098", "SH-0099", "SH-0100"}, enc.Codes)
	assert.Equal(t, labelcmd.DataMatrix, enc.Symbology)
	assert.Equal(t, &cfg.ID, enc.ConfigID)
}

func TestService_Encode_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		code string
	}{
		{"missing base", Request{Quantity: 1}, apperror.CodeValidation},
		{"zero quantity", Request{BaseName: "A1"}, apperror.CodeValidation},
		{"too many", Request{BaseName: "A1", Quantity: 1001}, apperror.CodeValidation},
		{"no digits", Request{BaseName: "ABC", Quantity: 1}, apperror.CodeInvalidPattern},
		{"bad symbology", Request{BaseName: "A1", Quantity: 1, CodeType: "pdf417"}, apperror.CodeUnsupportedSymbology},
		{"bad dialect", Request{BaseName: "A1", Quantity: 1, Dialect: "epl"}, apperror.CodeUnsupportedDialect},
		{"quote in tspl", Request{BaseName: `A"1`, Quantity: 1}, apperror.CodeUnsafeData},
		{"caret in zpl", Request{BaseName: "A^1", Quantity: 1, Dialect: "zpl"}, apperror.CodeUnsafeData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Encode(ctx, tt.req)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestService_Print_Download(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Print(context.Background(), JobRequest{
		Request: Request{BaseName: "LBL001", Quantity: 2},
		Target:  TargetDownload,
	})
	require.NoError(t, err)

	require.NotNil(t, res.File)
	assert.Equal(t, "LBL001_2labels.prn", res.File.Name)
	assert.True(t, strings.HasPrefix(string(f.files.data["LBL001_2labels.prn"]), "SIZE 50 mm, 50 mm\r\n"))
	assert.Len(t, f.saver.saved, 2)

	require.Len(t, f.recorder.jobs, 1)
	job := f.recorder.jobs[0]
	assert.Equal(t, printhistory.ConnectionDownload, job.ConnectionType)
	assert.Equal(t, printhistory.StatusSuccess, job.Status)
	assert.Equal(t, 2, job.PrintedCount)
	assert.Equal(t, res.File.Key, job.FileKey)
	assert.Equal(t, "tspl", job.Dialect)
}

func TestService_Print_Network(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Print(context.Background(), JobRequest{
		Request:        Request{BaseName: "N10", Quantity: 3, Dialect: "zpl"},
		Target:         TargetNetwork,
		PrinterAddress: "10.0.0.5",
	})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5:9100", f.sender.addr)
	assert.Nil(t, res.File)
	job := f.recorder.jobs[0]
	assert.Equal(t, printhistory.ConnectionNetwork, job.ConnectionType)
	assert.Equal(t, printhistory.StatusSuccess, job.Status)
	assert.Equal(t, "10.0.0.5:9100", job.PrinterName)
	assert.Equal(t, "10.0.0.5:9100", job.DeviceInfo.String("address"))
	assert.Equal(t, "zpl", job.DeviceInfo.String("dialect"))
}

func TestService_Print_NetworkPartial(t *testing.T) {
	f := newFixture()
	f.sender.printed = 1
	f.sender.err = errors.New("connection reset")

	res, err := f.svc.Print(context.Background(), JobRequest{
		Request:        Request{BaseName: "P1", Quantity: 3},
		Target:         TargetNetwork,
		PrinterAddress: "printer.local:9101",
		PrinterName:    "Dock printer",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePrinterUnavailable, appErr.Code)

	require.NotNil(t, res)
	job := res.History
	assert.Equal(t, printhistory.StatusPartial, job.Status)
	assert.Equal(t, 1, job.PrintedCount)
	assert.Equal(t, "connection reset", job.ErrorMessage)
	assert.Equal(t, "printer.local:9101", f.sender.addr)
	assert.Equal(t, []string{"P1"}, job.PrintedCodes())
}

func TestService_Print_NetworkFailed(t *testing.T) {
	f := newFixture()
	f.sender.err = errors.New("no route to host")

	res, err := f.svc.Print(context.Background(), JobRequest{
		Request:        Request{BaseName: "F1", Quantity: 2},
		Target:         TargetNetwork,
		PrinterAddress: "10.0.0.9",
	})
	require.Error(t, err)
	assert.Equal(t, printhistory.StatusFailed, res.History.Status)
	assert.Equal(t, 0, res.History.PrintedCount)
	assert.Len(t, f.recorder.jobs, 1)
}

func TestService_Print_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Print(ctx, JobRequest{Request: Request{BaseName: "A1", Quantity: 1}, Target: "fax"})
	assert.Error(t, err)

	_, err = f.svc.Print(ctx, JobRequest{Request: Request{BaseName: "A1", Quantity: 1}, Target: TargetNetwork})
	assert.Error(t, err)

	noTargets := NewService(f.configs, f.saver, f.recorder, nil, nil, Options{MaxQuantity: 10})
	_, err = noTargets.Print(ctx, JobRequest{Request: Request{BaseName: "A1", Quantity: 1}, Target: TargetDownload})
	assert.Error(t, err)

	assert.Empty(t, f.recorder.jobs)
}

func TestService_Preview(t *testing.T) {
	svc := newFixture().svc

	label, err := svc.Preview("SIZE 50 mm, 30 mm\nTEXT 10,10,\"3\",0,1,1,\"Hi\"\n")
	require.NoError(t, err)
	assert.Len(t, label.Elements, 1)

	_, err = svc.Preview("  ")
	assert.Error(t, err)
}
