package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/internal/core/apperror"
	"labelprint/pkg/labelcmd"
)

type memRepo map[string]json.RawMessage

func (m memRepo) Get(_ context.Context, key string) (json.RawMessage, error) {
	return m[key], nil
}

func (m memRepo) Put(_ context.Context, key string, value json.RawMessage) error {
	m[key] = value
	return nil
}

func TestService_Printer_Defaults(t *testing.T) {
	svc := NewService(memRepo{})

	got, err := svc.Printer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
	assert.Equal(t, "TSC Alpha 40L", got.DefaultPrinter)
	assert.Equal(t, 9600, got.BaudRate)
	assert.Equal(t, 300, got.PrintDelayMS)
}

func TestService_Printer_PartialDocument(t *testing.T) {
	repo := memRepo{PrinterKey: json.RawMessage(`{"defaultPrinter":"Zebra ZD421","defaultDialect":"zpl"}`)}
	got, err := NewService(repo).Printer(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Zebra ZD421", got.DefaultPrinter)
	assert.Equal(t, labelcmd.DialectZPL, got.DefaultDialect)
	assert.Equal(t, 50, got.LabelSize.Width)
	assert.True(t, got.AutoReconnect)
}

func TestService_UpdatePrinter(t *testing.T) {
	repo := memRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	in := Defaults()
	in.DefaultCodeType = labelcmd.DataMatrix
	in.BaudRate = 115200

	saved, err := svc.UpdatePrinter(ctx, in)
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := svc.Printer(ctx)
	require.NoError(t, err)
	assert.Equal(t, labelcmd.DataMatrix, got.DefaultCodeType)
	assert.Equal(t, 115200, got.BaudRate)
}

func TestPrinterSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *PrinterSettings)
		code   string
	}{
		{"dialect", func(s *PrinterSettings) { s.DefaultDialect = "epl" }, apperror.CodeUnsupportedDialect},
		{"code type", func(s *PrinterSettings) { s.DefaultCodeType = "aztec" }, apperror.CodeUnsupportedSymbology},
		{"size", func(s *PrinterSettings) { s.LabelSize.Width = 0 }, apperror.CodeValidation},
		{"baud", func(s *PrinterSettings) { s.BaudRate = 1234 }, apperror.CodeValidation},
		{"delay", func(s *PrinterSettings) { s.PrintDelayMS = -1 }, apperror.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			err := s.Validate()
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}
