package dto

import (
	"encoding/json"

	"labelprint/internal/domain/reports"
)

// SummaryResponse renders decimals as JSON numbers.
type SummaryResponse struct {
	TotalPrints      int64       `json:"totalPrints"`
	TotalLabels      int64       `json:"totalLabels"`
	SuccessfulPrints int64       `json:"successfulPrints"`
	FailedPrints     int64       `json:"failedPrints"`
	SuccessRate      json.Number `json:"successRate"`
	BluetoothPrints  int64       `json:"bluetoothPrints"`
	SerialPrints     int64       `json:"serialPrints"`
	USBPrints        int64       `json:"usbPrints"`
	NetworkPrints    int64       `json:"networkPrints"`
	Downloads        int64       `json:"downloads"`
	AvgDuration      json.Number `json:"avgDuration"`
}

// FromSummary converts domain summary to response DTO.
func FromSummary(s *reports.Summary) SummaryResponse {
	return SummaryResponse{
		TotalPrints:      s.TotalPrints,
		TotalLabels:      s.TotalLabels,
		SuccessfulPrints: s.SuccessfulPrints,
		FailedPrints:     s.FailedPrints,
		SuccessRate:      json.Number(s.SuccessRate.String()),
		BluetoothPrints:  s.BluetoothPrints,
		SerialPrints:     s.SerialPrints,
		USBPrints:        s.USBPrints,
		NetworkPrints:    s.NetworkPrints,
		Downloads:        s.Downloads,
		AvgDuration:      json.Number(s.AvgDuration.String()),
	}
}
