// Package reports summarises print history for the dashboard.
package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals is the raw aggregate the repository computes over print_history.
type Totals struct {
	TotalPrints      int64   `db:"total_prints"`
	TotalLabels      int64   `db:"total_labels"`
	SuccessfulPrints int64   `db:"successful_prints"`
	FailedPrints     int64   `db:"failed_prints"`
	BluetoothPrints  int64   `db:"bluetooth_prints"`
	SerialPrints     int64   `db:"serial_prints"`
	USBPrints        int64   `db:"usb_prints"`
	NetworkPrints    int64   `db:"network_prints"`
	Downloads        int64   `db:"downloads"`
	AvgDurationMS    float64 `db:"avg_duration_ms"`
}

// Summary is the dashboard headline block.
type Summary struct {
	TotalPrints      int64           `json:"totalPrints"`
	TotalLabels      int64           `json:"totalLabels"`
	SuccessfulPrints int64           `json:"successfulPrints"`
	FailedPrints     int64           `json:"failedPrints"`
	SuccessRate      decimal.Decimal `json:"successRate"`
	BluetoothPrints  int64           `json:"bluetoothPrints"`
	SerialPrints     int64           `json:"serialPrints"`
	USBPrints        int64           `json:"usbPrints"`
	NetworkPrints    int64           `json:"networkPrints"`
	Downloads        int64           `json:"downloads"`
	AvgDuration      decimal.Decimal `json:"avgDuration"`
}

// DailyStat is one calendar day of activity.
type DailyStat struct {
	Date             string `db:"date" json:"date"`
	TotalPrints      int64  `db:"total_prints" json:"totalPrints"`
	TotalLabels      int64  `db:"total_labels" json:"totalLabels"`
	SuccessfulPrints int64  `db:"successful_prints" json:"successfulPrints"`
	FailedPrints     int64  `db:"failed_prints" json:"failedPrints"`
}

// TopLabel ranks a base name by how many labels were printed for it.
type TopLabel struct {
	BaseName      string    `db:"base_name" json:"baseName"`
	TotalPrints   int64     `db:"total_prints" json:"totalPrints"`
	TotalQuantity int64     `db:"total_quantity" json:"totalQuantity"`
	LastPrinted   time.Time `db:"last_printed" json:"lastPrinted"`
}
