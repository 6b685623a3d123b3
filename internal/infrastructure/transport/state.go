// Package transport delivers encoded label commands to printers.
package transport

import "time"

// Status is the connection state of a printer.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusPrinting     Status = "printing"
	StatusError        Status = "error"
)

// State is a snapshot of one printer connection.
type State struct {
	Printer   string    `json:"printer"`
	Status    Status    `json:"status"`
	LastError string    `json:"lastError,omitempty"`
	Printed   int       `json:"printed"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Connected reports whether the printer can accept data.
func (s State) Connected() bool {
	return s.Status == StatusConnected || s.Status == StatusPrinting
}

func (s State) with(status Status, err error, at time.Time) State {
	s.Status = status
	s.UpdatedAt = at
	if err != nil {
		s.LastError = err.Error()
	} else if status != StatusError {
		s.LastError = ""
	}
	return s
}
