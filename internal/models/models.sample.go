// FilePath: internal/models/models.sample.go
package models

import "time"

// BandNotAvailable is stored when a sample arrives without band information.
const BandNotAvailable = "N/A"

// Sample represents a single cellular-quality reading from a device.
// Samples are immutable once stored; there is no update or delete path.
type Sample struct {
	ID          string    `json:"id" db:"id"`
	DeviceID    string    `json:"device_id" db:"device_id"`
	Operator    string    `json:"operator" db:"operator"`
	SignalPower int       `json:"signal_power" db:"signal_power"`
	SNR         float64   `json:"snr" db:"snr"`
	NetworkType string    `json:"network_type" db:"network_type"`
	Band        string    `json:"band" db:"band"`
	CellID      string    `json:"cell_id" db:"cell_id"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
}
