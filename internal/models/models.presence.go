// FilePath: internal/models/models.presence.go
package models

import "time"

// DevicePresence records the last contact from a network origin. At most
// one row exists per origin key; rows are upserted on every ingestion and
// never deleted.
//
// AssociatedDeviceID is a soft cross-reference into Sample.DeviceID, not
// an enforced foreign key. It names the device last seen from the origin
// and is used only as a lookup aid by the stats resolver and dashboard.
type DevicePresence struct {
	OriginKey          string    `json:"origin_key" db:"origin_key"`
	AssociatedDeviceID *string   `json:"associated_device_id,omitempty" db:"associated_device_id"`
	LastSeen           time.Time `json:"last_seen" db:"last_seen"`
}
