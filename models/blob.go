package models

import "time"

// Blob is one persisted key-value entry: the full serialized catalog, cart,
// users or orders state under its well-known key. Writes always replace the
// whole value; last writer wins.
type Blob struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     []byte    `gorm:"type:blob" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
