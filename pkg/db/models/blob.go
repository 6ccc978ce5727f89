package models

import "time"

// Blob is one persisted store snapshot, addressed by its namespaced key.
type Blob struct {
	Key       string    `gorm:"column:blob_key;type:text;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table created by the kv_blobs migration.
func (Blob) TableName() string {
	return "kv_blobs"
}
