package storage

import "time"

// Entry is one value in a scope's key-value area.
type Entry struct {
	Scope     string    `gorm:"column:scope;primaryKey;size:64"`
	Key       string    `gorm:"column:key;primaryKey;size:128"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Entry) TableName() string {
	return "storage_entries"
}
