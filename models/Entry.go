package models

import (
	"time"

	"gorm.io/datatypes"
)

// Entry is a row of the key-value table backing the SQL store.
type Entry struct {
	Key       string         `gorm:"primaryKey;type:varchar(191)" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}
