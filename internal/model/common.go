package model

import "time"

// TimeFormat is how created-at timestamps are rendered on the wire.
const TimeFormat = "2006-01-02 15:04:05"

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
