package model

import "time"

// ActivityLogEntry is an append-only audit row. The desktop application writes
// entries on login and other user actions; this service appends its own entries
// for API-created sales and reads the log back out.
type ActivityLogEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"not null"`
	Action    string    `gorm:"not null"`
	Details   string
	Timestamp time.Time `gorm:"not null;index"`
}

func (ActivityLogEntry) TableName() string { return "activity_log" }
