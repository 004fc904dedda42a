package model

// User backs the desktop login dialog. The API never authenticates users —
// it only bootstraps the table and seeds rows via cmd/seedadmin.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:'cashier'"`
}
