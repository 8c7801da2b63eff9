package repository

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"` // bcrypt, never plaintext
	CreatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string { return "users" }
