package model

import "time"

// User represents a registered account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedOn    time.Time `json:"created_on" gorm:"column:created_on;autoCreateTime"`

	// Relations
	Researches []Research `json:"-" gorm:"foreignKey:UserID"`
}
