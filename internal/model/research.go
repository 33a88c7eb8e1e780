package model

import "time"

// Research is a persisted question/answer pair owned by a user.
type Research struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Question  string    `json:"question" gorm:"size:2000;not null"`
	Answer    string    `json:"answer" gorm:"size:2000;not null"`
	CreatedOn time.Time `json:"created_on" gorm:"column:created_on;autoCreateTime"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
