package types

import (
	"time"
)

// User is the password-backed account surface that coexists with the
// contact-entry parent flow.
type User struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password    string    `gorm:"not null;column:password" json:"-"`
	ParentName  string    `gorm:"column:parent_name" json:"parent_name"`
	AvatarEmoji string    `gorm:"column:avatar_emoji;default:👤" json:"avatar_emoji"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
