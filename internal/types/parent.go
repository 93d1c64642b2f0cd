package types

import (
	"time"
)

const (
	ContactTypeEmail  = "email"
	ContactTypeMobile = "mobile"
)

// Parent is the lightweight contact-based identity used by onboarding.
// A parent is keyed by the raw contact string they typed; the contact type
// is a cosmetic classification, not a verified channel.
type Parent struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ContactType  string    `gorm:"not null;column:contact_type;uniqueIndex:idx_parent_contact" json:"contact_type"`
	ContactValue string    `gorm:"not null;column:contact_value;uniqueIndex:idx_parent_contact" json:"contact_value"`
	ParentName   string    `gorm:"column:parent_name" json:"parent_name"`
	AvatarEmoji  string    `gorm:"column:avatar_emoji;default:👤" json:"avatar_emoji"`
	AvatarPath   string    `gorm:"column:avatar_path" json:"avatar_path,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Parent) TableName() string { return "parents" }
