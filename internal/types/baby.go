package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Baby is a tracked child profile. The UUID is the opaque token stored in
// the session; the numeric id is what content rows are keyed to. AgeMonths
// is fixed at onboarding and never recomputed.
type Baby struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID             uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null;column:baby_uuid" json:"uuid"`
	ParentID         uint           `gorm:"not null;index;column:parent_id" json:"parent_id"`
	Parent           *Parent        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentID;references:ID" json:"parent,omitempty"`
	BabyName         string         `gorm:"not null;column:baby_name" json:"baby_name"`
	AgeGroup         string         `gorm:"column:age_group" json:"age_group"`
	AgeMonths        int            `gorm:"not null;column:age_months" json:"age_months"`
	AvatarEmoji      string         `gorm:"column:avatar_emoji;default:👶" json:"avatar_emoji"`
	AvatarPath       string         `gorm:"column:avatar_path" json:"avatar_path,omitempty"`
	DevelopmentGoals datatypes.JSON `gorm:"column:development_goals" json:"development_goals"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (Baby) TableName() string { return "babies" }
