package types

import (
	"time"

	"gorm.io/datatypes"
)

// AreaActivity is a self-contained instructional record: everything a
// parent needs to run one 5-10 minute activity.
type AreaActivity struct {
	ID               uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	AreaID           uint             `gorm:"not null;index;column:area_id" json:"area_id"`
	Area             *DevelopmentArea `gorm:"constraint:OnDelete:CASCADE;foreignKey:AreaID;references:ID" json:"area,omitempty"`
	Title            string           `gorm:"not null;column:activity_title" json:"title"`
	ShortDescription string           `gorm:"column:short_description" json:"short_description"`
	Icon             string           `gorm:"column:icon" json:"icon"`
	Materials        datatypes.JSON   `gorm:"column:materials" json:"materials"`
	HowTo            datatypes.JSON   `gorm:"column:how_to" json:"how_to"`
	DurationMin      int              `gorm:"not null;default:10;column:duration_min" json:"duration_min"`
	WhyItHelps       string           `gorm:"column:why_it_helps" json:"why_it_helps"`
	SafetyNotes      string           `gorm:"column:safety_notes" json:"safety_notes"`
	ReflectionPrompt string           `gorm:"column:reflection_prompt" json:"reflection_prompt"`
	IllustrationPath string           `gorm:"column:illustration_path" json:"illustration_path,omitempty"`
	CreatedAt        time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null" json:"updated_at"`
}

func (AreaActivity) TableName() string { return "area_activities" }
