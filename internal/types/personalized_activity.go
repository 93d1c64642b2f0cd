package types

import (
	"time"

	"gorm.io/datatypes"
)

// PersonalizedActivity is generated from a baby's ability-assessment
// results rather than from a development area.
type PersonalizedActivity struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	BabyID           uint           `gorm:"not null;index;column:baby_id" json:"baby_id"`
	Title            string         `gorm:"not null;column:title" json:"title"`
	Description      string         `gorm:"column:description" json:"description"`
	Materials        datatypes.JSON `gorm:"column:materials" json:"materials"`
	HowTo            datatypes.JSON `gorm:"column:how_to" json:"how_to"`
	WhyItHelps       string         `gorm:"column:why_it_helps" json:"why_it_helps"`
	TargetDomain     string         `gorm:"column:target_domain" json:"target_domain"`
	TargetAbility    string         `gorm:"column:target_ability" json:"target_ability"`
	AbilityState     string         `gorm:"column:ability_state" json:"ability_state"`
	DurationMin      int            `gorm:"not null;default:10;column:duration_min" json:"duration_min"`
	SafetyNotes      string         `gorm:"column:safety_notes" json:"safety_notes"`
	ReflectionPrompt string         `gorm:"column:reflection_prompt" json:"reflection_prompt"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
}

func (PersonalizedActivity) TableName() string { return "personalized_activities" }
