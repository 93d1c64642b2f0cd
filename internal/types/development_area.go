package types

import (
	"time"
)

// DevelopmentArea is one themed bucket of four activities generated for a
// baby. Areas are created once on first read and never regenerated.
type DevelopmentArea struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BabyID          uint      `gorm:"not null;index;column:baby_id" json:"baby_id"`
	Baby            *Baby     `gorm:"constraint:OnDelete:CASCADE;foreignKey:BabyID;references:ID" json:"baby,omitempty"`
	AreaName        string    `gorm:"not null;column:area_name" json:"area_name"`
	DevelopmentType string    `gorm:"not null;column:development_type" json:"development_type"`
	AgeRangeMin     int       `gorm:"column:age_range_min" json:"age_range_min"`
	AgeRangeMax     int       `gorm:"column:age_range_max" json:"age_range_max"`
	Emoji           string    `gorm:"column:emoji" json:"emoji"`
	Color           string    `gorm:"column:color" json:"color"`
	Description     string    `gorm:"column:description" json:"description"`
	ActivityCount   int       `gorm:"not null;default:4;column:activity_count" json:"activity_count"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (DevelopmentArea) TableName() string { return "development_areas" }
