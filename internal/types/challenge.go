package types

import (
	"time"

	"gorm.io/datatypes"
)

const EnrollmentStatusActive = "active"

// Challenge is a global long-duration bonding program template. Exactly
// four exist (30/90/180/365 days), generated lazily on first request.
type Challenge struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	DurationDays     int            `gorm:"not null;column:duration_days" json:"duration_days"`
	Title            string         `gorm:"not null;column:title" json:"title"`
	Tagline          string         `gorm:"column:tagline" json:"tagline"`
	Description      string         `gorm:"column:description" json:"description"`
	Emoji            string         `gorm:"column:emoji" json:"emoji"`
	DevelopmentTypes datatypes.JSON `gorm:"column:development_types" json:"development_types"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (Challenge) TableName() string { return "challenges" }

// ChallengeActivity is one day's activity within a challenge. Only a
// preview window (days 1..10) is ever materialized.
type ChallengeActivity struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengeID uint           `gorm:"not null;index;column:challenge_id" json:"challenge_id"`
	Challenge   *Challenge     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChallengeID;references:ID" json:"challenge,omitempty"`
	DayNumber   int            `gorm:"not null;column:day_number" json:"day_number"`
	Title       string         `gorm:"not null;column:activity_title" json:"title"`
	Description string         `gorm:"column:activity_description" json:"description"`
	Materials   datatypes.JSON `gorm:"column:materials" json:"materials"`
	HowTo       datatypes.JSON `gorm:"column:how_to" json:"how_to"`
	WhyItHelps  string         `gorm:"column:why_it_helps" json:"why_it_helps"`
	DurationMin int            `gorm:"not null;default:15;column:duration_min" json:"duration_min"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (ChallengeActivity) TableName() string { return "challenge_activities" }

// ChallengeEnrollment joins a baby to a challenge. At most one active
// enrollment exists per pair; enrolling again returns the existing row.
type ChallengeEnrollment struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	BabyID        uint       `gorm:"not null;index;column:baby_id" json:"baby_id"`
	ChallengeID   uint       `gorm:"not null;index;column:challenge_id" json:"challenge_id"`
	Challenge     *Challenge `gorm:"foreignKey:ChallengeID;references:ID" json:"challenge,omitempty"`
	Status        string     `gorm:"not null;default:active;column:status" json:"status"`
	CompletedDays int        `gorm:"not null;default:0;column:completed_days" json:"completed_days"`
	StartedAt     time.Time  `gorm:"not null;column:started_at" json:"started_at"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

func (ChallengeEnrollment) TableName() string { return "challenge_enrollments" }
