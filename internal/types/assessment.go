package types

import (
	"time"
)

const (
	AssessmentResponseMastered = "Mastered"
	AssessmentResponseOnTrack  = "On-Track"
	AssessmentResponseNotSure  = "Not Sure"
)

// AbilityQuestion is one generated assessment question a parent answers
// with Mastered / On-Track / Not Sure.
type AbilityQuestion struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Domain       string    `gorm:"not null;column:domain" json:"domain"`
	QuestionText string    `gorm:"not null;column:question_text" json:"question_text"`
	AgeRangeMin  int       `gorm:"column:age_range_min" json:"age_range_min"`
	AgeRangeMax  int       `gorm:"column:age_range_max" json:"age_range_max"`
	HelpfulHint  string    `gorm:"column:helpful_hint" json:"helpful_hint"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (AbilityQuestion) TableName() string { return "ability_questions" }

// AbilityAssessment records a parent's answer for one question.
type AbilityAssessment struct {
	ID         uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	BabyID     uint             `gorm:"not null;index;column:baby_id" json:"baby_id"`
	QuestionID uint             `gorm:"not null;column:question_id" json:"question_id"`
	Question   *AbilityQuestion `gorm:"foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	Response   string           `gorm:"not null;column:response" json:"response"`
	CreatedAt  time.Time        `gorm:"not null" json:"created_at"`
}

func (AbilityAssessment) TableName() string { return "ability_assessments" }
