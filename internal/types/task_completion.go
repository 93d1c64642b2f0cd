package types

import (
	"time"
)

// TaskCompletion is an append-only completion event. "Completed today" is
// answered by scanning the event log for the calendar day, never by a
// mutable flag, so repeat completions on later days keep their history.
type TaskCompletion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BabyID      uint      `gorm:"not null;index;column:baby_id" json:"baby_id"`
	ActivityID  uint      `gorm:"not null;index;column:activity_id" json:"activity_id"`
	AreaID      uint      `gorm:"column:area_id" json:"area_id"`
	CompletedAt time.Time `gorm:"not null;index;column:completed_at" json:"completed_at"`
}

func (TaskCompletion) TableName() string { return "task_completions" }
