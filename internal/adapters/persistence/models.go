package persistence

import (
	"time"
)

// JobModel represents the jobs table: one row per solve job with its
// original problem dimensions, serialized grid and path, and lifecycle
// fields
type JobModel struct {
	ID           string     `gorm:"column:id;primaryKey;not null"`
	N            int        `gorm:"column:n;not null"`
	M            int        `gorm:"column:m;not null"`
	P            int        `gorm:"column:p;not null"`
	Grid         string     `gorm:"column:grid;type:text;not null"` // JSON as text
	Solver       string     `gorm:"column:solver;not null"`
	Status       string     `gorm:"column:status;not null;index"`
	MinFuel      *float64   `gorm:"column:min_fuel"`
	Path         string     `gorm:"column:path;type:text"` // JSON as text
	ErrorMessage string     `gorm:"column:error_message;type:text"`
	CancelReason string     `gorm:"column:cancel_reason"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null;index"`
	StartedAt    *time.Time `gorm:"column:started_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
}

func (JobModel) TableName() string {
	return "jobs"
}

// JobLogModel represents the job_logs table
type JobLogModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	JobID     string    `gorm:"column:job_id;not null;index"`
	Job       *JobModel `gorm:"foreignKey:JobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	Level     string    `gorm:"column:level;not null;default:'INFO'"`
	Message   string    `gorm:"column:message;type:text;not null"`
}

func (JobLogModel) TableName() string {
	return "job_logs"
}
