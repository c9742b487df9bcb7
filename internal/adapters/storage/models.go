package storage

import "time"

// TaskModel is the GORM model for the tasks table
type TaskModel struct {
	ID                string `gorm:"primaryKey"`
	LegacyID          *int64 `gorm:"index:idx_tasks_legacy;default:null"`
	Description       string `gorm:"not null"`
	CompletedSessions int    `gorm:"not null;default:0"`
	TargetSessions    int    `gorm:"not null;default:1"`
	IsToday           bool   `gorm:"not null;default:false;index:idx_tasks_today"`
	IsFinished        bool   `gorm:"not null;default:false"`
	GoalID            *string `gorm:"index:idx_tasks_goal;default:null"`
	Position          int     `gorm:"not null;default:0;index:idx_tasks_position"`
	CreatedAt         time.Time `gorm:"index:idx_tasks_created"`
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (TaskModel) TableName() string { return "tasks" }

// GoalModel is the GORM model for the goals table
type GoalModel struct {
	ID          string  `gorm:"primaryKey"`
	Name        string  `gorm:"not null"`
	OwnerUserID *string `gorm:"index:idx_goals_owner;default:null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (GoalModel) TableName() string { return "goals" }

// QuoteModel is the GORM model for the quotes table
type QuoteModel struct {
	ID          string `gorm:"primaryKey"`
	Content     string `gorm:"not null;size:240"`
	OwnerUserID string `gorm:"not null;index:idx_quotes_owner"`
	CreatedAt   time.Time `gorm:"index:idx_quotes_created"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (QuoteModel) TableName() string { return "quotes" }
