package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	FreelancerTypeLinguist = "Linguist"
	FreelancerTypeExpert   = "Language Expert"

	TaskGroupA = "Group A"
	TaskGroupB = "Group B"

	TaskStatusPlanned    = "Planned"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

// Task is one row of the master table. Dates are kept as YYYY-MM-DD strings,
// the same shape the hosted service returns for date columns.
type Task struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskGroup       *string    `gorm:"type:varchar(20)" json:"task_group"`
	TaskDescription string     `gorm:"type:text" json:"task_description"`
	Model           string     `gorm:"type:varchar(100)" json:"model"`
	Language        string     `gorm:"type:varchar(100)" json:"language"`
	FreelancerName  string     `gorm:"type:varchar(255);index" json:"freelancer_name"`
	FreelancerID    *uuid.UUID `gorm:"type:uuid" json:"freelancer_id"`
	FreelancerType  string     `gorm:"type:varchar(50)" json:"freelancer_type"`
	PayRatePerDay   float64    `gorm:"type:numeric" json:"pay_rate_per_day"`
	TotalTimeTaken  float64    `gorm:"type:numeric" json:"total_time_taken"`
	StartDate       string     `gorm:"type:date" json:"start_date"`
	CompletionDate  string     `gorm:"type:date" json:"completion_date"`
	TaskStatus      *string    `gorm:"type:varchar(50)" json:"task_status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (t *Task) TableName() string {
	return "master"
}

// Payment is rate times days in decimal arithmetic, never rounded.
func (t Task) Payment() decimal.Decimal {
	return decimal.NewFromFloat(t.PayRatePerDay).Mul(decimal.NewFromFloat(t.TotalTimeTaken))
}

func (t Task) TotalPayment() float64 {
	return t.Payment().InexactFloat64()
}

func (t Task) Group() string {
	if t.TaskGroup == nil {
		return ""
	}
	return *t.TaskGroup
}

// Status falls back to Planned for rows created before statuses existed.
func (t Task) Status() string {
	if t.TaskStatus == nil || *t.TaskStatus == "" {
		return TaskStatusPlanned
	}
	return *t.TaskStatus
}

// TrimDates cuts date columns back to YYYY-MM-DD when a driver scanned them
// as full timestamps.
func (t *Task) TrimDates() {
	t.StartDate = trimDate(t.StartDate)
	t.CompletionDate = trimDate(t.CompletionDate)
}

func trimDate(s string) string {
	if len(s) > len("2006-01-02") {
		return s[:len("2006-01-02")]
	}
	return s
}
