package dto

type DateRange struct {
	Start string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end" validate:"omitempty,datetime=2006-01-02"`
}

// TaskFilter is the dashboard filter state. Every dimension is a set and an
// empty set places no constraint.
type TaskFilter struct {
	DateRange       DateRange `json:"date_range"`
	FreelancerNames []string  `json:"freelancer_name"`
	Languages       []string  `json:"language"`
	Models          []string  `json:"model"`
	FreelancerTypes []string  `json:"freelancer_type"`
	Statuses        []string  `json:"task_status"`
	Search          string    `json:"search"`
}

type TaskInput struct {
	TaskGroup       string  `json:"task_group" validate:"omitempty,oneof='Group A' 'Group B'"`
	TaskDescription string  `json:"task_description" validate:"required"`
	Model           string  `json:"model" validate:"required"`
	Language        string  `json:"language" validate:"required"`
	FreelancerName  string  `json:"freelancer_name" validate:"required"`
	FreelancerID    string  `json:"freelancer_id" validate:"omitempty,uuid"`
	FreelancerType  string  `json:"freelancer_type" validate:"required,oneof=Linguist 'Language Expert'"`
	PayRatePerDay   float64 `json:"pay_rate_per_day" validate:"gt=0"`
	TotalTimeTaken  float64 `json:"total_time_taken" validate:"gt=0"`
	StartDate       string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	CompletionDate  string  `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	TaskStatus      string  `json:"task_status" validate:"omitempty,oneof=Planned 'In Progress' Completed"`
}

// TaskPatch carries only the fields being changed.
type TaskPatch struct {
	TaskGroup       *string  `json:"task_group" validate:"omitempty,oneof='Group A' 'Group B'"`
	TaskDescription *string  `json:"task_description" validate:"omitempty,min=1"`
	Model           *string  `json:"model" validate:"omitempty,min=1"`
	Language        *string  `json:"language" validate:"omitempty,min=1"`
	FreelancerName  *string  `json:"freelancer_name" validate:"omitempty,min=1"`
	FreelancerID    *string  `json:"freelancer_id" validate:"omitempty,uuid"`
	FreelancerType  *string  `json:"freelancer_type" validate:"omitempty,oneof=Linguist 'Language Expert'"`
	PayRatePerDay   *float64 `json:"pay_rate_per_day" validate:"omitempty,gt=0"`
	TotalTimeTaken  *float64 `json:"total_time_taken" validate:"omitempty,gt=0"`
	StartDate       *string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	CompletionDate  *string  `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	TaskStatus      *string  `json:"task_status" validate:"omitempty,oneof=Planned 'In Progress' Completed"`
}

// TaskDraft is a partially filled task form.
type TaskDraft struct {
	TaskGroup      string  `json:"task_group"`
	FreelancerName string  `json:"freelancer_name"`
	FreelancerType string  `json:"freelancer_type"`
	Language       string  `json:"language"`
	PayRatePerDay  float64 `json:"pay_rate_per_day"`
	RateFromCard   bool    `json:"rate_from_card"`
	TotalTimeTaken float64 `json:"total_time_taken"`
	StartDate      string  `json:"start_date"`
}

// DerivedFields are the values a task form computes from a draft.
type DerivedFields struct {
	CompletionDate  string   `json:"completion_date"`
	PayRatePerDay   float64  `json:"pay_rate_per_day"`
	RateFromCard    bool     `json:"rate_from_card"`
	TotalPayment    float64  `json:"total_payment"`
	Language        string   `json:"language"`
	LanguageLocked  bool     `json:"language_locked"`
	LanguageOptions []string `json:"language_options"`
}
