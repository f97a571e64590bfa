package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Freelancer struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	FreelancerType *string        `gorm:"type:varchar(50)" json:"freelancer_type"`
	Language       pq.StringArray `gorm:"type:text[]" json:"language"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (f *Freelancer) TableName() string {
	return "freelancers"
}

func (f Freelancer) Type() string {
	if f.FreelancerType == nil {
		return ""
	}
	return *f.FreelancerType
}
