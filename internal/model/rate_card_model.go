package model

import (
	"time"

	"github.com/google/uuid"
)

type RateCard struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id,omitempty"`
	FreelancerType string    `gorm:"type:varchar(50);uniqueIndex:idx_rate_card_type_group" json:"freelancer_type"`
	GroupType      string    `gorm:"type:varchar(20);uniqueIndex:idx_rate_card_type_group" json:"group_type"`
	Rate           float64   `gorm:"type:numeric" json:"rate"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

func (r *RateCard) TableName() string {
	return "rate_card"
}
