package dto

type RateCardData struct {
	LinguistGroupA float64 `json:"linguist_group_a" validate:"gte=0"`
	LinguistGroupB float64 `json:"linguist_group_b" validate:"gte=0"`
	ExpertGroupA   float64 `json:"expert_group_a" validate:"gte=0"`
	ExpertGroupB   float64 `json:"expert_group_b" validate:"gte=0"`
}
