package dto

type FreelancerInput struct {
	Name           string   `json:"name" validate:"required"`
	FreelancerType string   `json:"freelancer_type" validate:"omitempty,oneof=Linguist 'Language Expert'"`
	Language       []string `json:"language" validate:"dive,required"`
}

type FreelancerPatch struct {
	Name           *string   `json:"name" validate:"omitempty,min=1"`
	FreelancerType *string   `json:"freelancer_type" validate:"omitempty,oneof=Linguist 'Language Expert'"`
	Language       *[]string `json:"language" validate:"omitempty,dive,required"`
}

type LanguageInput struct {
	Language string `json:"language" validate:"required"`
}
