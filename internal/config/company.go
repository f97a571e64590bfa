package config

import (
	"os"
	"sync"
)

type BankDetails struct {
	BankName      string
	AccountName   string
	AccountNumber string
	IFSCCode      string
	Branch        string
}

// CompanyConfig is the issuer printed on invoices.
type CompanyConfig struct {
	Name    string
	Tagline string
	Address string
	Email   string
	Phone   string
	GSTIN   string
	PAN     string
	Bank    BankDetails
}

var (
	companyConfig *CompanyConfig
	companyOnce   sync.Once
)

func LoadCompanyConfig() *CompanyConfig {
	companyOnce.Do(func() {
		name := os.Getenv("COMPANY_NAME")
		if name == "" {
			name = "BharatGen"
		}
		tagline, ok := os.LookupEnv("COMPANY_TAGLINE")
		if !ok {
			tagline = "Language Solutions"
		}
		companyConfig = &CompanyConfig{
			Name:    name,
			Tagline: tagline,
			Address: os.Getenv("COMPANY_ADDRESS"),
			Email:   os.Getenv("COMPANY_EMAIL"),
			Phone:   os.Getenv("COMPANY_PHONE"),
			GSTIN:   os.Getenv("COMPANY_GSTIN"),
			PAN:     os.Getenv("COMPANY_PAN"),
			Bank: BankDetails{
				BankName:      os.Getenv("BANK_NAME"),
				AccountName:   os.Getenv("BANK_ACCOUNT_NAME"),
				AccountNumber: os.Getenv("BANK_ACCOUNT_NUMBER"),
				IFSCCode:      os.Getenv("BANK_IFSC"),
				Branch:        os.Getenv("BANK_BRANCH"),
			},
		}
	})
	return companyConfig
}
