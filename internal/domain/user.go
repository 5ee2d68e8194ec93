package domain

import (
	"strconv"
	"time"
)

// User is the domain model for dashboard operators. The Password field holds
// the bcrypt hash of the credential and is serialized only into the store,
// never into API responses (see Public).
type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	FullName          string `json:"fullName"`
	EstablishmentName string `json:"establishmentName"`
	CpfCnpj           string `json:"cpfCnpj"`
	CompanyName       string `json:"companyName"`
	TradeName         string `json:"tradeName"`
	Phone             string `json:"phone"`
	CreatedAt         string `json:"createdAt"`
}

// PublicUser mirrors User minus the credential field.
type PublicUser struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FullName          string `json:"fullName"`
	EstablishmentName string `json:"establishmentName"`
	CpfCnpj           string `json:"cpfCnpj"`
	CompanyName       string `json:"companyName"`
	TradeName         string `json:"tradeName"`
	Phone             string `json:"phone"`
	CreatedAt         string `json:"createdAt"`
}

// Public strips the credential for response payloads.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:                u.ID,
		Email:             u.Email,
		FullName:          u.FullName,
		EstablishmentName: u.EstablishmentName,
		CpfCnpj:           u.CpfCnpj,
		CompanyName:       u.CompanyName,
		TradeName:         u.TradeName,
		Phone:             u.Phone,
		CreatedAt:         u.CreatedAt,
	}
}

// NewUserID derives a user identifier from the creation instant. Millisecond
// precision matches the ids already present in existing db.json files.
func NewUserID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
