package addresses

import (
	"time"

	"github.com/luckbank/luckbank-backend/pkg/db/models"
)

// CreateAddressRequest is the payload for registering a postal address.
type CreateAddressRequest struct {
	Street       string `json:"street" validate:"required"`
	Number       string `json:"number" validate:"required"`
	Complement   string `json:"complement,omitempty" validate:"omitempty"`
	Neighborhood string `json:"neighborhood" validate:"required"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Country      string `json:"country" validate:"required"`
	ZipCode      string `json:"zip_code" validate:"required"`
}

// UpdateAddressRequest carries a partial merge; nil fields are left untouched.
type UpdateAddressRequest struct {
	Street       *string `json:"street,omitempty"`
	Number       *string `json:"number,omitempty"`
	Complement   *string `json:"complement,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	ZipCode      *string `json:"zip_code,omitempty"`
}

func (c CreateAddressRequest) toModel(userID string, now time.Time) *models.Address {
	return &models.Address{
		Base:         models.NewBase(now),
		UserID:       userID,
		Street:       c.Street,
		Number:       c.Number,
		Complement:   c.Complement,
		Neighborhood: c.Neighborhood,
		City:         c.City,
		State:        c.State,
		Country:      c.Country,
		ZipCode:      c.ZipCode,
	}
}

func (u UpdateAddressRequest) applyTo(address *models.Address) {
	if u.Street != nil {
		address.Street = *u.Street
	}
	if u.Number != nil {
		address.Number = *u.Number
	}
	if u.Complement != nil {
		address.Complement = *u.Complement
	}
	if u.Neighborhood != nil {
		address.Neighborhood = *u.Neighborhood
	}
	if u.City != nil {
		address.City = *u.City
	}
	if u.State != nil {
		address.State = *u.State
	}
	if u.Country != nil {
		address.Country = *u.Country
	}
	if u.ZipCode != nil {
		address.ZipCode = *u.ZipCode
	}
}
