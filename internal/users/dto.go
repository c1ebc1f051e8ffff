package users

import (
	"strings"
	"time"

	"github.com/luckbank/luckbank-backend/internal/accounts"
	"github.com/luckbank/luckbank-backend/internal/addresses"
	"github.com/luckbank/luckbank-backend/internal/documents"
	"github.com/luckbank/luckbank-backend/pkg/db/models"
	"github.com/luckbank/luckbank-backend/pkg/enums"
)

// CreateUserRequest is the onboarding payload. Nested address, document and
// account records are created together with the user.
type CreateUserRequest struct {
	FirstName       string                            `json:"first_name" validate:"required"`
	LastName        string                            `json:"last_name" validate:"required"`
	Email           string                            `json:"email" validate:"required,email"`
	Password        string                            `json:"password" validate:"required"`
	ConfirmPassword string                            `json:"confirm_password" validate:"required,eqfield=Password"`
	Phone           string                            `json:"phone" validate:"required"`
	Documents       []documents.CreateDocumentRequest `json:"documents,omitempty" validate:"omitempty,dive"`
	Address         []addresses.CreateAddressRequest  `json:"address,omitempty" validate:"omitempty,dive"`
	Accounts        []accounts.CreateAccountRequest   `json:"accounts,omitempty" validate:"omitempty,dive"`
}

// UpdateUserRequest carries a partial merge; nil fields are left untouched.
type UpdateUserRequest struct {
	FirstName *string       `json:"first_name,omitempty"`
	LastName  *string       `json:"last_name,omitempty"`
	Phone     *string       `json:"phone,omitempty"`
	Status    *enums.Status `json:"status,omitempty" validate:"omitempty,oneof=PROCESSING PENDING ACTIVE INACTIVE BLOCKED DELETED"`
	IsActive  *bool         `json:"is_active,omitempty"`
}

// UserDetails is the composite read model assembled by get_user_by_id.
type UserDetails struct {
	*models.User
	Address   []models.Address     `json:"address"`
	Documents []models.Document    `json:"documents"`
	Accounts  []models.BankAccount `json:"accounts"`
}

func (c CreateUserRequest) toModel(passwordHash string, now time.Time) *models.User {
	return &models.User{
		Base:         models.NewBase(now),
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        strings.ToLower(strings.TrimSpace(c.Email)),
		PasswordHash: passwordHash,
		Phone:        c.Phone,
		Status:       enums.StatusPending,
		IsActive:     false,
	}
}

// echo strips credential material before the request is returned to the caller.
func (c CreateUserRequest) echo() *CreateUserRequest {
	c.Password = ""
	c.ConfirmPassword = ""
	return &c
}

func (u UpdateUserRequest) applyTo(user *models.User) {
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.Phone != nil {
		user.Phone = *u.Phone
	}
	if u.Status != nil {
		user.Status = *u.Status
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
}
