package accounts

import (
	"time"

	"github.com/luckbank/luckbank-backend/pkg/db/models"
	"github.com/luckbank/luckbank-backend/pkg/enums"
)

const defaultAgency = "0001"

// CreateAccountRequest is the payload for opening a bank-account record.
// Account and agency numbers are server-generated.
type CreateAccountRequest struct {
	AccountType enums.AccountType `json:"account_type" validate:"required,oneof=CHECKING SAVINGS SALARY"`
}

// UpdateAccountRequest changes the account type. The change is only allowed
// while the stored record's type is SALARY.
type UpdateAccountRequest struct {
	AccountType enums.AccountType `json:"account_type" validate:"required,oneof=CHECKING SAVINGS SALARY"`
}

func (c CreateAccountRequest) toModel(userID string, now time.Time, accountNumber, accountDigit int) *models.BankAccount {
	return &models.BankAccount{
		Base:          models.NewBase(now),
		UserID:        userID,
		AccountType:   c.AccountType,
		AccountNumber: accountNumber,
		AccountDigit:  accountDigit,
		Agency:        defaultAgency,
		AgencyDigit:   0,
		Status:        enums.StatusPending,
	}
}
