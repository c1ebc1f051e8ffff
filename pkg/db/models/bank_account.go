package models

import "github.com/luckbank/luckbank-backend/pkg/enums"

// BankAccount is an administrative bank-account record. Account and agency
// numbers are generated server-side at creation and never regenerated.
type BankAccount struct {
	Base          `bson:",inline"`
	UserID        string            `bson:"user_id" json:"user_id"`
	AccountType   enums.AccountType `bson:"account_type" json:"account_type"`
	AccountNumber int               `bson:"account_number" json:"account_number"`
	AccountDigit  int               `bson:"account_digit" json:"account_digit"`
	Agency        string            `bson:"agency" json:"agency"`
	AgencyDigit   int               `bson:"agency_digit" json:"agency_digit"`
	Status        enums.Status      `bson:"status" json:"status"`
}
