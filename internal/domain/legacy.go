package domain

import (
	"fmt"
	"time"
)

// LegacyType is the transaction kind in the flat single-entry log. The flat
// log is an import format only; the journal is the sole live store.
type LegacyType string

const (
	LegacyTypePayment  LegacyType = "PAYMENT"
	LegacyTypeExpense  LegacyType = "EXPENSE"
	LegacyTypeDonation LegacyType = "DONATION"
	LegacyTypeGrant    LegacyType = "GRANT"
	LegacyTypeRefund   LegacyType = "REFUND"
)

// PaymentMethod is how money moved in the legacy log.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodBank PaymentMethod = "BANK"
)

// LegacyTransaction is one row of the pre-system flat log.
type LegacyTransaction struct {
	ID        int64
	Type      LegacyType
	Category  string
	Method    PaymentMethod
	Amount    int64
	Date      time.Time
	Reference string
	StudentID *string
	StaffID   *string
	Notes     string
}

// GLPair is the debit/credit account pair a legacy transaction maps onto.
type GLPair struct {
	DebitCode  string
	CreditCode string
}

// cashOrBank picks the cash-side account by payment method. Unknown methods
// fall back to cash, matching how untagged legacy rows were handled.
func cashOrBank(m PaymentMethod) string {
	if m == PaymentMethodBank {
		return AccountBank
	}

	return AccountCashOnHand
}

// expenseCategoryCodes is the exhaustive mapping from legacy expense
// categories to expense accounts. Categories not listed here are rejected
// rather than guessed from substrings.
var expenseCategoryCodes = map[string]string{
	"SALARIES":    AccountSalariesExpense,
	"PAYROLL":     AccountSalariesExpense,
	"UTILITIES":   AccountUtilitiesExpense,
	"ELECTRICITY": AccountUtilitiesExpense,
	"WATER":       AccountUtilitiesExpense,
	"SUPPLIES":    AccountSuppliesExpense,
	"STATIONERY":  AccountSuppliesExpense,
	"MAINTENANCE": AccountMaintenanceExpense,
	"REPAIRS":     AccountMaintenanceExpense,
	"TRANSPORT":   AccountTransportExpense,
	"FUEL":        AccountTransportExpense,
	"GENERAL":     AccountGeneralExpense,
	"OTHER":       AccountGeneralExpense,
}

// MapLegacyTransaction resolves a legacy row to its GL account pair.
//
//	payment:        debit cash/bank, credit accounts receivable
//	expense:        debit mapped expense account, credit cash/bank
//	donation/grant: debit cash, credit the revenue account
//	refund:         reverse of payment
func MapLegacyTransaction(tx *LegacyTransaction) (GLPair, error) {
	switch tx.Type {
	case LegacyTypePayment:
		return GLPair{DebitCode: cashOrBank(tx.Method), CreditCode: AccountAccountsReceivable}, nil

	case LegacyTypeExpense:
		code, ok := expenseCategoryCodes[tx.Category]
		if !ok {
			return GLPair{}, fmt.Errorf("%w: %q", ErrUnmappedCategory, tx.Category)
		}

		return GLPair{DebitCode: code, CreditCode: cashOrBank(tx.Method)}, nil

	case LegacyTypeDonation:
		return GLPair{DebitCode: AccountCashOnHand, CreditCode: AccountDonationsRevenue}, nil

	case LegacyTypeGrant:
		return GLPair{DebitCode: AccountCashOnHand, CreditCode: AccountGrantsRevenue}, nil

	case LegacyTypeRefund:
		return GLPair{DebitCode: AccountAccountsReceivable, CreditCode: cashOrBank(tx.Method)}, nil
	}

	return GLPair{}, fmt.Errorf("%w: %q", ErrUnknownLegacyType, tx.Type)
}

// EntryTypeForLegacy maps a legacy transaction kind to the journal entry type
// the backfill records it as.
func EntryTypeForLegacy(t LegacyType) (EntryType, error) {
	switch t {
	case LegacyTypePayment:
		return EntryTypeTuitionPayment, nil
	case LegacyTypeExpense:
		return EntryTypeExpense, nil
	case LegacyTypeDonation:
		return EntryTypeDonation, nil
	case LegacyTypeGrant:
		return EntryTypeGrant, nil
	case LegacyTypeRefund:
		return EntryTypeRefund, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLegacyType, t)
}
