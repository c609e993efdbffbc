package domain

import (
	"fmt"
	"strings"
	"time"
)

// AccountType classifies a GL account on the balance sheet or income statement.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account's healthy balance sits.
type NormalBalance string

const (
	NormalBalanceDebit  NormalBalance = "DEBIT"
	NormalBalanceCredit NormalBalance = "CREDIT"
)

// GLAccount is a general-ledger account. The code is the stable identifier
// used by every other component; row IDs never leave the repository layer.
type GLAccount struct {
	Code          string
	Name          string
	Type          AccountType
	NormalBalance NormalBalance
	ParentCode    *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// normalBalanceFor returns the conventional normal balance for an account type.
func normalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return NormalBalanceDebit
	default:
		return NormalBalanceCredit
	}
}

// NewGLAccount builds an active account with the conventional normal balance
// for its type.
func NewGLAccount(code, name string, accountType AccountType, now time.Time) (*GLAccount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty code", ErrAccountNotFound)
	}

	switch accountType {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, accountType)
	}

	return &GLAccount{
		Code:          code,
		Name:          strings.TrimSpace(name),
		Type:          accountType,
		NormalBalance: normalBalanceFor(accountType),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Balance converts raw debit/credit totals into a signed balance expressed on
// the account's normal side.
func (a *GLAccount) Balance(totalDebits, totalCredits int64) int64 {
	if a.NormalBalance == NormalBalanceDebit {
		return totalDebits - totalCredits
	}

	return totalCredits - totalDebits
}

// Well-known chart codes used by the opening-balance importer and the backfill.
const (
	AccountCashOnHand            = "1010"
	AccountBank                  = "1020"
	AccountAccountsReceivable    = "1100"
	AccountInventory             = "1200"
	AccountStudentCreditBalances = "2100"
	AccountSalariesPayable       = "2200"
	AccountRetainedEarnings      = "3100"
	AccountTuitionRevenue        = "4010"
	AccountOtherFeesRevenue      = "4020"
	AccountDonationsRevenue      = "4200"
	AccountGrantsRevenue         = "4210"
	AccountSalariesExpense       = "5010"
	AccountUtilitiesExpense      = "5020"
	AccountSuppliesExpense       = "5030"
	AccountMaintenanceExpense    = "5040"
	AccountTransportExpense      = "5050"
	AccountGeneralExpense        = "5900"
)

// SeedAccount is one row of the default chart.
type SeedAccount struct {
	Code       string
	Name       string
	Type       AccountType
	ParentCode *string
}

// DefaultChart is the chart of accounts seeded on first run. Seeding is
// insert-if-absent by code so reseeding is harmless.
func DefaultChart() []SeedAccount {
	return []SeedAccount{
		{Code: AccountCashOnHand, Name: "Cash on Hand", Type: AccountTypeAsset},
		{Code: AccountBank, Name: "Bank", Type: AccountTypeAsset},
		{Code: AccountAccountsReceivable, Name: "Accounts Receivable", Type: AccountTypeAsset},
		{Code: AccountInventory, Name: "Inventory", Type: AccountTypeAsset},
		{Code: AccountStudentCreditBalances, Name: "Student Credit Balances", Type: AccountTypeLiability},
		{Code: AccountSalariesPayable, Name: "Salaries Payable", Type: AccountTypeLiability},
		{Code: AccountRetainedEarnings, Name: "Retained Earnings", Type: AccountTypeEquity},
		{Code: AccountTuitionRevenue, Name: "Tuition Revenue", Type: AccountTypeRevenue},
		{Code: AccountOtherFeesRevenue, Name: "Other Fees Revenue", Type: AccountTypeRevenue},
		{Code: AccountDonationsRevenue, Name: "Donations", Type: AccountTypeRevenue},
		{Code: AccountGrantsRevenue, Name: "Grants", Type: AccountTypeRevenue},
		{Code: AccountSalariesExpense, Name: "Salaries Expense", Type: AccountTypeExpense},
		{Code: AccountUtilitiesExpense, Name: "Utilities Expense", Type: AccountTypeExpense},
		{Code: AccountSuppliesExpense, Name: "Supplies Expense", Type: AccountTypeExpense},
		{Code: AccountMaintenanceExpense, Name: "Maintenance Expense", Type: AccountTypeExpense},
		{Code: AccountTransportExpense, Name: "Transport Expense", Type: AccountTypeExpense},
		{Code: AccountGeneralExpense, Name: "General Expense", Type: AccountTypeExpense},
	}
}
