package domain

import "time"

// TrialBalanceRow is one account's aggregate over posted, non-voided entries.
type TrialBalanceRow struct {
	AccountCode   string
	AccountName   string
	AccountType   AccountType
	NormalBalance NormalBalance
	TotalDebits   int64
	TotalCredits  int64
	Balance       int64
}

// TrialBalance is the full trial balance at a point in time. A ledger that
// holds the balance invariant always has TotalDebits == TotalCredits.
type TrialBalance struct {
	AsOf         time.Time
	Rows         []TrialBalanceRow
	TotalDebits  int64
	TotalCredits int64
	IsBalanced   bool
}

// BalanceSheetSection groups accounts of one type with a section total.
type BalanceSheetSection struct {
	Type  AccountType
	Rows  []TrialBalanceRow
	Total int64
}

// BalanceSheet presents assets against liabilities and equity. Current-period
// revenue less expense rolls into the equity section as retained earnings.
type BalanceSheet struct {
	AsOf             time.Time
	Assets           BalanceSheetSection
	Liabilities      BalanceSheetSection
	Equity           BalanceSheetSection
	RetainedEarnings int64
	TotalAssets      int64
	TotalLiabEquity  int64
	IsBalanced       bool
}

// GeneralLedgerLine is one journal line in an account's ledger with the
// running balance after applying it.
type GeneralLedgerLine struct {
	EntryID        string
	EntryRef       string
	Date           time.Time
	EntryType      EntryType
	Description    string
	DebitAmount    int64
	CreditAmount   int64
	RunningBalance int64
}

// GeneralLedger is one account's activity over a date range.
type GeneralLedger struct {
	AccountCode    string
	AccountName    string
	From           time.Time
	To             time.Time
	OpeningBalance int64
	ClosingBalance int64
	Lines          []GeneralLedgerLine
}
