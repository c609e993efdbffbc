package domain

import "time"

// BalanceSide says whether an opening balance is owed to the school (DEBIT)
// or by the school (CREDIT, e.g. a student overpayment).
type BalanceSide string

const (
	BalanceSideDebit  BalanceSide = "DEBIT"
	BalanceSideCredit BalanceSide = "CREDIT"
)

// OpeningBalance is one pre-system balance imported as a journal entry.
// Either StudentID or GLAccountCode is set, never both.
type OpeningBalance struct {
	ID             string
	AcademicYearID string
	StudentID      *string
	GLAccountCode  *string
	DebitAmount    int64
	CreditAmount   int64
	Source         string
	IsVerified     bool
	JournalEntryID string
	RecordedBy     string
	RecordedAt     time.Time
}

// OpeningBalanceSummary is the result of verifying a year's imports.
// The year counts as balanced only at exactly zero variance.
type OpeningBalanceSummary struct {
	AcademicYearID string
	TotalDebits    int64
	TotalCredits   int64
	Variance       int64
	IsBalanced     bool
}
