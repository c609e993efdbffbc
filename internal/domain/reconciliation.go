package domain

import "time"

// BankStatement is an externally supplied statement for one bank account.
type BankStatement struct {
	ID              string
	BankAccountCode string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	OpeningBalance  int64
	ClosingBalance  int64
	ImportedBy      string
	ImportedAt      time.Time
}

// BankStatementLine is one statement row. A line is matched to at most one
// journal entry; re-matching requires an explicit unmatch first.
type BankStatementLine struct {
	ID                   string
	StatementID          string
	LineNumber           int
	Date                 time.Time
	Description          string
	DebitAmount          int64
	CreditAmount         int64
	RunningBalance       int64
	IsMatched            bool
	MatchedTransactionID *string
}

// ReconciliationAdjustment records an out-of-band correction discovered
// during reconciliation (bank charges, timing differences).
type ReconciliationAdjustment struct {
	ID          string
	StatementID string
	Description string
	Amount      int64
	RecordedBy  string
	RecordedAt  time.Time
}

// ReconciliationReport is the outcome of one reconciliation run.
// ClosingBalance is computed as opening + credits - debits over matched
// lines; variance compares it to the statement's own closing figure.
type ReconciliationReport struct {
	StatementID     string
	BankAccountCode string
	OpeningBalance  int64
	TotalCredits    int64
	TotalDebits     int64
	ClosingBalance  int64
	StatedClosing   int64
	Variance        int64
	IsBalanced      bool
	MatchedLines    int
	UnmatchedLines  int
	RanBy           string
	RanAt           time.Time
}
