package domain

import (
	"fmt"
	"time"
)

// EntryType is the closed set of business events a journal entry can record.
type EntryType string

const (
	EntryTypeTuitionPayment EntryType = "TUITION_PAYMENT"
	EntryTypeExpense        EntryType = "EXPENSE"
	EntryTypePayroll        EntryType = "PAYROLL"
	EntryTypeDonation       EntryType = "DONATION"
	EntryTypeGrant          EntryType = "GRANT"
	EntryTypeRefund         EntryType = "REFUND"
	EntryTypeOpeningBalance EntryType = "OPENING_BALANCE"
	EntryTypeAdjustment     EntryType = "ADJUSTMENT"
	EntryTypeVoid           EntryType = "VOID"

	// EntryTypeBudget never appears on a journal entry; it exists so
	// approval rules can gate budget allocation changes.
	EntryTypeBudget EntryType = "BUDGET"
)

// ValidEntryType reports whether t is one of the known entry types.
func ValidEntryType(t EntryType) bool {
	switch t {
	case EntryTypeTuitionPayment, EntryTypeExpense, EntryTypePayroll,
		EntryTypeDonation, EntryTypeGrant, EntryTypeRefund,
		EntryTypeOpeningBalance, EntryTypeAdjustment, EntryTypeVoid:
		return true
	}

	return false
}

// ApprovalStatus tracks whether an entry has cleared governance.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// JournalEntryLine is one debit-or-credit leg of an entry. Amounts are
// non-negative integers in minor currency units; exactly one side is non-zero.
type JournalEntryLine struct {
	LineNumber    int
	GLAccountCode string
	DebitAmount   int64
	CreditAmount  int64
	Description   string
}

// Validate enforces line exclusivity: debit XOR credit, both non-negative.
func (l *JournalEntryLine) Validate() error {
	if l.DebitAmount < 0 || l.CreditAmount < 0 {
		return fmt.Errorf("%w: line %d", ErrInvalidAmount, l.LineNumber)
	}

	if (l.DebitAmount > 0) == (l.CreditAmount > 0) {
		return fmt.Errorf("%w: line %d", ErrLineNotExclusive, l.LineNumber)
	}

	return nil
}

// JournalEntry is a balanced set of lines recording one business event.
// Voiding flips flags and stamps metadata; lines are never rewritten.
type JournalEntry struct {
	ID          string
	Ref         string
	Date        time.Time
	Type        EntryType
	Description string

	StudentID  *string
	StaffID    *string
	TermID     *string
	Department *string

	IsPosted       bool
	IsVoided       bool
	VoidedBy       *string
	VoidReason     *string
	VoidedAt       *time.Time
	ApprovalStatus ApprovalStatus

	CreatedBy string
	CreatedAt time.Time

	// Set only by the legacy backfill; uniqueness guarantees at most one
	// entry per legacy row.
	SourceLegacyTransactionID *int64

	Lines []JournalEntryLine
}

// Validate enforces the entry-level invariants: known type, at least two
// lines, per-line exclusivity, and exact debit/credit balance.
func (e *JournalEntry) Validate() error {
	if !ValidEntryType(e.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownEntryType, e.Type)
	}

	if e.CreatedBy == "" {
		return ErrMissingActor
	}

	if len(e.Lines) < 2 {
		return ErrInsufficientLines
	}

	var debits, credits int64
	for i := range e.Lines {
		if err := e.Lines[i].Validate(); err != nil {
			return err
		}

		debits += e.Lines[i].DebitAmount
		credits += e.Lines[i].CreditAmount
	}

	if debits != credits {
		return fmt.Errorf("%w: debits=%d credits=%d", ErrUnbalancedEntry, debits, credits)
	}

	return nil
}

// TotalDebits sums the debit side. For a valid entry this equals TotalCredits.
func (e *JournalEntry) TotalDebits() int64 {
	var total int64
	for i := range e.Lines {
		total += e.Lines[i].DebitAmount
	}

	return total
}

// TotalCredits sums the credit side.
func (e *JournalEntry) TotalCredits() int64 {
	var total int64
	for i := range e.Lines {
		total += e.Lines[i].CreditAmount
	}

	return total
}

// AgeInDays is the whole number of days between the entry date and now.
func (e *JournalEntry) AgeInDays(now time.Time) int {
	if now.Before(e.Date) {
		return 0
	}

	return int(now.Sub(e.Date).Hours() / 24)
}

// Void stamps the void metadata. It does not touch the lines.
func (e *JournalEntry) Void(userID, reason string, at time.Time) error {
	if e.IsVoided {
		return ErrEntryAlreadyVoided
	}

	if userID == "" {
		return ErrMissingActor
	}

	e.IsVoided = true
	e.VoidedBy = &userID
	e.VoidReason = &reason
	e.VoidedAt = &at

	return nil
}
